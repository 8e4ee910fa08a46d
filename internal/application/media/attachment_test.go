package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturio-api/internal/application/media"
)

// fakeStorage registra todas las llamadas en orden para verificar el protocolo.
type fakeStorage struct {
	calls     []string // "upload" / "delete:<id>"
	uploads   int
	uploadErr error
	deleteErr error
}

func (f *fakeStorage) Upload(_ context.Context, data []byte, folder string) (*media.Blob, error) {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads++
	return &media.Blob{
		SecureURL: "https://storage.example.com/" + folder + "/blob-nuevo",
		ID:        "blob-nuevo",
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.deleteErr
}

func newService(f *fakeStorage) *media.Service {
	return media.NewService(f, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Replace — path no-op
// ──────────────────────────────────────────────────────────────────────────────

func TestReplace_SinArchivo_ParIntacto(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)
	current := media.Attachment{URL: "https://x/img.png", StorageID: "viejo"}

	r, err := svc.Replace(context.Background(), current, nil, "customers")
	require.NoError(t, err)

	assert.Equal(t, current, r.Attachment,
		"sin archivo nuevo el par url/id debe quedar idéntico al de entrada")
	assert.Empty(t, f.calls, "no debe haber llamadas al almacenamiento")

	// Commit y Rollback también deben ser no-ops.
	r.Commit(context.Background())
	r.Rollback(context.Background())
	assert.Empty(t, f.calls)
}

func TestReplace_ArchivoVacio_ParIntacto(t *testing.T) {
	// Un archivo subido de 0 bytes llega como slice vacío no-nil; debe tratarse
	// igual que "sin archivo" y nunca reemplazar la imagen por un blob vacío.
	f := &fakeStorage{}
	svc := newService(f)
	current := media.Attachment{URL: "https://x/img.png", StorageID: "viejo"}

	r, err := svc.Replace(context.Background(), current, []byte{}, "customers")
	require.NoError(t, err)

	assert.Equal(t, current, r.Attachment)
	assert.Empty(t, f.calls, "no debe haber llamadas al almacenamiento")

	r.Commit(context.Background())
	r.Rollback(context.Background())
	assert.Empty(t, f.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Replace — subir-antes-de-borrar
// ──────────────────────────────────────────────────────────────────────────────

func TestReplace_SubeNuevoYCommitBorraElViejo(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)
	current := media.Attachment{URL: "https://x/old.png", StorageID: "viejo"}

	r, err := svc.Replace(context.Background(), current, []byte("png"), "customers")
	require.NoError(t, err)

	assert.Equal(t, "blob-nuevo", r.Attachment.StorageID)
	assert.NotEqual(t, current.URL, r.Attachment.URL)
	// Hasta aquí solo se subió; el viejo sigue vivo (subir-antes-de-borrar).
	assert.Equal(t, []string{"upload"}, f.calls)

	r.Commit(context.Background())
	assert.Equal(t, []string{"upload", "delete:viejo"}, f.calls,
		"el blob anterior se borra solo después de persistir el registro")
}

func TestReplace_EntidadSinImagenPrevia_CommitNoBorraNada(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)

	r, err := svc.Replace(context.Background(), media.Attachment{}, []byte("png"), "products")
	require.NoError(t, err)

	r.Commit(context.Background())
	assert.Equal(t, []string{"upload"}, f.calls)
}

func TestReplace_RollbackBorraElNuevoYConservaElViejo(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)
	current := media.Attachment{URL: "https://x/old.png", StorageID: "viejo"}

	r, err := svc.Replace(context.Background(), current, []byte("png"), "customers")
	require.NoError(t, err)

	// Simula que la escritura del registro falló: compensar.
	r.Rollback(context.Background())
	assert.Equal(t, []string{"upload", "delete:blob-nuevo"}, f.calls,
		"el rollback debe borrar el blob recién subido, nunca el anterior")
}

func TestReplace_FalloDeSubida_NoTocaElBlobViejo(t *testing.T) {
	f := &fakeStorage{uploadErr: errors.New("bucket caído")}
	svc := newService(f)
	current := media.Attachment{URL: "https://x/old.png", StorageID: "viejo"}

	_, err := svc.Replace(context.Background(), current, []byte("png"), "customers")
	require.Error(t, err)
	assert.Equal(t, []string{"upload"}, f.calls,
		"si la subida falla no debe haberse borrado nada: la referencia vieja sigue válida")
}

func TestReplace_CommitConFalloDeBorrado_NoPropaga(t *testing.T) {
	// Un huérfano remoto es aceptable; una referencia rota no. El fallo del
	// borrado del blob viejo se loguea y no se propaga al caller.
	f := &fakeStorage{deleteErr: errors.New("permiso denegado")}
	svc := newService(f)
	current := media.Attachment{StorageID: "viejo"}

	r, err := svc.Replace(context.Background(), current, []byte("png"), "customers")
	require.NoError(t, err)
	r.Commit(context.Background()) // no panic, no error
	assert.Equal(t, []string{"upload", "delete:viejo"}, f.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove — borrado junto con la entidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_ConStorageID_UnSoloBorrado(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)

	svc.Remove(context.Background(), media.Attachment{StorageID: "blob-x"})
	assert.Equal(t, []string{"delete:blob-x"}, f.calls,
		"debe emitirse exactamente una llamada de borrado")
}

func TestRemove_SinStorageID_NoLlama(t *testing.T) {
	f := &fakeStorage{}
	svc := newService(f)

	svc.Remove(context.Background(), media.Attachment{})
	assert.Empty(t, f.calls)
}

func TestRemove_FalloDeBorrado_NoPropaga(t *testing.T) {
	f := &fakeStorage{deleteErr: errors.New("timeout")}
	svc := newService(f)

	svc.Remove(context.Background(), media.Attachment{StorageID: "blob-x"}) // no panic
	assert.Equal(t, []string{"delete:blob-x"}, f.calls)
}
