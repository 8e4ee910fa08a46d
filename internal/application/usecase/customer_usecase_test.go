package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturio-api/internal/application/dto"
	"github.com/jhoicas/Facturio-api/internal/application/media"
	"github.com/jhoicas/Facturio-api/internal/application/usecase"
	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
)

// fakeCustomerRepo implementación en memoria de CustomerRepository.
type fakeCustomerRepo struct {
	byID      map[string]*entity.Customer
	createErr error
	updateErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// fakeBlobStorage registra las llamadas en orden; devuelve ids consecutivos.
type fakeBlobStorage struct {
	calls []string // "upload" / "delete:<id>"
	n     int
}

func (f *fakeBlobStorage) Upload(_ context.Context, data []byte, folder string) (*media.Blob, error) {
	f.calls = append(f.calls, "upload")
	f.n++
	id := fmt.Sprintf("blob-%d", f.n)
	return &media.Blob{SecureURL: "https://storage.example.com/" + folder + "/" + id, ID: id}, nil
}

func (f *fakeBlobStorage) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}

func newCustomerUC(repo *fakeCustomerRepo, storage *fakeBlobStorage) *usecase.CustomerUseCase {
	return usecase.NewCustomerUseCase(repo, media.NewService(storage, zerolog.Nop()))
}

func TestCustomerCreate_SinImagen(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "ACME S.A.S.",
		Email: "compras@acme.co",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, entity.CustomerStatusActive, resp.Status, "status default active")
	assert.Empty(t, resp.ImageURL)
	assert.Empty(t, resp.StorageID)
	assert.Empty(t, storage.calls, "sin archivo no se toca el almacenamiento")
}

func TestCustomerCreate_ConImagen_PersisteElPar(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("png"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ImageURL)
	assert.NotEmpty(t, resp.StorageID)
	stored, _ := repo.GetByID(resp.ID)
	assert.Equal(t, resp.ImageURL, stored.ImageURL, "el par url/id queda persistido junto")
	assert.Equal(t, resp.StorageID, stored.StorageID)
	assert.Equal(t, []string{"upload"}, storage.calls)
}

func TestCustomerCreate_FalloDePersistencia_CompensaLaSubida(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.createErr = errors.New("db caída")
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("png"))
	require.Error(t, err)
	assert.Equal(t, []string{"upload", "delete:blob-1"}, storage.calls,
		"si el insert falla se borra el blob recién subido")
}

func TestCustomerCreate_EmailDuplicado(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := newCustomerUC(repo, &fakeBlobStorage{})

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "A", Email: "x@y.co"}, nil)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "B", Email: "x@y.co"}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerCreate_EstadoInvalido(t *testing.T) {
	uc := newCustomerUC(newFakeCustomerRepo(), &fakeBlobStorage{})
	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "A", Status: "archived"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerUpdate_ImagenNueva_SubeAntesDeBorrar(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("v1"))
	require.NoError(t, err)
	oldID := created.StorageID

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateCustomerRequest{}, []byte("v2"))
	require.NoError(t, err)

	assert.NotEqual(t, oldID, updated.StorageID)
	assert.Equal(t, []string{"upload", "upload", "delete:" + oldID}, storage.calls,
		"el blob viejo se borra después de subir y persistir el nuevo")
}

func TestCustomerUpdate_SinImagen_ParIntacto(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("v1"))
	require.NoError(t, err)

	phone := "3001234567"
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateCustomerRequest{Phone: &phone}, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Equal(t, created.StorageID, updated.StorageID)
	assert.Equal(t, "3001234567", updated.Phone)
	assert.Equal(t, []string{"upload"}, storage.calls, "solo la subida del create")
}

func TestCustomerUpdate_FalloDePersistencia_ConservaElBlobViejo(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("v1"))
	require.NoError(t, err)
	oldID := created.StorageID

	repo.updateErr = errors.New("db caída")
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateCustomerRequest{}, []byte("v2"))
	require.Error(t, err)

	// Se compensa el blob nuevo; el registro sigue apuntando al viejo.
	assert.Equal(t, []string{"upload", "upload", "delete:blob-2"}, storage.calls)
	stored, _ := repo.GetByID(created.ID)
	assert.Equal(t, oldID, stored.StorageID,
		"la entidad nunca queda apuntando a un blob borrado")
}

func TestCustomerDelete_UnSoloBorradoDeBlob(t *testing.T) {
	repo := newFakeCustomerRepo()
	storage := &fakeBlobStorage{}
	uc := newCustomerUC(repo, storage)

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "ACME"}, []byte("v1"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	assert.Equal(t, []string{"upload", "delete:" + created.StorageID}, storage.calls,
		"exactamente una llamada de borrado de blob por entidad eliminada")
	got, _ := repo.GetByID(created.ID)
	assert.Nil(t, got)
}

func TestCustomerDelete_Inexistente_NotFound(t *testing.T) {
	uc := newCustomerUC(newFakeCustomerRepo(), &fakeBlobStorage{})
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}
