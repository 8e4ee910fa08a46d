// Package media implementa el protocolo de reemplazo de adjuntos: mantiene
// consistente el par {imageUrl, storageId} de una entidad con el blob remoto
// a través de create/update/delete.
//
// Orden elegido para el reemplazo (subir-antes-de-borrar): primero se sube el
// blob nuevo, el caller persiste el registro con el par nuevo y solo entonces
// se borra el blob anterior (Commit). Si la escritura del registro falla, se
// borra el blob recién subido (Rollback) y el registro conserva la referencia
// anterior. Así la entidad nunca apunta a un blob borrado; el peor caso es un
// blob huérfano, que se registra en el log.
package media

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Blob resultado de una subida al almacenamiento de objetos.
type Blob struct {
	SecureURL string // URL pública del objeto
	ID        string // id opaco para borrado/reemplazo
}

// BlobStorage puerto hacia el almacenamiento de objetos externo.
// Delete es idempotente: borrar un id ya inexistente no es error.
type BlobStorage interface {
	Upload(ctx context.Context, data []byte, folder string) (*Blob, error)
	Delete(ctx context.Context, id string) error
}

// Attachment par url/id tal como se persiste junto a la entidad.
// Ambos campos cambian siempre juntos, nunca por separado.
type Attachment struct {
	URL       string
	StorageID string
}

// Service orquesta las subidas y borrados de blobs para las entidades
// adjuntables (Customer, Product).
type Service struct {
	storage BlobStorage
	log     zerolog.Logger
}

// NewService construye el servicio.
func NewService(storage BlobStorage, log zerolog.Logger) *Service {
	return &Service{storage: storage, log: log}
}

// Replacement reemplazo en curso: el caller persiste r.Attachment junto al
// resto de campos de la entidad y después llama Commit (éxito) o Rollback
// (falló la escritura del registro).
type Replacement struct {
	Attachment Attachment // par a persistir

	svc      *Service
	prev     Attachment
	uploaded bool
}

// Replace inicia el reemplazo del adjunto de una entidad.
// data vacío (nil o de longitud cero, como un archivo de 0 bytes en el form)
// es el path no-op: no se toca el almacenamiento y el par actual se devuelve
// intacto (no es un "borrar imagen").
func (s *Service) Replace(ctx context.Context, current Attachment, data []byte, folder string) (*Replacement, error) {
	r := &Replacement{Attachment: current, svc: s, prev: current}
	if len(data) == 0 {
		return r, nil
	}
	blob, err := s.storage.Upload(ctx, data, folder)
	if err != nil {
		return nil, err
	}
	r.Attachment = Attachment{URL: blob.SecureURL, StorageID: blob.ID}
	r.uploaded = true
	return r, nil
}

// Commit cierra el reemplazo tras persistir el registro: borra el blob
// anterior. El borrado es best-effort; un fallo deja un huérfano remoto pero
// nunca una referencia rota, y se deja constancia en el log.
func (r *Replacement) Commit(ctx context.Context) {
	if !r.uploaded || r.prev.StorageID == "" {
		return
	}
	if err := r.svc.storage.Delete(ctx, r.prev.StorageID); err != nil {
		r.svc.log.Warn().Err(err).
			Str("storage_id", r.prev.StorageID).
			Msg("no se pudo borrar el blob anterior; queda huérfano")
	}
}

// Rollback compensa un reemplazo cuya escritura de registro falló: borra el
// blob recién subido para no dejar huérfanos nuevos.
func (r *Replacement) Rollback(ctx context.Context) {
	if !r.uploaded {
		return
	}
	if err := r.svc.storage.Delete(ctx, r.Attachment.StorageID); err != nil {
		r.svc.log.Warn().Err(err).
			Str("storage_id", r.Attachment.StorageID).
			Msg("no se pudo compensar el blob subido; queda huérfano")
	}
}

// Remove borra el blob de una entidad que va a eliminarse. Best-effort y en
// orden blob-primero: un fallo aquí nunca bloquea el borrado del registro
// (orden unificado para todos los call sites).
func (s *Service) Remove(ctx context.Context, att Attachment) {
	if att.StorageID == "" {
		return
	}
	if err := s.storage.Delete(ctx, att.StorageID); err != nil {
		s.log.Warn().Err(err).
			Str("storage_id", att.StorageID).
			Msg("no se pudo borrar el blob de la entidad eliminada")
	}
}

// ObjectName genera el nombre de objeto para una subida nueva dentro de folder.
func ObjectName(folder string) string {
	return folder + "/" + uuid.New().String()
}
