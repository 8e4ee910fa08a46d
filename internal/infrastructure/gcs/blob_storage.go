// Package gcs adaptador de almacenamiento de objetos sobre Google Cloud
// Storage. Implementa el puerto media.BlobStorage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/Facturio-api/internal/application/media"
	"github.com/jhoicas/Facturio-api/pkg/config"
)

var _ media.BlobStorage = (*BlobStorage)(nil)

// BlobStorage cliente GCS con bucket fijo. El cliente es seguro para uso
// concurrente y se comparte durante toda la vida del proceso.
type BlobStorage struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// NewBlobStorage construye el adaptador. Con CredentialsJSON vacío se usan
// las Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS o la
// service account del runtime).
func NewBlobStorage(ctx context.Context, cfg config.StorageConfig) (*BlobStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs: bucket requerido")
	}
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &BlobStorage{client: client, bucket: cfg.Bucket, publicBaseURL: baseURL}, nil
}

// Upload sube data bajo un nombre de objeto nuevo dentro de folder y devuelve
// la URL pública junto con el nombre del objeto (id para borrado posterior).
func (s *BlobStorage) Upload(ctx context.Context, data []byte, folder string) (*media.Blob, error) {
	objectName := media.ObjectName(folder)

	wc := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = http.DetectContentType(data)
	if _, err := wc.Write(data); err != nil {
		return nil, fmt.Errorf("gcs: subir objeto %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("gcs: cerrar writer de %s: %w", objectName, err)
	}

	return &media.Blob{
		SecureURL: s.publicBaseURL + "/" + objectName,
		ID:        objectName,
	}, nil
}

// Delete borra un objeto por nombre. Idempotente: un objeto ya inexistente no
// es error.
func (s *BlobStorage) Delete(ctx context.Context, id string) error {
	err := s.client.Bucket(s.bucket).Object(id).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("gcs: borrar objeto %s: %w", id, err)
	}
	return nil
}

// Close libera el cliente subyacente.
func (s *BlobStorage) Close() error {
	return s.client.Close()
}
