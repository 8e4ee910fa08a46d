package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturio-api/internal/application/dto"
	"github.com/jhoicas/Facturio-api/internal/application/media"
	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

const productImageFolder = "products"

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo  repository.ProductRepository
	media *media.Service
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, mediaSvc *media.Service) *ProductUseCase {
	return &ProductUseCase{repo: repo, media: mediaSvc}
}

// Create crea un producto. El precio no puede ser negativo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, image []byte) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	r, err := uc.media.Replace(ctx, media.Attachment{}, image, productImageFolder)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    r.Attachment.URL,
		StorageID:   r.Attachment.StorageID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		r.Rollback(ctx)
		return nil, err
	}
	r.Commit(ctx)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto (merge). La imagen sigue el mismo protocolo de
// reemplazo que en clientes: subir-antes-de-borrar con compensación.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, image []byte) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}

	current := media.Attachment{URL: product.ImageURL, StorageID: product.StorageID}
	r, err := uc.media.Replace(ctx, current, image, productImageFolder)
	if err != nil {
		return nil, err
	}
	product.ImageURL = r.Attachment.URL
	product.StorageID = r.Attachment.StorageID
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		r.Rollback(ctx)
		return nil, err
	}
	r.Commit(ctx)
	return toProductResponse(product), nil
}

// Delete elimina el producto y su blob de imagen (blob primero, best-effort).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	uc.media.Remove(ctx, media.Attachment{URL: product.ImageURL, StorageID: product.StorageID})
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		StorageID:   p.StorageID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
