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

// carpeta de blobs para imágenes de clientes
const customerImageFolder = "customers"

// CustomerUseCase casos de uso CRUD para clientes, incluida la imagen de
// perfil (par imageUrl/storageId gestionado por media.Service).
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	media *media.Service
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, mediaSvc *media.Service) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, media: mediaSvc}
}

// Create crea un cliente. image es el contenido del archivo subido; nil si el
// formulario no traía imagen.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest, image []byte) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.CustomerStatusActive
	}
	if !entity.ValidCustomerStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Email != "" {
		existing, err := uc.repo.GetByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	r, err := uc.media.Replace(ctx, media.Attachment{}, image, customerImageFolder)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    in.Status,
		ImageURL:  r.Attachment.URL,
		StorageID: r.Attachment.StorageID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		r.Rollback(ctx)
		return nil, err
	}
	r.Commit(ctx)
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza un cliente (merge: nil conserva el valor actual). Si llega
// imagen nueva se sube antes de tocar el registro y el blob anterior se borra
// solo después de persistir; si la escritura falla se compensa la subida.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest, image []byte) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = *in.Name
	}
	if in.Email != nil && *in.Email != customer.Email {
		if *in.Email != "" {
			existing, err := uc.repo.GetByEmail(*in.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Status != nil {
		if !entity.ValidCustomerStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		customer.Status = *in.Status
	}

	current := media.Attachment{URL: customer.ImageURL, StorageID: customer.StorageID}
	r, err := uc.media.Replace(ctx, current, image, customerImageFolder)
	if err != nil {
		return nil, err
	}
	customer.ImageURL = r.Attachment.URL
	customer.StorageID = r.Attachment.StorageID
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(customer); err != nil {
		r.Rollback(ctx)
		return nil, err
	}
	r.Commit(ctx)
	return toCustomerResponse(customer), nil
}

// Delete elimina el cliente y su blob de imagen. El borrado del blob es
// best-effort y va primero; nunca bloquea el borrado del registro.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	uc.media.Remove(ctx, media.Attachment{URL: customer.ImageURL, StorageID: customer.StorageID})
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    c.Status,
		ImageURL:  c.ImageURL,
		StorageID: c.StorageID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
