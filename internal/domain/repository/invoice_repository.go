package repository

import "github.com/jhoicas/Facturio-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las líneas están embebidas en la factura a nivel de dominio; el adaptador
// decide cómo materializarlas (tabla hija en Postgres).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLineItem(item *entity.LineItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetLineItems(invoiceID string) ([]*entity.LineItem, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// Update sobreescribe la cabecera completa (los campos ya vienen
	// mezclados por el caso de uso). No toca las líneas.
	Update(invoice *entity.Invoice) error
	// DeleteLineItems elimina todas las líneas de la factura (paso previo a
	// re-escribirlas cuando un update trae una lista nueva).
	DeleteLineItems(invoiceID string) error
	Delete(id string) error
	// NextNumber reserva el siguiente consecutivo de facturación de forma
	// atómica en la capa de persistencia (secuencia Postgres); seguro bajo
	// creaciones concurrentes, a diferencia de contar filas.
	NextNumber() (int64, error)
}
