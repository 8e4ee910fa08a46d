package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturio-api/internal/domain"
	"github.com/jhoicas/Facturio-api/internal/domain/entity"
	"github.com/jhoicas/Facturio-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL
// (usable con pool o tx). Los totales se persisten materializados; el motor
// de facturación es quien los calcula.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, customer_id, status, issue_date, due_date, notes,
		subtotal, tax_rate, tax, discount, total_amount, paid_amount, created_at, updated_at`

// NextNumber reserva el siguiente consecutivo de factura. La secuencia es
// atómica: dos creaciones concurrentes nunca reciben el mismo número.
func (r *InvoiceRepo) NextNumber() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('invoice_number_seq')`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

// Create persiste la cabecera de una factura (las líneas van por CreateLineItem).
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.Status, inv.IssueDate, inv.DueDate, inv.Notes,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Discount, inv.TotalAmount, inv.PaidAmount,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea de factura con su posición dentro de ella.
func (r *InvoiceRepo) CreateLineItem(item *entity.LineItem) error {
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, product_id, position, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ProductID, item.Position, item.Quantity,
		item.UnitPrice, item.Discount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID (sin líneas).
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := scanInvoice(r.q.QueryRow(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id), &inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLineItems obtiene las líneas de una factura en su orden de entrada.
func (r *InvoiceRepo) GetLineItems(invoiceID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, product_id, position, quantity, unit_price, discount, total
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var items []*entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Position, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista facturas con paginación, más recientes primero (sin líneas).
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una factura.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $2, status = $3, issue_date = $4, due_date = $5, notes = $6,
			subtotal = $7, tax_rate = $8, tax = $9, discount = $10, total_amount = $11, paid_amount = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CustomerID, inv.Status, inv.IssueDate, inv.DueDate, inv.Notes,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Discount, inv.TotalAmount, inv.PaidAmount,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteLineItems elimina todas las líneas de una factura (paso previo al
// reemplazo completo de la lista o al borrado de la factura).
func (r *InvoiceRepo) DeleteLineItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una factura.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row, inv *entity.Invoice) error {
	return row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.Status, &inv.IssueDate, &inv.DueDate, &inv.Notes,
		&inv.Subtotal, &inv.TaxRate, &inv.Tax, &inv.Discount, &inv.TotalAmount, &inv.PaidAmount,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
}
