package entity

import "time"

// Estados válidos para Customer.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusBlocked  = "blocked"
)

// ValidCustomerStatus indica si s es un estado de cliente reconocido.
func ValidCustomerStatus(s string) bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusBlocked:
		return true
	}
	return false
}

// Customer representa un cliente de la empresa (facturación).
// ImageURL y StorageID viajan siempre juntos: referencian el mismo blob en el
// almacenamiento de objetos y nunca se actualizan por separado.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    string // active, inactive, blocked
	ImageURL  string // URL pública del blob (vacío = sin imagen)
	StorageID string // id opaco del blob para borrado/reemplazo
	CreatedAt time.Time
	UpdatedAt time.Time
}
