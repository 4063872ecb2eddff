package entity

import "time"

// Estados de un registro de tránsito entre CDs.
const (
	TransitStatusSent     = "sent"
	TransitStatusReceived = "received"
	TransitStatusPending  = "pending"
)

// ValidTransitStatus indica si el estado pertenece al enum permitido.
func ValidTransitStatus(s string) bool {
	switch s {
	case TransitStatusSent, TransitStatusReceived, TransitStatusPending:
		return true
	}
	return false
}

// TransitRecord envío de un tipo de activo entre dos centros de distribución.
// ReceivedAt != nil si y solo si Status == received.
type TransitRecord struct {
	ID          string
	InventoryID string
	Origin      string
	Destination string
	AssetType   string
	Quantity    int
	Status      string
	SentAt      time.Time
	ReceivedAt  *time.Time
}

// SetStatus aplica la transición de estado y mantiene la fecha de recepción consistente.
func (t *TransitRecord) SetStatus(status string, now time.Time) {
	t.Status = status
	if status == TransitStatusReceived {
		received := now
		t.ReceivedAt = &received
		return
	}
	t.ReceivedAt = nil
}
