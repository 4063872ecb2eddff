package inventory

import (
	"strings"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// CountItem par tipo de activo / cantidad de una carga masiva.
type CountItem struct {
	AssetType string
	Quantity  int
}

// ValidateCount valida los campos de un conteo antes de cualquier escritura.
func ValidateCount(op, category, origin, assetType string, quantity int, responsible string) error {
	if !entity.ValidCategory(category) {
		return domain.Validation(op, "categoría inválida: "+category)
	}
	if strings.TrimSpace(origin) == "" {
		return domain.Validation(op, "origen es requerido")
	}
	if strings.TrimSpace(assetType) == "" {
		return domain.Validation(op, "tipo de activo es requerido")
	}
	if quantity <= 0 {
		return domain.Validation(op, "la cantidad debe ser mayor que cero")
	}
	if strings.TrimSpace(responsible) == "" {
		return domain.Validation(op, "responsable es requerido")
	}
	return nil
}

// NormalizeCompanion aplica la regla de tránsito acompañante: solo tiendas alias de CD la
// conservan y, si el tipo de activo viene vacío, se descarta en silencio.
func NormalizeCompanion(op, category, origin, responsible string, comp *entity.CountCompanion, c *catalog.Catalog) (*entity.CountCompanion, error) {
	if comp == nil || category != entity.CategoryStore || !c.TransitEligible(origin) {
		return nil, nil
	}
	if strings.TrimSpace(comp.AssetType) == "" {
		return nil, nil
	}
	if comp.Quantity <= 0 {
		return nil, domain.Validation(op, "la cantidad en tránsito debe ser mayor que cero")
	}
	out := *comp
	if strings.TrimSpace(out.Responsible) == "" {
		out.Responsible = responsible
	}
	return &out, nil
}

// ValidateTransit valida un registro de tránsito antes de escribirlo.
func ValidateTransit(op, origin, destination, assetType string, quantity int, status string) error {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return domain.Validation(op, "origen y destino son requeridos")
	}
	if origin == destination {
		return domain.Validation(op, "origin and destination cannot be equal")
	}
	if strings.TrimSpace(assetType) == "" {
		return domain.Validation(op, "tipo de activo es requerido")
	}
	if quantity <= 0 {
		return domain.Validation(op, "la cantidad debe ser mayor que cero")
	}
	if !entity.ValidTransitStatus(status) {
		return domain.Validation(op, "estado inválido: "+status)
	}
	return nil
}
