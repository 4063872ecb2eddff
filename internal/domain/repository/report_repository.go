package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia de informes de cierre (uno por inventario).
type ReportRepository interface {
	// Upsert reemplaza el informe del inventario conservando su ID; report.ID queda con el ID persistido.
	Upsert(ctx context.Context, report *entity.FinalizationReport) error
	GetByID(ctx context.Context, id string) (*entity.FinalizationReport, error)
	GetByInventory(ctx context.Context, inventoryID string) (*entity.FinalizationReport, error)
	// Approve pasa el informe de draft a approved.
	Approve(ctx context.Context, id, approver string, at time.Time) error
}
