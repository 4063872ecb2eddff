package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// FinalizationResult inventario finalizado junto con su informe aprobado.
type FinalizationResult struct {
	Inventory *entity.Inventory
	Report    *entity.FinalizationReport
}

// FinalizationGate transición conjunta Active → Finalized del inventario y Draft → Approved del
// informe. El almacenamiento no ofrece transacciones multi-sentencia, así que es una saga:
//
//  1. finalizar inventario (si falla, no hay nada que revertir)
//  2. aprobar informe (si falla, se reactiva el inventario y se devuelve ErrCompensated)
//
// Si la reactivación también falla el error es ErrStorage: estado incierto, verificar a mano.
type FinalizationGate struct {
	invRepo         repository.InventoryRepository
	reportRepo      repository.ReportRepository
	requireComplete bool
	log             *logger.Logger
	now             func() time.Time
}

// NewFinalizationGate construye la compuerta. Con requireComplete=true se exige que el informe
// tenga todas las tiendas contadas, proveedores y tránsitos antes de cerrar.
func NewFinalizationGate(
	invRepo repository.InventoryRepository,
	reportRepo repository.ReportRepository,
	requireComplete bool,
	log *logger.Logger,
) *FinalizationGate {
	return &FinalizationGate{
		invRepo:         invRepo,
		reportRepo:      reportRepo,
		requireComplete: requireComplete,
		log:             log,
		now:             time.Now,
	}
}

// WithNow reemplaza el reloj para pruebas deterministas.
func (g *FinalizationGate) WithNow(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Finalize ejecuta la saga de cierre.
func (g *FinalizationGate) Finalize(ctx context.Context, inventoryID, reportID, approver string) (*FinalizationResult, error) {
	const op = "inventory.finalize"
	approver = strings.TrimSpace(approver)
	if approver == "" {
		return nil, domain.Validation(op, "nombre del aprobador es requerido")
	}

	inv, err := g.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, domain.Storage(op, inventoryID, err)
	}
	if inv == nil {
		return nil, domain.NotFound(op, "inventario", inventoryID)
	}
	report, err := g.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, domain.Storage(op, reportID, err)
	}
	if report == nil {
		return nil, domain.NotFound(op, "informe", reportID)
	}
	if report.InventoryID != inv.ID {
		return nil, domain.Validation(op, "el informe no pertenece al inventario")
	}
	if !inv.IsActive() {
		return nil, domain.State(op, inv.ID, "el inventario ya está finalizado")
	}
	if report.Status != entity.ReportStatusDraft {
		return nil, domain.State(op, report.ID, "el informe ya fue aprobado")
	}
	if g.requireComplete && !report.Validation().Complete() {
		return nil, domain.State(op, inv.ID, "el informe tiene pendientes: tiendas, proveedores o tránsitos")
	}

	now := g.now()
	// Paso 1: inventario → finalized.
	if err := g.invRepo.Finalize(ctx, inv.ID, now); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return nil, domain.State(op, inv.ID, "el inventario ya no está activo")
		}
		return nil, domain.Storage(op, inv.ID, err)
	}

	// Paso 2: informe → approved, o compensación.
	if err := g.reportRepo.Approve(ctx, report.ID, approver, now); err != nil {
		approveErr := domain.Storage("report.approve", report.ID, err)
		if revertErr := g.invRepo.Reactivate(ctx, inv.ID); revertErr != nil {
			g.log.Error().Err(revertErr).AnErr("approve_error", err).
				Str("inventory_id", inv.ID).Str("report_id", report.ID).
				Msg("compensación fallida: inventario finalizado sin informe aprobado, estado incierto")
			return nil, &domain.OpError{
				Kind:     domain.ErrStorage,
				Op:       op,
				EntityID: inv.ID,
				Message:  "estado incierto: verificar inventario e informe manualmente",
				Err:      errors.Join(approveErr, revertErr),
			}
		}
		g.log.Error().Err(err).Str("inventory_id", inv.ID).Str("report_id", report.ID).
			Msg("aprobación del informe fallida, inventario reactivado")
		return nil, domain.Compensated(op, inv.ID, approveErr)
	}

	inv.Status = entity.InventoryStatusFinalized
	inv.EndedAt = &now
	report.Status = entity.ReportStatusApproved
	report.ApprovedBy = approver
	report.ApprovedAt = &now
	g.log.Info().Str("inventory_id", inv.ID).Str("report_id", report.ID).Str("approver", approver).
		Msg("inventario finalizado")
	return &FinalizationResult{Inventory: inv, Report: report}, nil
}
