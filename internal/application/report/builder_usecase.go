// Package report arma, persiste y exporta el informe de cierre de un inventario.
package report

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// GenerateResult informe persistido junto con su resumen de validación.
type GenerateResult struct {
	Report     *entity.FinalizationReport
	Validation entity.ReportValidation
}

// BuilderUseCase genera el informe de cierre a partir de los libros de conteos y tránsitos.
type BuilderUseCase struct {
	invRepo     repository.InventoryRepository
	countRepo   repository.CountEntryRepository
	transitRepo repository.TransitRecordRepository
	reportRepo  repository.ReportRepository
	catalog     *catalog.Catalog
	log         *logger.Logger
	now         func() time.Time
}

// NewBuilderUseCase construye el caso de uso.
func NewBuilderUseCase(
	invRepo repository.InventoryRepository,
	countRepo repository.CountEntryRepository,
	transitRepo repository.TransitRecordRepository,
	reportRepo repository.ReportRepository,
	c *catalog.Catalog,
	log *logger.Logger,
) *BuilderUseCase {
	return &BuilderUseCase{
		invRepo:     invRepo,
		countRepo:   countRepo,
		transitRepo: transitRepo,
		reportRepo:  reportRepo,
		catalog:     c,
		log:         log,
		now:         time.Now,
	}
}

// WithNow reemplaza el reloj para pruebas deterministas.
func (uc *BuilderUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// GenerateReport agrega conteos y tránsitos y guarda el informe como borrador.
// Es idempotente: regenerar reemplaza el informe del inventario conservando su ID.
func (uc *BuilderUseCase) GenerateReport(ctx context.Context, inventoryID string) (*GenerateResult, error) {
	const op = "report.generate"
	inv, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, domain.Storage(op, inventoryID, err)
	}
	if inv == nil {
		return nil, domain.NotFound(op, "inventario", inventoryID)
	}
	if !inv.IsActive() {
		return nil, domain.State(op, inventoryID, "el inventario "+inv.Code+" está finalizado")
	}

	var (
		counts   []entity.CountEntry
		transits []entity.TransitRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.countRepo.List(gctx, repository.CountFilter{InventoryID: inventoryID})
		if err != nil {
			return err
		}
		counts = make([]entity.CountEntry, 0, len(list))
		for _, e := range list {
			counts = append(counts, *e)
		}
		return nil
	})
	g.Go(func() error {
		list, err := uc.transitRepo.ListByInventory(gctx, inventoryID)
		if err != nil {
			return err
		}
		transits = make([]entity.TransitRecord, 0, len(list))
		for _, t := range list {
			transits = append(transits, *t)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Storage(op, inventoryID, err)
	}

	s := dominv.Aggregate(counts, transits, uc.catalog)
	if len(s.UnmatchedTransit) > 0 {
		uc.log.Warn().Str("inventory_id", inventoryID).Strs("transit_ids", s.UnmatchedTransit).
			Msg("tránsitos con origen sin CD reconocido, omitidos del resumen")
	}
	if len(s.Unclassified) > 0 {
		uc.log.Warn().Str("inventory_id", inventoryID).Strs("asset_types", s.Unclassified).
			Msg("tipos de activo sin familia, agrupados en " + string(catalog.FamilyOther))
	}

	rep := &entity.FinalizationReport{
		InventoryID:           inventoryID,
		PendingStoresByRegion: s.PendingStoresByRegion,
		SuppliersMissing:      !s.HasSupplier,
		HasTransit:            s.HasTransit,
		StoreSummary:          s.StoreSummary,
		DCSummary:             s.DCSummary,
		FamilySummary:         s.FamilySummary,
		Status:                entity.ReportStatusDraft,
		GeneratedAt:           uc.now(),
	}
	if err := uc.reportRepo.Upsert(ctx, rep); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return nil, domain.State(op, inventoryID, "el informe ya fue aprobado")
		}
		return nil, domain.Storage(op, inventoryID, err)
	}
	uc.log.Info().Str("inventory_id", inventoryID).Str("report_id", rep.ID).
		Bool("complete", rep.Validation().Complete()).Msg("informe generado")
	return &GenerateResult{Report: rep, Validation: rep.Validation()}, nil
}

// GetByInventory devuelve el informe del inventario; ErrNotFound si aún no se generó.
func (uc *BuilderUseCase) GetByInventory(ctx context.Context, inventoryID string) (*entity.FinalizationReport, error) {
	const op = "report.get_by_inventory"
	rep, err := uc.reportRepo.GetByInventory(ctx, inventoryID)
	if err != nil {
		return nil, domain.Storage(op, inventoryID, err)
	}
	if rep == nil {
		return nil, domain.NotFound(op, "informe del inventario", inventoryID)
	}
	return rep, nil
}

// GetByID devuelve un informe por ID.
func (uc *BuilderUseCase) GetByID(ctx context.Context, id string) (*entity.FinalizationReport, error) {
	const op = "report.get"
	rep, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(op, id, err)
	}
	if rep == nil {
		return nil, domain.NotFound(op, "informe", id)
	}
	return rep, nil
}
