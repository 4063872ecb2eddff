package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

const (
	defaultItemsPerOrigin = 3
	maxGeneratedQuantity  = 50
)

// TestDataInput parámetros del generador. Origins vacío = todos los orígenes de la categoría.
type TestDataInput struct {
	InventoryID    string
	Category       string
	Origins        []string
	ItemsPerOrigin int
	Responsible    string
}

// OriginFailure origen que no se pudo poblar.
type OriginFailure struct {
	Origin string
	Error  string
}

// TestDataResult resumen de la generación.
type TestDataResult struct {
	Created  int
	Origins  []string
	Skipped  []string
	Failures []OriginFailure
}

// TestDataUseCase puebla un inventario con conteos aleatorios para demos y pruebas de carga.
type TestDataUseCase struct {
	ledger    *CountLedger
	countRepo repository.CountEntryRepository
	catalog   *catalog.Catalog
	log       *logger.Logger

	// mu protege rnd; rand.Rand no admite uso concurrente.
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTestDataUseCase construye el generador sobre el libro de conteos.
func NewTestDataUseCase(ledger *CountLedger, countRepo repository.CountEntryRepository, c *catalog.Catalog, log *logger.Logger) *TestDataUseCase {
	return &TestDataUseCase{
		ledger:    ledger,
		countRepo: countRepo,
		catalog:   c,
		log:       log,
		rnd:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand fija la fuente aleatoria (semilla determinista en pruebas).
func (uc *TestDataUseCase) WithRand(r *rand.Rand) {
	if r != nil {
		uc.mu.Lock()
		uc.rnd = r
		uc.mu.Unlock()
	}
}

// Generate crea ItemsPerOrigin conteos por origen. Los orígenes que ya tienen conteos en la
// categoría se omiten. Cada origen es una carga masiva independiente: si alguno falla se sigue
// con el resto y el error devuelto es ErrPartialFailure junto con el resultado parcial.
func (uc *TestDataUseCase) Generate(ctx context.Context, in TestDataInput) (*TestDataResult, error) {
	const op = "testdata.generate"
	if !entity.ValidCategory(in.Category) {
		return nil, domain.Validation(op, "categoría inválida: "+in.Category)
	}
	if strings.TrimSpace(in.Responsible) == "" {
		in.Responsible = "gerador"
	}
	if in.ItemsPerOrigin <= 0 {
		in.ItemsPerOrigin = defaultItemsPerOrigin
	}
	if _, err := requireActive(ctx, uc.ledger.invRepo, op, in.InventoryID); err != nil {
		return nil, err
	}
	origins := in.Origins
	if len(origins) == 0 {
		origins = uc.catalog.Origins(in.Category)
	}

	existing, err := uc.countRepo.List(ctx, repository.CountFilter{InventoryID: in.InventoryID, Category: in.Category})
	if err != nil {
		return nil, domain.Storage(op, in.InventoryID, err)
	}
	counted := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		counted[e.Origin] = struct{}{}
	}

	res := &TestDataResult{Origins: []string{}, Skipped: []string{}}
	for _, origin := range origins {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, ok := counted[origin]; ok {
			res.Skipped = append(res.Skipped, origin)
			continue
		}
		entries, err := uc.ledger.AddEntriesBulk(ctx, BulkCountInput{
			InventoryID: in.InventoryID,
			Category:    in.Category,
			Origin:      origin,
			Responsible: in.Responsible,
			Items:       uc.items(in.ItemsPerOrigin),
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidState) {
				return res, err
			}
			uc.log.Warn().Err(err).Str("inventory_id", in.InventoryID).Str("origin", origin).
				Msg("generación de datos de prueba fallida para el origen")
			res.Failures = append(res.Failures, OriginFailure{Origin: origin, Error: domain.Message(err)})
			continue
		}
		counted[origin] = struct{}{}
		res.Created += len(entries)
		res.Origins = append(res.Origins, origin)
	}

	if len(res.Failures) > 0 {
		return res, &domain.OpError{
			Kind:     domain.ErrPartialFailure,
			Op:       op,
			EntityID: in.InventoryID,
			Message:  fmt.Sprintf("%d de %d orígenes fallaron", len(res.Failures), len(origins)-len(res.Skipped)),
		}
	}
	return res, nil
}

func (uc *TestDataUseCase) items(n int) []dominv.CountItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	items := make([]dominv.CountItem, n)
	for i := range items {
		items[i] = dominv.CountItem{
			AssetType: uc.catalog.AssetTypes[uc.rnd.IntN(len(uc.catalog.AssetTypes))],
			Quantity:  1 + uc.rnd.IntN(maxGeneratedQuantity),
		}
	}
	return items
}
