// seed_counts puebla el inventario activo con conteos aleatorios, igual que POST /api/dev/test-data.
//
// Uso: go run ./cmd/seed_counts -category store [-inventory-id <uuid>] [-origins "Loja 1,Loja 2"] [-items 3]
// Sin -inventory-id usa el inventario activo. Requiere STORAGE_DRIVER=postgres.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ciclos/pkg/config"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

func main() {
	inventoryID := flag.String("inventory-id", "", "ID del inventario (vacío = inventario activo)")
	category := flag.String("category", "", "Obligatorio: store | sector | supplier")
	origins := flag.String("origins", "", "Orígenes separados por coma (vacío = todos los de la categoría)")
	items := flag.Int("items", 0, "Conteos por origen (0 = valor por defecto)")
	responsible := flag.String("responsible", "", "Responsable de los conteos generados")
	flag.Parse()

	if strings.TrimSpace(*category) == "" {
		fmt.Fprintln(os.Stderr, "-category es obligatorio")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.App.IsProduction() {
		fmt.Fprintln(os.Stderr, "seed_counts no se ejecuta con APP_ENV=production")
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "seed_counts requiere STORAGE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.Close()

	id := *inventoryID
	if id == "" {
		active, err := repos.Inventories.GetActive(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("buscar inventario activo")
		}
		if active == nil {
			log.Fatal().Msg("no hay inventario activo")
		}
		id = active.ID
	}

	cat := catalog.Default()
	progress := appinv.NewProgressUseCase(repos.Inventories, repos.Counts, cat)
	ledger := appinv.NewCountLedger(repos.Inventories, repos.Counts, cat, progress, log)
	gen := appinv.NewTestDataUseCase(ledger, repos.Counts, cat, log)

	res, err := gen.Generate(ctx, appinv.TestDataInput{
		InventoryID:    id,
		Category:       *category,
		Origins:        splitList(*origins),
		ItemsPerOrigin: *items,
		Responsible:    *responsible,
	})
	if res != nil {
		fmt.Printf("creados: %d\norígenes: %s\nomitidos: %s\n",
			res.Created, strings.Join(res.Origins, ", "), strings.Join(res.Skipped, ", "))
		for _, f := range res.Failures {
			fmt.Printf("falla %s: %s\n", f.Origin, f.Error)
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrPartialFailure) {
			os.Exit(2)
		}
		log.Error().Err(err).Msg("generación de conteos")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
