package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ciclos/pkg/config"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	repos, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer repos.Close()

	assert.Equal(t, config.StorageMemory, repos.Driver)
	inv, err := repos.Inventories.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}
	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "mongo")
}
