package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
)

func TestOpError_IsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := domain.Storage("count.add", "inv-1", cause)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "count.add [inv-1]")
}

func TestStorage_NoReenvuelveErroresDeDominio(t *testing.T) {
	inner := domain.State("count.add", "inv-1", "inventario finalizado")
	err := domain.Storage("count.add", "inv-1", inner)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

func TestStorage_NilDevuelveNil(t *testing.T) {
	assert.NoError(t, domain.Storage("op", "", nil))
}

func TestCompensated_ExponeCausa(t *testing.T) {
	cause := domain.Storage("report.approve", "rep-1", errors.New("timeout"))
	err := domain.Compensated("inventory.finalize", "inv-1", cause)

	assert.ErrorIs(t, err, domain.ErrCompensated)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, "cambios revertidos", domain.Message(err))
}

func TestMessage_SinMensajeUsaKind(t *testing.T) {
	err := &domain.OpError{Kind: domain.ErrConflict, Op: "x"}
	assert.Equal(t, domain.ErrConflict.Error(), domain.Message(err))
	assert.Equal(t, "plain", domain.Message(errors.New("plain")))
}
