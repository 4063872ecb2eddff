package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada sentinel identifica una categoría visible para el usuario:
// ErrInvalidInput, ErrConflict, ErrNotFound y ErrInvalidState = "no pasó nada";
// ErrCompensated = "algo pasó y fue revertido"; ErrStorage = "falla desconocida, verificar estado".
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrInvalidState   = errors.New("el inventario no está activo")
	ErrStorage        = errors.New("falla del almacenamiento")
	ErrCompensated    = errors.New("operación revertida")
	ErrPartialFailure = errors.New("lote procesado parcialmente")
)

// OpError envuelve un error de dominio con la operación y la entidad afectada.
// Unwrap expone tanto la categoría (Kind) como la causa, así errors.Is funciona con ambas.
type OpError struct {
	Kind     error
	Op       string
	EntityID string
	Message  string
	Err      error
}

func (e *OpError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s [%s]: %s", e.Op, e.EntityID, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap permite errors.Is/As contra la categoría y la causa.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validation error de entrada (400).
func Validation(op, message string) error {
	return &OpError{Kind: ErrInvalidInput, Op: op, Message: message}
}

// NotFound entidad inexistente (404).
func NotFound(op, entity, id string) error {
	return &OpError{Kind: ErrNotFound, Op: op, EntityID: id, Message: entity + " no encontrado"}
}

// Conflict violación de unicidad, p.ej. un segundo inventario activo.
func Conflict(op, message string) error {
	return &OpError{Kind: ErrConflict, Op: op, Message: message}
}

// State operación contra un inventario que no está activo.
func State(op, id, message string) error {
	return &OpError{Kind: ErrInvalidState, Op: op, EntityID: id, Message: message}
}

// Storage falla del backend; el estado puede ser incierto.
func Storage(op, id string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Kind: ErrStorage, Op: op, EntityID: id, Err: err}
}

// Compensated la operación escribió y luego revirtió; err es la causa del rollback.
func Compensated(op, id string, err error) error {
	return &OpError{Kind: ErrCompensated, Op: op, EntityID: id, Message: "cambios revertidos", Err: err}
}

// Message devuelve el texto legible de un error de dominio sin el prefijo de operación.
func Message(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		if opErr.Message != "" {
			return opErr.Message
		}
		return opErr.Kind.Error()
	}
	return err.Error()
}
