// Package audit contiene el histórico deshabilitado, usado cuando no hay base configurada.
package audit

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.DocumentEventRepository = Nop{}

// Nop descarta los eventos y lista vacío.
type Nop struct{}

// Record no hace nada.
func (Nop) Record(context.Context, *entity.DocumentEvent) error { return nil }

// ListByCNPJ siempre vacío.
func (Nop) ListByCNPJ(context.Context, string, int, int) ([]*entity.DocumentEvent, error) {
	return []*entity.DocumentEvent{}, nil
}
