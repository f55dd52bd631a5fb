package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// DocumentEventRepository define el puerto del histórico de operaciones sobre documentos.
type DocumentEventRepository interface {
	Record(ctx context.Context, ev *entity.DocumentEvent) error
	ListByCNPJ(ctx context.Context, cnpj string, limit, offset int) ([]*entity.DocumentEvent, error)
}
