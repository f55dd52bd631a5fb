package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// Asegura que DocumentEventRepo implementa repository.DocumentEventRepository.
var _ repository.DocumentEventRepository = (*DocumentEventRepo)(nil)

// DocumentEventRepo histórico de operaciones sobre documentos en PostgreSQL.
type DocumentEventRepo struct {
	db Querier
}

// NewDocumentEventRepository construye el adaptador.
func NewDocumentEventRepository(db Querier) *DocumentEventRepo {
	return &DocumentEventRepo{db: db}
}

// Record persiste un evento. Un id repetido se ignora.
func (r *DocumentEventRepo) Record(ctx context.Context, ev *entity.DocumentEvent) error {
	query := `
		INSERT INTO document_events (id, cnpj, action, document_type, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, ev.ID, ev.CNPJ, ev.Action, ev.DocumentType, ev.Actor, ev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("insert document event: %w", err)
	}
	return nil
}

// ListByCNPJ eventos del cliente, más recientes primero.
func (r *DocumentEventRepo) ListByCNPJ(ctx context.Context, cnpj string, limit, offset int) ([]*entity.DocumentEvent, error) {
	query := `
		SELECT id, cnpj, action, document_type, actor, created_at
		FROM document_events
		WHERE cnpj = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, cnpj, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list document events: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentEvent
	for rows.Next() {
		var ev entity.DocumentEvent
		if err := rows.Scan(&ev.ID, &ev.CNPJ, &ev.Action, &ev.DocumentType, &ev.Actor, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}
