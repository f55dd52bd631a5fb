package products

import (
	"context"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// UseCase productos del cliente con la conciliación de documentos exigidos.
type UseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.WithComponent("products"), now: time.Now}
}

// ListByCustomer clasifica los documentos de cada producto y decide la contratación.
func (uc *UseCase) ListByCustomer(ctx context.Context, cnpj string) (*dto.ProductListResponse, error) {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByCustomer(ctx, cnpj)
	if err != nil {
		uc.log.Error().Err(err).Str("cnpj", cnpj).Msg("erro ao buscar produtos")
		return nil, domain.Upstream(err)
	}
	now := uc.now()
	out := &dto.ProductListResponse{CNPJ: cnpj, Products: make([]document.ProductView, 0, len(list))}
	for _, p := range list {
		out.Products = append(out.Products, document.AggregateProduct(p, now))
	}
	return out, nil
}
