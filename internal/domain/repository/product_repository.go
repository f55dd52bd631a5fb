package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// ProductRepository define el puerto de productos por cliente con sus documentos exigidos.
type ProductRepository interface {
	ListByCustomer(ctx context.Context, cnpj string) ([]entity.Product, error)
}
