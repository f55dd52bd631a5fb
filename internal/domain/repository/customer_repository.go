package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura de clientes (backend de onboarding).
type CustomerRepository interface {
	// FindAll página del servidor; page empieza en 0. Devuelve también el total.
	FindAll(ctx context.Context, page, size int) ([]entity.CustomerSummary, int, error)
	// FindFiltered resultado completo, sin paginar, para los filtros no vacíos.
	FindFiltered(ctx context.Context, filter entity.ClientFilter) ([]entity.CustomerSummary, error)
	// FindByCNPJ cadastro completo; (nil, nil) si no existe.
	FindByCNPJ(ctx context.Context, cnpj string) (*entity.Customer, error)
}
