package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository vista de productos del Client.
type ProductRepository struct {
	c *Client
}

// Products devuelve el repositorio de productos sobre este cliente.
func (c *Client) Products() *ProductRepository {
	return &ProductRepository{c: c}
}

type productRow struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Elegivel   bool   `json:"elegivel"`
	Documentos []struct {
		Nome         string      `json:"nome"`
		Enviado      bool        `json:"enviado"`
		DataValidade backendDate `json:"dataValidade"`
	} `json:"documentos"`
}

// ListByCustomer productos ofrecidos al cliente con los documentos exigidos.
// Un cliente sin productos (404) devuelve lista vacía.
func (r *ProductRepository) ListByCustomer(ctx context.Context, cnpj string) ([]entity.Product, error) {
	q := url.Values{}
	q.Set("cnpjCliente", cnpj)

	var rows []productRow
	if err := r.c.doJSON(ctx, http.MethodGet, pathCustomerProducts, "customer_products", q, nil, &rows); err != nil {
		if isNotFound(err) {
			return []entity.Product{}, nil
		}
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		p := entity.Product{ID: row.ID, Name: row.Nome, Eligible: row.Elegivel}
		for _, d := range row.Documentos {
			if bad := d.DataValidade.Invalid(); bad != "" {
				r.c.log.Warn().Str("cnpj", cnpj).Str("produto", row.ID).Str("documento", d.Nome).
					Str("dataValidade", bad).Msg("data de validade ilegível, tratada como indeterminada")
			}
			p.Requirements = append(p.Requirements, entity.DocumentRequirement{
				Name:      d.Nome,
				Satisfied: d.Enviado,
				ExpiresAt: d.DataValidade.Time(),
			})
		}
		out = append(out, p)
	}
	return out, nil
}
