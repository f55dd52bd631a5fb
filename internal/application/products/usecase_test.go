package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

type fakeProducts struct {
	list []entity.Product
	err  error
	cnpj string
}

func (f *fakeProducts) ListByCustomer(_ context.Context, cnpj string) ([]entity.Product, error) {
	f.cnpj = cnpj
	return f.list, f.err
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestListByCustomer_ConciliaDocumentos(t *testing.T) {
	past := now.AddDate(0, 0, -1)
	repo := &fakeProducts{list: []entity.Product{
		{ID: "1", Name: "Conta PJ", Eligible: true, Requirements: []entity.DocumentRequirement{
			{Name: "CONTRATO SOCIAL", Satisfied: true},
		}},
		{ID: "2", Name: "Crédito", Eligible: true, Requirements: []entity.DocumentRequirement{
			{Name: "CNPJ", Satisfied: true, ExpiresAt: &past},
		}},
		{ID: "3", Name: "Seguro", Eligible: false},
	}}
	uc := NewUseCase(repo, logger.Nop())
	uc.now = func() time.Time { return now }

	resp, err := uc.ListByCustomer(context.Background(), "12.345.678/0001-90")
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", repo.cnpj)
	require.Len(t, resp.Products, 3)

	assert.True(t, resp.Products[0].Contracted)
	assert.False(t, resp.Products[1].Contracted)
	assert.Equal(t, document.StatusOutdated, resp.Products[1].Requirements[0].Status)
	assert.True(t, resp.Products[2].DocumentsComplete)
	assert.False(t, resp.Products[2].Contracted, "sin la marca del backend no se contrata")
}

func TestListByCustomer_FallaDelBackend(t *testing.T) {
	uc := NewUseCase(&fakeProducts{err: errors.New("502")}, logger.Nop())
	_, err := uc.ListByCustomer(context.Background(), "12345678000190")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
