package sheet

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/ports"
)

// DetailReader lo que la ficha usa del caso de uso de clientes.
type DetailReader interface {
	Detail(ctx context.Context, cnpj string) (*dto.ClientDetailView, error)
}

// DocumentTableReader lo que la ficha usa del caso de uso de documentos.
type DocumentTableReader interface {
	List(ctx context.Context, cnpj, status string) (*dto.DocumentTableResponse, error)
}

// UseCase arma la "Ficha Cadastral" en PDF.
type UseCase struct {
	clients   DetailReader
	documents DocumentTableReader
	generator ports.ClientSheetGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(clients DetailReader, documents DocumentTableReader, generator ports.ClientSheetGenerator) *UseCase {
	return &UseCase{clients: clients, documents: documents, generator: generator}
}

// Generate busca cadastro y documentos en paralelo y genera el PDF.
// Devuelve también el nombre sugerido para el archivo.
func (uc *UseCase) Generate(ctx context.Context, cnpj string) ([]byte, string, error) {
	var (
		detail *dto.ClientDetailView
		table  *dto.DocumentTableResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = uc.clients.Detail(gctx, cnpj)
		return err
	})
	g.Go(func() error {
		var err error
		table, err = uc.documents.List(gctx, cnpj, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	out, err := uc.generator.GenerateClientSheet(ctx, detail, table.Rows)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("ficha_cadastral_%s.pdf", detail.CNPJ), nil
}
