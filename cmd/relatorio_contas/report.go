package main

import (
	"context"
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

const pageSize = 100

var reportHeader = []string{"Cód Cliente", "Razão Social", "CNPJ", "Filial"}

// lister lo que el reporte usa del caso de uso de clientes.
type lister interface {
	List(ctx context.Context, q dto.ClientListQuery) (*dto.ClientPage, error)
}

// fetchAll recorre todas las páginas del listado con el filtro dado.
func fetchAll(ctx context.Context, uc lister, filter entity.ClientFilter) ([]dto.ClientSummaryDTO, error) {
	q := dto.ClientListQuery{
		RazaoSocial:   filter.RazaoSocial,
		CNPJ:          filter.CNPJ,
		CodigoCliente: filter.CodigoCliente,
		Filial:        filter.Filial,
		PageRequest:   dto.PageRequest{Page: 1, Size: pageSize},
	}
	var out []dto.ClientSummaryDTO
	for {
		page, err := uc.List(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if len(page.Items) == 0 || len(out) >= page.Total {
			return out, nil
		}
		q.Page++
	}
}

// writeReport escribe el CSV en ISO-8859-1; los caracteres sin representación se reemplazan.
func writeReport(w io.Writer, rows []dto.ClientSummaryDTO) error {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
	cw := csv.NewWriter(enc)
	cw.Comma = ';'

	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.CodigoExterno, r.RazaoSocial, r.CNPJ, r.Filial}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return enc.Close()
}
