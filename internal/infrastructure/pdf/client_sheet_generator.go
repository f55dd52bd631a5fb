// Package pdf genera la "Ficha Cadastral" del cliente en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ          │  QR del CNPJ + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DADOS CADASTRAIS                                            │
//	│  CONTATO                                                     │
//	│  INFORMAÇÕES EMPRESARIAIS                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo de Documento | Status | Validade                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LEYENDA: Válido / Pendente / Desatualizado                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/ports"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
)

var _ ports.ClientSheetGenerator = (*ClientSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 1, Green: 1, Blue: 1}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorValid    = &props.Color{Red: 0, Green: 128, Blue: 0}
	colorInvalid  = &props.Color{Red: 200, Green: 0, Blue: 0}
	colorOutdated = &props.Color{Red: 230, Green: 140, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ClientSheetGenerator implementa ports.ClientSheetGenerator usando Maroto v2.
type ClientSheetGenerator struct {
	now func() time.Time
}

// NewClientSheetGenerator construye el generador.
func NewClientSheetGenerator() *ClientSheetGenerator {
	return &ClientSheetGenerator{now: time.Now}
}

// GenerateClientSheet genera el PDF y devuelve sus bytes.
func (g *ClientSheetGenerator) GenerateClientSheet(
	_ context.Context,
	detail *dto.ClientDetailView,
	documents []dto.DocumentRowDTO,
) ([]byte, error) {
	if detail == nil {
		return nil, fmt.Errorf("pdf: ficha sin cadastro")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha Cadastral "+detail.CNPJ, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(detail, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("DADOS CADASTRAIS"))
	m.AddRows(
		fieldRow("Código do Cliente", detail.Cadastro.CodigoCliente, "CNPJ", detail.Cadastro.CNPJ),
		fieldRow("Grupo Econômico", detail.Cadastro.GrupoEconomico, "Nome Fantasia", detail.Cadastro.NomeFantasia),
	)

	m.AddRows(sectionTitle("CONTATO"))
	m.AddRows(
		fieldRow("Celular", detail.Contato.Celular, "E-mail", detail.Contato.Email),
		fieldRow("Endereço", detail.Contato.Rua+", "+detail.Contato.Numero, "CEP", detail.Contato.CEP),
		fieldRow("Cidade", detail.Contato.Cidade, "Estado", detail.Contato.Estado),
	)

	m.AddRows(sectionTitle("INFORMAÇÕES EMPRESARIAIS"))
	m.AddRows(
		fieldRow("Inscrição Estadual", detail.Empresa.InscricaoEstadual, "CNAE", detail.Empresa.CNAE),
		fieldRow("Ramo Atividade", detail.Empresa.RamoAtividade, "", ""),
	)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(documentRows(documents)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(legendRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razão social + CNPJ (izq) y QR con el CNPJ + fecha de emisión (der).
func headerRow(detail *dto.ClientDetailView, now time.Time) core.Row {
	return row.New(24).Add(
		col.New(8).Add(
			text.New("FICHA CADASTRAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(detail.Cadastro.RazaoSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
			text.New("CNPJ: "+detail.CNPJ, props.Text{
				Size: 9, Top: 14, Color: colorGray,
			}),
			text.New("Emitida em "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Top: 19, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(detail.CNPJ, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		})),
	)
}

// fieldRow: dos pares etiqueta/valor por fila; label vacío deja la columna en blanco.
func fieldRow(label1, value1, label2, value2 string) core.Row {
	cell := func(label, value string) core.Col {
		if label == "" {
			return col.New(6)
		}
		return col.New(6).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 5}),
		)
	}
	return row.New(11).Add(cell(label1, value1), cell(label2, value2))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo de Documento", 6, align.Left),
		h("Status do documento", 4, align.Center),
		h("Validade", 2, align.Right),
	)
}

// documentRows: una fila por tipo del registro.
func documentRows(rows []dto.DocumentRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		validity := "Indeterminado"
		if r.Status == document.StatusInvalid {
			validity = "-"
		} else if r.ExpiresAt != nil {
			validity = r.ExpiresAt.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(r.StatusLabel, props.Text{
				Size: 8, Top: 1, Align: align.Center, Color: statusColor(r.Status),
			})),
			col.New(2).Add(text.New(validity, props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return result
}

func legendRow() core.Row {
	item := func(label string, c *props.Color) core.Col {
		return col.New(4).Add(text.New(label, props.Text{Size: 7, Top: 2, Align: align.Center, Color: c}))
	}
	return row.New(8).Add(
		item(document.StatusValid.Label(), colorValid),
		item("Documento Pendente", colorInvalid),
		item(document.StatusOutdated.Label(), colorOutdated),
	)
}

func statusColor(st document.Status) *props.Color {
	switch st {
	case document.StatusValid:
		return colorValid
	case document.StatusOutdated:
		return colorOutdated
	default:
		return colorInvalid
	}
}
