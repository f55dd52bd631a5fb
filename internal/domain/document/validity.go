package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// Indefinite valor del select para documentos sin vencimiento.
const Indefinite = "Indeterminado"

// Validity ventana de validez elegida al cargar un documento.
type Validity struct {
	Days       int
	Indefinite bool
}

// ValidityOption opción del select "Validade do Documento".
type ValidityOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidityOptions opciones ofrecidas por el formulario.
var ValidityOptions = []ValidityOption{
	{Value: "30", Label: "30 dias"},
	{Value: "90", Label: "90 dias (3 meses)"},
	{Value: "120", Label: "120 dias (4 meses)"},
	{Value: "180", Label: "180 dias (6 meses)"},
	{Value: "365", Label: "365 dias (1 ano)"},
	{Value: Indefinite, Label: Indefinite},
}

// ParseValidity sólo acepta los valores de ValidityOptions.
func ParseValidity(s string) (Validity, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Indefinite) {
		return Validity{Indefinite: true}, nil
	}
	for _, o := range ValidityOptions {
		if o.Value == s {
			days, err := strconv.Atoi(s)
			if err != nil {
				break
			}
			return Validity{Days: days}, nil
		}
	}
	return Validity{}, domain.ErrInvalidValidity
}

// ExpiresAt fecha de vencimiento contada desde now; nil si es indeterminada.
func (v Validity) ExpiresAt(now time.Time) *time.Time {
	if v.Indefinite {
		return nil
	}
	t := now.AddDate(0, 0, v.Days)
	return &t
}
