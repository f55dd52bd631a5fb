// Package document concentra las reglas de documentos del onboarding:
// clasificación de estado, registro de tipos, ventanas de validez,
// filtrado de adjuntos y agregación por producto.
package document

import (
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// Status estado derivado de un documento exigido. Nunca se persiste.
type Status string

const (
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusOutdated Status = "outdated"
)

// Statuses en el orden de la leyenda del dashboard.
var Statuses = []Status{StatusValid, StatusInvalid, StatusOutdated}

// Classify deriva el estado de un documento.
//
//   - sin registro           -> invalid (nunca enviado o rechazado)
//   - registro sin validade  -> valid (validez indeterminada)
//   - validade antes de now  -> outdated
//   - en otro caso           -> valid
func Classify(hasRecord bool, expiresAt *time.Time, now time.Time) Status {
	if !hasRecord {
		return StatusInvalid
	}
	if expiresAt == nil {
		return StatusValid
	}
	if expiresAt.Before(now) {
		return StatusOutdated
	}
	return StatusValid
}

// Label texto de la leyenda.
func (s Status) Label() string {
	switch s {
	case StatusValid:
		return "Documento Válido"
	case StatusOutdated:
		return "Documento Desatualizado"
	default:
		return "Documento Inválido"
	}
}

// ParseStatus convierte el filtro recibido por query string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusValid, StatusInvalid, StatusOutdated:
		return Status(s), nil
	}
	return "", domain.ErrInvalidStatus
}
