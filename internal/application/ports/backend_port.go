package ports

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
)

// Authenticator valida credenciales contra el backend de onboarding y devuelve su token.
// Credenciales rechazadas deben retornar domain.ErrUnauthorized.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}

// ClientSheetGenerator genera la "Ficha Cadastral" en PDF.
type ClientSheetGenerator interface {
	GenerateClientSheet(ctx context.Context, detail *dto.ClientDetailView, documents []dto.DocumentRowDTO) ([]byte, error)
}

// UploadMetrics observa el resultado de cada formulario de carga.
type UploadMetrics interface {
	UploadFinished(outcome string)
}
