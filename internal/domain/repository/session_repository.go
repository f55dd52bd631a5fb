package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// SessionRepository almacén de sesiones del dashboard.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	// Get devuelve (nil, nil) si la sesión no existe o expiró.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
