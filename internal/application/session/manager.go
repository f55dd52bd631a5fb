package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// Manager ciclo de vida de las sesiones del dashboard. Se construye una vez en main
// y se comparte entre el login y el middleware de autenticación.
type Manager struct {
	repo repository.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewManager construye el gestor de sesiones.
func NewManager(repo repository.SessionRepository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Manager{repo: repo, ttl: ttl, now: time.Now}
}

// TTL duración de cada sesión.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Login abre una sesión nueva con el token del backend.
func (m *Manager) Login(ctx context.Context, email, backendToken string) (*entity.Session, error) {
	now := m.now()
	s := &entity.Session{
		ID:           uuid.New().String(),
		Email:        email,
		BackendToken: backendToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
	if err := m.repo.Save(ctx, s, m.ttl); err != nil {
		return nil, err
	}
	return s, nil
}

// Get devuelve la sesión vigente o ErrSessionNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		_ = m.repo.Delete(ctx, id)
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Logout descarta la sesión. Cerrar una sesión inexistente no es error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.repo.Delete(ctx, id)
}
