package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/ports"
	"github.com/jhoicas/Onboarding-api/internal/application/session"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/pkg/jwt"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y logout.
// Las credenciales se validan contra el backend; aquí sólo se abre la sesión.
type AuthUseCase struct {
	backend  ports.Authenticator
	sessions *session.Manager
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(backend ports.Authenticator, sessions *session.Manager, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{backend: backend, sessions: sessions, jwtCfg: jwtCfg, log: log.WithComponent("auth")}
}

// Login valida email/password en el backend, guarda su token en una sesión nueva
// y retorna el JWT propio del dashboard.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	backendToken, err := uc.backend.Login(ctx, email, in.Password)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", email).Msg("login rechazado")
		return nil, domain.Upstream(err)
	}
	if backendToken == "" {
		return nil, domain.ErrUnauthorized
	}
	s, err := uc.sessions.Login(ctx, email, backendToken)
	if err != nil {
		uc.log.Error().Err(err).Msg("erro ao salvar sessão")
		return nil, err
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, s.ID, email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessions.Logout(ctx, s.ID)
		return nil, err
	}
	if s.ExpiresAt.Before(exp) {
		exp = s.ExpiresAt
	}
	uc.log.Info().Str("email", email).Str("sid", s.ID).Msg("sessão iniciada")
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, Email: email}, nil
}

// Logout descarta la sesión; el token del backend deja de estar disponible.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Logout(ctx, sessionID)
}
