package entity

import (
	"context"
	"time"
)

// Session sesión autenticada del dashboard. Guarda el token del backend
// para reenviarlo en cada llamada; el navegador sólo conoce el JWT propio.
type Session struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	BackendToken string    `json:"backend_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired indica si la sesión venció en el instante dado.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type sessionCtxKey struct{}

// ContextWithSession adjunta la sesión al contexto de la petición;
// los adaptadores del backend la leen para reenviar el token.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext devuelve la sesión del contexto o nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}
