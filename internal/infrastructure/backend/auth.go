package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/Onboarding-api/internal/application/ports"
	"github.com/jhoicas/Onboarding-api/internal/domain"
)

var _ ports.Authenticator = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login valida las credenciales en el backend y devuelve su token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, pathLogin, "login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", domain.ErrUnauthorized
	}
	return out.Token, nil
}
