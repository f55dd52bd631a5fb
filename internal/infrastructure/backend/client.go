package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// Rutas del backend de onboarding.
const (
	pathLogin             = "/oauth/login"
	pathClientsFindAll    = "/api/client/findAll"
	pathClientsFind       = "/api/client/findCliente"
	pathClientDetail      = "/api/v1/cliente-real/find/cnpjCliente="
	pathCustomerDocuments = "/api/documents/findCustomerDocuments"
	pathCustomerProducts  = "/api/products/findCustomerProducts"
	pathDocumentsUpload   = "/api/documents/upload"
	pathDocumentsDelete   = "/api/documents/delete"
	pathDocumentsDownload = "/api/documents/download"
)

// maxJSONBody límite de lectura de respuestas JSON.
const maxJSONBody = 8 << 20

// Observer recibe el resultado de cada llamada al backend (métricas).
type Observer interface {
	ObserveBackendRequest(endpoint, outcome string, elapsed time.Duration)
}

// StatusError respuesta no-2xx del backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s respondió HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client adaptador REST del backend de onboarding. Implementa el Authenticator y
// los repositorios de clientes, productos y documentos.
// El token de cada llamada sale de la sesión adjunta al contexto.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	log        *logger.Logger
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registra el observador de métricas.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient construye el adaptador. timeout aplica a cada petición completa.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.WithComponent("backend"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ── Núcleo HTTP ───────────────────────────────────────────────────────────────

// newRequest arma la petición con el token de la sesión del contexto, si existe.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if s := entity.SessionFromContext(ctx); s != nil && s.BackendToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.BackendToken)
	}
	return req, nil
}

// do ejecuta la petición, registra la métrica y traduce los códigos de error:
// 401/403 -> ErrUnauthorized, 404 -> ErrNotFound, otros no-2xx -> *StatusError.
// En éxito el llamador debe cerrar el Body.
func (c *Client) do(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "error", start)
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("backend: %s timeout o cancelación: %w", endpoint, ctxErr)
		}
		return nil, fmt.Errorf("backend: %s llamada HTTP fallida: %w", endpoint, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.observe(endpoint, "ok", start)
		return resp, nil
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		c.observe(endpoint, "unauthorized", start)
		return nil, domain.ErrUnauthorized
	case http.StatusNotFound:
		c.observe(endpoint, "not_found", start)
		return nil, domain.ErrNotFound
	}
	c.observe(endpoint, "error", start)
	c.log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("resposta de erro do backend")
	return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}

// doJSON envía in (si no es nil) como JSON y decodifica la respuesta en out (si no es nil).
func (c *Client) doJSON(ctx context.Context, method, path, endpoint string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request %s: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.do(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta %s: %w", endpoint, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: respuesta inválida de %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendRequest(endpoint, outcome, time.Since(start))
	}
}

// ── Fechas ────────────────────────────────────────────────────────────────────

// backendDate acepta "2006-01-02", RFC3339 y "2006-01-02T15:04:05"; vacío o null -> nil.
// Un valor que no se puede leer también queda en nil y se conserva en Invalid
// para que el llamador lo registre sin perder el resto de la respuesta.
type backendDate struct {
	t   *time.Time
	raw string
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (d *backendDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d.t, d.raw = nil, ""
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = &t
			return nil
		}
	}
	d.raw = s
	return nil
}

// Time fecha o nil.
func (d backendDate) Time() *time.Time {
	return d.t
}

// Invalid valor recibido que no es una fecha; "" si la fecha se leyó bien o venía vacía.
func (d backendDate) Invalid() string {
	return d.raw
}
