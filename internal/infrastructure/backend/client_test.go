package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/backend"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string]string
}

func (o *recordingObserver) ObserveBackendRequest(endpoint, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes[endpoint] = outcome
}

func newServer(t *testing.T, h http.HandlerFunc) (*backend.Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &recordingObserver{outcomes: map[string]string{}}
	return backend.NewClient(srv.URL+"/", 5*time.Second, logger.Nop(), backend.WithObserver(obs)), obs
}

func sessionCtx() context.Context {
	return entity.ContextWithSession(context.Background(), &entity.Session{ID: "s1", BackendToken: "tok-backend"})
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveToken(t *testing.T) {
	c, obs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@empresa.com", body["email"])
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	})

	tok, err := c.Login(context.Background(), "ana@empresa.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
	assert.Equal(t, "ok", obs.outcomes["login"])
}

func TestLogin_CredencialesRechazadas(t *testing.T) {
	c, obs := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), "ana@empresa.com", "errada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "unauthorized", obs.outcomes["login"])
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func TestFindAll_EnviaPaginaYToken(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/findAll", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		assert.Equal(t, "Bearer tok-backend", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"content":[{"id_cliente":7,"cnpjCliente":"123","razaoSocial":"Acme","nmEmpresa":"Matriz"}],"totalElements":31}`))
	})

	list, total, err := c.FindAll(sessionCtx(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 31, total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, "Matriz", list[0].Filial)
}

func TestFindFiltered_FormatosDeRespuesta(t *testing.T) {
	cases := map[string]string{
		"arreglo": `[{"cnpjCliente":"1"},{"cnpjCliente":"2"}]`,
		"pagina":  `{"content":[{"cnpjCliente":"1"},{"cnpjCliente":"2"}],"totalElements":2}`,
		"objeto":  `{"cnpjCliente":"1","razaoSocial":"Acme"}`,
	}
	want := map[string]int{"arreglo": 2, "pagina": 2, "objeto": 1}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				raw, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"razaoSocial":"Acme"}`, string(raw), "sólo campos no vacíos")
				_, _ = w.Write([]byte(payload))
			})
			list, err := c.FindFiltered(sessionCtx(), entity.ClientFilter{RazaoSocial: " Acme ", CNPJ: "  "})
			require.NoError(t, err)
			assert.Len(t, list, want[name])
		})
	}
}

func TestFindByCNPJ_MapeaCadastro(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cliente-real/find/cnpjCliente=12345678000190", r.URL.Path)
		_, _ = w.Write([]byte(`{"customerId":"C1","customerCnpj":"12345678000190","name":"Acme",
			"customerIe":"ISENTO","emails":{"primary":"a@b.com"},"address":{"city":"São Paulo"},
			"contact":[{"phone1":"","phone2":"11 3333-4444"}]}`))
	})

	got, err := c.FindByCNPJ(sessionCtx(), "12345678000190")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ISENTO", got.StateRegistration)
	assert.Equal(t, "a@b.com", got.Emails.Primary)
	assert.Equal(t, "São Paulo", got.Address.City)
	require.Len(t, got.Contacts, 1)
	assert.Equal(t, "11 3333-4444", got.Contacts[0].Phone2)
}

func TestFindByCNPJ_NoEncontrado(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	got, err := c.FindByCNPJ(sessionCtx(), "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestErrorDelBackend_StatusError(t *testing.T) {
	c, obs := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, _, err := c.FindAll(sessionCtx(), 0, 10)
	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Body)
	assert.Equal(t, "error", obs.outcomes["clients_find_all"])
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProducts_MapeaDocumentosExigidos(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123", r.URL.Query().Get("cnpjCliente"))
		_, _ = w.Write([]byte(`[{"id":"p1","nome":"Programa Acelere","elegivel":true,
			"documentos":[{"nome":"CNPJ","enviado":true,"dataValidade":"2026-01-31"},{"nome":"CONTRATO SOCIAL","enviado":false,"dataValidade":null}]}]`))
	})

	list, err := c.Products().ListByCustomer(sessionCtx(), "123")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Eligible)
	require.Len(t, list[0].Requirements, 2)
	require.NotNil(t, list[0].Requirements[0].ExpiresAt)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), *list[0].Requirements[0].ExpiresAt)
	assert.Nil(t, list[0].Requirements[1].ExpiresAt)
}

// ── Documentos ───────────────────────────────────────────────────────────────

func TestDocuments_ListByCustomer(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/findCustomerDocuments", r.URL.Path)
		_, _ = w.Write([]byte(`[{"idTipoDocumento":2,"descricaoDocumento":"CONTRATO SOCIAL","nomeArquivo":"c.pdf","dataValidade":"2026-05-01T00:00:00Z"}]`))
	})

	recs, err := c.Documents().ListByCustomer(sessionCtx(), "123")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].TypeID)
	assert.Equal(t, "c.pdf", recs[0].FileName)
	assert.NotNil(t, recs[0].ExpiresAt)
}

func TestDocuments_ListByCustomer_FechaIlegibleNoTumbaLaTabla(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"idTipoDocumento":1,"descricaoDocumento":"DOCUMENTO PESSOAL","nomeArquivo":"rg.pdf","dataValidade":"31/12/2026"},
			{"idTipoDocumento":2,"descricaoDocumento":"CONTRATO SOCIAL","nomeArquivo":"c.pdf","dataValidade":"2026-05-01"}]`))
	})

	recs, err := c.Documents().ListByCustomer(sessionCtx(), "123")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[0].ExpiresAt, "la fecha ilegible queda como indeterminada")
	assert.NotNil(t, recs[1].ExpiresAt)
}

func TestProducts_FechaIlegibleNoTumbaLaLista(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"p1","nome":"Conta PJ","elegivel":true,
			"documentos":[{"nome":"CNPJ","enviado":true,"dataValidade":"amanhã"}]}]`))
	})

	list, err := c.Products().ListByCustomer(sessionCtx(), "123")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Requirements, 1)
	assert.Nil(t, list[0].Requirements[0].ExpiresAt)
}

func TestDocuments_UploadMultipart(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "123", r.FormValue("cnpjCliente"))
		assert.Equal(t, "CONTRATO_SOCIAL", r.FormValue("fileTypes"))
		assert.Equal(t, "2026-06-08", r.FormValue("dataValidade"))
		files := r.MultipartForm.File["files"]
		if assert.Len(t, files, 2) {
			assert.Equal(t, "a.pdf", files[0].Filename)
		}
		w.WriteHeader(http.StatusCreated)
	})

	exp := time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC)
	open := func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("%PDF-1.4")), nil }
	err := c.Documents().Upload(sessionCtx(), entity.UploadedDocument{
		CNPJ:      "123",
		TypeKey:   "CONTRATO_SOCIAL",
		ExpiresAt: &exp,
		Files:     []entity.Attachment{{Name: "a.pdf", Open: open}, {Name: "b.png", Open: open}},
	})
	require.NoError(t, err)
}

func TestDocuments_UploadSinValidadeOmiteCampo(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, ok := r.MultipartForm.Value["dataValidade"]
		assert.False(t, ok)
	})
	open := func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil }
	err := c.Documents().Upload(sessionCtx(), entity.UploadedDocument{
		CNPJ: "123", TypeKey: "CARTAO_CNPJ", Files: []entity.Attachment{{Name: "a.pdf", Open: open}},
	})
	require.NoError(t, err)
}

func TestDocuments_Delete(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"cnpjCliente":"123","idsTipoDocumento":[2,5]}`, string(raw))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Documents().Delete(sessionCtx(), "123", []int{2, 5}))
}

func TestDocuments_DownloadNombreDelHeader(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CONTRATO SOCIAL", r.URL.Query().Get("descricaoDocumento"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="contrato_2026.pdf"`)
		_, _ = w.Write([]byte("%PDF"))
	})

	f, err := c.Documents().Download(sessionCtx(), "123", "CONTRATO SOCIAL")
	require.NoError(t, err)
	assert.Equal(t, "contrato_2026.pdf", f.FileName)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, []byte("%PDF"), f.Content)
}

func TestDocuments_DownloadSinHeader(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	})

	f, err := c.Documents().Download(sessionCtx(), "123", "CNPJ")
	require.NoError(t, err)
	assert.Empty(t, f.FileName, "el caso de uso aplica el nombre por defecto")
}

func TestDocuments_DownloadExcedeLimite_RetornaError(t *testing.T) {
	t.Cleanup(backend.SetMaxDownload(8))
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("123456789"))
	})

	f, err := c.Documents().Download(sessionCtx(), "123", "CNPJ")
	assert.Error(t, err, "un archivo truncado no se sirve como descarga válida")
	assert.Nil(t, f)
}

func TestDocuments_DownloadEnElLimite(t *testing.T) {
	t.Cleanup(backend.SetMaxDownload(8))
	c, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("12345678"))
	})

	f, err := c.Documents().Download(sessionCtx(), "123", "CNPJ")
	require.NoError(t, err)
	assert.Len(t, f.Content, 8)
}
