package document_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

func file(name string, size int64) entity.Attachment {
	return entity.Attachment{
		Name: name,
		Size: size,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil },
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjuntos
// ──────────────────────────────────────────────────────────────────────────────

func TestAttach_DescartaArchivosGrandesYExtensionesNoPermitidas(t *testing.T) {
	var e document.UploadEntry
	dropped := e.Attach(
		file("rg.pdf", 1024),
		file("enorme.pdf", document.MaxAttachmentSize+1),
		file("planilha.xlsx", 10),
		file("foto.JPG", document.MaxAttachmentSize),
		file("sem-extensao", 10),
	)

	require.Len(t, e.Files, 2)
	assert.Equal(t, "rg.pdf", e.Files[0].Name)
	assert.Equal(t, "foto.JPG", e.Files[1].Name, "el límite es inclusivo y la extensión no distingue mayúsculas")
	assert.Len(t, dropped, 3)
}

func TestRemove_QuitaPorIndice(t *testing.T) {
	var e document.UploadEntry
	e.Attach(file("a.pdf", 1), file("b.pdf", 1), file("c.pdf", 1))
	e.Remove(1)
	e.Remove(10)

	require.Len(t, e.Files, 2)
	assert.Equal(t, "a.pdf", e.Files[0].Name)
	assert.Equal(t, "c.pdf", e.Files[1].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CamposFaltantesVuelveAEditing(t *testing.T) {
	reg := document.DefaultRegistry()
	cases := map[string]func(f *document.UploadForm){
		"sin filas":    func(f *document.UploadForm) {},
		"sin tipo":     func(f *document.UploadForm) { f.AddEntry("", "30").Attach(file("a.pdf", 1)) },
		"sin validade": func(f *document.UploadForm) { f.AddEntry("CNPJ", "").Attach(file("a.pdf", 1)) },
		"sin archivos": func(f *document.UploadForm) { f.AddEntry("CNPJ", "30") },
		"sólo descartados": func(f *document.UploadForm) {
			f.AddEntry("CNPJ", "30").Attach(file("a.exe", 1))
		},
	}
	for name, fill := range cases {
		t.Run(name, func(t *testing.T) {
			f := document.NewUploadForm("12345678000190")
			fill(f)

			err := f.Validate(reg, now)
			assert.ErrorIs(t, err, domain.ErrUploadIncomplete)
			assert.Equal(t, document.UploadEditing, f.State)
		})
	}
}

func TestValidate_TipoDesconocido(t *testing.T) {
	f := document.NewUploadForm("12345678000190")
	f.AddEntry("Tipo 1", "30").Attach(file("a.pdf", 1))

	err := f.Validate(document.DefaultRegistry(), now)
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
	assert.Equal(t, document.UploadEditing, f.State)
}

func TestValidate_ResuelveTipoYValidade(t *testing.T) {
	f := document.NewUploadForm("12345678000190")
	f.AddEntry("Contrato Social", "30").Attach(file("contrato.pdf", 1))
	f.AddEntry("TERMO_ADESAO", document.Indefinite).Attach(file("termo.png", 1))

	require.NoError(t, f.Validate(document.DefaultRegistry(), now))
	assert.Equal(t, document.UploadValidating, f.State)

	docs := f.Prepared()
	require.Len(t, docs, 2)
	assert.Equal(t, "CONTRATO_SOCIAL", docs[0].TypeKey)
	assert.Equal(t, "12345678000190", docs[0].CNPJ)
	require.NotNil(t, docs[0].ExpiresAt)
	assert.Equal(t, now.AddDate(0, 0, 30), *docs[0].ExpiresAt)
	assert.Equal(t, "TERMO_ADESAO", docs[1].TypeKey)
	assert.Nil(t, docs[1].ExpiresAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_SecuencialHastaDone(t *testing.T) {
	f := document.NewUploadForm("12345678000190")
	f.AddEntry("CNPJ", "30").Attach(file("a.pdf", 1))
	f.AddEntry("CONTRATO SOCIAL", "90").Attach(file("b.pdf", 1))
	require.NoError(t, f.Validate(document.DefaultRegistry(), now))

	var order []string
	err := f.Submit(context.Background(), func(_ context.Context, d entity.UploadedDocument) error {
		order = append(order, d.TypeKey)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"CARTAO_CNPJ", "CONTRATO_SOCIAL"}, order)
	assert.Equal(t, document.UploadDone, f.State)
	assert.Equal(t, 2, f.Sent)
}

func TestSubmit_PrimeraFallaAbortaLasRestantes(t *testing.T) {
	f := document.NewUploadForm("12345678000190")
	f.AddEntry("CNPJ", "30").Attach(file("a.pdf", 1))
	f.AddEntry("CONTRATO SOCIAL", "90").Attach(file("b.pdf", 1))
	f.AddEntry("TERMO DE ADESÃO", "180").Attach(file("c.pdf", 1))
	require.NoError(t, f.Validate(document.DefaultRegistry(), now))

	boom := errors.New("502 bad gateway")
	calls := 0
	err := f.Submit(context.Background(), func(_ context.Context, d entity.UploadedDocument) error {
		calls++
		if d.TypeKey == "CONTRATO_SOCIAL" {
			return boom
		}
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "la tercera entrada no se envía")
	assert.Equal(t, 1, f.Sent, "el éxito parcial no se revierte")
	assert.Equal(t, document.UploadFailed, f.State)
}

func TestSubmit_SinValidarRetornaError(t *testing.T) {
	f := document.NewUploadForm("12345678000190")
	err := f.Submit(context.Background(), func(context.Context, entity.UploadedDocument) error { return nil })
	assert.Error(t, err)
	assert.Equal(t, document.UploadEditing, f.State)
}
