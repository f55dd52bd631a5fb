package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeDocs struct {
	records    []entity.DocumentRecord
	uploads    []entity.UploadedDocument
	failOn     int // índice de upload que falla; -1 nunca
	deletedIDs []int
	file       *entity.DownloadedFile
	err        error
}

func (f *fakeDocs) ListByCustomer(_ context.Context, _ string) ([]entity.DocumentRecord, error) {
	return f.records, f.err
}

func (f *fakeDocs) Upload(_ context.Context, doc entity.UploadedDocument) error {
	if f.failOn >= 0 && len(f.uploads) == f.failOn {
		return errors.New("backend 500")
	}
	f.uploads = append(f.uploads, doc)
	return nil
}

func (f *fakeDocs) Delete(_ context.Context, _ string, ids []int) error {
	if f.err != nil {
		return f.err
	}
	f.deletedIDs = ids
	return nil
}

func (f *fakeDocs) Download(_ context.Context, _, _ string) (*entity.DownloadedFile, error) {
	return f.file, f.err
}

type fakeEvents struct {
	events []*entity.DocumentEvent
	err    error
}

func (f *fakeEvents) Record(_ context.Context, ev *entity.DocumentEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeEvents) ListByCNPJ(_ context.Context, _ string, limit, offset int) ([]*entity.DocumentEvent, error) {
	if offset >= len(f.events) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

type fakeMetrics struct{ outcomes []string }

func (f *fakeMetrics) UploadFinished(outcome string) { f.outcomes = append(f.outcomes, outcome) }

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(docs *fakeDocs, events *fakeEvents, m *fakeMetrics) *UseCase {
	uc := NewUseCase(docs, events, document.DefaultRegistry(), m, logger.Nop())
	uc.now = func() time.Time { return now }
	return uc
}

func pdf(name string) entity.Attachment {
	return entity.Attachment{Name: name, Size: 1024, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("%PDF")), nil
	}}
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestList_UnaFilaPorTipoConConteos(t *testing.T) {
	past := now.AddDate(0, -1, 0)
	docs := &fakeDocs{failOn: -1, records: []entity.DocumentRecord{
		{TypeID: 2, Description: "CONTRATO SOCIAL", FileName: "contrato.pdf"},
		{TypeID: 3, Description: "CNPJ", ExpiresAt: &past},
		{TypeID: 99, Description: "DESCONHECIDO"},
	}}
	uc := newUseCase(docs, &fakeEvents{}, nil)

	resp, err := uc.List(context.Background(), "12345678000190", "")
	require.NoError(t, err)
	require.Len(t, resp.Rows, 5)
	assert.Equal(t, document.StatusValid, resp.Rows[1].Status)
	assert.Equal(t, "Documento Válido", resp.Rows[1].StatusLabel)
	assert.Equal(t, document.StatusOutdated, resp.Rows[2].Status)
	assert.Equal(t, 3, resp.Counts[document.StatusInvalid])
}

func TestList_FiltroPorEstado(t *testing.T) {
	docs := &fakeDocs{failOn: -1, records: []entity.DocumentRecord{{TypeID: 1}}}
	uc := newUseCase(docs, &fakeEvents{}, nil)

	resp, err := uc.List(context.Background(), "12345678000190", "valid")
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "DOCUMENTO_PESSOAL", resp.Rows[0].TypeKey)
	assert.Equal(t, 4, resp.Counts[document.StatusInvalid], "los conteos ignoran el filtro")

	_, err = uc.List(context.Background(), "12345678000190", "vencido")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ── Upload ───────────────────────────────────────────────────────────────────

func TestUpload_FormularioIncompletoNoLlamaAlBackend(t *testing.T) {
	docs := &fakeDocs{failOn: -1}
	m := &fakeMetrics{}
	uc := newUseCase(docs, &fakeEvents{}, m)

	form := document.NewUploadForm("12345678000190")
	form.AddEntry("CONTRATO SOCIAL", "")
	form.Entries[0].Attach(pdf("a.pdf"))

	_, err := uc.Upload(context.Background(), form)
	assert.ErrorIs(t, err, domain.ErrUploadIncomplete)
	assert.Empty(t, docs.uploads)
	assert.Equal(t, document.UploadEditing, form.State)
	assert.Equal(t, []string{OutcomeIncomplete}, m.outcomes)
}

func TestUpload_EnviaCadaEntradaEnOrdenYRegistra(t *testing.T) {
	docs := &fakeDocs{failOn: -1}
	events := &fakeEvents{}
	uc := newUseCase(docs, events, &fakeMetrics{})
	ctx := entity.ContextWithSession(context.Background(), &entity.Session{Email: "ana@empresa.com"})

	form := document.NewUploadForm("12345678000190")
	form.AddEntry("Contrato Social", "90").Attach(pdf("contrato.pdf"))
	form.AddEntry("TERMO_ADESAO", document.Indefinite).Attach(pdf("termo.pdf"), pdf("termo2.pdf"))

	res, err := uc.Upload(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, document.UploadDone, res.State)
	assert.Equal(t, 2, res.Sent)

	require.Len(t, docs.uploads, 2)
	assert.Equal(t, "CONTRATO_SOCIAL", docs.uploads[0].TypeKey)
	require.NotNil(t, docs.uploads[0].ExpiresAt)
	assert.Equal(t, now.AddDate(0, 0, 90), *docs.uploads[0].ExpiresAt)
	assert.Nil(t, docs.uploads[1].ExpiresAt)
	assert.Len(t, docs.uploads[1].Files, 2)

	require.Len(t, events.events, 2)
	assert.Equal(t, entity.ActionUpload, events.events[0].Action)
	assert.Equal(t, "ana@empresa.com", events.events[0].Actor)
}

func TestUpload_PrimeraFallaAbortaElResto(t *testing.T) {
	docs := &fakeDocs{failOn: 1}
	m := &fakeMetrics{}
	uc := newUseCase(docs, &fakeEvents{}, m)

	form := document.NewUploadForm("12345678000190")
	form.AddEntry("CNPJ", "30").Attach(pdf("a.pdf"))
	form.AddEntry("CONTRATO SOCIAL", "30").Attach(pdf("b.pdf"))
	form.AddEntry("TERMO DE ADESÃO", "30").Attach(pdf("c.pdf"))

	res, err := uc.Upload(context.Background(), form)
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Equal(t, document.UploadFailed, res.State)
	assert.Equal(t, 1, res.Sent, "la primera entrada quedó en el backend")
	assert.Len(t, docs.uploads, 1)
	assert.Equal(t, []string{OutcomeFailed}, m.outcomes)
}

func TestUpload_FallaDelHistoricoNoInterrumpe(t *testing.T) {
	docs := &fakeDocs{failOn: -1}
	uc := newUseCase(docs, &fakeEvents{err: errors.New("db down")}, nil)

	form := document.NewUploadForm("12345678000190")
	form.AddEntry("CNPJ", "30").Attach(pdf("a.pdf"))

	res, err := uc.Upload(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, document.UploadDone, res.State)
}

// ── Delete / Download ────────────────────────────────────────────────────────

func TestDelete_SinSeleccion(t *testing.T) {
	uc := newUseCase(&fakeDocs{failOn: -1}, &fakeEvents{}, nil)
	err := uc.Delete(context.Background(), "12345678000190", nil)
	assert.ErrorIs(t, err, domain.ErrNoSelection)
	assert.Equal(t, "Por favor, selecione pelo menos um documento antes de prosseguir.", err.Error())
}

func TestDelete_ResuelveIdsSinDuplicados(t *testing.T) {
	docs := &fakeDocs{failOn: -1}
	events := &fakeEvents{}
	uc := newUseCase(docs, events, nil)

	err := uc.Delete(context.Background(), "12345678000190", []string{"CNPJ", "CARTAO_CNPJ", "termo de adesao"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, docs.deletedIDs)
	assert.Len(t, events.events, 2)
}

func TestDelete_TipoDesconocido(t *testing.T) {
	docs := &fakeDocs{failOn: -1}
	uc := newUseCase(docs, &fakeEvents{}, nil)

	err := uc.Delete(context.Background(), "12345678000190", []string{"PASSAPORTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
	assert.Nil(t, docs.deletedIDs)
}

func TestDownload_NombrePorDefecto(t *testing.T) {
	docs := &fakeDocs{failOn: -1, file: &entity.DownloadedFile{Content: []byte("%PDF")}}
	events := &fakeEvents{}
	uc := newUseCase(docs, events, nil)

	f, err := uc.Download(context.Background(), "12345678000190", "CONTRATO SOCIAL")
	require.NoError(t, err)
	assert.Equal(t, "CONTRATO SOCIAL.pdf", f.FileName)
	require.Len(t, events.events, 1)
	assert.Equal(t, entity.ActionDownload, events.events[0].Action)
}

func TestDownload_FallaDelBackend(t *testing.T) {
	uc := newUseCase(&fakeDocs{failOn: -1, err: errors.New("500")}, &fakeEvents{}, nil)
	_, err := uc.Download(context.Background(), "12345678000190", "CNPJ")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// ── History ──────────────────────────────────────────────────────────────────

func TestHistory_Paginado(t *testing.T) {
	events := &fakeEvents{}
	for i := 0; i < 3; i++ {
		events.events = append(events.events, &entity.DocumentEvent{ID: string(rune('a' + i)), Action: entity.ActionDelete})
	}
	uc := newUseCase(&fakeDocs{failOn: -1}, events, nil)

	list, err := uc.History(context.Background(), "12345678000190", dto.LimitOffset{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(domain.ErrUploadIncomplete))
	assert.True(t, IsValidationError(domain.ErrInvalidValidity))
	assert.False(t, IsValidationError(domain.ErrUpload))
}
