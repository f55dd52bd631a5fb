package documents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/ports"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// Resultados reportados a UploadMetrics.
const (
	OutcomeDone       = "done"
	OutcomeFailed     = "failed"
	OutcomeIncomplete = "incomplete"
)

// UseCase tabla de documentos, carga, exclusión, descarga e histórico.
type UseCase struct {
	repo     repository.DocumentRepository
	events   repository.DocumentEventRepository
	registry *document.Registry
	metrics  ports.UploadMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	repo repository.DocumentRepository,
	events repository.DocumentEventRepository,
	registry *document.Registry,
	metrics ports.UploadMetrics,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		repo:     repo,
		events:   events,
		registry: registry,
		metrics:  metrics,
		log:      log.WithComponent("documents"),
		now:      time.Now,
	}
}

// Registry registro de tipos usado por el caso de uso.
func (uc *UseCase) Registry() *document.Registry {
	return uc.registry
}

// List tabla de documentos del cliente; status vacío = sin filtro.
func (uc *UseCase) List(ctx context.Context, cnpj, status string) (*dto.DocumentTableResponse, error) {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	var filter document.Status
	if status != "" {
		st, err := document.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter = st
	}

	records, err := uc.repo.ListByCustomer(ctx, cnpj)
	if err != nil {
		uc.log.Error().Err(err).Str("cnpj", cnpj).Msg("erro ao buscar documentos")
		return nil, domain.Upstream(err)
	}
	rows, unknown := document.BuildTable(uc.registry, records, uc.now())
	for _, rec := range unknown {
		uc.log.Warn().Str("cnpj", cnpj).Int("type_id", rec.TypeID).Str("descricao", rec.Description).
			Msg("tipo de documento desconhecido ignorado")
	}

	counts := document.CountByStatus(rows)
	if filter != "" {
		rows = document.FilterRows(rows, filter)
	}
	return &dto.DocumentTableResponse{CNPJ: cnpj, Rows: ToRowDTOs(rows), Counts: counts}, nil
}

// Upload valida el formulario y, si está completo, envía cada entrada en orden.
// Un formulario incompleto no genera ninguna petición al backend.
func (uc *UseCase) Upload(ctx context.Context, form *document.UploadForm) (*dto.UploadResult, error) {
	form.CNPJ = entity.NormalizeCNPJ(form.CNPJ)
	if form.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := form.Validate(uc.registry, uc.now()); err != nil {
		uc.observe(OutcomeIncomplete)
		return nil, err
	}

	err := form.Submit(ctx, func(ctx context.Context, doc entity.UploadedDocument) error {
		if err := uc.repo.Upload(ctx, doc); err != nil {
			return err
		}
		uc.record(ctx, doc.CNPJ, entity.ActionUpload, doc.TypeKey)
		return nil
	})
	result := &dto.UploadResult{State: form.State, Sent: form.Sent, Total: len(form.Entries)}
	if err != nil {
		uc.observe(OutcomeFailed)
		uc.log.Error().Err(err).Str("cnpj", form.CNPJ).Int("sent", form.Sent).Int("total", len(form.Entries)).
			Msg("erro ao enviar documentos")
		return result, err
	}
	uc.observe(OutcomeDone)
	return result, nil
}

// Delete exclui los documentos seleccionados (nombres o claves del registro).
func (uc *UseCase) Delete(ctx context.Context, cnpj string, selected []string) error {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return domain.ErrInvalidInput
	}
	if len(selected) == 0 {
		return domain.ErrNoSelection
	}
	ids := make([]int, 0, len(selected))
	keys := make([]string, 0, len(selected))
	seen := make(map[int]bool, len(selected))
	for _, s := range selected {
		t, err := uc.registry.Resolve(s)
		if err != nil {
			return err
		}
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		ids = append(ids, t.ID)
		keys = append(keys, t.Key)
	}
	if err := uc.repo.Delete(ctx, cnpj, ids); err != nil {
		uc.log.Error().Err(err).Str("cnpj", cnpj).Ints("ids", ids).Msg("erro ao excluir documentos")
		return domain.Upstream(err)
	}
	for _, k := range keys {
		uc.record(ctx, cnpj, entity.ActionDelete, k)
	}
	return nil
}

// Download descarga el archivo de un tipo de documento del cliente.
func (uc *UseCase) Download(ctx context.Context, cnpj, description string) (*entity.DownloadedFile, error) {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.registry.Resolve(description)
	if err != nil {
		return nil, err
	}
	f, err := uc.repo.Download(ctx, cnpj, t.Name)
	if err != nil {
		uc.log.Error().Err(err).Str("cnpj", cnpj).Str("tipo", t.Key).Msg("erro ao baixar documento")
		return nil, domain.Upstream(err)
	}
	if f.FileName == "" {
		f.FileName = t.Name + ".pdf"
	}
	uc.record(ctx, cnpj, entity.ActionDownload, t.Key)
	return f, nil
}

// History operaciones registradas para el cliente, más recientes primero.
func (uc *UseCase) History(ctx context.Context, cnpj string, page dto.LimitOffset) ([]dto.DocumentEventDTO, error) {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	page.Defaults()
	list, err := uc.events.ListByCNPJ(ctx, cnpj, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentEventDTO, 0, len(list))
	for _, ev := range list {
		out = append(out, dto.DocumentEventDTO{
			ID:           ev.ID,
			Action:       ev.Action,
			DocumentType: ev.DocumentType,
			Actor:        ev.Actor,
			CreatedAt:    ev.CreatedAt,
		})
	}
	return out, nil
}

// ToRowDTOs convierte filas de dominio a la respuesta HTTP.
func ToRowDTOs(rows []document.Row) []dto.DocumentRowDTO {
	out := make([]dto.DocumentRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DocumentRowDTO{
			TypeID:      r.Type.ID,
			TypeKey:     r.Type.Key,
			Name:        r.Type.Name,
			Status:      r.Status,
			StatusLabel: r.Status.Label(),
			FileName:    r.FileName,
			ExpiresAt:   r.ExpiresAt,
		})
	}
	return out
}

// record registra en el histórico; una falla se registra en el log y no interrumpe al usuario.
func (uc *UseCase) record(ctx context.Context, cnpj, action, docType string) {
	actor := ""
	if s := entity.SessionFromContext(ctx); s != nil {
		actor = s.Email
	}
	ev := &entity.DocumentEvent{
		ID:           uuid.New().String(),
		CNPJ:         cnpj,
		Action:       action,
		DocumentType: docType,
		Actor:        actor,
		CreatedAt:    uc.now(),
	}
	if err := uc.events.Record(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("cnpj", cnpj).Str("action", action).Msg("histórico de documentos indisponível")
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.UploadFinished(outcome)
	}
}

// IsValidationError distingue errores que el formulario muestra en línea.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrUploadIncomplete) ||
		errors.Is(err, domain.ErrInvalidDocumentType) ||
		errors.Is(err, domain.ErrInvalidValidity) ||
		errors.Is(err, domain.ErrNoSelection) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidInput)
}
