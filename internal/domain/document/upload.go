package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// MaxAttachmentSize límite por archivo (150MB).
const MaxAttachmentSize int64 = 150 * 1024 * 1024

// AllowedExtensions extensiones aceptadas por el formulario.
var AllowedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// AcceptAttachment indica si el archivo entra en la lista de adjuntos.
func AcceptAttachment(a entity.Attachment) bool {
	if a.Size > MaxAttachmentSize {
		return false
	}
	ext := strings.ToLower(filepath.Ext(a.Name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UploadState estados del formulario de carga.
type UploadState string

const (
	UploadEditing    UploadState = "editing"
	UploadValidating UploadState = "validating"
	UploadSubmitting UploadState = "submitting"
	UploadDone       UploadState = "done"
	UploadFailed     UploadState = "failed"
)

// UploadEntry una fila del formulario: tipo, validade y archivos.
type UploadEntry struct {
	Type     string
	Validity string
	Files    []entity.Attachment
}

// Attach agrega archivos descartando en silencio los que exceden el tamaño
// o tienen extensión no permitida. Devuelve los descartados.
func (e *UploadEntry) Attach(files ...entity.Attachment) (dropped []entity.Attachment) {
	for _, f := range files {
		if !AcceptAttachment(f) {
			dropped = append(dropped, f)
			continue
		}
		e.Files = append(e.Files, f)
	}
	return dropped
}

// Remove quita el adjunto en la posición dada; índices fuera de rango se ignoran.
func (e *UploadEntry) Remove(index int) {
	if index < 0 || index >= len(e.Files) {
		return
	}
	e.Files = append(e.Files[:index], e.Files[index+1:]...)
}

func (e *UploadEntry) complete() bool {
	return strings.TrimSpace(e.Type) != "" && strings.TrimSpace(e.Validity) != "" && len(e.Files) > 0
}

// Sender envía una entrada al backend.
type Sender func(ctx context.Context, doc entity.UploadedDocument) error

// UploadForm máquina de estados editing -> validating -> submitting -> done|failed.
// No es transaccional: si falla la entrada N las anteriores ya quedaron en el backend.
type UploadForm struct {
	CNPJ    string
	Entries []*UploadEntry
	State   UploadState
	Sent    int

	prepared []entity.UploadedDocument
}

// NewUploadForm crea el formulario en estado editing.
func NewUploadForm(cnpj string) *UploadForm {
	return &UploadForm{CNPJ: cnpj, State: UploadEditing}
}

// AddEntry agrega una fila vacía y la devuelve para completarla.
func (f *UploadForm) AddEntry(docType, validity string) *UploadEntry {
	e := &UploadEntry{Type: docType, Validity: validity}
	f.Entries = append(f.Entries, e)
	return e
}

// Validate exige tipo, validade y al menos un archivo por fila y resuelve
// tipo y validade contra el registro. Si algo falta vuelve a editing.
func (f *UploadForm) Validate(reg *Registry, now time.Time) error {
	if f.State != UploadEditing {
		return fmt.Errorf("upload: validar en estado %s", f.State)
	}
	f.State = UploadValidating

	if len(f.Entries) == 0 {
		f.State = UploadEditing
		return domain.ErrUploadIncomplete
	}
	prepared := make([]entity.UploadedDocument, 0, len(f.Entries))
	for _, e := range f.Entries {
		if !e.complete() {
			f.State = UploadEditing
			return domain.ErrUploadIncomplete
		}
		t, err := reg.Resolve(e.Type)
		if err != nil {
			f.State = UploadEditing
			return err
		}
		v, err := ParseValidity(e.Validity)
		if err != nil {
			f.State = UploadEditing
			return err
		}
		prepared = append(prepared, entity.UploadedDocument{
			CNPJ:      f.CNPJ,
			TypeKey:   t.Key,
			Files:     e.Files,
			ExpiresAt: v.ExpiresAt(now),
		})
	}
	f.prepared = prepared
	return nil
}

// Prepared entradas resueltas por Validate.
func (f *UploadForm) Prepared() []entity.UploadedDocument {
	return f.prepared
}

// Submit envía cada entrada en orden, una petición por entrada.
// La primera falla aborta las restantes y deja el formulario en failed.
func (f *UploadForm) Submit(ctx context.Context, send Sender) error {
	if f.State != UploadValidating {
		return fmt.Errorf("upload: enviar en estado %s", f.State)
	}
	f.State = UploadSubmitting
	for i, doc := range f.prepared {
		if err := send(ctx, doc); err != nil {
			f.State = UploadFailed
			return fmt.Errorf("%w: entrada %d (%s): %w", domain.ErrUpload, i, doc.TypeKey, err)
		}
		f.Sent++
	}
	f.State = UploadDone
	return nil
}
