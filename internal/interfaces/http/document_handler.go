package http

import (
	"errors"
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Onboarding-api/internal/application/documents"
	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// DocumentHandler tabla, carga, exclusión, descarga e histórico de documentos (protegido).
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Documentos do cliente
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        cnpj    path   string  true   "CNPJ"
// @Param        status  query  string  false  "valid | invalid | outdated"
// @Success      200  {object}  dto.DocumentTableResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients/{cnpj}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("cnpj"), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Adicionar documentos
// @Description  multipart: entries[N][type], entries[N][validity], entries[N][files] (uno o más).
// @Description  Cada entrada se envía al backend en orden; la primera falla aborta el resto.
// @Tags         documents
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.UploadFailureResponse
// @Router       /api/clients/{cnpj}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	mf, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "INVALID_BODY", "formulário multipart inválido")
	}
	form, dropped := buildUploadForm(c.Params("cnpj"), mf)

	result, err := h.uc.Upload(c.UserContext(), form)
	if err != nil {
		if errors.Is(err, domain.ErrUpload) && result != nil {
			result.Dropped = dropped
			status, body := errorResponse(err)
			return c.Status(status).JSON(dto.UploadFailureResponse{ErrorResponse: body, Result: *result})
		}
		return writeError(c, err)
	}
	result.Dropped = dropped
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Delete godoc
// @Summary      Excluir documentos
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Param        cnpj  path  string                      true  "CNPJ"
// @Param        body  body  dto.DeleteDocumentsRequest  true  "documentos a excluir"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients/{cnpj}/documents [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteDocumentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if ok, err := validateBody(c, in); !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), c.Params("cnpj"), in.Documents); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Download godoc
// @Summary      Baixar documento
// @Tags         documents
// @Security     BearerAuth
// @Produce      application/octet-stream
// @Param        cnpj                path   string  true  "CNPJ"
// @Param        descricaoDocumento  query  string  true  "Tipo de documento"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients/{cnpj}/documents/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	f, err := h.uc.Download(c.UserContext(), c.Params("cnpj"), c.Query("descricaoDocumento"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(f.FileName)
	if f.ContentType != "" {
		c.Set(fiber.HeaderContentType, f.ContentType)
	}
	return c.Send(f.Content)
}

// History godoc
// @Summary      Histórico de operações sobre documentos
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        cnpj    path   string  true   "CNPJ"
// @Param        limit   query  int     false  "Límite (20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.DocumentEventDTO
// @Router       /api/clients/{cnpj}/documents/history [get]
func (h *DocumentHandler) History(c *fiber.Ctx) error {
	var page dto.LimitOffset
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	list, err := h.uc.History(c.UserContext(), c.Params("cnpj"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Types godoc
// @Summary      Tipos de documento y opciones de validade
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.DocumentTypesResponse
// @Router       /api/document-types [get]
func (h *DocumentHandler) Types(c *fiber.Ctx) error {
	return c.JSON(dto.DocumentTypesResponse{
		Types:      h.uc.Registry().Options(),
		Validities: document.ValidityOptions,
	})
}

// ── Multipart ─────────────────────────────────────────────────────────────────

var entryKeyRe = regexp.MustCompile(`^entries\[(\d+)\]\[(type|validity|files)\]$`)

type rawEntry struct {
	docType  string
	validity string
	files    []*multipart.FileHeader
}

// buildUploadForm arma el formulario en orden de índice. Los adjuntos fuera de
// tamaño o extensión se descartan y se devuelven por nombre.
func buildUploadForm(cnpj string, mf *multipart.Form) (*document.UploadForm, []string) {
	entries := map[int]*rawEntry{}
	entry := func(key string) (*rawEntry, string) {
		m := entryKeyRe.FindStringSubmatch(key)
		if m == nil {
			return nil, ""
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, ""
		}
		e, ok := entries[idx]
		if !ok {
			e = &rawEntry{}
			entries[idx] = e
		}
		return e, m[2]
	}
	for key, values := range mf.Value {
		e, field := entry(key)
		if e == nil || len(values) == 0 {
			continue
		}
		switch field {
		case "type":
			e.docType = values[0]
		case "validity":
			e.validity = values[0]
		}
	}
	for key, files := range mf.File {
		e, field := entry(key)
		if e == nil || field != "files" {
			continue
		}
		e.files = append(e.files, files...)
	}

	indexes := make([]int, 0, len(entries))
	for idx := range entries {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	form := document.NewUploadForm(cnpj)
	var dropped []string
	for _, idx := range indexes {
		raw := entries[idx]
		e := form.AddEntry(raw.docType, raw.validity)
		for _, a := range e.Attach(toAttachments(raw.files)...) {
			dropped = append(dropped, a.Name)
		}
	}
	return form, dropped
}

func toAttachments(files []*multipart.FileHeader) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(files))
	for _, fh := range files {
		fh := fh
		out = append(out, entity.Attachment{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out
}
