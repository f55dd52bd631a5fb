package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository vista de documentos del Client.
type DocumentRepository struct {
	c *Client
}

// Documents devuelve el repositorio de documentos sobre este cliente.
func (c *Client) Documents() *DocumentRepository {
	return &DocumentRepository{c: c}
}

// maxDownload tamaño máximo de un archivo descargado (límite de la carga).
var maxDownload int64 = 150 << 20

type documentRow struct {
	IDTipoDocumento    int         `json:"idTipoDocumento"`
	DescricaoDocumento string      `json:"descricaoDocumento"`
	NomeArquivo        string      `json:"nomeArquivo"`
	DataValidade       backendDate `json:"dataValidade"`
	DataUpload         backendDate `json:"dataUpload"`
}

type deleteRequest struct {
	CNPJCliente      string `json:"cnpjCliente"`
	IDsTipoDocumento []int  `json:"idsTipoDocumento"`
}

// ListByCustomer documentos en archivo para el cliente.
func (r *DocumentRepository) ListByCustomer(ctx context.Context, cnpj string) ([]entity.DocumentRecord, error) {
	q := url.Values{}
	q.Set("cnpjCliente", cnpj)

	var rows []documentRow
	if err := r.c.doJSON(ctx, http.MethodGet, pathCustomerDocuments, "customer_documents", q, nil, &rows); err != nil {
		if isNotFound(err) {
			return []entity.DocumentRecord{}, nil
		}
		return nil, err
	}
	out := make([]entity.DocumentRecord, 0, len(rows))
	for _, row := range rows {
		if bad := row.DataValidade.Invalid(); bad != "" {
			r.c.log.Warn().Str("cnpj", cnpj).Int("type_id", row.IDTipoDocumento).
				Str("dataValidade", bad).Msg("data de validade ilegível, tratada como indeterminada")
		}
		out = append(out, entity.DocumentRecord{
			TypeID:      row.IDTipoDocumento,
			Description: row.DescricaoDocumento,
			FileName:    row.NomeArquivo,
			ExpiresAt:   row.DataValidade.Time(),
			UploadedAt:  row.DataUpload.Time(),
		})
	}
	return out, nil
}

// Upload envía una entrada del formulario: files[] + fileTypes + cnpjCliente (+ dataValidade).
// El cuerpo se transmite con un pipe para no cargar los archivos en memoria.
func (r *DocumentRepository) Upload(ctx context.Context, doc entity.UploadedDocument) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, doc))
	}()

	req, err := r.c.newRequest(ctx, http.MethodPost, pathDocumentsUpload, nil, pr)
	if err != nil {
		pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.c.do(req, "documents_upload")
	if err != nil {
		pr.Close()
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func writeUploadForm(mw *multipart.Writer, doc entity.UploadedDocument) error {
	if err := mw.WriteField("cnpjCliente", doc.CNPJ); err != nil {
		return err
	}
	if err := mw.WriteField("fileTypes", doc.TypeKey); err != nil {
		return err
	}
	if doc.ExpiresAt != nil {
		if err := mw.WriteField("dataValidade", doc.ExpiresAt.Format("2006-01-02")); err != nil {
			return err
		}
	}
	for _, f := range doc.Files {
		if err := copyAttachment(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func copyAttachment(mw *multipart.Writer, f entity.Attachment) error {
	if f.Open == nil {
		return fmt.Errorf("backend: adjunto %s sin contenido", f.Name)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("backend: abrir adjunto %s: %w", f.Name, err)
	}
	defer src.Close()
	part, err := mw.CreateFormFile("files", f.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

// Delete exclui los tipos de documento indicados del cliente.
func (r *DocumentRepository) Delete(ctx context.Context, cnpj string, typeIDs []int) error {
	in := deleteRequest{CNPJCliente: cnpj, IDsTipoDocumento: typeIDs}
	return r.c.doJSON(ctx, http.MethodDelete, pathDocumentsDelete, "documents_delete", nil, in, nil)
}

// Download descarga el archivo; el nombre sale del Content-Disposition del backend.
func (r *DocumentRepository) Download(ctx context.Context, cnpj, description string) (*entity.DownloadedFile, error) {
	q := url.Values{}
	q.Set("cnpjCliente", cnpj)
	q.Set("descricaoDocumento", description)

	req, err := r.c.newRequest(ctx, http.MethodGet, pathDocumentsDownload, q, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	resp, err := r.c.do(req, "documents_download")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, fmt.Errorf("backend: leer descarga: %w", err)
	}
	if int64(len(content)) > maxDownload {
		return nil, fmt.Errorf("backend: descarga de %s supera %d bytes", description, maxDownload)
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &entity.DownloadedFile{
		FileName:    fileNameFromDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: ct,
		Content:     content,
	}, nil
}

// fileNameFromDisposition nombre del archivo o "" si el header no lo trae.
func fileNameFromDisposition(h string) string {
	if h == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(h)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
