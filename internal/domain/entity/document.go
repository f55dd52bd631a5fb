package entity

import (
	"io"
	"time"
)

// DocumentRecord documento en archivo para un cliente, según el backend.
// ExpiresAt nil significa validez indeterminada.
type DocumentRecord struct {
	TypeID      int
	Description string
	FileName    string
	ExpiresAt   *time.Time
	UploadedAt  *time.Time
}

// Attachment archivo adjunto en el formulario de carga.
type Attachment struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadedDocument una entrada del formulario lista para enviar al backend.
// No se retiene después del envío.
type UploadedDocument struct {
	CNPJ      string
	TypeKey   string
	Files     []Attachment
	ExpiresAt *time.Time
}

// DownloadedFile contenido devuelto por el backend en una descarga.
type DownloadedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Acciones registradas en el histórico de documentos.
const (
	ActionUpload   = "upload"
	ActionDelete   = "delete"
	ActionDownload = "download"
)

// DocumentEvent registro del histórico de operaciones sobre documentos.
type DocumentEvent struct {
	ID           string
	CNPJ         string
	Action       string
	DocumentType string
	Actor        string
	CreatedAt    time.Time
}
