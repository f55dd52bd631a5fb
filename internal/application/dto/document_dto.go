package dto

import (
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/document"
)

// DocumentRowDTO fila de la tabla "Tipo de Documento / Status do documento".
type DocumentRowDTO struct {
	TypeID      int             `json:"id"`
	TypeKey     string          `json:"key"`
	Name        string          `json:"name"`
	Status      document.Status `json:"status"`
	StatusLabel string          `json:"status_label"`
	FileName    string          `json:"file_name,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// DocumentTableResponse tabla de documentos con los totales de la leyenda.
type DocumentTableResponse struct {
	CNPJ   string                  `json:"cnpjCliente"`
	Rows   []DocumentRowDTO        `json:"documents"`
	Counts map[document.Status]int `json:"counts"`
}

// DeleteDocumentsRequest selección de documentos a excluir (nombres o claves).
type DeleteDocumentsRequest struct {
	Documents []string `json:"documentos" validate:"dive,max=100"`
}

// UploadResult resultado del formulario de carga.
type UploadResult struct {
	State   document.UploadState `json:"state"`
	Sent    int                  `json:"sent"`
	Total   int                  `json:"total"`
	Dropped []string             `json:"dropped,omitempty"`
}

// DocumentEventDTO entrada del histórico.
type DocumentEventDTO struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	DocumentType string    `json:"document_type"`
	Actor        string    `json:"actor"`
	CreatedAt    time.Time `json:"created_at"`
}

// DocumentTypesResponse opciones de los selects del formulario.
type DocumentTypesResponse struct {
	Types      []document.Type           `json:"types"`
	Validities []document.ValidityOption `json:"validities"`
}

// UploadFailureResponse error de envío con el avance alcanzado.
type UploadFailureResponse struct {
	ErrorResponse
	Result UploadResult `json:"result"`
}
