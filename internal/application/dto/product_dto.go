package dto

import "github.com/jhoicas/Onboarding-api/internal/domain/document"

// ProductListResponse productos del cliente con la conciliación de documentos.
type ProductListResponse struct {
	CNPJ     string                 `json:"cnpjCliente"`
	Products []document.ProductView `json:"products"`
}
