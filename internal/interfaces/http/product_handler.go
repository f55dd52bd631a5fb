package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Onboarding-api/internal/application/products"
)

// ProductHandler productos del cliente (protegido).
type ProductHandler struct {
	uc *products.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *products.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Produtos do cliente
// @Description  Cada producto trae sus documentos clasificados y si quedó contratado.
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/clients/{cnpj}/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByCustomer(c.UserContext(), c.Params("cnpj"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
