package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Onboarding-api/internal/application/clients"
	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/sheet"
	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// ClientHandler listado, detalle y ficha de clientes (protegido).
type ClientHandler struct {
	uc    *clients.UseCase
	sheet *sheet.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.UseCase, sheetUC *sheet.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc, sheet: sheetUC}
}

// List godoc
// @Summary      Relatório de contas
// @Description  Sin filtros pagina el backend; con filtros pagina este servicio.
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        razaoSocial    query  string  false  "Razão social"
// @Param        cnpjCliente    query  string  false  "CNPJ"
// @Param        codigoCliente  query  string  false  "Código do cliente"
// @Param        filial         query  string  false  "Filial"
// @Param        page           query  int     false  "Página (desde 1)"
// @Param        size           query  int     false  "Tamaño (máx. 100)"
// @Success      200  {object}  dto.ClientPage
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var q dto.ClientListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros inválidos")
	}
	if ok, err := validateBody(c, q); !ok {
		return err
	}
	page, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: "Ocorreu um erro ao buscar clientes."})
		}
		return writeError(c, err)
	}
	return c.JSON(page)
}

// Detail godoc
// @Summary      Detalhes do cliente
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ"
// @Success      200  {object}  dto.ClientDetailView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{cnpj} [get]
func (h *ClientHandler) Detail(c *fiber.Ctx) error {
	view, err := h.uc.Detail(c.UserContext(), c.Params("cnpj"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// Sheet godoc
// @Summary      Ficha cadastral em PDF
// @Tags         clients
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        cnpj  path  string  true  "CNPJ"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{cnpj}/ficha.pdf [get]
func (h *ClientHandler) Sheet(c *fiber.Ctx) error {
	out, name, err := h.sheet.Generate(c.UserContext(), c.Params("cnpj"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out)
}
