package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// writeError traduce errores de dominio a la respuesta HTTP. Las fallas del
// backend nunca exponen el detalle: el usuario ve el mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrUpload):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: domain.ErrUpload.Error()}
	case errors.Is(err, domain.ErrUploadIncomplete),
		errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrInvalidValidity),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: rootMessage(err)}
	case errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: domain.ErrSessionNotFound.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	default:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM", Message: domain.ErrUpstream.Error()}
	}
}

// rootMessage mensaje del sentinel de validación, sin el contexto interno.
func rootMessage(err error) string {
	for _, s := range []error{
		domain.ErrUploadIncomplete,
		domain.ErrInvalidDocumentType,
		domain.ErrInvalidValidity,
		domain.ErrInvalidStatus,
		domain.ErrNoSelection,
		domain.ErrInvalidInput,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
