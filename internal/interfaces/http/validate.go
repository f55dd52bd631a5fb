package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validateBody valida el DTO; en error responde 400 con los campos inválidos.
// Devuelve true si la petición puede continuar.
func validateBody(c *fiber.Ctx, in any) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, badRequest(c, "VALIDATION", "dados inválidos")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return false, badRequest(c, "VALIDATION", "campos inválidos: "+strings.Join(msgs, ", "))
}
