package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/domain"
)

// parseBody decodifica el JSON del cuerpo; si falla responde 400 INVALID_BODY y ok=false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return true, nil
}

// parseListQuery lee limit, offset y active. Límites fuera de rango se ajustan; active mal
// formado es error de validación.
func parseListQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	q := dto.ListQuery{
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", dto.DefaultLimit),
			Offset: c.QueryInt("offset", 0),
		},
	}
	q.DefaultPage()
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("%w: active debe ser true o false", domain.ErrInvalidInput)
		}
		q.Active = &active
	}
	return q, nil
}
