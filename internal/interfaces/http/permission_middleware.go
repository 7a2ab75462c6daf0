package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/domain/authz"
)

// RequirePermission devuelve un middleware Fiber que exige el par (acción, recurso) a la
// identidad resuelta. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalIdentity).
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad en el contexto.
//   - 403 Forbidden    → la identidad no es dueña y no tiene el permiso.
//
// No toca el repositorio: si se deniega, no hay efectos.
func RequirePermission(action authz.Action, resource authz.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el contexto",
			})
		}
		if err := authz.Require(*id, action, resource); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}
