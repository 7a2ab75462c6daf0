package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/authz"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// Locals keys en Fiber.
const (
	LocalIdentity  = "identity"
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRequestID = "request_id"
	LocalError     = "error"
)

// AuthMiddleware extrae el Bearer Token y lo resuelve contra el servicio de identidad en cada
// request. La llamada queda acotada por timeout. Guarda la identidad en c.Locals.
func AuthMiddleware(gateway ports.IdentityGateway, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		id, err := gateway.Resolve(ctx, tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			if !errors.Is(err, domain.ErrServiceUnavailable) && errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
			}
			c.Locals(LocalError, err)
			return writeError(c, err)
		}
		if _, err := id.Scope(); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "identidad sin empresa"})
		}

		c.Locals(LocalIdentity, id)
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalCompanyID, id.CompanyID)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad resuelta (después del middleware de auth) o nil.
func GetIdentity(c *fiber.Ctx) *authz.Identity {
	id, _ := c.Locals(LocalIdentity).(*authz.Identity)
	return id
}

// GetScope devuelve el alcance de empresa del llamante. Sin identidad: ErrUnauthorized.
func GetScope(c *fiber.Ctx) (tenant.Scope, error) {
	id := GetIdentity(c)
	if id == nil {
		return tenant.Scope{}, fmt.Errorf("%w: identidad no resuelta", domain.ErrUnauthorized)
	}
	return id.Scope()
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}
