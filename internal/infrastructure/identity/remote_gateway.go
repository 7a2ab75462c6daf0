package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/authz"
	"github.com/jhoicas/company-service/internal/infrastructure/metrics"
	"github.com/jhoicas/company-service/pkg/logger"
)

var _ ports.IdentityGateway = (*RemoteGateway)(nil)

// RemoteGateway resuelve la identidad llamando al servicio de identidad en cada request (sin caché).
type RemoteGateway struct {
	url     string
	timeout time.Duration
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewRemoteGateway construye el adaptador. url = base + ruta de resolución.
func NewRemoteGateway(baseURL, resolvePath string, timeout time.Duration, m *metrics.Metrics, log *logger.Logger) *RemoteGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &RemoteGateway{
		url:     strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(resolvePath, "/"),
		timeout: timeout,
		metrics: m,
		log:     log,
	}
}

// resolveResponse cuerpo 200 del servicio de identidad. Los ids pueden venir como texto o número.
type resolveResponse struct {
	UserID      dto.ExternalID `json:"user_id"`
	CompanyID   dto.ExternalID `json:"company_id"`
	IsOwner     bool           `json:"is_owner"`
	Permissions []struct {
		Action   string `json:"action"`
		Resource string `json:"resource"`
	} `json:"permissions"`
}

// Resolve valida la credencial contra el proveedor.
// 401/403 -> ErrUnauthorized; timeout, error de transporte o 5xx -> ErrServiceUnavailable.
func (g *RemoteGateway) Resolve(ctx context.Context, credential string) (*authz.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: credencial vacía", domain.ErrUnauthorized)
	}
	timeout := g.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 || ctx.Err() != nil {
		g.metrics.IdentityResolved("remote", metrics.OutcomeUnavailable, 0)
		return nil, fmt.Errorf("%w: contexto vencido antes de llamar", domain.ErrServiceUnavailable)
	}

	start := time.Now()
	agent := fiber.Get(g.url)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+credential)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(timeout)
	status, body, errs := agent.Bytes()
	elapsed := time.Since(start)

	if len(errs) > 0 {
		g.metrics.IdentityResolved("remote", metrics.OutcomeUnavailable, elapsed)
		g.log.Warn().Err(errs[0]).Dur("elapsed", elapsed).Msg("servicio de identidad no disponible")
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, errs[0])
	}

	switch {
	case status == fiber.StatusUnauthorized || status == fiber.StatusForbidden:
		g.metrics.IdentityResolved("remote", metrics.OutcomeUnauthorized, elapsed)
		return nil, fmt.Errorf("%w: credencial rechazada (%d)", domain.ErrUnauthorized, status)
	case status >= fiber.StatusInternalServerError:
		g.metrics.IdentityResolved("remote", metrics.OutcomeUnavailable, elapsed)
		g.log.Warn().Int("status", status).Msg("servicio de identidad respondió con error")
		return nil, fmt.Errorf("%w: status %d", domain.ErrServiceUnavailable, status)
	case status != fiber.StatusOK:
		g.metrics.IdentityResolved("remote", metrics.OutcomeUnauthorized, elapsed)
		return nil, fmt.Errorf("%w: status inesperado %d", domain.ErrUnauthorized, status)
	}

	var payload resolveResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		g.metrics.IdentityResolved("remote", metrics.OutcomeInvalidAnswer, elapsed)
		return nil, fmt.Errorf("%w: respuesta de identidad ilegible: %v", domain.ErrServiceUnavailable, err)
	}
	if payload.UserID == "" || payload.CompanyID == "" {
		g.metrics.IdentityResolved("remote", metrics.OutcomeInvalidAnswer, elapsed)
		return nil, fmt.Errorf("%w: identidad sin user_id o company_id", domain.ErrUnauthorized)
	}

	perms := make([]authz.Permission, 0, len(payload.Permissions))
	for _, p := range payload.Permissions {
		perm, ok := authz.NewPermission(p.Action, p.Resource)
		if !ok {
			g.log.Debug().Str("action", p.Action).Str("resource", p.Resource).Msg("permiso desconocido descartado")
			continue
		}
		perms = append(perms, perm)
	}

	identity := &authz.Identity{
		UserID:      payload.UserID.String(),
		CompanyID:   payload.CompanyID.String(),
		IsOwner:     payload.IsOwner,
		Permissions: authz.NewPermissionSet(perms...),
	}
	g.metrics.IdentityResolved("remote", metrics.OutcomeOK, elapsed)
	g.log.Debug().
		Str("user_id", identity.UserID).
		Str("company_id", identity.CompanyID).
		Bool("is_owner", identity.IsOwner).
		Strs("permissions", identity.Permissions.Strings()).
		Dur("elapsed", elapsed).
		Msg("identidad resuelta")
	return identity, nil
}
