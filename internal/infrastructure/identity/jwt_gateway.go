package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/authz"
	"github.com/jhoicas/company-service/internal/infrastructure/metrics"
	"github.com/jhoicas/company-service/pkg/jwt"
)

var _ ports.IdentityGateway = (*JWTGateway)(nil)

// JWTGateway verifica localmente tokens firmados por el servicio de identidad (HS256).
type JWTGateway struct {
	secret  string
	issuer  string
	metrics *metrics.Metrics
}

// NewJWTGateway issuer vacío desactiva la validación del emisor.
func NewJWTGateway(secret, issuer string, m *metrics.Metrics) *JWTGateway {
	return &JWTGateway{secret: secret, issuer: issuer, metrics: m}
}

// Resolve valida el token y traduce los permisos "accion:recurso"; los desconocidos se descartan.
func (g *JWTGateway) Resolve(_ context.Context, credential string) (*authz.Identity, error) {
	start := time.Now()
	if strings.TrimSpace(credential) == "" {
		g.metrics.IdentityResolved("jwt", metrics.OutcomeUnauthorized, 0)
		return nil, fmt.Errorf("%w: credencial vacía", domain.ErrUnauthorized)
	}
	claims, err := jwt.Parse(g.secret, g.issuer, credential)
	if err != nil {
		g.metrics.IdentityResolved("jwt", metrics.OutcomeUnauthorized, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	perms := make([]authz.Permission, 0, len(claims.Permissions))
	for _, s := range claims.Permissions {
		if p, ok := authz.ParsePermission(s); ok {
			perms = append(perms, p)
		}
	}
	g.metrics.IdentityResolved("jwt", metrics.OutcomeOK, time.Since(start))
	return &authz.Identity{
		UserID:      claims.UserID,
		CompanyID:   claims.CompanyID,
		IsOwner:     claims.IsOwner,
		Permissions: authz.NewPermissionSet(perms...),
	}, nil
}
