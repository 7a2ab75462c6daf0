package ports

import (
	"context"

	"github.com/jhoicas/company-service/internal/domain/authz"
)

// IdentityGateway define el puerto de salida hacia el servicio de identidad.
// Cualquier adaptador (HTTP remoto, JWT local, fake de tests) debe implementar esta interfaz.
//
// Resolve devuelve domain.ErrUnauthorized si la credencial falta, está mal formada o el
// proveedor la rechaza, y domain.ErrServiceUnavailable si el proveedor no responde a tiempo.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type IdentityGateway interface {
	Resolve(ctx context.Context, credential string) (*authz.Identity, error)
}
