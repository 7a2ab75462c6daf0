package ports

import (
	"context"

	"github.com/jhoicas/company-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda nada aplicado (crear almacén + vínculo es todo o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		branches repository.BranchRepository,
		warehouses repository.WarehouseRepository,
		links repository.AssignmentRepository,
	) error) error
}
