package postgres

import "github.com/jhoicas/company-service/internal/domain/tenant"

// scopedArgs antepone el company_id del alcance como $1. Toda sentencia sobre filas de una
// empresa se escribe con "company_id = $1" (o la columna company_id en primera posición en
// los INSERT) y se ejecuta con estos argumentos; un alcance vacío no llega a la BD.
func scopedArgs(scope tenant.Scope, args ...any) ([]any, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	return append([]any{scope.CompanyID()}, args...), nil
}
