// Package tenant define el alcance multi-empresa de las consultas.
//
// Toda lectura o escritura sobre filas de una empresa recibe un Scope; los
// repositorios no exponen otra forma de filtrar, de modo que olvidar el
// predicado company_id no es posible desde un caso de uso.
package tenant

import (
	"fmt"
	"strings"

	"github.com/jhoicas/company-service/internal/domain"
)

// Scope identifica la empresa del llamante. El valor cero no es válido.
type Scope struct {
	companyID string
}

// NewScope construye el alcance para una empresa. companyID vacío es un error de autenticación:
// la identidad resuelta siempre trae empresa.
func NewScope(companyID string) (Scope, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return Scope{}, fmt.Errorf("%w: company_id vacío", domain.ErrUnauthorized)
	}
	return Scope{companyID: companyID}, nil
}

// MustScope es NewScope para valores conocidos (tests, seeds). Hace panic si companyID está vacío.
func MustScope(companyID string) Scope {
	s, err := NewScope(companyID)
	if err != nil {
		panic(err)
	}
	return s
}

// CompanyID devuelve la empresa del alcance.
func (s Scope) CompanyID() string { return s.companyID }

// Valid informa si el alcance fue construido con NewScope.
func (s Scope) Valid() bool { return s.companyID != "" }

// Owns informa si una fila con el company_id dado pertenece al alcance.
func (s Scope) Owns(companyID string) bool {
	return s.Valid() && s.companyID == companyID
}

// Check devuelve ErrUnauthorized si el alcance es el valor cero.
func (s Scope) Check() error {
	if !s.Valid() {
		return fmt.Errorf("%w: alcance de empresa ausente", domain.ErrUnauthorized)
	}
	return nil
}
