package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// Clock permite fijar la hora en tests.
type Clock func() time.Time

// systemClock trunca a microsegundos, la precisión de timestamptz.
func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// isID informa si id tiene forma de UUID. Un id mal formado no puede existir.
func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ownerLookup devuelve el company_id dueño de una entidad o "" si no existe.
type ownerLookup func(ctx context.Context, id string) (string, error)

// checkOwnership distingue "no existe" (ErrNotFound) de "existe pero es de otra empresa"
// (ErrCrossTenant). Solo lo usan las operaciones que crean vínculos.
func checkOwnership(ctx context.Context, scope tenant.Scope, owner ownerLookup, id, what string) error {
	if !isID(id) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	companyID, err := owner(ctx, id)
	if err != nil {
		return err
	}
	if companyID == "" {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	if !scope.Owns(companyID) {
		return fmt.Errorf("%w: %s %s", domain.ErrCrossTenant, what, id)
	}
	return nil
}

func toListFilter(q dto.ListQuery) repository.ListFilter {
	q.DefaultPage()
	return repository.ListFilter{Active: q.Active, Limit: q.Limit, Offset: q.Offset}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
