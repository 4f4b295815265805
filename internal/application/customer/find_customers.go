package customer

import (
	"context"
	"strings"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// FindCustomersUseCase lista todos los clientes (sin paginación).
type FindCustomersUseCase struct {
	repo repository.CustomerRepository
	deps
}

// NewFindCustomersUseCase construye el caso de uso.
func NewFindCustomersUseCase(repo repository.CustomerRepository, log *logger.Logger) *FindCustomersUseCase {
	return &FindCustomersUseCase{repo: repo, deps: newDeps(nil, log)}
}

// Execute devuelve los clientes en el orden del repositorio. Nunca devuelve un slice nil.
func (uc *FindCustomersUseCase) Execute(ctx context.Context, q dto.FindCustomersQuery) (out []dto.CustomerResponse, err error) {
	ctx, span := uc.startSpan(ctx, "customer.FindAll")
	defer func() { endSpan(span, err) }()

	list, err := uc.repo.FindAll(ctx, entity.CustomerFilter{Search: strings.TrimSpace(q.Search)})
	if err != nil {
		uc.log.Error().Err(err).Msg("listado de clientes fallido")
		return nil, err
	}
	out = make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToResponse(c))
	}
	uc.log.Debug().Int("count", len(out)).Msg("clientes listados")
	return out, nil
}
