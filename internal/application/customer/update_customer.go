package customer

import (
	"context"
	"strings"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// UpdateCustomerUseCase actualiza parcialmente un cliente.
type UpdateCustomerUseCase struct {
	repo repository.CustomerRepository
	deps
}

// NewUpdateCustomerUseCase construye el caso de uso.
func NewUpdateCustomerUseCase(repo repository.CustomerRepository, events ports.EventPublisher, log *logger.Logger) *UpdateCustomerUseCase {
	return &UpdateCustomerUseCase{repo: repo, deps: newDeps(events, log)}
}

// Execute aplica solo los campos presentes en in; el resto conserva su valor.
func (uc *UpdateCustomerUseCase) Execute(ctx context.Context, id string, in dto.UpdateCustomerRequest) (err error) {
	ctx, span := uc.startSpan(ctx, "customer.Update")
	defer func() { endSpan(span, err) }()

	if err := requireID(id); err != nil {
		return err
	}
	patch, changed, err := BuildPatch(in)
	if err != nil {
		return err
	}

	if err := uc.repo.Update(ctx, id, patch); err != nil {
		uc.log.Error().Err(err).Str("customer_id", id).Msg("actualización de cliente fallida")
		return err
	}

	uc.log.Info().Str("customer_id", id).Int("fields", len(changed)).Msg("cliente actualizado")
	uc.publish(ctx, ports.CustomerUpdated, id, changed)
	return nil
}

// BuildPatch valida el DTO y lo traduce a entity.CustomerPatch junto con el mapa de campos cambiados.
func BuildPatch(in dto.UpdateCustomerRequest) (entity.CustomerPatch, map[string]string, error) {
	v := &domain.ValidationError{}
	var patch entity.CustomerPatch
	changed := map[string]string{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		requireNonEmpty(v, "name", name)
		patch.Name = &name
		changed["name"] = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		requireNonEmpty(v, "email", email)
		patch.Email = &email
		changed["email"] = email
	}
	if in.Document != nil {
		doc := strings.TrimSpace(*in.Document)
		requireNonEmpty(v, "document", doc)
		validateMasked(v, "document", doc)
		patch.Document = &doc
		changed["document"] = doc
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		requireNonEmpty(v, "phone", phone)
		validateMasked(v, "phone", phone)
		patch.Phone = &phone
		changed["phone"] = phone
	}
	if in.Status != nil {
		st, ok := entity.ParseStatus(*in.Status)
		if !ok {
			v.Add("status", "debe ser ACTIVE, INACTIVE, WAITING_FOR_ACTIVATION o DISABLED")
		}
		patch.Status = &st
		changed["status"] = string(st)
	}
	if patch.IsEmpty() {
		v.Add("body", "al menos un campo es requerido")
	}
	if err := v.OrNil(); err != nil {
		return entity.CustomerPatch{}, nil, err
	}
	return patch, changed, nil
}

func requireNonEmpty(v *domain.ValidationError, field, value string) {
	if value == "" {
		v.Add(field, "no puede quedar vacío")
	}
}
