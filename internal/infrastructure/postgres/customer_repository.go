package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, email, document, phone, status, created_at, updated_at`

// foldSQL replica entity.NormalizeSearch en SQL, pero sólo para las letras de foldFrom
// (acentos del portugués y del español). NormalizeSearch quita cualquier marca Mn, así que
// con otras letras acentuadas ("š", "ő", "ą") el backend Postgres no encuentra lo que sí
// encuentra el de memoria. Ampliar foldFrom/foldTo en pares; unaccent queda fuera porque
// exige una extensión que no todas las bases gestionadas permiten instalar.
const (
	foldFrom = "áàâãäéèêëíìîïóòôõöúùûüçñ"
	foldTo   = "aaaaaeeeeiiiiooooouuuucn"
	foldSQL  = `translate(lower(%s), '` + foldFrom + `', '` + foldTo + `')`
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q   Querier
	now func() time.Time
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q, now: time.Now}
}

// Add persiste un nuevo cliente y devuelve el UUID asignado.
func (r *CustomerRepo) Add(ctx context.Context, in entity.NewCustomer) (string, error) {
	id := uuid.New().String()
	now := in.CreatedAt
	if now.IsZero() {
		now = r.now().UTC()
	}
	query := `
		INSERT INTO customers (id, name, email, document, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		id, in.Name, in.Email, in.Document, in.Phone, string(in.Status), now, now,
	)
	if err != nil {
		return "", domain.NewRepositoryError("add", fmt.Errorf("insert customer: %w", err))
	}
	return id, nil
}

// FindAll lista los clientes por fecha de alta; con filter.Search filtra por nombre, email o documento.
func (r *CustomerRepo) FindAll(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if term := filter.Term(); term != "" {
		query += ` WHERE ` + fmt.Sprintf(foldSQL, "name") + ` LIKE $1
			OR ` + fmt.Sprintf(foldSQL, "email") + ` LIKE $1
			OR document LIKE $1`
		args = append(args, "%"+escapeLike(term)+"%")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewRepositoryError("find all", fmt.Errorf("list customers: %w", err))
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, domain.NewRepositoryError("find all", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewRepositoryError("find all", fmt.Errorf("list customers: %w", err))
	}
	return list, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.NewRepositoryError("get", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
		}
		return nil, domain.NewRepositoryError("get", err)
	}
	return c, nil
}

// Update aplica solo los campos no nil del patch (COALESCE conserva el valor previo).
func (r *CustomerRepo) Update(ctx context.Context, id string, patch entity.CustomerPatch) error {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	query := `
		UPDATE customers SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			document = COALESCE($4, document),
			phone = COALESCE($5, phone),
			status = COALESCE($6, status),
			updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		id, patch.Name, patch.Email, patch.Document, patch.Phone, status, r.now().UTC(),
	)
	if err != nil {
		if isInvalidText(err) {
			return domain.NewRepositoryError("update", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
		}
		return domain.NewRepositoryError("update", fmt.Errorf("update customer: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NewRepositoryError("update", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.NewRepositoryError("delete", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
		}
		return domain.NewRepositoryError("delete", fmt.Errorf("delete customer: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.NewRepositoryError("delete", fmt.Errorf("customer %s: %w", id, domain.ErrNotFound))
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Document, &c.Phone, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	c.Status = entity.CustomerStatus(status)
	return &c, nil
}

func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '%' || ch == '_' || ch == '\\' {
			r = append(r, '\\')
		}
		r = append(r, ch)
	}
	return string(r)
}
