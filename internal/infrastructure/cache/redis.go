// Package cache decora un CustomerRepository con un caché Redis del listado completo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/internal/infrastructure/telemetry"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// GenKey contador de generación del listado; cada escritura lo incrementa.
const GenKey = "customers:gen"

// ListKey clave del listado sin filtro para una generación. Un SET con una generación
// vieja queda en una clave que ya nadie lee y expira con el TTL.
func ListKey(gen int64) string {
	return fmt.Sprintf("customers:all:%d", gen)
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// NewClient abre un cliente Redis desde una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// CustomerRepo cachea FindAll sin filtro; cualquier escritura avanza la generación.
// Un fallo de Redis nunca falla la operación: se registra y se usa el repositorio.
type CustomerRepo struct {
	next   repository.CustomerRepository
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewCustomerRepo envuelve next.
func NewCustomerRepo(next repository.CustomerRepository, client redis.Cmdable, ttl time.Duration, log *logger.Logger) *CustomerRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerRepo{next: next, client: client, ttl: ttl, log: log.Component("cache")}
}

type cachedCustomer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *CustomerRepo) Add(ctx context.Context, in entity.NewCustomer) (string, error) {
	id, err := r.next.Add(ctx, in)
	if err == nil {
		r.invalidate(ctx)
	}
	return id, err
}

// FindAll sirve el listado completo desde Redis cuando está disponible.
func (r *CustomerRepo) FindAll(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	if filter.Term() != "" {
		return r.next.FindAll(ctx, filter)
	}
	gen, ok := r.generation(ctx)
	if !ok {
		return r.next.FindAll(ctx, filter)
	}
	if list, ok := r.load(ctx, gen); ok {
		return list, nil
	}
	// La generación se lee antes que el repositorio: si una escritura termina en el medio,
	// este listado se guarda bajo la generación anterior.
	list, err := r.next.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	r.store(ctx, gen, list)
	return list, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CustomerRepo) Update(ctx context.Context, id string, patch entity.CustomerPatch) error {
	err := r.next.Update(ctx, id, patch)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

// generation lee el contador; false si Redis no responde.
func (r *CustomerRepo) generation(ctx context.Context) (int64, bool) {
	gen, err := r.client.Get(ctx, GenKey).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return 0, true
	}
	telemetry.CacheLookupsTotal.WithLabelValues("error").Inc()
	r.log.Warn().Err(err).Msg("lectura de caché fallida")
	return 0, false
}

func (r *CustomerRepo) load(ctx context.Context, gen int64) ([]*entity.Customer, bool) {
	raw, err := r.client.Get(ctx, ListKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			telemetry.CacheLookupsTotal.WithLabelValues("miss").Inc()
		} else {
			telemetry.CacheLookupsTotal.WithLabelValues("error").Inc()
			r.log.Warn().Err(err).Msg("lectura de caché fallida")
		}
		return nil, false
	}
	var cached []cachedCustomer
	if err := json.Unmarshal(raw, &cached); err != nil {
		r.log.Warn().Err(err).Msg("caché corrupto, se descarta")
		r.invalidate(ctx)
		return nil, false
	}
	out := make([]*entity.Customer, 0, len(cached))
	for _, c := range cached {
		out = append(out, &entity.Customer{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Document:  c.Document,
			Phone:     c.Phone,
			Status:    entity.CustomerStatus(c.Status),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	telemetry.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return out, true
}

func (r *CustomerRepo) store(ctx context.Context, gen int64, list []*entity.Customer) {
	cached := make([]cachedCustomer, 0, len(list))
	for _, c := range list {
		cached = append(cached, cachedCustomer{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Document:  c.Document,
			Phone:     c.Phone,
			Status:    string(c.Status),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, ListKey(gen), raw, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("escritura de caché fallida")
	}
}

func (r *CustomerRepo) invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, GenKey).Err(); err != nil {
		r.log.Warn().Err(err).Msg("invalidación de caché fallida")
	}
}
