// Package restclient implementa CustomerRepository contra la API HTTP del servicio.
// Es el backend del cliente de terminal.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/domain/repository"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

var _ repository.CustomerRepository = (*Client)(nil)

// Config parámetros de conexión.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

// Client cliente JSON de /api protegido por un circuit breaker.
// Solo los 5xx y los errores de red cuentan como fallas del breaker.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     *logger.Logger

	token string
}

// New construye el cliente. log puede ser nil.
func New(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	l := log.Component("restclient")
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     l,
		token:   cfg.Token,
	}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "customers-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			var se *statusError
			return err == nil || (errors.As(err, &se) && se.status < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker cambió de estado")
		},
	})
	return c
}

// SetToken reemplaza el Bearer token (p. ej. tras Login).
func (c *Client) SetToken(token string) { c.token = token }

// Add POST /api/customers.
func (c *Client) Add(ctx context.Context, in entity.NewCustomer) (string, error) {
	body := dto.AddCustomerRequest{
		Name:     in.Name,
		Email:    in.Email,
		Document: in.Document,
		Phone:    in.Phone,
		Status:   string(in.Status),
	}
	var out dto.CustomerResponse
	if err := c.do(ctx, http.MethodPost, "/api/customers", body, &out); err != nil {
		return "", domain.NewRepositoryError("add", err)
	}
	return out.ID, nil
}

// FindAll GET /api/customers?search=.
func (c *Client) FindAll(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error) {
	path := "/api/customers"
	if s := strings.TrimSpace(filter.Search); s != "" {
		path += "?" + url.Values{"search": {s}}.Encode()
	}
	var out dto.CustomerListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, domain.NewRepositoryError("find all", err)
	}
	list := make([]*entity.Customer, 0, len(out.Items))
	for _, it := range out.Items {
		list = append(list, toEntity(it))
	}
	return list, nil
}

// GetByID GET /api/customers/:id.
func (c *Client) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out dto.CustomerResponse
	if err := c.do(ctx, http.MethodGet, "/api/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, domain.NewRepositoryError("get", err)
	}
	return toEntity(out), nil
}

// Update PATCH /api/customers/:id con solo los campos del patch.
func (c *Client) Update(ctx context.Context, id string, patch entity.CustomerPatch) error {
	body := dto.UpdateCustomerRequest{
		Name:     patch.Name,
		Email:    patch.Email,
		Document: patch.Document,
		Phone:    patch.Phone,
	}
	if patch.Status != nil {
		s := string(*patch.Status)
		body.Status = &s
	}
	if err := c.do(ctx, http.MethodPatch, "/api/customers/"+url.PathEscape(id), body, nil); err != nil {
		return domain.NewRepositoryError("update", err)
	}
	return nil
}

// Delete DELETE /api/customers/:id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/customers/"+url.PathEscape(id), nil, nil); err != nil {
		return domain.NewRepositoryError("delete", err)
	}
	return nil
}

// Login POST /api/auth/login; guarda el token para las siguientes peticiones.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// do ejecuta la petición a través del breaker y decodifica out si no es nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnavailable)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("petición a la API")

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toEntity(r dto.CustomerResponse) *entity.Customer {
	c := &entity.Customer{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Document: r.Document,
		Phone:    r.Phone,
		Status:   entity.CustomerStatus(r.Status),
	}
	if r.CreatedAt != nil {
		c.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		c.UpdatedAt = *r.UpdatedAt
	}
	return c
}
