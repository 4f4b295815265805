package restclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain"
)

// statusError respuesta no exitosa de la API. Unwrap la traduce al error de dominio.
type statusError struct {
	status  int
	code    string
	message string
	cause   error
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("api %d %s: %s", e.status, e.code, e.message)
	}
	return fmt.Sprintf("api %d", e.status)
}

func (e *statusError) Unwrap() error { return e.cause }

// decodeError lee el cuerpo dto.ErrorResponse y elige el sentinel según el código HTTP.
func decodeError(resp *http.Response) error {
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	se := &statusError{status: resp.StatusCode, code: body.Code, message: body.Message}
	switch resp.StatusCode {
	case http.StatusNotFound:
		se.cause = domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if len(body.Fields) > 0 {
			se.cause = &domain.ValidationError{Fields: body.Fields}
		} else {
			se.cause = domain.ErrInvalidInput
		}
	case http.StatusUnauthorized:
		se.cause = domain.ErrUnauthorized
	case http.StatusForbidden:
		se.cause = domain.ErrForbidden
	case http.StatusServiceUnavailable:
		se.cause = domain.ErrUnavailable
	}
	return se
}
