package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Customers-api/internal/application/auth"
	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/infrastructure/memory"
	"github.com/jhoicas/Customers-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Customers-api/internal/interfaces/http"
)

// newTestApp arma la API completa sobre repositorios en memoria. secret vacío = sin auth.
func newTestApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	return apphttp.NewApp(apphttp.AppConfig{Name: "customers-api-test"}, apphttp.RouterDeps{
		Customers: composer.New(memory.NewCustomerRepo(), nil, nil).All(),
		Report:    pdf.NewMarotoRosterGenerator("Customers API"),
		AuthUC: auth.NewAuthUseCase(memory.NewUserRepo(), auth.JWTConfig{
			Secret: secret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: secret,
	})
}

// call ejecuta la petición y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func create(t *testing.T, app *fiber.App, in dto.AddCustomerRequest, token string) dto.CustomerResponse {
	t.Helper()
	code, raw := call(t, app, http.MethodPost, "/api/customers", in, token)
	require.Equal(t, http.StatusCreated, code, string(raw))
	return decode[dto.CustomerResponse](t, raw)
}

func TestCreateCustomer_201(t *testing.T) {
	app := newTestApp(t, "")

	out := create(t, app, dto.AddCustomerRequest{
		Name: "Ana", Email: "ana@x.io", Document: "123.456.789-00", Phone: "(11) 91234-5678", Status: "ACTIVE",
	}, "")

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "123.456.789-00", out.Document)
	assert.Equal(t, "ACTIVE", out.Status)
	require.NotNil(t, out.CreatedAt)
	require.NotNil(t, out.UpdatedAt)

	code, raw := call(t, app, http.MethodGet, "/api/customers/"+out.ID, nil, "")
	require.Equal(t, http.StatusOK, code)
	got := decode[dto.CustomerResponse](t, raw)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, out.CreatedAt.Equal(*got.CreatedAt))
}

func TestCreateCustomer_Rechazos(t *testing.T) {
	app := newTestApp(t, "")

	cases := []struct {
		name   string
		body   any
		status int
		code   string
		field  string
	}{
		{"json roto", `{"name":`, http.StatusBadRequest, "INVALID_BODY", ""},
		{"sin nombre", dto.AddCustomerRequest{Status: "ACTIVE"}, http.StatusUnprocessableEntity, "VALIDATION", "name"},
		{"status en minúsculas", dto.AddCustomerRequest{Name: "Ana", Status: "active"}, http.StatusUnprocessableEntity, "VALIDATION", "status"},
		{"email inválido", dto.AddCustomerRequest{Name: "Ana", Email: "no-es-email", Status: "ACTIVE"}, http.StatusUnprocessableEntity, "VALIDATION", "email"},
		{"documento con letras", dto.AddCustomerRequest{Name: "Ana", Document: "12a", Status: "ACTIVE"}, http.StatusUnprocessableEntity, "VALIDATION", "document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, raw := call(t, app, http.MethodPost, "/api/customers", tc.body, "")
			require.Equal(t, tc.status, code, string(raw))
			er := decode[dto.ErrorResponse](t, raw)
			assert.Equal(t, tc.code, er.Code)
			if tc.field != "" {
				assert.Contains(t, er.Fields, tc.field)
			}
		})
	}
}

func TestListCustomers_OrdenYBusqueda(t *testing.T) {
	app := newTestApp(t, "")
	create(t, app, dto.AddCustomerRequest{Name: "José Pérez", Status: "ACTIVE"}, "")
	create(t, app, dto.AddCustomerRequest{Name: "Bruna", Email: "bruna@x.io", Status: "DISABLED"}, "")

	code, raw := call(t, app, http.MethodGet, "/api/customers", nil, "")
	require.Equal(t, http.StatusOK, code)
	list := decode[dto.CustomerListResponse](t, raw)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "José Pérez", list.Items[0].Name)
	assert.Equal(t, "Bruna", list.Items[1].Name)

	code, raw = call(t, app, http.MethodGet, "/api/customers?search=jose", nil, "")
	require.Equal(t, http.StatusOK, code)
	list = decode[dto.CustomerListResponse](t, raw)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "José Pérez", list.Items[0].Name)
}

func TestListCustomers_VacioDevuelveArreglo(t *testing.T) {
	app := newTestApp(t, "")

	code, raw := call(t, app, http.MethodGet, "/api/customers", nil, "")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(raw))
}

func TestGetCustomer(t *testing.T) {
	app := newTestApp(t, "")
	ana := create(t, app, dto.AddCustomerRequest{Name: "Ana", Status: "INACTIVE"}, "")

	code, raw := call(t, app, http.MethodGet, "/api/customers/"+ana.ID, nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "INACTIVE", decode[dto.CustomerResponse](t, raw).Status)

	code, raw = call(t, app, http.MethodGet, "/api/customers/no-existe", nil, "")
	require.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

func TestUpdateCustomer_Parcial(t *testing.T) {
	app := newTestApp(t, "")
	ana := create(t, app, dto.AddCustomerRequest{Name: "Ana", Email: "ana@x.io", Status: "ACTIVE"}, "")

	code, raw := call(t, app, http.MethodPatch, "/api/customers/"+ana.ID, map[string]string{"status": "WAITING_FOR_ACTIVATION"}, "")
	require.Equal(t, http.StatusOK, code, string(raw))
	out := decode[dto.CustomerResponse](t, raw)
	assert.Equal(t, "WAITING_FOR_ACTIVATION", out.Status)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "ana@x.io", out.Email)

	code, raw = call(t, app, http.MethodPut, "/api/customers/"+ana.ID, map[string]string{"name": "Ana María"}, "")
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, "Ana María", decode[dto.CustomerResponse](t, raw).Name)
}

func TestUpdateCustomer_Rechazos(t *testing.T) {
	app := newTestApp(t, "")
	ana := create(t, app, dto.AddCustomerRequest{Name: "Ana", Status: "ACTIVE"}, "")

	code, _ := call(t, app, http.MethodPatch, "/api/customers/no-existe", map[string]string{"name": "X"}, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, raw := call(t, app, http.MethodPatch, "/api/customers/"+ana.ID, map[string]string{"name": ""}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "name")

	code, raw = call(t, app, http.MethodPatch, "/api/customers/"+ana.ID, map[string]string{}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "body")

	for field, value := range map[string]string{"email": "", "document": "", "phone": "  "} {
		code, raw = call(t, app, http.MethodPatch, "/api/customers/"+ana.ID, map[string]string{field: value}, "")
		assert.Equal(t, http.StatusUnprocessableEntity, code, field)
		assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, field)
	}
}

func TestDeleteCustomer(t *testing.T) {
	app := newTestApp(t, "")
	ana := create(t, app, dto.AddCustomerRequest{Name: "Ana", Status: "ACTIVE"}, "")

	code, _ := call(t, app, http.MethodDelete, "/api/customers/"+ana.ID, nil, "")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = call(t, app, http.MethodGet, "/api/customers/"+ana.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, app, http.MethodDelete, "/api/customers/"+ana.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReportPDF(t *testing.T) {
	app := newTestApp(t, "")
	create(t, app, dto.AddCustomerRequest{Name: "Ana", Status: "ACTIVE"}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/customers/report.pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestHealthMetricsYRutaDesconocida(t *testing.T) {
	app := newTestApp(t, "")

	code, raw := call(t, app, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), `"status":"ok"`)

	call(t, app, http.MethodGet, "/api/customers", nil, "")
	code, raw = call(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), "customers_http_requests_total")

	code, raw = call(t, app, http.MethodGet, "/no/existe", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func login(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	code, raw := call(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email: email, Password: "s3cret-pass", Role: role,
	}, "")
	require.Equal(t, http.StatusCreated, code, string(raw))

	code, raw = call(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: "s3cret-pass"}, "")
	require.Equal(t, http.StatusOK, code, string(raw))
	return decode[dto.LoginResponse](t, raw).Token
}

func TestCustomers_ConAuth(t *testing.T) {
	app := newTestApp(t, testJWTSecret)

	code, raw := call(t, app, http.MethodGet, "/api/customers", nil, "")
	require.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, raw).Code)

	operator := login(t, app, "op@x.io", "operator")
	admin := login(t, app, "admin@x.io", "admin")

	ana := create(t, app, dto.AddCustomerRequest{Name: "Ana", Status: "ACTIVE"}, operator)

	code, _ = call(t, app, http.MethodGet, "/api/customers", nil, operator)
	assert.Equal(t, http.StatusOK, code)

	code, raw = call(t, app, http.MethodDelete, "/api/customers/"+ana.ID, nil, operator)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, raw).Code)

	code, _ = call(t, app, http.MethodDelete, "/api/customers/"+ana.ID, nil, admin)
	assert.Equal(t, http.StatusNoContent, code)
}

func TestAuth_Rechazos(t *testing.T) {
	app := newTestApp(t, testJWTSecret)
	login(t, app, "op@x.io", "")

	code, raw := call(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: "OP@x.io", Password: "otra-clave-1"}, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, raw).Code)

	code, _ = call(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "op@x.io", Password: "incorrecta"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "nadie@x.io", Password: "incorrecta"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, raw = call(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{Email: "x@x.io", Password: "corta"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Fields, "password")
}
