package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/infrastructure/telemetry"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc     composer.UseCases
	report ports.CustomerReportGenerator
	val    *validator.Validate
	log    *logger.Logger
}

// NewCustomerHandler construye el handler. report puede ser nil (sin PDF).
func NewCustomerHandler(uc composer.UseCases, report ports.CustomerReportGenerator, val *validator.Validate, log *logger.Logger) *CustomerHandler {
	if val == nil {
		val = NewValidator()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerHandler{uc: uc, report: report, val: val, log: log}
}

// List godoc
// @Summary      Listar clientes
// @Description  Todos los clientes en orden de alta; search filtra por nombre, email o documento sin distinguir acentos.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "texto a buscar"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.FindCustomersQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.Find.Execute(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CustomerListResponse{Items: list, Total: len(list)})
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get.Execute(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddCustomerRequest  true  "name, email, document, phone, status"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.AddCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.val, in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Add.Execute(c.UserContext(), in)
	countMutation("add", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Actualización parcial: solo se modifican los campos enviados.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos a modificar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.val, in); err != nil {
		return writeError(c, h.log, err)
	}
	id := c.Params("id")
	err := h.uc.Update.Execute(c.UserContext(), id, in)
	countMutation("update", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get.Execute(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Con autenticación activa requiere rol admin.
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete.Execute(c.UserContext(), c.Params("id"))
	countMutation("delete", err)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Listado de clientes en PDF
// @Tags         customers
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/customers/report.pdf [get]
func (h *CustomerHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "reporte PDF no configurado"})
	}
	list, err := h.uc.Find.Execute(c.UserContext(), dto.FindCustomersQuery{Search: c.Query("search")})
	if err != nil {
		return writeError(c, h.log, err)
	}
	pdf, err := h.report.GenerateRoster(c.UserContext(), list, time.Now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="customers.pdf"`)
	return c.Send(pdf)
}

func countMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	telemetry.CustomerMutationsTotal.WithLabelValues(op, result).Inc()
}
