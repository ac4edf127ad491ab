package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
)

// StaffHandler maneja login (público) y la administración de empleados (Manager).
type StaffHandler struct {
	uc     *usecase.StaffUseCase
	authUC *auth.AuthUseCase
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *usecase.StaffUseCase, authUC *auth.AuthUseCase) *StaffHandler {
	return &StaffHandler{uc: uc, authUC: authUC}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica usuario y contraseña y devuelve el empleado. No emite token: las demás rutas usan Basic auth.
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/staff/login [post]
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.authUC.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Description  Ordenados por rol, apellido y nombre.
// @Tags         staff
// @Security     BasicAuth
// @Produce      json
// @Success      200  {array}   dto.StaffResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empleado
// @Tags         staff
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.StaffResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Description  Reemplaza nombre, apellido, username, email y rol.
// @Tags         staff
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateStaffRequest  true  "Datos del empleado"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [put]
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	outcome, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return updateResponse(c, outcome)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña de un empleado
// @Tags         staff
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdatePasswordRequest  true  "Nueva contraseña"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/{id}/password [put]
func (h *StaffHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	outcome, err := h.uc.UpdatePassword(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return updateResponse(c, outcome)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Tags         staff
// @Security     BasicAuth
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.MutationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/staff/{id} [delete]
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	n, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return deleteResponse(c, n)
}
