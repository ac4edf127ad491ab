package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
)

// OrderHandler maneja pedidos. Todas sus rutas requieren solo autenticación.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar pedidos
// @Description  El más reciente primero (dateTime descendente).
// @Tags         orders
// @Security     BasicAuth
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     BasicAuth
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	actor, _ := GetIdentity(c)
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Acepta un string JSON ("Completed") o un objeto {"status": "Completed"}.
// @Tags         orders
// @Security     BasicAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	status, ok := parseStatusBody(c)
	if !ok {
		return invalidBody(c)
	}
	actor, _ := GetIdentity(c)
	outcome, err := h.uc.UpdateStatus(c.UserContext(), actor, c.Params("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return updateResponse(c, outcome)
}

// Items godoc
// @Summary      Ítems del pedido resueltos contra el menú actual
// @Description  Conserva el orden del pedido; un ítem eliminado aparece como {invalid: true, itemId, quantity}.
// @Tags         orders
// @Security     BasicAuth
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}   dto.ResolvedLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [get]
func (h *OrderHandler) Items(c *fiber.Ctx) error {
	out, err := h.uc.ResolveItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Ticket godoc
// @Summary      Comanda de cocina en PDF
// @Tags         orders
// @Security     BasicAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	pdf, err := h.uc.Ticket(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="order-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}

// parseStatusBody acepta un string JSON ("Completed") o un objeto {"status":"Completed"}.
func parseStatusBody(c *fiber.Ctx) (string, bool) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return "", false
	}
	decode := c.App().Config().JSONDecoder
	if body[0] == '"' {
		var s string
		if err := decode(body, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var in dto.UpdateStatusRequest
	if err := decode(body, &in); err != nil || in.Status == "" {
		return "", false
	}
	return in.Status, true
}
