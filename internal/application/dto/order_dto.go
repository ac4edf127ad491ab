package dto

import "github.com/jhoicas/beanscene-api/internal/domain/entity"

// OrderLineRequest línea de un pedido: referencia a un ítem y cantidad.
type OrderLineRequest struct {
	ItemID   string `json:"itemId" validate:"required,objectid"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	TableNo  string             `json:"tableNo" validate:"required,max=20"`
	Name     string             `json:"name" validate:"required,max=100"`
	DateTime string             `json:"dateTime" validate:"required"`
	Status   string             `json:"status" validate:"required"`
	Notes    string             `json:"notes" validate:"max=500"`
	ItemData []OrderLineRequest `json:"itemData" validate:"required,min=1,dive"`
}

// UpdateStatusRequest nuevo estado de un pedido.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderLineResponse línea almacenada de un pedido.
type OrderLineResponse struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID       string              `json:"id"`
	TableNo  string              `json:"tableNo"`
	Name     string              `json:"name"`
	DateTime string              `json:"dateTime"`
	Status   string              `json:"status"`
	Notes    string              `json:"notes,omitempty"`
	ItemData []OrderLineResponse `json:"itemData"`
}

// ResolvedLineResponse línea resuelta contra el menú actual.
// Si el ítem existe se devuelven sus datos actuales más la cantidad;
// si no, solo {invalid: true, itemId, quantity}.
type ResolvedLineResponse struct {
	*ItemResponse
	Invalid  bool   `json:"invalid,omitempty"`
	ItemID   string `json:"itemId,omitempty"`
	Quantity int    `json:"quantity"`
}

// ToOrderResponse mapea la entidad.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]OrderLineResponse, 0, len(o.ItemData))
	for _, l := range o.ItemData {
		lines = append(lines, OrderLineResponse{ItemID: l.ItemID.Hex(), Quantity: l.Quantity})
	}
	return &OrderResponse{
		ID:       o.ID.Hex(),
		TableNo:  o.TableNo,
		Name:     o.CustomerName,
		DateTime: o.DateTime,
		Status:   string(o.Status),
		Notes:    o.Notes,
		ItemData: lines,
	}
}

// ToResolvedLines mapea la resolución preservando el orden de itemData.
func ToResolvedLines(lines []entity.ResolvedLine) []ResolvedLineResponse {
	out := make([]ResolvedLineResponse, 0, len(lines))
	for _, l := range lines {
		if l.Invalid() {
			out = append(out, ResolvedLineResponse{Invalid: true, ItemID: l.ItemID.Hex(), Quantity: l.Quantity})
			continue
		}
		out = append(out, ResolvedLineResponse{ItemResponse: ToItemResponse(l.Item), Quantity: l.Quantity})
	}
	return out
}
