package ports

import (
	"context"
	"time"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

// Tipos de evento de pedidos.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent notificación publicada cuando un pedido se crea o cambia efectivamente de estado.
type OrderEvent struct {
	Type           string             `json:"type"`
	OrderID        string             `json:"orderId"`
	TableNo        string             `json:"tableNo"`
	Status         entity.OrderStatus `json:"status"`
	PreviousStatus entity.OrderStatus `json:"previousStatus,omitempty"`
	Actor          string             `json:"actor,omitempty"`
	OccurredAt     time.Time          `json:"occurredAt"`
}

// OrderEventPublisher puerto de salida para eventos de pedidos (cocina, pantallas de sala).
// Un fallo de publicación no invalida la escritura ya confirmada en el almacén.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent) error
}

// NopPublisher descarta los eventos (broker no configurado).
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }
