package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus estado de una orden.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus valida que el estado sea uno de los cuatro conocidos.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Terminal indica que la orden ya no avanza (Completed o Cancelled).
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions grafo estricto: Pending -> In Progress -> Completed; Cancelled desde cualquier estado no terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo aplica el grafo estricto. Reescribir el mismo estado siempre es válido (no produce cambios).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLine referencia blanda a un Item más la cantidad pedida.
type OrderLine struct {
	ItemID   primitive.ObjectID `bson:"itemid"`
	Quantity int                `bson:"quantity"`
}

// Order orden de una mesa. Tras crearse solo cambia Status.
// DateTime se guarda tal como lo envió el cliente (ISO-8601) y se ordena lexicográficamente.
type Order struct {
	ID           primitive.ObjectID `bson:"_id"`
	TableNo      string             `bson:"tableno"`
	CustomerName string             `bson:"name"`
	DateTime     string             `bson:"datetime"`
	Status       OrderStatus        `bson:"status"`
	Notes        string             `bson:"notes,omitempty"`
	ItemData     []OrderLine        `bson:"itemdata"`
}

// Campos persistidos de Order.
const (
	OrderFieldDateTime = "datetime"
	OrderFieldStatus   = "status"
)

var orderTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseOrderTime acepta ISO-8601 con o sin zona horaria.
func ParseOrderTime(s string) (time.Time, bool) {
	for _, layout := range orderTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolvedLine línea de una orden resuelta contra el menú actual.
// Item nil significa que el ítem ya no existe (referencia colgante).
type ResolvedLine struct {
	ItemID   primitive.ObjectID
	Quantity int
	Item     *Item
}

// Invalid indica que la línea referencia un ítem que ya no está en el menú.
func (l ResolvedLine) Invalid() bool {
	return l.Item == nil
}
