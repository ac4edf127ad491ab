package ports

import "github.com/jhoicas/beanscene-api/internal/domain/entity"

// TicketRenderer genera la comanda de cocina (PDF) de un pedido ya resuelto contra el menú.
type TicketRenderer interface {
	RenderTicket(order *entity.Order, lines []entity.ResolvedLine) ([]byte, error)
}
