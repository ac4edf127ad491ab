package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// OrderOptions comportamiento configurable del ciclo de vida.
type OrderOptions struct {
	// StrictTransitions valida el grafo de estados; false permite sobrescribir cualquier estado.
	StrictTransitions bool
}

// OrderUseCase ciclo de vida de pedidos: alta, cambio de estado y resolución contra el menú.
type OrderUseCase struct {
	orders   repository.Collection[entity.Order]
	items    repository.Collection[entity.Item]
	events   ports.OrderEventPublisher
	tickets  ports.TicketRenderer // nil = comanda PDF deshabilitada
	opts     OrderOptions
	log      *logger.Logger
	clockNow func() time.Time
}

// NewOrderUseCase construye el caso de uso. events nil equivale a NopPublisher.
func NewOrderUseCase(
	orders repository.Collection[entity.Order],
	items repository.Collection[entity.Item],
	events ports.OrderEventPublisher,
	tickets ports.TicketRenderer,
	opts OrderOptions,
	log *logger.Logger,
) *OrderUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		orders:   orders,
		items:    items,
		events:   events,
		tickets:  tickets,
		opts:     opts,
		log:      log,
		clockNow: time.Now,
	}
}

// List devuelve todos los pedidos, el más reciente primero (dateTime descendente).
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orders.Find(ctx, nil, repository.Desc(entity.OrderFieldDateTime))
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *dto.ToOrderResponse(o))
	}
	return out, nil
}

// GetByID obtiene un pedido; ErrNotFound si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(order), nil
}

// Create valida y persiste el pedido. No verifica que los itemId existan:
// eso se resuelve al leer (ResolveItems).
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	in.TableNo = strings.TrimSpace(in.TableNo)
	in.Name = strings.TrimSpace(in.Name)
	in.DateTime = strings.TrimSpace(in.DateTime)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: status %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if uc.opts.StrictTransitions && status != entity.StatusPending {
		return nil, fmt.Errorf("%w: un pedido nuevo debe iniciar en %s", domain.ErrInvalidTransition, entity.StatusPending)
	}
	if _, ok := entity.ParseOrderTime(in.DateTime); !ok {
		return nil, fmt.Errorf("%w: dateTime %q no es ISO-8601", domain.ErrInvalidInput, in.DateTime)
	}

	lines := make([]entity.OrderLine, 0, len(in.ItemData))
	for _, l := range in.ItemData {
		itemID, err := domain.ParseID(l.ItemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.OrderLine{ItemID: itemID, Quantity: l.Quantity})
	}

	order := &entity.Order{
		ID:           domain.NewID(),
		TableNo:      in.TableNo,
		CustomerName: in.Name,
		DateTime:     in.DateTime,
		Status:       status,
		Notes:        in.Notes,
		ItemData:     lines,
	}
	if err := uc.orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	uc.publish(ctx, ports.OrderEvent{
		Type:    ports.EventOrderCreated,
		OrderID: order.ID.Hex(),
		TableNo: order.TableNo,
		Status:  order.Status,
		Actor:   actor.Username,
	})
	return dto.ToOrderResponse(order), nil
}

// UpdateStatus sobrescribe el estado. Sin modo estricto no hay grafo de transiciones:
// Completed -> Pending es válido. Reescribir el mismo estado devuelve OutcomeNoChange.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor entity.Identity, id, status string) (domain.UpdateOutcome, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return "", err
	}
	next, ok := entity.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return "", fmt.Errorf("%w: status %q desconocido", domain.ErrInvalidInput, status)
	}

	order, err := uc.orders.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrNotFound
	}
	if uc.opts.StrictTransitions && !order.Status.CanTransitionTo(next) {
		return "", fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, next)
	}

	res, err := uc.orders.UpdateByID(ctx, oid, repository.Fields{entity.OrderFieldStatus: next})
	if err != nil {
		return "", err
	}
	outcome, err := res.Outcome()
	if err != nil {
		return "", err
	}
	if outcome == domain.OutcomeUpdated {
		uc.publish(ctx, ports.OrderEvent{
			Type:           ports.EventOrderStatusChanged,
			OrderID:        oid.Hex(),
			TableNo:        order.TableNo,
			Status:         next,
			PreviousStatus: order.Status,
			Actor:          actor.Username,
		})
	}
	return outcome, nil
}

// ResolveItems resuelve cada línea contra el menú actual, en el orden almacenado.
// Un ítem inexistente produce una línea inválida, nunca un error; solo falla si el pedido no existe.
func (uc *OrderUseCase) ResolveItems(ctx context.Context, id string) ([]dto.ResolvedLineResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolve(ctx, order)
	if err != nil {
		return nil, err
	}
	return dto.ToResolvedLines(lines), nil
}

// Ticket genera la comanda de cocina en PDF a partir de la resolución actual.
func (uc *OrderUseCase) Ticket(ctx context.Context, id string) ([]byte, error) {
	if uc.tickets == nil {
		return nil, domain.ErrFeatureDisabled
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.resolve(ctx, order)
	if err != nil {
		return nil, err
	}
	return uc.tickets.RenderTicket(order, lines)
}

func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (uc *OrderUseCase) resolve(ctx context.Context, order *entity.Order) ([]entity.ResolvedLine, error) {
	seen := make(map[primitive.ObjectID]*entity.Item, len(order.ItemData))
	lines := make([]entity.ResolvedLine, 0, len(order.ItemData))
	for _, l := range order.ItemData {
		item, ok := seen[l.ItemID]
		if !ok {
			var err error
			item, err = uc.items.FindByID(ctx, l.ItemID)
			if err != nil {
				return nil, err
			}
			seen[l.ItemID] = item
		}
		lines = append(lines, entity.ResolvedLine{ItemID: l.ItemID, Quantity: l.Quantity, Item: item})
	}
	return lines, nil
}

func (uc *OrderUseCase) publish(ctx context.Context, ev ports.OrderEvent) {
	ev.OccurredAt = uc.clockNow().UTC()
	if err := uc.events.PublishOrderEvent(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("event", ev.Type).
			Str("order_id", ev.OrderID).
			Msg("no se pudo publicar el evento de pedido")
	}
}
