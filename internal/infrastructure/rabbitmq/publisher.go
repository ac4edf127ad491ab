package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

var _ ports.OrderEventPublisher = (*Publisher)(nil)

const publishTimeout = 5 * time.Second

// Publisher publica eventos de pedidos. Rutas: order.created y order.status.<estado>
// (ej. order.status.in_progress), para que cocina y sala se suscriban por patrón.
type Publisher struct {
	conn *Connection
	log  *logger.Logger
}

// NewPublisher construye el publicador sobre una conexión abierta.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, log: log}
}

// PublishOrderEvent serializa el evento a JSON y lo publica como mensaje persistente.
func (p *Publisher) PublishOrderEvent(ctx context.Context, ev ports.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}
	ch, err := p.conn.currentChannel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(ev)
	err = ch.PublishWithContext(ctx,
		p.conn.exchange, // exchange
		key,             // routing key
		false,           // mandatory
		false,           // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    ev.OrderID + ":" + ev.OccurredAt.Format(time.RFC3339Nano),
			Timestamp:    ev.OccurredAt,
			Type:         ev.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar %s: %w", key, err)
	}
	p.log.Debug().Str("routing_key", key).Int("bytes", len(body)).Msg("evento de pedido publicado")
	return nil
}

// Close cierra la conexión subyacente.
func (p *Publisher) Close() error {
	return p.conn.Close()
}

// RoutingKey ruta del evento en el exchange topic.
func RoutingKey(ev ports.OrderEvent) string {
	if ev.Type == ports.EventOrderCreated {
		return ports.EventOrderCreated
	}
	status := strings.ToLower(strings.ReplaceAll(string(ev.Status), " ", "_"))
	return "order.status." + status
}
