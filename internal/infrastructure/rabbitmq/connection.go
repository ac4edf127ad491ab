// Package rabbitmq publica los eventos de pedidos en un exchange topic de RabbitMQ.
package rabbitmq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/beanscene-api/pkg/config"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

const (
	maxRetries = 5

	// defaultDialTimeout acota TCP + handshake AMQP de cada intento.
	defaultDialTimeout = 3 * time.Second
)

// ErrDisconnected el broker no está disponible; la reconexión sigue en segundo plano.
var ErrDisconnected = errors.New("rabbitmq: sin conexión al broker")

// Connection conexión y canal AMQP. Tras el arranque, una caída se recupera en una goroutine
// de fondo; mientras tanto currentChannel() falla de inmediato con ErrDisconnected.
type Connection struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	reconnecting bool
	closed       bool
	done         chan struct{}

	url         string
	exchange    string
	log         *logger.Logger
	backoff     time.Duration
	dialTimeout time.Duration
}

func newConnection(url, exchange string, log *logger.Logger) *Connection {
	return &Connection{
		url:         url,
		exchange:    exchange,
		log:         log,
		backoff:     2 * time.Second,
		dialTimeout: defaultDialTimeout,
		done:        make(chan struct{}),
	}
}

// Dial abre la conexión con reintentos y declara el exchange topic de pedidos.
func Dial(cfg config.AMQPConfig, log *logger.Logger) (*Connection, error) {
	c := newConnection(cfg.URL, cfg.Exchange, log)
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

// connect establece conexión y canal con reintentos (solo al arrancar).
func (c *Connection) connect() error {
	var err error
	for i := 0; i < maxRetries; i++ {
		var conn *amqp091.Connection
		var ch *amqp091.Channel
		if conn, ch, err = c.dial(); err == nil {
			c.attach(conn, ch)
			return nil
		}
		if i < maxRetries-1 {
			wait := time.Duration(i+1) * c.backoff
			c.log.Warn().Err(err).Dur("retry_in", wait).Msg("rabbitmq: conexión fallida, reintentando")
			time.Sleep(wait)
		}
	}
	return fmt.Errorf("rabbitmq: sin conexión tras %d intentos: %w", maxRetries, err)
}

// dial abre conexión y canal y declara el exchange. No toca el estado compartido.
func (c *Connection) dial() (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.DialConfig(c.url, amqp091.Config{
		Dial: amqp091.DefaultDial(c.dialTimeout),
	})
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	err = ch.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", c.exchange, err)
	}
	return conn, ch, nil
}

// attach publica la conexión nueva y vigila su cierre para reconectar.
func (c *Connection) attach(conn *amqp091.Connection, ch *amqp091.Channel) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = ch.Close()
		_ = conn.Close()
		return
	}
	c.conn, c.channel = conn, ch
	c.mu.Unlock()

	closes := conn.NotifyClose(make(chan *amqp091.Error, 1))
	go func() {
		if err, ok := <-closes; ok {
			c.log.Warn().Err(err).Msg("rabbitmq: conexión cerrada por el broker")
		}
		c.mu.Lock()
		current := c.conn == conn
		c.mu.Unlock()
		if current {
			c.triggerReconnect()
		}
	}()
}

// currentChannel devuelve el canal vigente sin bloquear: si no hay conexión dispara la
// reconexión de fondo y responde ErrDisconnected.
func (c *Connection) currentChannel() (*amqp091.Channel, error) {
	c.mu.Lock()
	healthy := c.conn != nil && !c.conn.IsClosed() && c.channel != nil && !c.channel.IsClosed()
	ch := c.channel
	c.mu.Unlock()
	if healthy {
		return ch, nil
	}
	c.triggerReconnect()
	return nil, ErrDisconnected
}

func (c *Connection) triggerReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.reconnecting {
		return
	}
	c.reconnecting = true
	go c.reconnect()
}

// reconnect reintenta con backoff lineal (tope 30s) hasta conectar o hasta Close.
func (c *Connection) reconnect() {
	defer func() {
		c.mu.Lock()
		c.reconnecting = false
		c.mu.Unlock()
	}()
	for attempt := 1; ; attempt++ {
		conn, ch, err := c.dial()
		if err == nil {
			c.mu.Lock()
			c.closeLocked()
			c.mu.Unlock()
			c.attach(conn, ch)
			c.log.Info().Int("attempt", attempt).Msg("rabbitmq: reconectado")
			return
		}
		wait := min(time.Duration(attempt)*c.backoff, 30*time.Second)
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("rabbitmq: reconexión fallida")
		select {
		case <-time.After(wait):
		case <-c.done:
			return
		}
	}
}

// Close cierra canal y conexión y detiene la reconexión.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
