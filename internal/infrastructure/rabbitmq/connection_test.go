package rabbitmq

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// silentBroker acepta conexiones TCP y nunca responde el handshake AMQP.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func disconnected(t *testing.T, url string) *Connection {
	t.Helper()
	c := newConnection(url, "beanscene.orders", logger.Nop())
	c.dialTimeout = 200 * time.Millisecond
	c.backoff = time.Hour
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Broker caído o mudo
// ──────────────────────────────────────────────────────────────────────────────

func TestDial_BrokerMudoRespetaTimeout(t *testing.T) {
	c := disconnected(t, silentBroker(t))

	start := time.Now()
	_, _, err := c.dial()
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "el handshake debe cortarse con dialTimeout")
}

func TestPublish_SinConexionFallaDeInmediato(t *testing.T) {
	c := disconnected(t, silentBroker(t))
	p := NewPublisher(c, logger.Nop())
	ev := ports.OrderEvent{
		Type:       ports.EventOrderCreated,
		OrderID:    "65a000000000000000000001",
		Status:     entity.StatusPending,
		OccurredAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.PublishOrderEvent(ctx, ev)
	require.ErrorIs(t, err, ErrDisconnected)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "la petición no espera la reconexión")

	// Publicaciones concurrentes tampoco se encolan detrás de la reconexión en curso.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.ErrorIs(t, p.PublishOrderEvent(ctx, ev), ErrDisconnected)
		}()
	}
	wg.Wait()
	assert.Less(t, time.Since(start), time.Second)
}

func TestClose_DetieneReconexion(t *testing.T) {
	c := disconnected(t, silentBroker(t))
	_, err := c.currentChannel()
	require.ErrorIs(t, err, ErrDisconnected)

	require.NoError(t, c.Close())
	_, err = c.currentChannel()
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.NotPanics(t, func() { _ = c.Close() })
}
