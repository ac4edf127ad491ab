package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

func TestRoutingKey(t *testing.T) {
	cases := []struct {
		ev   ports.OrderEvent
		want string
	}{
		{ports.OrderEvent{Type: ports.EventOrderCreated, Status: entity.StatusPending}, "order.created"},
		{ports.OrderEvent{Type: ports.EventOrderStatusChanged, Status: entity.StatusInProgress}, "order.status.in_progress"},
		{ports.OrderEvent{Type: ports.EventOrderStatusChanged, Status: entity.StatusCancelled}, "order.status.cancelled"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoutingKey(tc.ev))
	}
}
