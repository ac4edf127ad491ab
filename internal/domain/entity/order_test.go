package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "In Progress", "Completed", "Cancelled"} {
		st, ok := entity.ParseOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, string(st))
	}
	for _, s := range []string{"", "pending", "InProgress", "Served"} {
		_, ok := entity.ParseOrderStatus(s)
		assert.False(t, ok, s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Grafo estricto de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to entity.OrderStatus
		want     bool
	}{
		{entity.StatusPending, entity.StatusInProgress, true},
		{entity.StatusPending, entity.StatusCancelled, true},
		{entity.StatusPending, entity.StatusCompleted, false},
		{entity.StatusInProgress, entity.StatusCompleted, true},
		{entity.StatusInProgress, entity.StatusCancelled, true},
		{entity.StatusInProgress, entity.StatusPending, false},
		{entity.StatusCompleted, entity.StatusPending, false},
		{entity.StatusCancelled, entity.StatusInProgress, false},
		{entity.StatusCompleted, entity.StatusCompleted, true},
		{entity.StatusCancelled, entity.StatusCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, entity.StatusCompleted.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())
	assert.False(t, entity.StatusPending.Terminal())
	assert.False(t, entity.StatusInProgress.Terminal())
}

func TestParseOrderTime(t *testing.T) {
	valid := []string{
		"2026-03-01T09:30:00Z",
		"2026-03-01T09:30:00.123+10:00",
		"2026-03-01T09:30:00",
		"2026-03-01T09:30",
		"2026-03-01 09:30:00",
	}
	for _, s := range valid {
		_, ok := entity.ParseOrderTime(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"", "ayer", "01/03/2026 09:30", "2026-13-01T09:30:00Z"} {
		_, ok := entity.ParseOrderTime(s)
		assert.False(t, ok, s)
	}
}

func TestParseDietType(t *testing.T) {
	d, ok := entity.ParseDietType("")
	assert.True(t, ok)
	assert.Equal(t, entity.DietNeither, d)

	d, ok = entity.ParseDietType("vegan")
	assert.True(t, ok)
	assert.Equal(t, entity.DietVegan, d)

	_, ok = entity.ParseDietType("Vegan")
	assert.False(t, ok)
}

func TestResolvedLine_Invalid(t *testing.T) {
	assert.True(t, entity.ResolvedLine{Quantity: 2}.Invalid())
	assert.False(t, entity.ResolvedLine{Quantity: 2, Item: &entity.Item{Name: "Toast"}}.Invalid())
}
