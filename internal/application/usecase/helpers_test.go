package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/memory"
)

var (
	manager = entity.Identity{ID: "65a000000000000000000001", Username: "jmanager", Role: entity.RoleManager}
	waiter  = entity.Identity{ID: "65a000000000000000000002", Username: "pwaiter", Role: entity.RoleStaff}
)

// recordingPublisher guarda los eventos publicados.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev ports.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// fakeImages guarda los objetos subidos en memoria.
type fakeImages struct {
	objects map[string][]byte
}

func (f *fakeImages) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = buf.Bytes()
	return "https://cdn.example.test/" + key, nil
}

type fixture struct {
	store      *memory.Store
	categories *usecase.CategoryUseCase
	items      *usecase.ItemUseCase
	staff      *usecase.StaffUseCase
	orders     *usecase.OrderUseCase
	auth       *auth.AuthUseCase
	events     *recordingPublisher
	images     *fakeImages
}

func newFixture(t *testing.T, opts usecase.OrderOptions) *fixture {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	events := &recordingPublisher{}
	images := &fakeImages{}
	return &fixture{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories()),
		items:      usecase.NewItemUseCase(store.Items(), images),
		staff:      usecase.NewStaffUseCase(store.Staff(), hasher),
		orders:     usecase.NewOrderUseCase(store.Orders(), store.Items(), events, nil, opts, nil),
		auth:       auth.NewAuthUseCase(store.Staff(), hasher),
		events:     events,
		images:     images,
	}
}

func itemRequest(name, category, price string) dto.ItemRequest {
	return dto.ItemRequest{
		Name:         name,
		Description:  name + " de la casa",
		Price:        decimal.RequireFromString(price),
		Available:    true,
		DietType:     "neither",
		CategoryName: category,
	}
}

func (f *fixture) mustItem(t *testing.T, name, category, price string) *dto.ItemResponse {
	t.Helper()
	it, err := f.items.Create(context.Background(), itemRequest(name, category, price))
	require.NoError(t, err)
	return it
}

func orderRequest(dateTime string, lines ...dto.OrderLineRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		TableNo:  "T4",
		Name:     "Alex",
		DateTime: dateTime,
		Status:   string(entity.StatusPending),
		ItemData: lines,
	}
}

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }
