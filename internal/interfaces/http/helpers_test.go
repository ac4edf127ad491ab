package http_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/beanscene-api/internal/interfaces/http"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	managerUser = "jmanager"
	staffUser   = "pwaiter"
	testPass    = "s3cret-pass"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
	staff *usecase.StaffUseCase
	auth  *auth.AuthUseCase
}

// newTestServer arma la API completa sobre el almacén en memoria con un Manager y un Staff.
func newTestServer(t *testing.T, timeout time.Duration) *testServer {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	authUC := auth.NewAuthUseCase(store.Staff(), hasher)
	staffUC := usecase.NewStaffUseCase(store.Staff(), hasher)

	for _, s := range []dto.CreateStaffRequest{
		{FirstName: "Jo", LastName: "Manager", Username: managerUser, Email: "jo@beanscene.test", Password: testPass, Role: entity.RoleManager},
		{FirstName: "Pat", LastName: "Waiter", Username: staffUser, Email: "pat@beanscene.test", Password: testPass, Role: entity.RoleStaff},
	} {
		_, err := staffUC.Create(context.Background(), s)
		require.NoError(t, err)
	}

	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		CategoryUC:   usecase.NewCategoryUseCase(store.Categories()),
		ItemUC:       usecase.NewItemUseCase(store.Items(), nil),
		StaffUC:      staffUC,
		OrderUC:      usecase.NewOrderUseCase(store.Orders(), store.Items(), ports.NopPublisher{}, nil, usecase.OrderOptions{}, log),
		Store:        store,
		StoreTimeout: timeout,
		Log:          log,
	})
	return &testServer{app: app, store: store, staff: staffUC, auth: authUC}
}

func basic(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// do lanza la petición; body puede ser nil, un string JSON crudo o cualquier valor serializable.
func (s *testServer) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) asManager(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return s.do(t, method, path, basic(managerUser, testPass), body)
}

func (s *testServer) asStaff(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return s.do(t, method, path, basic(staffUser, testPass), body)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
