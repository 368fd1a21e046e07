package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, req models.UserRegisterRequest, allowRole bool) (models.User, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	resolveActorFn func(ctx context.Context, token models.Token) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, req models.UserRegisterRequest, allowRole bool) (models.User, error) {
	return m.registerUserFn(ctx, req, allowRole)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) ResolveActor(ctx context.Context, token models.Token) (models.User, error) {
	return m.resolveActorFn(ctx, token)
}

// mockUserService implements service.UserService.
type mockUserService struct {
	listUsersFn  func(ctx context.Context) ([]models.User, error)
	getUserFn    func(ctx context.Context, userID int64) (models.User, error)
	updateUserFn func(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.User, error)
	deleteUserFn func(ctx context.Context, userID int64) error
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.User, error) {
	return m.updateUserFn(ctx, userID, req)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID int64) error {
	return m.deleteUserFn(ctx, userID)
}

// mockItemService implements service.ItemService.
type mockItemService struct {
	createItemFn func(ctx context.Context, item models.Item) (models.Item, error)
	listItemsFn  func(ctx context.Context) ([]models.Item, error)
	getItemFn    func(ctx context.Context, itemID int64) (models.Item, error)
	updateItemFn func(ctx context.Context, update models.ItemUpdate) (models.Item, error)
	deleteItemFn func(ctx context.Context, itemID int64) error
}

func (m *mockItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	return m.createItemFn(ctx, item)
}

func (m *mockItemService) ListItems(ctx context.Context) ([]models.Item, error) {
	return m.listItemsFn(ctx)
}

func (m *mockItemService) GetItem(ctx context.Context, itemID int64) (models.Item, error) {
	return m.getItemFn(ctx, itemID)
}

func (m *mockItemService) UpdateItem(ctx context.Context, update models.ItemUpdate) (models.Item, error) {
	return m.updateItemFn(ctx, update)
}

func (m *mockItemService) DeleteItem(ctx context.Context, itemID int64) error {
	return m.deleteItemFn(ctx, itemID)
}

// mockAppInfoService implements service.AppInfoService.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(m.version, "", "")
}

// ─────────────────────────────────────────────
// Tokens understood by tokenAuth
// ─────────────────────────────────────────────

const (
	adminToken = "admin-token"
	userToken  = "user-token"
	staleToken = "stale-token"

	adminID int64 = 1
	userID  int64 = 2
	staleID int64 = 3
)

// tokenAuth returns an AuthService mock that accepts the fixed tokens above.
// The owner of staleToken no longer exists.
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			switch tokenString {
			case adminToken:
				return models.Token{UserID: adminID, Role: models.RoleAdmin}, nil
			case userToken:
				return models.Token{UserID: userID, Role: models.RoleUser}, nil
			case staleToken:
				return models.Token{UserID: staleID, Role: models.RoleAdmin}, nil
			}
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
		resolveActorFn: func(_ context.Context, token models.Token) (models.User, error) {
			if token.UserID == staleID {
				return models.User{}, service.ErrStaleToken
			}
			return models.User{UserID: token.UserID, Role: token.Role}, nil
		},
	}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around svcs; nil services are replaced by
// empty mocks so that unexpected calls panic loudly.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = tokenAuth()
	}
	if svcs.UserService == nil {
		svcs.UserService = &mockUserService{}
	}
	if svcs.ItemService == nil {
		svcs.ItemService = &mockItemService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}

	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// envelope is the union of the success and failure reply shapes.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// serve runs a request through the full router.
func serve(t *testing.T, h *Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func decodeDetails(t *testing.T, env envelope) map[string][]string {
	t.Helper()
	var details map[string][]string
	require.NoError(t, json.Unmarshal(env.Details, &details), "details: %s", env.Details)
	return details
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// mustNotCall fails the test when a service method that should be
// short-circuited is reached.
func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatal("service must not be called")
}
