package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/utils"
	"github.com/MKhiriev/go-crud-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// envelope is the success reply; Data is decoded by the caller.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter]
// for the server at address ("host:port" or a full URL). A zero timeout
// means no client-side timeout.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.UserRegisterRequest) (models.UserView, error) {
	var user models.UserView
	err := h.do(ctx, http.MethodPost, "/api/auth/register", req, &user)
	return user, err
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	var resp models.LoginResponse
	if err := h.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseUnverified(resp.AccessToken)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse access token: %w", err)
	}

	h.SetToken(resp.AccessToken)
	return token, nil
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, req models.UserCreateRequest) (models.UserView, error) {
	var user models.UserView
	err := h.do(ctx, http.MethodPost, "/api/user", req, &user)
	return user, err
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.UserView, error) {
	var users []models.UserView
	err := h.do(ctx, http.MethodGet, "/api/users", nil, &users)
	return users, err
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.UserView, error) {
	var user models.UserView
	err := h.do(ctx, http.MethodGet, userPath(userID), nil, &user)
	return user, err
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.UserView, error) {
	var user models.UserView
	err := h.do(ctx, http.MethodPut, userPath(userID), req, &user)
	return user, err
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, userID int64) error {
	return h.do(ctx, http.MethodDelete, userPath(userID), nil, nil)
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, req models.ItemCreateRequest) (models.ItemView, error) {
	var item models.ItemView
	err := h.do(ctx, http.MethodPost, "/api/item", req, &item)
	return item, err
}

func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.ItemView, error) {
	var items []models.ItemView
	err := h.do(ctx, http.MethodGet, "/api/items", nil, &items)
	return items, err
}

func (h *httpServerAdapter) GetItem(ctx context.Context, itemID int64) (models.ItemView, error) {
	var item models.ItemView
	err := h.do(ctx, http.MethodGet, itemPath(itemID), nil, &item)
	return item, err
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, itemID int64, req models.ItemUpdateRequest) (models.ItemView, error) {
	var item models.ItemView
	err := h.do(ctx, http.MethodPut, itemPath(itemID), req, &item)
	return item, err
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID int64) error {
	return h.do(ctx, http.MethodDelete, itemPath(itemID), nil, nil)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var v models.VersionResponse
	err := h.do(ctx, http.MethodGet, "/api/version", nil, &v)
	return v.Version, err
}

// do sends one request and decodes the "data" member of the reply into out.
// A nil out skips decoding, which is what 204 replies need.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, body, out any) error {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request rejected by server")
		return err
	}

	if out == nil || resp.StatusCode() == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err = json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrMalformedResponse, err)
	}

	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func userPath(userID int64) string {
	return "/api/users/" + strconv.FormatInt(userID, 10)
}

func itemPath(itemID int64) string {
	return "/api/items/" + strconv.FormatInt(itemID, 10)
}

// parseUnverified reads the claims of tokenString. The client does not hold
// the signing key, so the signature is not checked.
func parseUnverified(tokenString string) (models.Token, error) {
	claims := &models.Claims{}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: claims.ID, Role: claims.Role}, nil
}
