// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-crud-keeper/internal/adapter"
	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/handler"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/service"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "server-test-key",
			TokenIssuer:      "server-test",
			TokenDuration:    time.Hour,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "v-test",
		},
		Storage: config.Storage{DB: config.DB{DSN: ":memory:"}},
		Server: config.Server{
			HTTPAddress:    "127.0.0.1:0",
			GRPCAddress:    "127.0.0.1:0",
			RequestTimeout: 5 * time.Second,
		},
	}
}

// startTestServer wires the whole stack on an in-memory SQLite database and
// starts both transports on ephemeral ports.
func startTestServer(t *testing.T) *server {
	t.Helper()

	log := logger.Nop()
	cfg := testConfig()

	db, err := store.NewDB(context.Background(), cfg.Storage.DB, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	storages := store.NewStorages(db, log)
	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("", "", ""), log)
	require.NoError(t, err)

	handlers, err := handler.NewHandlers(services, storages.HealthChecker, cfg.Server, log)
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg.Server, log)
	require.NoError(t, err)

	s := srv.(*server)
	require.NoError(t, s.start(context.Background()))
	t.Cleanup(s.Shutdown)

	return s
}

func newClient(t *testing.T, s *server) adapter.ServerAdapter {
	t.Helper()
	client, err := adapter.NewHTTPServerAdapter(s.http.listener.Addr().String(), 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return client
}

func ptr[T any](v T) *T { return &v }

// ─────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────

func TestNewServer_NoAddresses(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestStart_BusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.Server.GRPCAddress = ""
	cfg.Server.HTTPAddress = busy.Addr().String()

	handlers, err := handler.NewHandlers(nil, nil, cfg.Server, logger.Nop())
	require.NoError(t, err)
	srv, err := NewServer(handlers, cfg.Server, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, srv.(*server).start(context.Background()))
}

func TestStart_BusyGRPCPortReleasesHTTP(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.Server.GRPCAddress = busy.Addr().String()

	handlers, err := handler.NewHandlers(nil, pingOK{}, cfg.Server, logger.Nop())
	require.NoError(t, err)
	srv, err := NewServer(handlers, cfg.Server, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	require.Error(t, s.start(context.Background()))

	require.NotNil(t, s.http.listener)
	_, err = s.http.listener.Accept()
	assert.Error(t, err, "HTTP listener must be closed")
}

type pingOK struct{}

func (pingOK) PingContext(context.Context) error { return nil }

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Server.GRPCAddress = ""

	handlers, err := handler.NewHandlers(nil, nil, cfg.Server, logger.Nop())
	require.NoError(t, err)
	srv, err := NewServer(handlers, cfg.Server, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*server).run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

// ─────────────────────────────────────────────
// End to end
// ─────────────────────────────────────────────

func TestEndToEnd(t *testing.T) {
	s := startTestServer(t)
	ctx := context.Background()

	admin := newClient(t, s)
	member := newClient(t, s)
	anonymous := newClient(t, s)

	version, err := anonymous.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v-test", version)

	// register an admin and a plain user
	root, err := admin.Register(ctx, models.UserRegisterRequest{
		Username: ptr("root"), Email: ptr("root@x.io"), Password: ptr("secret"), Role: ptr(models.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, root.Role)

	bob, err := anonymous.CreateUser(ctx, models.UserCreateRequest{
		Username: ptr("bob"), Email: ptr("bob@x.io"), Password: ptr("hunter2"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)

	_, err = anonymous.CreateUser(ctx, models.UserCreateRequest{
		Username: ptr("bob"), Email: ptr("other@x.io"), Password: ptr("pw"),
	})
	require.ErrorIs(t, err, adapter.ErrConflict)

	// log in
	_, err = member.Login(ctx, models.LoginRequest{Username: ptr("bob"), Password: ptr("wrong")})
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	token, err := admin.Login(ctx, models.LoginRequest{Username: ptr("root"), Password: ptr("secret")})
	require.NoError(t, err)
	assert.Equal(t, root.ID, token.UserID)
	_, err = member.Login(ctx, models.LoginRequest{Username: ptr("bob"), Password: ptr("hunter2")})
	require.NoError(t, err)

	// items are admin-only for writes
	_, err = member.CreateItem(ctx, models.ItemCreateRequest{Name: ptr("pen"), Price: ptr(int64(3)), UserID: ptr(bob.ID)})
	require.ErrorIs(t, err, adapter.ErrForbidden)

	_, err = admin.CreateItem(ctx, models.ItemCreateRequest{Name: ptr("pen"), Price: ptr(int64(3)), UserID: ptr(int64(999))})
	require.ErrorIs(t, err, adapter.ErrBadRequest)

	pen, err := admin.CreateItem(ctx, models.ItemCreateRequest{
		Name: ptr("pen"), Price: ptr(int64(3)), Description: ptr("blue"), UserID: ptr(bob.ID),
	})
	require.NoError(t, err)

	updated, err := admin.UpdateItem(ctx, pen.ID, models.ItemUpdateRequest{Price: ptr(int64(0))})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Price)
	assert.Equal(t, "pen", updated.Name)

	items, err := anonymous.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// anyone may update a user, only admins may delete
	renamed, err := anonymous.UpdateUser(ctx, bob.ID, models.UserUpdateRequest{Username: ptr("robert")})
	require.NoError(t, err)
	assert.Equal(t, "robert", renamed.Username)

	require.ErrorIs(t, member.DeleteUser(ctx, bob.ID), adapter.ErrForbidden)
	require.NoError(t, admin.DeleteUser(ctx, bob.ID))

	// the token of a deleted user no longer authorizes anything
	require.ErrorIs(t, member.DeleteItem(ctx, pen.ID), adapter.ErrUnauthorized)

	// deleting the owner removed the item
	_, err = anonymous.GetItem(ctx, pen.ID)
	require.ErrorIs(t, err, adapter.ErrNotFound)

	users, err := anonymous.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "root", users[0].Username)
}

func TestEndToEnd_GRPCHealth(t *testing.T) {
	s := startTestServer(t)

	conn, err := grpc.NewClient(s.grpc.listener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	require.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 5*time.Second, 20*time.Millisecond)
}
