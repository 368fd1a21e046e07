package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-crud-keeper/internal/logger"
)

type fakeChecker struct {
	err   atomic.Value
	calls atomic.Int32
}

func (f *fakeChecker) PingContext(context.Context) error {
	f.calls.Add(1)
	if err, ok := f.err.Load().(error); ok {
		return err
	}
	return nil
}

func (f *fakeChecker) fail(err error) { f.err.Store(err) }

// dial serves h on an in-memory listener and returns a health client.
func dial(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	h.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_NotServingBeforeFirstProbe(t *testing.T) {
	h := NewHandler(&fakeChecker{}, logger.Nop())
	client := dial(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ""))
}

func TestHandler_ProbeFollowsDatabase(t *testing.T) {
	checker := &fakeChecker{}
	h := NewHandler(checker, logger.Nop())
	client := dial(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ServiceName))

	checker.fail(errors.New("connection refused"))

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ServiceName))
}

func TestHandler_UnknownService(t *testing.T) {
	h := NewHandler(&fakeChecker{}, logger.Nop())
	client := dial(t, h)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})
	assert.Error(t, err)
}

func TestHandler_WatchProbesUntilCancelled(t *testing.T) {
	checker := &fakeChecker{}
	h := NewHandler(checker, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return checker.calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestHandler_Shutdown(t *testing.T) {
	h := NewHandler(&fakeChecker{}, logger.Nop())
	client := dial(t, h)

	h.Probe(context.Background())
	h.Shutdown()
	h.Probe(context.Background())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, ""))
}
