package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 10 * time.Millisecond
)

func startServer(t *testing.T) (*GRPCServer, healthpb.HealthClient) {
	t.Helper()

	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, logger.NewNopLogger())
	lis := bufconn.Listen(1 << 20)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)

	return resp.GetStatus()
}

func TestHealthFollowsDependencies(t *testing.T) {
	srv, client := startServer(t)
	ctx := context.Background()

	var pgErr error
	probes := map[string]Probe{
		"postgres": func(context.Context) error { return pgErr },
		"redis":    func(context.Context) error { return nil },
	}

	require.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, testTimeout, testTick)

	pgErr = errors.New("connection refused")
	assert.False(t, srv.CheckDependencies(ctx, probes))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client))

	pgErr = nil
	assert.True(t, srv.CheckDependencies(ctx, probes))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client))
}
