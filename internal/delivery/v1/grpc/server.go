package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName — имя сервиса в ответах health-check.
const ServiceName = "product-ordering"

// Probe проверяет одну внешнюю зависимость (PostgreSQL, Redis и т.д.).
type Probe func(ctx context.Context) error

// GRPCServer — служебный gRPC-сервер: health-check и reflection.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger

	mu     sync.Mutex
	failed map[string]bool
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	s := &GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
		failed: make(map[string]bool),
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	return s
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

// Serve обслуживает запросы на готовом listener.
func (s *GRPCServer) Serve(lis net.Listener) error {
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return s.server.Serve(lis)
}

// WatchDependencies периодически вызывает probes. Пока хотя бы одна проверка падает,
// сервис отдаёт NOT_SERVING. Блокируется до отмены ctx.
func (s *GRPCServer) WatchDependencies(ctx context.Context, interval time.Duration, probes map[string]Probe) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.CheckDependencies(ctx, probes)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// CheckDependencies выполняет все проверки один раз и обновляет статус.
func (s *GRPCServer) CheckDependencies(ctx context.Context, probes map[string]Probe) bool {
	healthy := true

	for name, probe := range probes {
		err := probe(ctx)

		s.mu.Lock()
		wasFailed := s.failed[name]
		s.failed[name] = err != nil
		s.mu.Unlock()

		switch {
		case err != nil && !wasFailed:
			s.logger.Errorf(err, "dependency %s is unavailable", name)
		case err == nil && wasFailed:
			s.logger.Infof("dependency %s is available again", name)
		}

		if err != nil {
			healthy = false
		}
	}

	if healthy {
		s.setStatus(healthpb.HealthCheckResponse_SERVING)
	} else {
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return healthy
}

func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}

func (s *GRPCServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
