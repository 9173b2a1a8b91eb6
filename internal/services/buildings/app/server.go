// Package server wires the building runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/skyline/internal/platform/config"
	platformgrpc "github.com/louisbranch/skyline/internal/platform/grpc"
	"github.com/louisbranch/skyline/internal/platform/logging"
	"github.com/louisbranch/skyline/internal/platform/timeouts"
	buildingservice "github.com/louisbranch/skyline/internal/services/buildings/api/grpc/buildings"
	facade "github.com/louisbranch/skyline/internal/services/buildings/server"
	buildingsqlite "github.com/louisbranch/skyline/internal/services/buildings/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath string   `env:"BUILDINGS_DB_PATH"`
	Seed   []string `env:"BUILDINGS_SEED" envDefault:"Test Building" envSeparator:","`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "buildings.db")
	}
	return cfg, nil
}

// Server hosts the building gRPC API and storage lifecycle.
type Server struct {
	listener        net.Listener
	grpcServer      *grpc.Server
	health          *health.Server
	store           *buildingsqlite.Store
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the lifecycle logger. It is also handed to the facade.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithShutdownTimeout bounds graceful stop before in-flight calls are cut.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// New creates a configured building server listening on the provided port.
func New(port int, opts ...Option) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port), opts...)
}

// NewWithAddr creates a configured building server for the provided address.
func NewWithAddr(addr string, opts ...Option) (*Server, error) {
	s := &Server{logger: zap.NewNop(), shutdownTimeout: timeouts.Shutdown}
	for _, opt := range opts {
		opt(s)
	}

	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openBuildingStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	if err := store.Seed(context.Background(), env.Seed...); err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("seed building store: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	apiService := buildingservice.NewService(facade.New(store, facade.WithLogger(s.logger)))
	healthServer := platformgrpc.NewHealthServer(buildingservice.ServiceName)
	buildingservice.RegisterBuildingServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	s.listener = listener
	s.grpcServer = grpcServer
	s.health = healthServer
	s.store = store
	return s, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a building server until context cancellation.
func Run(ctx context.Context, port int, opts ...Option) error {
	server, err := New(port, opts...)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	s.logger.Info("building server listening", zap.String("addr", s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.gracefulStop()
		return serveResult(<-serveErr)
	case err := <-serveErr:
		return serveResult(err)
	}
}

// gracefulStop waits for in-flight calls up to the shutdown timeout, then
// stops hard.
func (s *Server) gracefulStop() {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("graceful stop timed out", zap.Duration("timeout", s.shutdownTimeout))
		s.grpcServer.Stop()
		<-stopped
	}
}

func serveResult(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Close releases building server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close building store", zap.Error(err))
		}
	}
}

func openBuildingStore(path string) (*buildingsqlite.Store, error) {
	store, err := buildingsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open building sqlite store: %w", err)
	}
	return store, nil
}
