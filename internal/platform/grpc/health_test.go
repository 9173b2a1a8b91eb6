package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const buildingService = "skyline.buildings.v1.BuildingService"

func TestNewHealthServerReportsNamedServices(t *testing.T) {
	t.Parallel()

	server := NewHealthServer(buildingService)
	for _, service := range []string{"", buildingService} {
		response, err := server.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("check %q: %v", service, err)
		}
		if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Fatalf("status for %q = %s", service, response.GetStatus())
		}
	}
	if _, err := server.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "skyline.unknown.v1.Service"}); err == nil {
		t.Fatal("expected unregistered service check to fail")
	}
}

func TestWaitForHealthBuildingServiceServing(t *testing.T) {
	t.Parallel()

	addr, _ := startHealthServer(t, buildingService, grpc_health_v1.HealthCheckResponse_SERVING)
	conn := dialHealthServer(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, service := range []string{"", buildingService} {
		if err := WaitForHealth(ctx, conn, service, nil); err != nil {
			t.Fatalf("wait for %q health: %v", service, err)
		}
	}
}

func TestWaitForHealthBuildingServiceRecovers(t *testing.T) {
	t.Parallel()

	addr, setStatus := startHealthServer(t, buildingService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	conn := dialHealthServer(t, addr)

	time.AfterFunc(250*time.Millisecond, func() {
		setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var waiting, serving int
	logf := func(format string, _ ...any) {
		if format == "gRPC health check for %q is SERVING" {
			serving++
			return
		}
		waiting++
	}
	if err := WaitForHealth(ctx, conn, buildingService, logf); err != nil {
		t.Fatalf("wait for health after recovery: %v", err)
	}
	if waiting == 0 || serving != 1 {
		t.Fatalf("log lines: waiting=%d serving=%d", waiting, serving)
	}
}

func TestWaitForHealthUnregisteredServiceWaitsForContext(t *testing.T) {
	t.Parallel()

	addr, _ := startHealthServer(t, buildingService, grpc_health_v1.HealthCheckResponse_SERVING)
	conn := dialHealthServer(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "skyline.unknown.v1.Service", nil); err == nil {
		t.Fatal("expected context error for unregistered service")
	}
}

func TestWaitForHealthRequiresConnection(t *testing.T) {
	t.Parallel()

	if err := WaitForHealth(context.Background(), nil, buildingService, nil); err == nil {
		t.Fatal("expected missing connection error")
	}
}

// startHealthServer serves a health endpoint for service at status. The
// overall server status ("") stays SERVING.
func startHealthServer(t *testing.T, service string, status grpc_health_v1.HealthCheckResponse_ServingStatus) (string, func(grpc_health_v1.HealthCheckResponse_ServingStatus)) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	healthServer := NewHealthServer(service)
	healthServer.SetServingStatus(service, status)
	grpcServer := gogrpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	served := make(chan struct{})
	go func() {
		defer close(served)
		_ = grpcServer.Serve(listener)
	}()
	t.Cleanup(func() {
		grpcServer.Stop()
		<-served
	})

	setStatus := func(next grpc_health_v1.HealthCheckResponse_ServingStatus) {
		healthServer.SetServingStatus(service, next)
	}
	return listener.Addr().String(), setStatus
}

func dialHealthServer(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, DefaultClientDialOptions()...)
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
