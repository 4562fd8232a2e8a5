package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	adminv1 "droneVideoOps/api/admin/v1"
	clientv1 "droneVideoOps/api/client/v1"
	staffv1 "droneVideoOps/api/staff/v1"
	"droneVideoOps/api/wire"
	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/config"
	"droneVideoOps/internal/logger"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/repository"
)

const (
	healthCheckMethod = "/grpc.health.v1.Health/Check"
	healthWatchMethod = "/grpc.health.v1.Health/Watch"
)

// Deps are the collaborators shared by the three portal servers.
type Deps struct {
	Store    *repository.Store
	Workflow *workflow.Service
	Log      *zap.Logger
}

// NewServer builds a gRPC server with the admin, client and staff services plus health.
// Interceptors run in order: auth, rate limit, logging.
func NewServer(cfg *config.Config, deps Deps) *grpc.Server {
	if cfg == nil {
		panic("config is required")
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	limiter := newRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	srv := grpc.NewServer(
		wire.ServerOption(),
		grpc.ChainUnaryInterceptor(
			auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, healthCheckMethod, healthWatchMethod),
			limiter.Unary(healthCheckMethod),
			logger.UnaryServerInterceptor(log),
		),
	)

	adminv1.RegisterAdminServiceServer(srv, &AdminServer{Store: deps.Store, Workflow: deps.Workflow})
	clientv1.RegisterClientServiceServer(srv, &ClientServer{Store: deps.Store, Workflow: deps.Workflow})
	staffv1.RegisterStaffServiceServer(srv, &StaffServer{Store: deps.Store, Workflow: deps.Workflow})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range []string{adminv1.ServiceName, clientv1.ServiceName, staffv1.ServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, deps Deps) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// Plaintext; terminate TLS in front of the service.
	srv := NewServer(cfg, deps)
	go func() {
		if err := srv.Serve(lis); err != nil && deps.Log != nil {
			deps.Log.Error("grpc serve stopped", zap.Error(err))
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
