package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/oggyb/duo-match/internal/logger"
)

// NewGRPCServer builds a gRPC server and registers all provided services.
//
// Every server gets:
//   - otelgrpc stats handler (spans go to the global tracer provider)
//   - request logging with a per-call logger in the context
//   - grpc.health.v1 with each registrar marked SERVING
//   - reflection for easier debugging with grpcurl
func NewGRPCServer(log *slog.Logger, registrars ...Registrar) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(loggingUnaryInterceptor(log)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
		healthServer.SetServingStatus(r.Name(), healthpb.HealthCheckResponse_SERVING)
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// StartGRPCServer listens on addr and serves until ctx is done, then drains
// in-flight calls.
func StartGRPCServer(ctx context.Context, addr string, log *slog.Logger, registrars ...Registrar) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer, healthServer := NewGRPCServer(log, registrars...)
	return Serve(ctx, lis, grpcServer, healthServer)
}

// Serve runs grpcServer on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener, grpcServer *grpc.Server, healthServer *health.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- grpcServer.Serve(lis) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	}
}

// loggingUnaryInterceptor puts a method-scoped logger into the context and
// logs each call once it finishes. Server-side failures log at Error, client
// mistakes and policy rejections at Info.
func loggingUnaryInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		log := base.With("method", info.FullMethod)
		ctx = logger.IntoContext(ctx, log)

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		level := slog.LevelDebug
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unavailable, codes.Unknown, codes.DataLoss:
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		log.Log(ctx, level, "grpc call", "code", code.String(), "duration", time.Since(start), "err", err)

		return resp, err
	}
}
