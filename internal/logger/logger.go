// Package logger builds the process-wide zap logger and the gRPC logging interceptor.
package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/auth"
)

// New returns a zap logger. format is "json" (default) or "console"; level is any zap
// level name ("debug", "info", ...).
func New(level, format string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if strings.TrimSpace(level) != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "", "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// UnaryServerInterceptor logs one line per RPC with method, caller, status code and latency.
// It must run after the auth interceptor for the caller fields to be present.
func UnaryServerInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}
		if p, ok := auth.FromContext(ctx); ok && p != nil {
			fields = append(fields, zap.String("caller", p.Name), zap.String("kind", p.Kind))
		}
		if err != nil {
			log.Warn("rpc failed", append(fields, zap.Error(err))...)
			return resp, err
		}
		log.Info("rpc", fields...)
		return resp, nil
	}
}
