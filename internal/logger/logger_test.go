package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"droneVideoOps/internal/auth"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "console")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("", "")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))

	_, err = New("loud", "json")
	assert.Error(t, err)
	_, err = New("info", "xml")
	assert.Error(t, err)
}

func TestUnaryServerInterceptor(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ic := UnaryServerInterceptor(zap.New(core))
	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{Name: "root", Kind: "admin"})

	_, err := ic(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/admin.v1.AdminService/ListOrders"}, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	_, err = ic(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/admin.v1.AdminService/GetOrder"}, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "order not found")
	})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "rpc", entries[0].Message)
	assert.Equal(t, "root", entries[0].ContextMap()["caller"])
	assert.Equal(t, "rpc failed", entries[1].Message)
	assert.Equal(t, "NotFound", entries[1].ContextMap()["code"])
}
