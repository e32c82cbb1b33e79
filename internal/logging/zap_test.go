package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesFieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core)).With("module", "grpc_server")

	ctx := context.Background()
	log.Debug(ctx, "dbg")
	log.Info(ctx, "listening", "address", ":50051")
	log.Warn(ctx, "slow", "ms", 1200)
	log.Error(ctx, "boom")

	entries := logs.All()
	require.Len(t, entries, 4)

	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Equal(t, "listening", entries[1].Message)

	fields := entries[1].ContextMap()
	require.Equal(t, "grpc_server", fields["module"])
	require.Equal(t, ":50051", fields["address"])

	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
