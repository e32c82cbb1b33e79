package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/postplanner/internal/common"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/postplanner.PostcardService/List"}

func TestRequestIDInterceptor_UsesIncomingID(t *testing.T) {
	s := newTestServer()

	md := metadata.New(map[string]string{common.RequestIDHeaderName: "abc"})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var seen string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.requestIDInterceptor(ctx, nil, testInfo, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "abc", seen)
}

func TestRequestIDInterceptor_GeneratesID(t *testing.T) {
	s := newTestServer()

	var seen string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	}

	_, err := s.requestIDInterceptor(context.Background(), nil, testInfo, h)
	require.NoError(t, err)
	assert.Len(t, seen, 36)
}

func TestRecoveryInterceptor(t *testing.T) {
	s := newTestServer()

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	}

	resp, err := s.recoveryInterceptor(context.Background(), nil, testInfo, h)
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer()
	wantErr := status.Error(codes.NotFound, "missing")

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "resp", wantErr
	}

	resp, err := s.loggingInterceptor(context.Background(), "req", testInfo, h)
	assert.Equal(t, "resp", resp)
	assert.Equal(t, wantErr, err)
}

func TestStatusError(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrNotFound, codes.NotFound},
		{common.ErrInvalidArgument, codes.InvalidArgument},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{common.ErrInternal, codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(s.statusError(ctx, tt.err)), tt.err.Error())
	}
	assert.Equal(t, "internal error", status.Convert(s.statusError(ctx, common.ErrInternal)).Message())
}
