package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/logging"
	"github.com/dmitrijs2005/postplanner/internal/rpc"
	"github.com/dmitrijs2005/postplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postplanner/internal/server/services"
)

func newTestServer() *GRPCServer {
	ps := services.NewPostcardService(repomanager.NewMemoryManager())
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), ps)
}

func dialBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func strPtr(s string) *string { return &s }

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}

func TestServer_RoundTrip(t *testing.T) {
	conn := dialBufconn(t, newTestServer())
	c := rpc.NewPostcardServiceClient(conn)
	ctx := context.Background()

	ins, err := c.Insert(ctx, &rpc.InsertRequest{PrimaryContent: "hello", Template: "story"})
	require.NoError(t, err)
	id := ins.Postcard.ID
	assert.NotEmpty(t, id)
	assert.Equal(t, "draft", ins.Postcard.State)
	assert.Empty(t, ins.Postcard.ScheduledDate)

	date := time.Now().UTC().AddDate(0, 0, 3).Format(time.DateOnly)
	patched, err := c.Patch(ctx, &rpc.PatchRequest{
		ID:            id,
		State:         strPtr("scheduled"),
		ScheduledDate: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", patched.Postcard.State)
	assert.Equal(t, date, patched.Postcard.ScheduledDate)
	assert.Equal(t, "hello", patched.Postcard.PrimaryContent)

	got, err := c.Get(ctx, &rpc.GetRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, patched.Postcard, got.Postcard)

	list, err := c.List(ctx, &rpc.ListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Postcards, 1)
	assert.Equal(t, id, list.Postcards[0].ID)

	_, err = c.Remove(ctx, &rpc.RemoveRequest{ID: id})
	require.NoError(t, err)

	_, err = c.Get(ctx, &rpc.GetRequest{ID: id})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_ErrorCodes(t *testing.T) {
	conn := dialBufconn(t, newTestServer())
	c := rpc.NewPostcardServiceClient(conn)
	ctx := context.Background()

	ins, err := c.Insert(ctx, &rpc.InsertRequest{PrimaryContent: "x"})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"bad date on insert", func() error {
			_, err := c.Insert(ctx, &rpc.InsertRequest{ScheduledDate: "tomorrow"})
			return err
		}, codes.InvalidArgument},
		{"past date", func() error {
			_, err := c.Insert(ctx, &rpc.InsertRequest{ScheduledDate: "2001-01-01"})
			return err
		}, codes.InvalidArgument},
		{"empty date on patch", func() error {
			_, err := c.Patch(ctx, &rpc.PatchRequest{ID: ins.Postcard.ID, ScheduledDate: strPtr("")})
			return err
		}, codes.InvalidArgument},
		{"backwards state", func() error {
			if _, err := c.Patch(ctx, &rpc.PatchRequest{ID: ins.Postcard.ID, State: strPtr("approved")}); err != nil {
				return err
			}
			_, err := c.Patch(ctx, &rpc.PatchRequest{ID: ins.Postcard.ID, State: strPtr("draft")})
			return err
		}, codes.InvalidArgument},
		{"unknown id", func() error {
			_, err := c.Patch(ctx, &rpc.PatchRequest{ID: "00000000-0000-0000-0000-000000000000"})
			return err
		}, codes.NotFound},
		{"malformed id", func() error {
			_, err := c.Remove(ctx, &rpc.RemoveRequest{ID: "nope"})
			return err
		}, codes.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(tt.call()))
		})
	}
}

func TestServer_HealthAndRequestID(t *testing.T) {
	conn := dialBufconn(t, newTestServer())
	ctx := context.Background()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, "req-42")
	var header metadata.MD
	_, err = rpc.NewPostcardServiceClient(conn).List(ctx, &rpc.ListRequest{}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, header.Get(common.RequestIDHeaderName))
}
