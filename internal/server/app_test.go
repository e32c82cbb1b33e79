package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/postplanner/internal/server/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = freeAddr(t)
	c.EndpointAddrHTTP = freeAddr(t)
	return c
}

func TestNewApp_InMemoryWithoutProvider(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, app.postcardService)
	assert.False(t, app.generationService.Available())
}

func TestNewApp_WithProvider(t *testing.T) {
	c := testConfig(t)
	c.AIAPIKey = "sk-test"
	c.AIProvider = "anthropic"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, app.generationService.Available())
}

func TestApp_Run_StopsOnCancel(t *testing.T) {
	c := testConfig(t)
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", c.EndpointAddrHTTP)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestApp_Run_StopsWhenListenerFails(t *testing.T) {
	c := testConfig(t)
	c.EndpointAddrHTTP = "127.0.0.1:99999"
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after listener failure")
	}
}
