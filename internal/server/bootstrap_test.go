package server

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartReturnsWhenListenFails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	cfg := &config.Config{
		Environment:    "test",
		Port:           strconv.Itoa(port),
		ServiceName:    "folio-test",
		ResetAfter:     5 * time.Second,
		FormIdleTTL:    time.Minute,
		SweepInterval:  time.Minute,
		RateLimitRPS:   10,
		RateLimitBurst: 10,
	}

	done := make(chan error, 1)
	go func() {
		done <- Start(context.Background(), cfg)
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after the listener failed")
	}
}
