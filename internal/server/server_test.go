package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHTTPServer_Timeouts(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{
		Config: &config.Config{Server: config.ServerConfig{
			Port:         "9000",
			ReadTimeout:  5,
			WriteTimeout: 10,
			IdleTimeout:  60,
		}},
		Logger: &logger,
	}

	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":9000", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.httpServer.WriteTimeout)
	assert.Equal(t, time.Minute, s.httpServer.IdleTimeout)
}

func TestStart_WithoutSetup(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Config: &config.Config{}, Logger: &logger}

	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}

func TestShutdown_NothingStarted(t *testing.T) {
	s := &Server{}
	assert.NoError(t, s.Shutdown(context.Background()))
}
