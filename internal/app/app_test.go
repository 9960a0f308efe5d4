package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydeebs/cleanupIPP/internal/config"
)

func TestNewApplication(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 0

	app, err := NewApplication(cfg)
	require.NoError(t, err)

	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Metrics)
	assert.NotNil(t, app.Service)
	require.NotNil(t, app.Server)
	assert.Equal(t, cfg.Server.ReadTimeout, app.Server.ReadTimeout)
}
