package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	logger, err := Init("warn", true)
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.Same(t, logger, zap.L())
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.ErrorLevel))

	_, err = Init("loud", false)
	assert.Error(t, err)
}
