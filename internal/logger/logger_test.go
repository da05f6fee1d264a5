package logger

import (
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"formapi/internal/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Encoding: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(config.LogConfig{Level: "warn", Encoding: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Encoding: "json"})
	assert.Error(t, err)
}

func TestErrorFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	typed := errx.New("formation not found", errx.WithCode("FORMATION_NOT_FOUND"), errx.WithType(errx.T_NotFound))
	log.Error("typed", ErrorFields(typed)...)
	log.Error("plain", ErrorFields(errors.New("boom"))...)

	entries := logs.All()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "FORMATION_NOT_FOUND", ctx["error_code"])
	assert.Equal(t, errx.T_NotFound.String(), ctx["error_type"])

	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}
