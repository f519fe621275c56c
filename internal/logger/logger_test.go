package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Err(t *testing.T) {
	sentinel := errors.New("not found")
	log := New("repo").Function("Get")

	err := log.Err("failed to get row", sentinel, "id", 1)
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "repo.Get: failed to get row: not found", err.Error())
}

func TestLogger_ErrorMessages(t *testing.T) {
	log := New("repo")

	assert.Equal(t, "repo: empty range", log.Error("empty range", "from", 1).Error())
	assert.Equal(t, "repo.List: bad page", log.Function("List").ErrMsg("bad page").Error())
}

func TestLogger_IsImmutable(t *testing.T) {
	base := New("app")
	withFn := base.Function("Run").File("app.go")

	assert.Empty(t, base.function)
	assert.Empty(t, base.file)
	assert.Equal(t, "Run", withFn.function)
	assert.Equal(t, "app.go", withFn.file)
	assert.NotNil(t, withFn.Slog())
}

func TestSetLevel_AppliesToExistingLoggers(t *testing.T) {
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })
	ctx := context.Background()

	log := New("early").Function("Run")
	assert.False(t, log.Slog().Enabled(ctx, slog.LevelDebug))

	SetLevel(slog.LevelDebug)
	assert.True(t, log.Slog().Enabled(ctx, slog.LevelDebug), "loggers created before SetLevel follow it")

	SetLevel(slog.LevelError)
	assert.False(t, New("late").Slog().Enabled(ctx, slog.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"info+2": slog.LevelInfo + 2,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	_, err = ParseLevel("")
	assert.Error(t, err)
}
