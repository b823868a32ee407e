package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, uint64(0), Coalesce[uint64]())
}

func TestDedupe(t *testing.T) {
	in := []string{"b", "a", "", "b", "c", "a"}
	out := Dedupe(in)

	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, []string{"b", "a", "", "b", "c", "a"}, in, "input must not be modified")
	assert.Empty(t, Dedupe[string](nil))
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		value, alignment, want uint64
	}{
		{0, 256, 0},
		{1, 256, 256},
		{256, 256, 256},
		{257, 256, 512},
		{13, 0, 13},
		{13, 1, 13},
		{13, 4, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignUp(tt.value, tt.alignment), "AlignUp(%d, %d)", tt.value, tt.alignment)
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError), "default logger must be silent")

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("hello", "key", "value")
	assert.Contains(t, buf.String(), "key=value")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}
