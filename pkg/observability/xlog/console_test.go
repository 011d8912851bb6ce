package xlog

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

func TestConsoleSink_Plain(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)

	ts := time.Date(2024, 1, 1, 1, 2, 3, 0, time.Local)
	l1 := FormatLine(ts, LevelInfo, "o", "one")
	l2 := FormatLine(ts, LevelError, "o", "two")
	require.NoError(t, s.Process([]xrotate.Record{
		{Category: xrotate.CategoryMetrics, Line: l1},
		{Command: xrotate.CommandFlush},
		{Category: xrotate.CategoryAlerts, Line: l2},
		{Command: xrotate.CommandShutdown},
	}))

	assert.Equal(t, l1+l2, buf.String())
	assert.NoError(t, s.Close())
}

func TestConsoleSink_Color(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf, WithColor(true))

	line := FormatLine(time.Now(), LevelError, "o", "bad")
	require.NoError(t, s.Process([]xrotate.Record{{Line: line}}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "[Error]")
	assert.Contains(t, out, "] [o] bad\n")
}

func TestConsoleSink_ColorizeUnknownLine(t *testing.T) {
	s := NewConsoleSink(&bytes.Buffer{}, WithColor(true))
	assert.Equal(t, "short\n", s.colorize("short\n"))

	odd := "xxxxxxxxxxxxxxx [?????] rest\n"
	assert.Equal(t, odd, s.colorize(odd))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConsoleSink_WriteError(t *testing.T) {
	s := NewConsoleSink(failingWriter{})
	err := s.Process([]xrotate.Record{{Line: "x\n"}})
	assert.ErrorIs(t, err, xrotate.ErrIOFailure)
}
