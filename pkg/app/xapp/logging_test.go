package xapp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xboot/pkg/observability/xlog"
	"github.com/omeyang/xboot/pkg/observability/xrotate"
)

func TestExitOnLogFailure(t *testing.T) {
	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	var codes []int
	exitFunc = func(code int) { codes = append(codes, code) }

	var buf bytes.Buffer
	diag, _, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)

	exitOnLogFailure(diag)(errors.Join(xrotate.ErrIOFailure, errors.New("no space left on device")))

	assert.Equal(t, []int{1}, codes)
	assert.Contains(t, buf.String(), "log pipeline failed, exiting")
	assert.Contains(t, buf.String(), "no space left on device")
}

func TestExitOnLogFailure_FromDispatcher(t *testing.T) {
	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	exited := make(chan int, 1)
	exitFunc = func(code int) { exited <- code }

	var buf bytes.Buffer
	diag, _, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)

	d := xlog.NewDispatcher(failingSink{}, xlog.WithFatalHandler(exitOnLogFailure(diag)))
	require.NoError(t, d.Submit(xrotate.Record{Line: "x\n"}))
	assert.Equal(t, 1, <-exited)
	assert.Contains(t, buf.String(), "disk gone")
	require.NoError(t, d.Close())
}

type failingSink struct{}

func (failingSink) Process(batch []xrotate.Record) error {
	for _, r := range batch {
		if r.Command == xrotate.CommandRecord {
			return errors.Join(xrotate.ErrIOFailure, errors.New("disk gone"))
		}
	}
	return nil
}

func (failingSink) Close() error { return nil }
