package stress

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowWriter delays every write, widening any window in which a log call is
// still running after its caller was told the work was done.
type slowWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *slowWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), Config{
		Rounds:        20,
		Workers:       8,
		LateNotifiers: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, report.Rounds)
	// every worker notification reaches the platform, plus late ones
	assert.GreaterOrEqual(t, report.Notifications, int64(20*8))
	// a wake may cover several notifications, or none if the work was
	// already done by the time the loop looked
	assert.LessOrEqual(t, report.Wakes, report.Notifications)
}

func TestRun_NoLateNotifiers(t *testing.T) {
	report, err := Run(context.Background(), Config{Rounds: 1, Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rounds)
	assert.Equal(t, int64(1), report.Notifications)
	assert.LessOrEqual(t, report.Wakes, int64(1))
}

func TestRun_InvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{Rounds: 0, Workers: 1},
		{Rounds: 1, Workers: 0},
		{Rounds: 1, Workers: 1, LateNotifiers: -1},
	} {
		_, err := Run(context.Background(), cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Run(ctx, Config{Rounds: 5, Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Rounds)
}

func TestRun_TaskExitedBeforeReturn(t *testing.T) {
	var out slowWriter
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&out)),
		stumpy.L.WithLevel(logiface.LevelDebug),
	).Logger()

	for range 3 {
		_, err := Run(context.Background(), Config{Rounds: 2, Workers: 2, LateNotifiers: 1, Logger: logger})
		require.NoError(t, err)

		logs := out.String()
		registered := strings.Count(logs, `"msg":"task registered"`)
		unregistered := strings.Count(logs, `"msg":"task unregistered"`)
		require.NotZero(t, registered)
		require.Equal(t, registered, unregistered, "task still registered when Run returned")
	}
}
