package builder

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type blockingWork struct {
	release chan struct{}
	waited  bool
}

func (b *blockingWork) Wait(ctx context.Context) error {
	b.waited = true
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newTestApp(work backgroundWork, timeout time.Duration) *App {
	return &App{
		server:          &http.Server{Addr: "127.0.0.1:0"},
		background:      work,
		shutdownTimeout: timeout,
		logger:          zap.NewNop(),
	}
}

func TestApp_ShutdownWaitsForBackgroundWork(t *testing.T) {
	work := &blockingWork{release: make(chan struct{})}
	close(work.release)

	err := newTestApp(work, time.Second).shutdown()

	assert.NoError(t, err)
	assert.True(t, work.waited)
}

func TestApp_ShutdownReportsUnfinishedWork(t *testing.T) {
	work := &blockingWork{release: make(chan struct{})}

	err := newTestApp(work, 20*time.Millisecond).shutdown()

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestApp_ShutdownWithoutBackgroundWork(t *testing.T) {
	assert.NoError(t, newTestApp(nil, time.Second).shutdown())
}
