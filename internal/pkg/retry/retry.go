package retry

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	pkghttp "github.com/ModawnAI/samsung-geo-tool-sub004/pkg/http"
)

const (
	defaultAttempts = 2
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 200 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"2"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Do runs fn with the configured attempts, stopping early when ctx is done.
func Do(ctx context.Context, rc RetryConfig, fn func() error) error {
	if rc.Attempts == 0 {
		rc.Attempts = 1
	}
	opts := append(rc.ToRetryOptions(), retry.Context(ctx))
	return retry.Do(fn, opts...)
}

// IsRetryable retries network failures and 5xx/429 responses only.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == 429
	}

	return false
}
