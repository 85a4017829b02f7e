package retry

import (
	"context"
	"time"
)

// Do runs fn up to maxRetries+1 times with exponential backoff (2^attempt
// seconds between tries). The context cancels the wait as well as the
// remaining attempts.
func Do(ctx context.Context, maxRetries int, fn func() error) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
