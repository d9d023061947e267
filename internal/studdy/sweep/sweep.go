package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper deletes expired key-value entries.
type Sweeper interface {
	SweepExpired(ctx context.Context) error
}

// Start launches a loop that periodically sweeps expired KV entries.
// It blocks until the context is cancelled.
func Start(ctx context.Context, kvStore Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := kvStore.SweepExpired(ctx); err != nil {
				log.Debug().Err(err).Msg("kv sweep failed")
			}
		}
	}
}

// Background runs Start on its own goroutine. The returned stop cancels the
// loop and blocks until it has returned, so callers can close the store after.
func Background(kvStore Sweeper, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		Start(ctx, kvStore, interval)
	}()

	return func() {
		cancel()
		<-done
	}
}
