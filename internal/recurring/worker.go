package recurring

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DefaultInterval is how often the worker checks for due templates when
// RECURRING_INTERVAL is not set.
const DefaultInterval = time.Hour

// Worker processes due templates once immediately and then on every
// tick of the interval until the context is canceled. It is meant to
// run as a goroutine next to the HTTP server.
func Worker(ctx context.Context, db *gorm.DB, interval time.Duration) {
	run := func(now time.Time) {
		count, err := Process(db, now)
		if err != nil {
			log.Error().Err(err).Msg("Recurring")
			return
		}

		if count > 0 {
			log.Info().Int("transactions", count).Msg("Recurring")
		}
	}

	run(time.Now().In(time.UTC))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			run(now.In(time.UTC))
		}
	}
}
