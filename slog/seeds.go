package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagesift/pagesift"
)

// Ensure LoggingSeedSource implements pagesift.SeedSource.
var _ pagesift.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with debug logging.
type LoggingSeedSource struct {
	next   pagesift.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next pagesift.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSeedSource) Discover(ctx context.Context, siteURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seed discovery",
			"url", siteURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, siteURL)
}
