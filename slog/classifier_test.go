package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/mock"
	pagesiftslog "github.com/pagesift/pagesift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("logs the chosen strategy", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Classifier{
			ClassifyFn: func(html string) pagesift.Strategy {
				return pagesift.StrategyList
			},
		}

		classifier := pagesiftslog.NewLoggingClassifier(inner, logger)
		strategy := classifier.Classify("<html></html>")

		assert.Equal(t, pagesift.StrategyList, strategy)
		output := buf.String()
		assert.Contains(t, output, "strategy classification")
		assert.Contains(t, output, "strategy=list")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingSeedSource_Discover(t *testing.T) {
	t.Parallel()

	t.Run("logs URL count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SeedSource{
			DiscoverFn: func(ctx context.Context, siteURL string) ([]string, error) {
				return []string{"https://example.com/a", "https://example.com/b"}, nil
			},
		}

		src := pagesiftslog.NewLoggingSeedSource(inner, logger)
		urls, err := src.Discover(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "seed discovery")
		assert.Contains(t, output, "count=2")
	})
}
