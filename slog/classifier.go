package slog

import (
	"log/slog"
	"time"

	"github.com/pagesift/pagesift"
)

// Ensure LoggingClassifier implements pagesift.Classifier.
var _ pagesift.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging for strategy
// decisions.
type LoggingClassifier struct {
	next   pagesift.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next pagesift.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the decision.
func (c *LoggingClassifier) Classify(html string) pagesift.Strategy {
	begin := time.Now()
	strategy := c.next.Classify(html)
	c.logger.Info("strategy classification",
		"strategy", string(strategy),
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return strategy
}
