package http

import (
	"context"

	"github.com/pagesift/pagesift"
)

// Ensure SessionSource implements pagesift.SessionSource.
var _ pagesift.SessionSource = (*SessionSource)(nil)

// SessionSource hands out HTTP-backed fetch sessions. Unlike the
// browser-backed source there is no shared process to manage; each
// session is an independent client.
type SessionSource struct {
	opts []Option
}

// NewSessionSource creates a SessionSource whose sessions use the given
// fetcher options.
func NewSessionSource(opts ...Option) *SessionSource {
	return &SessionSource{opts: opts}
}

// NewSession returns a new HTTP fetch session.
func (s *SessionSource) NewSession(ctx context.Context) (pagesift.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewFetcher(s.opts...), nil
}

// Close is a no-op; sessions own their clients.
func (s *SessionSource) Close() error {
	return nil
}
