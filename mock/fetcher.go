// Package mock provides function-field mock implementations of pagesift
// interfaces for testing.
package mock

import (
	"context"

	"github.com/pagesift/pagesift"
)

var (
	_ pagesift.Fetcher       = (*Fetcher)(nil)
	_ pagesift.Session       = (*Fetcher)(nil)
	_ pagesift.SessionSource = (*SessionSource)(nil)
	_ pagesift.DomainLimiter = (*DomainLimiter)(nil)
	_ pagesift.SeedSource    = (*SeedSource)(nil)
)

// Fetcher is a mock implementation of pagesift.Fetcher. It also serves
// as a mock pagesift.Session.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// SessionSource is a mock implementation of pagesift.SessionSource.
type SessionSource struct {
	NewSessionFn func(ctx context.Context) (pagesift.Session, error)
	CloseFn      func() error
}

func (s *SessionSource) NewSession(ctx context.Context) (pagesift.Session, error) {
	return s.NewSessionFn(ctx)
}

func (s *SessionSource) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// DomainLimiter is a mock implementation of pagesift.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// SeedSource is a mock implementation of pagesift.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}
