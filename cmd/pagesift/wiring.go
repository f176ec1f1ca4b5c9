package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/htmltomarkdown"
	pagesiftslog "github.com/pagesift/pagesift/slog"
)

func defaultDBPath() string {
	if path := os.Getenv("PAGESIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagesift.db"
	}
	dir := filepath.Join(home, ".pagesift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagesift.db")
}

// lookupSite resolves the registry config for a URL's host.
func lookupSite(sites pagesift.SiteRegistry, rawURL string) (*pagesift.SiteConfig, bool) {
	if sites == nil {
		return nil, false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}
	return sites.Lookup(u.Host)
}

// converterOptions derives markdown conversion options from the start
// URL: relative links in article content resolve against its origin.
func converterOptions(rawURL string) []htmltomarkdown.Option {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return []htmltomarkdown.Option{htmltomarkdown.WithDomain(u.Scheme + "://" + u.Host)}
}

// loggingSessions wraps a SessionSource so every session it hands out
// logs its fetches.
type loggingSessions struct {
	next   pagesift.SessionSource
	logger *slog.Logger
}

func (s *loggingSessions) NewSession(ctx context.Context) (pagesift.Session, error) {
	session, err := s.next.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	return pagesiftslog.NewLoggingFetcher(session, s.logger), nil
}

func (s *loggingSessions) Close() error {
	return s.next.Close()
}
