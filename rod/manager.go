// Package rod provides browser-backed rendering for pagesift using
// Chrome automation. It hands out one isolated rendering session per
// crawl, so concurrent crawls never share cookies or page state.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of rendered pages after which the
// browser process is recycled. Chrome accumulates memory under load and
// never returns to its baseline, so the process is periodically
// replaced.
const DefaultMaxPages = 75

// browserManager owns the Chrome process lifecycle, including
// recycling. It is safe for concurrent use.
type browserManager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount atomic.Int64
	maxPages  int64
	closed    atomic.Bool
}

func newBrowserManager(maxPages int64) (*browserManager, error) {
	bm := &browserManager{maxPages: maxPages}
	if err := bm.launch(); err != nil {
		return nil, err
	}
	return bm, nil
}

// acquire returns the current browser, recycling it first when the
// rendered-page count has reached the threshold.
func (bm *browserManager) acquire() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.pageCount.Load() >= bm.maxPages {
		bm.recycle()
	}
	return bm.browser
}

// pageRendered advances the recycle counter.
func (bm *browserManager) pageRendered() {
	bm.pageCount.Add(1)
}

// close shuts down the browser. Safe to call multiple times.
func (bm *browserManager) close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.shutdown()
}

// launch starts a new browser with stability flags.
func (bm *browserManager) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher. Must be called with
// mu held.
func (bm *browserManager) shutdown() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser. If the replacement fails to launch
// the old one is kept. Must be called with mu held.
func (bm *browserManager) recycle() {
	oldBrowser := bm.browser
	oldLauncher := bm.launcher
	bm.browser = nil
	bm.launcher = nil

	if err := bm.launch(); err != nil {
		bm.browser = oldBrowser
		bm.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	bm.pageCount.Store(0)
}

// launcherPID exposes the browser process ID for cleanup tests.
func (bm *browserManager) launcherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
