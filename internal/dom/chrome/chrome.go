// Package chrome is the live-browser host: it drives a real Chrome tab over
// the DevTools protocol via go-rod and exposes it through the dom interfaces.
// Geometry and style answers come from the page's own layout engine, so the
// inspection results match what a user actually sees.
package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config controls how the host reaches a browser.
type Config struct {
	// Attach is a DevTools websocket URL of an already-running Chrome.
	// When empty a new browser is launched.
	Attach string

	Headless bool

	// Viewport override for new pages. Zero leaves the browser default.
	Width, Height int

	// Timeout bounds navigation and page readiness. Zero means 30s.
	Timeout time.Duration
}

// Host owns one browser connection. It can open any number of pages; each
// page is an independent dom.Document.
type Host struct {
	cfg      Config
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Connect launches or attaches to a browser per cfg.
func Connect(ctx context.Context, cfg Config) (*Host, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	h := &Host{cfg: cfg}

	controlURL := cfg.Attach
	if controlURL == "" {
		h.launcher = launcher.New().Headless(cfg.Headless)
		url, err := h.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if h.launcher != nil {
			h.launcher.Kill()
		}
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	h.browser = browser
	return h, nil
}

// Open navigates a fresh tab to url and waits for the load event.
func (h *Host) Open(ctx context.Context, url string) (*Document, error) {
	page, err := h.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	page = page.Context(ctx).Timeout(h.cfg.Timeout)

	if h.cfg.Width > 0 && h.cfg.Height > 0 {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:  h.cfg.Width,
			Height: h.cfg.Height,
		})
		if err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("set viewport: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait for load: %w", err)
	}

	return newDocument(page), nil
}

// Close disconnects from the browser and kills it if this host launched it.
func (h *Host) Close() error {
	err := h.browser.Close()
	if h.launcher != nil {
		h.launcher.Kill()
		h.launcher.Cleanup()
	}
	return err
}
