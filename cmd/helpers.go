package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/chrome"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

// addHostFlags adds the shared page-source flags to a command. Exactly one
// source must be given: a saved HTML file (or stdin) inspected through the
// in-memory host, or a URL opened in a live Chrome tab.
func addHostFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Inspect a saved HTML file ('-' for stdin)")
	cmd.Flags().String("url", "", "Open this URL in a Chrome tab and inspect it")
	cmd.Flags().String("attach", "", "DevTools websocket URL of a running Chrome (with --url)")
	cmd.Flags().Bool("headed", false, "Launch Chrome with a visible window (with --url)")
	cmd.Flags().String("viewport", "", "Viewport size as WIDTHxHEIGHT (e.g. 1280x720)")
	cmd.Flags().Int("timeout", 30, "Navigation timeout in seconds (with --url)")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// parseViewport parses a WIDTHxHEIGHT flag value.
func parseViewport(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid viewport %q (expected WIDTHxHEIGHT)", s)
	}
	w, err = strconv.Atoi(ws)
	if err == nil {
		h, err = strconv.Atoi(hs)
	}
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid viewport %q (expected WIDTHxHEIGHT)", s)
	}
	return w, h, nil
}

// openDocument resolves the host flags into a live dom.Document. The
// returned cleanup closes whatever the source opened and is safe to call
// exactly once.
func openDocument(cmd *cobra.Command) (dom.Document, func(), error) {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")
	attach, _ := cmd.Flags().GetString("attach")
	headed, _ := cmd.Flags().GetBool("headed")
	viewport, _ := cmd.Flags().GetString("viewport")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	if (file == "") == (url == "") {
		return nil, nil, fmt.Errorf("exactly one of --file or --url is required")
	}

	var vw, vh int
	if viewport != "" {
		var err error
		vw, vh, err = parseViewport(viewport)
		if err != nil {
			return nil, nil, err
		}
	}

	if file != "" {
		var r io.Reader
		origin := "stdin"
		if file == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(file)
			if err != nil {
				return nil, nil, fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()
			r = f
			if abs, err := filepath.Abs(file); err == nil {
				origin = "file://" + abs
			}
		}

		opts := []memdom.ParseOption{memdom.WithURL(origin)}
		if vw > 0 {
			opts = append(opts, memdom.WithViewport(float64(vw), float64(vh)))
		}
		doc, err := memdom.Parse(r, opts...)
		if err != nil {
			return nil, nil, err
		}
		return doc, func() {}, nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	host, err := chrome.Connect(ctx, chrome.Config{
		Attach:   attach,
		Headless: !headed,
		Width:    vw,
		Height:   vh,
		Timeout:  time.Duration(timeoutSec) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}
	doc, err := host.Open(ctx, url)
	if err != nil {
		host.Close()
		return nil, nil, err
	}
	return doc, func() { host.Close() }, nil
}

// StringParam reads a string MCP tool parameter with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// IntParam reads a numeric MCP tool parameter with a default. JSON numbers
// arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return def
}

// BoolParam reads a boolean MCP tool parameter with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
