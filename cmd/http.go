package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/chrome"
	"github.com/Aaron-Ben/Magentic-mini/internal/server"
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start an HTTP server exposing the page-inspection routes",
	Long: `Start an HTTP server with one browser-backed page slot. POST /page with
{"url": ...} to navigate, then read GET /page/rects, /page/elements,
/page/viewport, /page/focused, /page/metadata, /page/text, /page/markdown.

Examples:
  websurfer http --port 8090
  websurfer http --attach ws://127.0.0.1:9222/... --cache-ttl 0`,
	RunE: runHTTP,
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().Int("port", 8090, "HTTP port")
	httpCmd.Flags().Int("cache-ttl", 500, "Snapshot cache TTL in milliseconds (0 to disable)")
	httpCmd.Flags().String("attach", "", "DevTools websocket URL of a running Chrome")
	httpCmd.Flags().Bool("headed", false, "Launch Chrome with a visible window")
	httpCmd.Flags().Int("timeout", 30, "Navigation timeout in seconds")
}

func runHTTP(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	attach, _ := cmd.Flags().GetString("attach")
	headed, _ := cmd.Flags().GetBool("headed")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// One browser, one page slot: the opener closes the previous tab when
	// the server navigates away from it.
	var mu sync.Mutex
	var host *chrome.Host
	var last *chrome.Document

	open := func(url string) (dom.Document, error) {
		mu.Lock()
		defer mu.Unlock()
		if host == nil {
			h, err := chrome.Connect(ctx, chrome.Config{
				Attach:   attach,
				Headless: !headed,
				Timeout:  time.Duration(timeoutSec) * time.Second,
			})
			if err != nil {
				return nil, err
			}
			host = h
		}
		doc, err := host.Open(ctx, url)
		if err != nil {
			return nil, err
		}
		if last != nil {
			_ = last.Page().Close()
		}
		last = doc
		return doc, nil
	}
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if host != nil {
			_ = host.Close()
		}
	}()

	srv := server.New(open, time.Duration(cacheTTLMs)*time.Millisecond)
	fmt.Fprintf(cmd.OutOrStdout(), "listening on :%d\n", port)
	return srv.ListenAndServe(fmt.Sprintf(":%d", port))
}
