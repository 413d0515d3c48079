package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom/chrome"
	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/version"
)

// mcpServer wraps the MCP server with the browser host and snapshot cache.
// It holds one current page at a time; visit_page replaces it.
type mcpServer struct {
	cfg   MCPConfig
	cache *snapshotCache
	mcp   *mcpserver.MCPServer

	mu   sync.Mutex
	host *chrome.Host
	doc  *chrome.Document
	ins  *inspect.Inspector
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Attach    string
	Headed    bool
	Timeout   time.Duration
}

// newMCPServer creates and configures an MCP server with the page tools.
func newMCPServer(cfg MCPConfig) *mcpServer {
	s := &mcpServer{
		cfg:   cfg,
		cache: newSnapshotCache(cfg.CacheTTL),
	}

	s.mcp = mcpserver.NewMCPServer(
		"websurfer",
		version.Version,
	)

	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve() error {
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("visit_page",
			mcp.WithDescription("Navigate the browser to a URL. All other tools operate on the page visited last."),
			mcp.WithString("url", mcp.Description("URL to open"), mcp.Required()),
		),
		s.handleVisitPage,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_interactive_rects",
			mcp.WithDescription("Label the page's interactive elements and return them as a map keyed by identifier: tag class, role, accessible name, scroll flag, visible rectangles."),
		),
		s.handleInteractiveRects,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_interactive_elements",
			mcp.WithDescription("Label the page's interactive elements and return them as an identifier-ordered list."),
		),
		s.handleInteractiveElements,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_visual_viewport",
			mcp.WithDescription("Return the visual viewport: size, offsets, page scroll position, scale, and full document extents."),
		),
		s.handleVisualViewport,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_focused_element_id",
			mcp.WithDescription("Return the identifier of the labeled element owning keyboard focus, or null."),
		),
		s.handleFocusedElementID,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_page_metadata",
			mcp.WithDescription("Extract JSON-LD blocks, meta tags, and microdata items from the page."),
		),
		s.handlePageMetadata,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_visible_text",
			mcp.WithDescription("Return the text currently visible in the viewport, with block-level line breaks."),
		),
		s.handleVisibleText,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_page_markdown",
			mcp.WithDescription("Render the page content as simplified markdown."),
			mcp.WithNumber("max_chars", mcp.Description("Truncate to this many characters (0 = unlimited)")),
		),
		s.handlePageMarkdown,
	)
}

// ensureHost lazily launches or attaches the browser.
func (s *mcpServer) ensureHost(ctx context.Context) error {
	if s.host != nil {
		return nil
	}
	host, err := chrome.Connect(ctx, chrome.Config{
		Attach:   s.cfg.Attach,
		Headless: !s.cfg.Headed,
		Timeout:  s.cfg.Timeout,
	})
	if err != nil {
		return err
	}
	s.host = host
	return nil
}

func (s *mcpServer) handleVisitPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	url := StringParam(params, "url", "")
	if url == "" {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHost(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.host.Open(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.doc != nil {
		_ = s.doc.Page().Close()
	}
	s.doc = doc
	// Fresh counter: identifiers are scoped to one page lifetime.
	s.ins = inspect.New(doc)
	s.cache.invalidateAll()

	return mcp.NewToolResultText(fmt.Sprintf("url: %s\ntitle: %s\n", doc.URL(), doc.Title())), nil
}

// snapshot runs build on the current page, serving and filling the TTL
// cache. Callers hold no locks.
func (s *mcpServer) snapshot(op string, build func(ins *inspect.Inspector) (interface{}, error)) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return mcp.NewToolResultError("no page loaded — call visit_page first"), nil
	}

	url := s.doc.URL()
	if text, ok := s.cache.get(op, url); ok {
		return mcp.NewToolResultText(text), nil
	}

	v, err := build(s.ins)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := string(b)
	s.cache.put(op, url, text)
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) handleInteractiveRects(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshot("rects", func(ins *inspect.Inspector) (interface{}, error) {
		return ins.InteractiveRects(), nil
	})
}

func (s *mcpServer) handleInteractiveElements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshot("elements", func(ins *inspect.Inspector) (interface{}, error) {
		return ins.InteractiveElements(), nil
	})
}

func (s *mcpServer) handleVisualViewport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshot("viewport", func(ins *inspect.Inspector) (interface{}, error) {
		return ins.VisualViewport(), nil
	})
}

func (s *mcpServer) handleFocusedElementID(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return mcp.NewToolResultError("no page loaded — call visit_page first"), nil
	}

	// Focus is too volatile to cache, and labeling must be current.
	s.ins.InteractiveRects()
	if id, ok := s.ins.FocusedElementID(); ok {
		return mcp.NewToolResultText(fmt.Sprintf("id: %q\n", id)), nil
	}
	return mcp.NewToolResultText("id: null\n"), nil
}

func (s *mcpServer) handlePageMetadata(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshot("metadata", func(ins *inspect.Inspector) (interface{}, error) {
		return ins.PageMetadata(), nil
	})
}

func (s *mcpServer) handleVisibleText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshot("text", func(ins *inspect.Inspector) (interface{}, error) {
		return ins.VisibleText(), nil
	})
}

func (s *mcpServer) handlePageMarkdown(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxChars := IntParam(request.GetArguments(), "max_chars", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return mcp.NewToolResultError("no page loaded — call visit_page first"), nil
	}

	url := s.doc.URL()
	md, ok := s.cache.get("markdown", url)
	if !ok {
		md = s.ins.PageMarkdown()
		s.cache.put("markdown", url, md)
	}
	return mcp.NewToolResultText(truncateRunes(md, maxChars)), nil
}
