// Package server is an HTTP façade over the page snapshots: one page held
// at a time, navigated with POST /page, read through GET /page/* routes.
// Results are JSON and pass through a TTL snapshot cache.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

// Opener turns a URL into a live document. The CLI wires a Chrome host
// here; tests wire a memdom parser.
type Opener func(url string) (dom.Document, error)

// Server serves the snapshot routes for the page visited last.
type Server struct {
	open  Opener
	cache *SnapshotCache

	mu  sync.Mutex
	doc dom.Document
	ins *inspect.Inspector
}

// New creates a server. A cacheTTL of 0 disables snapshot caching.
func New(open Opener, cacheTTL time.Duration) *Server {
	return &Server{
		open:  open,
		cache: NewSnapshotCache(cacheTTL),
	}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /page", s.handleVisit)
	mux.HandleFunc("GET /page/rects", s.handleRects)
	mux.HandleFunc("GET /page/elements", s.handleElements)
	mux.HandleFunc("GET /page/viewport", s.handleViewport)
	mux.HandleFunc("GET /page/focused", s.handleFocused)
	mux.HandleFunc("GET /page/metadata", s.handleMetadata)
	mux.HandleFunc("GET /page/text", s.handleText)
	mux.HandleFunc("GET /page/markdown", s.handleMarkdown)
	return mux
}

// ListenAndServe serves the routes on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

type visitRequest struct {
	URL string `json:"url"`
}

type visitResponse struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	TS    int64  `json:"ts"`
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	var req visitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("url is required"))
		return
	}

	doc, err := s.open(req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	s.mu.Lock()
	s.doc = doc
	// Fresh counter: identifiers are scoped to one page lifetime.
	s.ins = inspect.New(doc)
	s.cache.InvalidateAll()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, visitResponse{
		URL:   doc.URL(),
		Title: doc.Title(),
		TS:    time.Now().Unix(),
	})
}

// serve runs build on the current page, serving and filling the TTL cache.
func (s *Server) serve(w http.ResponseWriter, op string, build func(ins *inspect.Inspector, doc dom.Document) interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no page loaded — POST /page first"))
		return
	}

	url := s.doc.URL()
	if payload, ok := s.cache.Get(op, url); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	v := build(s.ins, s.doc)
	payload, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	payload = append(payload, '\n')
	s.cache.Put(op, url, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleRects(w http.ResponseWriter, r *http.Request) {
	s.serve(w, "rects", func(ins *inspect.Inspector, doc dom.Document) interface{} {
		return output.RectsResult{
			URL:   doc.URL(),
			Title: doc.Title(),
			TS:    time.Now().Unix(),
			Rects: ins.InteractiveRects(),
		}
	})
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	s.serve(w, "elements", func(ins *inspect.Inspector, doc dom.Document) interface{} {
		return output.ElementsResult{
			URL:      doc.URL(),
			Title:    doc.Title(),
			TS:       time.Now().Unix(),
			Elements: ins.InteractiveElements(),
		}
	})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	s.serve(w, "viewport", func(ins *inspect.Inspector, doc dom.Document) interface{} {
		return output.ViewportResult{
			URL:      doc.URL(),
			TS:       time.Now().Unix(),
			Viewport: ins.VisualViewport(),
		}
	})
}

// handleFocused bypasses the cache: focus is too volatile to reuse.
func (s *Server) handleFocused(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no page loaded — POST /page first"))
		return
	}

	// Labeling must have happened for focus to resolve to an identifier.
	s.ins.InteractiveRects()

	result := output.FocusedResult{
		URL: s.doc.URL(),
		TS:  time.Now().Unix(),
	}
	if id, ok := s.ins.FocusedElementID(); ok {
		result.ID = &id
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	s.serve(w, "metadata", func(ins *inspect.Inspector, doc dom.Document) interface{} {
		return output.MetadataResult{
			URL:      doc.URL(),
			TS:       time.Now().Unix(),
			Metadata: ins.PageMetadata(),
		}
	})
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	s.serve(w, "text", func(ins *inspect.Inspector, doc dom.Document) interface{} {
		return output.TextResult{
			URL:  doc.URL(),
			TS:   time.Now().Unix(),
			Text: ins.VisibleText(),
		}
	})
}

// handleMarkdown honors ?max_chars=N. The cache holds the full rendering;
// truncation applies on the way out.
func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	maxChars := 0
	if q := r.URL.Query().Get("max_chars"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid max_chars %q", q))
			return
		}
		maxChars = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no page loaded — POST /page first"))
		return
	}

	url := s.doc.URL()
	var md string
	if payload, ok := s.cache.Get("markdown", url); ok {
		md = string(payload)
	} else {
		md = s.ins.PageMarkdown()
		s.cache.Put("markdown", url, []byte(md))
	}
	if maxChars > 0 {
		runes := []rune(md)
		if len(runes) > maxChars {
			md = string(runes[:maxChars])
		}
	}

	writeJSON(w, http.StatusOK, output.MarkdownResult{
		URL:      url,
		TS:       time.Now().Unix(),
		Markdown: md,
	})
}
