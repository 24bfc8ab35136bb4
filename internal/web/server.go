// Package web serves the board over HTTP: a live read-only board page, the
// interactive board in a browser terminal, and the built-in docs.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"dropboard/internal/board"
	"dropboard/internal/docs"
	"dropboard/internal/store"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

type ServerConfig struct {
	Addr string
	// Dir is the board directory.
	Dir string
	// Exe is the dropboard binary started for terminal sessions. Empty means
	// the running executable.
	Exe string
	// Poll is how often the board file is checked for changes.
	Poll time.Duration
}

type Server struct {
	cfg   ServerConfig
	tmpl  *template.Template
	store store.Store
	watch *boardWatcher
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("web: missing addr")
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("web: missing board dir")
	}
	if cfg.Poll <= 0 {
		cfg.Poll = time.Second
	}
	tmpl, err := template.New("").ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s := store.Store{Dir: cfg.Dir}
	return &Server{
		cfg:   cfg,
		tmpl:  tmpl,
		store: s,
		watch: newBoardWatcher(s, cfg.Poll),
	}, nil
}

func (s *Server) Addr() string { return strings.TrimSpace(s.cfg.Addr) }

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.watch.loop(ctx)
	srv := &http.Server{Addr: s.Addr(), Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/board", http.StatusFound)
	})
	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("GET /board/events", s.handleBoardEvents)
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /docs/{topic}", s.handleDocs)
	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/terminal.js", s.handleStatic("static/terminal.js", "text/javascript; charset=utf-8"))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type boardVM struct {
	Dir   string
	Board board.View
}

func (s *Server) loadBoard(ctx context.Context) (boardVM, error) {
	b, err := s.store.Load(ctx)
	if err != nil {
		return boardVM{}, err
	}
	return boardVM{Dir: s.cfg.Dir, Board: b.Snapshot()}, nil
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	vm, err := s.loadBoard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeHTMLTemplate(w, "board.html", vm)
}

// handleBoardEvents re-renders the board body into the page each time the
// board file changes.
func (s *Server) handleBoardEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch, cancel := s.watch.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, err := s.renderBoardBody(sse.Context())
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#board"), datastar.WithMode(datastar.ElementPatchModeOuter))
		}
	}
}

func (s *Server) renderBoardBody(ctx context.Context) (string, error) {
	vm, err := s.loadBoard(ctx)
	if err != nil {
		return "", err
	}
	return s.renderTemplate("board_body", vm)
}

type docVM struct {
	Topic  string
	Title  string
	Doc    renderedDoc
	Topics []string
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	body, ok := docs.Get(topic)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeHTMLTemplate(w, "doc.html", docVM{
		Topic:  topic,
		Title:  docs.Title(topic),
		Doc:    renderDoc(body),
		Topics: docs.Topics(),
	})
}

type terminalVM struct {
	Dir string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	s.writeHTMLTemplate(w, "terminal.html", terminalVM{Dir: s.cfg.Dir})
}
