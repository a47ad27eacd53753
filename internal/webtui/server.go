// Package webtui serves the terminal UI to a browser: an xterm.js page whose
// WebSocket is bridged to a kanban TUI child process running in a PTY.
package webtui

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

const (
	DefaultXtermURL    = "https://cdn.jsdelivr.net/npm/@xterm/xterm@5.5.0"
	DefaultXtermFitURL = "https://cdn.jsdelivr.net/npm/@xterm/addon-fit@0.10.0"
)

type ServerConfig struct {
	Addr string
	// Dir, Store and Config are forwarded to the child as --dir, --store
	// and --config.
	Dir    string
	Store  string
	Config string
	// Command replaces the child argv. Empty runs this executable with no
	// subcommand, which starts the TUI.
	Command []string

	XtermURL    string
	XtermFitURL string
	Log         logrus.FieldLogger
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  logrus.FieldLogger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if cfg.XtermURL == "" {
		cfg.XtermURL = DefaultXtermURL
	}
	if cfg.XtermFitURL == "" {
		cfg.XtermFitURL = DefaultXtermFitURL
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl, log: log}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/terminal", http.StatusFound)
	})
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok\n")
	})

	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))

	return mux
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

type terminalVM struct {
	Dir         string
	Store       string
	XtermURL    string
	XtermFitURL string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	vm := terminalVM{
		Dir:         strings.TrimSpace(s.cfg.Dir),
		Store:       strings.TrimSpace(s.cfg.Store),
		XtermURL:    s.cfg.XtermURL,
		XtermFitURL: s.cfg.XtermFitURL,
	}
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, "terminal.html", vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, b.String())
}
