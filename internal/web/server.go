// Package web serves the board as server-rendered HTML. Forms work without
// JavaScript; with Datastar loaded, mutations answer with an SSE patch of
// #board-main and every open page re-renders from /events.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"kanban-cli/internal/app"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/statusutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

// DefaultDatastarURL is the client bundle matching datastar-go v1.
const DefaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

const boardMainSelector = "#board-main"

type ServerConfig struct {
	Addr        string
	Controller  *app.Controller
	Log         logrus.FieldLogger
	DatastarURL string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  logrus.FieldLogger
	hub  *boardHub

	// mu serialises read-modify-write cycles between handlers of this process.
	mu sync.Mutex
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Controller == nil {
		return nil, errors.New("web: controller is nil")
	}
	if cfg.DatastarURL == "" {
		cfg.DatastarURL = DefaultDatastarURL
	}
	log := cfg.Log
	if log == nil {
		log = cfg.Controller.Log
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"markdown": renderMarkdownHTML,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl, log: log, hub: newBoardHub()}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAsset("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleAsset("static/app.js", "application/javascript; charset=utf-8"))
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("POST /tasks", s.handleTaskCreate)
	mux.HandleFunc("POST /tasks/{id}/edit", s.handleTaskEdit)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleTaskDelete)
	mux.HandleFunc("POST /boards/active", s.handleBoardSwitch)
	mux.HandleFunc("POST /prefs/sidebar", s.handleSidebarToggle)
	mux.HandleFunc("POST /prefs/theme", s.handleThemeToggle)
	return s.withRequestLog(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"route":      r.URL.Path,
			"status":     rec.status,
			"datastar":   isDatastar(r),
			"total_ms":   float64(time.Since(start)) / float64(time.Millisecond),
		}).Debug("web.request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(name)
		if err != nil || len(b) == 0 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, status int, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, html)
}

func isDatastar(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Datastar-Request")), "true")
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	st, err := s.cfg.Controller.Refresh(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	vm := newPageVM(st, s.cfg.DatastarURL)
	vm.ShowNew = r.URL.Query().Get("new") != ""
	status := http.StatusOK
	if raw := strings.TrimSpace(r.URL.Query().Get("task")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid task id", http.StatusBadRequest)
			return
		}
		t, ok := st.Task(id)
		if ok {
			vm.Edit = taskVMFrom(t)
		} else {
			vm.Error = fmt.Sprintf("task not found: %d", id)
			status = http.StatusNotFound
		}
	}
	if msg := strings.TrimSpace(r.URL.Query().Get("err")); msg != "" {
		vm.Error = msg
	}
	s.writeHTMLTemplate(w, status, "page", vm)
}

// handleEvents keeps a Datastar stream open and re-renders #board-main each
// time a mutation lands in this server.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	ch, cancel := s.hub.subscribe()
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
			html, err := s.renderBoardMain(sse.Context())
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector(boardMainSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
		}
	}
}

func (s *Server) renderBoardMain(ctx context.Context) (string, error) {
	st, err := s.cfg.Controller.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return s.renderTemplate("board_main", newPageVM(st, s.cfg.DatastarURL))
}

// respond finishes a successful mutation: an SSE patch for Datastar, a 303
// back to the board otherwise.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, st app.State) {
	s.hub.broadcast()
	if !isDatastar(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	html, err := s.renderTemplate("board_main", newPageVM(st, s.cfg.DatastarURL))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(html, datastar.WithSelector(boardMainSelector), datastar.WithMode(datastar.ElementPatchModeOuter))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ub app.UnknownBoardError
	switch {
	case errors.Is(err, mutate.ErrNotFound), errors.As(err, &ub):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.log.WithError(err).WithField("route", r.URL.Path).Error("web.request.failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func taskIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %q", raw)
	}
	return id, nil
}

// formStatus reads the status field, matching column ids and labels.
func (s *Server) formStatus(r *http.Request) (string, error) {
	return statusutil.NormalizeStatus(s.cfg.Controller.Columns, r.Form.Get("status"))
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := s.formStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in := mutate.NewTask{
		Title:       r.Form.Get("title"),
		Description: r.Form.Get("description"),
		Status:      status,
	}
	s.mu.Lock()
	st, _, err := s.cfg.Controller.AddTask(r.Context(), in)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, st)
}

func (s *Server) handleTaskEdit(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := s.formStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := mutate.Edit{
		Title:       r.Form.Get("title"),
		Description: r.Form.Get("description"),
		Status:      status,
	}
	s.mu.Lock()
	st, err := s.cfg.Controller.SaveTaskChanges(r.Context(), id, e)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, st)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	st, _, err := s.cfg.Controller.DeleteTask(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, st)
}

func (s *Server) handleBoardSwitch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	st, err := s.cfg.Controller.SwitchBoard(r.Context(), r.Form.Get("board"))
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, st)
}

// formBool reads a boolean form field. A missing field yields toggle(current).
func formBool(r *http.Request, name string, current bool) (bool, error) {
	raw := strings.TrimSpace(r.Form.Get(name))
	if raw == "" {
		return !current, nil
	}
	return strconv.ParseBool(raw)
}

func (s *Server) handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	s.togglePref(w, r, "show", func(st app.State) bool { return st.ShowSideBar }, s.cfg.Controller.ToggleSidebar)
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	s.togglePref(w, r, "light", func(st app.State) bool { return st.LightTheme }, s.cfg.Controller.ToggleTheme)
}

func (s *Server) togglePref(w http.ResponseWriter, r *http.Request, field string, current func(app.State) bool, set func(context.Context, bool) (app.State, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.cfg.Controller.Refresh(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v, err := formBool(r, field, current(cur))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid %s: %v", field, err), http.StatusBadRequest)
		return
	}
	st, err := set(r.Context(), v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, r, st)
}

// boardHub fans a "board changed" signal out to every open /events stream.
type boardHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newBoardHub() *boardHub {
	return &boardHub{subs: map[chan struct{}]struct{}{}}
}

func (h *boardHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *boardHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}
