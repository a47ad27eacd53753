package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"kanban-cli/internal/app"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
)

func newTestServer(t *testing.T) (*Server, *app.Controller) {
	t.Helper()
	ctx := context.Background()
	kv, err := store.OpenSQLiteKV(ctx, store.SQLitePath(t.TempDir()))
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	st := store.New(kv, nil)
	t.Cleanup(func() { _ = st.Close() })
	ctrl := app.NewController(st, nil)
	if _, err := ctrl.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	srv, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Controller: ctrl})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, ctrl
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// columnHTML returns the markup of the column-div for status.
func columnHTML(t *testing.T, page, status string) string {
	t.Helper()
	marker := `<div class="column-div" data-status="` + status + `">`
	i := strings.Index(page, marker)
	if i < 0 {
		t.Fatalf("column %q not found in page", status)
	}
	rest := page[i+len(marker):]
	if j := strings.Index(rest, `<div class="column-div"`); j >= 0 {
		rest = rest[:j]
	} else if j := strings.Index(rest, "</section>"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/health", nil, nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok\n" {
		t.Fatalf("health: %d %q", rr.Code, rr.Body.String())
	}
}

func TestHome_RendersActiveBoard(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /: %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`id="header-board-name">Launch Career<`, `id="boards-nav-links-div"`, `class="board-btn active"`, `id="side-bar-div"`, `id="switch"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if !strings.Contains(columnHTML(t, body, "todo"), "Launch Epic Career") {
		t.Fatalf("expected seeded task in todo column")
	}
	if strings.Contains(body, `id="new-task-modal-window"`) {
		t.Fatalf("modal should be closed by default")
	}
}

func TestCreateTask_AppearsInColumn(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodPost, "/tasks", url.Values{
		"title":       {"Write web tests"},
		"description": {"cover the handlers"},
		"status":      {"doing"},
	}, nil)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("POST /tasks: %d location=%q", rr.Code, rr.Header().Get("Location"))
	}

	page := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	if !strings.Contains(columnHTML(t, page, "doing"), "Write web tests") {
		t.Fatalf("expected new task in doing column")
	}
	if strings.Contains(columnHTML(t, page, "todo"), "Write web tests") {
		t.Fatalf("new task leaked into todo column")
	}
}

func TestCreateTask_DatastarGetsPatch(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	rr := do(t, srv.Handler(), http.MethodPost, "/tasks", url.Values{
		"title":  {"Streamed card"},
		"status": {"todo"},
	}, map[string]string{"Datastar-Request": "true"})
	if rr.Code != http.StatusOK {
		t.Fatalf("datastar POST /tasks: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Fatalf("expected SSE response; got %q", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Streamed card") || !strings.Contains(body, "board-main") {
		t.Fatalf("expected board patch in stream; got %q", body)
	}
}

func TestEditTask_MovesColumn(t *testing.T) {
	t.Parallel()
	srv, ctrl := newTestServer(t)
	h := srv.Handler()
	st, err := ctrl.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	todo, _ := st.View.Column("todo")
	task := todo.Tasks[0]

	modal := do(t, h, http.MethodGet, "/?task="+itoa(task.ID), nil, nil).Body.String()
	if !strings.Contains(modal, `id="edit-task-modal-window"`) || !strings.Contains(modal, `id="edit-task-title-input"`) {
		t.Fatalf("expected edit modal for task %d", task.ID)
	}

	rr := do(t, h, http.MethodPost, "/tasks/"+itoa(task.ID)+"/edit", url.Values{
		"title":       {task.Title},
		"description": {task.Description},
		"status":      {"done"},
	}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("edit: %d %s", rr.Code, rr.Body.String())
	}
	page := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	if !strings.Contains(columnHTML(t, page, "done"), `data-task-id="`+itoa(task.ID)+`"`) {
		t.Fatalf("expected task %d in done column", task.ID)
	}
}

func TestEditTask_OffColumnStatusSurvivesSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv, ctrl := newTestServer(t)
	h := srv.Handler()
	_, task, err := ctrl.AddTask(ctx, mutate.NewTask{Title: "Waiting on legal", Status: "blocked"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	modal := do(t, h, http.MethodGet, "/?task="+itoa(task.ID), nil, nil).Body.String()
	if !strings.Contains(modal, `<option value="blocked" selected>BLOCKED</option>`) {
		t.Fatalf("expected the stored status selected in the edit modal:\n%s", modal)
	}
	if strings.Contains(modal, `<option value="todo" selected>`) {
		t.Fatalf("expected todo not selected for a blocked task")
	}

	rr := do(t, h, http.MethodPost, "/tasks/"+itoa(task.ID)+"/edit", url.Values{
		"title":       {"Waiting on legal review"},
		"description": {""},
		"status":      {"blocked"},
	}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("edit: %d %s", rr.Code, rr.Body.String())
	}
	st, err := ctrl.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	for _, got := range st.Tasks {
		if got.ID != task.ID {
			continue
		}
		if got.Status != "blocked" || got.Title != "Waiting on legal review" {
			t.Fatalf("expected title changed and status kept; got %#v", got)
		}
		return
	}
	t.Fatalf("task %d missing after edit", task.ID)
}

func TestEditTask_UnknownIDIsNotFound(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	h := srv.Handler()
	rr := do(t, h, http.MethodPost, "/tasks/999999/edit", url.Values{"title": {"x"}, "status": {"todo"}}, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404; got %d", rr.Code)
	}
	rr = do(t, h, http.MethodPost, "/tasks/abc/edit", url.Values{"title": {"x"}}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id; got %d", rr.Code)
	}
	rr = do(t, h, http.MethodGet, "/?task=999999", nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 page for unknown task; got %d", rr.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	srv, ctrl := newTestServer(t)
	h := srv.Handler()
	st, _ := ctrl.Refresh(context.Background())
	id := st.View.Columns[0].Tasks[0].ID

	rr := do(t, h, http.MethodPost, "/tasks/"+itoa(id)+"/delete", url.Values{}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("delete: %d", rr.Code)
	}
	after, _ := ctrl.Refresh(context.Background())
	if _, ok := after.Task(id); ok {
		t.Fatalf("task %d still present", id)
	}
}

func TestSwitchBoard(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	h := srv.Handler()
	rr := do(t, h, http.MethodPost, "/boards/active", url.Values{"board": {"Roadmap"}}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("switch: %d", rr.Code)
	}
	page := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	if !strings.Contains(page, `id="header-board-name">Roadmap<`) {
		t.Fatalf("expected Roadmap header")
	}
	if rr := do(t, h, http.MethodPost, "/boards/active", url.Values{"board": {"Nope"}}, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown board; got %d", rr.Code)
	}
}

func TestPrefs_ToggleSidebarAndTheme(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	h := srv.Handler()

	do(t, h, http.MethodPost, "/prefs/sidebar", url.Values{"show": {"false"}}, nil)
	do(t, h, http.MethodPost, "/prefs/theme", url.Values{}, nil)
	page := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	if strings.Contains(page, `id="side-bar-div"`) || !strings.Contains(page, `id="show-side-bar-btn"`) {
		t.Fatalf("expected hidden sidebar with show button")
	}
	if !strings.Contains(page, `<main id="board-main" class="light-theme">`) {
		t.Fatalf("expected light theme class on board root")
	}

	if rr := do(t, h, http.MethodPost, "/prefs/theme", url.Values{"light": {"maybe"}}, nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad bool; got %d", rr.Code)
	}
}

func TestNewTaskModal(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	page := do(t, srv.Handler(), http.MethodGet, "/?new=1", nil, nil).Body.String()
	for _, id := range []string{"new-task-modal-window", "title-input", "desc-input", "select-status", "cancel-add-task-btn", "filterDiv"} {
		if !strings.Contains(page, `id="`+id+`"`) {
			t.Fatalf("expected #%s in new task modal", id)
		}
	}
}

func TestRenderMarkdownHTML_DropsRawHTML(t *testing.T) {
	t.Parallel()
	out := string(renderMarkdownHTML("**bold** <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected bold markup; got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw html leaked: %q", out)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestCreateTask_StatusMatchesLabelAndRejectsEmpty(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	h := srv.Handler()

	if rr := do(t, h, http.MethodPost, "/tasks", url.Values{"title": {"Label status"}, "status": {"DONE"}}, nil); rr.Code != http.StatusSeeOther {
		t.Fatalf("POST /tasks: %d", rr.Code)
	}
	page := do(t, h, http.MethodGet, "/", nil, nil).Body.String()
	if !strings.Contains(columnHTML(t, page, "done"), "Label status") {
		t.Fatalf("expected label status to land in done column")
	}

	if rr := do(t, h, http.MethodPost, "/tasks", url.Values{"title": {"No status"}}, nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty status; got %d", rr.Code)
	}
}
