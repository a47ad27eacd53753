package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	err error
}

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openDescriptionEditor suspends the TUI and edits the form's description in
// $VISUAL/$EDITOR through a temp markdown file.
func (m *appModel) openDescriptionEditor() (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "kanban-task-*.md")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	before := m.form.desc.Value()
	if _, err := f.WriteString(before); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.editorPath = path
	m.editorBefore = before

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyDescriptionEditor(msg externalEditorDoneMsg) {
	path, before := m.editorPath, m.editorBefore
	m.editorPath, m.editorBefore = "", ""
	if strings.TrimSpace(path) == "" {
		return
	}
	defer func() { _ = os.Remove(path) }()

	if msg.err != nil {
		m.fail(fmt.Errorf("editor: %w", msg.err))
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		m.fail(fmt.Errorf("editor: %w", err))
		return
	}
	// Editors usually append a trailing newline.
	after := strings.TrimRight(string(b), "\n")
	if m.modal != modalAdd && m.modal != modalEdit {
		return
	}
	m.form.desc.SetValue(after)
	if after == strings.TrimRight(before, "\n") {
		m.flash("No changes from " + externalEditorName())
		return
	}
	m.flash("Description updated from " + externalEditorName() + " (ctrl+s to save)")
}
