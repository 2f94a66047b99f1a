package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestView_Rendering(t *testing.T) {
	m := NewModel(Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	if !m.ready {
		t.Fatal("model not ready after WindowSizeMsg")
	}

	// 1. Empty input
	output := m.View()
	if output == "" {
		t.Error("View returned empty string")
	}
	if !strings.Contains(output, "Password & Entropy Lab") {
		t.Error("View missing title")
	}

	// 2. With an assessment
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(secret)})
	m = updated.(Model)
	output = m.View()
	if strings.Contains(output, secret) {
		t.Error("View leaks the password")
	}
	if !strings.Contains(output, "Verdict") {
		t.Error("View missing summary")
	}

	// 3. JSON pane
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	output = m.View()
	if output == "" {
		t.Error("View (JSON) returned empty string")
	}
	if strings.Contains(output, secret) {
		t.Error("View (JSON) leaks the password")
	}

	// 4. Help
	m.showHelp = true
	if output = m.View(); output == "" {
		t.Error("View (Help) returned empty string")
	}
	m.showHelp = false

	// 5. Quitting
	m.quitting = true
	if output = m.View(); output != "" {
		t.Errorf("View (quitting) = %q, want empty", output)
	}
}

func TestView_SmallTerminal(t *testing.T) {
	m := NewModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	if m.View() == "" {
		t.Error("View returned empty string on a tiny terminal")
	}
}
