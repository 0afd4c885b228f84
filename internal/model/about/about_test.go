package about

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestClose(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("a")},
	} {
		m := New(60, 20)
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s should close the page", key)
		}
		if _, ok := cmd().(CloseAboutMsg); !ok {
			t.Errorf("%s: expected CloseAboutMsg", key)
		}
	}

	m := New(60, 20)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		if _, ok := cmd().(CloseAboutMsg); ok {
			t.Error("other keys should not close the page")
		}
	}
}

func TestSetSize(t *testing.T) {
	tests := []struct {
		name       string
		termHeight int
		wantHeight int
		wantView   int
	}{
		{"roomy terminal", 60, 30, 30},
		{"short terminal", 10, 10, 10 - chrome},
		{"tiny terminal", 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(60, 30)
			m.SetSize(80, tt.termHeight)
			if m.height != tt.wantHeight || m.viewport.Height != tt.wantView {
				t.Errorf("height %d, viewport %d, want %d and %d",
					m.height, m.viewport.Height, tt.wantHeight, tt.wantView)
			}
		})
	}
}

func TestView(t *testing.T) {
	m := New(60, 20)
	m.SetSize(80, 40)
	if out := m.View(); !strings.Contains(out, "About") || !strings.Contains(out, "esc back") {
		t.Errorf("view lacks the title or the footer:\n%s", out)
	}
}
