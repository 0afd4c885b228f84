package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/descent/internal/level"
	"github.com/vinser/descent/internal/state"
)

// whole draws every cell of l.
func whole(l *level.Level, shown int) string {
	return strings.Join(Window(l, shown, 0, 0, l.Map.Width(), l.Map.Height()), "\n")
}

func TestWindow_Whole(t *testing.T) {
	for _, size := range []string{state.SpriteSmall, state.SpriteMedium, state.SpriteLarge} {
		t.Run(size, func(t *testing.T) {
			cfg := level.Config{Width: 4, Height: 5, SpriteSize: size}
			l, err := level.New(1, 3, cfg)
			if err != nil {
				t.Fatal(err)
			}
			out := whole(l, len(l.Route))

			wantW, wantH := GridSize(cfg)
			if got := lipgloss.Height(out); got != wantH {
				t.Errorf("height = %d, want %d", got, wantH)
			}
			if got := lipgloss.Width(out); got != wantW {
				t.Errorf("width = %d, want %d", got, wantW)
			}
			if !strings.Contains(out, "▼") || !strings.Contains(out, "◆") {
				t.Errorf("uncovered grid lacks entrance or exit:\n%s", out)
			}
		})
	}
}

func TestWindow_Covered(t *testing.T) {
	l, err := level.New(0, 8, level.Config{Width: 3, Height: 3, SpriteSize: state.SpriteSmall})
	if err != nil {
		t.Fatal(err)
	}
	out := whole(l, 1)
	if !strings.Contains(out, "▼") {
		t.Error("entrance should always be visible")
	}
	if strings.Contains(out, "◆") {
		t.Error("exit should be covered")
	}
}

func TestPage(t *testing.T) {
	out := Page("Title", "body", "footer", 10, 8, 0, 0)
	if got := lipgloss.Height(out); got != 8 {
		t.Errorf("page height = %d, want 8", got)
	}
	for _, want := range []string{"Title", "body", "footer"} {
		if !strings.Contains(out, want) {
			t.Errorf("page lacks %q", want)
		}
	}
}

func TestWindow(t *testing.T) {
	cfg := level.Config{Width: 6, Height: 8, SpriteSize: state.SpriteLarge}
	l, err := level.New(4, 21, cfg)
	if err != nil {
		t.Fatal(err)
	}
	lines := Window(l, len(l.Route), 2, 3, 3, 2)
	if len(lines) != 2*3 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 3*5 {
			t.Errorf("line %d width = %d, want 15", i, w)
		}
	}

	clipped := Window(l, 0, 4, 6, 10, 10)
	if len(clipped) != 2*3 {
		t.Errorf("clipped window has %d lines, want 6", len(clipped))
	}
	if w := lipgloss.Width(clipped[0]); w != 2*5 {
		t.Errorf("clipped width = %d, want 10", w)
	}
}
