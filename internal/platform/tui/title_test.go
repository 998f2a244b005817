package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// settle runs the title animation until the springs come to rest.
func settle(t *testing.T, m TitleModel) TitleModel {
	t.Helper()
	for range 600 {
		m = m.advance()
	}
	if !m.Settled() {
		t.Fatalf("title did not settle: titleY=%.2f buttonY=%.2f", m.titleY, m.buttonY)
	}
	return m
}

func TestTitleStartsOffScreen(t *testing.T) {
	m := NewTitleModel(80, 24, 60, 0)

	if m.titleY >= 0 {
		t.Errorf("title should start above the screen, got %.2f", m.titleY)
	}
	if m.buttonY < 24 {
		t.Errorf("button should start below the screen, got %.2f", m.buttonY)
	}
	if m.Settled() {
		t.Error("fresh title should not be settled")
	}
}

func TestTitleSettlesAtRest(t *testing.T) {
	m := settle(t, NewTitleModel(80, 24, 60, 0))

	if got := int(m.titleY + 0.5); got != m.titleRest() {
		t.Errorf("title row = %d, want %d", got, m.titleRest())
	}
	if m.buttonRow() != m.buttonRest() {
		t.Errorf("button row = %d, want %d", m.buttonRow(), m.buttonRest())
	}
	if m.buttonRest() != 24/3+4 {
		t.Errorf("buttonRest = %d, want %d", m.buttonRest(), 24/3+4)
	}
}

func TestTitleBallStaysOnScreen(t *testing.T) {
	m := NewTitleModel(20, 10, 60, 0)
	for range 1000 {
		m = m.advance()
		if m.ballX < 0 || m.ballX >= 20 || m.ballY < 0 || m.ballY >= 10 {
			t.Fatalf("ball left the screen at (%d,%d)", m.ballX, m.ballY)
		}
	}
}

func TestTitleChoices(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
		want TitleChoice
	}{
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, TitleChoiceStart},
		{"tab opens scores", tea.KeyMsg{Type: tea.KeyTab}, TitleChoiceScoreboard},
		{"q quits", runeKey('q'), TitleChoiceQuit},
		{"other key ignored", runeKey('x'), TitleChoiceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTitleModel(80, 24, 60, 0)
			next, _ := m.Update(tt.msg)
			if got := next.(TitleModel).Choice(); got != tt.want {
				t.Errorf("Choice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitleClickOnButton(t *testing.T) {
	m := settle(t, NewTitleModel(80, 24, 60, 0))
	row := m.buttonRow()
	left := (80 - len(startButton)) / 2

	miss, _ := m.Update(tea.MouseMsg{X: left + 1, Y: row - 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if miss.(TitleModel).Choice() != TitleChoiceNone {
		t.Error("click above the button should not start")
	}

	hit, _ := m.Update(tea.MouseMsg{X: left + 1, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if hit.(TitleModel).Choice() != TitleChoiceStart {
		t.Error("click on the button should start")
	}
}

func TestTitleRender(t *testing.T) {
	m := settle(t, NewTitleModel(80, 24, 60, 1234))
	screen := core.NewScreen(80, 24)
	m.Render(screen)

	out := screen.String()
	for _, want := range []string{"B R E A K O U T", startButton, "Best: 1234"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Letters take the brick colors
	row := m.titleRest()
	x := (80 - len(titleText)) / 2
	if c := screen.GetCell(x, row).Color; c != core.ColorRed.Bright() {
		t.Errorf("first letter color = %v, want %v", c, core.ColorRed.Bright())
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q, want unchanged", got)
	}
}
