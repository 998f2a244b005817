package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	_ "github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

// send applies msg and returns the updated session.
func send(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionStartsOnTitle(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout"})
	if m.Page() != "title" {
		t.Errorf("Page() = %q, want title", m.Page())
	}
	if m.ID() == "" {
		t.Error("session should have an ID")
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick chain")
	}
}

func TestSessionSkipTitle(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout", SkipTitle: true})
	if m.Page() != "game" {
		t.Errorf("Page() = %q, want game", m.Page())
	}
	if m.View() == "" {
		t.Error("game view should not be empty")
	}
}

func TestSessionUnknownGame(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "pinball", SkipTitle: true})
	if m.Err() == nil {
		t.Error("unknown game should set Err()")
	}
}

func TestSessionTitleToGameAndBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Page() != "game" {
		t.Fatalf("Page() = %q after Enter, want game", m.Page())
	}

	// Back is only honored while paused or after the session ended
	m, _ = send(t, m, runeKey('b'))
	if m.Page() != "game" {
		t.Fatalf("Back while running left the game")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg{})
	if !m.game.State().Paused {
		t.Fatal("game should be paused")
	}

	m, _ = send(t, m, runeKey('b'))
	if m.Page() != "title" {
		t.Errorf("Page() = %q after Back, want title", m.Page())
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, testConfig(), SessionOptions{GameID: "breakout"})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Page() != "scores" {
		t.Fatalf("Page() = %q after Tab, want scores", m.Page())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Page() != "title" {
		t.Errorf("Page() = %q after Esc, want title", m.Page())
	}
}

func TestSessionTickReschedules(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout"})

	_, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	_, cmd = send(t, m, runeKey('x'))
	if cmd != nil {
		t.Error("an ignored key should not schedule anything")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout"})

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionResize(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: "breakout", SkipTitle: true})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.config.ScreenW != 100 || m.config.ScreenH != 30 {
		t.Errorf("config = %dx%d, want 100x30", m.config.ScreenW, m.config.ScreenH)
	}
	if m.game.State().GameOver {
		t.Error("resize should keep the session running")
	}
}
