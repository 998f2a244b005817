package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// screen is the page a SessionModel is showing.
type screen int

const (
	screenTitle screen = iota
	screenGame
	screenScores
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	GameID    string // Registered game to play
	Player    string // Name stored with session results
	SkipTitle bool   // Go straight into the game
	Logger    *log.Logger
}

// SessionModel is the top-level model of one player: title, game and
// scoreboard. It owns the only tick chain and forwards ticks to whichever
// page is active, so switching pages never doubles the frame rate.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	opts     SessionOptions
	id       string
	logger   *log.Logger
	recorder *Recorder

	page   screen
	title  TitleModel
	game   *GameModel
	scores ScoreboardModel

	quitting bool
	err      error
}

// NewSessionModel creates a session for one player.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	logger = logger.With("session", id[:8])

	m := SessionModel{
		store:    store,
		config:   cfg,
		opts:     opts,
		id:       id,
		logger:   logger,
		recorder: NewRecorder(store, opts.Player, logger),
	}

	if opts.SkipTitle {
		m = m.startGame()
	} else {
		m = m.showTitle()
	}
	return m
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.id
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Init starts the tick chain.
func (m SessionModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update routes messages to the active page and handles page changes.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case TickMsg:
		cmds = append(cmds, tickCmd(m.config.TickRate))
	}

	var cmd tea.Cmd
	switch m.page {
	case screenTitle:
		m, cmd = m.updateTitle(msg)
	case screenGame:
		m, cmd = m.updateGame(msg)
	case screenScores:
		m, cmd = m.updateScores(msg)
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m SessionModel) updateTitle(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.title.Update(msg)
	m.title = next.(TitleModel)

	switch m.title.Choice() {
	case TitleChoiceStart:
		m = m.startGame()
	case TitleChoiceScoreboard:
		m = m.showScores()
	case TitleChoiceQuit:
		m.quitting = true
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		m.quitting = true
	case gm.BackToMenu():
		m.game = nil
		m = m.showTitle()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
	case m.scores.GoingBack():
		m = m.showTitle()
	}
	return m, cmd
}

// showTitle switches to a freshly animated title screen.
func (m SessionModel) showTitle() SessionModel {
	best := 0
	if m.store != nil {
		if hs, err := m.store.HighScore(m.opts.GameID); err == nil {
			best = hs
		}
	}
	m.title = NewTitleModel(m.config.ScreenW, m.config.ScreenH, m.config.TickRate, best)
	m.page = screenTitle
	return m
}

// showScores switches to the scoreboard.
func (m SessionModel) showScores() SessionModel {
	m.scores = NewScoreboardModel(m.store, m.opts.GameID, m.config.ScreenW, m.config.ScreenH)
	m.page = screenScores
	return m
}

// startGame creates a new game instance and starts its first session.
func (m SessionModel) startGame() SessionModel {
	game, err := registry.Create(m.opts.GameID)
	if err != nil {
		m.err = fmt.Errorf("tui: start game: %w", err)
		m.quitting = true
		return m
	}

	gm := NewGameModel(game, m.recorder, m.logger, m.config)
	gm.Init()
	m.game = &gm
	m.page = screenGame
	m.logger.Debug("game started", "game", game.ID())
	return m
}

// View renders the active page.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.page {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.title.View()
}

// Page names the active page, mainly for logs and tests.
func (m SessionModel) Page() string {
	switch m.page {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	default:
		return "title"
	}
}

// Run plays locally in the current terminal until the player quits.
func Run(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) error {
	model := NewSessionModel(store, cfg, opts)
	if err := model.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: run: %w", err)
	}
	if sm, ok := final.(SessionModel); ok && sm.Err() != nil {
		return sm.Err()
	}
	return nil
}
