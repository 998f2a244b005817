package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// TitleChoice is what the player picked on the title screen.
type TitleChoice int

const (
	TitleChoiceNone TitleChoice = iota
	TitleChoiceStart
	TitleChoiceScoreboard
	TitleChoiceQuit
)

const (
	titleText   = "B R E A K O U T"
	startButton = "[ Start ]"
	titleHint   = "Enter/Click: Start  |  Tab: Scores  |  Q: Quit"

	// Spring tuning: quick, with a little overshoot.
	springFrequency = 6.0
	springDamping   = 0.45

	// The decorative ball moves one cell every ballEvery frames.
	ballEvery = 3
)

// titleColors cycles the letters through the brick colors.
var titleColors = []core.Color{
	core.ColorRed,
	core.ColorBlue,
	core.ColorGreen,
	core.ColorMagenta,
	core.ColorSilver,
	core.ColorYellow,
}

// TitleModel is the animated title screen: the title slides down from
// above, the Start button rises from below and a ball bounces around them.
type TitleModel struct {
	width, height int
	screen        *core.Screen
	keyMapper     *KeyMapper
	highScore     int

	spring    harmonica.Spring
	titleY    float64
	titleVel  float64
	buttonY   float64
	buttonVel float64

	ballX, ballY   int
	ballDX, ballDY int
	frame          int

	choice TitleChoice
}

// NewTitleModel creates a title screen for the given terminal size.
func NewTitleModel(width, height, tickRate, highScore int) TitleModel {
	if tickRate <= 0 {
		tickRate = 60
	}
	return TitleModel{
		width:     width,
		height:    height,
		screen:    core.NewScreen(width, height),
		keyMapper: NewKeyMapper(),
		highScore: highScore,
		spring:    harmonica.NewSpring(harmonica.FPS(tickRate), springFrequency, springDamping),
		titleY:    -2,
		buttonY:   float64(height + 1),
		ballX:     width / 4,
		ballY:     height / 2,
		ballDX:    1,
		ballDY:    -1,
	}
}

// titleRest is the row the title settles on.
func (m TitleModel) titleRest() int {
	return max(m.height/3, 1)
}

// buttonRest is the row the Start button settles on.
func (m TitleModel) buttonRest() int {
	return m.titleRest() + 4
}

// Init initializes the model. Ticks come from the enclosing session.
func (m TitleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TitleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m = m.advance()

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionSelect:
			m.choice = TitleChoiceStart
		case MenuActionScoreboard:
			m.choice = TitleChoiceScoreboard
		case MenuActionQuit:
			m.choice = TitleChoiceQuit
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y) {
			m.choice = TitleChoiceStart
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.ballX = core.Clamp(m.ballX, 0, max(m.width-1, 0))
		m.ballY = core.Clamp(m.ballY, 0, max(m.height-1, 0))
	}
	return m, nil
}

// advance runs one animation frame.
func (m TitleModel) advance() TitleModel {
	m.frame++
	m.titleY, m.titleVel = m.spring.Update(m.titleY, m.titleVel, float64(m.titleRest()))
	m.buttonY, m.buttonVel = m.spring.Update(m.buttonY, m.buttonVel, float64(m.buttonRest()))

	if m.frame%ballEvery == 0 && m.width > 1 && m.height > 1 {
		if m.ballX+m.ballDX < 0 || m.ballX+m.ballDX >= m.width {
			m.ballDX = -m.ballDX
		}
		if m.ballY+m.ballDY < 0 || m.ballY+m.ballDY >= m.height {
			m.ballDY = -m.ballDY
		}
		m.ballX += m.ballDX
		m.ballY += m.ballDY
	}
	return m
}

// Settled reports whether both springs have come to rest.
func (m TitleModel) Settled() bool {
	near := func(pos, vel float64, rest int) bool {
		return math.Abs(pos-float64(rest)) < 0.5 && math.Abs(vel) < 0.5
	}
	return near(m.titleY, m.titleVel, m.titleRest()) && near(m.buttonY, m.buttonVel, m.buttonRest())
}

// buttonRow is the row the Start button is currently drawn on.
func (m TitleModel) buttonRow() int {
	return int(math.Round(m.buttonY))
}

// onButton reports whether (x, y) is on the Start button.
func (m TitleModel) onButton(x, y int) bool {
	w := len(startButton)
	left := (m.width - w) / 2
	return y == m.buttonRow() && x >= left && x < left+w
}

// Choice returns what the player picked, or TitleChoiceNone.
func (m TitleModel) Choice() TitleChoice {
	return m.choice
}

// Render draws the title screen into dst.
func (m TitleModel) Render(dst *core.Screen) {
	dst.Clear()

	// Drawn first so that text covers it
	dst.SetColored(m.ballX, m.ballY, '●', core.ColorBrightWhite)

	y := int(math.Round(m.titleY))
	x := (dst.Width() - len([]rune(titleText))) / 2
	for i, r := range []rune(titleText) {
		dst.SetColored(x+i, y, r, titleColors[(i/2)%len(titleColors)].Bright())
	}

	if m.Settled() && m.highScore > 0 {
		dst.DrawTextCenteredColored(y+2, fmt.Sprintf("Best: %d", m.highScore), core.ColorGray)
	}

	dst.DrawTextCenteredColored(m.buttonRow(), startButton, core.ColorBrightCyan)
	dst.DrawTextCenteredColored(dst.Height()-1, titleHint, core.ColorGray)
}

// View renders the title screen.
func (m TitleModel) View() string {
	if m.choice == TitleChoiceQuit {
		return ""
	}
	m.Render(m.screen)
	return RenderScreen(m.screen)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
