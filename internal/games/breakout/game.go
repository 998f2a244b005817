// Package breakout is the terminal table for a Breakout session.
//
// The session.Controller decides what exists and when a session is won or
// lost; this package is its Surface. It integrates ball physics in
// fixed-point table units, reports brick overlaps and frame ticks back to the
// controller, and draws everything scaled to the terminal.
package breakout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/session"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	TrailChar    = '·'
	BrickChar    = '█'
	BrickAltChar = '▓'
	Separator    = '─'
)

// ID is the registry and score key of the game.
const ID = "breakout"

// HUD takes the first two rows; the table is drawn below it.
const hudRows = 2

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game hosts one Breakout session controller on a terminal table.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger

	table *table
	ctrl  *session.Controller
	rng   *session.SimpleRNG

	// pointerX is the paddle target in table units. The mouse sets it
	// directly; arrow keys nudge it.
	pointerX    int
	lastPointer int
	hasPointer  bool

	paused    bool
	tickCount int
	listeners []session.ResultListener

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{
		logger:     log.New(io.Discard),
		minScreenW: 40,
		minScreenH: 16,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// SetLogger routes controller lifecycle logs to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// OnResult registers a callback invoked once per won or lost session.
// Listeners survive Reset.
func (g *Game) OnResult(fn session.ResultListener) {
	if fn != nil {
		g.listeners = append(g.listeners, fn)
	}
}

// Reset loads the config, builds a fresh controller and starts a session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime

	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.table = newTable(cfg, runtime.TickRate)
	g.rng = session.NewSimpleRNG(runtime.Seed)
	g.ctrl = session.New(g.table, g.rng,
		session.WithLayout(layoutFromConfig(cfg)),
		session.WithLogger(g.logger),
		session.WithResultListener(g.notify),
	)

	g.pointerX = cfg.Table.Width / 2
	g.hasPointer = false
	g.paused = false
	g.tickCount = 0

	g.ctrl.StartSession()
}

// Resize follows a terminal resize. The table is kept in table units, so
// play continues without a restart.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < g.minScreenW || height < g.minScreenH
	g.hasPointer = false
}

// layoutFromConfig maps the YAML config onto controller constants.
func layoutFromConfig(cfg config.BreakoutConfig) session.Layout {
	return session.Layout{
		Columns:      cfg.Grid.Columns,
		Rows:         cfg.Grid.Rows,
		TableWidth:   cfg.Table.Width,
		TableHeight:  cfg.Table.Height,
		LossMargin:   cfg.Table.LossMargin,
		BallStart:    session.Vec{X: cfg.Table.Width / 2, Y: cfg.Table.Height - cfg.Ball.StartOffset},
		BallVelocity: session.Vec{X: cfg.Ball.VelocityX, Y: cfg.Ball.VelocityY},
		PaddleStart:  session.Vec{X: cfg.Table.Width / 2, Y: cfg.Table.Height - cfg.Paddle.BottomOffset},
	}
}

func (g *Game) notify(r session.Result) {
	for _, fn := range g.listeners {
		fn(r)
	}
}

// Controller exposes the session controller driving this table.
func (g *Game) Controller() *session.Controller {
	return g.ctrl
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.updatePointer(in)

	if g.ctrl.State().Terminal() {
		if g.wantsButton(in) {
			g.table.activateButton()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.ctrl.Running() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.stepBall()

	ballY := 0
	if g.table.ball != nil {
		ballY = g.table.ball.Y.ToUnit()
	}
	g.ctrl.OnTick(g.pointerX, ballY)

	return core.StepResult{State: g.State()}
}

// updatePointer folds mouse motion and arrow keys into pointerX.
func (g *Game) updatePointer(in core.InputFrame) {
	// The pointer position is sticky in the input frame; only a change
	// means the mouse actually moved.
	if in.HasPointer && (!g.hasPointer || in.PointerX != g.lastPointer) {
		g.hasPointer = true
		g.lastPointer = in.PointerX
		g.pointerX = g.screenToTableX(in.PointerX)
	}

	speed := g.cfg.Paddle.KeyboardSpeed
	if in.Has(core.ActionLeft) {
		g.pointerX -= speed
	}
	if in.Has(core.ActionRight) {
		g.pointerX += speed
	}
	g.pointerX = core.Clamp(g.pointerX, 0, g.cfg.Table.Width)
}

// wantsButton reports whether this frame activates the "Play again" button.
func (g *Game) wantsButton(in core.InputFrame) bool {
	if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
		return true
	}
	if in.Has(core.ActionClick) && in.HasPointer {
		_, _, btn := g.overlay(g.runtime.ScreenW, g.runtime.ScreenH)
		return btn.Contains(in.PointerX, in.PointerY)
	}
	return false
}

// stepBall moves the ball and resolves wall, paddle and brick contacts.
func (g *Game) stepBall() {
	ball := g.table.ball
	if ball == nil {
		return
	}

	g.table.pushTrail()

	prevY := ball.Y
	scale := g.difficulty.SpeedScale(g.Score(), g.tickCount)
	ball.Move(int(scale * 1000))

	if wall := CheckWallCollision(ball, g.cfg.Table.Width); wall != CollisionNone {
		ApplyWallBounce(ball, wall)
	}

	if g.table.paddle != nil && CheckPaddleCollision(ball, prevY, g.table.paddle, g.baseSpeed()) {
		return
	}

	if brick, side := g.table.brickAt(ball); brick != nil {
		ApplyCollisionBounce(ball, side)
		g.ctrl.OnBrickHit(brick.ID)
	}
}

// baseSpeed is the configured per-tick speed along the faster axis.
func (g *Game) baseSpeed() Fixed {
	v := max(core.Abs(g.cfg.Ball.VelocityX), core.Abs(g.cfg.Ball.VelocityY))
	return PerTick(v, g.runtime.TickRate)
}

// Score is bricks cleared times the points per brick.
func (g *Game) Score() int {
	if g.ctrl == nil {
		return 0
	}
	return g.ctrl.BricksCleared() * g.cfg.Gameplay.BrickPoints
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	st := g.ctrl.State()
	return core.GameState{
		Score:    g.Score(),
		GameOver: st.Terminal(),
		Won:      st == session.StateWon,
		Paused:   g.paused,
	}
}

// playHeight is the number of rows available to the table.
func playHeight(screenH int) int {
	return max(screenH-hudRows, 1)
}

// screenToTableX converts a terminal column to a table X at the cell center.
func (g *Game) screenToTableX(col int) int {
	w := max(g.runtime.ScreenW, 1)
	return (2*col + 1) * g.cfg.Table.Width / (2 * w)
}

func (g *Game) tableToScreenX(x, screenW int) int {
	return core.ScaleInt(x, g.cfg.Table.Width, screenW)
}

func (g *Game) tableToScreenY(y, screenH int) int {
	return hudRows + core.ScaleInt(y, g.cfg.Table.Height, playHeight(screenH))
}

// Register the game with the registry
func init() {
	registry.Register(registry.Info{
		ID:          ID,
		Title:       "Breakout",
		Description: "Clear a 12x5 wall of bricks with a ball and paddle",
	}, func() registry.Game {
		return New()
	})
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.ctrl == nil {
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderTrail(dst)
	g.renderPaddle(dst)
	g.renderBall(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score, bricks left and speed.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.Score()), core.ColorBrightWhite)

	bricks := fmt.Sprintf("Bricks: %d/%d", g.ctrl.BricksRemaining(), g.ctrl.TotalBricks())
	dst.DrawTextCentered(0, bricks)

	speed := fmt.Sprintf("Speed: %d%%", int(g.difficulty.SpeedScale(g.Score(), g.tickCount)*100))
	dst.DrawText(dst.Width()-len(speed)-1, 0, speed)

	dst.DrawHLine(0, 1, dst.Width(), Separator, core.ColorGray)
}

// VariantColor maps a brick variant to a terminal color. Shade 2 is the
// bright form of the base color.
func VariantColor(v session.ColorVariant) core.Color {
	var c core.Color
	switch v.Color {
	case session.ColorRed:
		c = core.ColorRed
	case session.ColorBlue:
		c = core.ColorBlue
	case session.ColorGreen:
		c = core.ColorGreen
	case session.ColorPurple:
		c = core.ColorMagenta
	case session.ColorSilver:
		c = core.ColorSilver
	case session.ColorYellow:
		c = core.ColorYellow
	default:
		c = core.ColorWhite
	}
	if v.Shade == 2 {
		c = c.Bright()
	}
	return c
}

// renderBricks draws every live brick, leaving a one-column gap between neighbors.
func (g *Game) renderBricks(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	for _, id := range g.table.order {
		b := g.table.bricks[id]

		x0 := g.tableToScreenX(b.Box.Left.ToUnit(), w)
		x1 := g.tableToScreenX(b.Box.Right.ToUnit(), w)
		y0 := g.tableToScreenY(b.Box.Top.ToUnit(), h)
		y1 := g.tableToScreenY(b.Box.Bottom.ToUnit(), h)
		if y1 <= y0 {
			y1 = y0 + 1
		}
		width := max(x1-x0-1, 1)

		glyph := BrickChar
		if b.Variant.Shade == 2 {
			glyph = BrickAltChar
		}
		dst.DrawRect(core.NewRect(x0, y0, width, y1-y0), glyph, VariantColor(b.Variant))
	}
}

// renderTrail draws the fading particles behind the ball.
func (g *Game) renderTrail(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	for _, d := range g.table.trail {
		dst.SetColored(g.tableToScreenX(d.X, w), g.tableToScreenY(d.Y, h), TrailChar, core.ColorGray)
	}
}

// renderPaddle draws the paddle.
func (g *Game) renderPaddle(dst *core.Screen) {
	p := g.table.paddle
	if p == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	box := p.Box()
	x0 := g.tableToScreenX(box.Left.ToUnit(), w)
	x1 := g.tableToScreenX(box.Right.ToUnit(), w)
	y := min(g.tableToScreenY(p.Y.ToUnit(), h), h-1)
	dst.DrawHLine(x0, y, max(x1-x0, 1), PaddleChar, core.ColorBrightWhite)
}

// renderBall draws the ball. A ball below the table is off screen.
func (g *Game) renderBall(dst *core.Screen) {
	b := g.table.ball
	if b == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	dst.SetColored(g.tableToScreenX(b.X.ToUnit(), w), g.tableToScreenY(b.Y.ToUnit(), h), BallChar, core.ColorBrightWhite)
}

// overlay lays out the end-of-session box. btn covers the button text and
// is empty when no button is shown.
func (g *Game) overlay(w, h int) (box core.Rect, lines []string, btn core.Rect) {
	if len(g.table.labels) == 0 && g.table.button == nil {
		return box, nil, btn
	}

	lines = append(lines, g.table.labels...)
	lines = append(lines, fmt.Sprintf("Score: %d", g.Score()), "")
	if g.table.button != nil {
		lines = append(lines, "[ "+g.table.button.Text+" ]", "Enter or click")
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	box = core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	if g.table.button != nil {
		text := lines[len(lines)-2]
		textW := len([]rune(text))
		btn = core.NewRect(box.X+(box.W-textW)/2, box.Y+1+len(lines)-2, textW, 1)
	}
	return box, lines, btn
}

// renderOverlay draws the pause box or the end-of-session labels and button.
func (g *Game) renderOverlay(dst *core.Screen) {
	if g.paused {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}

	box, lines, btn := g.overlay(dst.Width(), dst.Height())
	if lines == nil {
		return
	}

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		y := box.Y + 1 + i
		x := box.X + (box.W-len([]rune(l)))/2
		color := core.ColorDefault
		switch {
		case i == 0:
			color = core.ColorBrightYellow
		case btn.H > 0 && y == btn.Y:
			color = core.ColorBrightCyan
		case btn.H > 0 && y == btn.Y+1:
			color = core.ColorGray
		}
		dst.DrawTextColored(x, y, l, color)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
