// Package session implements the Breakout game session controller.
//
// A Controller owns the brick set and the running/won/lost state of one
// playthrough. It never renders or integrates physics itself: every visible
// effect is a request to a Surface, and the Surface reports collisions and
// frame ticks back. The Controller is not safe for concurrent use; it is
// driven from the host's single frame loop.
package session

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// State is the lifecycle phase of the controller.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateWon
	StateLost
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a session.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Labels shown by the Surface when a session ends.
const (
	WonLabel        = "You won!"
	LostLabel       = "Game over"
	PlayAgainButton = "Play again"
)

// Layout holds the fixed constants of a session.
type Layout struct {
	Columns     int // Brick grid columns
	Rows        int // Brick grid rows
	TableWidth  int // Table width in table units
	TableHeight int // Table height in table units
	LossMargin  int // How far below the table the ball may fall before the session is lost

	BallStart    Vec // Ball spawn position
	BallVelocity Vec // Ball initial velocity in units per second
	PaddleStart  Vec // Paddle spawn position (center)
}

// DefaultLayout returns the classic 12x5 grid on an 800x600 table.
func DefaultLayout() Layout {
	return Layout{
		Columns:      12,
		Rows:         5,
		TableWidth:   800,
		TableHeight:  600,
		LossMargin:   100,
		BallStart:    Vec{X: 400, Y: 540},
		BallVelocity: Vec{X: 500, Y: 500},
		PaddleStart:  Vec{X: 400, Y: 570},
	}
}

// BrickCount returns the number of bricks spawned per session.
func (l Layout) BrickCount() int {
	return l.Columns * l.Rows
}

// LossLine is the ball Y beyond which the session is lost.
func (l Layout) LossLine() int {
	return l.TableHeight + l.LossMargin
}

// Result summarizes a finished session.
type Result struct {
	Outcome       State // StateWon or StateLost
	BricksCleared int
	BricksTotal   int
	Ticks         int // Frames the session was running
}

// ResultListener is notified once per finished session.
type ResultListener func(Result)

// Controller drives one game session at a time against a Surface.
type Controller struct {
	surface Surface
	rng     RNG
	layout  Layout
	logger  *log.Logger

	state   State
	running bool

	// bricks is the dispatch table for collision notifications.
	bricks             map[BrickID]Brick
	totalBricksAtStart int

	ball      BallHandle
	paddle    PaddleHandle
	hasBall   bool
	hasPaddle bool
	ticks     int

	listeners []ResultListener
}

// Option configures a Controller.
type Option func(*Controller)

// WithLayout overrides the default grid and table constants.
func WithLayout(l Layout) Option {
	return func(c *Controller) {
		c.layout = l
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithResultListener registers a callback for finished sessions.
func WithResultListener(fn ResultListener) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// New creates an idle controller. Call StartSession to begin play.
func New(surface Surface, rng RNG, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		rng:     rng,
		layout:  DefaultLayout(),
		logger:  log.New(io.Discard),
		state:   StateIdle,
		bricks:  make(map[BrickID]Brick),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession spawns a fresh grid, ball and paddle and starts running.
// Anything left from a previous session is torn down first, so calling it
// from any state yields a full reset.
func (c *Controller) StartSession() {
	if c.state.Terminal() {
		c.surface.ClearLabels()
	}
	c.teardown()

	for x := 0; x < c.layout.Columns; x++ {
		for y := 0; y < c.layout.Rows; y++ {
			variant := VariantByIndex(c.rng.Intn(VariantCount))
			id := c.surface.SpawnBrick(x, y, variant)
			c.bricks[id] = Brick{ID: id, GridX: x, GridY: y, Variant: variant}
		}
	}
	c.totalBricksAtStart = len(c.bricks)

	c.ball = c.surface.SpawnBall(c.layout.BallStart, c.layout.BallVelocity)
	c.hasBall = true
	c.paddle = c.surface.SpawnPaddle(c.layout.PaddleStart)
	c.hasPaddle = true

	c.ticks = 0
	c.running = true
	c.state = StateRunning

	c.logger.Debug("session started", "bricks", c.totalBricksAtStart)
}

// OnBrickHit handles a ball/brick overlap reported by the Surface.
// Unknown or already removed IDs are ignored, so duplicate notifications for
// the same collision are harmless. Returns whether a brick was removed.
func (c *Controller) OnBrickHit(id BrickID) bool {
	if !c.running {
		return false
	}
	if _, ok := c.bricks[id]; !ok {
		return false
	}

	delete(c.bricks, id)
	c.surface.DespawnBrick(id)

	if len(c.bricks) == 0 {
		c.finish(StateWon)
	}
	return true
}

// OnTick runs once per frame: the paddle follows the pointer and a ball that
// fell past the loss line ends the session. No-op unless running.
func (c *Controller) OnTick(pointerX, ballY int) {
	if !c.running {
		return
	}
	c.ticks++

	c.surface.MovePaddle(c.paddle, pointerX)

	if ballY > c.layout.LossLine() {
		c.finish(StateLost)
	}
}

// Replay activates the "Play again" trigger. It only has an effect once the
// session has been won or lost.
func (c *Controller) Replay() {
	if !c.state.Terminal() {
		return
	}
	c.surface.ClearLabels()
	c.teardown()
	c.state = StateIdle
	c.StartSession()
}

// finish stops the session and shows the outcome. Cleanup is identical for
// both outcomes.
func (c *Controller) finish(outcome State) {
	c.running = false
	c.state = outcome
	c.despawnActors()

	label := LostLabel
	if outcome == StateWon {
		label = WonLabel
	}
	c.surface.ShowLabel(label)
	c.surface.ShowButton(PlayAgainButton, c.Replay)

	result := Result{
		Outcome:       outcome,
		BricksCleared: c.totalBricksAtStart - len(c.bricks),
		BricksTotal:   c.totalBricksAtStart,
		Ticks:         c.ticks,
	}
	c.logger.Debug("session finished",
		"outcome", outcome,
		"cleared", result.BricksCleared,
		"ticks", result.Ticks,
	)
	for _, fn := range c.listeners {
		fn(result)
	}
}

// teardown despawns every remaining brick and actor.
func (c *Controller) teardown() {
	for _, b := range c.Bricks() {
		c.surface.DespawnBrick(b.ID)
	}
	clear(c.bricks)
	c.despawnActors()
	c.running = false
}

func (c *Controller) despawnActors() {
	if c.hasBall {
		c.surface.DespawnBall(c.ball)
		c.hasBall = false
	}
	if c.hasPaddle {
		c.surface.DespawnPaddle(c.paddle)
		c.hasPaddle = false
	}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// Running reports whether a session is in progress.
func (c *Controller) Running() bool {
	return c.running
}

// BricksRemaining returns the number of bricks still in play.
func (c *Controller) BricksRemaining() int {
	return len(c.bricks)
}

// TotalBricks returns the brick count at the start of the current session.
func (c *Controller) TotalBricks() int {
	return c.totalBricksAtStart
}

// BricksCleared returns how many bricks have been removed this session.
func (c *Controller) BricksCleared() int {
	return c.totalBricksAtStart - len(c.bricks)
}

// Ticks returns the frames counted while running.
func (c *Controller) Ticks() int {
	return c.ticks
}

// Brick looks up a live brick by ID.
func (c *Controller) Brick(id BrickID) (Brick, bool) {
	b, ok := c.bricks[id]
	return b, ok
}

// Bricks returns the live bricks ordered by ID.
func (c *Controller) Bricks() []Brick {
	out := make([]Brick, 0, len(c.bricks))
	for _, b := range c.bricks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Layout returns the session constants.
func (c *Controller) Layout() Layout {
	return c.layout
}

// Ball returns the ball handle, valid while running.
func (c *Controller) Ball() (BallHandle, bool) {
	return c.ball, c.hasBall
}

// Paddle returns the paddle handle, valid while running.
func (c *Controller) Paddle() (PaddleHandle, bool) {
	return c.paddle, c.hasPaddle
}
