package breakout

import (
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/session"
)

// brickSprite is a brick as the table sees it: a colored box with a collider.
type brickSprite struct {
	ID      session.BrickID
	GridX   int
	GridY   int
	Variant session.ColorVariant
	Box     Box
}

// button is the single focusable trigger shown after a session ends.
type button struct {
	Text       string
	OnActivate func()
}

// table owns every sprite and collider in play. It implements
// session.Surface; the controller never touches these fields directly.
type table struct {
	cfg      config.BreakoutConfig
	tickRate int

	nextBrickID session.BrickID
	bricks      map[session.BrickID]*brickSprite
	order       []session.BrickID // Spawn order, for deterministic collision checks

	nextHandle int
	ball       *Ball
	ballHandle session.BallHandle
	trail      []trailDot

	paddle       *Paddle
	paddleHandle session.PaddleHandle

	labels []string
	button *button
}

// trailDot is one particle of the ball trail, in table units.
type trailDot struct {
	X, Y int
}

var _ session.Surface = (*table)(nil)

func newTable(cfg config.BreakoutConfig, tickRate int) *table {
	return &table{
		cfg:      cfg,
		tickRate: tickRate,
		bricks:   make(map[session.BrickID]*brickSprite),
	}
}

// SpawnBrick places a brick at its grid cell.
func (t *table) SpawnBrick(gridX, gridY int, variant session.ColorVariant) session.BrickID {
	t.nextBrickID++
	id := t.nextBrickID

	g := t.cfg.Grid
	x := gridX*g.BrickWidth + g.OffsetX
	y := gridY*g.BrickHeight + g.OffsetY
	t.bricks[id] = &brickSprite{
		ID:      id,
		GridX:   gridX,
		GridY:   gridY,
		Variant: variant,
		Box: Box{
			Left:   ToFixed(x),
			Top:    ToFixed(y),
			Right:  ToFixed(x + g.BrickWidth),
			Bottom: ToFixed(y + g.BrickHeight),
		},
	}
	t.order = append(t.order, id)
	return id
}

// DespawnBrick removes a brick and its collider. Unknown IDs are ignored.
func (t *table) DespawnBrick(id session.BrickID) {
	if _, ok := t.bricks[id]; !ok {
		return
	}
	delete(t.bricks, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}

// SpawnBall creates the ball. velocity is in units per second.
func (t *table) SpawnBall(pos, velocity session.Vec) session.BallHandle {
	t.nextHandle++
	t.ballHandle = session.BallHandle(t.nextHandle)
	t.ball = &Ball{
		X:      ToFixed(pos.X),
		Y:      ToFixed(pos.Y),
		VX:     PerTick(velocity.X, t.tickRate),
		VY:     PerTick(velocity.Y, t.tickRate),
		Radius: ToFixed(t.cfg.Ball.Radius),
	}
	t.trail = t.trail[:0]
	return t.ballHandle
}

// DespawnBall removes the ball together with its trail.
func (t *table) DespawnBall(h session.BallHandle) {
	if t.ball == nil || h != t.ballHandle {
		return
	}
	t.ball = nil
	t.trail = t.trail[:0]
}

// SpawnPaddle creates the paddle centered at pos.
func (t *table) SpawnPaddle(pos session.Vec) session.PaddleHandle {
	t.nextHandle++
	t.paddleHandle = session.PaddleHandle(t.nextHandle)
	t.paddle = &Paddle{
		X:      ToFixed(pos.X),
		Y:      ToFixed(pos.Y),
		Width:  ToFixed(t.cfg.Paddle.Width),
		Height: ToFixed(t.cfg.Paddle.Height),
	}
	t.MovePaddle(t.paddleHandle, pos.X)
	return t.paddleHandle
}

// MovePaddle centers the paddle on x, clamped so it stays on the table.
func (t *table) MovePaddle(h session.PaddleHandle, x int) {
	if t.paddle == nil || h != t.paddleHandle {
		return
	}
	half := t.paddle.Width.Div(2)
	t.paddle.X = ClampFixed(ToFixed(x), half, ToFixed(t.cfg.Table.Width).Sub(half))
}

// DespawnPaddle removes the paddle.
func (t *table) DespawnPaddle(h session.PaddleHandle) {
	if t.paddle == nil || h != t.paddleHandle {
		return
	}
	t.paddle = nil
}

// ShowLabel queues a centered message.
func (t *table) ShowLabel(text string) {
	t.labels = append(t.labels, text)
}

// ShowButton replaces the focusable button.
func (t *table) ShowButton(text string, onActivate func()) {
	t.button = &button{Text: text, OnActivate: onActivate}
}

// ClearLabels removes every label and the button.
func (t *table) ClearLabels() {
	t.labels = nil
	t.button = nil
}

// activateButton fires the button's callback, if one is shown.
func (t *table) activateButton() bool {
	if t.button == nil || t.button.OnActivate == nil {
		return false
	}
	// The callback usually clears the button, so take it first
	fn := t.button.OnActivate
	fn()
	return true
}

// pushTrail records the ball position, keeping the last TrailLength dots.
func (t *table) pushTrail() {
	if t.ball == nil || t.cfg.Ball.TrailLength <= 0 {
		return
	}
	t.trail = append(t.trail, trailDot{X: t.ball.X.ToUnit(), Y: t.ball.Y.ToUnit()})
	if over := len(t.trail) - t.cfg.Ball.TrailLength; over > 0 {
		t.trail = t.trail[over:]
	}
}

// brickAt returns the first brick, in spawn order, the ball overlaps.
func (t *table) brickAt(ball *Ball) (*brickSprite, CollisionSide) {
	for _, id := range t.order {
		b := t.bricks[id]
		if side := CheckBrickCollision(ball, b.Box); side != CollisionNone {
			return b, side
		}
	}
	return nil, CollisionNone
}
