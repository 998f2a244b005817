package breakout

// Fixed-point scale factor: 1 table unit = 1000.
// This allows for sub-unit precision while maintaining determinism.
const Scale = 1000

// Fixed represents a fixed-point integer (scaled by Scale).
type Fixed int

// ToFixed converts table units to fixed-point.
func ToFixed(units int) Fixed {
	return Fixed(units * Scale)
}

// ToUnit converts fixed-point to table units (truncated toward zero).
func (f Fixed) ToUnit() int {
	return int(f) / Scale
}

// Add adds two fixed-point values.
func (f Fixed) Add(other Fixed) Fixed {
	return f + other
}

// Sub subtracts two fixed-point values.
func (f Fixed) Sub(other Fixed) Fixed {
	return f - other
}

// Mul multiplies fixed-point by an integer.
func (f Fixed) Mul(n int) Fixed {
	return Fixed(int(f) * n)
}

// Div divides fixed-point by an integer.
func (f Fixed) Div(n int) Fixed {
	if n == 0 {
		return 0
	}
	return Fixed(int(f) / n)
}

// Abs returns absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// PerTick converts a speed in units per second to fixed-point per tick.
func PerTick(unitsPerSecond, tickRate int) Fixed {
	if tickRate <= 0 {
		tickRate = 60
	}
	return ToFixed(unitsPerSecond).Div(tickRate)
}

// Ball is the ball state in fixed-point table coordinates.
type Ball struct {
	X, Y   Fixed // Center
	VX, VY Fixed // Velocity per tick at base speed
	Radius Fixed
}

// Move advances the ball by its velocity scaled by speedPermille/1000.
func (b *Ball) Move(speedPermille int) {
	b.X = b.X.Add(b.VX.Mul(speedPermille).Div(1000))
	b.Y = b.Y.Add(b.VY.Mul(speedPermille).Div(1000))
}

// Box returns the ball's bounding box.
func (b *Ball) Box() Box {
	return Box{
		Left:   b.X.Sub(b.Radius),
		Top:    b.Y.Sub(b.Radius),
		Right:  b.X.Add(b.Radius),
		Bottom: b.Y.Add(b.Radius),
	}
}

// Paddle is the player's paddle. X and Y are its center.
type Paddle struct {
	X, Y   Fixed
	Width  Fixed
	Height Fixed
}

// Box returns the paddle's bounding box.
func (p *Paddle) Box() Box {
	return Box{
		Left:   p.X.Sub(p.Width.Div(2)),
		Top:    p.Y.Sub(p.Height.Div(2)),
		Right:  p.X.Add(p.Width.Div(2)),
		Bottom: p.Y.Add(p.Height.Div(2)),
	}
}

// Box is an axis-aligned box in fixed-point table coordinates.
type Box struct {
	Left, Top, Right, Bottom Fixed
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (a Box) Overlaps(b Box) bool {
	return a.Left < b.Right && b.Left < a.Right && a.Top < b.Bottom && b.Top < a.Bottom
}

// CollisionSide indicates which side of an object was hit.
type CollisionSide int

const (
	CollisionNone CollisionSide = iota
	CollisionTop
	CollisionBottom
	CollisionLeft
	CollisionRight
)

// CheckWallCollision keeps the ball inside the left, right and top walls.
// The bottom is open: a missed ball keeps falling.
func CheckWallCollision(ball *Ball, tableW int) CollisionSide {
	if ball.X.Sub(ball.Radius) < 0 {
		ball.X = ball.Radius
		return CollisionLeft
	}

	if ball.X.Add(ball.Radius) > ToFixed(tableW) {
		ball.X = ToFixed(tableW).Sub(ball.Radius)
		return CollisionRight
	}

	if ball.Y.Sub(ball.Radius) < 0 {
		ball.Y = ball.Radius
		return CollisionTop
	}

	return CollisionNone
}

// CheckPaddleCollision bounces the ball off the paddle.
// The return angle depends on where the ball hit: edge hits send it out
// more sideways. prevY is the ball center before this tick's move; the
// contact test is swept from there, so a fast ball cannot step over the
// paddle. speed is the base per-tick speed on each axis.
func CheckPaddleCollision(ball *Ball, prevY Fixed, paddle *Paddle, speed Fixed) bool {
	// Ball must be moving downward
	if ball.VY <= 0 {
		return false
	}
	box := paddle.Box()
	if ball.X.Add(ball.Radius) <= box.Left || ball.X.Sub(ball.Radius) >= box.Right {
		return false
	}
	// The bottom of the ball has not reached the paddle yet
	if ball.Y.Add(ball.Radius) <= box.Top {
		return false
	}
	// Already past the paddle's center line before this tick: too late
	if prevY > paddle.Y {
		return false
	}

	// Range: -Scale (left edge) to +Scale (right edge)
	hitOffset := ball.X.Sub(paddle.X)
	halfWidth := paddle.Width.Div(2)
	var normalizedHit Fixed
	if halfWidth > 0 {
		normalizedHit = ClampFixed(hitOffset.Mul(Scale).Div(int(halfWidth)), -Scale, Scale)
	}

	ball.VY = -ball.VY.Abs()
	if ball.VY > -speed/2 {
		ball.VY = -speed / 2
	}
	ball.VX = normalizedHit.Mul(int(speed)) / Scale

	// Ensure ball moves away from paddle
	ball.Y = box.Top.Sub(ball.Radius)

	return true
}

// CheckBrickCollision returns the side of brick the ball hit, or
// CollisionNone. The side is the axis with the shallower penetration.
func CheckBrickCollision(ball *Ball, brick Box) CollisionSide {
	b := ball.Box()
	if !b.Overlaps(brick) {
		return CollisionNone
	}

	penLeft := b.Right.Sub(brick.Left)
	penRight := brick.Right.Sub(b.Left)
	penTop := b.Bottom.Sub(brick.Top)
	penBottom := brick.Bottom.Sub(b.Top)

	horizSide, minHoriz := CollisionLeft, penLeft
	if penRight < minHoriz {
		horizSide, minHoriz = CollisionRight, penRight
	}
	vertSide, minVert := CollisionTop, penTop
	if penBottom < minVert {
		vertSide, minVert = CollisionBottom, penBottom
	}

	if minVert <= minHoriz {
		return vertSide
	}
	return horizSide
}

// ApplyCollisionBounce reflects the ball away from the side it hit.
func ApplyCollisionBounce(ball *Ball, side CollisionSide) {
	switch side {
	case CollisionTop:
		ball.VY = -ball.VY.Abs()
	case CollisionBottom:
		ball.VY = ball.VY.Abs()
	case CollisionLeft:
		ball.VX = -ball.VX.Abs()
	case CollisionRight:
		ball.VX = ball.VX.Abs()
	}
}

// ClampFixed restricts a value to [minVal, maxVal].
func ClampFixed(val, minVal, maxVal Fixed) Fixed {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// ApplyWallBounce reflects the ball back into the table after a wall hit.
func ApplyWallBounce(ball *Ball, wall CollisionSide) {
	switch wall {
	case CollisionLeft:
		ball.VX = ball.VX.Abs()
	case CollisionRight:
		ball.VX = -ball.VX.Abs()
	case CollisionTop:
		ball.VY = ball.VY.Abs()
	}
}
