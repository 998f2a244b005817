package session

// Vec is a position or velocity in table units.
// Velocities are expressed in units per second.
type Vec struct {
	X, Y int
}

// Surface is the rendering/physics host the Controller drives.
//
// The Surface owns sprites, physics and input devices. It reports ball/brick
// overlaps by calling Controller.OnBrickHit and drives the frame loop by
// calling Controller.OnTick once per rendered frame.
type Surface interface {
	// SpawnBrick creates a brick sprite at a grid cell and returns its ID.
	SpawnBrick(gridX, gridY int, variant ColorVariant) BrickID
	// DespawnBrick removes a brick sprite and its collider.
	DespawnBrick(id BrickID)

	// SpawnBall creates the ball with an initial velocity.
	SpawnBall(pos, velocity Vec) BallHandle
	// DespawnBall removes the ball together with anything following it (trail).
	DespawnBall(h BallHandle)

	// SpawnPaddle creates the paddle centered at pos.
	SpawnPaddle(pos Vec) PaddleHandle
	// MovePaddle sets the paddle center X. The Surface clamps it to the table.
	MovePaddle(h PaddleHandle, x int)
	// DespawnPaddle removes the paddle and its collider.
	DespawnPaddle(h PaddleHandle)

	// ShowLabel displays a terminal message.
	ShowLabel(text string)
	// ShowButton displays a trigger that calls onActivate when used.
	ShowButton(text string, onActivate func())
	// ClearLabels removes all labels and buttons.
	ClearLabels()
}
