package breakout

// Snapshot contains the complete table state for replay and determinism tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64
	State           string
	Score           int
	PointerX        int
	Paused          bool
	BricksRemaining int
	BricksTotal     int

	// Paddle center X, -1 when despawned
	PaddleX int

	// Ball state (fixed-point), zero when despawned
	HasBall bool
	BallX   int
	BallY   int
	BallVX  int
	BallVY  int

	// Live bricks in spawn order, 4 ints each: ID, GridX, GridY, variant index
	BrickData []int

	// Variant RNG state
	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State:           g.ctrl.State().String(),
		Score:           g.Score(),
		PointerX:        g.pointerX,
		Paused:          g.paused,
		BricksRemaining: g.ctrl.BricksRemaining(),
		BricksTotal:     g.ctrl.TotalBricks(),
		PaddleX:         -1,
		RNGState:        g.rng.State(),
	}

	if p := g.table.paddle; p != nil {
		snap.PaddleX = int(p.X)
	}
	if b := g.table.ball; b != nil {
		snap.HasBall = true
		snap.BallX = int(b.X)
		snap.BallY = int(b.Y)
		snap.BallVX = int(b.VX)
		snap.BallVY = int(b.VY)
	}

	snap.BrickData = make([]int, 0, len(g.table.order)*4)
	for _, id := range g.table.order {
		b := g.table.bricks[id]
		snap.BrickData = append(snap.BrickData, int(b.ID), b.GridX, b.GridY, b.Variant.Index())
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.State {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PointerX)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksTotal)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallX)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallY)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallVX)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallVY)          //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}
	if snap.HasBall {
		h = h*31 + 1
	}

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
