package session

import (
	"math/rand"
	"testing"
)

// fakeSurface records every request the controller makes.
type fakeSurface struct {
	nextID     BrickID
	live       map[BrickID]Brick
	despawned  []BrickID
	balls      int
	paddles    int
	paddleX    []int
	labels     []string
	buttons    []string
	onActivate func()
	clears     int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{live: make(map[BrickID]Brick)}
}

func (f *fakeSurface) SpawnBrick(gridX, gridY int, variant ColorVariant) BrickID {
	f.nextID++
	f.live[f.nextID] = Brick{ID: f.nextID, GridX: gridX, GridY: gridY, Variant: variant}
	return f.nextID
}

func (f *fakeSurface) DespawnBrick(id BrickID) {
	delete(f.live, id)
	f.despawned = append(f.despawned, id)
}

func (f *fakeSurface) SpawnBall(pos, velocity Vec) BallHandle {
	f.balls++
	return BallHandle(f.balls)
}

func (f *fakeSurface) DespawnBall(h BallHandle) {
	f.balls--
}

func (f *fakeSurface) SpawnPaddle(pos Vec) PaddleHandle {
	f.paddles++
	return PaddleHandle(f.paddles)
}

func (f *fakeSurface) MovePaddle(h PaddleHandle, x int) {
	f.paddleX = append(f.paddleX, x)
}

func (f *fakeSurface) DespawnPaddle(h PaddleHandle) {
	f.paddles--
}

func (f *fakeSurface) ShowLabel(text string) {
	f.labels = append(f.labels, text)
}

func (f *fakeSurface) ShowButton(text string, onActivate func()) {
	f.buttons = append(f.buttons, text)
	f.onActivate = onActivate
}

func (f *fakeSurface) ClearLabels() {
	f.labels = nil
	f.buttons = nil
	f.onActivate = nil
	f.clears++
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeSurface) {
	t.Helper()
	surface := newFakeSurface()
	return New(surface, NewSimpleRNG(42), opts...), surface
}

func TestNewControllerIsIdle(t *testing.T) {
	c, surface := newTestController(t)

	if c.State() != StateIdle || c.Running() {
		t.Errorf("new controller should be idle, got %s running=%v", c.State(), c.Running())
	}
	if len(surface.live) != 0 || surface.balls != 0 || surface.paddles != 0 {
		t.Error("new controller should not spawn anything")
	}
}

func TestStartSessionSpawnsFullGrid(t *testing.T) {
	c, surface := newTestController(t)
	c.StartSession()

	if c.State() != StateRunning || !c.Running() {
		t.Fatalf("expected running state, got %s", c.State())
	}
	if c.BricksRemaining() != 60 || c.TotalBricks() != 60 {
		t.Fatalf("expected 60 bricks, got remaining=%d total=%d", c.BricksRemaining(), c.TotalBricks())
	}

	seen := make(map[[2]int]int)
	for _, b := range surface.live {
		if b.GridX < 0 || b.GridX > 11 || b.GridY < 0 || b.GridY > 4 {
			t.Errorf("brick %d out of grid: (%d, %d)", b.ID, b.GridX, b.GridY)
		}
		seen[[2]int{b.GridX, b.GridY}]++
	}
	for x := 0; x < 12; x++ {
		for y := 0; y < 5; y++ {
			if seen[[2]int{x, y}] != 1 {
				t.Errorf("cell (%d, %d) covered %d times, expected once", x, y, seen[[2]int{x, y}])
			}
		}
	}

	if surface.balls != 1 || surface.paddles != 1 {
		t.Errorf("expected one ball and one paddle, got %d/%d", surface.balls, surface.paddles)
	}
}

func TestStartSessionVariantsInRange(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		surface := newFakeSurface()
		c := New(surface, NewSimpleRNG(seed))
		c.StartSession()

		for _, b := range c.Bricks() {
			idx := b.Variant.Index()
			if idx < 0 || idx >= VariantCount {
				t.Fatalf("seed %d: variant %v has index %d", seed, b.Variant, idx)
			}
			if b.Variant.Shade != 1 && b.Variant.Shade != 2 {
				t.Fatalf("seed %d: shade %d out of range", seed, b.Variant.Shade)
			}
		}
	}
}

func TestStartSessionDeterministicWithSeed(t *testing.T) {
	a, _ := newTestController(t)
	b, _ := newTestController(t)
	a.StartSession()
	b.StartSession()

	ba, bb := a.Bricks(), b.Bricks()
	for i := range ba {
		if ba[i].Variant != bb[i].Variant {
			t.Fatalf("brick %d variant differs: %v vs %v", i, ba[i].Variant, bb[i].Variant)
		}
	}
}

func TestStartSessionAcceptsMathRand(t *testing.T) {
	surface := newFakeSurface()
	c := New(surface, rand.New(rand.NewSource(7)))
	c.StartSession()

	if c.BricksRemaining() != 60 {
		t.Errorf("expected 60 bricks, got %d", c.BricksRemaining())
	}
}

func TestBrickHitAllAscendingWins(t *testing.T) {
	var results []Result
	c, surface := newTestController(t, WithResultListener(func(r Result) {
		results = append(results, r)
	}))
	c.StartSession()

	for _, b := range c.Bricks() {
		if !c.OnBrickHit(b.ID) {
			t.Fatalf("OnBrickHit(%d) should remove a live brick", b.ID)
		}
	}

	if c.State() != StateWon || c.Running() {
		t.Fatalf("expected won and stopped, got %s running=%v", c.State(), c.Running())
	}
	if c.BricksRemaining() != 0 {
		t.Errorf("expected 0 bricks, got %d", c.BricksRemaining())
	}
	if len(surface.live) != 0 {
		t.Errorf("surface still has %d bricks", len(surface.live))
	}
	if len(results) != 1 || results[0].Outcome != StateWon || results[0].BricksCleared != 60 {
		t.Errorf("expected a single won result with 60 cleared, got %+v", results)
	}
	if surface.balls != 0 || surface.paddles != 0 {
		t.Errorf("ball and paddle should be despawned, got %d/%d", surface.balls, surface.paddles)
	}
	if len(surface.labels) != 1 || surface.labels[0] != WonLabel {
		t.Errorf("expected %q label, got %v", WonLabel, surface.labels)
	}
	if len(surface.buttons) != 1 || surface.buttons[0] != PlayAgainButton {
		t.Errorf("expected %q button, got %v", PlayAgainButton, surface.buttons)
	}
}

func TestBrickHitAnyOrderWithDuplicatesWinsOnce(t *testing.T) {
	wins := 0
	c, _ := newTestController(t, WithResultListener(func(r Result) {
		if r.Outcome == StateWon {
			wins++
		}
	}))
	c.StartSession()

	bricks := c.Bricks()
	order := rand.New(rand.NewSource(99)).Perm(len(bricks))
	for _, i := range order {
		id := bricks[i].ID
		c.OnBrickHit(id)
		c.OnBrickHit(id) // duplicate collision notification
	}
	for _, b := range bricks {
		c.OnBrickHit(b.ID)
	}

	if wins != 1 {
		t.Errorf("expected exactly one win, got %d", wins)
	}
	if c.State() != StateWon {
		t.Errorf("expected won, got %s", c.State())
	}
}

func TestBrickHitUnknownIsNoop(t *testing.T) {
	c, surface := newTestController(t)
	c.StartSession()

	id := c.Bricks()[0].ID
	if !c.OnBrickHit(id) {
		t.Fatal("first hit should remove the brick")
	}
	despawns := len(surface.despawned)

	if c.OnBrickHit(id) {
		t.Error("second hit on the same brick should be a no-op")
	}
	if c.OnBrickHit(BrickID(100000)) {
		t.Error("hit on an unknown brick should be a no-op")
	}
	if len(surface.despawned) != despawns {
		t.Error("no-op hits must not despawn anything")
	}
	if c.BricksRemaining() != 59 {
		t.Errorf("expected 59 bricks, got %d", c.BricksRemaining())
	}
}

func TestBrickHitBeforeStartIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	if c.OnBrickHit(BrickID(1)) {
		t.Error("hit before start should be ignored")
	}
	if c.State() != StateIdle {
		t.Errorf("expected idle, got %s", c.State())
	}
}

func TestTickMovesPaddle(t *testing.T) {
	c, surface := newTestController(t)
	c.StartSession()

	c.OnTick(123, 300)
	c.OnTick(456, 300)

	if len(surface.paddleX) != 2 || surface.paddleX[0] != 123 || surface.paddleX[1] != 456 {
		t.Errorf("paddle should follow pointer, got %v", surface.paddleX)
	}
	if c.Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", c.Ticks())
	}
}

func TestTickWithinBoundsNeverTransitions(t *testing.T) {
	c, _ := newTestController(t)
	c.StartSession()

	for _, y := range []int{-50, 0, 300, 600, 650, 700} {
		c.OnTick(400, y)
		if c.State() != StateRunning {
			t.Fatalf("ballY=%d should not end the session, got %s", y, c.State())
		}
	}
}

func TestTickPastLossLineLosesOnce(t *testing.T) {
	losses := 0
	c, surface := newTestController(t, WithResultListener(func(r Result) {
		if r.Outcome == StateLost {
			losses++
		}
	}))
	c.StartSession()
	c.OnBrickHit(c.Bricks()[0].ID)

	c.OnTick(400, 701)
	if c.State() != StateLost || c.Running() {
		t.Fatalf("expected lost and stopped, got %s", c.State())
	}

	moves := len(surface.paddleX)
	c.OnTick(200, 900)
	c.OnTick(200, 900)

	if losses != 1 {
		t.Errorf("expected exactly one loss, got %d", losses)
	}
	if len(surface.paddleX) != moves {
		t.Error("ticks after loss must not move the paddle")
	}
	if len(surface.labels) != 1 || surface.labels[0] != LostLabel {
		t.Errorf("expected %q label, got %v", LostLabel, surface.labels)
	}
	if surface.balls != 0 || surface.paddles != 0 {
		t.Errorf("ball and paddle should be despawned, got %d/%d", surface.balls, surface.paddles)
	}
	if c.OnBrickHit(c.Bricks()[0].ID) {
		t.Error("hits after loss must be ignored")
	}
}

func TestLossLineUsesLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.TableHeight = 200
	layout.LossMargin = 10
	c, _ := newTestController(t, WithLayout(layout))
	c.StartSession()

	c.OnTick(0, 210)
	if c.State() != StateRunning {
		t.Fatal("ballY equal to the loss line should not lose")
	}
	c.OnTick(0, 211)
	if c.State() != StateLost {
		t.Fatal("ballY past the loss line should lose")
	}
}

func TestReplayAfterWinAndLoss(t *testing.T) {
	tests := []struct {
		name string
		end  func(c *Controller)
	}{
		{"after win", func(c *Controller) {
			for _, b := range c.Bricks() {
				c.OnBrickHit(b.ID)
			}
		}},
		{"after loss", func(c *Controller) {
			c.OnBrickHit(c.Bricks()[3].ID)
			c.OnTick(400, 10000)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, surface := newTestController(t)
			c.StartSession()
			tc.end(c)

			if surface.onActivate == nil {
				t.Fatal("a play again trigger should be shown")
			}
			surface.onActivate()

			if c.State() != StateRunning || !c.Running() {
				t.Fatalf("expected running after replay, got %s", c.State())
			}
			if c.BricksRemaining() != 60 || len(surface.live) != 60 {
				t.Errorf("expected fresh 60-brick grid, got controller=%d surface=%d",
					c.BricksRemaining(), len(surface.live))
			}
			if surface.balls != 1 || surface.paddles != 1 {
				t.Errorf("expected one ball and paddle, got %d/%d", surface.balls, surface.paddles)
			}
			if len(surface.labels) != 0 || len(surface.buttons) != 0 {
				t.Errorf("labels should be cleared, got %v %v", surface.labels, surface.buttons)
			}
			if c.Ticks() != 0 {
				t.Errorf("ticks should reset, got %d", c.Ticks())
			}
		})
	}
}

func TestReplayWhileRunningIsNoop(t *testing.T) {
	c, surface := newTestController(t)
	c.StartSession()
	c.OnBrickHit(c.Bricks()[0].ID)

	c.Replay()

	if c.BricksRemaining() != 59 {
		t.Errorf("replay during play must not reset, got %d bricks", c.BricksRemaining())
	}
	if surface.clears != 0 {
		t.Error("replay during play must not clear labels")
	}
}

func TestStartSessionWhileRunningResets(t *testing.T) {
	c, surface := newTestController(t)
	c.StartSession()
	c.OnBrickHit(c.Bricks()[0].ID)

	c.StartSession()

	if c.BricksRemaining() != 60 || len(surface.live) != 60 {
		t.Errorf("restart should respawn a full grid, got %d/%d", c.BricksRemaining(), len(surface.live))
	}
	if surface.balls != 1 || surface.paddles != 1 {
		t.Errorf("restart must not leak actors, got %d/%d", surface.balls, surface.paddles)
	}
}

func TestVariantIndexRoundTrip(t *testing.T) {
	names := map[string]bool{}
	for i := 0; i < VariantCount; i++ {
		v := VariantByIndex(i)
		if v.Index() != i {
			t.Errorf("VariantByIndex(%d).Index() = %d", i, v.Index())
		}
		names[v.String()] = true
	}
	if len(names) != 12 {
		t.Errorf("expected 12 distinct variant names, got %d", len(names))
	}
	if VariantByIndex(0).String() != "red1" || VariantByIndex(11).String() != "yellow2" {
		t.Errorf("unexpected variant order: %s..%s", VariantByIndex(0), VariantByIndex(11))
	}
}

func TestSimpleRNGBounds(t *testing.T) {
	r := NewSimpleRNG(0)
	counts := make([]int, VariantCount)
	for i := 0; i < 12000; i++ {
		n := r.Intn(VariantCount)
		if n < 0 || n >= VariantCount {
			t.Fatalf("Intn out of range: %d", n)
		}
		counts[n]++
	}
	for i, n := range counts {
		if n == 0 {
			t.Errorf("variant %d never drawn", i)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}
