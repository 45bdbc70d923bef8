package flappy

import (
	"math/rand"

	"github.com/vovakirdan/framehost/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the player to pass through.
type Pipe struct {
	X         int  // Horizontal position (left edge)
	GapY      int  // Y position where gap starts (top of gap)
	GapHeight int  // Height of the passable gap
	Passed    bool // Whether the player has passed this pipe (for scoring)
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect() core.Rect {
	return core.NewRect(p.X, 0, PipeWidth, p.GapY)
}

// BottomRect returns the collision rectangle for the bottom portion of the pipe.
func (p Pipe) BottomRect(groundY int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.X, bottomY, PipeWidth, groundY-bottomY)
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes   []Pipe
	rng     *rand.Rand
	width   int
	groundY int
}

// NewPipeManager creates a pipe manager for a playfield of the given width
// whose ground starts at groundY.
func NewPipeManager(seed int64, width, groundY int) *PipeManager {
	pm := &PipeManager{
		pipes:   make([]Pipe, 0, 8),
		width:   width,
		groundY: groundY,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// Update moves pipes left by speed pixels and spawns new ones as needed.
// Returns the number of pipes the player passed this step.
func (pm *PipeManager) Update(playerX, speed, spacing int) int {
	passed := 0

	for i := range pm.pipes {
		pm.pipes[i].X -= speed
		if !pm.pipes[i].Passed && pm.pipes[i].X+PipeWidth < playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	// Drop pipes that left the screen
	visible := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+PipeWidth > 0 {
			visible = append(visible, p)
		}
	}
	pm.pipes = visible

	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X < pm.width-spacing {
		pm.spawn()
	}

	return passed
}

// spawn adds a pipe at the right edge with a random gap.
func (pm *PipeManager) spawn() {
	gapHeight := MinGap + pm.rng.Intn(MaxGap-MinGap+1)

	minGapY := GapMargin
	maxGapY := pm.groundY - GapMargin - gapHeight
	if maxGapY < minGapY {
		maxGapY = minGapY
	}
	gapY := minGapY + pm.rng.Intn(maxGapY-minGapY+1)

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.width,
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current pipes, left to right.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if r collides with any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect(pm.groundY)) {
			return true
		}
	}
	return false
}
