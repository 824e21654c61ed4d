package engine

import (
	"math/rand"
	"time"
)

// SnakeCapacity is the fixed size of the snake array. A snake's id is its
// index into this array and is stable for the array's whole lifetime.
const SnakeCapacity = 1024

// placementAttempts bounds how many random positions findEmptyPoint tries
// (for Random's snake and apple placement) before giving up.
const placementAttempts = 1000

// GameState owns every snake, apple, and the grid. It is constructed once
// and is never shared mutably across threads — only the SPSC queue crosses
// the producer/consumer boundary (see package queue).
//
// snakes is a fixed array of values, not pointers: an id that has never
// been spawned is simply a zero-value Snake (alive == false), so the tick
// engine's per-snake scan never has to guard against a nil entry, and the
// whole array sits in one contiguous block for the linear walk in Phase 2.
//
// rng is owned by the GameState rather than drawn from the math/rand
// global source: apple respawn and random placement both consume it, and a
// GameState built with an explicit seed must replay the exact same draws
// as any other GameState built with that seed, no matter what other RNG
// consumers exist elsewhere in the process.
type GameState struct {
	snakes      [SnakeCapacity]Snake
	appleCount  int
	grid        *Grid
	movementBuf *tickScratch
	rng         *rand.Rand
}

// New returns an empty world: no snakes, no apples, an all-Empty grid,
// seeded from the current time.
func New() *GameState {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded is like New but seeds the world's RNG explicitly, so that two
// GameStates built with the same seed and driven with the same Tick inputs
// reach identical final states.
func NewSeeded(seed int64) *GameState {
	return &GameState{
		grid:        NewGrid(),
		movementBuf: newTickScratch(),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Random returns a fully populated world, seeded from the current time:
// SnakeCapacity snakes (length 4 at birth — one starting segment plus 3
// growth steps) and AppleCapacity apples, placed uniformly at random with
// rejection on any non-Empty cell. An entity that can't find a free cell
// within placementAttempts tries falls back to a fixed spot (the snake
// fallback is (0,0); an apple that can't be placed is simply dropped,
// shrinking the steady-state count).
func Random() *GameState {
	return RandomSeeded(time.Now().UnixNano())
}

// RandomSeeded is like Random but with an explicit RNG seed, for
// reproducible world generation.
func RandomSeeded(seed int64) *GameState {
	gs := NewSeeded(seed)

	for id := uint32(0); id < SnakeCapacity; id++ {
		start, ok := gs.findEmptyPoint()
		if !ok {
			start = Point{X: 0, Y: 0}
		}
		dir := Direction(gs.rng.Intn(4))
		gs.SpawnSnake(id, start, dir)
		for i := 0; i < 3; i++ {
			gs.GrowSnake(id)
		}
	}

	for i := 0; i < AppleCapacity; i++ {
		gs.spawnRandomApple()
	}

	return gs
}

// SpawnSnake places a fresh length-1 snake at id, heading dir, starting at
// start. Callers (Random, and package worldgen's generators) are
// responsible for ensuring start is an Empty cell; SpawnSnake marks it
// Snake unconditionally. It returns a pointer into GameState's array.
func (gs *GameState) SpawnSnake(id uint32, start Point, dir Direction) *Snake {
	gs.snakes[id] = newSnake(id, start, dir)
	gs.grid.Set(start, SnakeCell)
	return &gs.snakes[id]
}

// GrowSnake appends one segment to the snake at id (at its current tail
// position) and marks that cell Snake on the grid. Used during world
// generation to bring a freshly spawned snake up to its starting length —
// distinct from the tick engine's Advance, which grows by moving forward.
func (gs *GameState) GrowSnake(id uint32) {
	s := &gs.snakes[id]
	s.grow()
	tail, ok := s.TailPosition()
	if ok {
		gs.grid.Set(tail, SnakeCell)
	}
}

// findEmptyPoint tries placementAttempts uniformly random positions and
// returns the first that lands on an Empty cell.
func (gs *GameState) findEmptyPoint() (Point, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		p := Point{X: uint16(gs.rng.Intn(GridWidth)), Y: uint16(gs.rng.Intn(GridHeight))}
		if gs.grid.Get(p) == Empty {
			return p, true
		}
	}
	return Point{}, false
}

// spawnRandomApple places one apple at a uniformly random Empty cell,
// dropping it silently if none is found within placementAttempts tries.
func (gs *GameState) spawnRandomApple() {
	if gs.appleCount >= AppleCapacity {
		return
	}
	p, ok := gs.findEmptyPoint()
	if !ok {
		return
	}
	gs.grid.Set(p, AppleCell)
	gs.appleCount++
}

// AddApple places a at its exact Position. It is a no-op if that cell is
// not Empty or if the world is already at AppleCapacity.
func (gs *GameState) AddApple(a Apple) {
	if gs.appleCount >= AppleCapacity {
		return
	}
	if gs.grid.Get(a.Position) != Empty {
		return
	}
	gs.grid.Set(a.Position, AppleCell)
	gs.appleCount++
}

// Snake returns a pointer to the snake at id, or nil if id is out of range.
// The tick hot path never calls this — see tick.go — it is for callers
// (tests, benchmarks, generators) that need direct access by id.
func (gs *GameState) Snake(id uint32) *Snake {
	if id >= SnakeCapacity {
		return nil
	}
	return &gs.snakes[id]
}

// Grid exposes the occupancy map for read-only inspection (tests,
// renderers, benchmarks).
func (gs *GameState) Grid() *Grid { return gs.grid }

// AppleCount returns the number of apples the world is currently tracking.
func (gs *GameState) AppleCount() int { return gs.appleCount }
