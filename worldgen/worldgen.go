// Package worldgen builds GameState instances for benchmarking and
// testing: a deterministic layout generator, a thin wrapper over
// engine.Random, an outcome-scripted generator for exercising specific
// tick behaviors, and a validator for sanity-checking the result.
package worldgen

import (
	"math"

	"snakecore/engine"
)

// LayoutPattern selects how Deterministic arranges snakes on the grid.
type LayoutPattern int

const (
	Grid LayoutPattern = iota
	Concentric
)

// DeterministicConfig parameterizes Deterministic and
// GeneratePredictableOutcomes.
type DeterministicConfig struct {
	Seed                int64
	LayoutPattern       LayoutPattern
	InitialSnakeLength  int
}

// DefaultConfig mirrors the reference generator's defaults: a fixed seed
// for reproducibility, grid layout, length-3 snakes.
func DefaultConfig() DeterministicConfig {
	return DeterministicConfig{
		Seed:               42,
		LayoutPattern:      Grid,
		InitialSnakeLength: 3,
	}
}

// Random builds a GameState via engine.Random: SnakeCapacity snakes and
// AppleCapacity apples, placed uniformly at random with rejection.
func Random() *engine.GameState {
	return engine.Random()
}

// Deterministic places numSnakes snakes on a regular grid or concentric
// ring pattern (per cfg.LayoutPattern), each grown to
// cfg.InitialSnakeLength, then scatters apples over an even stride of the
// remaining Empty cells.
func Deterministic(numSnakes int, cfg DeterministicConfig) *engine.GameState {
	gs := engine.NewSeeded(cfg.Seed)

	spacing := snakeSpacing(numSnakes)
	var positions []engine.Point
	switch cfg.LayoutPattern {
	case Concentric:
		positions = concentricPositions(numSnakes)
	default:
		positions = gridPositions(numSnakes, spacing)
	}

	placeSnakes(gs, positions, cfg.InitialSnakeLength)
	placeApplesByStride(gs)
	return gs
}

// GeneratePredictableOutcomes partitions numSnakes into three id-range
// groups: the first 25% are placed in colliding pairs (one moving into the
// other head-on), the next 25% are placed one cell away from an apple
// they're heading toward, and the remaining 50% are placed with wide
// spacing so they survive an empty-input tick.
func GeneratePredictableOutcomes(numSnakes int, cfg DeterministicConfig) *engine.GameState {
	gs := engine.NewSeeded(cfg.Seed)

	deathGroup := numSnakes / 4
	appleGroup := numSnakes / 4
	safeGroup := numSnakes - deathGroup - appleGroup

	var id uint32
	id = placeDeathGroup(gs, id, deathGroup, cfg.InitialSnakeLength)
	id = placeAppleGroup(gs, id, appleGroup, cfg.InitialSnakeLength)
	_ = placeSafeGroup(gs, id, safeGroup, cfg.InitialSnakeLength)

	if gs.AppleCount() < engine.AppleCapacity {
		placeApplesByStride(gs)
	}
	return gs
}

func growTo(gs *engine.GameState, id uint32, length int) {
	for i := 1; i < length; i++ {
		gs.GrowSnake(id)
	}
}

func placeSnakes(gs *engine.GameState, positions []engine.Point, initialLength int) {
	for i, p := range positions {
		id := uint32(i)
		gs.SpawnSnake(id, p, engine.Right)
		growTo(gs, id, initialLength)
	}
}

// placeDeathGroup places pairs of snakes two cells apart, heading at each
// other, so their next-head targets coincide on the very first tick with no
// input — the earlier-id snake of the pair commits first and survives, the
// later one dies.
func placeDeathGroup(gs *engine.GameState, startID uint32, n, initialLength int) uint32 {
	const (
		startX = 100
		startY = 100
	)
	id := startID
	for i := 0; i < n; i++ {
		var p engine.Point
		var dir engine.Direction
		if i%2 == 0 {
			p = engine.Point{X: startX, Y: uint16(startY + (i/2)*10)}
			dir = engine.Right
		} else {
			p = engine.Point{X: startX + 2, Y: uint16(startY + (i/2)*10)}
			dir = engine.Left
		}
		gs.SpawnSnake(id, p, dir)
		growTo(gs, id, initialLength)
		id++
	}
	return id
}

// placeAppleGroup places one apple per snake in this group (at most
// AppleCapacity apples) and each such snake one cell west of its apple,
// heading east, so it eats on the next empty-input tick. Snakes beyond
// AppleCapacity get no apple and are placed 5 cells east of a lattice spot.
func placeAppleGroup(gs *engine.GameState, startID uint32, n, initialLength int) uint32 {
	const (
		startX = 200
		startY = 100
	)
	id := startID
	toPlace := n
	if toPlace > engine.AppleCapacity {
		toPlace = engine.AppleCapacity
	}

	applePositions := make([]engine.Point, 0, toPlace)
	for i := 0; i < toPlace; i++ {
		p := engine.Point{
			X: uint16(startX + (i%10)*20),
			Y: uint16(startY + (i/10)*20),
		}
		gs.AddApple(engine.Apple{Position: p})
		applePositions = append(applePositions, p)
	}

	for i := 0; i < n; i++ {
		var snakeX uint16
		snakeY := uint16(startY + (i/10)*20)
		if i < len(applePositions) {
			snakeX = applePositions[i].X - 1
		} else {
			snakeX = uint16(startX+(i%10)*20) + 5
		}
		gs.SpawnSnake(id, engine.Point{X: snakeX, Y: snakeY}, engine.Right)
		growTo(gs, id, initialLength)
		id++
	}
	return id
}

// placeSafeGroup places snakes on a wide 50-cell stride far from the other
// groups, so neither collision nor consumption is reachable in one tick.
func placeSafeGroup(gs *engine.GameState, startID uint32, n, initialLength int) uint32 {
	const (
		startX = 500
		startY = 100
	)
	id := startID
	for i := 0; i < n; i++ {
		p := engine.Point{
			X: uint16(startX + (i%20)*50),
			Y: uint16(startY + (i/20)*50),
		}
		gs.SpawnSnake(id, p, engine.Right)
		growTo(gs, id, initialLength)
		id++
	}
	return id
}

func snakeSpacing(numSnakes int) int {
	totalCells := engine.GridWidth * engine.GridHeight
	availableCells := totalCells / 2
	spacing := int(math.Sqrt(float64(availableCells) / float64(numSnakes)))
	if spacing < 2 {
		return 2
	}
	return spacing
}

func gridPositions(numSnakes, spacing int) []engine.Point {
	// Each axis holds (extent-spacing-1)/spacing lattice points inside the
	// margins; tighten the spacing until the lattice has room for every snake.
	for spacing > 2 && ((engine.GridWidth-spacing-1)/spacing)*((engine.GridHeight-spacing-1)/spacing) < numSnakes {
		spacing--
	}
	positions := make([]engine.Point, 0, numSnakes)
	x, y := spacing, spacing
	for i := 0; i < numSnakes; i++ {
		if x >= engine.GridWidth-spacing {
			x = spacing
			y += spacing
		}
		if y >= engine.GridHeight-spacing {
			break
		}
		positions = append(positions, engine.Point{X: uint16(x), Y: uint16(y)})
		x += spacing
	}
	return positions
}

func concentricPositions(numSnakes int) []engine.Point {
	positions := make([]engine.Point, 0, numSnakes)
	centerX, centerY := engine.GridWidth/2, engine.GridHeight/2
	radius := 2.0
	angleStep := 2 * math.Pi / float64(numSnakes)

	for i := 0; i < numSnakes; i++ {
		angle := float64(i) * angleStep
		x := centerX + int(radius*math.Cos(angle))
		y := centerY + int(radius*math.Sin(angle))
		if x >= 0 && x < engine.GridWidth && y >= 0 && y < engine.GridHeight {
			positions = append(positions, engine.Point{X: uint16(x), Y: uint16(y)})
			continue
		}
		radius += 2
		x = centerX + int(radius*math.Cos(angle))
		y = centerY + int(radius*math.Sin(angle))
		if x >= 0 && x < engine.GridWidth && y >= 0 && y < engine.GridHeight {
			positions = append(positions, engine.Point{X: uint16(x), Y: uint16(y)})
		}
	}
	return positions
}

// placeApplesByStride scatters apples over Empty cells at an even stride,
// falling back to a finer stride if the coarse pass under-shoots the
// target count. The stride itself is deterministic (not randomized), so
// this needs no RNG input.
func placeApplesByStride(gs *engine.GameState) {
	target := engine.AppleCapacity - gs.AppleCount()
	if target <= 0 {
		return
	}

	tryStride := func(stride int) {
		count := 0
		for y := 0; y < engine.GridHeight && gs.AppleCount() < engine.AppleCapacity; y++ {
			for x := 0; x < engine.GridWidth && gs.AppleCount() < engine.AppleCapacity; x++ {
				p := engine.Point{X: uint16(x), Y: uint16(y)}
				if gs.Grid().Get(p) != engine.Empty {
					continue
				}
				if count%stride == 0 {
					gs.AddApple(engine.Apple{Position: p})
				}
				count++
			}
		}
	}

	tryStride(1000)
	if gs.AppleCount() < engine.AppleCapacity {
		tryStride(500)
	}
}

// Validate sanity-checks a generated world: exactly expectedSnakes alive
// snakes, no two heads closer than 2 cells to each other (Manhattan
// distance), and an apple count in [1, AppleCapacity].
func Validate(gs *engine.GameState, expectedSnakes int) bool {
	var heads []engine.Point
	for id := uint32(0); id < engine.SnakeCapacity; id++ {
		if s := gs.Snake(id); s.Alive() {
			heads = append(heads, s.Head())
		}
	}
	if len(heads) != expectedSnakes {
		return false
	}

	for i := 0; i < len(heads); i++ {
		for j := i + 1; j < len(heads); j++ {
			if manhattanDistance(heads[i], heads[j]) < 2 {
				return false
			}
		}
	}

	apples := gs.AppleCount()
	return apples >= 1 && apples <= engine.AppleCapacity
}

func manhattanDistance(a, b engine.Point) int {
	dx := int(a.X) - int(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int(a.Y) - int(b.Y)
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
