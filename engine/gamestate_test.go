package engine

import "testing"

func TestNewGameStateIsEmpty(t *testing.T) {
	gs := New()
	if got := gs.AppleCount(); got != 0 {
		t.Fatalf("AppleCount() = %d, want 0", got)
	}
	if s := gs.Snake(0); s.Alive() {
		t.Fatal("unspawned snake 0 should not be alive")
	}
}

func TestSpawnSnakeMarksGridCell(t *testing.T) {
	gs := New()
	gs.SpawnSnake(3, Point{X: 10, Y: 10}, Up)

	if got := gs.Grid().Get(Point{X: 10, Y: 10}); got != SnakeCell {
		t.Fatalf("grid cell at spawn point = %v, want SnakeCell", got)
	}
	s := gs.Snake(3)
	if !s.Alive() {
		t.Fatal("spawned snake should be alive")
	}
	if got := s.ID(); got != 3 {
		t.Fatalf("Snake(3).ID() = %d, want 3", got)
	}
}

func TestGrowSnakeExtendsBodyAndMarksGrid(t *testing.T) {
	gs := New()
	gs.SpawnSnake(0, Point{X: 0, Y: 0}, Right)
	gs.GrowSnake(0)
	gs.GrowSnake(0)

	s := gs.Snake(0)
	if got := s.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := gs.Grid().Get(Point{X: 0, Y: 0}); got != SnakeCell {
		t.Fatalf("grid cell at grown tail = %v, want SnakeCell", got)
	}
}

func TestAddAppleAtExactPosition(t *testing.T) {
	gs := New()
	p := Point{X: 7, Y: 7}
	gs.AddApple(Apple{Position: p})

	if got := gs.Grid().Get(p); got != AppleCell {
		t.Fatalf("grid cell at apple = %v, want AppleCell", got)
	}
	if got := gs.AppleCount(); got != 1 {
		t.Fatalf("AppleCount() = %d, want 1", got)
	}
}

func TestAddAppleNoopOnOccupiedCell(t *testing.T) {
	gs := New()
	p := Point{X: 7, Y: 7}
	gs.SpawnSnake(0, p, Right)
	gs.AddApple(Apple{Position: p})

	if got := gs.AppleCount(); got != 0 {
		t.Fatalf("AppleCount() = %d, want 0 (occupied cell should reject the apple)", got)
	}
}

func TestAddAppleNoopAtCapacity(t *testing.T) {
	gs := New()
	for i := 0; i < AppleCapacity; i++ {
		gs.AddApple(Apple{Position: Point{X: uint16(i), Y: 0}})
	}
	if got := gs.AppleCount(); got != AppleCapacity {
		t.Fatalf("AppleCount() = %d, want %d", got, AppleCapacity)
	}

	gs.AddApple(Apple{Position: Point{X: 0, Y: 1}})
	if got := gs.AppleCount(); got != AppleCapacity {
		t.Fatalf("AppleCount() after over-capacity add = %d, want %d", got, AppleCapacity)
	}
}

func TestSnakeOutOfRangeReturnsNil(t *testing.T) {
	gs := New()
	if got := gs.Snake(SnakeCapacity); got != nil {
		t.Fatalf("Snake(SnakeCapacity) = %v, want nil", got)
	}
}

func TestRandomPopulatesFullCapacity(t *testing.T) {
	gs := Random()

	aliveCount := 0
	for id := uint32(0); id < SnakeCapacity; id++ {
		if gs.Snake(id).Alive() {
			aliveCount++
		}
	}
	if aliveCount != SnakeCapacity {
		t.Fatalf("alive snakes = %d, want %d", aliveCount, SnakeCapacity)
	}
	if got := gs.AppleCount(); got != AppleCapacity {
		t.Fatalf("AppleCount() = %d, want %d", got, AppleCapacity)
	}
}
