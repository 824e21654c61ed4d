package engine

// Grid is a dense GridWidth x GridHeight occupancy map backed by a single
// contiguous row-major buffer rather than a slice of slices. The tick
// engine's hot reads are bucket-sorted by row (see tick.go), so a flat
// buffer keeps horizontally adjacent accesses linear and prefetcher
// friendly — a buffer-of-buffers would scatter each row onto its own
// heap allocation and defeat that locality.
type Grid struct {
	cells []Cell
}

// NewGrid returns an all-Empty grid.
func NewGrid() *Grid {
	return &Grid{cells: make([]Cell, GridWidth*GridHeight)}
}

func index(p Point) int {
	return int(p.Y)*GridWidth + int(p.X)
}

// Get returns the cell at p. p is trusted to be in bounds; no check is
// performed on the hot path.
func (g *Grid) Get(p Point) Cell {
	return g.cells[index(p)]
}

// Set writes the cell at p.
func (g *Grid) Set(p Point, c Cell) {
	g.cells[index(p)] = c
}
