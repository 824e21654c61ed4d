package engine

// NumBuckets and BucketBits implement the spatial bucketing scheme used to
// keep the per-tick movement pass cache-friendly: a record's bucket is the
// top BucketBits bits of its new head's y coordinate, taken out of the
// full 16-bit coordinate space rather than out of the grid's actual
// height — `y >> (16 - BucketBits)`. For a 4000-row grid that only ever
// populates the low ~16 of the 256 preallocated buckets, but the bucketing
// rule itself is kept literal rather than re-tuned to the grid's actual
// extent.
const (
	BucketBits = 8
	NumBuckets = 1 << BucketBits
)

func bucketOf(p Point) int {
	return int(p.Y) >> (16 - BucketBits)
}

// movementRecord is one snake's collected intent for this tick: its id and
// the head position it wants to occupy next. The cell at that position is
// read live in the combined read-decide-write pass below, so there's no
// need to carry a separate "cell at new head" field between passes.
type movementRecord struct {
	snakeID uint32
	newHead Point
}

// tickScratch holds the bucket arrays the tick engine reuses every call.
// Buckets are "cleared" by resetting length to zero; backing capacity is
// retained so a steady-state tick performs no allocation.
type tickScratch struct {
	moveBuckets [NumBuckets][]movementRecord
	tailBuckets [NumBuckets][]Point
}

// bucketInitialCapacity over-provisions for the expected snakes-per-bucket
// (SnakeCapacity / NumBuckets) by 50%, trading a little extra memory for
// headroom against an uneven snake distribution across buckets.
const bucketInitialCapacity = (SnakeCapacity/NumBuckets + 1) * 3 / 2

func newTickScratch() *tickScratch {
	ts := &tickScratch{}
	for i := range ts.moveBuckets {
		ts.moveBuckets[i] = make([]movementRecord, 0, bucketInitialCapacity)
		ts.tailBuckets[i] = make([]Point, 0, bucketInitialCapacity)
	}
	return ts
}

func (ts *tickScratch) reset() {
	for i := range ts.moveBuckets {
		ts.moveBuckets[i] = ts.moveBuckets[i][:0]
		ts.tailBuckets[i] = ts.tailBuckets[i][:0]
	}
}

// Tick advances the world by one step. The phase ordering is the
// correctness contract: input application, then bucketed intent
// collection, then a combined read-decide-write pass over buckets in
// order, then deferred tail clears, then apple respawn.
func (gs *GameState) Tick(inputs []Input) {
	ts := gs.movementBuf
	ts.reset()

	// Phase 1 — input application. No bounds check: the producer is
	// trusted to emit valid ids. Dead snakes are updated unconditionally;
	// branching on alive here would cost a mispredict for no benefit,
	// since ChangeDirection on a dead snake is harmless.
	for _, in := range inputs {
		gs.snakes[in.SnakeID].ChangeDirection(in.Direction)
	}

	// Phase 2 — intent collection with spatial bucketing.
	for i := range gs.snakes {
		s := &gs.snakes[i]
		if !s.alive {
			continue
		}
		newHead := s.CalculateNewHead()
		b := bucketOf(newHead)
		ts.moveBuckets[b] = append(ts.moveBuckets[b], movementRecord{snakeID: s.id, newHead: newHead})
	}

	// Phase 3/4/5 — combined read-decide-write pass, bucket order then
	// insertion order. A record's grid write happens before the next
	// record in the same bucket is read, so a later record aimed at a cell
	// just claimed by an earlier one sees Snake and dies — no extra
	// "previously committed head" state is needed to get that tiebreak
	// between two snakes racing for the same cell.
	consumedApples := 0
	for b := 0; b < NumBuckets; b++ {
		for _, rec := range ts.moveBuckets[b] {
			s := &gs.snakes[rec.snakeID]
			cell := gs.grid.Get(rec.newHead)
			if cell == SnakeCell {
				s.MarkDead()
				continue
			}
			willGrow := cell == AppleCell
			if willGrow {
				consumedApples++
				gs.appleCount--
			}
			gs.grid.Set(rec.newHead, SnakeCell)
			if !willGrow {
				if tail, ok := s.TailPosition(); ok {
					tb := bucketOf(tail)
					ts.tailBuckets[tb] = append(ts.tailBuckets[tb], tail)
				}
			}
			s.Advance(willGrow)
		}
	}

	// Phase 6 — deferred tail clearing. Must happen after every head has
	// been committed this tick: a tail vacated in-line, before all heads
	// land, could be overwritten by this same loop's own stale read for a
	// follower snake whose correct target is exactly that cell.
	for b := 0; b < NumBuckets; b++ {
		for _, tail := range ts.tailBuckets[b] {
			gs.grid.Set(tail, Empty)
		}
	}

	// Phase 7 — apple respawn.
	for i := 0; i < consumedApples; i++ {
		gs.respawnApple()
	}
}

// respawnApple tries RespawnAttempts random Empty cells and commits the
// first hit. A respawn that exhausts its attempts, or that would exceed
// AppleCapacity, is silently abandoned.
func (gs *GameState) respawnApple() {
	if gs.appleCount >= AppleCapacity {
		return
	}
	for attempt := 0; attempt < RespawnAttempts; attempt++ {
		p := Point{X: uint16(gs.rng.Intn(GridWidth)), Y: uint16(gs.rng.Intn(GridHeight))}
		if gs.grid.Get(p) == Empty {
			gs.grid.Set(p, AppleCell)
			gs.appleCount++
			return
		}
	}
}
