package engine

// AppleCapacity is the target steady-state apple count.
const AppleCapacity = 128

// RespawnAttempts is the number of random placements tried before a
// consumed apple's respawn is silently abandoned.
const RespawnAttempts = 100

// Apple is a passive position marker. It is never moved; it only appears,
// gets consumed, and (usually) reappears elsewhere.
type Apple struct {
	Position Point
}
