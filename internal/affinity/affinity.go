// Package affinity pins the calling OS thread to a single CPU core, which
// keeps the producer and consumer threads off each other's cache lines.
// It uses the Linux scheduler syscalls golang.org/x/sys/unix exposes
// rather than a cgo binding.
package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin restricts the calling OS thread's scheduling affinity to exactly
// core. The caller must have
// already called runtime.LockOSThread, or must call it immediately after
// Pin returns with no error — Pin does not call it itself, since the
// lock/unlock pairing is the caller's to own.
func Pin(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin to core %d: %w", core, err)
	}
	return nil
}

// RequireCores returns an error if the host does not expose at least n
// logical CPUs. Both the producer and the consumer need a dedicated core,
// so the benchmark harness treats fewer than 2 as fatal.
func RequireCores(n int) error {
	if got := runtime.NumCPU(); got < n {
		return fmt.Errorf("affinity: need at least %d cores, host has %d", n, got)
	}
	return nil
}
