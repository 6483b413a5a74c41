package sampler

import (
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
)

// Reading is a value read from a counter source together with the reason it
// is degraded, if it is.
type Reading[T any] struct {
	Value T
	Err   error
}

// OK reports whether the reading succeeded.
func (r Reading[T]) OK() bool {
	return r.Err == nil
}

// FilesystemReading is the extent of one tracked mount path.
type FilesystemReading struct {
	Path string
	Reading[counters.Extent]
}

// Snapshot is every counter read at one sampling instant.
type Snapshot struct {
	Taken time.Time

	// CPU always has one slot per core. Slots the stat source did not
	// supply this time are carried over from the previous snapshot and
	// flagged in Carried.
	CPU     Reading[*counters.CPUSet]
	Carried []bool

	Memory      Reading[counters.Extent]
	Filesystems []FilesystemReading
	Network     Reading[counters.Traffic]
}
