package counters

import "fmt"

// CPUCounters holds the cumulative jiffies of one core since boot, in the
// order the kernel reports them.
type CPUCounters struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Total returns the ticks observed for this core across all modes.
func (c CPUCounters) Total() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal
}

// CPUSet is a fixed-length container of per-core counters indexed by core id.
// Its length is decided once and never changes; slots that were not written
// by a reader are tracked and never reported as data.
type CPUSet struct {
	cores []CPUCounters
	valid []bool
}

// NewCPUSet creates an empty set with room for n cores.
func NewCPUSet(n int) *CPUSet {
	if n < 0 {
		n = 0
	}
	return &CPUSet{
		cores: make([]CPUCounters, n),
		valid: make([]bool, n),
	}
}

// Len returns the number of slots.
func (s *CPUSet) Len() int {
	return len(s.cores)
}

// Set stores counters for core i. Indices outside [0, Len) are rejected.
func (s *CPUSet) Set(i int, c CPUCounters) error {
	if i < 0 || i >= len(s.cores) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrCoreIndex, i, len(s.cores))
	}
	s.cores[i] = c
	s.valid[i] = true
	return nil
}

// Get returns the counters for core i and whether the slot holds data.
func (s *CPUSet) Get(i int) (CPUCounters, bool) {
	if i < 0 || i >= len(s.cores) || !s.valid[i] {
		return CPUCounters{}, false
	}
	return s.cores[i], true
}

// Valid returns how many slots hold data.
func (s *CPUSet) Valid() int {
	n := 0
	for _, ok := range s.valid {
		if ok {
			n++
		}
	}
	return n
}

// Complete reports whether every slot holds data.
func (s *CPUSet) Complete() bool {
	return s.Valid() == len(s.cores)
}

// FillFrom copies counters from other into every slot of s that holds no
// data, and returns how many slots were filled.
func (s *CPUSet) FillFrom(other *CPUSet) int {
	if other == nil {
		return 0
	}
	filled := 0
	for i := range s.cores {
		if s.valid[i] {
			continue
		}
		if c, ok := other.Get(i); ok {
			s.cores[i] = c
			s.valid[i] = true
			filled++
		}
	}
	return filled
}

// Unit identifies how an Extent's values are scaled.
type Unit int

const (
	UnitBytes Unit = iota
	UnitKiB
)

// Extent is a (total, free) capacity pair for memory or a filesystem.
// Total == 0 means the resource could not be read.
type Extent struct {
	Total uint64
	Free  uint64
	Unit  Unit
}

// TotalBytes returns Total scaled to bytes.
func (e Extent) TotalBytes() uint64 {
	if e.Unit == UnitKiB {
		return e.Total * 1024
	}
	return e.Total
}

// FreeBytes returns Free scaled to bytes.
func (e Extent) FreeBytes() uint64 {
	if e.Unit == UnitKiB {
		return e.Free * 1024
	}
	return e.Free
}

// Traffic holds cumulative byte counters summed across interfaces.
type Traffic struct {
	RxBytes uint64
	TxBytes uint64
}

// ParseStats reports how many records a parser stored and how many it dropped.
type ParseStats struct {
	Parsed  int
	Skipped int
}
