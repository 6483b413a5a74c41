package delta

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUUsagePercent_Example(t *testing.T) {
	prev := counters.CPUCounters{User: 100, System: 50, Idle: 800, IOWait: 10}
	curr := counters.CPUCounters{User: 150, System: 60, Idle: 810, IOWait: 10}

	// total delta 70, idle delta 10
	got := CPUUsagePercent(prev, curr)
	assert.InDelta(t, 100.0*60/70, got, 1e-9)
	assert.InDelta(t, 85.71, got, 0.01)
}

func TestCPUUsagePercent_ZeroDelta(t *testing.T) {
	s := counters.CPUCounters{User: 100, System: 50, Idle: 800}
	assert.True(t, IsUnknown(CPUUsagePercent(s, s)))
}

func TestCPUUsagePercent_Regression(t *testing.T) {
	prev := counters.CPUCounters{User: 500, Idle: 500}
	curr := counters.CPUCounters{User: 10, Idle: 10}
	assert.True(t, IsUnknown(CPUUsagePercent(prev, curr)))
}

func TestCPUUsagePercent_Bounds(t *testing.T) {
	tests := []struct {
		name string
		prev counters.CPUCounters
		curr counters.CPUCounters
		want float64
	}{
		{
			name: "fully idle",
			prev: counters.CPUCounters{Idle: 100},
			curr: counters.CPUCounters{Idle: 200},
			want: 0,
		},
		{
			name: "fully busy",
			prev: counters.CPUCounters{User: 100, Idle: 100},
			curr: counters.CPUCounters{User: 150, System: 50, Idle: 100},
			want: 100,
		},
		{
			name: "idle regressed while total advanced",
			prev: counters.CPUCounters{User: 0, Idle: 100},
			curr: counters.CPUCounters{User: 200, Idle: 50},
			want: 100,
		},
		{
			name: "steal and irq count as busy",
			prev: counters.CPUCounters{Idle: 0},
			curr: counters.CPUCounters{Steal: 10, IRQ: 10, SoftIRQ: 10, Idle: 70},
			want: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CPUUsagePercent(tt.prev, tt.curr)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestCPUUsagePercent_MonotonicIncreasesStayInRange(t *testing.T) {
	base := counters.CPUCounters{User: 1000, Nice: 10, System: 300, Idle: 9000, IOWait: 20, IRQ: 5, SoftIRQ: 7, Steal: 1}
	for step := uint64(1); step < 200; step += 7 {
		curr := base
		curr.User += step * 3
		curr.Idle += step
		curr.SoftIRQ += step % 5
		got := CPUUsagePercent(base, curr)
		require.False(t, IsUnknown(got))
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestCoreUsagePercent(t *testing.T) {
	prev := counters.NewCPUSet(2)
	curr := counters.NewCPUSet(2)
	require.NoError(t, prev.Set(0, counters.CPUCounters{User: 100, System: 50, Idle: 800, IOWait: 10}))
	require.NoError(t, curr.Set(0, counters.CPUCounters{User: 150, System: 60, Idle: 810, IOWait: 10}))
	require.NoError(t, prev.Set(1, counters.CPUCounters{Idle: 10}))

	got, err := CoreUsagePercent(prev, curr, 0)
	require.NoError(t, err)
	assert.InDelta(t, 85.714, got, 0.001)

	got, err = CoreUsagePercent(prev, curr, 1)
	require.NoError(t, err, "unpopulated slot is unknown, not an error")
	assert.True(t, IsUnknown(got))

	for _, core := range []int{-1, 2} {
		got, err = CoreUsagePercent(prev, curr, core)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCore))
		assert.True(t, IsUnknown(got))
	}
}

func TestExtentUsagePercent(t *testing.T) {
	assert.Equal(t, 75.0, ExtentUsagePercent(counters.Extent{Total: 1000, Free: 250}))
	assert.Equal(t, 0.0, ExtentUsagePercent(counters.Extent{Total: 1000, Free: 1000}))
	assert.Equal(t, 100.0, ExtentUsagePercent(counters.Extent{Total: 1000, Free: 0}))
	assert.True(t, IsUnknown(ExtentUsagePercent(counters.Extent{Total: 0, Free: 0})))
	assert.Equal(t, 0.0, ExtentUsagePercent(counters.Extent{Total: 10, Free: 20}), "free is clamped to total")
}

func TestThroughputDelta(t *testing.T) {
	in, out := ThroughputDelta(
		counters.Traffic{RxBytes: 1000, TxBytes: 500},
		counters.Traffic{RxBytes: 4000, TxBytes: 700},
	)
	assert.Equal(t, uint64(3000), in)
	assert.Equal(t, uint64(200), out)
}

func TestThroughputDelta_CounterReset(t *testing.T) {
	prev := counters.Traffic{RxBytes: 5000, TxBytes: 10}
	curr := counters.Traffic{RxBytes: 100, TxBytes: 20}

	in, out := ThroughputDelta(prev, curr)
	assert.Equal(t, uint64(0), in, "reset clamps to zero instead of wrapping")
	assert.Equal(t, uint64(10), out)
	assert.True(t, Regressed(prev, curr))
	assert.False(t, Regressed(curr, curr))
}

func TestBitsPerSecond(t *testing.T) {
	assert.Equal(t, 8000.0, BitsPerSecond(1000, time.Second))
	assert.Equal(t, 16000.0, BitsPerSecond(1000, 500*time.Millisecond))
	assert.True(t, IsUnknown(BitsPerSecond(1000, 0)))
	assert.True(t, IsUnknown(BitsPerSecond(1000, -time.Second)))
}

func TestMegabitsPerSecond(t *testing.T) {
	assert.InDelta(t, 8.0, MegabitsPerSecond(1024*1024, time.Second), 1e-9)
	assert.True(t, math.IsNaN(MegabitsPerSecond(1, 0)))
}
