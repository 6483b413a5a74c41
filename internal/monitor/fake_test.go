package monitor

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/hibou/internal/counters"
	"github.com/rileyhilliard/hibou/internal/sampler"
	"github.com/stretchr/testify/require"
)

func init() {
	// Plain output keeps assertions independent of the test terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// stubReader reports two cores whose counters advance by a fixed step on
// every read, so every frame after the first has known usage.
type stubReader struct {
	reads uint64
}

func (r *stubReader) CoreCount() (int, error) { return 2, nil }

func (r *stubReader) CPU(set *counters.CPUSet) (counters.ParseStats, error) {
	r.reads++
	for i := 0; i < set.Len(); i++ {
		_ = set.Set(i, counters.CPUCounters{User: 30 * r.reads, Idle: 70 * r.reads})
	}
	return counters.ParseStats{Parsed: set.Len()}, nil
}

func (r *stubReader) Memory() (counters.Extent, error) {
	return counters.Extent{Total: 1000, Free: 250, Unit: counters.UnitKiB}, nil
}

func (r *stubReader) Filesystem(string) (counters.Extent, error) {
	return counters.Extent{Total: 100, Free: 40, Unit: counters.UnitBytes}, nil
}

func (r *stubReader) Network() (counters.Traffic, error) {
	return counters.Traffic{RxBytes: 1000 * r.reads, TxBytes: 500 * r.reads}, nil
}

func newRunningSampler(t *testing.T) *sampler.Sampler {
	t.Helper()
	s := sampler.New(&stubReader{}, sampler.Options{Filesystems: []string{"/"}}, nil)
	require.NoError(t, s.Init())
	return s
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	info := HostInfo{
		Hostname:        "owl",
		Platform:        "debian",
		PlatformVersion: "12",
		KernelVersion:   "6.1.0",
		BootTime:        now.Add(-26 * time.Hour),
	}
	return NewModel(newRunningSampler(t), time.Second/6, info, Options{
		Clock: func() time.Time { return now },
	})
}
