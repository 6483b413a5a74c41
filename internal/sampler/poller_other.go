//go:build !linux

package sampler

import (
	"fmt"
	"runtime"
	"time"
)

// StdinPoller is only implemented on Linux.
type StdinPoller struct{}

// NewStdinPoller reports that keyboard polling is unsupported here.
func NewStdinPoller() (*StdinPoller, error) {
	return nil, fmt.Errorf("keyboard polling is not supported on %s", runtime.GOOS)
}

// Poll never reports a key.
func (p *StdinPoller) Poll(timeout time.Duration) (byte, bool, error) {
	time.Sleep(timeout)
	return 0, false, nil
}

// Close is a no-op.
func (p *StdinPoller) Close() error { return nil }
