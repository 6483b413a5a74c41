//go:build !linux

package counters

import (
	"fmt"
	"runtime"
)

func statFilesystem(path string) (Extent, error) {
	return Extent{Unit: UnitBytes}, fmt.Errorf("statfs is not supported on %s", runtime.GOOS)
}
