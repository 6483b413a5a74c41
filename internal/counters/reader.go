package counters

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/hibou/internal/logger"
)

// Default locations of the Linux counter sources.
const (
	DefaultPresentPath = "/sys/devices/system/cpu/present"
	DefaultStatPath    = "/proc/stat"
	DefaultMeminfoPath = "/proc/meminfo"
	DefaultNetDevPath  = "/proc/net/dev"
)

// Paths locates the text sources a FileReader opens.
type Paths struct {
	Present string
	Stat    string
	Meminfo string
	NetDev  string
}

// DefaultPaths returns the well-known procfs and sysfs locations.
func DefaultPaths() Paths {
	return Paths{
		Present: DefaultPresentPath,
		Stat:    DefaultStatPath,
		Meminfo: DefaultMeminfoPath,
		NetDev:  DefaultNetDevPath,
	}
}

// Reader produces raw counter values. Implementations hold no mutable state
// between calls, so every call reflects the source at that instant.
type Reader interface {
	CoreCount() (int, error)
	CPU(set *CPUSet) (ParseStats, error)
	Memory() (Extent, error)
	Filesystem(path string) (Extent, error)
	Network() (Traffic, error)
}

// FileReader reads counters from files on the local host.
type FileReader struct {
	paths  Paths
	filter InterfaceFilter
	log    logger.Logger
}

// NewFileReader creates a reader for the given source paths. Empty paths
// fall back to the defaults; a nil filter counts every interface.
func NewFileReader(paths Paths, filter InterfaceFilter, log logger.Logger) *FileReader {
	def := DefaultPaths()
	if paths.Present == "" {
		paths.Present = def.Present
	}
	if paths.Stat == "" {
		paths.Stat = def.Stat
	}
	if paths.Meminfo == "" {
		paths.Meminfo = def.Meminfo
	}
	if paths.NetDev == "" {
		paths.NetDev = def.NetDev
	}
	if filter == nil {
		filter = AllInterfaces
	}
	if log == nil {
		log = logger.Noop()
	}
	return &FileReader{paths: paths, filter: filter, log: log}
}

// Paths returns the source locations this reader opens.
func (r *FileReader) Paths() Paths {
	return r.paths
}

// CoreCount reads the present-cores descriptor.
func (r *FileReader) CoreCount() (int, error) {
	data, err := os.ReadFile(r.paths.Present)
	if err != nil {
		return 0, sourceError(r.paths.Present, err)
	}
	n, err := ParseCoreRange(string(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.paths.Present, err)
	}
	return n, nil
}

// CPU fills set from the stat source.
func (r *FileReader) CPU(set *CPUSet) (ParseStats, error) {
	var stats ParseStats
	err := r.withSource(r.paths.Stat, func(src io.Reader) error {
		var perr error
		stats, perr = ParseCPUStat(src, set)
		return perr
	})
	if stats.Skipped > 0 {
		r.log.Debug("%s: skipped %d malformed core lines", r.paths.Stat, stats.Skipped)
	}
	return stats, err
}

// Memory reads total and free memory in kB.
func (r *FileReader) Memory() (Extent, error) {
	ext := Extent{Unit: UnitKiB}
	err := r.withSource(r.paths.Meminfo, func(src io.Reader) error {
		var perr error
		ext, perr = ParseMeminfo(src)
		return perr
	})
	return ext, err
}

// Network sums interface byte counters from the net/dev source.
func (r *FileReader) Network() (Traffic, error) {
	var traffic Traffic
	err := r.withSource(r.paths.NetDev, func(src io.Reader) error {
		var (
			stats ParseStats
			perr  error
		)
		traffic, stats, perr = ParseNetDev(src, r.filter)
		if stats.Skipped > 0 {
			r.log.Debug("%s: skipped %d malformed interface lines", r.paths.NetDev, stats.Skipped)
		}
		return perr
	})
	return traffic, err
}

// Filesystem queries capacity of the filesystem mounted at path, in bytes.
// Failures are logged and reported as a zero Extent with an error.
func (r *FileReader) Filesystem(path string) (Extent, error) {
	ext, err := statFilesystem(path)
	if err != nil {
		r.log.Warn("statfs %s failed: %v", path, err)
		return Extent{Unit: UnitBytes}, fmt.Errorf("%w: statfs %s: %w", ErrSourceUnavailable, path, err)
	}
	return ext, nil
}

// withSource opens path, hands it to parse, and closes it.
func (r *FileReader) withSource(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return sourceError(path, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func sourceError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
}
