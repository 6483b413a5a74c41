//go:build linux

package counters

import "golang.org/x/sys/unix"

// statFilesystem returns total and free bytes for the filesystem at path.
// Sizes use the fragment size, as statvfs(3) does.
func statFilesystem(path string) (Extent, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Extent{Unit: UnitBytes}, err
	}

	blockSize := uint64(st.Frsize)
	if blockSize == 0 {
		blockSize = uint64(st.Bsize)
	}

	return Extent{
		Total: st.Blocks * blockSize,
		Free:  st.Bfree * blockSize,
		Unit:  UnitBytes,
	}, nil
}
