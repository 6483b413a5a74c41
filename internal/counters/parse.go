package counters

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// cpuFieldCount is the number of jiffie columns read per core line:
// user nice system idle iowait irq softirq steal.
const cpuFieldCount = 8

// ParseCoreRange parses the present-cores descriptor ("0-7") and returns the
// number of cores it covers. A bare index ("0") describes a single core.
func ParseCoreRange(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, fmt.Errorf("%w: empty core range", ErrParse)
	}

	lowStr, highStr, isRange := strings.Cut(line, "-")
	if !isRange {
		highStr = lowStr
	}

	low, err := strconv.Atoi(lowStr)
	if err != nil || low < 0 {
		return 0, fmt.Errorf("%w: invalid core range %q", ErrParse, line)
	}
	high, err := strconv.Atoi(highStr)
	if err != nil || high < low {
		return 0, fmt.Errorf("%w: invalid core range %q", ErrParse, line)
	}

	return high - low + 1, nil
}

// ParseCPUStat reads per-core counters from /proc/stat content into set.
//
// The first line (the aggregate "cpu" line) is discarded. Up to set.Len()
// following "cpu<N>" lines are read; each is stored at the parsed index N,
// not at its position in the file. Lines with an index outside the set or
// with malformed numbers are skipped and counted in ParseStats.Skipped.
// A partial result is not an error; a stream with no usable core line is.
func ParseCPUStat(r io.Reader, set *CPUSet) (ParseStats, error) {
	var stats ParseStats
	scanner := bufio.NewScanner(r)

	// Aggregate line
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return stats, fmt.Errorf("error scanning stat source: %w", err)
		}
		return stats, fmt.Errorf("%w: empty stat source", ErrParse)
	}

	consumed := 0
	for consumed < set.Len() && scanner.Scan() {
		line := scanner.Text()

		// Per-core lines are contiguous; intr/ctxt/btime follow them.
		if !strings.HasPrefix(line, "cpu") {
			break
		}
		consumed++

		idx, counters, err := parseCoreLine(line)
		if err != nil {
			stats.Skipped++
			continue
		}
		if err := set.Set(idx, counters); err != nil {
			stats.Skipped++
			continue
		}
		stats.Parsed++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("error scanning stat source: %w", err)
	}

	if stats.Parsed == 0 {
		return stats, fmt.Errorf("%w: no per-core lines in stat source", ErrParse)
	}

	return stats, nil
}

// parseCoreLine parses "cpu<N> user nice system idle iowait irq softirq steal ...".
func parseCoreLine(line string) (int, CPUCounters, error) {
	fields := strings.Fields(line)
	if len(fields) < cpuFieldCount+1 {
		return 0, CPUCounters{}, fmt.Errorf("%w: short cpu line %q", ErrParse, line)
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(fields[0], "cpu"))
	if err != nil {
		return 0, CPUCounters{}, fmt.Errorf("%w: bad core label %q", ErrParse, fields[0])
	}

	var vals [cpuFieldCount]uint64
	for i := range vals {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return 0, CPUCounters{}, fmt.Errorf("%w: cpu field %d: %v", ErrParse, i+1, err)
		}
		vals[i] = v
	}

	return idx, CPUCounters{
		User:    vals[0],
		Nice:    vals[1],
		System:  vals[2],
		Idle:    vals[3],
		IOWait:  vals[4],
		IRQ:     vals[5],
		SoftIRQ: vals[6],
		Steal:   vals[7],
	}, nil
}

// ParseMeminfo reads MemTotal and MemFree (kB) from /proc/meminfo content.
//
// The scan stops at MemFree, which the kernel always lists after MemTotal,
// or at end of input. A missing MemTotal yields a zero Extent. A missing
// MemFree yields the total with an error so callers can show the size but
// not a usage figure.
func ParseMeminfo(r io.Reader) (Extent, error) {
	ext := Extent{Unit: UnitKiB}
	scanner := bufio.NewScanner(r)

	var haveTotal, haveFree bool
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSuffix(parts[0], ":")
		if key != "MemTotal" && key != "MemFree" {
			continue
		}

		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}

		if key == "MemTotal" {
			ext.Total = val
			haveTotal = true
			continue
		}
		ext.Free = val
		haveFree = true
		break
	}

	if err := scanner.Err(); err != nil {
		return Extent{Unit: UnitKiB}, fmt.Errorf("error scanning meminfo source: %w", err)
	}

	if !haveTotal || ext.Total == 0 {
		return Extent{Unit: UnitKiB}, fmt.Errorf("%w: MemTotal not found", ErrParse)
	}
	if !haveFree {
		ext.Free = 0
		return ext, fmt.Errorf("%w: MemFree not found", ErrParse)
	}
	if ext.Free > ext.Total {
		return ext, fmt.Errorf("%w: MemFree %d exceeds MemTotal %d", ErrParse, ext.Free, ext.Total)
	}

	return ext, nil
}

// ParseNetDev sums received and transmitted bytes across the interfaces in
// /proc/net/dev content that filter accepts. A nil filter accepts all of
// them, loopback included.
//
// The two header lines are skipped. After the "iface:" label, field 1 is rx
// bytes and field 9 is tx bytes. Malformed interface lines are skipped.
func ParseNetDev(r io.Reader, filter InterfaceFilter) (Traffic, ParseStats, error) {
	var (
		traffic Traffic
		stats   ParseStats
	)
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}

		name, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			stats.Skipped++
			continue
		}
		name = strings.TrimSpace(name)

		fields := strings.Fields(rest)
		if len(fields) < 9 {
			stats.Skipped++
			continue
		}

		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			stats.Skipped++
			continue
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			stats.Skipped++
			continue
		}

		if filter != nil && !filter(name) {
			continue
		}

		traffic.RxBytes += rx
		traffic.TxBytes += tx
		stats.Parsed++
	}

	if err := scanner.Err(); err != nil {
		return Traffic{}, stats, fmt.Errorf("error scanning net/dev source: %w", err)
	}

	if lineNum < 2 {
		return Traffic{}, stats, fmt.Errorf("%w: net/dev source is missing its header", ErrParse)
	}

	return traffic, stats, nil
}
