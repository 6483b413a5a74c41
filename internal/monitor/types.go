package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo is the static description of the local machine shown in the
// dashboard header.
type HostInfo struct {
	Hostname        string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	KernelArch      string
	BootTime        time.Time // zero when unknown
}

// LoadHostInfo queries the local host. A failed lookup still returns
// whatever fields were filled in, alongside the error.
func LoadHostInfo(ctx context.Context) (HostInfo, error) {
	stat, err := host.InfoWithContext(ctx)
	if stat == nil {
		return HostInfo{}, err
	}

	info := HostInfo{
		Hostname:        stat.Hostname,
		Platform:        stat.Platform,
		PlatformVersion: stat.PlatformVersion,
		KernelVersion:   stat.KernelVersion,
		KernelArch:      stat.KernelArch,
	}
	if stat.BootTime > 0 {
		info.BootTime = time.Unix(int64(stat.BootTime), 0)
	}
	return info, err
}

// OS returns "platform version", or whichever half is known.
func (h HostInfo) OS() string {
	switch {
	case h.Platform != "" && h.PlatformVersion != "":
		return h.Platform + " " + h.PlatformVersion
	case h.Platform != "":
		return h.Platform
	default:
		return h.PlatformVersion
	}
}

// Uptime returns how long the host has been up at now, or 0 when the boot
// time is unknown.
func (h HostInfo) Uptime(now time.Time) time.Duration {
	if h.BootTime.IsZero() || now.Before(h.BootTime) {
		return 0
	}
	return now.Sub(h.BootTime)
}

// FormatUptime renders a duration as "3d 4h 12m", dropping leading zero
// units. Durations under a minute show as "<1m".
func FormatUptime(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
