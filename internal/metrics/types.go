package metrics

import (
	"time"
)

// Line is one displayable fact, already formatted for the panel
// (e.g. a temperature with a fixed decimal). Pixel widths are not part
// of the line: the renderer measures text against the active font every
// frame, so a snapshot stays immutable and safe to read concurrently.
type Line struct {
	Text string
}

// Snapshot is the ordered result of one complete sampling pass. The
// order of Lines is the vertical draw order. A snapshot is built from
// scratch each cycle and never mutated after it is published.
type Snapshot struct {
	TakenAt time.Time
	Lines   []Line
}

// Source supplies raw metric values for one sampling pass. Every method
// may fail independently; the sampler degrades the affected line to a
// sentinel and carries on.
type Source interface {
	// ThermalZone reads a sysfs thermal zone file and returns degrees
	// Celsius.
	ThermalZone(path string) (float64, error)

	// CPULoadPercent returns the aggregate CPU utilization since the
	// previous call, in percent.
	CPULoadPercent() (float64, error)

	// MemoryUsage returns used and total physical memory in bytes.
	MemoryUsage() (used, total uint64, err error)

	// LocalIPv4 returns the primary IPv4 address of the host.
	LocalIPv4() (string, error)

	// HardwareAddr returns the MAC address of the first non-loopback
	// interface.
	HardwareAddr() (string, error)
}
