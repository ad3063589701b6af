package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sentinel values substituted when a metric source is unavailable.
// A failed source degrades its own line only; the rest of the snapshot
// publishes normally.
const (
	Unavailable = "N/A"
	FallbackIP  = "127.0.0.1"
	FallbackMAC = "00:00:00:00:00:00"
)

const timestampLayout = "02.01.2006 15:04:05"

// DefaultInterval is the sampling cadence. The cycle is approximately,
// not exactly, this long: a ticker drops ticks rather than letting
// passes overlap.
const DefaultInterval = time.Second

// Sampler produces one snapshot per cycle and publishes it to the store.
// It is the only writer; the render loop only ever reads.
type Sampler struct {
	src         Source
	store       *Store
	interval    time.Duration
	cpuZone     string
	hotspotZone string

	now func() time.Time
	log zerolog.Logger
}

// NewSampler wires a sampler to its source and store. cpuZone and
// hotspotZone are sysfs thermal zone paths.
func NewSampler(src Source, store *Store, interval time.Duration, cpuZone, hotspotZone string) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		src:         src,
		store:       store,
		interval:    interval,
		cpuZone:     cpuZone,
		hotspotZone: hotspotZone,
		now:         time.Now,
		log:         log.With().Str("component", "sampler").Logger(),
	}
}

// Run publishes one snapshot immediately and then one per tick until the
// context is cancelled. Collection failures never stop the loop: every
// metric is gathered independently and degrades to its sentinel.
func (s *Sampler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("sampler started")

	s.store.Publish(s.Sample())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sampler stopped")
			return
		case <-ticker.C:
			s.store.Publish(s.Sample())
		}
	}
}

// Sample performs a single sampling pass and returns the resulting
// snapshot without publishing it. Exposed so tests can run one
// deterministic cycle instead of sleeping on wall-clock time.
func (s *Sampler) Sample() *Snapshot {
	now := s.now()
	return &Snapshot{
		TakenAt: now,
		Lines: []Line{
			{Text: "IPv4: " + s.ipv4()},
			{Text: "MAC: " + s.mac()},
			{Text: now.Format(timestampLayout)},
			{Text: fmt.Sprintf("CPU/Hotspot: %s/%s°C", s.zoneTemp(s.cpuZone), s.zoneTemp(s.hotspotZone))},
			{Text: "CPU Load: " + s.cpuLoad()},
			{Text: "RAM: " + s.memory()},
		},
	}
}

func (s *Sampler) ipv4() string {
	ip, err := s.src.LocalIPv4()
	if err != nil {
		s.log.Debug().Err(err).Msg("ip lookup failed, falling back to loopback")
		return FallbackIP
	}
	return ip
}

func (s *Sampler) mac() string {
	mac, err := s.src.HardwareAddr()
	if err != nil {
		s.log.Debug().Err(err).Msg("mac lookup failed")
		return FallbackMAC
	}
	return mac
}

func (s *Sampler) zoneTemp(path string) string {
	t, err := s.src.ThermalZone(path)
	if err != nil {
		s.log.Debug().Err(err).Str("zone", path).Msg("thermal zone unreadable")
		return Unavailable
	}
	return strconv.FormatFloat(t, 'f', 1, 64)
}

func (s *Sampler) cpuLoad() string {
	p, err := s.src.CPULoadPercent()
	if err != nil {
		s.log.Debug().Err(err).Msg("cpu load unavailable")
		return Unavailable
	}
	return fmt.Sprintf("%.1f%%", p)
}

func (s *Sampler) memory() string {
	used, total, err := s.src.MemoryUsage()
	if err != nil {
		s.log.Debug().Err(err).Msg("memory usage unavailable")
		return Unavailable
	}
	const mib = 1024 * 1024
	return fmt.Sprintf("%.1f/%.1f MB", float64(used)/mib, float64(total)/mib)
}
