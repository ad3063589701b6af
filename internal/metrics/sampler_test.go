package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCPUZone     = "/sys/class/thermal/thermal_zone0/temp"
	testHotspotZone = "/sys/class/thermal/thermal_zone1/temp"
)

// stubSource returns canned values so a sampling cycle is fully
// deterministic.
type stubSource struct {
	temps   map[string]float64
	tempErr map[string]error
	cpu     float64
	cpuErr  error
	used    uint64
	total   uint64
	memErr  error
	ip      string
	ipErr   error
	mac     string
	macErr  error
}

func healthyStub() *stubSource {
	return &stubSource{
		temps: map[string]float64{
			testCPUZone:     48.26,
			testHotspotZone: 51.7,
		},
		cpu:   23.456,
		used:  1536 * 1024 * 1024,
		total: 8192 * 1024 * 1024,
		ip:    "192.168.0.17",
		mac:   "AA:BB:CC:DD:EE:FF",
	}
}

func (s *stubSource) ThermalZone(path string) (float64, error) {
	if err := s.tempErr[path]; err != nil {
		return 0, err
	}
	return s.temps[path], nil
}

func (s *stubSource) CPULoadPercent() (float64, error) {
	return s.cpu, s.cpuErr
}

func (s *stubSource) MemoryUsage() (uint64, uint64, error) {
	return s.used, s.total, s.memErr
}

func (s *stubSource) LocalIPv4() (string, error) {
	return s.ip, s.ipErr
}

func (s *stubSource) HardwareAddr() (string, error) {
	return s.mac, s.macErr
}

func newTestSampler(src Source, store *Store) *Sampler {
	s := NewSampler(src, store, time.Second, testCPUZone, testHotspotZone)
	s.now = func() time.Time {
		return time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSampleLineOrderAndFormatting(t *testing.T) {
	s := newTestSampler(healthyStub(), NewStore())

	snap := s.Sample()

	require.Len(t, snap.Lines, 6)
	assert.Equal(t, "IPv4: 192.168.0.17", snap.Lines[0].Text)
	assert.Equal(t, "MAC: AA:BB:CC:DD:EE:FF", snap.Lines[1].Text)
	assert.Equal(t, "12.03.2024 10:00:00", snap.Lines[2].Text)
	assert.Equal(t, "CPU/Hotspot: 48.3/51.7°C", snap.Lines[3].Text)
	assert.Equal(t, "CPU Load: 23.5%", snap.Lines[4].Text)
	assert.Equal(t, "RAM: 1536.0/8192.0 MB", snap.Lines[5].Text)
}

// A missing thermal sensor degrades only its own reading; every other
// line of the same snapshot is unaffected.
func TestSampleThermalZoneMissing(t *testing.T) {
	src := healthyStub()
	src.tempErr = map[string]error{testHotspotZone: errors.New("no such file")}
	s := newTestSampler(src, NewStore())

	snap := s.Sample()

	require.Len(t, snap.Lines, 6)
	assert.Equal(t, "CPU/Hotspot: 48.3/N/A°C", snap.Lines[3].Text)
	assert.Equal(t, "IPv4: 192.168.0.17", snap.Lines[0].Text)
	assert.Equal(t, "CPU Load: 23.5%", snap.Lines[4].Text)
	assert.Equal(t, "RAM: 1536.0/8192.0 MB", snap.Lines[5].Text)
}

func TestSampleIPLookupFailsFallsBackToLoopback(t *testing.T) {
	src := healthyStub()
	src.ipErr = errors.New("network is unreachable")
	s := newTestSampler(src, NewStore())

	snap := s.Sample()

	assert.Equal(t, "IPv4: 127.0.0.1", snap.Lines[0].Text)
}

func TestSampleMACLookupFailsFallsBackToZeroAddr(t *testing.T) {
	src := healthyStub()
	src.macErr = errors.New("no interfaces")
	s := newTestSampler(src, NewStore())

	snap := s.Sample()

	assert.Equal(t, "MAC: 00:00:00:00:00:00", snap.Lines[1].Text)
}

func TestSampleEverySourceFailingStillYieldsSixLines(t *testing.T) {
	boom := errors.New("boom")
	src := &stubSource{
		tempErr: map[string]error{testCPUZone: boom, testHotspotZone: boom},
		cpuErr:  boom,
		memErr:  boom,
		ipErr:   boom,
		macErr:  boom,
	}
	s := newTestSampler(src, NewStore())

	snap := s.Sample()

	require.Len(t, snap.Lines, 6)
	assert.Equal(t, "CPU/Hotspot: N/A/N/A°C", snap.Lines[3].Text)
	assert.Equal(t, "CPU Load: N/A", snap.Lines[4].Text)
	assert.Equal(t, "RAM: N/A", snap.Lines[5].Text)
}

func TestRunPublishesAndStopsOnCancel(t *testing.T) {
	store := NewStore()
	s := NewSampler(healthyStub(), store, 10*time.Millisecond, testCPUZone, testHotspotZone)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// The first snapshot is published immediately, before the first tick.
	assert.Eventually(t, func() bool {
		return len(store.Current().Lines) == 6
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop on context cancellation")
	}
}
