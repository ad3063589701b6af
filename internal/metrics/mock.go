package metrics

import (
	"math/rand"
	"time"
)

// MockSource simulates a plausible RK3588 board so the daemon can be
// developed and demoed off-target.
type MockSource struct {
	rng *rand.Rand
}

func NewMockSource() *MockSource {
	return &MockSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *MockSource) ThermalZone(path string) (float64, error) {
	_ = path
	return 42 + m.rng.Float64()*12, nil
}

func (m *MockSource) CPULoadPercent() (float64, error) {
	return 15 + m.rng.Float64()*60, nil
}

func (m *MockSource) MemoryUsage() (uint64, uint64, error) {
	const total = 8 * 1024 * 1024 * 1024
	used := uint64(float64(total) * (0.35 + m.rng.Float64()*0.2))
	return used, total, nil
}

func (m *MockSource) LocalIPv4() (string, error) {
	return "192.168.1.42", nil
}

func (m *MockSource) HardwareAddr() (string, error) {
	return "DE:AD:BE:EF:00:42", nil
}
