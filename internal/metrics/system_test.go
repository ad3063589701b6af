package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZone(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestThermalZoneMillidegrees(t *testing.T) {
	src := NewSystemSource()

	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"plain", "48250", 48.25},
		{"trailing newline", "61500\n", 61.5},
		{"surrounding whitespace", "  37000 \n", 37.0},
		{"negative", "-5000", -5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.ThermalZone(writeZone(t, tt.content))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestThermalZoneMissingFile(t *testing.T) {
	src := NewSystemSource()

	_, err := src.ThermalZone(filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}

func TestThermalZoneGarbageContent(t *testing.T) {
	src := NewSystemSource()

	_, err := src.ThermalZone(writeZone(t, "not a number"))

	assert.Error(t, err)
}

func TestMockSourcePlausibleValues(t *testing.T) {
	src := NewMockSource()

	temp, err := src.ThermalZone("/sys/class/thermal/thermal_zone0/temp")
	require.NoError(t, err)
	assert.Greater(t, temp, 0.0)
	assert.Less(t, temp, 100.0)

	load, err := src.CPULoadPercent()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, load, 0.0)
	assert.LessOrEqual(t, load, 100.0)

	used, total, err := src.MemoryUsage()
	require.NoError(t, err)
	assert.Less(t, used, total)

	ip, err := src.LocalIPv4()
	require.NoError(t, err)
	assert.NotEmpty(t, ip)

	mac, err := src.HardwareAddr()
	require.NoError(t, err)
	assert.NotEmpty(t, mac)
}
