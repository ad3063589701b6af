package config

// Config is the full daemon configuration, merged from defaults, the
// TOML config file, STATSCREEN_* environment variables and flags.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	Mock         bool   `mapstructure:"mock"`
	Preview      bool   `mapstructure:"preview"`
	PreviewScale int    `mapstructure:"preview_scale"`
	ScrollSpeed  int    `mapstructure:"scroll_speed"` // px/sec

	Display DisplayConfig `mapstructure:"display"`
	Font    FontConfig    `mapstructure:"font"`
	Sampler SamplerConfig `mapstructure:"sampler"`
}

// DisplayConfig describes the panel wiring and geometry.
type DisplayConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	SPIPort   string `mapstructure:"spi_port"`
	SPIHz     int64  `mapstructure:"spi_hz"`
	DCPin     string `mapstructure:"dc_pin"`
	ResetPin  string `mapstructure:"reset_pin"`
	Backlight string `mapstructure:"backlight_pin"`
	OffsetX   int    `mapstructure:"offset_x"`
	OffsetY   int    `mapstructure:"offset_y"`
}

type FontConfig struct {
	Path        string  `mapstructure:"path"`
	Size        float64 `mapstructure:"size"` // pixel height
	LinePadding int     `mapstructure:"line_padding"`
}

type SamplerConfig struct {
	IntervalMS  int    `mapstructure:"interval_ms"`
	CPUZone     string `mapstructure:"cpu_zone"`
	HotspotZone string `mapstructure:"hotspot_zone"`
}

// defaults mirror the reference RK3588 + ST7789 wiring.
var defaults = map[string]any{
	"log_level":             "info",
	"mock":                  false,
	"preview":               false,
	"preview_scale":         2,
	"scroll_speed":          10,
	"display.width":         320,
	"display.height":        170,
	"display.spi_port":      "SPI0.1",
	"display.spi_hz":        int64(80_000_000),
	"display.dc_pin":        "GPIO19",
	"display.reset_pin":     "GPIO17",
	"display.backlight_pin": "GPIO20",
	"display.offset_x":      0,
	"display.offset_y":      35,
	"font.path":             "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"font.size":             22.0,
	"font.line_padding":     2,
	"sampler.interval_ms":   1000,
	"sampler.cpu_zone":      "/sys/class/thermal/thermal_zone0/temp",
	"sampler.hotspot_zone":  "/sys/class/thermal/thermal_zone1/temp",
}
