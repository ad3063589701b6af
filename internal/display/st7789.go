// Package display provides transports that present finished frame
// buffers: an ST7789 TFT over SPI for the real panel, and a terminal
// preview for development without hardware.
package display

import (
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// ST7789 command subset used for panel bring-up and frame writes.
const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVON   = 0x21
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

const (
	colmod16bpp  = 0x55
	madctlRotate = 0x70 // row/column exchange + mirror for landscape
)

// spiChunk keeps single transfers under the kernel's spidev buffer
// limit.
const spiChunk = 4096

// ST7789Opts configures the panel wiring and geometry. Offsets position
// the visible area inside the controller's 240x320 RAM; the reference
// 320x170 panel sits 35 rows in.
type ST7789Opts struct {
	Port      string // SPI port name, e.g. "SPI0.1"
	SpeedHz   int64
	DCPin     string // data/command select GPIO
	ResetPin  string // optional hardware reset GPIO
	Backlight string // optional backlight GPIO
	Width     int
	Height    int
	OffsetX   int
	OffsetY   int
}

// ST7789 drives an ST7789 TFT over SPI. Draw converts the frame to
// RGB565 and streams it into display RAM; that transfer dominates the
// per-frame cost.
type ST7789 struct {
	port spi.PortCloser
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	bl   gpio.PinOut
	opts ST7789Opts
	buf  []byte
}

// NewST7789 opens the SPI port, resolves the control pins and runs the
// panel init sequence.
func NewST7789(opts ST7789Opts) (*ST7789, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	port, err := spireg.Open(opts.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %s: %w", opts.Port, err)
	}
	conn, err := port.Connect(physic.Frequency(opts.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect spi: %w", err)
	}

	dc := gpioreg.ByName(opts.DCPin)
	if dc == nil {
		port.Close()
		return nil, fmt.Errorf("data/command pin %s not found", opts.DCPin)
	}

	d := &ST7789{
		port: port,
		conn: conn,
		dc:   dc,
		opts: opts,
		buf:  make([]byte, opts.Width*opts.Height*2),
	}
	if opts.ResetPin != "" {
		d.rst = gpioreg.ByName(opts.ResetPin)
	}
	if opts.Backlight != "" {
		d.bl = gpioreg.ByName(opts.Backlight)
	}

	if err := d.init(); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

func (d *ST7789) init() error {
	if d.rst != nil {
		// Hardware reset pulse.
		if err := d.rst.Out(gpio.High); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
		if err := d.rst.Out(gpio.Low); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return err
		}
		time.Sleep(150 * time.Millisecond)
	}

	steps := []struct {
		cmd   byte
		data  []byte
		delay time.Duration
	}{
		{cmd: cmdSWRESET, delay: 150 * time.Millisecond},
		{cmd: cmdSLPOUT, delay: 120 * time.Millisecond},
		{cmd: cmdCOLMOD, data: []byte{colmod16bpp}},
		{cmd: cmdMADCTL, data: []byte{madctlRotate}},
		{cmd: cmdINVON},
		{cmd: cmdNORON, delay: 10 * time.Millisecond},
		{cmd: cmdDISPON, delay: 100 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data...); err != nil {
			return fmt.Errorf("panel init cmd 0x%02X: %w", s.cmd, err)
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	if d.bl != nil {
		if err := d.bl.Out(gpio.High); err != nil {
			return fmt.Errorf("backlight on: %w", err)
		}
	}
	return nil
}

func (d *ST7789) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Draw packs the frame into RGB565 and writes it to the panel RAM.
func (d *ST7789) Draw(frame *image.RGBA) error {
	if err := d.setWindow(); err != nil {
		return err
	}
	packRGB565(frame, d.buf)
	return d.command(cmdRAMWR, d.buf...)
}

// Close blanks the backlight and releases the SPI port.
func (d *ST7789) Close() error {
	if d.bl != nil {
		_ = d.bl.Out(gpio.Low)
	}
	return d.port.Close()
}

// setWindow addresses the full visible area, shifted by the panel
// offsets.
func (d *ST7789) setWindow() error {
	x0 := d.opts.OffsetX
	x1 := d.opts.OffsetX + d.opts.Width - 1
	y0 := d.opts.OffsetY
	y1 := d.opts.OffsetY + d.opts.Height - 1

	if err := d.command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	return d.command(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
}

// command writes a command byte with DC low, then any payload with DC
// high, chunked to the SPI transfer limit.
func (d *ST7789) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if n > spiChunk {
			n = spiChunk
		}
		if err := d.conn.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
