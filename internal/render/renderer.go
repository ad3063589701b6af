package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ostrauss/statscreen/internal/metrics"
)

// Display presents finished frames. Submitting the frame is assumed
// synchronous and is the dominant per-frame cost, which is what bounds
// the effective frame rate.
type Display interface {
	Bounds() image.Rectangle
	Draw(frame *image.RGBA) error
}

// Renderer free-runs the frame loop: read the latest snapshot, measure
// every line against the active font, lay the lines out, draw, submit.
// It owns the frame buffer exclusively and keeps no state across
// snapshots except the render start time.
type Renderer struct {
	store      *metrics.Store
	display    Display
	face       font.Face
	layout     Layout
	lineHeight int

	frame *image.RGBA
	bg    *image.Uniform
	fg    *image.Uniform

	log zerolog.Logger
}

// New builds a renderer for the given display. fontHeight and
// linePadding set the vertical advance between lines.
func New(store *metrics.Store, display Display, face font.Face, fontHeight, linePadding, scrollSpeed int) *Renderer {
	bounds := display.Bounds()
	return &Renderer{
		store:      store,
		display:    display,
		face:       face,
		layout:     Layout{ViewportWidth: bounds.Dx(), ScrollSpeed: scrollSpeed},
		lineHeight: fontHeight + linePadding,
		frame:      image.NewRGBA(bounds),
		bg:         image.NewUniform(color.Black),
		fg:         image.NewUniform(color.White),
		log:        log.With().Str("component", "renderer").Logger(),
	}
}

// Run drives the frame loop until the context is cancelled. No frame cap
// is imposed; the display's Draw call paces the loop. A transport error
// is returned to the caller, which treats it as fatal.
func (r *Renderer) Run(ctx context.Context) error {
	r.log.Info().Int("viewport_width", r.layout.ViewportWidth).Msg("render loop started")
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("render loop stopped")
			return ctx.Err()
		default:
		}

		r.RenderFrame(time.Since(start))
		if err := r.display.Draw(r.frame); err != nil {
			return fmt.Errorf("display submit: %w", err)
		}
	}
}

// RenderFrame composes one frame from the latest snapshot at the given
// elapsed time and returns the frame buffer. Line widths are measured
// fresh every frame; the snapshot itself is never written to, so
// re-rendering the same snapshot always yields the same frame.
func (r *Renderer) RenderFrame(elapsed time.Duration) *image.RGBA {
	snap := r.store.Current()

	draw.Draw(r.frame, r.frame.Bounds(), r.bg, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  r.frame,
		Src:  r.fg,
		Face: r.face,
	}
	ascent := r.face.Metrics().Ascent.Ceil()

	y := 0
	for _, line := range snap.Lines {
		width := d.MeasureString(line.Text).Ceil()
		p := r.layout.Place(width, elapsed)
		d.Dot = fixed.P(p.X, y+ascent)
		d.DrawString(line.Text)
		y += r.lineHeight
	}
	return r.frame
}
