package render

import (
	"time"
)

// DefaultScrollSpeed matches the reference rate of one pixel per 100ms.
const DefaultScrollSpeed = 10 // px/sec

// Placement is the computed horizontal draw position of one line for
// one frame.
type Placement struct {
	X         int
	Scrolling bool
}

// Layout computes per-line draw positions for a fixed viewport. Place is
// a pure function of line width and elapsed time: scroll phase depends
// only on the shared render start reference, so it stays monotonic
// across frames regardless of frame-rate jitter.
type Layout struct {
	ViewportWidth int
	ScrollSpeed   int // horizontal scroll rate in px/sec
}

// Place returns the draw position for a line of the given pixel width.
// A line that fits the viewport (widthPx <= ViewportWidth) is centered
// and time-invariant. A wider line slides left at ScrollSpeed and wraps
// back in from the right edge with period widthPx + ViewportWidth, so it
// scrolls fully off-screen before reappearing.
func (l Layout) Place(widthPx int, elapsed time.Duration) Placement {
	if widthPx <= l.ViewportWidth {
		return Placement{X: (l.ViewportWidth - widthPx) / 2}
	}

	speed := l.ScrollSpeed
	if speed <= 0 {
		speed = DefaultScrollSpeed
	}
	ms := elapsed.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	period := int64(widthPx + l.ViewportWidth)
	offset := ms * int64(speed) / 1000 % period
	return Placement{X: -int(offset), Scrolling: true}
}
