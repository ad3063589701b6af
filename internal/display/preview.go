package display

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// frameBudget paces the preview at roughly 30 fps, standing in for the
// SPI transfer time that bounds the frame rate on real hardware.
const frameBudget = 33 * time.Millisecond

// Preview shows frames in the terminal using half-block cells, two panel
// rows per text row. It satisfies the same transport contract as the
// ST7789 driver so the daemon runs unmodified without the panel.
type Preview struct {
	prog   *tea.Program
	width  int
	height int
}

type frameMsg *image.RGBA

// NewPreview creates a terminal preview for a panel of the given size.
// scale is an integer downsampling factor; 2 fits a 320px panel into a
// 160-column terminal.
func NewPreview(width, height, scale int) *Preview {
	if scale < 1 {
		scale = 1
	}
	model := previewModel{width: width, height: height, scale: scale}
	return &Preview{
		prog:   tea.NewProgram(model, tea.WithAltScreen()),
		width:  width,
		height: height,
	}
}

func (p *Preview) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// Draw hands the renderer's frame to the terminal program. The frame
// buffer is owned by the renderer and reused, so it is copied before it
// crosses the goroutine boundary.
func (p *Preview) Draw(frame *image.RGBA) error {
	clone := image.NewRGBA(frame.Bounds())
	copy(clone.Pix, frame.Pix)
	p.prog.Send(frameMsg(clone))
	time.Sleep(frameBudget)
	return nil
}

// Run blocks on the terminal event loop until the user quits or the
// context is cancelled.
func (p *Preview) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		p.prog.Quit()
	}()
	_, err := p.prog.Run()
	return err
}

type previewModel struct {
	width  int
	height int
	scale  int
	frame  *image.RGBA
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = msg
	}
	return m, nil
}

func (m previewModel) View() string {
	if m.frame == nil {
		return "waiting for first frame..."
	}

	var sb strings.Builder
	// "▀" carries two vertically adjacent pixels: foreground is the top
	// pixel, background the bottom one.
	for y := 0; y < m.height; y += 2 * m.scale {
		for x := 0; x < m.width; x += m.scale {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexAt(m.frame, x, y))).
				Background(lipgloss.Color(hexAt(m.frame, x, y+m.scale)))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hexAt(frame *image.RGBA, x, y int) string {
	if y >= frame.Bounds().Max.Y {
		return "#000000"
	}
	i := frame.PixOffset(x, y)
	return fmt.Sprintf("#%02X%02X%02X", frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2])
}
