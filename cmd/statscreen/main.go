package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"

	"github.com/ostrauss/statscreen/internal/config"
	"github.com/ostrauss/statscreen/internal/display"
	"github.com/ostrauss/statscreen/internal/logging"
	"github.com/ostrauss/statscreen/internal/metrics"
	"github.com/ostrauss/statscreen/internal/render"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("statscreen failed")
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var src metrics.Source
	if cfg.Mock {
		log.Info().Msg("using simulated metrics")
		src = metrics.NewMockSource()
	} else {
		src = metrics.NewSystemSource()
	}

	store := metrics.NewStore()
	sampler := metrics.NewSampler(
		src,
		store,
		time.Duration(cfg.Sampler.IntervalMS)*time.Millisecond,
		cfg.Sampler.CPUZone,
		cfg.Sampler.HotspotZone,
	)
	go sampler.Run(ctx)

	face, fontHeight := render.LoadFace(cfg.Font.Path, cfg.Font.Size)

	if cfg.Preview {
		return runPreview(ctx, cancel, cfg, store, face, fontHeight)
	}
	return runPanel(ctx, cfg, store, face, fontHeight)
}

func runPanel(ctx context.Context, cfg *config.Config, store *metrics.Store, face font.Face, fontHeight int) error {
	panel, err := display.NewST7789(display.ST7789Opts{
		Port:      cfg.Display.SPIPort,
		SpeedHz:   cfg.Display.SPIHz,
		DCPin:     cfg.Display.DCPin,
		ResetPin:  cfg.Display.ResetPin,
		Backlight: cfg.Display.Backlight,
		Width:     cfg.Display.Width,
		Height:    cfg.Display.Height,
		OffsetX:   cfg.Display.OffsetX,
		OffsetY:   cfg.Display.OffsetY,
	})
	if err != nil {
		return fmt.Errorf("panel init: %w", err)
	}
	defer panel.Close()

	renderer := render.New(store, panel, face, fontHeight, cfg.Font.LinePadding, cfg.ScrollSpeed)
	if err := renderer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runPreview(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, store *metrics.Store, face font.Face, fontHeight int) error {
	preview := display.NewPreview(cfg.Display.Width, cfg.Display.Height, cfg.PreviewScale)
	renderer := render.New(store, preview, face, fontHeight, cfg.Font.LinePadding, cfg.ScrollSpeed)

	go func() {
		if err := renderer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("render loop failed")
		}
		cancel()
	}()

	// The terminal event loop owns the main goroutine, mirroring how the
	// SPI renderer does in panel mode.
	err := preview.Run(ctx)
	cancel()
	return err
}
