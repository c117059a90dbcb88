// Package runner owns the animation loop: fixed-tick pacing, input
// handling, and presenting buffer diffs through a terminal driver.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/termsaver/internal/effect"
	"github.com/san-kum/termsaver/internal/screen"
	"github.com/san-kum/termsaver/internal/term"
)

// ErrBadConfig indicates an out-of-range runner setting.
var ErrBadConfig = errors.New("invalid runner config")

const (
	defaultFPS = 60
	maxFPS     = 240
)

// Config controls a run.
type Config struct {
	// FPS is the tick rate. Zero means the default of 60.
	FPS int
	// Seed feeds the effect's random source.
	Seed int64
	// MaxFrames stops the run after N frames. Zero runs until quit.
	MaxFrames int
	// RecordTimings keeps per-frame tick durations in the stats.
	RecordTimings bool
}

func (c *Config) validate() error {
	if c.FPS == 0 {
		c.FPS = defaultFPS
	}
	if c.FPS < 1 || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps %d out of range [1,%d]", ErrBadConfig, c.FPS, maxFPS)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("%w: max frames %d is negative", ErrBadConfig, c.MaxFrames)
	}
	return nil
}

// Stats summarizes a finished run.
type Stats struct {
	Frames     int
	Elapsed    time.Duration
	TickMillis []float64
}

// Run drives the effect on the driver until quit, context
// cancellation, or the frame limit. The driver is always restored on
// the way out, including on panic.
func Run(ctx context.Context, drv term.Driver, kind effect.Kind, cfg Config) (Stats, error) {
	var stats Stats
	if err := cfg.validate(); err != nil {
		return stats, err
	}

	width, height, err := drv.Init()
	if err != nil {
		return stats, err
	}
	defer drv.Fini()

	rng := rand.New(rand.NewSource(cfg.Seed))
	eff, err := effect.New(kind, width, height, rng)
	if err != nil {
		return stats, err
	}
	buf := screen.NewBuffer(width, height)

	dt := 1.0 / float64(cfg.FPS)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			stats.Elapsed = time.Since(start)
			return stats, nil
		case ev := <-drv.Events():
			switch ev.Kind {
			case term.EventQuit:
				stats.Elapsed = time.Since(start)
				return stats, nil
			case term.EventResize:
				width, height = ev.Width, ev.Height
				buf.Resize(width, height)
				eff.Reset(width, height, rng)
			}
		case <-ticker.C:
			frameStart := time.Now()
			eff.Tick(dt, rng)
			buf.Clear()
			eff.Render(buf)
			if cfg.RecordTimings {
				stats.TickMillis = append(stats.TickMillis, float64(time.Since(frameStart).Microseconds())/1000)
			}

			for _, ch := range buf.SwapDiff() {
				drv.SetCell(ch.X, ch.Y, ch.Cell)
			}
			drv.Show()
			stats.Frames++

			if cfg.MaxFrames > 0 && stats.Frames >= cfg.MaxFrames {
				stats.Elapsed = time.Since(start)
				return stats, nil
			}
		}
	}
}
