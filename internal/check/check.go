// Package check runs an effect headlessly for a fixed number of
// frames and verifies its invariants, for CI and scripted smoke runs.
package check

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/termsaver/internal/effect"
	"github.com/san-kum/termsaver/internal/screen"
)

// ErrInvariant indicates at least one frame broke an invariant.
var ErrInvariant = errors.New("invariant violated")

// Config controls a headless verification run.
type Config struct {
	Frames int
	Width  int
	Height int
	Seed   int64
	FPS    int
}

func (c *Config) applyDefaults() {
	if c.Frames == 0 {
		c.Frames = 300
	}
	if c.Width == 0 {
		c.Width = 80
	}
	if c.Height == 0 {
		c.Height = 24
	}
	if c.FPS == 0 {
		c.FPS = 60
	}
}

// Result is the outcome of a verification run.
type Result struct {
	Effect        string   `yaml:"effect"`
	Frames        int      `yaml:"frames"`
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	Seed          int64    `yaml:"seed"`
	Passed        bool     `yaml:"passed"`
	Failures      []string `yaml:"failures,omitempty"`
	AvgTickMillis float64  `yaml:"avg_tick_ms"`
}

// Run ticks the effect cfg.Frames times against an off-screen buffer.
// Every frame the diff is checked against the buffer bounds and the
// effect's own Validate is consulted. A non-nil error wraps
// ErrInvariant; the Result carries the details either way.
func Run(kind effect.Kind, cfg Config) (Result, error) {
	cfg.applyDefaults()
	res := Result{
		Effect: kind.String(),
		Frames: cfg.Frames,
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	eff, err := effect.New(kind, cfg.Width, cfg.Height, rng)
	if err != nil {
		return res, err
	}
	buf := screen.NewBuffer(cfg.Width, cfg.Height)
	dt := 1.0 / float64(cfg.FPS)

	var total time.Duration
	for frame := 0; frame < cfg.Frames; frame++ {
		start := time.Now()
		eff.Tick(dt, rng)
		buf.Clear()
		eff.Render(buf)
		total += time.Since(start)

		for _, ch := range buf.SwapDiff() {
			if ch.X < 0 || ch.Y < 0 || ch.X >= cfg.Width || ch.Y >= cfg.Height {
				res.Failures = append(res.Failures,
					fmt.Sprintf("frame %d: diff cell (%d,%d) out of bounds", frame, ch.X, ch.Y))
			}
		}
		if v, ok := eff.(effect.Validator); ok {
			if err := v.Validate(); err != nil {
				res.Failures = append(res.Failures, fmt.Sprintf("frame %d: %v", frame, err))
			}
		}
	}

	res.AvgTickMillis = float64(total.Microseconds()) / 1000 / float64(cfg.Frames)
	res.Passed = len(res.Failures) == 0
	if !res.Passed {
		return res, fmt.Errorf("%w: %s failed %d frame checks", ErrInvariant, res.Effect, len(res.Failures))
	}
	return res, nil
}

// WriteReport marshals the result as YAML to w.
func WriteReport(w io.Writer, res Result) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}

// WriteReportFile writes the YAML report to path.
func WriteReportFile(path string, res Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteReport(f, res)
}
