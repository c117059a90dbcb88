package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/termsaver/internal/check"
	"github.com/san-kum/termsaver/internal/effect"
	"github.com/san-kum/termsaver/internal/menu"
	"github.com/san-kum/termsaver/internal/runner"
	"github.com/san-kum/termsaver/internal/term"
	"github.com/spf13/cobra"
)

var (
	fps  int
	seed int64
	// check options
	checkEffect string
	checkFrames int
	checkWidth  int
	checkHeight int
	reportPath  string
	// bench options
	benchFrames int
)

// main registers the CLI commands. Running with no effect name opens
// the interactive picker; a check failure exits with status 1.
func main() {
	rootCmd := &cobra.Command{
		Use:   "termsaver [effect]",
		Short: "animated screensavers for the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEffect,
	}
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 60, "frame rate")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	checkCmd := &cobra.Command{
		Use:   "check [effect]",
		Short: "run an effect headlessly and verify its invariants",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().StringVar(&checkEffect, "effect", "", "effect name (alternative to the positional argument)")
	checkCmd.Flags().IntVar(&checkFrames, "frames", 300, "frames to simulate")
	checkCmd.Flags().IntVar(&checkWidth, "width", 80, "buffer width")
	checkCmd.Flags().IntVar(&checkHeight, "height", 24, "buffer height")
	checkCmd.Flags().StringVar(&reportPath, "report", "", "write a yaml report to this path")

	benchCmd := &cobra.Command{
		Use:   "bench [effect]",
		Short: "measure frame times off-screen",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per effect")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available effects",
		RunE:  listEffects,
	}

	rootCmd.AddCommand(checkCmd, benchCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEffect(cmd *cobra.Command, args []string) error {
	var kind effect.Kind
	if len(args) == 0 {
		k, ok, err := menu.Pick()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		kind = k
	} else {
		k, err := effect.ParseKind(args[0])
		if err != nil {
			return err
		}
		kind = k
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := runner.Run(ctx, term.NewTcellDriver(), kind, runner.Config{
		FPS:  fps,
		Seed: seed,
	})
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := checkEffect
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" {
		return fmt.Errorf("no effect named: pass one as an argument or with --effect")
	}
	kind, err := effect.ParseKind(name)
	if err != nil {
		return err
	}

	res, checkErr := check.Run(kind, check.Config{
		Frames: checkFrames,
		Width:  checkWidth,
		Height: checkHeight,
		Seed:   seed,
		FPS:    fps,
	})

	// The report is written even when the check fails.
	if reportPath != "" {
		if err := check.WriteReportFile(reportPath, res); err != nil {
			return err
		}
	}

	if checkErr != nil {
		for _, f := range res.Failures {
			fmt.Fprintln(os.Stderr, f)
		}
		return checkErr
	}
	fmt.Printf("%s: %d frames ok, avg tick %.3f ms\n", res.Effect, res.Frames, res.AvgTickMillis)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	kinds := effect.Kinds()
	if len(args) == 1 {
		k, err := effect.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []effect.Kind{k}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EFFECT\tFRAMES\tAVG MS\tMAX MS")

	type series struct {
		kind effect.Kind
		data []float64
	}
	var plots []series

	for _, k := range kinds {
		drv := term.NewHeadlessDriver(80, 24)
		stats, err := runner.Run(context.Background(), drv, k, runner.Config{
			FPS:           240,
			Seed:          seed,
			MaxFrames:     benchFrames,
			RecordTimings: true,
		})
		if err != nil {
			return err
		}

		var sum, max float64
		for _, ms := range stats.TickMillis {
			sum += ms
			if ms > max {
				max = ms
			}
		}
		avg := sum / float64(len(stats.TickMillis))
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\n", k, stats.Frames, avg, max)
		plots = append(plots, series{kind: k, data: stats.TickMillis})
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, p := range plots {
		fmt.Println()
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(p.kind.String()+" tick ms"),
		)
		fmt.Println(graph)
	}
	return nil
}

func listEffects(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, k := range effect.Kinds() {
		fmt.Fprintf(w, "%s\t%s\n", k, effect.Descriptions[k])
	}
	return w.Flush()
}
