package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pinyin/internal/analytics"
	"github.com/abhisek/pinyin/internal/clock"
	"github.com/abhisek/pinyin/internal/config"
	"github.com/abhisek/pinyin/internal/practice"
	"github.com/abhisek/pinyin/internal/recognizer"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run practice attempts headlessly and print every transition",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := simulateOptions{}
		opts.rounds, _ = cmd.Flags().GetInt("rounds")
		opts.speed, _ = cmd.Flags().GetFloat64("speed")
		opts.outcome, _ = cmd.Flags().GetString("outcome")
		if cmd.Flags().Changed("auto") {
			cfg.Practice.AutoAdvance, _ = cmd.Flags().GetBool("auto")
		}

		level, err := config.ParseLevel(cfg.Telemetry.LogLevel)
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return simulate(ctx, cmd.OutOrStdout(), cfg, opts, logger)
	},
}

func init() {
	simulateCmd.Flags().Int("rounds", 10, "Number of attempts to classify")
	simulateCmd.Flags().Float64("speed", 10, "Time compression factor; 1 runs in real time")
	simulateCmd.Flags().String("outcome", "", "Force every attempt to correct, tone, initial or final")
	simulateCmd.Flags().Bool("auto", false, "Start the next item's countdown automatically")
}

type simulateOptions struct {
	rounds  int
	speed   float64
	outcome string
}

// simulate drives one session on a wall clock, issuing start and next
// intents the way a learner would and reporting the tally at the end.
func simulate(ctx context.Context, w io.Writer, cfg config.Config, opts simulateOptions, logger *slog.Logger) error {
	if opts.rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", opts.rounds)
	}
	if opts.speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", opts.speed)
	}

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	rng := newRand(cfg.Practice.Seed)
	sim, err := recognizer.NewSimulator(cat, rng, cfg.RecognizerConfig())
	if err != nil {
		return fmt.Errorf("create recognizer: %w", err)
	}
	var rec recognizer.Recognizer = sim
	if opts.outcome != "" {
		kind, err := recognizer.ParseErrorKind(opts.outcome)
		if err != nil {
			return err
		}
		rec = sim.Force(kind)
	}

	loop := clock.NewLoop()
	clk := clock.NewReal(loop)
	defer func() {
		clk.CancelAll()
		loop.Close()
	}()

	tally := analytics.New()
	tr := &transcript{w: w, start: time.Now(), tally: tally}
	s, err := practice.New(cat, rec, clk, cfg.SessionConfig().Scale(1/opts.speed),
		practice.WithLogger(logger),
		practice.WithMicSource(rng),
		practice.WithObserver(tr),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	finished := false
	s.Start()
	loop.Run(ctx, func() {
		if !tr.pending {
			return
		}
		tr.pending = false
		if tr.results >= opts.rounds {
			finished = true
			cancel()
			return
		}
		s.Next()
		if s.State().Stage == practice.StageIdle {
			s.Start()
		}
	})

	sum := tally.Summary()
	fmt.Fprintf(w, "\n%d attempts, %d correct (%.0f%%), %d amplified\n",
		sum.Attempts, sum.Correct, sum.Accuracy, sum.Amplified)
	for _, es := range sum.Errors {
		fmt.Fprintf(w, "  %-8s %d (%.0f%% of errors)\n", es.Kind, es.Count, es.Share)
	}
	for _, ts := range sum.Tones {
		fmt.Fprintf(w, "  %-18s %d/%d\n", ts.Tone.Description(), ts.Correct, ts.Attempts)
	}
	if !finished {
		return ctx.Err()
	}
	return nil
}

// transcript prints stage changes and countdown steps, and tallies every
// result. Mic samples are not printed.
type transcript struct {
	w     io.Writer
	start time.Time
	tally *analytics.Tally

	last    practice.Snapshot
	results int
	pending bool
}

func (t *transcript) OnSnapshot(s practice.Snapshot) {
	changed := s.Stage != t.last.Stage || s.Index != t.last.Index || s.CountdownRemaining != t.last.CountdownRemaining
	t.last = s
	if !changed {
		return
	}
	line := fmt.Sprintf("[%7.3fs] %d/%d %s %-3s %-10s", time.Since(t.start).Seconds(), s.Index+1, s.Total, s.Item.Character, s.Item.Pinyin, s.Stage)
	switch s.Stage {
	case practice.StageCountdown:
		line += fmt.Sprintf(" %d", s.CountdownRemaining)
	case practice.StageProcessing:
		line += fmt.Sprintf(" %d samples", len(s.Samples))
	case practice.StageResult:
		t.results++
		t.pending = true
		t.tally.Record(s.Item, *s.LastResult)
		r := s.LastResult
		if r.IsCorrect {
			line += " correct"
		} else {
			line += fmt.Sprintf(" %s error, heard %s", r.ErrorKind, r.RecognizedLabel)
		}
		if r.Amplified {
			line += " (amplified)"
		}
	case practice.StageIdle:
		if s.CycleComplete {
			line += " cycle complete"
		}
	}
	fmt.Fprintln(t.w, line)
}
