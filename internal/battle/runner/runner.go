// Package runner plays battles without a viewer: the level's deployment
// plan drives the commands and time advances in fixed steps.
package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/lane-defense/internal/battle/command"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
	"github.com/vovakirdan/lane-defense/internal/storage"
)

// Options tunes a headless run.
type Options struct {
	Step   float64     // ms per tick, defaults to 50
	Limit  float64     // game-time cap in ms, defaults to 30 minutes
	Logger *log.Logger // receives the event stream when set
}

func (o Options) withDefaults() Options {
	if o.Step <= 0 {
		o.Step = 50
	}
	if o.Limit <= 0 {
		o.Limit = 30 * 60 * 1000
	}
	return o
}

// Outcome summarizes one finished run.
type Outcome struct {
	Level    string
	Seed     int64
	State    sim.GameState
	Stats    sim.Stats
	Elapsed  float64 // game ms
	Ticks    int
	TimedOut bool
	// Rejected counts plan commands the engine refused.
	Rejected int
}

// Won reports whether the run ended in victory.
func (o Outcome) Won() bool {
	return o.State == sim.StateWon
}

// Record converts the outcome to a stored run tagged with source.
func (o Outcome) Record(source string) storage.RunRecord {
	result := storage.OutcomeLost
	switch {
	case o.Won():
		result = storage.OutcomeWon
	case o.TimedOut:
		result = storage.OutcomeTimeout
	case !o.State.Terminal():
		result = storage.OutcomeQuit
	}
	return storage.RunRecord{
		LevelID:   o.Level,
		Outcome:   result,
		Seed:      o.Seed,
		Kills:     o.Stats.Kills,
		Leaks:     o.Stats.Leaks,
		Lives:     o.Stats.Lives,
		ElapsedMS: int64(o.Elapsed),
		Source:    source,
	}
}

// Run plays lvl to completion with the given seed.
func Run(ctx context.Context, cat *defs.Catalog, cfg config.BattleConfig, lvl *defs.Level, seed int64, opts Options) (Outcome, error) {
	opts = opts.withDefaults()

	s := sim.New(cat, cfg, seed)
	if opts.Logger != nil {
		s.Subscribe(command.NewLogListener(opts.Logger.With("seed", seed)))
	}
	if err := s.Init(lvl); err != nil {
		return Outcome{}, fmt.Errorf("runner: %w", err)
	}

	out := Outcome{Level: lvl.ID, Seed: seed}
	script := command.NewScript(lvl.Plan)
	queue := command.NewQueue()

	for !s.State().Terminal() {
		if s.Time() >= opts.Limit {
			out.TimedOut = true
			break
		}
		if out.Ticks%256 == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}
		script.Advance(s.Time(), queue)
		for _, r := range queue.Flush(s) {
			if r.Err != nil {
				out.Rejected++
				if opts.Logger != nil {
					opts.Logger.Debug("plan step rejected", "seed", seed, "step", r.Command.String(), "error", r.Err)
				}
			}
		}
		res := s.Update(opts.Step)
		out.Ticks = res.Tick
	}

	out.State = s.State()
	out.Stats = s.Stats()
	out.Elapsed = s.Time()
	return out, nil
}

// Batch plays lvl once per seed using up to workers goroutines. Each run
// owns its simulation; results are returned in seed order.
func Batch(ctx context.Context, cat *defs.Catalog, cfg config.BattleConfig, lvl *defs.Level, seeds []int64, workers int, opts Options) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	outcomes := make([]Outcome, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			o, err := Run(ctx, cat, cfg, lvl, seed, opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summary aggregates a batch.
type Summary struct {
	Runs     int
	Wins     int
	Losses   int
	TimedOut int
	Kills    int
	Leaks    int
}

// WinRate returns wins over runs, or 0 for an empty batch.
func (s Summary) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// Summarize folds outcomes into a Summary.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Runs++
		switch {
		case o.Won():
			s.Wins++
		case o.TimedOut:
			s.TimedOut++
		default:
			s.Losses++
		}
		s.Kills += o.Stats.Kills
		s.Leaks += o.Stats.Leaks
	}
	return s
}
