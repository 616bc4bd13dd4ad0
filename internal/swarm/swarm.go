package swarm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ambonmud/swarm/internal/bot"
	"github.com/ambonmud/swarm/internal/config"
	"github.com/ambonmud/swarm/internal/display"
)

// Orchestrator ramps up the configured number of bots, aggregates their
// stats for periodic progress reports, and tears everything down at the
// global deadline or on cancellation.
type Orchestrator struct {
	cfg    *config.Swarm
	logger *log.Logger
	out    io.Writer
	seed   int64

	stats   []*bot.Stats
	started atomic.Int64
}

// New creates an orchestrator. Progress and summary lines go to out; per-bot
// logs go to logger.
func New(cfg *config.Swarm, logger *log.Logger, out io.Writer) *Orchestrator {
	stats := make([]*bot.Stats, cfg.Clients)
	for i := range stats {
		stats[i] = &bot.Stats{}
	}
	return &Orchestrator{
		cfg:    cfg,
		logger: logger,
		out:    out,
		seed:   time.Now().UnixNano(),
		stats:  stats,
	}
}

// Started returns the number of bots dispatched so far. Counted at launch
// time, before a bot's body runs, so progress reflects dispatch, not
// successful login.
func (o *Orchestrator) Started() int {
	return int(o.started.Load())
}

// Run executes the full swarm: ramp-up, steady state until the deadline,
// then coordinated shutdown. The final summary is printed on every path.
func (o *Orchestrator) Run(ctx context.Context) error {
	start := time.Now()
	stopAt := start.Add(o.cfg.Duration())

	fmt.Fprintln(o.out, display.Banner(o.cfg))

	botCtx, cancelBots := context.WithCancel(ctx)
	defer cancelBots()

	// The reporter gets its own context: it must outlive bot cancellation
	// and stop only once the bots have been awaited.
	reporterCtx, cancelReporter := context.WithCancel(context.Background())
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		o.reportProgress(reporterCtx, start)
	}()

	var g errgroup.Group
	launchErr := o.launchBots(botCtx, &g, stopAt)

	if launchErr == nil {
		select {
		case <-botCtx.Done():
		case <-time.After(time.Until(stopAt)):
		}
	}

	// Shutdown, on success or failure: cancel every bot and await them,
	// absorbing the cancellation that comes back; then stop the reporter
	// and print the summary.
	cancelBots()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		o.logger.Printf("swarm: unexpected error from bot group: %v", err)
	}

	cancelReporter()
	<-reporterDone

	kills, moves, gets := bot.Totals(o.stats)
	fmt.Fprintln(o.out, display.Summary(time.Since(start).Seconds(), kills, moves, gets))

	if launchErr != nil && !errors.Is(launchErr, context.Canceled) {
		return launchErr
	}
	return nil
}

// launchBots dispatches one supervised bot per configured client at the ramp
// rate. A zero rate launches everything immediately.
func (o *Orchestrator) launchBots(ctx context.Context, g *errgroup.Group, stopAt time.Time) error {
	var limiter *rate.Limiter
	if o.cfg.RampPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.cfg.RampPerSec), 1)
	}

	for i := 0; i < o.cfg.Clients; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		id := i + 1
		b := bot.New(id, o.cfg, o.stats[i], rand.New(rand.NewSource(o.seed+int64(id))), o.logger)
		o.started.Add(1)
		g.Go(func() error {
			return b.Supervise(ctx, stopAt)
		})
	}
	return nil
}

// reportProgress prints aggregate stats on a fixed interval until cancelled.
func (o *Orchestrator) reportProgress(ctx context.Context, start time.Time) {
	ticker := time.NewTicker(o.cfg.ProgressInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			kills, moves, gets := bot.Totals(o.stats)
			fmt.Fprintln(o.out, display.Progress(
				time.Since(start).Seconds(), o.Started(), o.cfg.Clients, kills, moves, gets))
		}
	}
}
