package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ambonmud/swarm/internal/behavior"
	"github.com/ambonmud/swarm/internal/config"
	"github.com/ambonmud/swarm/internal/mudclient"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Bot is one simulated player: a connection, a freshly created user, and a
// loop of randomized in-world actions until the swarm's stop deadline.
type Bot struct {
	id       int
	prefix   string
	name     string
	password string

	cfg    *config.Swarm
	stats  *Stats
	policy *behavior.Policy
	rng    *rand.Rand
	logger *log.Logger

	lastMove string
}

// New creates a bot with a generated identity. rng must be private to this
// bot; it drives identity, think time, and action selection.
func New(id int, cfg *config.Swarm, stats *Stats, rng *rand.Rand, logger *log.Logger) *Bot {
	return &Bot{
		id:       id,
		prefix:   fmt.Sprintf("[bot %04d]", id),
		name:     fmt.Sprintf("Bot%04d_%s", id, randSuffix(rng, 4)),
		password: fmt.Sprintf("Pw%04d_%s", id, randSuffix(rng, 6)),
		cfg:      cfg,
		stats:    stats,
		policy:   behavior.New(cfg.Behavior, rng),
		rng:      rng,
		logger:   logger,
	}
}

func randSuffix(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rng.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// Name returns the bot's generated user name.
func (b *Bot) Name() string {
	return b.name
}

// Run connects, logs in, and acts until stopAt. The connection is released
// on every exit path, cancellation included.
func (b *Bot) Run(ctx context.Context, stopAt time.Time) error {
	conn, err := mudclient.Dial(ctx, b.cfg.URL, b.cfg.ConnectTimeout(), b.logger, b.prefix, b.cfg.Verbose)
	if err != nil {
		return err
	}
	defer conn.Close()

	if b.cfg.Verbose {
		b.logger.Printf("%s connected", b.prefix)
	}

	ioTimeout := b.cfg.IOTimeout()
	if err := conn.Login(ctx, b.name, b.password, ioTimeout); err != nil {
		return err
	}

	for time.Now().Before(stopAt) {
		if err := b.think(ctx); err != nil {
			return err
		}

		switch b.policy.ChooseAction() {
		case behavior.ActionLook:
			if err := conn.SendAndWaitPrompt(ctx, "look", ioTimeout); err != nil {
				return err
			}

		case behavior.ActionMove:
			mv := b.policy.ChooseMove(b.lastMove)
			if err := conn.SendAndWaitPrompt(ctx, mv, ioTimeout); err != nil {
				return err
			}
			b.stats.Moves.Add(1)
			b.lastMove = mv

		case behavior.ActionKill:
			if err := conn.SendAndWaitPrompt(ctx, "kill rat", ioTimeout); err != nil {
				return err
			}
			kills := b.stats.Kills.Add(1)

			if behavior.ShouldLoot(b.cfg.Loot, kills) {
				if err := conn.SendAndWaitPrompt(ctx, "get lantern", ioTimeout); err != nil {
					return err
				}
				b.stats.Gets.Add(1)
			}
		}
	}

	return nil
}

// think sleeps a uniformly-random duration within the configured bounds,
// waking immediately on cancellation.
func (b *Bot) think(ctx context.Context) error {
	span := b.cfg.Timing.ThinkMaxMs - b.cfg.Timing.ThinkMinMs
	ms := b.cfg.Timing.ThinkMinMs
	if span > 0 {
		ms += b.rng.Intn(span + 1)
	}

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Supervise runs the bot and contains any failure to this bot alone: the
// failure becomes one identity-tagged log line and a nil result, so siblings
// and the orchestrator are unaffected. Cancellation is never contained; it
// propagates so shutdown stays deterministic.
func (b *Bot) Supervise(ctx context.Context, stopAt time.Time) error {
	err := b.Run(ctx, stopAt)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	b.logger.Printf("%s error: %v", b.prefix, err)
	return nil
}
