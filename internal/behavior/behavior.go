package behavior

import (
	"math/rand"

	"github.com/ambonmud/swarm/internal/config"
)

// Action is one category of in-game command a bot can issue.
type Action string

const (
	ActionMove Action = "move"
	ActionKill Action = "kill"
	ActionLook Action = "look"
)

// opposite maps each movement direction to its exact reverse.
var opposite = map[string]string{
	"north": "south",
	"south": "north",
	"east":  "west",
	"west":  "east",
	"up":    "down",
	"down":  "up",
}

// Policy picks a bot's next action and movement direction. Each bot owns its
// own Policy with its own seeded rand.Rand, so bots never share a PRNG.
type Policy struct {
	cfg config.Behavior
	rng *rand.Rand
}

// New creates a policy over cfg driven by rng.
func New(cfg config.Behavior, rng *rand.Rand) *Policy {
	return &Policy{cfg: cfg, rng: rng}
}

// ChooseAction draws an action from the weighted mix. A zero weight excludes
// that action entirely.
func (p *Policy) ChooseAction() Action {
	total := p.cfg.MoveWeight + p.cfg.KillWeight + p.cfg.LookWeight
	r := p.rng.Float64() * total
	if r < p.cfg.MoveWeight {
		return ActionMove
	}
	r -= p.cfg.MoveWeight
	if r < p.cfg.KillWeight {
		return ActionKill
	}
	return ActionLook
}

// ChooseMove picks a movement direction. With backtrack avoidance on, the
// exact reverse of lastMove is excluded unless that would leave no candidates.
func (p *Policy) ChooseMove(lastMove string) string {
	moves := p.cfg.Moves
	if !p.cfg.AvoidImmediateBacktrack || lastMove == "" {
		return moves[p.rng.Intn(len(moves))]
	}

	back := opposite[lastMove]
	candidates := make([]string, 0, len(moves))
	for _, m := range moves {
		if m != back {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return moves[p.rng.Intn(len(moves))]
	}
	return candidates[p.rng.Intn(len(candidates))]
}

// ShouldLoot reports whether a "get" command should follow the kill that
// brought the bot's kill count to kills.
func ShouldLoot(cfg config.Loot, kills int64) bool {
	return cfg.GetLantern && cfg.GetEvery > 0 && kills%int64(cfg.GetEvery) == 0
}
