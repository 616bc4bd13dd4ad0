package config

import "time"

// Swarm holds the full configuration for one swarm run. It is read once at
// startup and shared read-only by every bot.
type Swarm struct {
	URL        string  `toml:"url"`
	Clients    int     `toml:"clients"`
	Minutes    float64 `toml:"minutes"`
	RampPerSec float64 `toml:"ramp_per_sec"`
	Verbose    bool    `toml:"verbose"`

	Behavior Behavior `toml:"behavior"`
	Loot     Loot     `toml:"loot"`
	Timing   Timing   `toml:"timing"`
	Timeouts Timeouts `toml:"timeouts"`
}

// Behavior controls the action mix and movement choices.
type Behavior struct {
	MoveWeight              float64  `toml:"move_weight"`
	KillWeight              float64  `toml:"kill_weight"`
	LookWeight              float64  `toml:"look_weight"`
	Moves                   []string `toml:"moves"`
	AvoidImmediateBacktrack bool     `toml:"avoid_immediate_backtrack"`
}

// Loot controls the occasional "get" command after kills.
type Loot struct {
	GetLantern bool `toml:"get_lantern"`
	GetEvery   int  `toml:"get_every"`
}

// Timing controls think time and progress reporting.
type Timing struct {
	ThinkMinMs     int     `toml:"think_min_ms"`
	ThinkMaxMs     int     `toml:"think_max_ms"`
	ProgressEveryS float64 `toml:"progress_every_s"`
}

// Timeouts controls connect and IO deadlines.
type Timeouts struct {
	ConnectS float64 `toml:"connect_s"`
	IOS      float64 `toml:"io_s"`
}

// DefaultMoves is the standard six-direction movement set.
var DefaultMoves = []string{"north", "south", "east", "west", "up", "down"}

// DefaultSwarm returns configuration with sensible defaults.
func DefaultSwarm() *Swarm {
	return &Swarm{
		Clients:    50,
		Minutes:    5.0,
		RampPerSec: 10.0,
		Behavior: Behavior{
			MoveWeight: 1.0,
			KillWeight: 2.5,
			LookWeight: 0.4,
			Moves:      append([]string(nil), DefaultMoves...),
		},
		Loot: Loot{
			GetEvery: 6,
		},
		Timing: Timing{
			ThinkMinMs:     250,
			ThinkMaxMs:     900,
			ProgressEveryS: 10.0,
		},
		Timeouts: Timeouts{
			ConnectS: 10.0,
			IOS:      30.0,
		},
	}
}

// Normalize clamps every field to its safe minimum. Called once after flags
// and config file are merged, before the run starts.
func (c *Swarm) Normalize() {
	if c.Clients < 0 {
		c.Clients = 0
	}
	if c.Minutes < 0.1 {
		c.Minutes = 0.1
	}
	if c.RampPerSec < 0 {
		c.RampPerSec = 0
	}
	if c.Behavior.MoveWeight < 0 {
		c.Behavior.MoveWeight = 0
	}
	if c.Behavior.KillWeight < 0 {
		c.Behavior.KillWeight = 0
	}
	if c.Behavior.LookWeight < 0 {
		c.Behavior.LookWeight = 0
	}
	if len(c.Behavior.Moves) == 0 {
		c.Behavior.Moves = append([]string(nil), DefaultMoves...)
	}
	if c.Loot.GetEvery < 1 {
		c.Loot.GetEvery = 1
	}
	if c.Timing.ThinkMinMs < 0 {
		c.Timing.ThinkMinMs = 0
	}
	if c.Timing.ThinkMaxMs < c.Timing.ThinkMinMs {
		c.Timing.ThinkMaxMs = c.Timing.ThinkMinMs
	}
	if c.Timing.ProgressEveryS < 1.0 {
		c.Timing.ProgressEveryS = 1.0
	}
	if c.Timeouts.ConnectS < 1.0 {
		c.Timeouts.ConnectS = 1.0
	}
	if c.Timeouts.IOS < 2.0 {
		c.Timeouts.IOS = 2.0
	}
}

// Duration returns the total run duration.
func (c *Swarm) Duration() time.Duration {
	return time.Duration(c.Minutes * float64(time.Minute))
}

// ConnectTimeout returns the websocket dial timeout.
func (c *Swarm) ConnectTimeout() time.Duration {
	return time.Duration(c.Timeouts.ConnectS * float64(time.Second))
}

// IOTimeout returns the deadline for waiting on prompts and login text.
func (c *Swarm) IOTimeout() time.Duration {
	return time.Duration(c.Timeouts.IOS * float64(time.Second))
}

// ProgressInterval returns the progress report interval.
func (c *Swarm) ProgressInterval() time.Duration {
	return time.Duration(c.Timing.ProgressEveryS * float64(time.Second))
}
