package bot

import "sync/atomic"

// Stats holds one bot's action counters. The owning bot is the only writer;
// the orchestrator's reporter reads them concurrently for aggregation, so
// the counters are atomics.
type Stats struct {
	Kills atomic.Int64
	Moves atomic.Int64
	Gets  atomic.Int64
}

// Totals sums counters across a set of stats.
func Totals(all []*Stats) (kills, moves, gets int64) {
	for _, s := range all {
		kills += s.Kills.Load()
		moves += s.Moves.Load()
		gets += s.Gets.Load()
	}
	return kills, moves, gets
}
