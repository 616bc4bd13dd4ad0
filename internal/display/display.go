package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ambonmud/swarm/internal/config"
)

// Styles for run output
var (
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D4FF")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E22E"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E22E")).Bold(true)
)

// Banner renders the startup summary of the effective configuration.
func Banner(cfg *config.Swarm) string {
	var sb strings.Builder

	sb.WriteString(bannerStyle.Render(fmt.Sprintf(
		"Starting swarm: clients=%d, duration=%.1fm, url=%s", cfg.Clients, cfg.Minutes, cfg.URL)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf(
		"Mix: move=%.2f, kill=%.2f, look=%.2f | moves=%v | backtrack_avoid=%v",
		cfg.Behavior.MoveWeight, cfg.Behavior.KillWeight, cfg.Behavior.LookWeight,
		cfg.Behavior.Moves, cfg.Behavior.AvoidImmediateBacktrack)))
	sb.WriteString("\n")

	interval := 0.0
	if cfg.RampPerSec > 0 {
		interval = 1.0 / cfg.RampPerSec
	}
	sb.WriteString(labelStyle.Render(fmt.Sprintf(
		"Ramp: %.1f/sec (interval=%.3fs), think=%d-%dms, get=%v (every %d kills)",
		cfg.RampPerSec, interval,
		cfg.Timing.ThinkMinMs, cfg.Timing.ThinkMaxMs,
		cfg.Loot.GetLantern, cfg.Loot.GetEvery)))

	return sb.String()
}

// Progress renders one periodic progress line.
func Progress(elapsedS float64, started, clients int, kills, moves, gets int64) string {
	return progressStyle.Render(fmt.Sprintf(
		"[progress] t=%5.1fs started=%d/%d (kills=%d moves=%d gets=%d)",
		elapsedS, started, clients, kills, moves, gets))
}

// Summary renders the final aggregate line.
func Summary(elapsedS float64, kills, moves, gets int64) string {
	return doneStyle.Render(fmt.Sprintf(
		"[done] elapsed=%.1fs kills=%d moves=%d gets=%d",
		elapsedS, kills, moves, gets))
}
