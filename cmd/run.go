package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ambonmud/swarm/internal/config"
	"github.com/ambonmud/swarm/internal/swarm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bot swarm against a server",
	Long: `Connect the configured number of bot clients to a server over websockets,
create a fresh user for each, and have them wander, fight and loot until the
run duration elapses. Flags override values from --config.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildSwarmConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := log.New(os.Stderr, "", log.LstdFlags)
		o := swarm.New(cfg, logger, os.Stdout)

		if err := o.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// buildSwarmConfig merges defaults, the optional TOML config file, and any
// explicitly set flags, then clamps everything to safe minimums.
func buildSwarmConfig(cmd *cobra.Command) (*config.Swarm, error) {
	flags := cmd.Flags()

	cfg := config.DefaultSwarm()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if flags.Changed("url") {
		cfg.URL, _ = flags.GetString("url")
	}
	if flags.Changed("clients") {
		cfg.Clients, _ = flags.GetInt("clients")
	}
	if flags.Changed("minutes") {
		cfg.Minutes, _ = flags.GetFloat64("minutes")
	}
	if flags.Changed("ramp-per-sec") {
		cfg.RampPerSec, _ = flags.GetFloat64("ramp-per-sec")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("move-weight") {
		cfg.Behavior.MoveWeight, _ = flags.GetFloat64("move-weight")
	}
	if flags.Changed("kill-weight") {
		cfg.Behavior.KillWeight, _ = flags.GetFloat64("kill-weight")
	}
	if flags.Changed("look-weight") {
		cfg.Behavior.LookWeight, _ = flags.GetFloat64("look-weight")
	}
	if flags.Changed("moves") {
		cfg.Behavior.Moves, _ = flags.GetStringSlice("moves")
	}
	if flags.Changed("avoid-immediate-backtrack") {
		cfg.Behavior.AvoidImmediateBacktrack, _ = flags.GetBool("avoid-immediate-backtrack")
	}
	if flags.Changed("get-lantern") {
		cfg.Loot.GetLantern, _ = flags.GetBool("get-lantern")
	}
	if flags.Changed("get-every") {
		cfg.Loot.GetEvery, _ = flags.GetInt("get-every")
	}
	if flags.Changed("think-min-ms") {
		cfg.Timing.ThinkMinMs, _ = flags.GetInt("think-min-ms")
	}
	if flags.Changed("think-max-ms") {
		cfg.Timing.ThinkMaxMs, _ = flags.GetInt("think-max-ms")
	}
	if flags.Changed("progress-every-s") {
		cfg.Timing.ProgressEveryS, _ = flags.GetFloat64("progress-every-s")
	}
	if flags.Changed("connect-timeout-s") {
		cfg.Timeouts.ConnectS, _ = flags.GetFloat64("connect-timeout-s")
	}
	if flags.Changed("io-timeout-s") {
		cfg.Timeouts.IOS, _ = flags.GetFloat64("io-timeout-s")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("a websocket URL is required (--url or config file)")
	}

	cfg.Normalize()
	return cfg, nil
}

func init() {
	initRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func initRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.String("config", "", "optional TOML config file; flags override it")
	f.String("url", "", "websocket URL, e.g. ws://localhost:8080/ws")
	f.Int("clients", 50, "number of bot clients")
	f.Float64("minutes", 5.0, "how long to run (minutes)")
	f.Float64("ramp-per-sec", 10.0, "clients to start per second (0 = all at once)")
	f.Bool("verbose", false, "log per-bot traffic (very noisy)")

	f.Float64("move-weight", 1.0, "relative weight for moving")
	f.Float64("kill-weight", 2.5, "relative weight for killing rats")
	f.Float64("look-weight", 0.4, "relative weight for look")
	f.StringSlice("moves", config.DefaultMoves, "allowed movement commands")
	f.Bool("avoid-immediate-backtrack", false, "avoid instantly reversing direction")

	f.Bool("get-lantern", false, "occasionally run 'get lantern'")
	f.Int("get-every", 6, "run 'get lantern' every N kills (if enabled)")

	f.Int("think-min-ms", 250, "min think time between actions (ms)")
	f.Int("think-max-ms", 900, "max think time between actions (ms)")

	f.Float64("progress-every-s", 10.0, "progress print interval (seconds)")
	f.Float64("connect-timeout-s", 10.0, "websocket connect timeout")
	f.Float64("io-timeout-s", 30.0, "timeout for waiting on prompts / login text")
}
