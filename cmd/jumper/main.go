// jumper is an endless platform jumper for the terminal.
//
// Usage:
//
//	jumper play                 - Play interactively
//	jumper sim                  - Run a headless scripted session
//	jumper replays list         - List recorded runs
//	jumper replays watch <id>   - Watch a recorded run
//	jumper config               - Print the effective configuration
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.jumper/replays.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagConfig   string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumper",
	Short: "Platform Jumper - bounce across scrolling platforms in your terminal",
	Long: `Platform Jumper is an endless platformer for the terminal. A ball falls
onto platforms that scroll in from the right; land on new platforms to
score, and every ten points the platforms speed up.

Available commands:
  play     - Play interactively
  sim      - Run a headless session with a scripted jump cadence
  replays  - List, watch, verify, export and import recorded runs
  config   - Print the effective configuration

Examples:
  jumper play
  jumper play --seed 42 --record
  jumper sim --ticks 2000 --jump-every 12
  jumper replays list
  jumper config > ~/.jumper/configs/jumper.yaml`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumper/replays.db", "Path to replays database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.jumper/jumper.log", "File that receives logs while a terminal UI is running")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(configCmd)
}
