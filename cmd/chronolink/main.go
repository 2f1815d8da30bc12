// chronolink is a terminal sequencing puzzle: put the steps of a timeline
// back in order and turn every piece upright before the clock runs out.
//
// Usage:
//
//	chronolink play              - Open the interactive game (default)
//	chronolink levels            - List levels with your progress
//	chronolink progress          - Show a progress summary (--reset to wipe it)
//	chronolink runs <level-id>   - Show your fastest runs on a level
//	chronolink serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Path to config YAML
//	--db <path>      - Set database path (default: ~/.chronolink/chronolink.db)
//	--levels <path>  - Path to a custom level catalog YAML
//	--seed <value>   - Set RNG seed for reproducible scrambles
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLevels  string
	flagSeed    int64
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chronolink",
	Short: "Chronolink - Restore the timeline in your terminal",
	Long: `Chronolink is a sequencing puzzle for the terminal. Every level is a
scrambled timeline: reorder the pieces and rotate each one upright, then
check your answer. Faster solves earn more stars.

Available commands:
  play      - Play the game (default)
  levels    - Show all levels and your progress
  progress  - Show or reset saved progress
  runs      - Show your fastest runs on a level
  serve     - Start SSH server for remote play

Examples:
  chronolink
  chronolink play --seed 42
  chronolink levels
  chronolink runs 3
  chronolink serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to level catalog YAML (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Path to log file (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
