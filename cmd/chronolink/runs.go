package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs <level-id>",
	Short: "Show your fastest runs on a level",
	Long: `Display your fastest solves of the specified level.

Examples:
  chronolink runs 1
  chronolink runs 12 --limit 5`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) {
	levelID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level id %q\n", args[0])
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Check if level exists
	index := cat.Index(levelID)
	if index < 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'chronolink levels' to see available levels.")
		os.Exit(1)
	}
	lvl, _ := cat.Get(index)

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(localPlayer, levelID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Fastest Runs - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-5s  %s\n", "Rank", "Time", "Stars", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %s\n", "----", "----", "-----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6s  %-5d  %s\n", i+1, fmt.Sprintf("%ds", r.Seconds), r.Stars, dateStr)
	}

	total, err := store.RunCount(localPlayer, levelID)
	if err == nil && total > len(runs) {
		fmt.Println()
		fmt.Printf("Showing %d of %d runs.\n", len(runs), total)
	}
}
