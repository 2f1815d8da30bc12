package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronolink/internal/logging"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
	Long: `Display a summary of your saved progress.

With --reset, all saved progress and your run history are deleted.

Examples:
  chronolink progress
  chronolink progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete saved progress and run history")
}

func runProgress(_ *cobra.Command, _ []string) {
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

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	camp := localCampaign(cat, store, cfg, logging.Discard())

	if flagReset {
		if err := camp.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		if err := store.ClearRuns(localPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Progress reset.")
		return
	}

	list := camp.Progress()
	unlocked := 0
	for _, p := range list {
		if p.Unlocked {
			unlocked++
		}
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  Completed: %d/%d levels\n", list.Completed(), len(list))
	fmt.Printf("  Unlocked:  %d\n", unlocked)
	fmt.Printf("  Stars:     %d/%d\n", list.TotalStars(), 3*len(list))

	if !camp.CanContinue() {
		fmt.Println()
		fmt.Println("No progress yet. Run 'chronolink play' to start!")
		return
	}

	next := camp.Continue()
	fmt.Printf("  Next:      level %d (%s)\n", next+1, camp.Current().Name)
}
