package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronolink/internal/logging"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels with your progress",
	Long: `Display every level of the catalog in play order with stars,
best time and lock state.

Examples:
  chronolink levels
  chronolink levels --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
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
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	list := localCampaign(cat, store, cfg, logging.Discard()).Progress()

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-4s  %-4s  %-28s  %-6s  %-5s  %-6s  %s\n", "#", "ID", "Name", "Pieces", "Stars", "Best", "")
	fmt.Printf("  %-4s  %-4s  %-28s  %-6s  %-5s  %-6s  %s\n", "--", "--", "----", "------", "-----", "----", "")

	for i, lvl := range cat.Levels {
		p := list[i]
		best := "-"
		if p.BestTime != nil {
			best = fmt.Sprintf("%ds", *p.BestTime)
		}
		status := ""
		if !p.Unlocked && i > 0 {
			status = "locked"
		}
		stars := strings.Repeat("*", p.Stars) + strings.Repeat(".", 3-p.Stars)
		fmt.Printf("  %-4d  %-4d  %-28s  %-6d  %-5s  %-6s  %s\n",
			i+1, lvl.ID, lvl.Name, len(lvl.Pieces), stars, best, status)
	}

	fmt.Println()
	fmt.Printf("Total: %d levels, %d/%d stars\n", cat.Len(), list.TotalStars(), 3*cat.Len())
}
