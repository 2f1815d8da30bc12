package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chronolink/internal/core"
	"github.com/vovakirdan/chronolink/internal/logging"
	"github.com/vovakirdan/chronolink/internal/platform/tui"
)

var flagMonochrome bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the interactive game.

Controls:
  Up/Down    - Move cursor (moves the held piece while grabbing)
  Enter      - Grab / drop a piece
  Space/R    - Rotate piece
  C          - Check the sequence
  I          - Show piece description
  Esc        - Back to menu
  Q/Ctrl+C   - Quit

Examples:
  chronolink play
  chronolink play --seed 42
  chronolink play --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Use the grayscale theme")
}

func runPlay(_ *cobra.Command, _ []string) {
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

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closer = logging.Discard(), nil
	}
	if closer != nil {
		defer closer.Close()
	}

	// Open progress storage
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - progress lasts for this run only
		store = nil
	}

	camp := localCampaign(cat, store, cfg, logger)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	app := tui.NewApp(camp, core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    cfg.Game.Seed,
	}, logger)
	if flagMonochrome {
		app = app.WithTheme(tui.MonochromeTheme())
	}

	// Run the game
	runErr := tui.Run(app)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
