package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chronolink/internal/config"
	"github.com/vovakirdan/chronolink/internal/logging"
	"github.com/vovakirdan/chronolink/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chronolink SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user has their own saved progress and run history,
kept in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key from the config

Examples:
  chronolink serve                           # Listen on the configured address
  chronolink serve --ssh :2222               # Listen on port 2222
  chronolink serve --host-key ./my_host_key  # Use specific host key
  chronolink serve --db ./chronolink.db      # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}

	logger, err := logging.Stderr(cfg.Log)
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
		logger.Warn("could not open progress database", "error", err)
		// Continue without storage
		store = nil
	}

	sshCfg := tui.DefaultSSHServerConfig()
	if cfg.Server.Address != "" {
		sshCfg.Address = cfg.Server.Address
	}
	if cfg.Server.IdleTimeoutMinutes > 0 {
		sshCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutMinutes) * time.Minute
	}
	if cfg.Storage.SaveKey != "" {
		sshCfg.SaveKey = cfg.Storage.SaveKey
	}
	sshCfg.HostKeyPath = config.ExpandPath(cfg.Server.HostKey)
	sshCfg.Seed = cfg.Game.Seed

	server, err := tui.NewSSHServer(sshCfg, cat, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting chronolink SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
