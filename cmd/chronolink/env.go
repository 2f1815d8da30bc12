package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronolink/internal/campaign"
	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/config"
	"github.com/vovakirdan/chronolink/internal/progress"
	"github.com/vovakirdan/chronolink/internal/storage"
)

// localPlayer is the run history owner for games played on this terminal.
const localPlayer = "local"

// loadConfig loads the config file and applies command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevels != "" {
		cfg.Catalog.Path = flagLevels
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg, nil
}

// loadCatalog loads the level catalog configured in cfg.
func loadCatalog(cfg config.Config) (catalog.Catalog, error) {
	path := cfg.Catalog.Path
	if path != "" {
		path = config.ExpandPath(path)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return cat, fmt.Errorf("cannot load levels: %w", err)
	}
	return cat, nil
}

// openStore opens the progress database configured in cfg.
func openStore(cfg config.Config) (*storage.Store, error) {
	return storage.Open(config.ExpandPath(cfg.Storage.DBPath))
}

// localCampaign builds the campaign for this terminal's player. Without a
// store, progress lives in memory for the duration of the process.
func localCampaign(cat catalog.Catalog, store *storage.Store, cfg config.Config, logger *log.Logger) *campaign.Campaign {
	var kv progress.KV = progress.NewMemoryKV()
	opts := []campaign.Option{campaign.WithLogger(logger)}
	if store != nil {
		kv = store
		opts = append(opts, campaign.WithRunRecorder(storage.RunLog{Store: store, Player: localPlayer}))
	}

	ps := progress.New(kv,
		progress.WithKey(cfg.Storage.SaveKey),
		progress.WithLogger(logger),
	)
	return campaign.New(cat, ps, opts...)
}
