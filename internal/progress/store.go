package progress

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/vovakirdan/chronolink/internal/catalog"
)

// DefaultKey is the storage key of the save blob.
const DefaultKey = "chrono_connect_save_v2"

// Store loads and saves progress through a KV collaborator.
// It never returns errors to callers: read failures degrade to an empty
// save and write failures are logged.
type Store struct {
	kv     KV
	key    string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key (e.g. to keep one save per player).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for degraded reads and failed writes.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store on top of kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Hydrate merges the saved data with the catalog and returns one record per
// level in catalog order. Saved records are authoritative; levels missing
// from the save start locked with no stars, except the first. A level
// following one with stars is always unlocked.
func (s *Store) Hydrate(cat catalog.Catalog) List {
	save := s.load()

	list := make(List, len(cat.Levels))
	for i, lvl := range cat.Levels {
		if saved, ok := save.Levels[lvl.ID]; ok {
			saved.LevelID = lvl.ID
			list[i] = saved
			continue
		}
		list[i] = LevelProgress{
			LevelID:  lvl.ID,
			Unlocked: i == 0,
		}
	}

	for i := 0; i < len(list)-1; i++ {
		if list[i].Stars > 0 {
			list[i+1].Unlocked = true
		}
	}

	return list
}

// load reads the save blob, falling back to an empty save on any failure.
func (s *Store) load() SaveData {
	empty := emptySave()
	if s.kv == nil {
		return empty
	}

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Error("failed to read save data", "key", s.key, "error", err)
		return empty
	}
	if !ok || len(raw) == 0 {
		return empty
	}

	upgraded, found, err := migrate(raw)
	switch {
	case errors.Is(err, errNoMigration):
		s.logger.Warn("save version has no migration, loading as-is",
			"found", found, "expected", CurrentVersion)
	case err != nil:
		s.logger.Error("failed to load save data", "key", s.key, "error", err)
		return empty
	case found > CurrentVersion:
		s.logger.Warn("save version is newer than supported, loading as-is",
			"found", found, "expected", CurrentVersion)
	case found < CurrentVersion:
		s.logger.Info("migrated save data", "from", found, "to", CurrentVersion)
	}

	return s.decode(upgraded)
}

// decode reads the save one level record at a time so a damaged record
// costs only that level.
func (s *Store) decode(raw []byte) SaveData {
	root := gjson.ParseBytes(raw)
	save := emptySave()
	if !root.IsObject() {
		s.logger.Error("failed to decode save data", "key", s.key, "error", errMalformed)
		return save
	}

	save.Version = int(root.Get("version").Int())
	if v := root.Get("lastPlayedLevelId"); v.Exists() {
		save.LastPlayedLevelID = int(v.Int())
	}

	levels := root.Get("levels")
	if levels.Exists() && !levels.IsObject() {
		s.logger.Warn("ignoring save levels with unexpected shape", "key", s.key)
		return save
	}
	levels.ForEach(func(k, rec gjson.Result) bool {
		id, err := strconv.Atoi(k.String())
		if err != nil || id <= 0 {
			s.logger.Warn("skipping save record with bad level id", "key", s.key, "level_id", k.String())
			return true
		}
		var lp LevelProgress
		if err := json.Unmarshal([]byte(rec.Raw), &lp); err != nil {
			s.logger.Warn("skipping damaged save record", "key", s.key, "level_id", id, "error", err)
			return true
		}
		save.Levels[id] = lp
		return true
	})
	return save
}

// Persist writes the list as the current save. Failures are logged and dropped.
func (s *Store) Persist(list List) {
	if s.kv == nil {
		return
	}

	data, err := json.Marshal(buildSave(list))
	if err != nil {
		s.logger.Error("failed to encode save data", "error", err)
		return
	}

	if err := s.kv.Set(s.key, data); err != nil {
		s.logger.Error("failed to save progress", "key", s.key, "error", err)
	}
}

// Reset deletes the saved blob.
func (s *Store) Reset() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Delete(s.key)
}

// buildSave wraps a list with the current version. The last played level is
// the highest level id with stars, defaulting to 1.
func buildSave(list List) SaveData {
	save := SaveData{
		Version:           CurrentVersion,
		LastPlayedLevelID: 1,
		Levels:            make(map[int]LevelProgress, len(list)),
	}

	last := 0
	for _, p := range list {
		save.Levels[p.LevelID] = p
		if p.Stars > 0 && p.LevelID > last {
			last = p.LevelID
		}
	}
	if last > 0 {
		save.LastPlayedLevelID = last
	}
	return save
}

func emptySave() SaveData {
	return SaveData{
		Version:           CurrentVersion,
		LastPlayedLevelID: 1,
		Levels:            make(map[int]LevelProgress),
	}
}
