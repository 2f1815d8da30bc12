package progress

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// CurrentVersion is the save schema version written by Persist.
const CurrentVersion = 1

var (
	errMalformed   = errors.New("progress: malformed save data")
	errNoMigration = errors.New("progress: no migration step")
)

// migration upgrades a raw save blob by exactly one version.
type migration func(raw []byte) ([]byte, error)

// migrations maps a source version to the step producing version+1.
var migrations = map[int]migration{
	0: migrateV0,
}

// migrate upgrades raw to CurrentVersion one step at a time.
// It returns the upgraded blob and the version found in the input.
// Blobs newer than CurrentVersion are returned unchanged. When no step is
// registered for a version the blob is returned as far as it got, together
// with an error wrapping errNoMigration.
func migrate(raw []byte) ([]byte, int, error) {
	if !gjson.ValidBytes(raw) {
		return nil, 0, errMalformed
	}

	version := 0
	if v := gjson.GetBytes(raw, "version"); v.Exists() {
		version = int(v.Int())
	}
	found := version

	for version < CurrentVersion {
		step, ok := migrations[version]
		if !ok {
			return raw, found, fmt.Errorf("%w from version %d", errNoMigration, version)
		}
		var err error
		if raw, err = step(raw); err != nil {
			return nil, found, fmt.Errorf("progress: migrate v%d: %w", version, err)
		}
		version++
	}

	return raw, found, nil
}

// migrateV0 converts the unversioned layout, where levels was an array of
// records in catalog order, into the id-keyed map of version 1.
func migrateV0(raw []byte) ([]byte, error) {
	out := raw
	var err error

	levels := gjson.GetBytes(raw, "levels")
	if levels.IsArray() {
		if out, err = sjson.SetRawBytes(out, "levels", []byte("{}")); err != nil {
			return nil, err
		}
		levels.ForEach(func(_, rec gjson.Result) bool {
			id := rec.Get("levelId").Int()
			if id <= 0 {
				return true
			}
			out, err = sjson.SetRawBytes(out, "levels.:"+strconv.FormatInt(id, 10), []byte(rec.Raw))
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	} else if !levels.IsObject() {
		if out, err = sjson.SetRawBytes(out, "levels", []byte("{}")); err != nil {
			return nil, err
		}
	}

	if !gjson.GetBytes(out, "lastPlayedLevelId").Exists() {
		if out, err = sjson.SetBytes(out, "lastPlayedLevelId", 1); err != nil {
			return nil, err
		}
	}

	return sjson.SetBytes(out, "version", 1)
}
