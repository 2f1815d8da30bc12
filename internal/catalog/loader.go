package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// Default returns the built-in catalog.
func Default() Catalog {
	cat, err := Parse(defaultLevelsYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded levels are invalid: %v", err))
	}
	return cat
}

// Load loads the level catalog.
// Search order: customPath -> ~/.chronolink/levels.yaml -> ./configs/levels.yaml -> embedded default.
// Only an explicit customPath can produce an error; broken files elsewhere are skipped.
func Load(customPath string) (Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read levels %s: %w", customPath, err)
		}
		cat, err := Parse(data)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to parse levels %s: %w", customPath, err)
		}
		return cat, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".chronolink", "levels.yaml")); err == nil {
			if cat, err := Parse(data); err == nil {
				return cat, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/levels.yaml"); err == nil {
		if cat, err := Parse(data); err == nil {
			return cat, nil
		}
	}

	return Default(), nil
}
