package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names, shared by every search location.
const (
	BubblePopFile  = "bubblepop.yaml"
	PlinkoFile     = "plinko.yaml"
	CardRevealFile = "cardreveal.yaml"
	WordMatchFile  = "wordmatch.yaml"
	CatalogFile    = "categories.yaml"
)

// Set is every config file the games need.
type Set struct {
	BubblePop  BubblePopConfig
	Plinko     PlinkoConfig
	CardReveal CardRevealConfig
	WordMatch  WordMatchConfig
	Catalog    CatalogConfig
}

// LoadAll loads every config file from customDir (if set) or the default
// search locations.
func LoadAll(customDir string) (Set, error) {
	var set Set
	var err error
	if set.BubblePop, err = LoadBubblePop(customDir); err != nil {
		return set, err
	}
	if set.Plinko, err = LoadPlinko(customDir); err != nil {
		return set, err
	}
	if set.CardReveal, err = LoadCardReveal(customDir); err != nil {
		return set, err
	}
	if set.WordMatch, err = LoadWordMatch(customDir); err != nil {
		return set, err
	}
	if set.Catalog, err = LoadCatalog(customDir); err != nil {
		return set, err
	}
	return set, nil
}

// LoadBubblePop loads Bubble-Pop configuration.
// Search order: customDir/bubblepop.yaml -> ~/.cardquest/configs/bubblepop.yaml -> ./configs/bubblepop.yaml -> embedded default
func LoadBubblePop(customDir string) (BubblePopConfig, error) {
	return load(BubblePopFile, customDir, defaultBubblePopYAML, DefaultBubblePopConfig)
}

// LoadPlinko loads Plinko configuration.
// Search order: customDir/plinko.yaml -> ~/.cardquest/configs/plinko.yaml -> ./configs/plinko.yaml -> embedded default
func LoadPlinko(customDir string) (PlinkoConfig, error) {
	return load(PlinkoFile, customDir, defaultPlinkoYAML, DefaultPlinkoConfig)
}

// LoadCardReveal loads Card-Reveal configuration.
func LoadCardReveal(customDir string) (CardRevealConfig, error) {
	return load(CardRevealFile, customDir, defaultCardRevealYAML, DefaultCardRevealConfig)
}

// LoadWordMatch loads Word-Match configuration.
func LoadWordMatch(customDir string) (WordMatchConfig, error) {
	return load(WordMatchFile, customDir, defaultWordMatchYAML, DefaultWordMatchConfig)
}

// LoadCatalog loads the category to card catalog. Catalog files replace
// the built-in categories rather than merging into them.
func LoadCatalog(customDir string) (CatalogConfig, error) {
	cfg, err := load(CatalogFile, customDir, defaultCategoriesYAML, func() CatalogConfig { return CatalogConfig{} })
	if err != nil {
		return cfg, err
	}
	if len(cfg.Categories) == 0 {
		return DefaultCatalogConfig(), nil
	}
	return cfg, nil
}

// load walks the search order for one config file. A file missing from
// customDir falls through; a file present there but unreadable is an error.
// Every file is decoded over the hard-coded defaults, so omitted keys keep
// their default values.
func load[T any](filename, customDir string, embedded []byte, fallback func() T) (T, error) {
	// Try custom directory first
	if customDir != "" {
		customPath := filepath.Join(customDir, filename)
		data, err := os.ReadFile(customPath)
		switch {
		case err == nil:
			cfg := fallback()
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
			}
			return cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return fallback(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			cfg := fallback()
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ConfigDir returns the per-user config directory, or empty if home is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cardquest", "configs")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
