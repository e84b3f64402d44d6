package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-candy/internal/games/candy/levels/formats"
)

// Loader reads custom catalogs from a YAML file or a directory of them.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load builds a catalog from Root. A file yields its levels in file order;
// a directory is scanned recursively and its levels are sorted by ID.
func (l *Loader) Load() (*Catalog, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	var lvls []LevelConfig
	if info.IsDir() {
		lvls, err = l.loadDir()
	} else {
		lvls, err = l.LoadFile(l.Root)
	}
	if err != nil {
		return nil, err
	}

	return NewCatalog(lvls)
}

// loadDir walks Root and collects levels from every supported file.
func (l *Loader) loadDir() ([]LevelConfig, error) {
	var lvls []LevelConfig

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		fileLevels, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		lvls = append(lvls, fileLevels...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.SliceStable(lvls, func(i, j int) bool {
		return lvls[i].ID < lvls[j].ID
	})
	return lvls, nil
}

// LoadFile loads the levels of a single file.
func (l *Loader) LoadFile(path string) ([]LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	out := make([]LevelConfig, len(parsed))
	for i, p := range parsed {
		out[i] = LevelConfig{
			ID:         p.ID,
			Name:       p.Name,
			ScoreGoal:  p.ScoreGoal,
			MoveBudget: p.Moves,
			Rows:       p.Rows,
			Cols:       p.Cols,
			NumTypes:   p.Types,
			Difficulty: Difficulty(p.Difficulty),
		}
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w (in %s)", err, path)
		}
	}
	return out, nil
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) ([]formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
