// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFile represents the YAML structure of a level file.
// A file holds one or more levels.
type YAMLFile struct {
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level in YAML format.
type YAMLLevel struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	ScoreGoal  int      `yaml:"score_goal"`
	Moves      int      `yaml:"moves"`
	Size       YAMLSize `yaml:"size"`
	Types      int      `yaml:"types"`
	Difficulty string   `yaml:"difficulty,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID         string
	Name       string
	ScoreGoal  int
	Moves      int
	Rows       int
	Cols       int
	Types      int
	Difficulty string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) ([]Level, error) {
	var yf YAMLFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	out := make([]Level, 0, len(yf.Levels))
	for i, yl := range yf.Levels {
		id := yl.ID
		if id == "" {
			id = fmt.Sprintf("lvl%02d", i+1)
		}
		name := yl.Name
		if name == "" {
			name = id
		}
		difficulty := yl.Difficulty
		if difficulty == "" {
			difficulty = "Custom"
		}

		out = append(out, Level{
			ID:         id,
			Name:       name,
			ScoreGoal:  yl.ScoreGoal,
			Moves:      yl.Moves,
			Rows:       yl.Size.Rows,
			Cols:       yl.Size.Cols,
			Types:      yl.Types,
			Difficulty: difficulty,
		})
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
