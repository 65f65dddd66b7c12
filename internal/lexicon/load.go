package lexicon

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a custom lexicon.
type File struct {
	Entries []Entry `yaml:"entries" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads a YAML lexicon from path. An empty path returns the built-in table.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}
	return New(file.Entries)
}

// Marshal encodes the built-in table as a YAML lexicon document.
func Marshal() ([]byte, error) {
	return yaml.Marshal(File{Entries: builtin})
}
