package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/erpindex/internal/ingest"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SourcePath       string // .csv file or directory of .csv files
	Ingest           ingest.Options
	DefaultThreshold int

	LogFormat string
	LogLevel  string

	// Course selects one-shot mode: answer a single query and exit.
	Course    string
	Threshold int

	// Interactive enables the menu text and prompts.
	Interactive bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" {
		return nil, errors.New("SourcePath is a required configuration field and cannot be empty")
	}
	if err := cfg.Ingest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest options: %w", err)
	}
	return &cfg, nil
}

// OneShot reports whether a single query was requested instead of the menu.
func (c *Config) OneShot() bool {
	return c.Course != ""
}
