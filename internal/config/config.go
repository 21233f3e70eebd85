package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-scripts/krankenhaus/pkg/common"
)

// Load returns the default configuration, updated from the YAML file at path
// when path is not empty
func Load(path string) (common.Configuration, error) {
	cfg := common.DefaultConfiguration()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings the scraper cannot run without
func Validate(cfg common.Configuration) error {
	var errs []error
	if cfg.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	}
	if cfg.OutputFile == "" {
		errs = append(errs, errors.New("output_file is required"))
	}
	if cfg.ListingDelay < 0 || cfg.FieldTimeout < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	return errors.Join(errs...)
}

// Overrides are command line values; zero values leave the configuration
// unchanged. The delays are pointers so an explicit 0s still applies.
type Overrides struct {
	BaseURL      string
	Regions      []string
	OutputFile   string
	DBPath       string
	ListingDelay *time.Duration
	FieldTimeout *time.Duration
	WindowWidth  int
	WindowHeight int
	Headful      bool
	SnapshotDir  string
}

// Apply copies every non-zero override into cfg
func (o Overrides) Apply(cfg *common.Configuration) {
	if o.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(o.BaseURL, "/")
	}
	if len(o.Regions) > 0 {
		cfg.Regions = o.Regions
	}
	if o.OutputFile != "" {
		cfg.OutputFile = o.OutputFile
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.ListingDelay != nil {
		cfg.ListingDelay = *o.ListingDelay
	}
	if o.FieldTimeout != nil {
		cfg.FieldTimeout = *o.FieldTimeout
	}
	if o.WindowWidth != 0 {
		cfg.WindowWidth = o.WindowWidth
	}
	if o.WindowHeight != 0 {
		cfg.WindowHeight = o.WindowHeight
	}
	if o.Headful {
		cfg.Headless = false
	}
	if o.SnapshotDir != "" {
		cfg.SnapshotDir = o.SnapshotDir
	}
}
