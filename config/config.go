// Package config loads the settings of the lbk tool from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/ledgerbook"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up by default.
const DefaultFile = "ledgerbook.toml"

var validate = validator.New()

// Config holds the settings of a workbook session.
type Config struct {
	HomeCurrency           string                `toml:"home_currency" yaml:"home_currency" validate:"omitempty,len=3,uppercase"`
	MinRows                int                   `toml:"min_rows" yaml:"min_rows" validate:"min=0,max=100000"`
	OpeningBalanceOverride bool                  `toml:"opening_balance_override" yaml:"opening_balance_override"`
	LogLevel               string                `toml:"log_level" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Views                  map[string]ViewConfig `toml:"views" yaml:"views" validate:"dive"`
}

// ViewConfig overrides the definition of one aggregate view. Views are keyed
// by their short name ("sales", "director"...) or their sheet name.
type ViewConfig struct {
	Name          string `toml:"name" yaml:"name"`
	Filter        string `toml:"filter" yaml:"filter"`
	Amount        string `toml:"amount" yaml:"amount" validate:"omitempty,oneof=debit credit"`
	MultiCurrency *bool  `toml:"multi_currency" yaml:"multi_currency"`
	Preserve      string `toml:"preserve" yaml:"preserve" validate:"omitempty,oneof=append anchored"`
}

// NewDefaultConfig returns the settings used when there is no file.
func NewDefaultConfig() *Config {
	return &Config{
		HomeCurrency: ledgerbook.HomeCurrency,
		MinRows:      ledgerbook.DefaultMinRows,
		LogLevel:     "warn",
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Files ending in .yaml or .yml are YAML, anything else TOML. Unknown
// keys are rejected in both formats.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, applyEnvOverrides(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty file decodes to io.EOF
		if err := dec.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides and validates the
// result.
func applyEnvOverrides(cfg *Config) error {
	if level := os.Getenv("LEDGERBOOK_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if cur := os.Getenv("LEDGERBOOK_HOME_CURRENCY"); cur != "" {
		cfg.HomeCurrency = strings.ToUpper(cur)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Options converts the configuration into workbook options.
func (c *Config) Options() (ledgerbook.Options, error) {
	opts := ledgerbook.Options{
		MinRows:                c.MinRows,
		OpeningBalanceOverride: c.OpeningBalanceOverride,
		HomeCurrency:           c.HomeCurrency,
		Views:                  make(map[ledgerbook.ViewKind]ledgerbook.ViewSpec),
	}
	defaults := ledgerbook.DefaultViews()
	var errs []error
	for key, vc := range c.Views {
		kind, err := ledgerbook.ParseViewKind(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		spec, err := vc.apply(defaults[kind])
		if err != nil {
			errs = append(errs, fmt.Errorf("view %q: %w", key, err))
			continue
		}
		opts.Views[kind] = spec
	}
	if err := errors.Join(errs...); err != nil {
		return ledgerbook.Options{}, err
	}
	return opts, nil
}

func (vc ViewConfig) apply(spec ledgerbook.ViewSpec) (ledgerbook.ViewSpec, error) {
	if vc.Name != "" {
		spec.Name = vc.Name
	}
	if vc.Filter != "" {
		spec.SubjectFilter = vc.Filter
	}
	switch vc.Amount {
	case "debit":
		spec.Amount = ledgerbook.ColDebit
	case "credit":
		spec.Amount = ledgerbook.ColCredit
	}
	if vc.MultiCurrency != nil {
		spec.MultiCurrency = *vc.MultiCurrency
	}
	if vc.Preserve != "" {
		p, err := ledgerbook.ParsePreserveMode(vc.Preserve)
		if err != nil {
			return spec, err
		}
		spec.Preserve = p
	}
	return spec, spec.Validate()
}
