package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "damage_dealt.yaml"
	EnvPrefix = "DAMAGE_DEALT"
)

// SortPredicates are the sort keys accepted by sort.predicate.
var SortPredicates = []string{"n", "edpss", "esdpss", "es", "edpsh", "esdpsh", "eh"}

type ChartConfig struct {
	Points   int     `mapstructure:"points"`
	MaxRange float64 `mapstructure:"max_range"`
}

type SortConfig struct {
	Predicate  string `mapstructure:"predicate"`
	Descending bool   `mapstructure:"descending"`
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	XLSX bool   `mapstructure:"xlsx"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
	Show int    `mapstructure:"show"`
}

// Settings is the resolved run configuration.
type Settings struct {
	BuildPath         string        `mapstructure:"build_path"`
	Target            string        `mapstructure:"target"`
	CatalogPath       string        `mapstructure:"catalog_path"`
	Range             float64       `mapstructure:"range"`
	MaxRange          float64       `mapstructure:"max_range"`
	Chart             ChartConfig   `mapstructure:"chart"`
	Sort              SortConfig    `mapstructure:"sort"`
	Language          string        `mapstructure:"language"`
	TranslationsPath  string        `mapstructure:"translations_path"`
	Output            OutputConfig  `mapstructure:"output"`
	BaselineTablePath string        `mapstructure:"baseline_table_path"`
	History           HistoryConfig `mapstructure:"history"`
	LogLevel          string        `mapstructure:"log_level"`
}

// EngagementRange is the range in metres selected by the range fraction.
func (s Settings) EngagementRange() float64 {
	return s.Range * s.MaxRange
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("build_path", filepath.Join("input", "damage_dealt", "build.yaml"))
	v.SetDefault("target", "anaconda")
	v.SetDefault("catalog_path", "")
	v.SetDefault("range", 0.1667)
	v.SetDefault("max_range", 6000.0)

	v.SetDefault("chart.points", 200)
	v.SetDefault("chart.max_range", 6000.0)

	v.SetDefault("sort.predicate", "n")
	v.SetDefault("sort.descending", true)

	v.SetDefault("language", "en")
	v.SetDefault("translations_path", "")

	v.SetDefault("output.dir", filepath.Join("output", "damage_dealt"))
	v.SetDefault("output.xlsx", true)

	v.SetDefault("baseline_table_path", "")

	v.SetDefault("history.path", "")
	v.SetDefault("history.show", 5)

	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads path into v. A missing file is not an error: defaults apply.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decode resolves v into validated Settings.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Range < 0 || s.Range > 1 {
		return fmt.Errorf("range is a fraction of max_range and must be in [0..1], got %v", s.Range)
	}
	if s.MaxRange <= 0 {
		return fmt.Errorf("max_range must be positive, got %v", s.MaxRange)
	}
	if s.Chart.Points < 2 {
		return fmt.Errorf("chart.points must be at least 2, got %d", s.Chart.Points)
	}
	if s.Chart.MaxRange <= 0 {
		return fmt.Errorf("chart.max_range must be positive, got %v", s.Chart.MaxRange)
	}
	if !slices.Contains(SortPredicates, s.Sort.Predicate) {
		return fmt.Errorf("unsupported sort.predicate %q (supported: %s)", s.Sort.Predicate, strings.Join(SortPredicates, ", "))
	}
	if strings.TrimSpace(s.BuildPath) == "" {
		return fmt.Errorf("build_path must not be empty")
	}
	if strings.TrimSpace(s.Target) == "" {
		return fmt.Errorf("target must not be empty")
	}
	return nil
}

// Resolve makes relative paths in s relative to root.
func (s *Settings) Resolve(root string) {
	for _, p := range []*string{&s.BuildPath, &s.CatalogPath, &s.TranslationsPath, &s.Output.Dir, &s.BaselineTablePath, &s.History.Path} {
		if *p == "" || filepath.IsAbs(*p) || *p == ":memory:" {
			continue
		}
		*p = filepath.Join(root, *p)
	}
}
