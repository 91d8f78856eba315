package weapons

import (
	"fmt"
	"os"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/domain"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var wLog = log.With().Str("module", "weapons").Logger()

// LoadBuild reads and validates a build file.
func LoadBuild(path string) (domain.Build, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Build{}, fmt.Errorf("read build (%s): %w", path, err)
	}
	var build domain.Build
	if err := yaml.Unmarshal(b, &build); err != nil {
		return domain.Build{}, fmt.Errorf("parse build (%s): %w", path, err)
	}
	if err := build.Validate(); err != nil {
		return domain.Build{}, fmt.Errorf("build %s: %w", path, err)
	}
	wLog.Debug().Str("path", path).Str("build", build.Name).Int("hardpoints", len(build.Hardpoints)).Msg("build loaded")
	return build, nil
}
