package ships

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

//go:embed data/ships.json
var defaultCatalog []byte

var ErrUnknownShip = errors.New("unknown ship")

var sLog = log.With().Str("module", "ships").Logger()

type Properties struct {
	Name     string  `json:"name"`
	Class    int     `json:"class"`
	Hardness float64 `json:"hardness"`
}

type Ship struct {
	Properties Properties `json:"properties"`
}

// Catalog maps ship ids to ship data.
type Catalog map[string]Ship

// Default returns the embedded catalogue.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalogue file. An empty path returns the embedded one.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ship catalogue (%s): %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("ship catalogue %s: %w", path, err)
	}
	sLog.Debug().Str("path", path).Int("ships", len(c)).Msg("ship catalogue loaded")
	return c, nil
}

func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := sonic.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse ship catalogue: %w", err)
	}
	for id, s := range c {
		if s.Properties.Hardness <= 0 {
			return nil, fmt.Errorf("ship %q: hardness must be positive, got %v", id, s.Properties.Hardness)
		}
	}
	return c, nil
}

// Target returns the damage target for ship id.
func (c Catalog) Target(id string) (damage.Target, error) {
	s, ok := c[id]
	if !ok {
		return damage.Target{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownShip, id, strings.Join(c.IDs(), ", "))
	}
	name := s.Properties.Name
	if name == "" {
		name = id
	}
	return damage.Target{Name: name, Hardness: s.Properties.Hardness}, nil
}

// IDs returns the ship ids in lexical order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
