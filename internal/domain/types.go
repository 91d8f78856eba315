package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Build is a ship loadout as exported by the ship builder.
type Build struct {
	Name string `yaml:"name"`
	// Ship is the catalogue id of the hull carrying the loadout (e.g. "anaconda").
	Ship       string      `yaml:"ship"`
	Hardpoints []Hardpoint `yaml:"hardpoints"`
}

// Hardpoint is one weapon mount. Class 0 marks a utility mount.
type Hardpoint struct {
	Class   int     `yaml:"class"`
	Enabled *bool   `yaml:"enabled"`
	Module  *Module `yaml:"module"`
}

// IsEnabled treats a missing enabled flag as powered on.
func (h Hardpoint) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

type Module struct {
	Name    string `yaml:"name"`
	Group   string `yaml:"group"`
	Class   int    `yaml:"class"`
	Rating  string `yaml:"rating"`
	Mount   string `yaml:"mount"`
	Missile string `yaml:"missile"`

	DPS      float64 `yaml:"dps"`
	RoF      float64 `yaml:"rof"`
	Clip     int     `yaml:"clip"`
	Reload   float64 `yaml:"reload"`
	Range    float64 `yaml:"range"`
	Falloff  float64 `yaml:"falloff"`
	Piercing float64 `yaml:"piercing"`

	Blueprint *Blueprint `yaml:"blueprint"`
}

type Blueprint struct {
	Name    string `yaml:"name"`
	Grade   int    `yaml:"grade"`
	Special string `yaml:"special"`
}

func rejectUnknownKeys(kind string, value *yaml.Node, allowed ...string) error {
	if value == nil || value.Kind != yaml.MappingNode {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		set[k] = struct{}{}
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		if _, ok := set[k.Value]; !ok {
			return fmt.Errorf("%s: unsupported key %q (line %d)", kind, k.Value, k.Line)
		}
	}
	return nil
}

func (b *Build) UnmarshalYAML(value *yaml.Node) error {
	if err := rejectUnknownKeys("build", value, "name", "ship", "hardpoints"); err != nil {
		return err
	}
	type raw Build
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*b = Build(tmp)
	return nil
}

func (h *Hardpoint) UnmarshalYAML(value *yaml.Node) error {
	if err := rejectUnknownKeys("hardpoint", value, "class", "enabled", "module"); err != nil {
		return err
	}
	type raw Hardpoint
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*h = Hardpoint(tmp)
	return nil
}

func (m *Module) UnmarshalYAML(value *yaml.Node) error {
	if err := rejectUnknownKeys("module", value,
		"name", "group", "class", "rating", "mount", "missile",
		"dps", "rof", "clip", "reload", "range", "falloff", "piercing",
		"blueprint",
	); err != nil {
		return err
	}
	type raw Module
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*m = Module(tmp)
	return nil
}

// Validate checks the numeric stats the damage model relies on.
func (b Build) Validate() error {
	for i, hp := range b.Hardpoints {
		m := hp.Module
		if m == nil {
			continue
		}
		switch {
		case m.DPS < 0:
			return fmt.Errorf("hardpoints[%d]: dps must not be negative, got %v", i, m.DPS)
		case m.Clip < 0:
			return fmt.Errorf("hardpoints[%d]: clip must not be negative, got %d", i, m.Clip)
		case m.Clip > 0 && m.RoF <= 0:
			return fmt.Errorf("hardpoints[%d]: rof must be positive for clip weapons, got %v", i, m.RoF)
		case m.Reload < 0, m.Range < 0, m.Falloff < 0, m.Piercing < 0:
			return fmt.Errorf("hardpoints[%d]: reload, range, falloff and piercing must not be negative", i)
		}
		switch m.Mount {
		case "", "F", "G", "T":
		default:
			return fmt.Errorf("hardpoints[%d]: unsupported mount %q (supported: F, G, T)", i, m.Mount)
		}
	}
	return nil
}
