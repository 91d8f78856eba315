// Package damage computes how effective a ship's weapons are against a
// target's shields and hull at a given engagement range.
//
// Everything here is a pure function of its inputs. Callers own the weapon
// and target values and re-evaluate whenever the build, target or range
// changes.
package damage

import "errors"

var (
	ErrInvalidHardness = errors.New("target hardness must be a positive number")
	ErrInvalidRange    = errors.New("engagement range is not a number")
)

type Mount string

const (
	MountFixed     Mount = "F"
	MountGimballed Mount = "G"
	MountTurreted  Mount = "T"
)

// Engineering describes the blueprint applied to a module. It is a label
// only: the weapon stats already include its effect.
type Engineering struct {
	Blueprint string
	Grade     int
	Special   string
}

// Weapon is one mounted, enabled weapon with resolved stats.
type Weapon struct {
	Slot    int
	Name    string
	Group   string
	Class   int
	Rating  string
	Missile string
	Mount   Mount

	DPS        float64
	RateOfFire float64
	Clip       int
	Reload     float64
	Range      float64
	Falloff    float64
	Piercing   float64

	Engineering *Engineering
}

// DisplayName is the module name, or its group when the module has none.
func (w Weapon) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Group
}

type Target struct {
	Name     string
	Hardness float64
}

// nonDamageGroups lists module groups that sit on hardpoints but deal no
// damage to ships.
var nonDamageGroups = map[string]struct{}{
	"po": {}, // point defence
}

// Qualifies reports whether w deals damage and takes part in totals.
func Qualifies(w Weapon) bool {
	if w.DPS <= 0 {
		return false
	}
	_, skip := nonDamageGroups[w.Group]
	return !skip
}

type WeaponResult struct {
	Weapon Weapon

	EffectiveDpsShields  float64
	SustainedDpsShields  float64
	EffectivenessShields float64

	EffectiveDpsHull  float64
	SustainedDpsHull  float64
	EffectivenessHull float64
}

// Totals sums the per-weapon figures. The effectiveness fields are the
// effective DPS of the domain divided by the nominal DPS of every
// qualifying weapon.
type Totals struct {
	EffectiveDpsShields  float64
	SustainedDpsShields  float64
	EffectivenessShields float64

	EffectiveDpsHull  float64
	SustainedDpsHull  float64
	EffectivenessHull float64

	NominalDps float64
}

type Evaluation struct {
	Range   float64
	Weapons []WeaponResult
	Totals  Totals
}
