package output

import (
	"cmp"
	"slices"
	"strings"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
)

// NameCompare orders two (untranslated) weapon names.
type NameCompare func(a, b string) int

var properties = map[string]func(damage.WeaponResult) float64{
	"edpss":  func(r damage.WeaponResult) float64 { return r.EffectiveDpsShields },
	"esdpss": func(r damage.WeaponResult) float64 { return r.SustainedDpsShields },
	"es":     func(r damage.WeaponResult) float64 { return r.EffectivenessShields },
	"edpsh":  func(r damage.WeaponResult) float64 { return r.EffectiveDpsHull },
	"esdpsh": func(r damage.WeaponResult) float64 { return r.SustainedDpsHull },
	"eh":     func(r damage.WeaponResult) float64 { return r.EffectivenessHull },
}

// WeaponComparator orders results by predicate ("n" for name, or one of the
// figure keys), then by name/group, class and rating.
//
// Figures are compared b against a, so desc puts the highest figure first
// while names still read A to Z. Ascending order swaps the operands and
// reverses both.
func WeaponComparator(names NameCompare, predicate string, desc bool) func(a, b damage.WeaponResult) int {
	prop := properties[predicate]
	if names == nil {
		names = strings.Compare
	}

	byName := func(a, b damage.WeaponResult) int {
		if d := names(a.Weapon.DisplayName(), b.Weapon.DisplayName()); d != 0 {
			return d
		}
		return strings.Compare(a.Weapon.Group, b.Weapon.Group)
	}

	return func(a, b damage.WeaponResult) int {
		if !desc {
			a, b = b, a
		}

		var diff int
		if prop != nil {
			// b against a: highest first
			diff = cmp.Compare(prop(b), prop(a))
		} else {
			diff = byName(a, b)
		}
		if diff != 0 {
			return diff
		}

		wa, wb := a.Weapon, b.Weapon
		if wa.Name == wb.Name && wa.Group == wb.Group {
			if wa.Class == wb.Class {
				return strings.Compare(wa.Rating, wb.Rating)
			}
			return cmp.Compare(wa.Class, wb.Class)
		}
		return byName(a, b)
	}
}

// SortResults sorts results in place. Totals are unaffected.
func SortResults(results []damage.WeaponResult, names NameCompare, predicate string, desc bool) {
	slices.SortStableFunc(results, WeaponComparator(names, predicate, desc))
}
