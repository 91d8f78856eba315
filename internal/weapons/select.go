package weapons

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/domain"
)

// Translate maps a label key to display text.
type Translate func(string) string

// FromBuild returns the weapons on powered weapon hardpoints, in hardpoint
// order. Utility mounts and empty or disabled hardpoints are skipped.
func FromBuild(build domain.Build) []damage.Weapon {
	out := make([]damage.Weapon, 0, len(build.Hardpoints))
	for i, hp := range build.Hardpoints {
		if hp.Class <= 0 || hp.Module == nil || !hp.IsEnabled() {
			continue
		}
		out = append(out, toWeapon(i, *hp.Module))
	}
	return out
}

func toWeapon(slot int, m domain.Module) damage.Weapon {
	w := damage.Weapon{
		Slot:       slot,
		Name:       m.Name,
		Group:      m.Group,
		Class:      m.Class,
		Rating:     m.Rating,
		Missile:    m.Missile,
		Mount:      damage.Mount(m.Mount),
		DPS:        m.DPS,
		RateOfFire: m.RoF,
		Clip:       m.Clip,
		Reload:     m.Reload,
		Range:      m.Range,
		Falloff:    m.Falloff,
		Piercing:   m.Piercing,
	}
	if bp := m.Blueprint; bp != nil && bp.Name != "" {
		w.Engineering = &damage.Engineering{Blueprint: bp.Name, Grade: bp.Grade, Special: bp.Special}
	}
	return w
}

// Qualifying narrows ws to the weapons that deal damage.
func Qualifying(ws []damage.Weapon) (included []damage.Weapon, excluded []damage.Weapon) {
	for _, w := range ws {
		if damage.Qualifies(w) {
			included = append(included, w)
		} else {
			excluded = append(excluded, w)
		}
	}
	return included, excluded
}

// ClassRating renders e.g. "4A" or "2B/D" for a dumbfire missile rack.
func ClassRating(w damage.Weapon) string {
	s := strconv.Itoa(w.Class) + w.Rating
	if w.Missile != "" {
		s += "/" + w.Missile
	}
	return s
}

// Engineering renders "Overcharged grade 5, Incendiary Rounds", or "" for
// stock modules.
func Engineering(w damage.Weapon, tr Translate) string {
	e := w.Engineering
	if e == nil || e.Blueprint == "" {
		return ""
	}
	s := fmt.Sprintf("%s %s %d", tr(e.Blueprint), tr("grade"), e.Grade)
	if e.Special != "" {
		s += ", " + tr(e.Special)
	}
	return s
}

// Label is the numbered series name used for charts: "1: 4A Plasma Accelerator (...)".
func Label(n int, w damage.Weapon, tr Translate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d: %s %s", n, ClassRating(w), tr(w.DisplayName()))
	if eng := Engineering(w, tr); eng != "" {
		sb.WriteString(" (" + eng + ")")
	}
	return sb.String()
}

// Labels numbers every weapon from 1 in loadout order.
func Labels(ws []damage.Weapon, tr Translate) map[int]string {
	out := make(map[int]string, len(ws))
	for i, w := range ws {
		out[w.Slot] = Label(i+1, w, tr)
	}
	return out
}
