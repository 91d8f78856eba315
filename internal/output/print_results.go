package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
)

// Formatter renders labels and numbers for the user's locale.
type Formatter interface {
	Labeler
	Round1(v float64) string
	F2(v float64) string
	Pct(v float64) string
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// PrintResults prints the damage table and totals of ev against target.
func PrintResults(w io.Writer, ev damage.Evaluation, target damage.Target, tr Formatter) {
	fmt.Fprintf(w, "%s %s (%s %s) @ %s%s\n",
		tr.T("damage dealt against"), target.Name,
		tr.T("hardness"), tr.Round1(target.Hardness),
		tr.F2(ev.Range/1000), tr.T("km"))

	if len(ev.Weapons) == 0 {
		fmt.Fprintln(w, tr.T("no weapons"))
		return
	}

	names := make([]string, len(ev.Weapons))
	nameWidth := len([]rune(tr.T("weapon")))
	for i, r := range ev.Weapons {
		names[i] = WeaponName(r.Weapon, tr)
		if m := mountLabel(r.Weapon.Mount, tr); m != "" {
			names[i] += " [" + m + "]"
		}
		if n := len([]rune(names[i])); n > nameWidth {
			nameWidth = n
		}
	}

	const col = 10
	fmt.Fprintf(w, "%s | %s | %s\n",
		pad("", nameWidth),
		pad(tr.T("shields"), col*3+2),
		tr.T("armour"))
	headers := []string{tr.T("effective dps"), tr.T("effective sdps"), tr.T("effectiveness")}
	fmt.Fprintf(w, "%s |", pad(tr.T("weapon"), nameWidth))
	for i := 0; i < 2; i++ {
		for _, h := range headers {
			fmt.Fprintf(w, " %s", padLeft(truncate(h, col), col))
		}
		fmt.Fprint(w, " |")
	}
	fmt.Fprintln(w)

	row := func(name string, f [6]float64) {
		fmt.Fprintf(w, "%s |", pad(name, nameWidth))
		for d := 0; d < 2; d++ {
			fmt.Fprintf(w, " %s %s %s |",
				padLeft(tr.Round1(f[d*3]), col),
				padLeft(tr.Round1(f[d*3+1]), col),
				padLeft(tr.Pct(f[d*3+2]), col))
		}
		fmt.Fprintln(w)
	}

	for i, r := range ev.Weapons {
		row(names[i], [6]float64{
			r.EffectiveDpsShields, r.SustainedDpsShields, r.EffectivenessShields,
			r.EffectiveDpsHull, r.SustainedDpsHull, r.EffectivenessHull,
		})
	}
	t := ev.Totals
	row(tr.T("total"), [6]float64{
		t.EffectiveDpsShields, t.SustainedDpsShields, t.EffectivenessShields,
		t.EffectiveDpsHull, t.SustainedDpsHull, t.EffectivenessHull,
	})
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
