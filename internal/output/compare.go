package output

import (
	"fmt"
	"io"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
)

// MetricDelta is one totals figure next to its baseline value.
type MetricDelta struct {
	Key      string
	Domain   string
	Pct      bool
	Baseline float64
	Current  float64
}

func (d MetricDelta) Change() float64 {
	return d.Current - d.Baseline
}

// CompareTotals lines up current totals against a baseline, shields first.
func CompareTotals(baseline, current damage.Totals) []MetricDelta {
	return []MetricDelta{
		{Key: "effective dps", Domain: "shields", Baseline: baseline.EffectiveDpsShields, Current: current.EffectiveDpsShields},
		{Key: "effective sdps", Domain: "shields", Baseline: baseline.SustainedDpsShields, Current: current.SustainedDpsShields},
		{Key: "effectiveness", Domain: "shields", Pct: true, Baseline: baseline.EffectivenessShields, Current: current.EffectivenessShields},
		{Key: "effective dps", Domain: "armour", Baseline: baseline.EffectiveDpsHull, Current: current.EffectiveDpsHull},
		{Key: "effective sdps", Domain: "armour", Baseline: baseline.SustainedDpsHull, Current: current.SustainedDpsHull},
		{Key: "effectiveness", Domain: "armour", Pct: true, Baseline: baseline.EffectivenessHull, Current: current.EffectivenessHull},
	}
}

func PrintComparison(w io.Writer, source string, deltas []MetricDelta, tr Formatter) {
	fmt.Fprintf(w, "%s: %s\n", tr.T("baseline"), source)
	for _, d := range deltas {
		format := tr.Round1
		if d.Pct {
			format = tr.Pct
		}
		sign := ""
		if d.Change() > 0 {
			sign = "+"
		}
		fmt.Fprintf(w, "- %s %s: %s -> %s (%s %s%s)\n",
			tr.T(d.Domain), tr.T(d.Key),
			format(d.Baseline), format(d.Current),
			tr.T("change"), sign, format(d.Change()))
	}
}
