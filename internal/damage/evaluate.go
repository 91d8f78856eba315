package damage

import "math"

// RoundRange rounds rng to 4 decimal places so slider jitter does not leak
// into the results.
func RoundRange(rng float64) float64 {
	return math.Round(10000*rng) / 10000
}

func normalizeInputs(target Target, rng float64) (float64, error) {
	if math.IsNaN(target.Hardness) || target.Hardness <= 0 {
		return 0, ErrInvalidHardness
	}
	if math.IsNaN(rng) {
		return 0, ErrInvalidRange
	}
	if rng < 0 {
		rng = 0
	}
	return rng, nil
}

// evaluate computes the per-domain figures of a single weapon at rng metres.
// Callers validate target and rng first; qualification is not checked.
func evaluate(w Weapon, target Target, rng float64) WeaponResult {
	dropoff := Dropoff(rng, w)

	effShields := dropoff
	effHull := clamp01(HullEffectiveness(w.Piercing, target.Hardness) * dropoff)

	dpsShields := w.DPS * effShields
	dpsHull := w.DPS * effHull

	return WeaponResult{
		Weapon:               w,
		EffectiveDpsShields:  dpsShields,
		SustainedDpsShields:  SustainedDps(w, w.DPS, effShields),
		EffectivenessShields: effShields,
		EffectiveDpsHull:     dpsHull,
		SustainedDpsHull:     SustainedDps(w, w.DPS, effHull),
		EffectivenessHull:    effHull,
	}
}

// EvaluateLoadout evaluates every qualifying weapon against target at rng
// metres, in loadout order, and sums the totals.
func EvaluateLoadout(weapons []Weapon, target Target, rng float64) (Evaluation, error) {
	rng, err := normalizeInputs(target, rng)
	if err != nil {
		return Evaluation{}, err
	}
	rng = RoundRange(rng)

	out := Evaluation{Range: rng, Weapons: make([]WeaponResult, 0, len(weapons))}
	for _, w := range weapons {
		if !Qualifies(w) {
			continue
		}
		r := evaluate(w, target, rng)
		out.Weapons = append(out.Weapons, r)

		out.Totals.EffectiveDpsShields += r.EffectiveDpsShields
		out.Totals.SustainedDpsShields += r.SustainedDpsShields
		out.Totals.EffectiveDpsHull += r.EffectiveDpsHull
		out.Totals.SustainedDpsHull += r.SustainedDpsHull
		out.Totals.NominalDps += w.DPS
	}

	if out.Totals.NominalDps > 0 {
		out.Totals.EffectivenessShields = clamp01(out.Totals.EffectiveDpsShields / out.Totals.NominalDps)
		out.Totals.EffectivenessHull = clamp01(out.Totals.EffectiveDpsHull / out.Totals.NominalDps)
	}
	return out, nil
}
