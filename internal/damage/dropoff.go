package damage

import "math"

// Dropoff returns the fraction of damage w still deals at rng metres.
//
// Weapons without falloff deal full damage at any range. Otherwise damage is
// full up to the falloff distance, decays linearly to zero at the weapon's
// range and is zero beyond it.
func Dropoff(rng float64, w Weapon) float64 {
	if w.Falloff == 0 {
		return 1
	}
	if rng > w.Range {
		return 0
	}
	if rng <= w.Falloff {
		return 1
	}
	span := w.Range - w.Falloff
	if span <= 0 {
		// falloff == range: the band is empty, rng <= Range was checked above
		return 1
	}
	return clamp01(1 - (rng-w.Falloff)/span)
}

// HullEffectiveness is the fraction of damage that gets through armour of
// the given hardness.
func HullEffectiveness(piercing, hardness float64) float64 {
	if piercing >= hardness {
		return 1
	}
	if hardness <= 0 || piercing <= 0 {
		return 0
	}
	return clamp01(piercing / hardness)
}

// SustainedDps averages burstDps*effectiveness over a full fire-and-reload
// cycle. Weapons without a clip fire continuously.
func SustainedDps(w Weapon, burstDps, effectiveness float64) float64 {
	if w.Clip == 0 || w.RateOfFire <= 0 {
		return burstDps * effectiveness
	}
	clip := float64(w.Clip)
	firing := clip / w.RateOfFire
	cycle := firing + w.Reload
	if cycle <= 0 {
		return burstDps * effectiveness
	}
	return (clip * burstDps / w.RateOfFire) / cycle * effectiveness
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
