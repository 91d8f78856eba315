package damage

import "fmt"

const (
	DefaultCurvePoints   = 200
	DefaultCurveMaxRange = 6000.0
)

// Point is one sample of a DPS-over-range curve.
type Point struct {
	Range float64
	DPS   float64
}

type Curve struct {
	Weapon Weapon
	Points []Point
}

// WeaponDpsAt is the sustained DPS w deals to target's hull at rng metres.
// Negative ranges count as 0.
func WeaponDpsAt(w Weapon, target Target, rng float64) (float64, error) {
	rng, err := normalizeInputs(target, rng)
	if err != nil {
		return 0, err
	}
	return evaluate(w, target, rng).SustainedDpsHull, nil
}

// SampleCurve samples WeaponDpsAt at points evenly spaced ranges from 0 to
// maxRange inclusive.
func SampleCurve(w Weapon, target Target, maxRange float64, points int) ([]Point, error) {
	if _, err := normalizeInputs(target, maxRange); err != nil {
		return nil, err
	}
	if points < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", points)
	}
	if maxRange <= 0 {
		return nil, fmt.Errorf("curve max range must be positive, got %v", maxRange)
	}

	out := make([]Point, points)
	step := maxRange / float64(points-1)
	for i := range out {
		rng := step * float64(i)
		if i == points-1 {
			rng = maxRange
		}
		out[i] = Point{Range: rng, DPS: evaluate(w, target, rng).SustainedDpsHull}
	}
	return out, nil
}

// SampleCurves samples one curve per qualifying weapon, in loadout order.
func SampleCurves(weapons []Weapon, target Target, maxRange float64, points int) ([]Curve, error) {
	curves := make([]Curve, 0, len(weapons))
	for _, w := range weapons {
		if !Qualifies(w) {
			continue
		}
		pts, err := SampleCurve(w, target, maxRange, points)
		if err != nil {
			return nil, err
		}
		curves = append(curves, Curve{Weapon: w, Points: pts})
	}
	return curves, nil
}

// MaxDps is the highest single-weapon DPS against target's hull ignoring
// range, used to scale curve charts.
func MaxDps(weapons []Weapon, target Target) (float64, error) {
	if _, err := normalizeInputs(target, 0); err != nil {
		return 0, err
	}
	best := 0.0
	for _, w := range weapons {
		if !Qualifies(w) {
			continue
		}
		if d := w.DPS * HullEffectiveness(w.Piercing, target.Hardness); d > best {
			best = d
		}
	}
	return best, nil
}
