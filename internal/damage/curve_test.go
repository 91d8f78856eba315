package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
)

func TestSampleCurve_MatchesTableFigures(t *testing.T) {
	w := cannon()
	target := damage.Target{Hardness: 40}

	pts, err := damage.SampleCurve(w, target, 4000, 5)
	require.NoError(t, err)
	require.Len(t, pts, 5)

	assert.Equal(t, 0.0, pts[0].Range)
	assert.Equal(t, 4000.0, pts[4].Range)
	for _, p := range pts {
		dps, err := damage.WeaponDpsAt(w, target, p.Range)
		require.NoError(t, err)
		assert.InDelta(t, dps, p.DPS, eps, "range %v", p.Range)
	}
	assert.InDelta(t, 2.1875, pts[2].DPS, eps)
	assert.Zero(t, pts[4].DPS)
}

func TestSampleCurve_RejectsBadInput(t *testing.T) {
	_, err := damage.SampleCurve(cannon(), damage.Target{Hardness: 40}, 6000, 1)
	assert.Error(t, err)

	_, err = damage.SampleCurve(cannon(), damage.Target{Hardness: 40}, 0, 10)
	assert.Error(t, err)

	_, err = damage.SampleCurve(cannon(), damage.Target{Hardness: 0}, 6000, 10)
	assert.ErrorIs(t, err, damage.ErrInvalidHardness)
}

func TestSampleCurves_DefaultGrid(t *testing.T) {
	pd := cannon()
	pd.Group = "po"

	curves, err := damage.SampleCurves([]damage.Weapon{cannon(), pd}, damage.Target{Hardness: 40},
		damage.DefaultCurveMaxRange, damage.DefaultCurvePoints)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	assert.Len(t, curves[0].Points, damage.DefaultCurvePoints)
	assert.Equal(t, damage.DefaultCurveMaxRange, curves[0].Points[damage.DefaultCurvePoints-1].Range)
}

func TestMaxDps(t *testing.T) {
	big := cannon()
	big.DPS = 50
	big.Piercing = 20 // 50 * 0.5

	small := cannon() // 10 * 0.875

	heavy := cannon()
	heavy.Group = "po"
	heavy.DPS = 500

	got, err := damage.MaxDps([]damage.Weapon{small, big, heavy}, damage.Target{Hardness: 40})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, eps)

	got, err = damage.MaxDps(nil, damage.Target{Hardness: 40})
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = damage.MaxDps([]damage.Weapon{small}, damage.Target{Hardness: -40})
	assert.ErrorIs(t, err, damage.ErrInvalidHardness)
}

func TestWeaponDpsAt(t *testing.T) {
	dps, err := damage.WeaponDpsAt(cannon(), damage.Target{Hardness: 40}, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 2.1875, dps, eps)

	dps, err = damage.WeaponDpsAt(cannon(), damage.Target{Hardness: 40}, -50)
	require.NoError(t, err)
	assert.InDelta(t, 4.375, dps, eps, "negative range counts as point blank")

	for _, hardness := range []float64{-40, 0} {
		_, err := damage.WeaponDpsAt(cannon(), damage.Target{Hardness: hardness}, 2000)
		assert.ErrorIs(t, err, damage.ErrInvalidHardness, "hardness %v", hardness)
	}
}
