package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/store"
)

func evaluation(t *testing.T, rng float64) (damage.Target, damage.Evaluation) {
	t.Helper()
	target := damage.Target{Name: "Anaconda", Hardness: 65}
	ws := []damage.Weapon{
		{Slot: 1, Name: "Cannon", Group: "c", Class: 3, Rating: "C", Mount: damage.MountFixed,
			DPS: 20, RateOfFire: 0.5, Clip: 6, Reload: 5, Range: 3500, Falloff: 3000, Piercing: 70},
	}
	ev, err := damage.EvaluateLoadout(ws, target, rng)
	require.NoError(t, err)
	return target, ev
}

func TestStore_SaveAndRecent(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	labels := map[int]string{1: "1: 3C Cannon"}

	for _, rng := range []float64{1000, 3250} {
		target, ev := evaluation(t, rng)
		rec := store.NewEvaluation("brawler", "anaconda", target, ev, labels, nil)
		require.NoError(t, s.Save(ctx, &rec))
		assert.NotZero(t, rec.ID)
	}
	target, ev := evaluation(t, 0)
	other := store.NewEvaluation("sniper", "anaconda", target, ev, labels, nil)
	require.NoError(t, s.Save(ctx, &other))

	got, err := s.Recent(ctx, "brawler", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3250.0, got[0].Range, "newest first")
	assert.Equal(t, 1000.0, got[1].Range)
	require.Len(t, got[0].Weapons, 1)
	assert.Equal(t, "1: 3C Cannon", got[0].Weapons[0].Label)
	assert.Equal(t, "F", got[0].Weapons[0].Mount)
	assert.InDelta(t, 0.5, got[0].Weapons[0].EffectivenessShields, 1e-9)

	got, err = s.Recent(ctx, "brawler", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Recent(ctx, "missing", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewEvaluation_CopiesTotals(t *testing.T) {
	target, ev := evaluation(t, 1000)
	rec := store.NewEvaluation("b", "anaconda", target, ev, nil, func(w damage.Weapon) string { return "stock" })

	assert.Equal(t, "Anaconda", rec.Target)
	assert.Equal(t, 65.0, rec.Hardness)
	assert.Equal(t, ev.Totals.SustainedDpsHull, rec.SustainedDpsHull)
	assert.Equal(t, ev.Totals.NominalDps, rec.NominalDps)
	require.Len(t, rec.Weapons, 1)
	assert.Equal(t, "stock", rec.Weapons[0].Engineering)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
