package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/i18n"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/output"
)

func english(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New("en", "")
	require.NoError(t, err)
	return tr
}

func result(slot int, name string, class int, rating string, edpsh float64) damage.WeaponResult {
	return damage.WeaponResult{
		Weapon:           damage.Weapon{Slot: slot, Name: name, Group: "g", Class: class, Rating: rating, DPS: 10},
		EffectiveDpsHull: edpsh,
	}
}

func slots(rs []damage.WeaponResult) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Weapon.Slot
	}
	return out
}

func TestSortResults_ByFigure(t *testing.T) {
	rs := []damage.WeaponResult{
		result(0, "Cannon", 2, "E", 5),
		result(1, "Beam Laser", 3, "C", 20),
		result(2, "Multi-cannon", 1, "F", 12),
	}

	output.SortResults(rs, nil, "edpsh", true)
	assert.Equal(t, []int{1, 2, 0}, slots(rs), "descending puts the highest first")

	output.SortResults(rs, nil, "edpsh", false)
	assert.Equal(t, []int{0, 2, 1}, slots(rs))
}

func TestSortResults_ByNameThenClassRating(t *testing.T) {
	rs := []damage.WeaponResult{
		result(0, "Pulse Laser", 2, "E", 1),
		result(1, "Beam Laser", 3, "C", 1),
		result(2, "Pulse Laser", 1, "F", 1),
		result(3, "Pulse Laser", 1, "E", 1),
	}

	output.SortResults(rs, english(t).Compare, "n", true)
	assert.Equal(t, []int{1, 3, 2, 0}, slots(rs))

	output.SortResults(rs, english(t).Compare, "n", false)
	assert.Equal(t, []int{0, 2, 3, 1}, slots(rs))
}

func TestWeaponComparator_FigureTieFallsBackToName(t *testing.T) {
	cmp := output.WeaponComparator(nil, "eh", true)
	a := result(0, "Cannon", 2, "E", 0)
	b := result(1, "Beam Laser", 2, "E", 0)
	assert.Positive(t, cmp(a, b))
	assert.Negative(t, cmp(b, a))
	assert.Zero(t, cmp(a, a))
}

func TestSortResults_DoesNotTouchTotals(t *testing.T) {
	ev := damage.Evaluation{
		Weapons: []damage.WeaponResult{result(0, "a", 1, "A", 1), result(1, "b", 1, "A", 2)},
		Totals:  damage.Totals{EffectiveDpsHull: 3},
	}
	output.SortResults(ev.Weapons, nil, "edpsh", true)
	assert.Equal(t, 3.0, ev.Totals.EffectiveDpsHull)
}

func sampleReport(t *testing.T) output.Report {
	t.Helper()
	ws := []damage.Weapon{
		{Slot: 0, Name: "Cannon", Group: "c", Class: 2, Rating: "E", Mount: damage.MountGimballed,
			DPS: 10, RateOfFire: 1, Clip: 4, Reload: 4, Range: 3000, Falloff: 1000, Piercing: 35,
			Engineering: &damage.Engineering{Blueprint: "Overcharged", Grade: 5, Special: "Auto Loader"}},
		{Slot: 2, Name: "Beam Laser", Group: "bl", Class: 3, Rating: "C", Mount: damage.MountTurreted,
			DPS: 20, RateOfFire: 1, Range: 3000, Falloff: 600, Piercing: 60},
	}
	target := damage.Target{Name: "Target", Hardness: 40}
	ev, err := damage.EvaluateLoadout(ws, target, 2000)
	require.NoError(t, err)
	curves, err := damage.SampleCurves(ws, target, 6000, 7)
	require.NoError(t, err)
	maxDps, err := damage.MaxDps(ws, target)
	require.NoError(t, err)

	return output.Report{
		BuildName:  "my build",
		TargetID:   "target",
		Target:     target,
		Evaluation: ev,
		Labels:     map[int]string{0: "1: 2E Cannon", 2: "2: 3C Beam Laser"},
		Curves:     curves,
		MaxDps:     maxDps,
	}
}

func TestExportXLSX_RoundTripsTotals(t *testing.T) {
	rep := sampleReport(t)
	dir := filepath.Join(t.TempDir(), "out")
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	path, err := output.ExportXLSX(dir, rep, english(t), day)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20261019_damage_dealt_my_build_target.xlsx"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	totals, err := output.ImportTotalsXLSX(path)
	require.NoError(t, err)
	want := rep.Evaluation.Totals
	assert.InDelta(t, want.EffectiveDpsShields, totals.EffectiveDpsShields, 1e-9)
	assert.InDelta(t, want.SustainedDpsShields, totals.SustainedDpsShields, 1e-9)
	assert.InDelta(t, want.EffectivenessShields, totals.EffectivenessShields, 1e-9)
	assert.InDelta(t, want.EffectiveDpsHull, totals.EffectiveDpsHull, 1e-9)
	assert.InDelta(t, want.SustainedDpsHull, totals.SustainedDpsHull, 1e-9)
	assert.InDelta(t, want.EffectivenessHull, totals.EffectivenessHull, 1e-9)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(output.DamageSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2E Cannon (Overcharged grade 5, Auto Loader)", name)

	series, err := f.GetCellValue(output.CurvesSheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "2: 3C Beam Laser", series)

	rows, err := f.GetRows(output.CurvesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 8, "header plus one row per sample")
}

func TestImportTotalsXLSX_Errors(t *testing.T) {
	_, err := output.ImportTotalsXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "other.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(p))
	require.NoError(t, f.Close())

	_, err = output.ImportTotalsXLSX(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), output.DamageSheet)
}

func TestPrintResults(t *testing.T) {
	rep := sampleReport(t)
	var buf bytes.Buffer
	output.PrintResults(&buf, rep.Evaluation, rep.Target, english(t))

	out := buf.String()
	assert.Contains(t, out, "Damage dealt against Target")
	assert.Contains(t, out, "2.00km")
	assert.Contains(t, out, "2E Cannon (Overcharged grade 5, Auto Loader) [Gimballed]")
	assert.Contains(t, out, "43.8%")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "Total"))
}

func TestPrintResults_NoWeapons(t *testing.T) {
	var buf bytes.Buffer
	output.PrintResults(&buf, damage.Evaluation{}, damage.Target{Name: "x", Hardness: 1}, english(t))
	assert.Contains(t, buf.String(), "No weapons")

	it, err := i18n.New("it", "")
	require.NoError(t, err)
	buf.Reset()
	output.PrintResults(&buf, damage.Evaluation{}, damage.Target{Name: "x", Hardness: 1}, it)
	assert.Contains(t, buf.String(), "Nessuna arma")
}

func TestCompareTotals(t *testing.T) {
	base := damage.Totals{EffectiveDpsHull: 10, EffectivenessHull: 0.5}
	cur := damage.Totals{EffectiveDpsHull: 12.5, EffectivenessHull: 0.25}

	deltas := output.CompareTotals(base, cur)
	require.Len(t, deltas, 6)
	assert.Equal(t, "armour", deltas[3].Domain)
	assert.InDelta(t, 2.5, deltas[3].Change(), 1e-9)
	assert.True(t, deltas[5].Pct)
	assert.InDelta(t, -0.25, deltas[5].Change(), 1e-9)

	var buf bytes.Buffer
	output.PrintComparison(&buf, "old.xlsx", deltas, english(t))
	assert.Contains(t, buf.String(), "Baseline: old.xlsx")
	assert.Contains(t, buf.String(), "10.0 -> 12.5 (Change +2.5)")
	assert.Contains(t, buf.String(), "50.0% -> 25.0% (Change -25.0%)")
}
