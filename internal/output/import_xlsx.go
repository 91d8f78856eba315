package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"

	"github.com/xuri/excelize/v2"
)

func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Handle percent formatting (e.g. "43.75%" or "43,75%")
	isPct := strings.HasSuffix(s, "%")
	if isPct {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	// Handle comma decimal separator.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if isPct {
		v /= 100.0
	}
	return v, true
}

// ImportTotalsXLSX reads the totals row back from a workbook written by
// ExportXLSX. The totals row is the last row of the weapon table.
func ImportTotalsXLSX(path string) (damage.Totals, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return damage.Totals{}, fmt.Errorf("open xlsx %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if idx, _ := f.GetSheetIndex(DamageSheet); idx == -1 {
		return damage.Totals{}, fmt.Errorf("xlsx %q: missing sheet %q", filepath.Base(path), DamageSheet)
	}

	raw := excelize.Options{RawCellValue: true}
	totalsRow := 0
	for row := firstDataRow; ; row++ {
		v, err := f.GetCellValue(DamageSheet, cell(1, row), raw)
		if err != nil {
			return damage.Totals{}, fmt.Errorf("read %s!%s: %w", DamageSheet, cell(1, row), err)
		}
		if strings.TrimSpace(v) == "" {
			break
		}
		totalsRow = row
	}
	if totalsRow == 0 {
		return damage.Totals{}, fmt.Errorf("xlsx %q: no totals row in sheet %q", filepath.Base(path), DamageSheet)
	}

	var figures [6]float64
	for i := range figures {
		ref := cell(3+i, totalsRow)
		s, err := f.GetCellValue(DamageSheet, ref, raw)
		if err != nil {
			return damage.Totals{}, fmt.Errorf("read %s!%s: %w", DamageSheet, ref, err)
		}
		v, ok := parseFloatCell(s)
		if !ok {
			return damage.Totals{}, fmt.Errorf("xlsx %q: %s!%s is not a number: %q", filepath.Base(path), DamageSheet, ref, s)
		}
		figures[i] = v
	}

	return damage.Totals{
		EffectiveDpsShields:  figures[0],
		SustainedDpsShields:  figures[1],
		EffectivenessShields: figures[2],
		EffectiveDpsHull:     figures[3],
		SustainedDpsHull:     figures[4],
		EffectivenessHull:    figures[5],
	}, nil
}
