package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/weapons"

	"github.com/xuri/excelize/v2"
)

const (
	DamageSheet = "Damage"
	CurvesSheet = "Curves"

	firstDataRow = 3
)

// Labeler translates label keys.
type Labeler interface {
	T(key string) string
}

// Report is everything one export needs.
type Report struct {
	BuildName  string
	TargetID   string
	Target     damage.Target
	Evaluation damage.Evaluation
	// Labels holds the chart series name of each weapon, keyed by slot.
	Labels map[int]string
	Curves []damage.Curve
	MaxDps float64
}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

func slug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "build"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}

// ResultFileName is the export name for a build/target pair on a given day.
func ResultFileName(day time.Time, buildName, targetID string) string {
	return fmt.Sprintf("%s_damage_dealt_%s_%s.xlsx", day.Format("20060102"), slug(buildName), slug(targetID))
}

func mountLabel(m damage.Mount, tr Labeler) string {
	switch m {
	case damage.MountFixed:
		return tr.T("fixed")
	case damage.MountGimballed:
		return tr.T("gimballed")
	case damage.MountTurreted:
		return tr.T("turreted")
	}
	return ""
}

// WeaponName is the table name of a weapon: "4A Plasma Accelerator (Efficient grade 5)".
func WeaponName(w damage.Weapon, tr Labeler) string {
	name := weapons.ClassRating(w) + " " + tr.T(w.DisplayName())
	if eng := weapons.Engineering(w, tr.T); eng != "" {
		name += " (" + eng + ")"
	}
	return name
}

// ExportXLSX writes the damage table and DPS curves of rep into dir and
// returns the file path.
func ExportXLSX(dir string, rep Report, tr Labeler, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DamageSheet); err != nil {
		return "", err
	}
	if err := writeDamageSheet(f, rep, tr); err != nil {
		return "", fmt.Errorf("write %s sheet: %w", DamageSheet, err)
	}
	if len(rep.Curves) > 0 {
		if err := writeCurvesSheet(f, rep, tr); err != nil {
			return "", fmt.Errorf("write %s sheet: %w", CurvesSheet, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, ResultFileName(now, rep.BuildName, rep.TargetID))
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}

func writeDamageSheet(f *excelize.File, rep Report, tr Labeler) error {
	sheet := DamageSheet

	// Headers (2 rows):
	// Row 1: weapon, mount, then the two domains merged across 3 columns
	// Row 2: metric names
	f.SetCellValue(sheet, "A1", tr.T("weapon"))
	f.SetCellValue(sheet, "B1", "")
	_ = f.MergeCell(sheet, "A1", "A2")
	_ = f.MergeCell(sheet, "B1", "B2")

	for i, domain := range []string{"shields", "armour"} {
		start := 3 + i*3
		_ = f.MergeCell(sheet, cell(start, 1), cell(start+2, 1))
		f.SetCellValue(sheet, cell(start, 1), tr.T(domain))
		f.SetCellValue(sheet, cell(start+0, 2), tr.T("effective dps"))
		f.SetCellValue(sheet, cell(start+1, 2), tr.T("effective sdps"))
		f.SetCellValue(sheet, cell(start+2, 2), tr.T("effectiveness"))
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H2", headerStyleID); err != nil {
		return err
	}

	row := firstDataRow
	for _, r := range rep.Evaluation.Weapons {
		f.SetCellValue(sheet, cell(1, row), WeaponName(r.Weapon, tr))
		f.SetCellValue(sheet, cell(2, row), mountLabel(r.Weapon.Mount, tr))
		writeFigures(f, sheet, row,
			r.EffectiveDpsShields, r.SustainedDpsShields, r.EffectivenessShields,
			r.EffectiveDpsHull, r.SustainedDpsHull, r.EffectivenessHull)
		row++
	}

	t := rep.Evaluation.Totals
	totalsRow := row
	f.SetCellValue(sheet, cell(1, totalsRow), tr.T("total"))
	writeFigures(f, sheet, totalsRow,
		t.EffectiveDpsShields, t.SustainedDpsShields, t.EffectivenessShields,
		t.EffectiveDpsHull, t.SustainedDpsHull, t.EffectivenessHull)

	// Context rows below the table.
	info := [][2]any{
		{tr.T("damage dealt against"), rep.Target.Name},
		{tr.T("hardness"), rep.Target.Hardness},
		{tr.T("engagement range") + " (" + tr.T("m") + ")", rep.Evaluation.Range},
	}
	for i, kv := range info {
		r := totalsRow + 2 + i
		f.SetCellValue(sheet, cell(1, r), kv[0])
		f.SetCellValue(sheet, cell(2, r), kv[1])
	}

	dpsStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}
	pctStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}
	totalStyleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}})
	if err != nil {
		return err
	}
	for _, c := range []int{3, 4, 6, 7} {
		if err := f.SetCellStyle(sheet, cell(c, firstDataRow), cell(c, totalsRow), dpsStyleID); err != nil {
			return err
		}
	}
	for _, c := range []int{5, 8} {
		if err := f.SetCellStyle(sheet, cell(c, firstDataRow), cell(c, totalsRow), pctStyleID); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, totalsRow), cell(1, totalsRow), totalStyleID); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 48)
}

func writeFigures(f *excelize.File, sheet string, row int, figures ...float64) {
	for i, v := range figures {
		f.SetCellValue(sheet, cell(3+i, row), v)
	}
}

func writeCurvesSheet(f *excelize.File, rep Report, tr Labeler) error {
	sheet := CurvesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", tr.T("distance")+" ("+tr.T("m")+")")
	for i, c := range rep.Curves {
		name := rep.Labels[c.Weapon.Slot]
		if name == "" {
			name = WeaponName(c.Weapon, tr)
		}
		f.SetCellValue(sheet, cell(2+i, 1), name)
	}

	points := len(rep.Curves[0].Points)
	for p := 0; p < points; p++ {
		row := p + 2
		f.SetCellValue(sheet, cell(1, row), rep.Curves[0].Points[p].Range)
		for i, c := range rep.Curves {
			if p < len(c.Points) {
				f.SetCellValue(sheet, cell(2+i, row), c.Points[p].DPS)
			}
		}
	}

	lastRow := points + 1
	series := make([]excelize.ChartSeries, 0, len(rep.Curves))
	for i := range rep.Curves {
		col := colName(2 + i)
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, col),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, lastRow),
			Marker:     excelize.ChartMarker{Symbol: "none"},
		})
	}

	yAxis := excelize.ChartAxis{
		Title: []excelize.RichTextRun{{Text: tr.T("damage") + " " + tr.T("ps")}},
	}
	if rep.MaxDps > 0 {
		maxDps := rep.MaxDps
		yAxis.Maximum = &maxDps
	}

	return f.AddChart(sheet, cell(len(rep.Curves)+3, 2), &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: tr.T("damage against hull")}},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: tr.T("distance") + " (" + tr.T("m") + ")"}},
		},
		YAxis:     yAxis,
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	})
}
