package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/config"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/damage"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/i18n"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/output"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/ships"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/store"
	"github.com/EDCD/coriolis/apps/damage_dealt/internal/weapons"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Run executes the damage report flow and returns the desired process exit code.
func Run() int {
	return RunWithOptions(Options{})
}

// Options carries command line overrides. Zero values leave the configured
// setting in place.
type Options struct {
	UseExamples bool
	ConfigPath  string
	BuildPath   string
	Target      string
	Range       *float64
	Sort        string
	Ascending   bool

	// Stdout receives the report. Defaults to os.Stdout.
	Stdout io.Writer
}

// RunWithOptions executes the damage report flow and returns the desired process exit code.
func RunWithOptions(opts Options) int {
	appRoot, err := FindRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}

	code, err := exitCode(run(appRoot, opts))
	if err != nil && code != ExitOK {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func loadSettings(appRoot string, opts Options) (config.Settings, error) {
	configPath := filepath.Join(appRoot, config.FileName)
	if opts.UseExamples {
		configPath = filepath.Join(appRoot, "input", "damage_dealt", "examples", "damage_dealt.example.yaml")
	}
	if opts.ConfigPath != "" {
		configPath = opts.ConfigPath
	}

	v := config.New()
	if opts.UseExamples {
		v.SetDefault("build_path", filepath.Join("input", "damage_dealt", "examples", "build.example.yaml"))
	}
	if err := config.ReadFile(v, configPath); err != nil {
		return config.Settings{}, err
	}

	if opts.BuildPath != "" {
		v.Set("build_path", opts.BuildPath)
	}
	if opts.Target != "" {
		v.Set("target", opts.Target)
	}
	if opts.Range != nil {
		v.Set("range", *opts.Range)
	}
	if opts.Sort != "" {
		v.Set("sort.predicate", opts.Sort)
	}
	if opts.Ascending {
		v.Set("sort.descending", false)
	}

	s, err := config.Decode(v)
	if err != nil {
		return config.Settings{}, ExitWithError(ExitConfig, fmt.Errorf("%s: %w", configPath, err))
	}
	s.Resolve(appRoot)
	return s, nil
}

func run(appRoot string, opts Options) error {
	totalStart := time.Now()
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	settings, err := loadSettings(appRoot, opts)
	if err != nil {
		return err
	}
	setupLogging(settings.LogLevel)
	appLog := log.With().Str("module", "app").Logger()
	appLog.Debug().Str("root", appRoot).Str("build", settings.BuildPath).Str("target", settings.Target).Msg("settings loaded")

	tr, err := i18n.New(settings.Language, settings.TranslationsPath)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	catalog, err := ships.Load(settings.CatalogPath)
	if err != nil {
		return fmt.Errorf("load ship catalogue: %w", err)
	}
	target, err := catalog.Target(settings.Target)
	if err != nil {
		return ExitWithError(ExitUnknownTarget, err)
	}

	build, err := weapons.LoadBuild(settings.BuildPath)
	if err != nil {
		return err
	}
	buildName := build.Name
	if buildName == "" {
		buildName = strings.TrimSuffix(filepath.Base(settings.BuildPath), filepath.Ext(settings.BuildPath))
	}

	all := weapons.FromBuild(build)
	labels := weapons.Labels(all, tr.T)
	qualifying, excluded := weapons.Qualifying(all)
	appLog.Info().Str("build", buildName).Int("included", len(qualifying)).Int("excluded", len(excluded)).Msg("weapons selected")

	ev, err := damage.EvaluateLoadout(qualifying, target, settings.EngagementRange())
	if err != nil {
		return ExitWithError(ExitInvalidInput, err)
	}
	output.SortResults(ev.Weapons, tr.Compare, settings.Sort.Predicate, settings.Sort.Descending)
	output.PrintResults(out, ev, target, tr)

	// Same-day exports are overwritten below, so the baseline is read first.
	baselinePath := settings.BaselineTablePath
	if baselinePath == "" {
		if p, ok, err := findExistingResultTable(settings.Output.Dir, buildName, settings.Target, time.Now()); err != nil {
			appLog.Warn().Err(err).Msg("cannot scan previous exports")
		} else if ok {
			baselinePath = p
		}
	}
	var baseline *damage.Totals
	if baselinePath != "" {
		t, err := output.ImportTotalsXLSX(baselinePath)
		if err != nil {
			if settings.BaselineTablePath != "" {
				return err
			}
			appLog.Warn().Err(err).Str("path", baselinePath).Msg("ignoring unreadable previous export")
		} else {
			baseline = &t
		}
	}

	if settings.Output.XLSX {
		curves, err := damage.SampleCurves(qualifying, target, settings.Chart.MaxRange, settings.Chart.Points)
		if err != nil {
			return err
		}
		maxDps, err := damage.MaxDps(qualifying, target)
		if err != nil {
			return ExitWithError(ExitInvalidInput, err)
		}
		if err := ensureOutputDir(settings.Output.Dir); err != nil {
			return err
		}
		xlsxPath, err := output.ExportXLSX(settings.Output.Dir, output.Report{
			BuildName:  buildName,
			TargetID:   settings.Target,
			Target:     target,
			Evaluation: ev,
			Labels:     labels,
			Curves:     curves,
			MaxDps:     maxDps,
		}, tr, time.Now())
		if err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		fmt.Fprintln(out, "Exported results to", xlsxPath)
	}

	if baseline != nil {
		fmt.Fprintln(out)
		output.PrintComparison(out, baselinePath, output.CompareTotals(*baseline, ev.Totals), tr)
	}

	if settings.History.Path != "" {
		if err := recordHistory(context.Background(), out, appLog, settings, buildName, target, ev, labels, tr); err != nil {
			return err
		}
	}

	appLog.Debug().Dur("elapsed", time.Since(totalStart)).Msg("done")
	return nil
}

func recordHistory(ctx context.Context, out io.Writer, appLog zerolog.Logger, settings config.Settings, buildName string, target damage.Target, ev damage.Evaluation, labels map[int]string, tr *i18n.Translator) error {
	if settings.History.Path != ":memory:" {
		if err := ensureOutputDir(filepath.Dir(settings.History.Path)); err != nil {
			return err
		}
	}
	st, err := store.Open(settings.History.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			appLog.Warn().Err(err).Str("path", settings.History.Path).Msg("closing history db")
		}
	}()

	previous, err := st.Recent(ctx, buildName, settings.History.Show)
	if err != nil {
		return err
	}

	rec := store.NewEvaluation(buildName, settings.Target, target, ev, labels, func(w damage.Weapon) string {
		return weapons.Engineering(w, tr.T)
	})
	if err := st.Save(ctx, &rec); err != nil {
		return err
	}

	if len(previous) == 0 {
		return nil
	}
	fmt.Fprintf(out, "\n%s (%s):\n", tr.T("history"), buildName)
	for _, p := range previous {
		fmt.Fprintf(out, "- %s %s @ %s%s: %s %s %s, %s %s %s\n",
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.Target, tr.F2(p.Range/1000), tr.T("km"),
			tr.T("shields"), tr.Round1(p.SustainedDpsShields), tr.T("effective sdps"),
			tr.T("armour"), tr.Round1(p.SustainedDpsHull), tr.T("effective sdps"))
	}
	return nil
}
