package main

import (
	"flag"
	"os"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/app"
)

func main() {
	useExamples := flag.Bool("useExamples", false, "use example inputs from input/damage_dealt/examples instead of damage_dealt.yaml")
	configPath := flag.String("config", "", "config file (default: damage_dealt.yaml in the app root)")
	buildPath := flag.String("build", "", "build file, overrides build_path")
	target := flag.String("target", "", "target ship id, overrides target")
	rng := flag.Float64("range", -1, "engagement range as a fraction of max_range [0..1], overrides range")
	sortBy := flag.String("sort", "", "sort predicate: n, edpss, esdpss, es, edpsh, esdpsh, eh")
	asc := flag.Bool("asc", false, "sort ascending")
	flag.Parse()

	opts := app.Options{
		UseExamples: *useExamples,
		ConfigPath:  *configPath,
		BuildPath:   *buildPath,
		Target:      *target,
		Sort:        *sortBy,
		Ascending:   *asc,
	}
	if *rng >= 0 {
		opts.Range = rng
	}
	os.Exit(app.RunWithOptions(opts))
}
