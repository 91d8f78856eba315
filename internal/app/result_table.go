package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/EDCD/coriolis/apps/damage_dealt/internal/output"
)

// findExistingResultTable returns today's export for the build/target pair,
// if one exists in dir.
func findExistingResultTable(dir, buildName, targetID string, now time.Time) (string, bool, error) {
	path := filepath.Join(dir, output.ResultFileName(now, buildName, targetID))
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	if fi.IsDir() {
		return "", false, nil
	}
	return path, true, nil
}
