package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MakeRunDir creates the date-stamped output directory for a backup run and
// returns its path.
//
// The root directory is created if missing. A directory already present for
// the same date is deleted and recreated, so a second run on the same day
// always overwrites that day's backup instead of merging into it.
func MakeRunDir(root string, now time.Time) (string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	dir := filepath.Join(root, now.Format(time.DateOnly))

	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDirectory, err)
		}
	}

	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	return dir, nil
}
