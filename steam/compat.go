package steam

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eve-tools/vgi/debug"
)

// EACLauncher is the Easy Anti-Cheat wrapper the game must be
// started through under Proton.
const EACLauncher = "start_protected_game.exe"

// FindGameExe walks the prefix's drive_c for the EAC launcher and
// returns its absolute path. Windows filenames compare
// case-insensitively.
func FindGameExe(prefix string) (string, error) {
	driveC := filepath.Join(prefix, "drive_c")
	if !isDir(driveC) {
		return "", fmt.Errorf("%w: %s has no drive_c", ErrNotFound, prefix)
	}
	var found string
	err := filepath.WalkDir(driveC, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if debug.Scan() {
				debug.Logf("steam: walk %s: %v", path, err)
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), EACLauncher) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("%w: no %s under %s", ErrNotFound, EACLauncher, driveC)
	}
	return found, nil
}

// ValidateGameExe checks that exe is the EAC launcher, lives inside
// the prefix's drive_c, and exists.
func ValidateGameExe(prefix, exe string) error {
	if !strings.EqualFold(filepath.Base(exe), EACLauncher) {
		return fmt.Errorf("exe %s is not %s", exe, EACLauncher)
	}
	rel, err := filepath.Rel(prefix, exe)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("exe %s is outside prefix %s", exe, prefix)
	}
	if !strings.HasPrefix(rel, "drive_c"+string(filepath.Separator)) {
		return fmt.Errorf("exe %s is not under drive_c", exe)
	}
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("exe not found: %w", err)
	}
	return nil
}
