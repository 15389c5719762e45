// Package steam locates a Steam installation and the pieces of it
// this tool edits: user profiles, shortcuts.vdf, config.vdf, library
// folders and Proton compatibility prefixes.
package steam

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eve-tools/vgi/debug"
)

// Install is a discovered Steam installation.
type Install struct {
	Root string
}

// DefaultRoots lists the candidate installation roots in probe
// order: native, symlinked, Flatpak, system-wide.
func DefaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return []string{
		filepath.Join(home, ".local/share/Steam"),
		filepath.Join(home, ".steam/steam"),
		filepath.Join(home, ".var/app/com.valvesoftware.Steam/data/Steam"),
		"/usr/local/share/steam",
	}
}

// Discover returns the installation at hint when given, otherwise
// the first default root that exists.
func Discover(hint string) (*Install, error) {
	if hint != "" {
		if !isDir(hint) {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, hint)
		}
		return &Install{Root: hint}, nil
	}
	for _, root := range DefaultRoots() {
		if isDir(root) {
			if debug.Scan() {
				debug.Logf("steam: found root %s", root)
			}
			return &Install{Root: root}, nil
		}
	}
	return nil, ErrNotFound
}

// ConfigVDF is the global config.vdf holding CompatToolMapping.
func (in *Install) ConfigVDF() string {
	return filepath.Join(in.Root, "config", "config.vdf")
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
