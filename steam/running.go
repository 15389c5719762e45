package steam

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Running reports whether a Steam client process exists, by process
// name or executable basename. Processes that disappear mid-scan are
// skipped.
func Running(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		if name, err := p.NameWithContext(ctx); err == nil && isSteamName(name) {
			return true, nil
		}
		if exe, err := p.ExeWithContext(ctx); err == nil && isSteamName(filepath.Base(exe)) {
			return true, nil
		}
	}
	return false, nil
}

func isSteamName(s string) bool {
	switch strings.ToLower(s) {
	case "steam", "steam.sh":
		return true
	}
	return false
}
