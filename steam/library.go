package steam

import (
	"fmt"
	"path/filepath"

	"github.com/eve-tools/vgi/debug"
	"github.com/eve-tools/vgi/textvdf"
)

// Libraries returns the Steam library roots: every "path" value in
// libraryfolders.vdf whose steamapps directory exists, plus the
// installation root itself. Order is file order, root first.
func (in *Install) Libraries() []string {
	res := []string{in.Root}
	seen := map[string]bool{in.Root: true}
	for _, rel := range []string{
		filepath.Join("config", "libraryfolders.vdf"),
		filepath.Join("steamapps", "libraryfolders.vdf"),
	} {
		f, err := textvdf.Load(filepath.Join(in.Root, rel))
		if err != nil {
			continue
		}
		for _, p := range f.Values("path") {
			if seen[p] {
				continue
			}
			if !isDir(filepath.Join(p, "steamapps")) {
				if debug.Scan() {
					debug.Logf("steam: library %s has no steamapps, skipping", p)
				}
				continue
			}
			seen[p] = true
			res = append(res, p)
		}
	}
	return res
}

// CompatPrefix finds the Proton prefix for a compatdata id across
// all libraries.
func (in *Install) CompatPrefix(id string) (string, error) {
	for _, lib := range in.Libraries() {
		pfx := filepath.Join(lib, "steamapps", "compatdata", id, "pfx")
		if isDir(pfx) {
			return pfx, nil
		}
	}
	return "", fmt.Errorf("%w: no compat prefix for compatdata id %s", ErrNotFound, id)
}
