package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Profile is one Steam user profile under userdata/.
type Profile struct {
	ID  string
	Dir string
}

// ShortcutsPath is the profile's shortcuts.vdf, which may not exist
// yet for a user with no non-Steam shortcuts.
func (p *Profile) ShortcutsPath() string {
	return filepath.Join(p.Dir, "config", "shortcuts.vdf")
}

// Profiles lists the numeric profile directories under userdata/,
// ordered by id.
func (in *Install) Profiles() ([]Profile, error) {
	userdata := filepath.Join(in.Root, "userdata")
	ents, err := os.ReadDir(userdata)
	if err != nil {
		return nil, fmt.Errorf("%w: no userdata under %s", ErrNotFound, in.Root)
	}
	var res []Profile
	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}
		if _, err := strconv.ParseUint(ent.Name(), 10, 64); err != nil {
			continue
		}
		res = append(res, Profile{
			ID:  ent.Name(),
			Dir: filepath.Join(userdata, ent.Name()),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		a, _ := strconv.ParseUint(res[i].ID, 10, 64)
		b, _ := strconv.ParseUint(res[j].ID, 10, 64)
		return a < b
	})
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: no profiles under %s", ErrNotFound, userdata)
	}
	return res, nil
}

// MostRecent picks the profile whose directory changed last, the
// best guess for the currently used account when several exist.
func MostRecent(ps []Profile) *Profile {
	var (
		best *Profile
		when int64
	)
	for i := range ps {
		fi, err := os.Stat(filepath.Join(ps[i].Dir, "config"))
		if err != nil {
			fi, err = os.Stat(ps[i].Dir)
			if err != nil {
				continue
			}
		}
		if mt := fi.ModTime().UnixNano(); best == nil || mt > when {
			best = &ps[i]
			when = mt
		}
	}
	if best == nil && len(ps) > 0 {
		best = &ps[0]
	}
	return best
}
