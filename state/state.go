// Package state persists the parameters resolved by an install run
// (Steam root, profile, paths, shortcut identity) so later runs skip
// discovery and prompting.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/eve-tools/vgi/debug"
)

const (
	dirName    = "vgi"
	fileName   = "config.yaml"
	legacyDir  = "VGI"
	legacyFile = "config.json"
)

// State is the record of one successful install. The json tags match
// the key names the predecessor Python tool wrote, so its config.json
// loads unchanged.
type State struct {
	SteamRoot    string `json:"steam_root,omitempty" yaml:"steam_root,omitempty"`
	ProfileID    string `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	ShortcutsVDF string `json:"shortcuts_vdf,omitempty" yaml:"shortcuts_vdf,omitempty"`
	ConfigVDF    string `json:"config_vdf,omitempty" yaml:"config_vdf,omitempty"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	ExeRel       string `json:"exe_rel,omitempty" yaml:"exe_rel,omitempty"`
	Name         string `json:"shortcut_name,omitempty" yaml:"shortcut_name,omitempty"`
	AppID        uint32 `json:"appid,omitempty" yaml:"appid,omitempty"`
	Proton       string `json:"proton_tool,omitempty" yaml:"proton_tool,omitempty"`
	Priority     int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	CompatDataID string `json:"compatdata_id,omitempty" yaml:"compatdata_id,omitempty"`
}

// Resolved reports whether the state carries enough to skip Steam
// discovery. Callers still verify the paths exist.
func (s *State) Resolved() bool {
	return s.SteamRoot != "" && s.ShortcutsVDF != "" && s.ConfigVDF != ""
}

// Dir returns the tool's config directory, ~/.config/vgi on Linux.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, dirName), nil
}

// LogsDir returns the per-run log directory under Dir.
func LogsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Path returns the state file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func legacyPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, legacyDir, legacyFile), nil
}

// Load reads the saved state. A missing file is a valid empty state.
// When only the Python tool's config.json exists, it is read instead;
// the next Save writes the YAML form.
func Load() (*State, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	d, err := os.ReadFile(p)
	if err == nil {
		st := &State{}
		if err := yaml.Unmarshal(d, st); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		return st, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return loadLegacy()
}

func loadLegacy() (*State, error) {
	lp, err := legacyPath()
	if err != nil {
		return nil, err
	}
	d, err := os.ReadFile(lp)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}
	st := &State{}
	if err := json.Unmarshal(d, st); err != nil {
		return nil, fmt.Errorf("parsing legacy %s: %w", lp, err)
	}
	if debug.Scan() {
		debug.Logf("state: loaded legacy config from %s", lp)
	}
	return st, nil
}

// Save writes st under Dir, creating the directory if needed.
func Save(st *State) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, st)
}

// SaveTo writes st to path through a temp sibling and rename, so a
// torn write never leaves a partial state file.
func SaveTo(path string, st *State) error {
	d, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, d, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
