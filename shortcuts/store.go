package shortcuts

import (
	"fmt"
	"os"
	"strconv"

	"github.com/eve-tools/vgi/debug"
	"github.com/eve-tools/vgi/vdf"
)

const shortcutsKey = "shortcuts"

// Options carries the optional entry fields a caller may set.
type Options struct {
	StartDir string
	Icon     string
	// Tag is the game-specific tag placed at tags/1 when an entry is
	// created. Existing tags are never rewritten.
	Tag string
}

// Fresh returns an empty document: a root array holding an empty
// "shortcuts" array.
func Fresh() *vdf.Node {
	doc := vdf.NewArray()
	doc.Set(shortcutsKey, vdf.NewArray())
	return doc
}

// Load decodes the shortcuts file at path. A missing or zero-length
// file is the valid empty state and yields a fresh document; decode
// failures surface vdf.ErrMalformed unchanged.
func Load(path string) (*vdf.Node, error) {
	d, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if debug.Scan() {
			debug.Logf("shortcuts: %s missing, starting fresh", path)
		}
		return Fresh(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(d) == 0 {
		return Fresh(), nil
	}
	doc, err := vdf.Decode(d)
	if err != nil {
		return nil, err
	}
	if doc.Get(shortcutsKey) == nil {
		doc.Set(shortcutsKey, vdf.NewArray())
	}
	return doc, nil
}

// FindByName scans the "shortcuts" array in order, considering only
// keys parseable as non-negative integers, for the first entry whose
// appname equals name exactly (byte match, no normalization).
// Returns the entry's key and node; absence is not an error.
func FindByName(doc *vdf.Node, name string) (string, *vdf.Node, bool) {
	sc := doc.Get(shortcutsKey)
	if sc == nil || sc.Type != vdf.ArrayType {
		return "", nil, false
	}
	for i, k := range sc.Keys {
		if _, ok := parseIndex(k); !ok {
			continue
		}
		e := sc.Values[i]
		if e == nil || e.Type != vdf.ArrayType {
			continue
		}
		a := e.Get("appname")
		if a != nil && a.Type == vdf.StringType && a.Str == name {
			return k, e, true
		}
	}
	return "", nil, false
}

// Upsert finds the entry named name and updates it, or appends a new
// one under the next free index. The returned key identifies the
// entry either way.
//
// appname, exe and LaunchOptions are always written. StartDir and
// icon are written only when set in opts, so an update with empty
// opts leaves a user's values alone. Known fields that are absent are
// added with their defaults; every other field, recognized or not,
// keeps its key, type and value. Identical arguments over the same
// document encode identically, so reruns are safe.
func Upsert(doc *vdf.Node, name, exe, launchOptions string, opts Options) (string, error) {
	sc, err := shortcutsOf(doc)
	if err != nil {
		return "", err
	}
	key, e, ok := FindByName(doc, name)
	if !ok {
		key = strconv.Itoa(nextIndex(sc))
		e = vdf.NewArray()
		sc.Set(key, e)
		if debug.Scan() {
			debug.Logf("shortcuts: creating entry %s for %q", key, name)
		}
	}
	e.Set("appname", vdf.FromString(name))
	e.Set("exe", vdf.FromString(exe))
	setOrDefault(e, "StartDir", opts.StartDir)
	setOrDefault(e, "icon", opts.Icon)
	setDefault(e, "ShortcutPath", vdf.FromString(""))
	e.Set("LaunchOptions", vdf.FromString(launchOptions))
	setDefault(e, "IsHidden", vdf.FromInt32(0))
	setDefault(e, "AllowDesktopConfig", vdf.FromInt32(1))
	setDefault(e, "AllowOverlay", vdf.FromInt32(1))
	setDefault(e, "OpenVR", vdf.FromInt32(0))
	setDefault(e, "Devkit", vdf.FromInt32(0))
	setDefault(e, "DevkitGameID", vdf.FromString(""))
	setDefault(e, "LastPlayTime", vdf.FromInt32(0))
	setDefault(e, "FlatpakAppID", vdf.FromString(""))
	if e.Get("tags") == nil {
		tags := vdf.NewArray()
		tags.Set("0", vdf.FromString("Games"))
		if opts.Tag != "" {
			tags.Set("1", vdf.FromString(opts.Tag))
		}
		e.Set("tags", tags)
	}
	return key, nil
}

func shortcutsOf(doc *vdf.Node) (*vdf.Node, error) {
	if doc == nil || doc.Type != vdf.ArrayType {
		return nil, fmt.Errorf("%w: no document root", ErrBadDocument)
	}
	sc := doc.Get(shortcutsKey)
	if sc == nil {
		sc = vdf.NewArray()
		doc.Set(shortcutsKey, sc)
		return sc, nil
	}
	if sc.Type != vdf.ArrayType {
		return nil, fmt.Errorf("%w: %q is %s, want Array", ErrBadDocument, shortcutsKey, sc.Type)
	}
	return sc, nil
}

// nextIndex is 1 + the largest integer-parseable key, or 0 for an
// empty array. Gaps are tolerated, never filled.
func nextIndex(sc *vdf.Node) int {
	max := -1
	_, ints := sc.IntKeys()
	for _, i := range ints {
		if i > max {
			max = i
		}
	}
	return max + 1
}

func parseIndex(k string) (int, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func setDefault(e *vdf.Node, key string, v *vdf.Node) {
	if e.Get(key) == nil {
		e.Set(key, v)
	}
}

// setOrDefault writes v when non-empty, else only ensures the field
// exists with the empty default.
func setOrDefault(e *vdf.Node, key, v string) {
	if v != "" {
		e.Set(key, vdf.FromString(v))
		return
	}
	setDefault(e, key, vdf.FromString(""))
}
