package shortcuts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eve-tools/vgi/vdf"
)

func TestPersistFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	doc := Fresh()
	if _, err := Upsert(doc, "EVE Vanguard", "/bin/x", "-a", Options{Tag: "Vanguard"}); err != nil {
		t.Fatal(err)
	}
	backup, err := Persist(path, doc)
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if backup != "" {
		t.Errorf("Persist() backup = %q, want none for a fresh file", backup)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !vdf.Equal(doc, back) {
		t.Errorf("persisted document does not round trip")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestPersistBacksUpPrior(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	doc := Fresh()
	if _, err := Upsert(doc, "a", "/bin/a", "", Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := Persist(path, doc); err != nil {
		t.Fatal(err)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Upsert(doc, "b", "/bin/b", "", Options{}); err != nil {
		t.Fatal(err)
	}
	backup, err := Persist(path, doc)
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if backup == "" {
		t.Fatalf("Persist() returned no backup path")
	}
	got, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if !bytes.Equal(got, old) {
		t.Errorf("backup content differs from prior file")
	}
	cur, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cur, mustMarshal(t, doc)) {
		t.Errorf("canonical file is not the new encoding")
	}
}

func TestBackupNeverOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.vdf")
	now := time.Date(2025, 8, 2, 15, 4, 5, 0, time.UTC)
	d1 := []byte{0x08}
	d2 := append([]byte(nil), fakeDoc(t, "a")...)
	d3 := append([]byte(nil), fakeDoc(t, "b")...)

	if _, err := persistBytes(path, d1, now); err != nil {
		t.Fatal(err)
	}
	b2, err := persistBytes(path, d2, now)
	if err != nil {
		t.Fatal(err)
	}
	b3, err := persistBytes(path, d3, now)
	if err != nil {
		t.Fatal(err)
	}
	if b2 == b3 {
		t.Fatalf("backup path reused: %q", b2)
	}
	if want := path + ".bak.20250802-150405"; b2 != want {
		t.Errorf("first backup = %q, want %q", b2, want)
	}
	if want := path + ".bak.20250802-150405.1"; b3 != want {
		t.Errorf("second backup = %q, want %q", b3, want)
	}
	for _, c := range []struct {
		p    string
		want []byte
	}{
		{b2, d1},
		{b3, d2},
		{path, d3},
	} {
		got, err := os.ReadFile(c.p)
		if err != nil {
			t.Fatalf("read %s: %v", c.p, err)
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("%s content mismatch", c.p)
		}
	}
}

// fakeDoc returns a distinct valid encoding per name.
func fakeDoc(t *testing.T, name string) []byte {
	t.Helper()
	doc := Fresh()
	if _, err := Upsert(doc, name, "/bin/"+name, "", Options{}); err != nil {
		t.Fatal(err)
	}
	return mustMarshal(t, doc)
}

// TestCrashBetweenBackupAndInstall drives the staged steps by hand
// and stops before the final rename, the worst crash point: the
// canonical path is briefly absent, but the prior content is intact
// at the backup path and the full new encoding is synced in the temp
// file, so neither version is ever truncated.
func TestCrashBetweenBackupAndInstall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.vdf")
	old := fakeDoc(t, "old")
	if err := os.WriteFile(path, old, 0644); err != nil {
		t.Fatal(err)
	}
	next := fakeDoc(t, "new")

	tmp := path + ".tmp"
	if err := writeTemp(tmp, next); err != nil {
		t.Fatalf("writeTemp() error = %v", err)
	}
	backup := backupPath(path, time.Now())
	if err := os.Rename(path, backup); err != nil {
		t.Fatal(err)
	}

	// crashed here: canonical absent, recovery possible from backup
	got, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup unreadable after crash: %v", err)
	}
	if !bytes.Equal(got, old) {
		t.Errorf("backup does not hold the prior content")
	}
	if _, err := vdf.Decode(got); err != nil {
		t.Errorf("backup not decodable: %v", err)
	}
	staged, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("temp unreadable after crash: %v", err)
	}
	if !bytes.Equal(staged, next) {
		t.Errorf("temp file truncated")
	}

	// recovery by finishing the install
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	cur, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(cur, next) {
		t.Errorf("canonical file is not the new content after recovery")
	}
}

func TestPersistEncodeErrorTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.vdf")
	old := fakeDoc(t, "old")
	if err := os.WriteFile(path, old, 0644); err != nil {
		t.Fatal(err)
	}

	bad := Fresh()
	bad.Get("shortcuts").Set("0", vdf.FromPairs([]vdf.KeyVal{
		{Key: "appname", Val: vdf.FromString("nul\x00byte")},
	}))
	_, err := Persist(path, bad)
	if !errors.Is(err, vdf.ErrEncode) {
		t.Fatalf("Persist() error = %v, want ErrEncode", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, old) {
		t.Errorf("canonical file modified on encode failure")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 1 {
		t.Errorf("stray files after failed persist: %v", ents)
	}
}

func TestPersistWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "shortcuts.vdf")
	doc := Fresh()
	_, err := Persist(path, doc)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Persist() error = %v, want ErrWrite", err)
	}
}
