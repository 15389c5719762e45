package shortcuts

import (
	"fmt"
	"os"
	"time"

	"github.com/eve-tools/vgi/debug"
	"github.com/eve-tools/vgi/vdf"
)

// Persist installs doc at path, staged so no failure leaves a
// partial file at the canonical path: the encoding is written and
// synced to a temporary sibling, any prior file is renamed to a
// timestamped backup, then the temporary is renamed into place.
// After a crash the prior content is still at path or at the backup
// path. Returns the backup path, "" when there was no prior file.
func Persist(path string, doc *vdf.Node) (string, error) {
	d, err := vdf.Marshal(doc)
	if err != nil {
		return "", err
	}
	return persistBytes(path, d, time.Now())
}

// PersistBytes installs raw bytes at path under the same staging
// discipline as Persist. Used for the other Steam config files the
// tool edits alongside shortcuts.vdf.
func PersistBytes(path string, d []byte) (string, error) {
	return persistBytes(path, d, time.Now())
}

func persistBytes(path string, d []byte, now time.Time) (string, error) {
	tmp := path + ".tmp"
	if err := writeTemp(tmp, d); err != nil {
		return "", err
	}
	backup := ""
	if _, err := os.Stat(path); err == nil {
		backup = backupPath(path, now)
		if err := os.Rename(path, backup); err != nil {
			os.Remove(tmp)
			return "", fmt.Errorf("%w: backup %s: %v", ErrWrite, backup, err)
		}
		if debug.Persist() {
			debug.Logf("shortcuts: prior file backed up to %s", backup)
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		// the backup is the recovery artifact, leave it and the
		// synced temp in place
		return backup, fmt.Errorf("%w: install %s: %v", ErrWrite, path, err)
	}
	if debug.Persist() {
		debug.Logf("shortcuts: installed %d bytes at %s", len(d), path)
	}
	return backup, nil
}

func writeTemp(tmp string, d []byte) error {
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if _, err := f.Write(d); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// backupPath is path + ".bak." + timestamp, uniquely suffixed rather
// than ever overwriting an existing backup.
func backupPath(path string, now time.Time) string {
	base := path + ".bak." + now.Format("20060102-150405")
	cand := base
	for i := 1; ; i++ {
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
		cand = fmt.Sprintf("%s.%d", base, i)
	}
}
