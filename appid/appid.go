// Package appid derives Steam's identifiers for non-Steam shortcuts.
package appid

import (
	"fmt"
	"hash/crc32"
)

// ForShortcut returns the AppID Steam derives for a non-Steam
// shortcut: CRC32 over exe then name, with the high bit forced.
// Deterministic, so repeated installs of the same shortcut map to
// the same compatibility tool entry.
func ForShortcut(exe, name string) uint32 {
	sum := crc32.ChecksumIEEE([]byte(exe + name))
	return sum | 0x80000000
}

// RunGameID widens a shortcut AppID to the 64-bit id used by
// steam://rungameid/ URLs.
func RunGameID(id uint32) uint64 {
	return uint64(id)<<32 | 0x02000000
}

// URL returns the steam://rungameid/ URL launching the shortcut.
func URL(id uint32) string {
	return fmt.Sprintf("steam://rungameid/%d", RunGameID(id))
}
