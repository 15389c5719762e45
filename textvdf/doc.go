// Package textvdf reads and patches Valve's text KeyValues files
// (config.vdf, libraryfolders.vdf).
//
// Steam rewrites these files itself, so edits are deliberately
// narrow: a File is a list of lines, lookups go through a tokenizer
// that understands quoting and braces, and the only mutation is
// SetBlockEntry, which splices a single entry line into a named
// block and leaves every other line byte-for-byte intact.
//
// # Related Packages
//
//   - github.com/eve-tools/vgi/vdf - the binary KeyValues form
package textvdf
