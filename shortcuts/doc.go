// Package shortcuts owns the non-Steam shortcut entries inside a
// decoded shortcuts.vdf document: locating an entry by name,
// creating or updating it without disturbing anything else in the
// file, and installing the result atomically with a backup.
//
// # Usage
//
//	doc, err := shortcuts.Load(path)
//	if err != nil {
//	    return err
//	}
//	key, err := shortcuts.Upsert(doc, name, exe, args, shortcuts.Options{
//	    StartDir: dir,
//	    Tag:      "Vanguard",
//	})
//	if err != nil {
//	    return err
//	}
//	backup, err := shortcuts.Persist(path, doc)
//
// The update path rewrites only the fields this tool owns; fields it
// does not recognize keep their key, type and value, so a document
// Steam has extended is safe to round-trip. Upsert with identical
// arguments is idempotent, making reruns and caller-side retries
// safe.
//
// # Related Packages
//
//   - github.com/eve-tools/vgi/vdf - the binary codec underneath
package shortcuts
