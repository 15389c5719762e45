// Package vdf decodes and encodes Steam's binary KeyValues format,
// the serialization used by shortcuts.vdf.
//
// # Data Model
//
// A document is a tree of nodes. A Node is a tagged union:
//
//   - StringType: a UTF-8 string value
//   - Int32Type: a signed 32-bit integer value
//   - ArrayType: an ordered mapping from string key to child node
//
// Steam uses decimal-index keys ("0", "1", ...) for array-like nodes
// and field names for struct-like nodes; the codec treats both
// identically. Insertion order is preserved through decode, mutation,
// and encode.
//
// # Wire Format
//
// All integers are little-endian. A node body is a sequence of
// fields followed by the end marker 0x08. Each field is:
//
//	tag byte | key, NUL-terminated | payload
//
// with tag 0x00 a nested body (recursively terminated by its own end
// marker), tag 0x01 a NUL-terminated string, and tag 0x02 four bytes
// of two's-complement integer. The document root is itself a node
// body: the file's bytes are the root's fields plus the final 0x08.
//
// # Usage
//
//	doc, err := vdf.Decode(data)
//	if err != nil {
//	    return err
//	}
//	entry := doc.Get("shortcuts").Get("0")
//	entry.Set("LaunchOptions", vdf.FromString("-arg"))
//	out, err := vdf.Marshal(doc)
//
// Decode fails with ErrMalformed on truncation, an unknown type tag,
// or trailing bytes after the root's end marker. Marshal fails with
// ErrEncode when a key or string value contains a NUL byte, which the
// wire format cannot frame.
//
// # Related Packages
//
//   - github.com/eve-tools/vgi/shortcuts - shortcut entries over the tree
//   - github.com/eve-tools/vgi/textvdf - the text KeyValues form
package vdf
