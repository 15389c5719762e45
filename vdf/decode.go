package vdf

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/eve-tools/vgi/debug"
)

// Decode reads one field sequence starting at offset 0 and returns
// it as the document root. The whole input must be consumed: bytes
// past the root's end marker are malformed.
func Decode(d []byte) (*Node, error) {
	off := 0
	root := NewArray()
	if err := decodeFields(d, &off, root); err != nil {
		return nil, err
	}
	if off != len(d) {
		return nil, fmt.Errorf("%w: %d trailing bytes at offset %d", ErrMalformed, len(d)-off, off)
	}
	return root, nil
}

func decodeFields(d []byte, off *int, n *Node) error {
	for {
		if *off >= len(d) {
			return fmt.Errorf("%w: unterminated field sequence at offset %d", ErrMalformed, *off)
		}
		tag := Type(d[*off])
		*off++
		if tag == endMarker {
			return nil
		}
		switch tag {
		case ArrayType, StringType, Int32Type:
		default:
			return fmt.Errorf("%w: unknown type tag 0x%02x at offset %d", ErrMalformed, byte(tag), *off-1)
		}
		key, err := decodeString(d, off)
		if err != nil {
			return err
		}
		if debug.Decode() {
			debug.Logf("vdf: decode %s key %q at offset %d", tag, key, *off)
		}
		switch tag {
		case ArrayType:
			child := NewArray()
			if err := decodeFields(d, off, child); err != nil {
				return err
			}
			n.Keys = append(n.Keys, key)
			n.Values = append(n.Values, child)
		case StringType:
			s, err := decodeString(d, off)
			if err != nil {
				return err
			}
			n.Keys = append(n.Keys, key)
			n.Values = append(n.Values, FromString(s))
		case Int32Type:
			v, err := decodeInt32(d, off)
			if err != nil {
				return err
			}
			n.Keys = append(n.Keys, key)
			n.Values = append(n.Values, FromInt32(v))
		}
	}
}

func decodeString(d []byte, off *int) (string, error) {
	i := bytes.IndexByte(d[*off:], 0)
	if i < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrMalformed, *off)
	}
	s := string(d[*off : *off+i])
	*off += i + 1
	return s, nil
}

func decodeInt32(d []byte, off *int) (int32, error) {
	if *off+4 > len(d) {
		return 0, fmt.Errorf("%w: truncated int32 at offset %d", ErrMalformed, *off)
	}
	v := int32(binary.LittleEndian.Uint32(d[*off:]))
	*off += 4
	return v, nil
}
