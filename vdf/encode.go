package vdf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/eve-tools/vgi/debug"
)

// Marshal serializes the root array: each field in slice order,
// recursively, then the end marker. Exact inverse of Decode.
func Marshal(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil document", ErrEncode)
	}
	if n.Type != ArrayType {
		return nil, fmt.Errorf("%w: document root must be an array, got %s", ErrEncode, n.Type)
	}
	if debug.Encode() {
		debug.Logf("vdf: encode %d root fields", len(n.Keys))
	}
	buf := &bytes.Buffer{}
	if err := encodeFields(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Encode(n *Node, w io.Writer) error {
	d, err := Marshal(n)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func encodeFields(buf *bytes.Buffer, n *Node) error {
	if len(n.Keys) != len(n.Values) {
		return fmt.Errorf("%w: %d keys for %d values", ErrEncode, len(n.Keys), len(n.Values))
	}
	for i, key := range n.Keys {
		v := n.Values[i]
		if v == nil {
			return fmt.Errorf("%w: nil value for key %q", ErrEncode, key)
		}
		switch v.Type {
		case ArrayType, StringType, Int32Type:
		default:
			return fmt.Errorf("%w: unknown node type %d for key %q", ErrEncode, int(v.Type), key)
		}
		buf.WriteByte(byte(v.Type))
		if err := encodeString(buf, key); err != nil {
			return err
		}
		switch v.Type {
		case ArrayType:
			if err := encodeFields(buf, v); err != nil {
				return err
			}
		case StringType:
			if err := encodeString(buf, v.Str); err != nil {
				return err
			}
		case Int32Type:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(v.Int32))
			buf.Write(b[:])
		}
	}
	buf.WriteByte(byte(endMarker))
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%w: NUL byte in %q", ErrEncode, s)
	}
	buf.WriteString(s)
	buf.WriteByte(0)
	return nil
}
