package vdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// wire builders for byte-exact expectations

func fString(key, val string) []byte {
	d := []byte{0x01}
	d = append(d, key...)
	d = append(d, 0)
	d = append(d, val...)
	d = append(d, 0)
	return d
}

func fInt32(key string, v int32) []byte {
	d := []byte{0x02}
	d = append(d, key...)
	d = append(d, 0)
	var q [4]byte
	binary.LittleEndian.PutUint32(q[:], uint32(v))
	return append(d, q[:]...)
}

func fArray(key string, fields ...[]byte) []byte {
	d := []byte{0x00}
	d = append(d, key...)
	d = append(d, 0)
	for _, f := range fields {
		d = append(d, f...)
	}
	return append(d, 0x08)
}

func seq(fields ...[]byte) []byte {
	var d []byte
	for _, f := range fields {
		d = append(d, f...)
	}
	return append(d, 0x08)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want *Node
	}{
		{
			name: "empty document",
			in:   seq(),
			want: NewArray(),
		},
		{
			name: "scalars",
			in:   seq(fString("appname", "EVE Vanguard"), fInt32("IsHidden", 0)),
			want: FromPairs([]KeyVal{
				{"appname", FromString("EVE Vanguard")},
				{"IsHidden", FromInt32(0)},
			}),
		},
		{
			name: "negative int32",
			in:   seq(fInt32("appid", -202250386)),
			want: FromPairs([]KeyVal{
				{"appid", FromInt32(-202250386)},
			}),
		},
		{
			name: "nested arrays keep order",
			in: seq(fArray("shortcuts",
				fArray("0",
					fString("appname", "a"),
					fArray("tags", fString("0", "Games")),
					fInt32("LastPlayTime", 0),
				),
			)),
			want: FromPairs([]KeyVal{
				{"shortcuts", FromPairs([]KeyVal{
					{"0", FromPairs([]KeyVal{
						{"appname", FromString("a")},
						{"tags", FromPairs([]KeyVal{
							{"0", FromString("Games")},
						})},
						{"LastPlayTime", FromInt32(0)},
					})},
				})},
			}),
		},
		{
			name: "empty string value",
			in:   seq(fString("StartDir", "")),
			want: FromPairs([]KeyVal{
				{"StartDir", FromString("")},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{name: "empty input", in: nil},
		{name: "no end marker", in: fString("a", "b")},
		{name: "unknown tag", in: []byte{0x03, 'a', 0, 0x08}},
		{name: "truncated key", in: []byte{0x01, 'a', 'b'}},
		{name: "truncated string value", in: []byte{0x01, 'a', 0, 'x'}},
		{name: "truncated int32", in: []byte{0x02, 'a', 0, 1, 2}},
		{name: "unterminated nested array", in: []byte{0x00, 'k', 0}},
		{name: "trailing bytes", in: append(seq(), 0x00)},
		{name: "second document", in: append(seq(), seq(fString("a", "b"))...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if err == nil {
				t.Fatalf("Decode() = nil error, want ErrMalformed")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestMarshalBytes(t *testing.T) {
	doc := FromPairs([]KeyVal{
		{"shortcuts", FromPairs([]KeyVal{
			{"0", FromPairs([]KeyVal{
				{"appname", FromString("EVE Vanguard")},
				{"IsHidden", FromInt32(0)},
				{"LastPlayTime", FromInt32(-1)},
			})},
		})},
	})
	want := seq(fArray("shortcuts",
		fArray("0",
			fString("appname", "EVE Vanguard"),
			fInt32("IsHidden", 0),
			fInt32("LastPlayTime", -1),
		),
	))
	got, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Marshal() = %x, want %x", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []*Node{
		NewArray(),
		FromPairs([]KeyVal{
			{"shortcuts", NewArray()},
		}),
		FromPairs([]KeyVal{
			{"shortcuts", FromPairs([]KeyVal{
				{"0", FromPairs([]KeyVal{
					{"appname", FromString("EVE Vanguard")},
					{"exe", FromString(`C:\Games\x.exe`)},
					{"StartDir", FromString("")},
					{"LaunchOptions", FromString("-arg1 -arg2")},
					{"IsHidden", FromInt32(0)},
					{"LastPlayTime", FromInt32(1722803000)},
					{"tags", FromPairs([]KeyVal{
						{"0", FromString("Games")},
						{"1", FromString("Vanguard")},
					})},
				})},
				{"3", FromPairs([]KeyVal{
					{"appname", FromString("unicode name \u00e9\u4e16")},
					{"weird", FromInt32(-42)},
				})},
			})},
			{"extra", FromString("kept")},
		}),
	}
	for _, doc := range docs {
		d, err := Marshal(doc)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		back, err := Decode(d)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if diff := cmp.Diff(doc, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
		if Compare(doc, back) != 0 {
			t.Errorf("Compare() != 0 after round trip")
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Node
	}{
		{name: "nil document", doc: nil},
		{name: "scalar root", doc: FromString("x")},
		{
			name: "NUL in key",
			doc: FromPairs([]KeyVal{
				{"a\x00b", FromString("v")},
			}),
		},
		{
			name: "NUL in string value",
			doc: FromPairs([]KeyVal{
				{"k", FromString("a\x00b")},
			}),
		},
		{
			name: "nil value",
			doc: FromPairs([]KeyVal{
				{"k", nil},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.doc)
			if err == nil {
				t.Fatalf("Marshal() = nil error, want ErrEncode")
			}
			if !errors.Is(err, ErrEncode) {
				t.Errorf("Marshal() error = %v, want ErrEncode", err)
			}
		})
	}
}

func TestEncodeWriter(t *testing.T) {
	doc := FromPairs([]KeyVal{
		{"k", FromString("v")},
	})
	buf := &bytes.Buffer{}
	if err := Encode(doc, buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Encode() bytes differ from Marshal()")
	}
}
