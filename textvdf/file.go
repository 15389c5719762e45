package textvdf

import (
	"os"
	"strings"
)

// File holds a text KeyValues file as lines. Edits splice whole
// lines; everything untouched survives byte-for-byte.
type File struct {
	lines []string
	noEOL bool
}

func Parse(d []byte) *File {
	if len(d) == 0 {
		return &File{}
	}
	lines := strings.Split(string(d), "\n")
	f := &File{lines: lines}
	if lines[len(lines)-1] == "" {
		f.lines = lines[:len(lines)-1]
	} else {
		f.noEOL = true
	}
	return f
}

func Load(path string) (*File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d), nil
}

func (f *File) Bytes() []byte {
	if len(f.lines) == 0 {
		return nil
	}
	s := strings.Join(f.lines, "\n")
	if !f.noEOL {
		s += "\n"
	}
	return []byte(s)
}

func (f *File) String() string {
	return string(f.Bytes())
}

func (f *File) Lines() []string {
	res := make([]string, len(f.lines))
	copy(res, f.lines)
	return res
}
