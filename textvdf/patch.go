package textvdf

import (
	"fmt"
	"strings"
)

// entry is one immediate child of a block: a key token and either a
// scalar value token or a braced sub-block.
type entry struct {
	key   Token
	val   *Token
	open  int
	close int
}

// entries lists the immediate children of the token range [a, b).
func entries(toks []Token, a, b int) []entry {
	var res []entry
	i := a
	for i < b {
		t := toks[i]
		if t.IsOpen() || t.IsClose() {
			// stray brace
			i++
			continue
		}
		if i+1 >= b {
			res = append(res, entry{key: t, open: -1, close: -1})
			break
		}
		next := toks[i+1]
		switch {
		case next.IsOpen():
			cl := matchClose(toks, i+1, b)
			if cl < 0 {
				res = append(res, entry{key: t, open: -1, close: -1})
				return res
			}
			res = append(res, entry{key: t, open: i + 1, close: cl})
			i = cl + 1
		case next.IsClose():
			res = append(res, entry{key: t, open: -1, close: -1})
			i++
		default:
			v := next
			res = append(res, entry{key: t, val: &v, open: -1, close: -1})
			i += 2
		}
	}
	return res
}

// matchClose returns the token index of the '}' matching the '{' at
// open, or -1 when the range ends first.
func matchClose(toks []Token, open, b int) int {
	depth := 0
	for i := open; i < b; i++ {
		switch {
		case toks[i].IsOpen():
			depth++
		case toks[i].IsClose():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

type blockRef struct {
	head  Token
	open  int
	close int
}

// findBlock descends path, matching keys case-insensitively as Valve
// parsers do, and returns the deepest block reached plus how many
// path components matched.
func findBlock(toks []Token, path []string) (blockRef, int) {
	var ref blockRef
	a, b := 0, len(toks)
	matched := 0
	for _, name := range path {
		found := false
		for _, e := range entries(toks, a, b) {
			if e.open < 0 || !strings.EqualFold(e.key.Text, name) {
				continue
			}
			ref = blockRef{head: e.key, open: e.open, close: e.close}
			a, b = e.open+1, e.close
			matched++
			found = true
			break
		}
		if !found {
			break
		}
	}
	return ref, matched
}

type KeyVal struct {
	Key, Val string
}

// SetBlockEntry inserts or replaces the sub-block keyed key inside
// the block at path, written as one line. A replaced entry spanning
// several lines is spliced out whole. Missing trailing path
// components are created; a file missing path[0] altogether is not
// one of ours and yields ErrNoBlock. Every line outside the splice
// survives byte-for-byte. Entries are assumed to start their own
// line, which is how Steam writes these files.
func (f *File) SetBlockEntry(path []string, key string, pairs []KeyVal) error {
	toks, err := tokenize(f.lines)
	if err != nil {
		return err
	}
	ref, matched := findBlock(toks, path)
	if matched == 0 {
		return fmt.Errorf("%w: %s", ErrNoBlock, path[0])
	}
	for matched < len(path) {
		ind := indentOf(f.lines[ref.head.Line]) + "\t"
		closeLine := toks[ref.close].Line
		f.splice(closeLine, closeLine, []string{
			ind + Quote(path[matched]),
			ind + "{",
			ind + "}",
		})
		toks, err = tokenize(f.lines)
		if err != nil {
			return err
		}
		ref, matched = findBlock(toks, path)
	}

	ind := indentOf(f.lines[ref.head.Line]) + "\t"
	line := renderEntryLine(ind, key, pairs)
	for _, e := range entries(toks, ref.open+1, ref.close) {
		if e.key.Text != key {
			continue
		}
		last := e.key.Line
		if e.close >= 0 {
			last = toks[e.close].Line
		} else if e.val != nil {
			last = e.val.Line
		}
		f.splice(e.key.Line, last+1, []string{line})
		return nil
	}
	f.splice(toks[ref.close].Line, toks[ref.close].Line, []string{line})
	return nil
}

// BlockEntry returns the flat string pairs of the sub-block keyed key
// inside the block at path.
func (f *File) BlockEntry(path []string, key string) (map[string]string, bool, error) {
	toks, err := tokenize(f.lines)
	if err != nil {
		return nil, false, err
	}
	ref, matched := findBlock(toks, path)
	if matched < len(path) {
		return nil, false, nil
	}
	for _, e := range entries(toks, ref.open+1, ref.close) {
		if e.key.Text != key || e.open < 0 {
			continue
		}
		res := map[string]string{}
		for _, kv := range entries(toks, e.open+1, e.close) {
			if kv.val != nil {
				res[kv.key.Text] = kv.val.Text
			}
		}
		return res, true, nil
	}
	return nil, false, nil
}

// Values returns every scalar value in the file whose key equals key,
// case-insensitively, in file order.
func (f *File) Values(key string) []string {
	toks, err := tokenize(f.lines)
	if err != nil {
		return nil
	}
	var res []string
	var walk func(a, b int)
	walk = func(a, b int) {
		for _, e := range entries(toks, a, b) {
			if e.open >= 0 {
				walk(e.open+1, e.close)
				continue
			}
			if e.val != nil && strings.EqualFold(e.key.Text, key) {
				res = append(res, e.val.Text)
			}
		}
	}
	walk(0, len(toks))
	return res
}

func renderEntryLine(ind, key string, pairs []KeyVal) string {
	b := &strings.Builder{}
	b.WriteString(ind)
	b.WriteString(Quote(key))
	b.WriteString("\t\t{")
	for _, kv := range pairs {
		b.WriteByte(' ')
		b.WriteString(Quote(kv.Key))
		b.WriteByte(' ')
		b.WriteString(Quote(kv.Val))
	}
	b.WriteString(" }")
	return b.String()
}

func indentOf(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

func (f *File) splice(from, to int, repl []string) {
	res := make([]string, 0, len(f.lines)-(to-from)+len(repl))
	res = append(res, f.lines[:from]...)
	res = append(res, repl...)
	res = append(res, f.lines[to:]...)
	f.lines = res
}
