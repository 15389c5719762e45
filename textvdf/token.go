package textvdf

import (
	"fmt"
	"strings"
)

// Token is one lexical element of a text KeyValues file: a quoted or
// bare string, or a single brace. Positions index into the file's
// lines so patches can splice around tokens without re-serializing.
type Token struct {
	Text   string
	Quoted bool
	Line   int
	Col    int
	End    int
}

func (t *Token) IsOpen() bool {
	return !t.Quoted && t.Text == "{"
}

func (t *Token) IsClose() bool {
	return !t.Quoted && t.Text == "}"
}

func tokenize(lines []string) ([]Token, error) {
	var toks []Token
	for li, line := range lines {
		i := 0
		n := len(line)
		for i < n {
			c := line[i]
			switch {
			case c == ' ' || c == '\t' || c == '\r':
				i++
			case c == '/' && i+1 < n && line[i+1] == '/':
				i = n
			case c == '{' || c == '}':
				toks = append(toks, Token{
					Text: string(c),
					Line: li,
					Col:  i,
					End:  i + 1,
				})
				i++
			case c == '"':
				text, end, err := scanQuoted(line, i)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, li+1, err)
				}
				toks = append(toks, Token{
					Text:   text,
					Quoted: true,
					Line:   li,
					Col:    i,
					End:    end,
				})
				i = end
			default:
				start := i
				for i < n && !strings.ContainsRune(" \t\r\"{}", rune(line[i])) {
					i++
				}
				toks = append(toks, Token{
					Text: line[start:i],
					Line: li,
					Col:  start,
					End:  i,
				})
			}
		}
	}
	return toks, nil
}

// scanQuoted reads a quoted token starting at the opening quote and
// returns the unescaped text and the offset past the closing quote.
// Quotes do not span lines.
func scanQuoted(line string, start int) (string, int, error) {
	b := &strings.Builder{}
	i := start + 1
	n := len(line)
	for i < n {
		c := line[i]
		switch c {
		case '"':
			return b.String(), i + 1, nil
		case '\\':
			if i+1 >= n {
				return "", 0, fmt.Errorf("trailing backslash")
			}
			i++
			switch line[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				// unrecognized escapes pass through, some Valve
				// writers do not escape backslashes
				b.WriteByte('\\')
				b.WriteByte(line[i])
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("unterminated quote")
}

// Quote renders s as a quoted token.
func Quote(s string) string {
	b := &strings.Builder{}
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
