package textvdf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "quoted pair",
			in:   []string{"\t\"path\"\t\t\"/mnt/games\""},
			want: []string{"path", "/mnt/games"},
		},
		{
			name: "braces split from keys",
			in:   []string{`"8500" { "name" "proton_experimental" }`},
			want: []string{"8500", "{", "name", "proton_experimental", "}"},
		},
		{
			name: "brace glued to quote",
			in:   []string{`"k"{`},
			want: []string{"k", "{"},
		},
		{
			name: "escapes",
			in:   []string{`"C:\\Games\\x" "say \"hi\""`},
			want: []string{`C:\Games\x`, `say "hi"`},
		},
		{
			name: "unknown escape passes through",
			in:   []string{`"C:\Games"`},
			want: []string{`C:\Games`},
		},
		{
			name: "comment to end of line",
			in:   []string{`"a" "b" // trailing "c"`},
			want: []string{"a", "b"},
		},
		{
			name: "bare tokens",
			in:   []string{"key value"},
			want: []string{"key", "value"},
		},
		{
			name: "empty quoted",
			in:   []string{`"config" ""`},
			want: []string{"config", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := tokenize(tt.in)
			if err != nil {
				t.Fatalf("tokenize() error = %v", err)
			}
			var got []string
			for _, tok := range toks {
				got = append(got, tok.Text)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []string
	}{
		{name: "unterminated quote", in: []string{`"open`}},
		{name: "trailing backslash", in: []string{`"a\`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenize(tt.in)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("tokenize() error = %v, want ErrSyntax", err)
			}
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	vals := []string{
		"plain",
		"",
		"with space",
		`back\slash`,
		`quo"te`,
		"tab\there",
		"new\nline",
	}
	for _, v := range vals {
		toks, err := tokenize([]string{Quote(v)})
		if err != nil {
			t.Fatalf("tokenize(Quote(%q)) error = %v", v, err)
		}
		if len(toks) != 1 || toks[0].Text != v {
			t.Errorf("Quote(%q) tokenized to %+v", v, toks)
		}
	}
}

func TestParseBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "trailing newline", in: "\"a\"\n{\n}\n"},
		{name: "no trailing newline", in: "\"a\"\n{\n}"},
		{name: "empty", in: ""},
		{name: "crlf preserved", in: "\"a\"\r\n{\r\n}\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse([]byte(tt.in))
			if got := string(f.Bytes()); got != tt.in {
				t.Errorf("Bytes() = %q, want %q", got, tt.in)
			}
		})
	}
}
