package main

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines bounds how much of an unchanged run the diff shows.
const contextLines = 3

// lineDiff renders a line diff between two texts, the preview
// -dry-run prints instead of writing files. Long unchanged runs are
// elided to contextLines on either side.
func lineDiff(st *styles, before, after string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffInsert:
			for _, l := range ls {
				sb.WriteString(st.Add("+ %s", l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffDelete:
			for _, l := range ls {
				sb.WriteString(st.Del("- %s", l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffEqual:
			if len(ls) > 2*contextLines+1 {
				head := ls[:contextLines]
				tail := ls[len(ls)-contextLines:]
				for _, l := range head {
					sb.WriteString("  " + l + "\n")
				}
				sb.WriteString(st.Dim("  ... %d unchanged lines", len(ls)-2*contextLines))
				sb.WriteByte('\n')
				for _, l := range tail {
					sb.WriteString("  " + l + "\n")
				}
				continue
			}
			for _, l := range ls {
				sb.WriteString("  " + l + "\n")
			}
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
