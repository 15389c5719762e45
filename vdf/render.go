package vdf

import (
	"fmt"
	"strings"

	"github.com/eve-tools/vgi/textvdf"
)

// Render returns the document in Valve's text KeyValues shape, one
// field per line, tab-indented. This is the human-facing form used
// for diffs and status output; Marshal is the wire form.
func Render(n *Node) string {
	sb := &strings.Builder{}
	renderFields(sb, n, 0)
	return sb.String()
}

func renderFields(sb *strings.Builder, n *Node, depth int) {
	ind := strings.Repeat("\t", depth)
	for i, key := range n.Keys {
		v := n.Values[i]
		if v == nil {
			continue
		}
		switch v.Type {
		case ArrayType:
			fmt.Fprintf(sb, "%s%s\n%s{\n", ind, textvdf.Quote(key), ind)
			renderFields(sb, v, depth+1)
			fmt.Fprintf(sb, "%s}\n", ind)
		case StringType:
			fmt.Fprintf(sb, "%s%s\t\t%s\n", ind, textvdf.Quote(key), textvdf.Quote(v.Str))
		case Int32Type:
			fmt.Fprintf(sb, "%s%s\t\t%d\n", ind, textvdf.Quote(key), v.Int32)
		}
	}
}
