package vdf

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if a.Type != b.Type {
		return cmp.Compare(rank(a.Type), rank(b.Type))
	}

	switch a.Type {
	case StringType:
		return strings.Compare(a.Str, b.Str)
	case Int32Type:
		return cmp.Compare(a.Int32, b.Int32)
	case ArrayType:
		return compareArrays(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Int32 < String < Array
func rank(t Type) int {
	switch t {
	case Int32Type:
		return 0
	case StringType:
		return 1
	case ArrayType:
		return 2
	}
	return 100
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Keys[i], b.Keys[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// Equal reports structural equality: same types, keys, order, and
// values, recursively.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
