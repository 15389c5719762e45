package vdf

import "strconv"

type Node struct {
	Type Type

	// Array payload. Keys[i] names Values[i]; order is wire order.
	Keys   []string
	Values []*Node

	// Scalar payloads.
	Str   string
	Int32 int32
}

func FromString(v string) *Node {
	return &Node{
		Type: StringType,
		Str:  v,
	}
}

func FromInt32(v int32) *Node {
	return &Node{
		Type:  Int32Type,
		Int32: v,
	}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromPairs(kvs []KeyVal) *Node {
	res := NewArray()
	res.Keys = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Keys[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Values)
}

func (n *Node) Get(key string) *Node {
	if n == nil {
		return nil
	}
	for i := range n.Keys {
		if n.Keys[i] == key {
			return n.Values[i]
		}
	}
	return nil
}

func (n *Node) Index(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Values) {
		return nil
	}
	return n.Values[i]
}

// Set replaces the value at key, keeping its position, or appends
// key at the end. Duplicate keys never come from Set; if the wire
// carried them, the first wins.
func (n *Node) Set(key string, v *Node) {
	for i := range n.Keys {
		if n.Keys[i] == key {
			n.Values[i] = v
			return
		}
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.Str = n.Str
	dst.Int32 = n.Int32
	if n.Keys != nil {
		dst.Keys = make([]string, len(n.Keys))
		copy(dst.Keys, n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dstI := &Node{}
			v.CloneTo(dstI)
			dst.Values[i] = dstI
		}
	}
	return dst
}

func (n *Node) Visit(f func(key string, n *Node) (bool, error)) error {
	return visit("", n, f)
}

func visit(key string, n *Node, f func(key string, n *Node) (bool, error)) error {
	dive, err := f(key, n)
	if err != nil {
		return err
	}
	if !dive {
		return nil
	}
	for i, v := range n.Values {
		if err := visit(n.Keys[i], v, f); err != nil {
			return err
		}
	}
	return nil
}

// IntKeys returns the keys of n parseable as non-negative integers,
// with their parsed values, in wire order.
func (n *Node) IntKeys() ([]string, []int) {
	var (
		keys []string
		ints []int
	)
	for _, k := range n.Keys {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			continue
		}
		keys = append(keys, k)
		ints = append(ints, i)
	}
	return keys, ints
}
