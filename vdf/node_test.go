package vdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetKeepsPosition(t *testing.T) {
	n := FromPairs([]KeyVal{
		{"a", FromString("1")},
		{"b", FromString("2")},
		{"c", FromString("3")},
	})
	n.Set("b", FromInt32(7))
	want := FromPairs([]KeyVal{
		{"a", FromString("1")},
		{"b", FromInt32(7)},
		{"c", FromString("3")},
	})
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAppends(t *testing.T) {
	n := NewArray()
	n.Set("x", FromString("1"))
	n.Set("y", FromString("2"))
	if got := n.Keys; len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("Set() keys = %v, want [x y]", got)
	}
	if n.Get("y").Str != "2" {
		t.Errorf("Get(y) = %q, want 2", n.Get("y").Str)
	}
	if n.Get("missing") != nil {
		t.Errorf("Get(missing) != nil")
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := FromPairs([]KeyVal{
		{"outer", FromPairs([]KeyVal{
			{"inner", FromString("v")},
		})},
	})
	c := n.Clone()
	if diff := cmp.Diff(n, c); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}
	c.Get("outer").Set("inner", FromString("changed"))
	if n.Get("outer").Get("inner").Str != "v" {
		t.Errorf("Clone() shares children with original")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{name: "nil nil", a: nil, b: nil, want: 0},
		{name: "nil less", a: nil, b: NewArray(), want: -1},
		{name: "type rank", a: FromInt32(9), b: FromString(""), want: -1},
		{name: "string order", a: FromString("a"), b: FromString("b"), want: -1},
		{name: "int order", a: FromInt32(-1), b: FromInt32(1), want: -1},
		{
			name: "array key order",
			a:    FromPairs([]KeyVal{{"a", FromInt32(1)}}),
			b:    FromPairs([]KeyVal{{"b", FromInt32(1)}}),
			want: -1,
		},
		{
			name: "array length",
			a:    NewArray(),
			b:    FromPairs([]KeyVal{{"a", FromInt32(1)}}),
			want: -1,
		},
		{
			name: "equal trees",
			a: FromPairs([]KeyVal{
				{"k", FromPairs([]KeyVal{{"0", FromString("x")}})},
			}),
			b: FromPairs([]KeyVal{
				{"k", FromPairs([]KeyVal{{"0", FromString("x")}})},
			}),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestIntKeys(t *testing.T) {
	n := FromPairs([]KeyVal{
		{"0", FromString("a")},
		{"extra", FromString("b")},
		{"5", FromString("c")},
		{"-3", FromString("d")},
		{"2", FromString("e")},
	})
	keys, ints := n.IntKeys()
	wantKeys := []string{"0", "5", "2"}
	wantInts := []int{0, 5, 2}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("IntKeys() keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantInts, ints); diff != "" {
		t.Errorf("IntKeys() ints mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	doc := FromPairs([]KeyVal{
		{"shortcuts", FromPairs([]KeyVal{
			{"0", FromPairs([]KeyVal{
				{"appname", FromString("EVE Vanguard")},
				{"IsHidden", FromInt32(0)},
			})},
		})},
	})
	want := "\"shortcuts\"\n" +
		"{\n" +
		"\t\"0\"\n" +
		"\t{\n" +
		"\t\t\"appname\"\t\t\"EVE Vanguard\"\n" +
		"\t\t\"IsHidden\"\t\t0\n" +
		"\t}\n" +
		"}\n"
	if got := Render(doc); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestVisit(t *testing.T) {
	doc := FromPairs([]KeyVal{
		{"a", FromPairs([]KeyVal{
			{"b", FromString("x")},
		})},
		{"c", FromInt32(1)},
	})
	var keys []string
	err := doc.Visit(func(key string, n *Node) (bool, error) {
		keys = append(keys, key)
		return true, nil
	})
	if err != nil {
		t.Fatalf("Visit() error = %v", err)
	}
	want := []string{"", "a", "b", "c"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Visit() order mismatch (-want +got):\n%s", diff)
	}
}
