package vdf

import "fmt"

// Type values are the wire type tags.
type Type int

const (
	ArrayType  Type = 0x00
	StringType Type = 0x01
	Int32Type  Type = 0x02

	// endMarker terminates a field sequence; it is not a node type.
	endMarker Type = 0x08
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ArrayType:  "Array",
		StringType: "String",
		Int32Type:  "Int32",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Array":  ArrayType,
		"String": StringType,
		"Int32":  Int32Type,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func (t Type) IsScalar() bool {
	switch t {
	case ArrayType:
		return false
	default:
		return true
	}
}
