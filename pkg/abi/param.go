package abi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Param is a named function/constructor/error parameter descriptor.
type Param struct {
	Name         string
	Kind         ParamType
	InternalType string // optional, empty when absent
}

// EventParam adds the indexed flag to Param.
type EventParam struct {
	Name    string
	Kind    ParamType
	Indexed bool
}

// rawComponent mirrors one element of an ABI JSON "components" array, and
// doubles as the shape parsed for top-level Param/EventParam "type" fields.
type rawComponent struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	InternalType string         `json:"internalType,omitempty"`
	Indexed      bool           `json:"indexed,omitempty"`
	Components   []rawComponent `json:"components,omitempty"`
}

// buildParamType resolves a JSON "type" string against its sibling
// "components" list, recursively rebuilding any nested tuple array suffix.
// This is the Go equivalent of the original deserializer's
// set_tuple_components step: "tuple", "tuple[]", "tuple[3][]", etc. all
// route their base case through components instead of the primitive table.
func buildParamType(typeStr string, components []rawComponent) (ParamType, error) {
	s := strings.TrimSpace(typeStr)

	if strings.HasSuffix(s, "]") {
		depth := 0
		for i := len(s) - 1; i >= 0; i-- {
			switch s[i] {
			case ']':
				depth++
			case '[':
				depth--
				if depth == 0 {
					prefix := s[:i]
					sizeStr := s[i+1 : len(s)-1]
					elem, err := buildParamType(prefix, components)
					if err != nil {
						return ParamType{}, err
					}
					if sizeStr == "" {
						return Array(elem), nil
					}
					n, err := strconv.Atoi(sizeStr)
					if err != nil {
						return ParamType{}, newError(ErrParseInt, "invalid array length %q: %v", sizeStr, err)
					}
					return FixedArray(elem, n), nil
				}
			}
		}
		return ParamType{}, newError(ErrInvalidName, "unbalanced brackets in %q", typeStr)
	}

	if s == "tuple" {
		fields := make([]ParamType, len(components))
		for i, c := range components {
			f, err := buildParamType(c.Type, c.Components)
			if err != nil {
				return ParamType{}, err
			}
			fields[i] = f
		}
		return Tuple(fields...), nil
	}

	return ReadParamType(s)
}

// sanitizeName truncates name at its first "(", preserving legacy ABIs that
// embedded the call signature inside the name field.
func sanitizeName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

// UnmarshalJSON parses a Param from an ABI JSON object: name, type,
// internalType?, components?.
func (p *Param) UnmarshalJSON(data []byte) error {
	var raw rawComponent
	if err := json.Unmarshal(data, &raw); err != nil {
		return newError(ErrSerdeJSON, "param: %v", err)
	}
	kind, err := buildParamType(raw.Type, raw.Components)
	if err != nil {
		return err
	}
	p.Name = raw.Name
	p.Kind = kind
	p.InternalType = raw.InternalType
	return nil
}

// MarshalJSON serializes a Param back to its ABI JSON shape, emitting
// "components" iff the type contains a tuple.
func (p Param) MarshalJSON() ([]byte, error) {
	raw := paramToRaw(p.Name, p.Kind, p.InternalType, false)
	return json.Marshal(raw)
}

// UnmarshalJSON parses an EventParam, defaulting Indexed to false when
// absent.
func (p *EventParam) UnmarshalJSON(data []byte) error {
	var raw rawComponent
	if err := json.Unmarshal(data, &raw); err != nil {
		return newError(ErrSerdeJSON, "event param: %v", err)
	}
	kind, err := buildParamType(raw.Type, raw.Components)
	if err != nil {
		return err
	}
	p.Name = raw.Name
	p.Kind = kind
	p.Indexed = raw.Indexed
	return nil
}

// MarshalJSON serializes an EventParam back to its ABI JSON shape.
func (p EventParam) MarshalJSON() ([]byte, error) {
	raw := paramToRaw(p.Name, p.Kind, "", true)
	raw.Indexed = p.Indexed
	return json.Marshal(raw)
}

func paramToRaw(name string, kind ParamType, internalType string, withIndexed bool) rawComponent {
	raw := rawComponent{Name: name, Type: writeForJSON(kind), InternalType: internalType}
	if inner := innerTuple(kind); inner != nil {
		raw.Components = tupleComponents(*inner)
	}
	_ = withIndexed
	return raw
}

// writeForJSON renders kind for the "type" field of ABI JSON: array/fixed
// array suffixes are written normally, but a tuple base is written as the
// literal keyword "tuple" (its fields travel out-of-band via "components"),
// matching real-world Solidity ABI JSON rather than the "(...)" canonical
// signature form used for selector/topic hashing.
func writeForJSON(kind ParamType) string {
	switch kind.Kind {
	case KindArray:
		return writeForJSON(*kind.Elem) + "[]"
	case KindFixedArray:
		return writeForJSON(*kind.Elem) + "[" + strconv.Itoa(kind.Len) + "]"
	case KindTuple:
		return "tuple"
	default:
		return kind.String()
	}
}

// innerTuple returns the Tuple field list reachable through zero or more
// array wrappers, or nil if kind does not contain a tuple at its base.
func innerTuple(kind ParamType) *[]ParamType {
	switch kind.Kind {
	case KindTuple:
		fields := kind.Fields
		return &fields
	case KindArray, KindFixedArray:
		return innerTuple(*kind.Elem)
	default:
		return nil
	}
}

func tupleComponents(fields []ParamType) []rawComponent {
	out := make([]rawComponent, len(fields))
	for i, f := range fields {
		out[i] = rawComponent{Type: writeForJSON(f)}
		if inner := innerTuple(f); inner != nil {
			out[i].Components = tupleComponents(*inner)
		}
	}
	return out
}
