package abi

import "math/big"

// Token is a tagged runtime value mirroring a ParamType. Kind determines
// which fields are populated; callers must switch on Kind.
type Token struct {
	Kind Kind

	AddressValue [20]byte
	BytesValue   []byte // Bytes and FixedBytes payload
	FixedSize    int    // FixedBytes declared size
	IntValue     *big.Int
	IntBits      int
	BoolValue    bool
	StringValue  string

	ElemType   *ParamType // Array / FixedArray element type
	ArrayValue []Token    // Array / FixedArray elements
	TupleValue []Token    // Tuple fields
}

func TokenAddress(addr [20]byte) Token { return Token{Kind: KindAddress, AddressValue: addr} }
func TokenBytes(b []byte) Token        { return Token{Kind: KindBytes, BytesValue: b} }
func TokenFixedBytes(b []byte) Token {
	return Token{Kind: KindFixedBytes, BytesValue: b, FixedSize: len(b)}
}
func TokenInt(v *big.Int, bits int) Token { return Token{Kind: KindInt, IntValue: v, IntBits: bits} }
func TokenUint(v *big.Int, bits int) Token {
	return Token{Kind: KindUint, IntValue: v, IntBits: bits}
}
func TokenBool(b bool) Token     { return Token{Kind: KindBool, BoolValue: b} }
func TokenString(s string) Token { return Token{Kind: KindString, StringValue: s} }
func TokenArray(elem ParamType, toks []Token) Token {
	return Token{Kind: KindArray, ElemType: &elem, ArrayValue: toks}
}
func TokenFixedArray(elem ParamType, toks []Token) Token {
	return Token{Kind: KindFixedArray, ElemType: &elem, ArrayValue: toks}
}
func TokenTuple(fields []Token) Token { return Token{Kind: KindTuple, TupleValue: fields} }

// TypeCheck reports whether tok is a value of kind t, recursively for
// composite kinds.
func TypeCheck(tok Token, t ParamType) bool {
	if tok.Kind != t.Kind {
		return false
	}
	switch t.Kind {
	case KindFixedBytes:
		return len(tok.BytesValue) == t.Size
	case KindInt, KindUint:
		return true
	case KindFixedArray:
		if len(tok.ArrayValue) != t.Len {
			return false
		}
		for _, e := range tok.ArrayValue {
			if !TypeCheck(e, *t.Elem) {
				return false
			}
		}
		return true
	case KindArray:
		for _, e := range tok.ArrayValue {
			if !TypeCheck(e, *t.Elem) {
				return false
			}
		}
		return true
	case KindTuple:
		if len(tok.TupleValue) != len(t.Fields) {
			return false
		}
		for i, f := range t.Fields {
			if !TypeCheck(tok.TupleValue[i], f) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// TypesCheck reports whether each token in toks type-checks against the
// corresponding ParamType in types; lengths must also match.
func TypesCheck(toks []Token, types []ParamType) bool {
	if len(toks) != len(types) {
		return false
	}
	for i, t := range types {
		if !TypeCheck(toks[i], t) {
			return false
		}
	}
	return true
}
