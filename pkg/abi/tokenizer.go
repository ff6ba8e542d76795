package abi

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// siUnit is one recognized lenient-mode suffix for Uint values, expressed
// as the power-of-ten multiplier applied to the numeric prefix.
type siUnit struct {
	suffix     string
	multiplier int32 // power of ten
}

// Longest suffixes first so "nanoether" matches before "nano" or "ether".
var siUnits = []siUnit{
	{"nanoether", 9},
	{"ether", 18},
	{"gwei", 9},
	{"nano", 9},
	{"wei", 0},
}

// Tokenize parses raw against kind, in strict or lenient dialect.
func Tokenize(kind ParamType, raw string, lenient bool) (Token, error) {
	switch kind.Kind {
	case KindAddress:
		b, err := decodeFixedHex(raw, 20)
		if err != nil {
			return Token{}, err
		}
		var addr [20]byte
		copy(addr[:], b)
		return TokenAddress(addr), nil

	case KindFixedBytes:
		b, err := decodeFixedHex(raw, kind.Size)
		if err != nil {
			return Token{}, err
		}
		return TokenFixedBytes(b), nil

	case KindBytes:
		b, err := decodeHex(raw)
		if err != nil {
			return Token{}, err
		}
		return TokenBytes(b), nil

	case KindBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			return TokenBool(true), nil
		case "false", "0":
			return TokenBool(false), nil
		default:
			return Token{}, newError(ErrInvalidData, "invalid bool value %q", raw)
		}

	case KindString:
		return TokenString(raw), nil

	case KindUint:
		return tokenizeUint(kind.Size, raw, lenient)

	case KindInt:
		return tokenizeInt(kind.Size, raw, lenient)

	case KindArray:
		items, err := splitComposite(raw, '[', ']')
		if err != nil {
			return Token{}, err
		}
		toks := make([]Token, len(items))
		for i, it := range items {
			t, err := Tokenize(*kind.Elem, it, lenient)
			if err != nil {
				return Token{}, err
			}
			toks[i] = t
		}
		return TokenArray(*kind.Elem, toks), nil

	case KindFixedArray:
		items, err := splitComposite(raw, '[', ']')
		if err != nil {
			return Token{}, err
		}
		if len(items) != kind.Len {
			return Token{}, newError(ErrInvalidData, "expected %d array elements, got %d", kind.Len, len(items))
		}
		toks := make([]Token, len(items))
		for i, it := range items {
			t, err := Tokenize(*kind.Elem, it, lenient)
			if err != nil {
				return Token{}, err
			}
			toks[i] = t
		}
		return TokenFixedArray(*kind.Elem, toks), nil

	case KindTuple:
		items, err := splitComposite(raw, '(', ')')
		if err != nil {
			return Token{}, err
		}
		if len(items) != len(kind.Fields) {
			return Token{}, newError(ErrInvalidData, "expected %d tuple fields, got %d", len(kind.Fields), len(items))
		}
		toks := make([]Token, len(items))
		for i, it := range items {
			t, err := Tokenize(kind.Fields[i], it, lenient)
			if err != nil {
				return Token{}, err
			}
			toks[i] = t
		}
		return TokenTuple(toks), nil

	default:
		return Token{}, newError(ErrInvalidData, "unsupported type kind %d", kind.Kind)
	}
}

// splitComposite strips a single pair of open/close delimiters (if present,
// tolerated but not required) and splits the interior on top-level commas,
// respecting nested [](), and ignoring commas inside balanced double quotes
// so string elements may contain them.
func splitComposite(raw string, open, close byte) ([]string, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && s[0] == open && s[len(s)-1] == close {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
			// ignore structural characters inside quotes
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
			if depth < 0 {
				return nil, newError(ErrInvalidData, "unbalanced delimiters in %q", raw)
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if inQuote {
		return nil, newError(ErrInvalidData, "unbalanced quotes in %q", raw)
	}
	if depth != 0 {
		return nil, newError(ErrInvalidData, "unbalanced delimiters in %q", raw)
	}
	parts = append(parts, s[start:])

	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return parts, nil
}

func trimHexPrefix(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}

func decodeFixedHex(raw string, n int) ([]byte, error) {
	s := trimHexPrefix(strings.TrimSpace(raw))
	if len(s) != n*2 {
		return nil, newError(ErrInvalidData, "expected %d hex characters, got %d", n*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newError(ErrHex, "invalid hex %q: %v", raw, err)
	}
	return b, nil
}

func decodeHex(raw string) ([]byte, error) {
	s := trimHexPrefix(strings.TrimSpace(raw))
	if len(s)%2 != 0 {
		return nil, newError(ErrInvalidData, "odd-length hex string %q", raw)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newError(ErrHex, "invalid hex %q: %v", raw, err)
	}
	return b, nil
}

func tokenizeUint(bits int, raw string, lenient bool) (Token, error) {
	s := strings.TrimSpace(raw)
	if !lenient {
		b, err := decodeFixedHex(s, bits/8)
		if err != nil {
			return Token{}, err
		}
		return TokenUint(new(big.Int).SetBytes(b), bits), nil
	}

	if v, ok, err := tryParseSIUint(s); ok {
		if err != nil {
			return Token{}, err
		}
		return TokenUint(v, bits), nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := decodeHex(s)
		if err != nil {
			return Token{}, err
		}
		return TokenUint(new(big.Int).SetBytes(b), bits), nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Token{}, newError(ErrParseInt, "Uint parse error: InvalidCharacter")
	}
	if v.Sign() < 0 {
		return Token{}, newError(ErrParseInt, "Uint parse error: InvalidCharacter")
	}
	return TokenUint(v, bits), nil
}

// tryParseSIUint recognizes a decimal value followed by one of the known SI
// suffixes (ether/gwei/nano/nanoether/wei), using exact decimal arithmetic
// to avoid precision loss near the unit boundary. ok is false when raw does
// not end in a recognized suffix, in which case the caller falls through to
// plain decimal/hex parsing.
func tryParseSIUint(raw string) (*big.Int, bool, error) {
	lower := strings.ToLower(raw)
	for _, u := range siUnits {
		if !strings.HasSuffix(lower, u.suffix) {
			continue
		}
		numPart := strings.TrimSpace(raw[:len(raw)-len(u.suffix)])
		if numPart == "" {
			return nil, true, newError(ErrParseInt, "Uint parse error: InvalidLength")
		}
		d, err := decimal.NewFromString(numPart)
		if err != nil {
			return nil, true, newError(ErrParseInt, "Uint parse error: InvalidCharacter")
		}
		if d.Sign() < 0 {
			return nil, true, newError(ErrParseInt, "Uint parse error: InvalidCharacter")
		}
		scale := decimal.NewFromBigInt(big.NewInt(10), 0).Pow(decimal.NewFromInt32(u.multiplier))
		scaled := d.Mul(scale)
		if !scaled.Equal(scaled.Truncate(0)) {
			return nil, true, newError(ErrParseInt, "Uint parse error: InvalidLength")
		}
		return scaled.BigInt(), true, nil
	}
	return nil, false, nil
}

var (
	maxInt256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minInt256 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

func tokenizeInt(bits int, raw string, lenient bool) (Token, error) {
	s := strings.TrimSpace(raw)
	if !lenient {
		neg := strings.HasPrefix(s, "-")
		hexPart := s
		if neg {
			hexPart = s[1:]
		}
		b, err := decodeFixedHex(hexPart, bits/8)
		if err != nil {
			return Token{}, err
		}
		v := new(big.Int).SetBytes(b)
		if neg {
			v.Neg(v)
		}
		return TokenInt(v, bits), nil
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Token{}, newError(ErrParseInt, "int%d parse error: InvalidCharacter", bits)
	}
	if v.Cmp(maxInt256) > 0 {
		return Token{}, newError(ErrParseInt, "int%d parse error: Overflow", bits)
	}
	if v.Cmp(minInt256) < 0 {
		return Token{}, newError(ErrParseInt, "int%d parse error: Underflow", bits)
	}
	return TokenInt(v, bits), nil
}
