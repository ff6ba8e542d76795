package abi

import (
	"math/big"
	"strings"
	"testing"
)

// FuzzDecodeNoPanic mirrors original_source's fixed_abi_decode_random fuzz
// target: feed arbitrary byte strings through Decode against a handful of
// representative function-input shapes (mixing static, dynamic, and nested
// dynamic types) and require a clean error rather than a panic. Decode must
// bounds-check every offset/length it reads instead of trusting attacker
// input, exactly as required by the resource model's InvalidData contract.
func FuzzDecodeNoPanic(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, 32))
	f.Add(make([]byte, 31))
	f.Add([]byte{0xff})
	seedWord := make([]byte, 32)
	seedWord[31] = 0x20
	f.Add(seedWord)

	shapes := [][]ParamType{
		{Address(), Uint(256)},
		{Bytes()},
		{String()},
		{Array(Address())},
		{Array(Bytes())},
		{Array(Array(Address()))},
		{Tuple(Uint(256), String())},
		{FixedArray(Bytes(), 2)},
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, types := range shapes {
			// Decode must never panic, regardless of how malformed data is;
			// an error return is the only acceptable failure mode.
			_, _ = Decode(types, data)
		}
	})
}

// FuzzEncodeDecodeRoundTrip builds small bounded token trees from fuzzer
// bytes and checks a weak form of the round-trip property of SPEC_FULL.md
// §4.F / scenario-set §8: the encoding is a whole number of words, and
// decode(encode(tokens)) succeeds and yields a token that type-checks against
// the original type, including through the nested-dynamic shapes that rebase
// offsets against an enclosing sequence rather than the whole buffer. Value
// equality is not checked here.
func FuzzEncodeDecodeRoundTrip(f *testing.F) {
	f.Add(uint8(0), int64(0), "")
	f.Add(uint8(1), int64(-7), "hi")
	f.Add(uint8(2), int64(1234), "gavofyork")
	f.Add(uint8(3), int64(0), "nested")

	f.Fuzz(func(t *testing.T, shape uint8, n int64, s string) {
		typ, tok := fuzzShape(shape, n, s)
		encoded := Encode([]Token{tok})
		if len(encoded)%WordSize != 0 {
			t.Fatalf("encoded length %d not a multiple of %d", len(encoded), WordSize)
		}
		decoded, err := Decode([]ParamType{typ}, encoded)
		if err != nil {
			t.Fatalf("decode after encode failed: %v", err)
		}
		if !TypeCheck(decoded[0], typ) {
			t.Fatalf("decoded token does not type-check against %s", typ)
		}
	})
}

func fuzzShape(shape uint8, n int64, s string) (ParamType, Token) {
	val := big.NewInt(n)
	// String tokens must hold valid UTF-8; Decode rejects anything else.
	s = strings.ToValidUTF8(s, "�")

	switch shape % 4 {
	case 0:
		typ := Array(Bytes())
		return typ, TokenArray(Bytes(), []Token{TokenBytes([]byte(s))})
	case 1:
		typ := Array(Array(Uint(256)))
		inner := Array(Uint(256))
		return typ, TokenArray(inner, []Token{
			TokenArray(Uint(256), []Token{TokenUint(new(big.Int).Abs(val), 256)}),
		})
	case 2:
		typ := Tuple(Int(256), String())
		return typ, TokenTuple([]Token{TokenInt(val, 256), TokenString(s)})
	default:
		typ := FixedArray(String(), 2)
		return typ, TokenFixedArray(String(), []Token{TokenString(s), TokenString(s)})
	}
}
