package abi

import (
	"strings"

	"golang.org/x/crypto/sha3"
)

// canonicalSignature builds name(T1,T2,...) with no internal whitespace,
// using each ParamType's canonical textual form (tuples as "(...)").
func canonicalSignature(name string, params []ParamType) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.TrimSpace(name) + "(" + strings.Join(parts, ",") + ")"
}

// hashSignature returns keccak256(name(T1,...,Tn)). Kept internal; callers
// use Selector4/Topic0 below.
func hashSignature(name string, params []ParamType) [32]byte {
	sig := canonicalSignature(name, params)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Selector4 returns the 4-byte function/error selector: the first 4 bytes of
// keccak256(name(T1,...,Tn)).
func Selector4(name string, params []ParamType) [4]byte {
	full := hashSignature(name, params)
	var sel [4]byte
	copy(sel[:], full[:4])
	return sel
}

// Topic0 returns the full 32-byte event topic-0 hash.
func Topic0(name string, params []ParamType) [32]byte {
	return hashSignature(name, params)
}
