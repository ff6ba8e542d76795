package abi

import "math/big"

// Word is the 32-byte atomic unit of the ABI encoding. Every value placed in
// an encoded stream occupies a whole number of Words.
type Word [32]byte

// WordSize is the number of bytes in a Word.
const WordSize = 32

// padU32 places v in the last 4 bytes of a Word, zero-filled.
func padU32(v uint32) Word {
	var w Word
	w[28] = byte(v >> 24)
	w[29] = byte(v >> 16)
	w[30] = byte(v >> 8)
	w[31] = byte(v)
	return w
}

// padInt sign-extends v into a Word using two's-complement, filling with
// 0xff for negative values and 0x00 for non-negative ones. It takes no width
// argument: the padding always produces a full 32-byte word, generalizing
// beyond any single machine integer width so that the full int256 range
// (e.g. -2^255) is representable.
func padInt(v *big.Int) Word {
	var w Word
	if v.Sign() >= 0 {
		b := v.Bytes()
		copy(w[32-len(b):], b)
		return w
	}

	// Two's complement: (1<<256) + v, then take the low 256 bits.
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	twos := new(big.Int).Add(mod, v)
	b := twos.Bytes()
	copy(w[32-len(b):], b)
	return w
}

// padRight copies b into a zero-padded Word slice whose length is the
// smallest multiple of 32 that fits b.
func padRight(b []byte) []byte {
	n := ((len(b) + WordSize - 1) / WordSize) * WordSize
	if n == 0 {
		n = WordSize
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// sliceData splits bytes into Words, failing if the length is not a
// multiple of 32.
func sliceData(data []byte) ([]Word, error) {
	if len(data)%WordSize != 0 {
		return nil, newError(ErrInvalidData, "data length %d is not a multiple of %d", len(data), WordSize)
	}
	words := make([]Word, len(data)/WordSize)
	for i := range words {
		copy(words[i][:], data[i*WordSize:(i+1)*WordSize])
	}
	return words, nil
}

// asUint256 interprets w as an unsigned big-endian integer.
func (w Word) asUint256() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// asInt256 interprets w as a two's-complement signed big-endian integer.
func (w Word) asInt256() *big.Int {
	v := new(big.Int).SetBytes(w[:])
	if w[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		v.Sub(v, mod)
	}
	return v
}
