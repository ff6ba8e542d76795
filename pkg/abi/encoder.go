package abi

// mediate is the two-pass encoding intermediate described in §4.E: each
// token is lowered to a mediate value before the head/tail layout is
// emitted, mirroring the original encoder's Raw/Prefixed/PrefixedArray
// split so offsets are computed once up front rather than patched in place.
type mediateKind uint8

const (
	mediateRaw mediateKind = iota
	mediatePrefixed
	mediatePrefixedArray
	mediatePrefixedArrayWithLength
)

type mediate struct {
	kind     mediateKind
	words    []Word    // Raw, Prefixed
	children []mediate // PrefixedArray, PrefixedArrayWithLength
}

func (m mediate) headLen() int {
	if m.kind == mediateRaw {
		return WordSize * len(m.words)
	}
	return WordSize
}

func (m mediate) tailLen() int {
	switch m.kind {
	case mediateRaw:
		return 0
	case mediatePrefixed:
		return WordSize * len(m.words)
	case mediatePrefixedArray:
		n := 0
		for _, c := range m.children {
			n += c.headLen() + c.tailLen()
		}
		return n
	case mediatePrefixedArrayWithLength:
		n := WordSize
		for _, c := range m.children {
			n += c.headLen() + c.tailLen()
		}
		return n
	default:
		return 0
	}
}

// headTail produces the head and tail bytes for a flat mediate.
func (m mediate) headTail() ([]byte, []byte) {
	switch m.kind {
	case mediateRaw:
		return wordsToBytes(m.words), nil
	case mediatePrefixed:
		return nil, wordsToBytes(m.words)
	case mediatePrefixedArray:
		return nil, encodeMediateSeq(m.children)
	case mediatePrefixedArrayWithLength:
		lenWord := padU32(uint32(len(m.children)))
		return nil, append(wordsToBytes([]Word{lenWord}), encodeMediateSeq(m.children)...)
	default:
		return nil, nil
	}
}

func wordsToBytes(words []Word) []byte {
	out := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		out = append(out, w[:]...)
	}
	return out
}

// encodeMediateSeq lays out a sequence of mediates: heads left-to-right with
// offsets resolved relative to the start of the sequence, then tails in the
// same order. This is the same algorithm used both for the top-level
// encode(tokens) and for the inner sequence inside PrefixedArray /
// PrefixedArrayWithLength / dynamic Tuple mediates.
func encodeMediateSeq(mediates []mediate) []byte {
	headsLen := 0
	for _, m := range mediates {
		headsLen += m.headLen()
	}

	var heads, tails []byte
	offset := headsLen

	for _, m := range mediates {
		switch m.kind {
		case mediateRaw:
			h, _ := m.headTail()
			heads = append(heads, h...)
		default:
			heads = append(heads, wordsToBytes([]Word{padU32(uint32(offset))})...)
			_, t := m.headTail()
			tails = append(tails, t...)
			offset += len(t)
		}
	}

	return append(heads, tails...)
}

// Encode lays out tokens using the head/tail ABI convention and returns the
// packed byte stream. The result length is always a multiple of WordSize.
func Encode(tokens []Token) []byte {
	mediates := make([]mediate, len(tokens))
	for i, t := range tokens {
		mediates[i] = encodeToken(t)
	}
	return encodeMediateSeq(mediates)
}

func encodeToken(t Token) mediate {
	switch t.Kind {
	case KindAddress:
		var w Word
		copy(w[12:], t.AddressValue[:])
		return mediate{kind: mediateRaw, words: []Word{w}}
	case KindUint:
		return mediate{kind: mediateRaw, words: []Word{padInt(t.IntValue)}}
	case KindInt:
		return mediate{kind: mediateRaw, words: []Word{padInt(t.IntValue)}}
	case KindBool:
		v := uint32(0)
		if t.BoolValue {
			v = 1
		}
		return mediate{kind: mediateRaw, words: []Word{padU32(v)}}
	case KindFixedBytes:
		padded := padRight(t.BytesValue)
		words, _ := sliceData(padded)
		return mediate{kind: mediateRaw, words: words}
	case KindBytes, KindString:
		data := t.BytesValue
		if t.Kind == KindString {
			data = []byte(t.StringValue)
		}
		lenWord := padU32(uint32(len(data)))
		payload, _ := sliceData(padRight(data))
		return mediate{kind: mediatePrefixed, words: append([]Word{lenWord}, payload...)}
	case KindFixedArray:
		if !t.ElemType.IsDynamic() {
			words := make([]Word, 0, len(t.ArrayValue))
			for _, e := range t.ArrayValue {
				em := encodeToken(e)
				words = append(words, em.words...)
			}
			return mediate{kind: mediateRaw, words: words}
		}
		children := make([]mediate, len(t.ArrayValue))
		for i, e := range t.ArrayValue {
			children[i] = encodeToken(e)
		}
		return mediate{kind: mediatePrefixedArray, children: children}
	case KindArray:
		children := make([]mediate, len(t.ArrayValue))
		for i, e := range t.ArrayValue {
			children[i] = encodeToken(e)
		}
		return mediate{kind: mediatePrefixedArrayWithLength, children: children}
	case KindTuple:
		dynamic := false
		for _, e := range t.TupleValue {
			if tokenKindIsDynamic(e) {
				dynamic = true
				break
			}
		}
		if !dynamic {
			words := make([]Word, 0, len(t.TupleValue))
			for _, e := range t.TupleValue {
				em := encodeToken(e)
				words = append(words, em.words...)
			}
			return mediate{kind: mediateRaw, words: words}
		}
		children := make([]mediate, len(t.TupleValue))
		for i, e := range t.TupleValue {
			children[i] = encodeToken(e)
		}
		return mediate{kind: mediatePrefixedArray, children: children}
	default:
		return mediate{kind: mediateRaw}
	}
}

// tokenKindIsDynamic derives dynamism from a Token's own shape rather than a
// separate ParamType, since a constructed Token does not always carry one
// (only Array/FixedArray tokens do, via ElemType; Tuple tokens carry none).
func tokenKindIsDynamic(t Token) bool {
	switch t.Kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return t.ElemType.IsDynamic()
	case KindTuple:
		for _, e := range t.TupleValue {
			if tokenKindIsDynamic(e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
