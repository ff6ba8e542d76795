package abi

import "unicode/utf8"

// maxDecodeDepth bounds recursion over nested dynamic composites, guarding
// against stack exhaustion on adversarial input. Exceeding it is reported as
// InvalidData rather than a panic.
const maxDecodeDepth = 32

// Decode inverts Encode: given the declared types and a packed byte stream,
// it recovers the token sequence. An empty data slice decodes successfully
// only when every type accepts the empty encoding (FixedBytes(0) and
// FixedArray(_, 0)); any out-of-range offset or length is reported as
// ErrInvalidData.
func Decode(types []ParamType, data []byte) ([]Token, error) {
	if len(data) == 0 {
		for _, t := range types {
			if !acceptsEmpty(t) {
				return nil, newError(ErrInvalidData, "empty input does not satisfy type %s", t)
			}
		}
	}

	d := &decodeCursor{data: data}
	offset := 0
	tokens := make([]Token, len(types))
	for i, t := range types {
		tok, consumed, err := d.decodeAt(t, 0, offset, 0)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
		offset += consumed
	}
	return tokens, nil
}

func acceptsEmpty(t ParamType) bool {
	switch t.Kind {
	case KindFixedBytes:
		return t.Size == 0
	case KindFixedArray:
		return t.Len == 0
	default:
		return false
	}
}

type decodeCursor struct {
	data []byte
}

func (d *decodeCursor) peekWord(at int) (Word, error) {
	if at < 0 || at+WordSize > len(d.data) {
		return Word{}, newError(ErrInvalidData, "word read out of bounds at offset %d", at)
	}
	var w Word
	copy(w[:], d.data[at:at+WordSize])
	return w, nil
}

func (d *decodeCursor) peekBytes(at, n int) ([]byte, error) {
	if at < 0 || n < 0 || at+n > len(d.data) {
		return nil, newError(ErrInvalidData, "byte read out of bounds at offset %d length %d", at, n)
	}
	return d.data[at : at+n], nil
}

func (d *decodeCursor) asUsize(at int) (int, error) {
	w, err := d.peekWord(at)
	if err != nil {
		return 0, err
	}
	v := w.asUint256()
	if !v.IsUint64() || v.Uint64() > uint64(1)<<32 {
		return 0, newError(ErrInvalidData, "length/offset value out of range at offset %d", at)
	}
	return int(v.Uint64()), nil
}

// decodeAt decodes a single value of type t whose head slot lives at the
// absolute byte position base+localOff, and returns the number of LOCAL
// head bytes consumed (32 for a single word, or the static width for a
// static composite) — local meaning relative to base, the same coordinate
// system the caller's own cursor is already expressed in.
//
// base is the absolute byte position that corresponds to local offset 0 for
// whatever sequence the current head word belongs to. It matches the
// encoder's own recursive structure in encoder.go: encodeMediateSeq writes
// offsets relative to the start of its own heads/tails region, so every
// dynamic value's stored offset must be resolved against the base of the
// enclosing sequence it was written in, not against the start of the whole
// buffer. Entering a nested dynamic region (an Array's elements, a
// dynamic Tuple's fields, a dynamic FixedArray's elements) introduces a new
// base — the absolute start of that region's own local coordinate system —
// which is threaded down through the recursive calls that decode it.
func (d *decodeCursor) decodeAt(t ParamType, base, localOff, depth int) (Token, int, error) {
	if depth > maxDecodeDepth {
		return Token{}, 0, newError(ErrInvalidData, "exceeded max decode depth %d", maxDecodeDepth)
	}

	switch t.Kind {
	case KindAddress:
		w, err := d.peekWord(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		var addr [20]byte
		copy(addr[:], w[12:])
		return TokenAddress(addr), WordSize, nil

	case KindBool:
		w, err := d.peekWord(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenBool(w[31] != 0), WordSize, nil

	case KindUint:
		w, err := d.peekWord(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenUint(w.asUint256(), t.Size), WordSize, nil

	case KindInt:
		w, err := d.peekWord(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenInt(w.asInt256(), t.Size), WordSize, nil

	case KindFixedBytes:
		if t.Size == 0 {
			return TokenFixedBytes(nil), WordSize, nil
		}
		b, err := d.peekBytes(base+localOff, t.Size)
		if err != nil {
			return Token{}, 0, err
		}
		out := make([]byte, t.Size)
		copy(out, b)
		return TokenFixedBytes(out), WordSize, nil

	case KindBytes, KindString:
		localDynOff, err := d.asUsize(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		absDynOff := base + localDynOff
		length, err := d.asUsize(absDynOff)
		if err != nil {
			return Token{}, 0, err
		}
		payload, err := d.peekBytes(absDynOff+WordSize, length)
		if err != nil {
			return Token{}, 0, err
		}
		out := make([]byte, length)
		copy(out, payload)
		if t.Kind == KindString {
			if !utf8.Valid(out) {
				return Token{}, 0, newError(ErrUtf8, "invalid utf-8 in decoded string at offset %d", absDynOff)
			}
			return TokenString(string(out)), WordSize, nil
		}
		return TokenBytes(out), WordSize, nil

	case KindArray:
		localDynOff, err := d.asUsize(base + localOff)
		if err != nil {
			return Token{}, 0, err
		}
		absDynOff := base + localDynOff
		length, err := d.asUsize(absDynOff)
		if err != nil {
			return Token{}, 0, err
		}
		childrenBase := absDynOff + WordSize
		width := WordSize
		if !t.Elem.IsDynamic() {
			width = WordSize * t.Elem.staticWordCount()
		}
		if width > 0 && length > (len(d.data)-childrenBase)/width {
			return Token{}, 0, newError(ErrInvalidData, "array length %d exceeds remaining data at offset %d", length, absDynOff)
		}
		elems := make([]Token, length)
		cursor := 0
		for i := 0; i < length; i++ {
			tok, consumed, err := d.decodeAt(*t.Elem, childrenBase, cursor, depth+1)
			if err != nil {
				return Token{}, 0, err
			}
			elems[i] = tok
			cursor += consumed
		}
		return TokenArray(*t.Elem, elems), WordSize, nil

	case KindFixedArray:
		if t.Elem.IsDynamic() {
			localDynOff, err := d.asUsize(base + localOff)
			if err != nil {
				return Token{}, 0, err
			}
			childrenBase := base + localDynOff
			elems := make([]Token, t.Len)
			cursor := 0
			for i := 0; i < t.Len; i++ {
				tok, consumed, err := d.decodeAt(*t.Elem, childrenBase, cursor, depth+1)
				if err != nil {
					return Token{}, 0, err
				}
				elems[i] = tok
				cursor += consumed
			}
			return TokenFixedArray(*t.Elem, elems), WordSize, nil
		}
		elems := make([]Token, t.Len)
		cursor := localOff
		total := 0
		for i := 0; i < t.Len; i++ {
			tok, consumed, err := d.decodeAt(*t.Elem, base, cursor, depth+1)
			if err != nil {
				return Token{}, 0, err
			}
			elems[i] = tok
			cursor += consumed
			total += consumed
		}
		return TokenFixedArray(*t.Elem, elems), total, nil

	case KindTuple:
		if t.IsDynamic() {
			localDynOff, err := d.asUsize(base + localOff)
			if err != nil {
				return Token{}, 0, err
			}
			childrenBase := base + localDynOff
			fields := make([]Token, len(t.Fields))
			cursor := 0
			for i, f := range t.Fields {
				tok, consumed, err := d.decodeAt(f, childrenBase, cursor, depth+1)
				if err != nil {
					return Token{}, 0, err
				}
				fields[i] = tok
				cursor += consumed
			}
			return TokenTuple(fields), WordSize, nil
		}
		fields := make([]Token, len(t.Fields))
		cursor := localOff
		total := 0
		for i, f := range t.Fields {
			tok, consumed, err := d.decodeAt(f, base, cursor, depth+1)
			if err != nil {
				return Token{}, 0, err
			}
			fields[i] = tok
			cursor += consumed
			total += consumed
		}
		return TokenTuple(fields), total, nil

	default:
		return Token{}, 0, newError(ErrInvalidData, "unsupported type kind %d", t.Kind)
	}
}
