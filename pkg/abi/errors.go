package abi

import "fmt"

// Sentinel error classifications. Wrap these with errors.Is/errors.As against
// values returned by this package; CodecError.Unwrap exposes the sentinel.
var (
	// ErrInvalidName marks a lookup miss in a contract descriptor (unknown
	// function, event, or error name).
	ErrInvalidName = fmt.Errorf("abi: invalid name")
	// ErrInvalidData marks malformed byte streams, type mismatches, and
	// topic-count mismatches. The decoder never distinguishes subclasses of
	// this error to avoid leaking layout details to an attacker.
	ErrInvalidData = fmt.Errorf("abi: invalid data")
	// ErrSerdeJSON marks a JSON marshal/unmarshal failure.
	ErrSerdeJSON = fmt.Errorf("abi: json error")
	// ErrParseInt marks an integer-parsing failure in the tokenizer.
	ErrParseInt = fmt.Errorf("abi: integer parse error")
	// ErrUtf8 marks a UTF-8 validation failure while decoding a String.
	ErrUtf8 = fmt.Errorf("abi: invalid utf-8")
	// ErrHex marks a hex-decoding failure in the tokenizer.
	ErrHex = fmt.Errorf("abi: invalid hex")
	// ErrOther covers diagnostics that do not fit the structured variants
	// above. Kept minimal per design notes; prefer a structured sentinel
	// when a failure mode recurs.
	ErrOther = fmt.Errorf("abi: error")
)

// CodecError wraps a sentinel classification with contextual detail.
type CodecError struct {
	kind    error
	message string
}

func (e *CodecError) Error() string {
	return e.message
}

// Unwrap exposes the sentinel classification for errors.Is / errors.As.
func (e *CodecError) Unwrap() error {
	return e.kind
}

func newError(kind error, format string, args ...interface{}) *CodecError {
	return &CodecError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// NewInvalidNameError builds an ErrInvalidName-classified error for a missing
// contract-descriptor lookup.
func NewInvalidNameError(name string) error {
	return newError(ErrInvalidName, "invalid name: %s", name)
}
