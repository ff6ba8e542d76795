package abi

// AbiError is a custom Solidity error descriptor: shaped like a Function
// with no outputs, and its selector is computed identically.
type AbiError struct {
	Name   string
	Inputs []Param
}

func (e *AbiError) inputTypes() []ParamType {
	types := make([]ParamType, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Kind
	}
	return types
}

// Selector returns the error's 4-byte selector.
func (e *AbiError) Selector() [4]byte {
	return Selector4(e.Name, e.inputTypes())
}

// Encode type-checks tokens and returns selector || encode(tokens).
func (e *AbiError) Encode(tokens []Token) ([]byte, error) {
	types := e.inputTypes()
	if !TypesCheck(tokens, types) {
		return nil, newError(ErrInvalidData, "input tokens do not match types for error %s", e.Name)
	}
	sel := e.Selector()
	out := make([]byte, 0, 4+32*len(tokens))
	out = append(out, sel[:]...)
	out = append(out, Encode(tokens)...)
	return out, nil
}

// Decode decodes the error payload (selector already stripped by the
// caller) against Inputs.
func (e *AbiError) Decode(data []byte) ([]Token, error) {
	return Decode(e.inputTypes(), data)
}
