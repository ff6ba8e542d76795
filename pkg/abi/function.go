package abi

import "strings"

// Function is a contract function descriptor: call-builder for
// EncodeInput/DecodeOutput/DecodeInput.
type Function struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability StateMutability
	Constant        bool // legacy, advisory only; preserved for round-trip
}

func (f *Function) inputTypes() []ParamType {
	types := make([]ParamType, len(f.Inputs))
	for i, p := range f.Inputs {
		types[i] = p.Kind
	}
	return types
}

func (f *Function) outputTypes() []ParamType {
	types := make([]ParamType, len(f.Outputs))
	for i, p := range f.Outputs {
		types[i] = p.Kind
	}
	return types
}

// Selector returns the function's 4-byte selector.
func (f *Function) Selector() [4]byte {
	return Selector4(f.Name, f.inputTypes())
}

// Signature returns a human string "name(ins):(outs)", omitting the
// ":(outs)" suffix when the function has no outputs.
func (f *Function) Signature() string {
	ins := make([]string, len(f.Inputs))
	for i, p := range f.Inputs {
		ins[i] = p.Kind.String()
	}
	sig := f.Name + "(" + strings.Join(ins, ",") + ")"
	if len(f.Outputs) == 0 {
		return sig
	}
	outs := make([]string, len(f.Outputs))
	for i, p := range f.Outputs {
		outs[i] = p.Kind.String()
	}
	return sig + ":(" + strings.Join(outs, ",") + ")"
}

// EncodeInput type-checks tokens against Inputs, then returns
// selector || encode(tokens).
func (f *Function) EncodeInput(tokens []Token) ([]byte, error) {
	types := f.inputTypes()
	if !TypesCheck(tokens, types) {
		return nil, newError(ErrInvalidData, "input tokens do not match types for %s", f.Name)
	}
	sel := f.Selector()
	out := make([]byte, 0, 4+32*len(tokens))
	out = append(out, sel[:]...)
	out = append(out, Encode(tokens)...)
	return out, nil
}

// DecodeOutput decodes return data against Outputs.
func (f *Function) DecodeOutput(data []byte) ([]Token, error) {
	return Decode(f.outputTypes(), data)
}

// DecodeInput decodes call data against Inputs. The caller must have
// already stripped the 4-byte selector.
func (f *Function) DecodeInput(data []byte) ([]Token, error) {
	return Decode(f.inputTypes(), data)
}
