package abi

import (
	"encoding/json"
	"io"
	"sort"
)

// Contract is the parsed form of an ABI JSON array: a read-only descriptor
// of a contract's constructor, functions, events, and errors. Built once
// from JSON, it is safe for concurrent read-only use by many callers.
type Contract struct {
	Constructor *Constructor
	Functions   map[string][]Function
	Events      map[string][]Event
	Errors      map[string][]AbiError
	Fallback    bool
	Receive     bool
}

// operation is one element of the top-level ABI JSON array, tagged by
// "type". Fields are a superset across constructor/function/event/error/
// fallback/receive; each branch reads only the fields relevant to it.
type operation struct {
	Type            string         `json:"type"`
	Name            string         `json:"name"`
	Inputs          []rawComponent `json:"inputs"`
	Outputs         []rawComponent `json:"outputs"`
	StateMutability string         `json:"stateMutability"`
	Constant        bool           `json:"constant"`
	Anonymous       bool           `json:"anonymous"`
}

// LoadContract parses a Contract from an ABI JSON array.
func LoadContract(r io.Reader) (*Contract, error) {
	var ops []operation
	if err := json.NewDecoder(r).Decode(&ops); err != nil {
		return nil, newError(ErrSerdeJSON, "contract: %v", err)
	}

	c := &Contract{
		Functions: make(map[string][]Function),
		Events:    make(map[string][]Event),
		Errors:    make(map[string][]AbiError),
	}

	for _, op := range ops {
		switch op.Type {
		case "constructor":
			inputs, err := buildParams(op.Inputs)
			if err != nil {
				return nil, err
			}
			c.Constructor = &Constructor{Inputs: inputs, StateMutability: parseStateMutability(op.StateMutability)}

		case "function", "":
			fn, err := buildFunction(op)
			if err != nil {
				return nil, err
			}
			name := sanitizeName(fn.Name)
			fn.Name = name
			c.Functions[name] = append(c.Functions[name], fn)

		case "event":
			ev, err := buildEvent(op)
			if err != nil {
				return nil, err
			}
			name := sanitizeName(ev.Name)
			ev.Name = name
			c.Events[name] = append(c.Events[name], ev)

		case "error":
			inputs, err := buildParams(op.Inputs)
			if err != nil {
				return nil, err
			}
			name := sanitizeName(op.Name)
			c.Errors[name] = append(c.Errors[name], AbiError{Name: name, Inputs: inputs})

		case "fallback":
			c.Fallback = true

		case "receive":
			c.Receive = true
		}
	}

	return c, nil
}

func buildParams(raw []rawComponent) ([]Param, error) {
	out := make([]Param, len(raw))
	for i, r := range raw {
		kind, err := buildParamType(r.Type, r.Components)
		if err != nil {
			return nil, err
		}
		out[i] = Param{Name: r.Name, Kind: kind, InternalType: r.InternalType}
	}
	return out, nil
}

func buildEventParams(raw []rawComponent) ([]EventParam, error) {
	out := make([]EventParam, len(raw))
	for i, r := range raw {
		kind, err := buildParamType(r.Type, r.Components)
		if err != nil {
			return nil, err
		}
		out[i] = EventParam{Name: r.Name, Kind: kind, Indexed: r.Indexed}
	}
	return out, nil
}

func buildFunction(op operation) (Function, error) {
	inputs, err := buildParams(op.Inputs)
	if err != nil {
		return Function{}, err
	}
	outputs, err := buildParams(op.Outputs)
	if err != nil {
		return Function{}, err
	}
	return Function{
		Name:            op.Name,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: parseStateMutability(op.StateMutability),
		Constant:        op.Constant,
	}, nil
}

func buildEvent(op operation) (Event, error) {
	inputs, err := buildEventParams(op.Inputs)
	if err != nil {
		return Event{}, err
	}
	return Event{Name: op.Name, Inputs: inputs, Anonymous: op.Anonymous}, nil
}

// Function returns the first overload registered under name.
func (c *Contract) Function(name string) (*Function, error) {
	list := c.Functions[name]
	if len(list) == 0 {
		return nil, NewInvalidNameError(name)
	}
	return &list[0], nil
}

// FunctionsByName returns every overload registered under name.
func (c *Contract) FunctionsByName(name string) ([]Function, error) {
	list, ok := c.Functions[name]
	if !ok {
		return nil, NewInvalidNameError(name)
	}
	return list, nil
}

// Event returns the first overload registered under name.
func (c *Contract) Event(name string) (*Event, error) {
	list := c.Events[name]
	if len(list) == 0 {
		return nil, NewInvalidNameError(name)
	}
	return &list[0], nil
}

// EventsByName returns every overload registered under name.
func (c *Contract) EventsByName(name string) ([]Event, error) {
	list, ok := c.Events[name]
	if !ok {
		return nil, NewInvalidNameError(name)
	}
	return list, nil
}

// Error returns the first overload registered under name.
func (c *Contract) Error(name string) (*AbiError, error) {
	list := c.Errors[name]
	if len(list) == 0 {
		return nil, NewInvalidNameError(name)
	}
	return &list[0], nil
}

// MarshalJSON serializes the contract back to an ABI JSON array, iterating
// name-keyed maps in sorted order for deterministic output.
func (c *Contract) MarshalJSON() ([]byte, error) {
	var ops []json.RawMessage

	if c.Constructor != nil {
		raw, err := json.Marshal(struct {
			Type            string  `json:"type"`
			Inputs          []Param `json:"inputs"`
			StateMutability string  `json:"stateMutability"`
		}{"constructor", c.Constructor.Inputs, c.Constructor.StateMutability.String()})
		if err != nil {
			return nil, err
		}
		ops = append(ops, raw)
	}

	for _, name := range sortedKeysFn(c.Functions) {
		for _, fn := range c.Functions[name] {
			raw, err := json.Marshal(struct {
				Type            string  `json:"type"`
				Name            string  `json:"name"`
				Inputs          []Param `json:"inputs"`
				Outputs         []Param `json:"outputs"`
				StateMutability string  `json:"stateMutability"`
				Constant        bool    `json:"constant"`
			}{"function", fn.Name, fn.Inputs, fn.Outputs, fn.StateMutability.String(), fn.Constant})
			if err != nil {
				return nil, err
			}
			ops = append(ops, raw)
		}
	}

	for _, name := range sortedKeysEv(c.Events) {
		for _, ev := range c.Events[name] {
			raw, err := json.Marshal(struct {
				Type      string       `json:"type"`
				Name      string       `json:"name"`
				Inputs    []EventParam `json:"inputs"`
				Anonymous bool         `json:"anonymous"`
			}{"event", ev.Name, ev.Inputs, ev.Anonymous})
			if err != nil {
				return nil, err
			}
			ops = append(ops, raw)
		}
	}

	for _, name := range sortedKeysErr(c.Errors) {
		for _, er := range c.Errors[name] {
			raw, err := json.Marshal(struct {
				Type   string  `json:"type"`
				Name   string  `json:"name"`
				Inputs []Param `json:"inputs"`
			}{"error", er.Name, er.Inputs})
			if err != nil {
				return nil, err
			}
			ops = append(ops, raw)
		}
	}

	if c.Fallback {
		ops = append(ops, json.RawMessage(`{"type":"fallback"}`))
	}
	if c.Receive {
		ops = append(ops, json.RawMessage(`{"type":"receive"}`))
	}

	return json.Marshal(ops)
}

func sortedKeysFn(m map[string][]Function) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysEv(m map[string][]Event) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysErr(m map[string][]AbiError) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
