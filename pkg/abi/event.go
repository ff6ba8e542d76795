package abi

import "golang.org/x/crypto/sha3"

// Event is a contract event descriptor.
type Event struct {
	Name      string
	Inputs    []EventParam
	Anonymous bool
}

func (e *Event) paramTypes() []ParamType {
	types := make([]ParamType, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Kind
	}
	return types
}

// Topic0 returns the event's 32-byte signature hash.
func (e *Event) Topic0() [32]byte {
	return Topic0(e.Name, e.paramTypes())
}

func (e *Event) indexedParams(indexed bool) []EventParam {
	var out []EventParam
	for _, p := range e.Inputs {
		if p.Indexed == indexed {
			out = append(out, p)
		}
	}
	return out
}

// encodeAsTopic reduces tok to its 32-byte on-wire topic representation: the
// token's own encoding when that encoding is exactly one word, otherwise the
// keccak256 hash of the (longer, dynamic) encoding.
func encodeAsTopic(tok Token, kind ParamType) ([32]byte, error) {
	if !TypeCheck(tok, kind) {
		return [32]byte{}, newError(ErrInvalidData, "topic value does not match indexed parameter type")
	}
	encoded := Encode([]Token{tok})
	if len(encoded) == WordSize {
		var out [32]byte
		copy(out[:], encoded)
		return out, nil
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(encoded)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

func convertTopic(topic Topic, kind *ParamType) (Topic, error) {
	switch topic.Kind {
	case TopicAny:
		return AnyTopic(), nil
	case TopicThis:
		if kind == nil {
			return Topic{}, newError(ErrInvalidData, "topic filter has no matching indexed parameter")
		}
		h, err := encodeAsTopic(*topic.Token, *kind)
		if err != nil {
			return Topic{}, err
		}
		return ThisHashTopic(h), nil
	case TopicOneOf:
		if kind == nil {
			return Topic{}, newError(ErrInvalidData, "topic filter has no matching indexed parameter")
		}
		hs := make([][32]byte, len(topic.Tokens))
		for i, t := range topic.Tokens {
			h, err := encodeAsTopic(t, *kind)
			if err != nil {
				return Topic{}, err
			}
			hs[i] = h
		}
		return OneOfHashTopic(hs), nil
	default:
		return AnyTopic(), nil
	}
}

// CreateFilter resolves a RawTopicFilter (caller-supplied Token values per
// indexed parameter) into a TopicFilter ready for serialization, inserting
// the event's own topic0 signature hash unless the event is anonymous.
func (e *Event) CreateFilter(raw RawTopicFilter) (TopicFilter, error) {
	kinds := e.indexedParams(true)
	kindAt := func(i int) *ParamType {
		if i >= len(kinds) {
			return nil
		}
		return &kinds[i].Kind
	}

	if e.Anonymous {
		t0, err := convertTopic(raw.Topic0, kindAt(0))
		if err != nil {
			return TopicFilter{}, err
		}
		t1, err := convertTopic(raw.Topic1, kindAt(1))
		if err != nil {
			return TopicFilter{}, err
		}
		t2, err := convertTopic(raw.Topic2, kindAt(2))
		if err != nil {
			return TopicFilter{}, err
		}
		return TopicFilter{Topic0: t0, Topic1: t1, Topic2: t2, Topic3: AnyTopic()}, nil
	}

	t1, err := convertTopic(raw.Topic0, kindAt(0))
	if err != nil {
		return TopicFilter{}, err
	}
	t2, err := convertTopic(raw.Topic1, kindAt(1))
	if err != nil {
		return TopicFilter{}, err
	}
	t3, err := convertTopic(raw.Topic2, kindAt(2))
	if err != nil {
		return TopicFilter{}, err
	}
	return TopicFilter{Topic0: ThisHashTopic(e.Topic0()), Topic1: t1, Topic2: t2, Topic3: t3}, nil
}

// ParseLog decodes an event's indexed and non-indexed parameters against a
// raw log's topics/data split, returning one LogParam per input in
// declaration order.
func (e *Event) ParseLog(log RawLog) (Log, error) {
	topics := log.Topics
	topicParams := e.indexedParams(true)
	dataParams := e.indexedParams(false)

	toSkip := 0
	if !e.Anonymous {
		if len(topics) == 0 {
			return Log{}, newError(ErrInvalidData, "log has no topics but event %s is not anonymous", e.Name)
		}
		if topics[0] != e.Topic0() {
			return Log{}, newError(ErrInvalidData, "log topic0 does not match event %s signature", e.Name)
		}
		toSkip = 1
	}

	remaining := topics[toSkip:]
	if len(remaining) != len(topicParams) {
		return Log{}, newError(ErrInvalidData, "expected %d indexed topics, got %d", len(topicParams), len(remaining))
	}

	topicValues := make(map[string]Token, len(topicParams))
	for i, p := range topicParams {
		tok, _, err := decodeTopicToken(remaining[i], p.Kind)
		if err != nil {
			return Log{}, err
		}
		topicValues[p.Name] = tok
	}

	dataTypes := make([]ParamType, len(dataParams))
	for i, p := range dataParams {
		dataTypes[i] = p.Kind
	}
	dataTokens, err := Decode(dataTypes, log.Data)
	if err != nil {
		return Log{}, err
	}
	dataValues := make(map[string]Token, len(dataParams))
	for i, p := range dataParams {
		dataValues[p.Name] = dataTokens[i]
	}

	params := make([]LogParam, len(e.Inputs))
	for i, p := range e.Inputs {
		if p.Indexed {
			params[i] = LogParam{Name: p.Name, Value: topicValues[p.Name], Indexed: true}
		} else {
			params[i] = LogParam{Name: p.Name, Value: dataValues[p.Name], Indexed: false}
		}
	}
	return Log{Params: params}, nil
}

// decodeTopicToken decodes a single indexed topic word. Static kinds decode
// to their natural value; dynamic kinds (Bytes, String, Array, Tuple) are
// only ever hashed on the wire, so they are returned opaquely as a
// FixedBytes(32) token carrying the raw hash.
func decodeTopicToken(topic [32]byte, kind ParamType) (Token, int, error) {
	if kind.IsDynamic() {
		return TokenFixedBytes(topic[:]), WordSize, nil
	}
	d := &decodeCursor{data: topic[:]}
	return d.decodeAt(kind, 0, 0, 0)
}
