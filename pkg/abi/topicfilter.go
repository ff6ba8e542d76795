package abi

import (
	"encoding/json"
	"fmt"
)

// TopicKind discriminates the three Topic possibilities: match anything,
// match one of a set, or match exactly one value.
type TopicKind uint8

const (
	TopicAny TopicKind = iota
	TopicOneOf
	TopicThis
)

// Topic is a generic per-slot filter value, instantiated over Token (before
// an Event has resolved it against its parameter types) or over a 32-byte
// Word (the resolved, on-wire form).
type Topic struct {
	Kind   TopicKind
	One    [32]byte
	Many   [][32]byte
	Token  *Token // populated only for RawTopicFilter slots
	Tokens []Token
}

// AnyTopic builds a Topic that matches anything.
func AnyTopic() Topic { return Topic{Kind: TopicAny} }

// ThisTokenTopic builds a raw, pre-resolution Topic matching exactly tok.
func ThisTokenTopic(tok Token) Topic { return Topic{Kind: TopicThis, Token: &tok} }

// OneOfTokenTopic builds a raw, pre-resolution Topic matching any of toks.
func OneOfTokenTopic(toks []Token) Topic { return Topic{Kind: TopicOneOf, Tokens: toks} }

// ThisHashTopic builds a resolved Topic matching exactly the 32-byte value.
func ThisHashTopic(h [32]byte) Topic { return Topic{Kind: TopicThis, One: h} }

// OneOfHashTopic builds a resolved Topic matching any of the given hashes.
func OneOfHashTopic(hs [][32]byte) Topic { return Topic{Kind: TopicOneOf, Many: hs} }

// RawTopicFilter holds up to three indexed-parameter filter values (topic1
// through topic3), supplied by the caller before event resolution assigns
// topic0 and validates parameter kinds.
type RawTopicFilter struct {
	Topic0 Topic
	Topic1 Topic
	Topic2 Topic
}

// TopicFilter is the resolved, four-slot filter ready for JSON
// serialization or RPC submission. Topic0 is usually the event signature
// hash unless the event is anonymous.
type TopicFilter struct {
	Topic0 Topic
	Topic1 Topic
	Topic2 Topic
	Topic3 Topic
}

// MarshalJSON renders the filter as a 4-element array; each slot is null
// for Any, a "0x..." string for This, or an array of such strings for
// OneOf.
func (f TopicFilter) MarshalJSON() ([]byte, error) {
	slots := []Topic{f.Topic0, f.Topic1, f.Topic2, f.Topic3}
	out := make([]interface{}, len(slots))
	for i, s := range slots {
		switch s.Kind {
		case TopicAny:
			out[i] = nil
		case TopicThis:
			out[i] = fmt.Sprintf("0x%x", s.One)
		case TopicOneOf:
			arr := make([]string, len(s.Many))
			for j, h := range s.Many {
				arr[j] = fmt.Sprintf("0x%x", h)
			}
			out[i] = arr
		}
	}
	return json.Marshal(out)
}
