package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evmkit/ethabi/pkg/abi"
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "decode", Short: "decode a function call, a bare parameter list, or a log"}
	cmd.AddCommand(decodeFunctionCmd(), decodeParamsCmd(), decodeLogCmd())
	return cmd
}

func decodeHexArg(name, raw string) []byte {
	s := strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		fail("decode", name, fmt.Errorf("invalid hex %q: %w", raw, err))
	}
	return b
}

func decodeFunctionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "function <abi-path> <name-or-signature> <hex>",
		Short: "decode call data against a function's input types",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			c := loadContract(args[0])
			fn := resolveFunction(c, args[1])
			data := decodeHexArg(fn.Name, args[2])
			if len(data) >= 4 {
				data = data[4:]
			}
			tokens, err := fn.DecodeInput(data)
			if err != nil {
				fail("decode-function", fn.Name, err)
			}
			printTokens(tokens)
		},
	}
	return cmd
}

func decodeParamsCmd() *cobra.Command {
	var types []string
	cmd := &cobra.Command{
		Use:   "params <hex>",
		Short: "decode a bare byte stream against a type list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			kinds := make([]abi.ParamType, len(types))
			for i, t := range types {
				k, err := abi.ReadParamType(t)
				if err != nil {
					fail("decode-params", t, err)
				}
				kinds[i] = k
			}
			data := decodeHexArg("params", args[0])
			tokens, err := abi.Decode(kinds, data)
			if err != nil {
				fail("decode-params", "", err)
			}
			printTokens(tokens)
		},
	}
	cmd.Flags().StringArrayVarP(&types, "type", "t", nil, "declared parameter type (repeatable, in order)")
	return cmd
}

func decodeLogCmd() *cobra.Command {
	var topics []string
	cmd := &cobra.Command{
		Use:   "log <abi-path> <name-or-signature> <data-hex>",
		Short: "decode a raw log against an event's parameter types",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			c := loadContract(args[0])
			ev := resolveEvent(c, args[1])

			rawTopics := make([][32]byte, len(topics))
			for i, t := range topics {
				b := decodeHexArg(ev.Name, t)
				if len(b) != 32 {
					fail("decode-log", ev.Name, fmt.Errorf("topic %d is %d bytes, want 32", i, len(b)))
				}
				copy(rawTopics[i][:], b)
			}

			log, err := ev.ParseLog(abi.RawLog{Topics: rawTopics, Data: decodeHexArg(ev.Name, args[2])})
			if err != nil {
				fail("decode-log", ev.Name, err)
			}
			for _, p := range log.Params {
				fmt.Printf("%s = %s\n", p.Name, formatToken(p.Value))
			}
		},
	}
	cmd.Flags().StringArrayVarP(&topics, "topic", "l", nil, "log topic, 32-byte hex, in wire order (including topic0 unless anonymous)")
	return cmd
}

func printTokens(tokens []abi.Token) {
	for i, t := range tokens {
		fmt.Printf("[%d] %s\n", i, formatToken(t))
	}
}

func formatToken(t abi.Token) string {
	switch t.Kind {
	case abi.KindAddress:
		return "0x" + hex.EncodeToString(t.AddressValue[:])
	case abi.KindBool:
		return fmt.Sprintf("%v", t.BoolValue)
	case abi.KindString:
		return t.StringValue
	case abi.KindBytes, abi.KindFixedBytes:
		return "0x" + hex.EncodeToString(t.BytesValue)
	case abi.KindInt, abi.KindUint:
		return t.IntValue.String()
	case abi.KindArray, abi.KindFixedArray:
		parts := make([]string, len(t.ArrayValue))
		for i, e := range t.ArrayValue {
			parts[i] = formatToken(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case abi.KindTuple:
		parts := make([]string, len(t.TupleValue))
		for i, e := range t.TupleValue {
			parts[i] = formatToken(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}
