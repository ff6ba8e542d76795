package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evmkit/ethabi/pkg/abi"
)

func encodeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "encode", Short: "encode a function call or a bare parameter list"}
	cmd.AddCommand(encodeFunctionCmd(), encodeParamsCmd())
	return cmd
}

func encodeFunctionCmd() *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:   "function <abi-path> <name-or-signature>",
		Short: "encode a function call against a loaded ABI",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			c := loadContract(args[0])
			fn := resolveFunction(c, args[1])

			if len(values) != len(fn.Inputs) {
				fail("encode-function", fn.Name, fmt.Errorf("expected %d values, got %d", len(fn.Inputs), len(values)))
			}
			tokens := make([]abi.Token, len(values))
			for i, v := range values {
				tok, err := abi.Tokenize(fn.Inputs[i].Kind, v, lenient)
				if err != nil {
					fail("encode-function", fn.Name, err)
				}
				tokens[i] = tok
			}

			data, err := fn.EncodeInput(tokens)
			if err != nil {
				fail("encode-function", fn.Name, err)
			}
			fmt.Println(hex.EncodeToString(data))
		},
	}
	cmd.Flags().StringArrayVarP(&values, "param", "p", nil, "parameter value, one per function input, in order")
	return cmd
}

func encodeParamsCmd() *cobra.Command {
	var types, values []string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "encode a bare, type-annotated parameter list",
		Run: func(cmd *cobra.Command, args []string) {
			if len(types) != len(values) {
				fail("encode-params", "", fmt.Errorf("type/value count mismatch: %d types, %d values", len(types), len(values)))
			}
			tokens := make([]abi.Token, len(types))
			for i := range types {
				kind, err := abi.ReadParamType(types[i])
				if err != nil {
					fail("encode-params", types[i], err)
				}
				tok, err := abi.Tokenize(kind, values[i], lenient)
				if err != nil {
					fail("encode-params", types[i], err)
				}
				tokens[i] = tok
			}
			fmt.Println(hex.EncodeToString(abi.Encode(tokens)))
		},
	}
	cmd.Flags().StringArrayVarP(&types, "type", "t", nil, "parameter type (repeatable, paired by position with --value)")
	cmd.Flags().StringArrayVarP(&values, "value", "v", nil, "parameter value (repeatable, paired by position with --type)")
	return cmd
}
