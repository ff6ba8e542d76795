package abi

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func addr20(b byte) [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = b
	}
	return a
}

func TestAllowanceSelectorAndEncode(t *testing.T) {
	sel := Selector4("allowance", []ParamType{Address(), Address()})
	assert.Equal(t, "dd62ed3e", hex.EncodeToString(sel[:]))

	fn := &Function{Name: "allowance", Inputs: []Param{
		{Name: "owner", Kind: Address()},
		{Name: "spender", Kind: Address()},
	}}

	data, err := fn.EncodeInput([]Token{
		TokenAddress(addr20(0x00)),
		TokenAddress(addr20(0x01)),
	})
	require.NoError(t, err)
	assert.Len(t, data, 4+32+32)
	assert.Equal(t, "dd62ed3e", hex.EncodeToString(data[:4]))
	assert.Equal(t, make([]byte, 32), data[4:36])

	wantSecond := make([]byte, 32)
	for i := 12; i < 32; i++ {
		wantSecond[i] = 0x01
	}
	assert.Equal(t, wantSecond, data[36:68])
}

func TestBoolEncode(t *testing.T) {
	out := Encode([]Token{TokenBool(true)})
	want := make([]byte, 32)
	want[31] = 1
	assert.Equal(t, want, out)
}

func TestDynamicBytesEncode(t *testing.T) {
	out := Encode([]Token{TokenBytes(mustHex(t, "1234"))})
	want := mustHex(t,
		"0000000000000000000000000000000000000000000000000000000000000020"+
			"0000000000000000000000000000000000000000000000000000000000000002"+
			"1234000000000000000000000000000000000000000000000000000000000000")
	assert.Equal(t, want, out)
}

func TestDynamicArrayOfAddressesDecode(t *testing.T) {
	data := mustHex(t,
		"0000000000000000000000000000000000000000000000000000000000000020"+
			"0000000000000000000000000000000000000000000000000000000000000002"+
			"0000000000000000000000001111111111111111111111111111111111111111"+
			"0000000000000000000000002222222222222222222222222222222222222222")

	toks, err := Decode([]ParamType{Array(Address())}, data)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Len(t, toks[0].ArrayValue, 2)
	assert.Equal(t, addr20(0x11), toks[0].ArrayValue[0].AddressValue)
	assert.Equal(t, addr20(0x22), toks[0].ArrayValue[1].AddressValue)
}

func TestStringRoundTrip(t *testing.T) {
	toks := []Token{TokenString("gavofyork")}
	encoded := Encode(toks)

	want := mustHex(t,
		"0000000000000000000000000000000000000000000000000000000000000020"+
			"0000000000000000000000000000000000000000000000000000000000000009"+
			"6761766f66796f726b0000000000000000000000000000000000000000000000")
	assert.Equal(t, want, encoded)

	decoded, err := Decode([]ParamType{String()}, encoded)
	require.NoError(t, err)
	assert.Equal(t, "gavofyork", decoded[0].StringValue)
}

func TestSignedIntLenient(t *testing.T) {
	tok, err := Tokenize(Int(256), "-2", true)
	require.NoError(t, err)
	w := padInt(tok.IntValue)
	want := make([]byte, 32)
	for i := range want {
		want[i] = 0xff
	}
	want[31] = 0xfe
	assert.Equal(t, want, w[:])

	minVal := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	_, err = Tokenize(Int(256), minVal.String(), true)
	require.NoError(t, err)

	underflow := new(big.Int).Sub(minVal, big.NewInt(1))
	_, err = Tokenize(Int(256), underflow.String(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Underflow")
}

func TestEventParseLog(t *testing.T) {
	ev := &Event{
		Name: "foo",
		Inputs: []EventParam{
			{Name: "a", Kind: Int(256), Indexed: false},
			{Name: "b", Kind: Int(256), Indexed: true},
			{Name: "c", Kind: Address(), Indexed: false},
			{Name: "d", Kind: Address(), Indexed: true},
		},
	}

	topic0 := ev.Topic0()
	var topicB, topicD [32]byte
	copy(topicB[31:], []byte{0x02})
	addrD := addr20(0x11)
	copy(topicD[12:], addrD[:])

	log := RawLog{
		Topics: [][32]byte{topic0, topicB, topicD},
		Data:   Encode([]Token{TokenInt(big.NewInt(3), 256), TokenAddress(addr20(0x22))}),
	}

	decoded, err := ev.ParseLog(log)
	require.NoError(t, err)
	require.Len(t, decoded.Params, 4)

	byName := map[string]LogParam{}
	for _, p := range decoded.Params {
		byName[p.Name] = p
	}
	assert.Equal(t, big.NewInt(3), byName["a"].Value.IntValue)
	assert.Equal(t, big.NewInt(2), byName["b"].Value.IntValue)
	assert.Equal(t, addr20(0x22), byName["c"].Value.AddressValue)
	assert.Equal(t, addr20(0x11), byName["d"].Value.AddressValue)
}

func TestEmptyBytesDecodePolicy(t *testing.T) {
	_, err := Decode([]ParamType{FixedBytes(0)}, nil)
	assert.NoError(t, err)

	_, err = Decode([]ParamType{Address()}, nil)
	assert.Error(t, err)

	_, err = Decode([]ParamType{FixedArray(Bool(), 0)}, nil)
	assert.NoError(t, err)
}

func TestFunctionEncodeCallBaz(t *testing.T) {
	fn := &Function{Name: "baz", Inputs: []Param{
		{Name: "a", Kind: Uint(32)},
		{Name: "b", Kind: Bool()},
	}}

	encoded, err := fn.EncodeInput([]Token{TokenUint(big.NewInt(69), 32), TokenBool(true)})
	require.NoError(t, err)

	want := mustHex(t, "cdcd77c0"+
		"0000000000000000000000000000000000000000000000000000000000000045"+
		"0000000000000000000000000000000000000000000000000000000000000001")
	assert.Equal(t, want, encoded)
}

func TestParamTypeGrammarRoundTrip(t *testing.T) {
	cases := []string{
		"address", "bool", "string", "bytes", "bytes32",
		"uint", "uint8", "int", "int128",
		"bool[]", "bool[3]", "bool[][3]", "bool[3][]",
		"(address,uint256)", "(address,uint256)[]", "(bool,(address,uint256))",
	}
	// Bare uint/int read as 256-bit and are written back with the width.
	canonical := map[string]string{"uint": "uint256", "int": "int256"}
	for _, c := range cases {
		want := c
		if w, ok := canonical[c]; ok {
			want = w
		}
		pt, err := ReadParamType(c)
		require.NoError(t, err, c)
		assert.Equal(t, want, pt.String(), c)
	}
}

func TestContractJSONRoundTrip(t *testing.T) {
	const abiJSON = `[
		{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
		{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false},
		{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]}
	]`

	c, err := LoadContract(stringsReader(abiJSON))
	require.NoError(t, err)

	fn, err := c.Function("transfer")
	require.NoError(t, err)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(sliceSel(fn.Selector())))

	ev, err := c.Event("Transfer")
	require.NoError(t, err)
	assert.Len(t, ev.Inputs, 3)

	abiErr, err := c.Error("InsufficientBalance")
	require.NoError(t, err)
	assert.Len(t, abiErr.Inputs, 2)

	reg := NewRegistry(c)
	gotFn, ok := reg.FunctionBySelector(fn.Selector())
	require.True(t, ok)
	assert.Equal(t, fn.Name, gotFn.Name)

	gotEv, ok := reg.EventByTopic0(ev.Topic0())
	require.True(t, ok)
	assert.Equal(t, ev.Name, gotEv.Name)
}

func TestTupleJSONWithComponents(t *testing.T) {
	const abiJSON = `[
		{"type":"function","name":"submit","inputs":[{"name":"t","type":"tuple","components":[{"name":"a","type":"uint48"},{"name":"b","type":"address"}]}],"outputs":[]}
	]`
	c, err := LoadContract(stringsReader(abiJSON))
	require.NoError(t, err)
	fn, err := c.Function("submit")
	require.NoError(t, err)
	require.Len(t, fn.Inputs, 1)
	assert.Equal(t, KindTuple, fn.Inputs[0].Kind.Kind)
	require.Len(t, fn.Inputs[0].Kind.Fields, 2)
	assert.Equal(t, "uint48", fn.Inputs[0].Kind.Fields[0].String())
	assert.Equal(t, "address", fn.Inputs[0].Kind.Fields[1].String())
}

func sliceSel(s [4]byte) []byte { return s[:] }
