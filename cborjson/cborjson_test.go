package cborjson

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/mnehpets/rpcmsg/jsonrpc"
)

func sameJSON(t *testing.T, a, b []byte) bool {
	t.Helper()
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		t.Fatalf("unmarshal %s: %v", a, err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	return reflect.DeepEqual(va, vb)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"jsonrpc":"2.0","method":"subtract","params":[42,23],"id":1}`,
		`{"jsonrpc":"2.0","id":"x","result":{"pi":3.25,"neg":-7,"ok":true,"none":null}}`,
		`[{"jsonrpc":"2.0","method":"a"},{"jsonrpc":"2.0","method":"b","id":18446744073709551615}]`,
		`"just a string"`,
	}

	for _, input := range inputs {
		b, err := FromJSON(json.RawMessage(input))
		if err != nil {
			t.Fatalf("FromJSON %s: %v", input, err)
		}
		out, err := ToJSON(b)
		if err != nil {
			t.Fatalf("ToJSON %s: %v", input, err)
		}
		if !sameJSON(t, out, []byte(input)) {
			t.Errorf("got %s, want %s", out, input)
		}
	}
}

func TestIntegersStayIntegers(t *testing.T) {
	b, err := FromJSON(json.RawMessage(`{"id":7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var v map[string]any
	if err := cbor.Unmarshal(b, &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v["id"].(uint64); !ok {
		t.Errorf("got %T, want an integer", v["id"])
	}
}

func TestFromJSONInvalid(t *testing.T) {
	for _, input := range []string{`{"a":`, `{} {}`, ``} {
		if _, err := FromJSON(json.RawMessage(input)); !errors.Is(err, jsonrpc.ErrParse) {
			t.Errorf("%q: got %v, want ErrParse", input, err)
		}
	}
}

func TestToJSONRejectsNonStringKeys(t *testing.T) {
	b, err := cbor.Marshal(map[int]string{1: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ToJSON(b); err == nil {
		t.Error("expected error for integer map keys")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	req := jsonrpc.NewRequest[json.RawMessage]("echo", jsonrpc.IntID(3)).WithParams(json.RawMessage(`["hi"]`))

	b, err := MarshalMessage(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg, err := UnmarshalMessage(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := msg.(jsonrpc.Request[json.RawMessage])
	if !ok {
		t.Fatalf("got %T, want request", msg)
	}
	if got.Method != "echo" || got.ID != jsonrpc.IntID(3) || string(*got.Params) != `["hi"]` {
		t.Errorf("got %+v", got)
	}

	diag, err := Diagnose(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(diag, `"echo"`) {
		t.Errorf("diagnostic %s does not mention the method", diag)
	}
}

func TestUnmarshalMessageGarbage(t *testing.T) {
	_, err := UnmarshalMessage([]byte{0xff, 0x00})
	if got := jsonrpc.ClassifyError(err); got != jsonrpc.ParseError {
		t.Errorf("got %v, want ParseError", got)
	}
}
