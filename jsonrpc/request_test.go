package jsonrpc

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type addParams struct {
	A int `json:"a"`
	B int `json:"b"`
}

func TestDecodeVersion(t *testing.T) {
	if _, err := DecodeVersion(json.RawMessage(`"2.0"`)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		input   string
		mention string
	}{
		{`"1.0"`, `"1.0"`},
		{`"2.0.0"`, `"2.0.0"`},
		{`2.0`, "string"},
		{`null`, "string"},
	}
	for _, tt := range tests {
		_, err := DecodeVersion(json.RawMessage(tt.input))
		if !errors.Is(err, ErrVersion) {
			t.Errorf("%s: got %v, want ErrVersion", tt.input, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.mention) {
			t.Errorf("%s: error %q does not mention %s", tt.input, err, tt.mention)
		}
	}

	got, _ := json.Marshal(Version{})
	if string(got) != `"2.0"` {
		t.Errorf("got %s, want \"2.0\"", got)
	}
}

func TestRequestToJSON(t *testing.T) {
	tests := []struct {
		name string
		req  Request[addParams]
		want string
	}{
		{
			name: "without params",
			req:  NewRequest[addParams]("math.add", IntID(1)),
			want: `{"jsonrpc":"2.0","method":"math.add","id":1}`,
		},
		{
			name: "with params",
			req:  NewRequest[addParams]("math.add", StringID("x")).WithParams(addParams{A: 1, B: 2}),
			want: `{"jsonrpc":"2.0","method":"math.add","id":"x","params":{"a":1,"b":2}}`,
		},
		{
			name: "null id",
			req:  NewRequest[addParams]("m", NullID()),
			want: `{"jsonrpc":"2.0","method":"m","id":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.ToJSON(EncodeJSON[addParams])
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRequestRoundTrip(t *testing.T) {
	reqs := []Request[addParams]{
		NewRequest[addParams]("a", IntID(7)),
		NewRequest[addParams]("b", StringID("id")).WithParams(addParams{A: 3, B: 4}),
		NewRequest[addParams]("c", NullID()).WithParams(addParams{}),
	}

	for _, req := range reqs {
		data, err := req.ToJSON(EncodeJSON[addParams])
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		got, err := DecodeRequest(data, DecodeJSON[addParams])
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if !reflect.DeepEqual(got, req) {
			t.Errorf("got %+v, want %+v", got, req)
		}
	}
}

func TestDecodeRequestFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		paths []string
	}{
		{"missing id", `{"jsonrpc":"2.0","method":"m"}`, []string{"id"}},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, []string{"method"}},
		{"method not string", `{"jsonrpc":"2.0","method":5,"id":1}`, []string{"method"}},
		{"wrong version", `{"jsonrpc":"1.0","method":"m","id":1}`, []string{"jsonrpc"}},
		{"missing version", `{"method":"m","id":1}`, []string{"jsonrpc"}},
		{"bad params", `{"jsonrpc":"2.0","method":"m","id":1,"params":[1]}`, []string{"params"}},
		{"several", `{"id":1,"params":"x"}`, []string{"jsonrpc", "method", "params"}},
		{"not an object", `[1,2]`, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest(json.RawMessage(tt.input), DecodeJSON[addParams])
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("got %v, want *DecodeError", err)
			}
			var got []string
			for _, fe := range de.Errors {
				got = append(got, strings.Join(fe.Path, "."))
			}
			if !reflect.DeepEqual(got, tt.paths) {
				t.Errorf("got paths %q, want %q", got, tt.paths)
			}
		})
	}
}

func TestDecodeRequestNotJSON(t *testing.T) {
	_, err := DecodeRequest(json.RawMessage(`{"jsonrpc":`), DecodeRaw)
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestDecodeRequestNullParamsIsAbsent(t *testing.T) {
	called := false
	dec := func(json.RawMessage) (addParams, error) {
		called = true
		return addParams{}, nil
	}
	req, err := DecodeRequest(json.RawMessage(`{"jsonrpc":"2.0","method":"m","id":1,"params":null}`), dec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called || req.Params != nil {
		t.Errorf("params decoder called for null params")
	}
}

func TestNotification(t *testing.T) {
	n := NewNotification[[]int]("update").WithParams([]int{1, 2, 3})
	data, err := n.ToJSON(EncodeJSON[[]int])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"jsonrpc":"2.0","method":"update","params":[1,2,3]}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	got, err := DecodeNotification(data, DecodeJSON[[]int])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, n) {
		t.Errorf("got %+v, want %+v", got, n)
	}
}

func TestDecodeNotificationIgnoresID(t *testing.T) {
	input := json.RawMessage(`{"jsonrpc":"2.0","method":"m","id":3}`)

	n, err := DecodeNotification(input, DecodeRaw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Method != "m" {
		t.Errorf("got method %q", n.Method)
	}

	_, err = DecodeStrictNotification(input, DecodeRaw)
	var de *DecodeError
	if !errors.As(err, &de) || de.Errors[0].Path[0] != "id" {
		t.Errorf("got %v, want failure at id", err)
	}

	if _, err := DecodeStrictNotification(json.RawMessage(`{"jsonrpc":"2.0","method":"m"}`), DecodeRaw); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNullParamsOmitted(t *testing.T) {
	req := NewRequest[[]int]("m", IntID(1)).WithParams(nil)
	data, err := req.ToJSON(EncodeJSON[[]int])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"jsonrpc":"2.0","method":"m","id":1}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
	got, err := DecodeRequest(data, DecodeJSON[[]int])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Params != nil {
		t.Errorf("got params %v, want absent", *got.Params)
	}

	n := NewNotification[json.RawMessage]("n").WithParams(json.RawMessage(" null"))
	data, err = n.ToJSON(EncodeRaw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"jsonrpc":"2.0","method":"n"}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	b, err := AddRequest(NewBatchRequest[json.RawMessage](), req, EncodeJSON[[]int])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := b.Items()[0].(Request[json.RawMessage]); r.Params != nil {
		t.Errorf("batch item kept null params %s", *r.Params)
	}
}

func TestSetParams(t *testing.T) {
	req := SetParams(NewRequest[struct{}]("math.add", IntID(4)), addParams{A: 1, B: 2})
	data, err := req.ToJSON(EncodeJSON[addParams])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"jsonrpc":"2.0","method":"math.add","id":4,"params":{"a":1,"b":2}}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	n := SetNotificationParams(NewNotification[struct{}]("tick"), []int{1})
	if n.Method != "tick" || n.Params == nil || !reflect.DeepEqual(*n.Params, []int{1}) {
		t.Errorf("got %+v", n)
	}
}
