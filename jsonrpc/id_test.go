package jsonrpc

import (
	"encoding/json"
	"testing"
)

func TestDecodeID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"string", `"abc"`, StringID("abc")},
		{"empty string", `""`, StringID("")},
		{"integer", `42`, IntID(42)},
		{"negative", `-7`, IntID(-7)},
		{"integral float", `3.0`, IntID(3)},
		{"exponent", `1e3`, IntID(1000)},
		{"null", `null`, NullID()},
		{"bool falls back to null", `true`, NullID()},
		{"fraction falls back to null", `1.5`, NullID()},
		{"object falls back to null", `{"a":1}`, NullID()},
		{"array falls back to null", `[1]`, NullID()},
		{"malformed falls back to null", `"abc`, NullID()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeID(json.RawMessage(tt.input))
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIDMarshalJSON(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{StringID("a\"b"), `"a\"b"`},
		{IntID(-12), `-12`},
		{NullID(), `null`},
		{ID{}, `null`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.id, err)
		}
		if string(got) != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}

func TestIDAccessors(t *testing.T) {
	if s, ok := StringID("x").Str(); !ok || s != "x" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	if _, ok := IntID(1).Str(); ok {
		t.Error("int id reported as string")
	}
	if n, ok := IntID(9).Int(); !ok || n != 9 {
		t.Errorf("Int() = %d, %v", n, ok)
	}
	if !NullID().IsNull() || NullID().Kind() != IDNull {
		t.Error("null id not null")
	}
	if StringID("1") == IntID(1) {
		t.Error("string and int ids must differ")
	}
}

func TestIDUnmarshalJSONInStruct(t *testing.T) {
	var v struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id":false}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.ID.IsNull() {
		t.Errorf("got %v, want null", v.ID)
	}
}
