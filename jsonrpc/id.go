package jsonrpc

import (
	"encoding/json"
	"strconv"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

// IDKind identifies which variant an ID holds.
type IDKind int

const (
	IDNull IDKind = iota
	IDString
	IDInt
)

func (k IDKind) String() string {
	switch k {
	case IDString:
		return "string"
	case IDInt:
		return "int"
	default:
		return "null"
	}
}

// ID is a request identifier: a string, an integer, or null. The zero value
// is the null ID. IDs are comparable with ==.
type ID struct {
	kind IDKind
	str  string
	num  int64
}

// StringID returns a string identifier.
func StringID(s string) ID {
	return ID{kind: IDString, str: s}
}

// IntID returns an integer identifier.
func IntID(n int64) ID {
	return ID{kind: IDInt, num: n}
}

// NullID returns the null identifier.
func NullID() ID {
	return ID{}
}

func (id ID) Kind() IDKind { return id.kind }

func (id ID) IsNull() bool { return id.kind == IDNull }

// Str returns the string value and whether id is a string identifier.
func (id ID) Str() (string, bool) {
	return id.str, id.kind == IDString
}

// Int returns the integer value and whether id is an integer identifier.
func (id ID) Int() (int64, bool) {
	return id.num, id.kind == IDInt
}

func (id ID) String() string {
	switch id.kind {
	case IDString:
		return strconv.Quote(id.str)
	case IDInt:
		return strconv.FormatInt(id.num, 10)
	default:
		return "null"
	}
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDString:
		return json.Marshal(id.str)
	case IDInt:
		return strconv.AppendInt(nil, id.num, 10), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes leniently, see DecodeID. It never fails.
func (id *ID) UnmarshalJSON(b []byte) error {
	*id = DecodeID(b)
	return nil
}

// DecodeID decodes an identifier. A string becomes a string ID, an integral
// number becomes an integer ID, and anything else (null, booleans, objects,
// fractional numbers, malformed input) becomes the null ID.
func DecodeID(data json.RawMessage) ID {
	if jsonutil.FirstByte(data) == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return StringID(s)
		}
	}
	if n, ok := parseInt(data); ok {
		return IntID(n)
	}
	return NullID()
}
