package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

// VersionString is the only protocol version this package speaks.
const VersionString = "2.0"

// ErrVersion is wrapped by failures to decode the jsonrpc member.
var ErrVersion = errors.New("jsonrpc: unsupported version")

// Version is the jsonrpc member of every message. It has a single value,
// "2.0", so the zero Version is always valid.
type Version struct{}

func (Version) String() string { return VersionString }

func (Version) MarshalJSON() ([]byte, error) {
	return []byte(`"` + VersionString + `"`), nil
}

func (v *Version) UnmarshalJSON(b []byte) error {
	_, err := DecodeVersion(b)
	return err
}

// DecodeVersion accepts only the JSON string "2.0".
func DecodeVersion(data json.RawMessage) (Version, error) {
	var s string
	if jsonutil.FirstByte(data) != '"' || json.Unmarshal(data, &s) != nil {
		return Version{}, fmt.Errorf("%w: expecting a string", ErrVersion)
	}
	if s != VersionString {
		return Version{}, fmt.Errorf("%w: %q", ErrVersion, s)
	}
	return Version{}, nil
}
