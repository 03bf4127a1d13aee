// Package cborjson carries JSON-RPC structured data in CBOR (RFC 8949).
//
// JSON values are transcoded to CBOR and back without loss for the data model
// JSON can express: integers stay integers, other numbers become float64, and
// object member order is normalized. Messages travelling over a CBOR channel
// can therefore be decoded with the same jsonrpc decoders.
package cborjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"github.com/mnehpets/rpcmsg/jsonrpc"
)

// maxNestedLevels bounds how deeply nested CBOR input may be.
const maxNestedLevels = 64

var ErrUnsupported = errors.New("cborjson: value has no JSON form")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cborjson: encode options: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: maxNestedLevels,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("cborjson: decode options: " + err.Error())
	}
}

// FromJSON transcodes a JSON value to CBOR.
func FromJSON(data json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("cborjson: %w: %w", jsonrpc.ErrParse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("cborjson: %w: trailing data after JSON value", jsonrpc.ErrParse)
	}
	v, err := numbers(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(v)
}

// ToJSON transcodes a CBOR data item to JSON. Byte strings become base64
// strings; tags and non-string map keys are rejected.
func ToJSON(b []byte) (json.RawMessage, error) {
	var v any
	if err := decMode.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("cborjson: decode: %w", err)
	}
	if err := checkJSON(v); err != nil {
		return nil, err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cborjson: %w: %w", ErrUnsupported, err)
	}
	return out, nil
}

// Diagnose returns the CBOR diagnostic notation of b, for logs and tooling.
func Diagnose(b []byte) (string, error) {
	return cbor.Diagnose(b)
}

// MarshalMessage encodes any jsonrpc.Message as CBOR.
func MarshalMessage(m jsonrpc.Message) ([]byte, error) {
	data, err := jsonrpc.EncodeMessage(m)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// UnmarshalMessage decodes a CBOR encoded message with jsonrpc.DecodeMessage.
// A CBOR item that cannot be read fails with an error wrapping
// jsonrpc.ErrParse, so jsonrpc.ClassifyError reports it as a parse error.
func UnmarshalMessage(b []byte) (jsonrpc.Message, error) {
	data, err := ToJSON(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", jsonrpc.ErrParse, err)
	}
	return jsonrpc.DecodeMessage(data)
}

// numbers replaces json.Number values so that integers are encoded as CBOR
// integers and everything else as floats.
func numbers(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("cborjson: number %s: %w", x, err)
		}
		return f, nil
	case map[string]any:
		for k, e := range x {
			ne, err := numbers(e)
			if err != nil {
				return nil, err
			}
			x[k] = ne
		}
		return x, nil
	case []any:
		for i, e := range x {
			ne, err := numbers(e)
			if err != nil {
				return nil, err
			}
			x[i] = ne
		}
		return x, nil
	default:
		return v, nil
	}
}

func checkJSON(v any) error {
	switch x := v.(type) {
	case map[string]any:
		for _, e := range x {
			if err := checkJSON(e); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range x {
			if err := checkJSON(e); err != nil {
				return err
			}
		}
	case nil, bool, string, []byte, int64, uint64, float64:
	default:
		return fmt.Errorf("cborjson: %w: %T", ErrUnsupported, v)
	}
	return nil
}
