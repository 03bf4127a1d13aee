package jsonrpc

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

// EncodeFunc converts a payload into its JSON form.
type EncodeFunc[T any] func(T) (json.RawMessage, error)

// DecodeFunc converts the JSON form of a payload back into a value. It may
// return a *DecodeError to report failures at paths within the payload.
type DecodeFunc[T any] func(json.RawMessage) (T, error)

// EncodeJSON encodes v with encoding/json.
func EncodeJSON[T any](v T) (json.RawMessage, error) {
	return json.Marshal(v)
}

// DecodeJSON decodes data with encoding/json.
func DecodeJSON[T any](data json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeStrictJSON is DecodeJSON but rejects object members that do not map
// to a field of T.
func DecodeStrictJSON[T any](data json.RawMessage) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// EncodeRaw passes already encoded JSON through.
func EncodeRaw(v json.RawMessage) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage("null"), nil
	}
	return slices.Clone(v), nil
}

// DecodeRaw keeps the payload in its JSON form.
func DecodeRaw(data json.RawMessage) (json.RawMessage, error) {
	return slices.Clone(data), nil
}

// paramField is one struct field that takes part in params decoding.
type paramField struct {
	index int
	name  string
}

// paramFields lists the fields of a params struct in declaration order,
// named by their json tag (or field name when untagged).
func paramFields(t reflect.Type) []paramField {
	fields := make([]paramField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			fields = append(fields, paramField{index: i, name: field.Name})
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		fields = append(fields, paramField{index: i, name: name})
	}
	return fields
}

// DecodeParams decodes method parameters into the struct type T (or a pointer
// to one). Positional params (an array) map to struct fields by declaration
// order and must match the field count. Named params (an object) map by json
// tag and every field must be present. Failures are reported at the offending
// element index or member name.
func DecodeParams[T any](data json.RawMessage) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	structT := t
	if t.Kind() == reflect.Pointer {
		structT = t.Elem()
	}
	if structT.Kind() != reflect.Struct {
		return zero, failure("params type " + t.String() + " is not a struct")
	}

	param := reflect.New(structT)
	fields := paramFields(structT)

	switch jsonutil.FirstByte(data) {
	case '[':
		var paramList []json.RawMessage
		if err := json.Unmarshal(data, &paramList); err != nil {
			return zero, failure(err.Error())
		}
		if len(paramList) != len(fields) {
			return zero, failure("invalid number of params: want " + strconv.Itoa(len(fields)) + ", got " + strconv.Itoa(len(paramList)))
		}
		var j joined
		for i, rawElem := range paramList {
			field := param.Elem().Field(fields[i].index)
			if err := json.Unmarshal(rawElem, field.Addr().Interface()); err != nil {
				j.add(failure(err.Error(), strconv.Itoa(i)))
			}
		}
		if err := j.err(); err != nil {
			return zero, err
		}
	case '{':
		var paramMap map[string]json.RawMessage
		if err := json.Unmarshal(data, &paramMap); err != nil {
			return zero, failure(err.Error())
		}
		var j joined
		for _, f := range fields {
			raw, ok := paramMap[f.name]
			if !ok {
				j.add(failure("missing param", f.name))
				continue
			}
			field := param.Elem().Field(f.index)
			if err := json.Unmarshal(raw, field.Addr().Interface()); err != nil {
				j.add(failure(err.Error(), f.name))
			}
		}
		if err := j.err(); err != nil {
			return zero, err
		}
	default:
		return zero, failure("params must be an array or an object")
	}

	if t.Kind() == reflect.Pointer {
		return param.Interface().(T), nil
	}
	return param.Elem().Interface().(T), nil
}
