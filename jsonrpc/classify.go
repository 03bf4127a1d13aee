package jsonrpc

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ClassifyError maps a decode failure to the error object to send back to the
// peer:
//   - a *DecodeError whose every failure lies under "params" is InvalidParams;
//   - any other *DecodeError is InvalidRequest;
//   - anything else, such as input that was not JSON, is ParseError.
func ClassifyError(err error) Error {
	var de *DecodeError
	if !errors.As(err, &de) {
		return ParseError
	}
	if len(de.Errors) == 0 {
		return InvalidRequest
	}
	for _, fe := range de.Errors {
		if len(fe.Path) == 0 || fe.Path[0] != "params" {
			return InvalidRequest
		}
	}
	return InvalidParams
}

// ErrorResponseFrom builds the reply to a call that failed to decode. The
// error is chosen by ClassifyError. The id is taken from the top-level id
// member of input when one can be read; a parse error always replies with a
// null id.
func ErrorResponseFrom(err error, input json.RawMessage) ErrorResponse[json.RawMessage] {
	e := ClassifyError(err)
	id := NullID()
	if e != ParseError {
		id = recoverID(input)
	}
	return NewErrorResponse[json.RawMessage](e, id)
}

// recoverID reads the top-level id of input. Like encoding/json, the last of
// duplicate id members wins.
func recoverID(input json.RawMessage) ID {
	if !gjson.ValidBytes(input) {
		return NullID()
	}
	root := gjson.ParseBytes(input)
	if !root.IsObject() {
		return NullID()
	}
	var raw string
	root.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "id" {
			raw = value.Raw
		}
		return true
	})
	if raw == "" {
		return NullID()
	}
	return DecodeID(json.RawMessage(raw))
}
