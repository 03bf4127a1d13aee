package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000

	// The reserved band. Only the predefined errors and NewServerError may
	// produce codes inside it.
	reservedMin = -32768
	reservedMax = -32000

	// The server error sub-range.
	serverErrorMin = -32099
	serverErrorMax = -32000
)

var (
	ErrReservedCode     = errors.New("jsonrpc: error code is in the reserved range -32768..-32000")
	ErrServerErrorRange = errors.New("jsonrpc: server error code is outside -32099..-32000")
)

// Error is a validated error code and message pair. Values are only obtained
// from the predefined errors below, NewApplicationError or NewServerError, so
// a code in the reserved band always carries its standard meaning.
type Error struct {
	code    int
	message string
}

var (
	ParseError     = Error{code: CodeParseError, message: "Parse error"}
	InvalidRequest = Error{code: CodeInvalidRequest, message: "Invalid Request"}
	MethodNotFound = Error{code: CodeMethodNotFound, message: "Method not found"}
	InvalidParams  = Error{code: CodeInvalidParams, message: "Invalid params"}
	InternalError  = Error{code: CodeInternalError, message: "Internal error"}
	ServerError    = Error{code: CodeServerError, message: "Server error"}
)

// NewApplicationError returns an error with an application defined code. The
// code must lie outside the reserved band.
func NewApplicationError(code int, message string) (Error, error) {
	if code >= reservedMin && code <= reservedMax {
		return Error{}, fmt.Errorf("%w: %d", ErrReservedCode, code)
	}
	return Error{code: code, message: message}, nil
}

// NewServerError returns an implementation defined server error. The code
// must lie within -32099..-32000.
func NewServerError(code int) (Error, error) {
	if code < serverErrorMin || code > serverErrorMax {
		return Error{}, fmt.Errorf("%w: %d", ErrServerErrorRange, code)
	}
	return Error{code: code, message: ServerError.message}, nil
}

func (e Error) Code() int { return e.code }

func (e Error) Message() string { return e.message }

func (e Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.code, e.message)
}

// ErrorBody is the error member of an error response as it appears on the
// wire. Data is optional; nil means absent.
type ErrorBody[D any] struct {
	Code    int
	Message string
	Data    *D
}

// NewErrorBody returns the wire form of e without data.
func NewErrorBody[D any](e Error) ErrorBody[D] {
	return ErrorBody[D]{Code: e.code, Message: e.message}
}

// WithData returns a copy of b carrying data.
func (b ErrorBody[D]) WithData(data D) ErrorBody[D] {
	b.Data = &data
	return b
}

func (b ErrorBody[D]) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", b.Code, b.Message)
}

type wireErrorBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ToJSON encodes b. The data member is omitted when absent or when it
// encodes to null.
func (b ErrorBody[D]) ToJSON(enc EncodeFunc[D]) (json.RawMessage, error) {
	data, err := encodeOptional(b.Data, enc)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: encode error data: %w", err)
	}
	return json.Marshal(wireErrorBody{Code: b.Code, Message: b.Message, Data: data})
}

// DecodeErrorBody decodes an error member. code and message are required;
// data is decoded with dec only when present.
func DecodeErrorBody[D any](data json.RawMessage, dec DecodeFunc[D]) (ErrorBody[D], error) {
	o, err := decodeObject(data)
	if err != nil {
		return ErrorBody[D]{}, err
	}
	var (
		j    joined
		body ErrorBody[D]
		de   *DecodeError
	)
	body.Code, de = o.integer("code")
	j.add(de)
	body.Message, de = o.str("message")
	j.add(de)
	if raw, ok := o.optional("data"); ok {
		d, err := dec(raw)
		if err != nil {
			j.add(under("data", err))
		} else {
			body.Data = &d
		}
	}
	if err := j.err(); err != nil {
		return ErrorBody[D]{}, err
	}
	return body, nil
}
