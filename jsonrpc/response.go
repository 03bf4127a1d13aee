package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Response is the reply to a successful request. Result is mandatory.
type Response[R any] struct {
	JSONRPC Version
	ID      ID
	Result  R
}

// NewResponse returns a successful reply to the request identified by id.
func NewResponse[R any](id ID, result R) Response[R] {
	return Response[R]{ID: id, Result: result}
}

type wireResponse struct {
	JSONRPC Version         `json:"jsonrpc"`
	ID      ID              `json:"id"`
	Result  json.RawMessage `json:"result"`
}

// ToJSON encodes r, using enc for the result.
func (r Response[R]) ToJSON(enc EncodeFunc[R]) (json.RawMessage, error) {
	result, err := enc(r.Result)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: encode result: %w", err)
	}
	return json.Marshal(wireResponse{ID: r.ID, Result: result})
}

// DecodeResponse decodes a successful reply. jsonrpc, id and result are
// required; dec is always applied to the result, even when it is null.
func DecodeResponse[R any](data json.RawMessage, dec DecodeFunc[R]) (Response[R], error) {
	o, err := decodeObject(data)
	if err != nil {
		return Response[R]{}, err
	}
	var (
		j  joined
		r  Response[R]
		de *DecodeError
	)
	j.add(o.version())
	r.ID, de = o.id()
	j.add(de)
	raw, de := o.required("result")
	if de != nil {
		j.add(de)
	} else if result, err := dec(raw); err != nil {
		j.add(under("result", err))
	} else {
		r.Result = result
	}
	if err := j.err(); err != nil {
		return Response[R]{}, err
	}
	return r, nil
}

// ErrorResponse is the reply to a failed request.
type ErrorResponse[D any] struct {
	JSONRPC Version
	ID      ID
	Error   ErrorBody[D]
}

// NewErrorResponse returns an error reply without data.
func NewErrorResponse[D any](e Error, id ID) ErrorResponse[D] {
	return ErrorResponse[D]{ID: id, Error: NewErrorBody[D](e)}
}

// WithData returns a copy of r whose error carries data.
func (r ErrorResponse[D]) WithData(data D) ErrorResponse[D] {
	r.Error = r.Error.WithData(data)
	return r
}

// SetData returns r whose error carries data of a new payload type.
func SetData[D, E any](r ErrorResponse[E], data D) ErrorResponse[D] {
	body := ErrorBody[D]{Code: r.Error.Code, Message: r.Error.Message, Data: &data}
	return ErrorResponse[D]{ID: r.ID, Error: body}
}

type wireErrorResponse struct {
	JSONRPC Version         `json:"jsonrpc"`
	ID      ID              `json:"id"`
	Error   json.RawMessage `json:"error"`
}

// ToJSON encodes r, using enc for the error data when present.
func (r ErrorResponse[D]) ToJSON(enc EncodeFunc[D]) (json.RawMessage, error) {
	body, err := r.Error.ToJSON(enc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireErrorResponse{ID: r.ID, Error: body})
}

// DecodeErrorResponse decodes an error reply. jsonrpc, id and error are
// required; the error data is decoded with dec only when present.
func DecodeErrorResponse[D any](data json.RawMessage, dec DecodeFunc[D]) (ErrorResponse[D], error) {
	o, err := decodeObject(data)
	if err != nil {
		return ErrorResponse[D]{}, err
	}
	var (
		j  joined
		r  ErrorResponse[D]
		de *DecodeError
	)
	j.add(o.version())
	r.ID, de = o.id()
	j.add(de)
	raw, de := o.required("error")
	if de != nil {
		j.add(de)
	} else if body, err := DecodeErrorBody(raw, dec); err != nil {
		j.add(under("error", err))
	} else {
		r.Error = body
	}
	if err := j.err(); err != nil {
		return ErrorResponse[D]{}, err
	}
	return r, nil
}
