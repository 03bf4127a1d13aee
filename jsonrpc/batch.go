package jsonrpc

import (
	"encoding/json"
	"fmt"
	"slices"
)

// BatchRequestItem is either a Request[P] or a Notification[P].
type BatchRequestItem[P any] interface {
	batchRequestItem(P)
}

func (Request[P]) batchRequestItem(P)      {}
func (Notification[P]) batchRequestItem(P) {}

// BatchResponseItem is either a Response[R] or an ErrorResponse[R].
type BatchResponseItem[R any] interface {
	batchResponseItem(R)
}

func (Response[R]) batchResponseItem(R)      {}
func (ErrorResponse[R]) batchResponseItem(R) {}

// BatchRequest is a collection of requests and notifications. Callers must
// not rely on the order of its items. It is only built by NewBatchRequest,
// the Add functions and DecodeBatchRequest.
type BatchRequest[P any] struct {
	items []BatchRequestItem[P]
}

// NewBatchRequest returns an empty batch.
func NewBatchRequest[P any]() BatchRequest[P] {
	return BatchRequest[P]{}
}

func (b BatchRequest[P]) Len() int { return len(b.items) }

// Items returns a copy of the batch items.
func (b BatchRequest[P]) Items() []BatchRequestItem[P] {
	return slices.Clone(b.items)
}

func (b BatchRequest[P]) with(item BatchRequestItem[P]) BatchRequest[P] {
	items := make([]BatchRequestItem[P], 0, len(b.items)+1)
	items = append(items, b.items...)
	return BatchRequest[P]{items: append(items, item)}
}

// AddRequest returns a new batch that also holds r. The params are encoded
// with enc immediately.
func AddRequest[P any](b BatchRequest[json.RawMessage], r Request[P], enc EncodeFunc[P]) (BatchRequest[json.RawMessage], error) {
	params, err := encodeOptional(r.Params, enc)
	if err != nil {
		return b, fmt.Errorf("jsonrpc: encode request params: %w", err)
	}
	return b.with(Request[json.RawMessage]{Method: r.Method, ID: r.ID, Params: optionalRaw(params)}), nil
}

// AddNotification returns a new batch that also holds n. The params are
// encoded with enc immediately.
func AddNotification[P any](b BatchRequest[json.RawMessage], n Notification[P], enc EncodeFunc[P]) (BatchRequest[json.RawMessage], error) {
	params, err := encodeOptional(n.Params, enc)
	if err != nil {
		return b, fmt.Errorf("jsonrpc: encode notification params: %w", err)
	}
	return b.with(Notification[json.RawMessage]{Method: n.Method, Params: optionalRaw(params)}), nil
}

// ToJSON encodes the batch as a JSON array.
func (b BatchRequest[P]) ToJSON(enc EncodeFunc[P]) (json.RawMessage, error) {
	elems := make([]json.RawMessage, 0, len(b.items))
	for i, item := range b.items {
		var (
			raw json.RawMessage
			err error
		)
		switch it := item.(type) {
		case Request[P]:
			raw, err = it.ToJSON(enc)
		case Notification[P]:
			raw, err = it.ToJSON(enc)
		default:
			err = fmt.Errorf("unexpected batch item %T", item)
		}
		if err != nil {
			return nil, fmt.Errorf("jsonrpc: encode batch item %d: %w", i, err)
		}
		elems = append(elems, raw)
	}
	return json.Marshal(elems)
}

// DecodeBatchRequestItem decodes a request, or failing that a notification.
func DecodeBatchRequestItem[P any](data json.RawMessage, dec DecodeFunc[P]) (BatchRequestItem[P], error) {
	return oneOf(data,
		func(d json.RawMessage) (BatchRequestItem[P], error) {
			r, err := DecodeRequest(d, dec)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		func(d json.RawMessage) (BatchRequestItem[P], error) {
			n, err := DecodeNotification(d, dec)
			if err != nil {
				return nil, err
			}
			return n, nil
		},
	)
}

// DecodeBatchRequest decodes a JSON array whose every element is a request
// or a notification.
func DecodeBatchRequest[P any](data json.RawMessage, dec DecodeFunc[P]) (BatchRequest[P], error) {
	items, err := decodeList(data, func(d json.RawMessage) (BatchRequestItem[P], error) {
		return DecodeBatchRequestItem(d, dec)
	})
	if err != nil {
		return BatchRequest[P]{}, err
	}
	return BatchRequest[P]{items: items}, nil
}

// BatchResponse is a collection of responses and error responses. Callers
// must not rely on the order of its items; match them to calls by ID.
type BatchResponse[R any] struct {
	items []BatchResponseItem[R]
}

// NewBatchResponse returns an empty batch.
func NewBatchResponse[R any]() BatchResponse[R] {
	return BatchResponse[R]{}
}

func (b BatchResponse[R]) Len() int { return len(b.items) }

// Items returns a copy of the batch items.
func (b BatchResponse[R]) Items() []BatchResponseItem[R] {
	return slices.Clone(b.items)
}

func (b BatchResponse[R]) with(item BatchResponseItem[R]) BatchResponse[R] {
	items := make([]BatchResponseItem[R], 0, len(b.items)+1)
	items = append(items, b.items...)
	return BatchResponse[R]{items: append(items, item)}
}

// AddResponse returns a new batch that also holds r. The result is encoded
// with enc immediately.
func AddResponse[R any](b BatchResponse[json.RawMessage], r Response[R], enc EncodeFunc[R]) (BatchResponse[json.RawMessage], error) {
	result, err := enc(r.Result)
	if err != nil {
		return b, fmt.Errorf("jsonrpc: encode result: %w", err)
	}
	return b.with(Response[json.RawMessage]{ID: r.ID, Result: result}), nil
}

// AddErrorResponse returns a new batch that also holds r. The error data is
// encoded with enc immediately.
func AddErrorResponse[D any](b BatchResponse[json.RawMessage], r ErrorResponse[D], enc EncodeFunc[D]) (BatchResponse[json.RawMessage], error) {
	data, err := encodeOptional(r.Error.Data, enc)
	if err != nil {
		return b, fmt.Errorf("jsonrpc: encode error data: %w", err)
	}
	body := ErrorBody[json.RawMessage]{Code: r.Error.Code, Message: r.Error.Message, Data: optionalRaw(data)}
	return b.with(ErrorResponse[json.RawMessage]{ID: r.ID, Error: body}), nil
}

// ToJSON encodes the batch as a JSON array. enc is used both for results and
// for error data.
func (b BatchResponse[R]) ToJSON(enc EncodeFunc[R]) (json.RawMessage, error) {
	elems := make([]json.RawMessage, 0, len(b.items))
	for i, item := range b.items {
		var (
			raw json.RawMessage
			err error
		)
		switch it := item.(type) {
		case Response[R]:
			raw, err = it.ToJSON(enc)
		case ErrorResponse[R]:
			raw, err = it.ToJSON(enc)
		default:
			err = fmt.Errorf("unexpected batch item %T", item)
		}
		if err != nil {
			return nil, fmt.Errorf("jsonrpc: encode batch item %d: %w", i, err)
		}
		elems = append(elems, raw)
	}
	return json.Marshal(elems)
}

// DecodeBatchResponseItem decodes a response, or failing that an error
// response. dec is used both for the result and for error data.
func DecodeBatchResponseItem[R any](data json.RawMessage, dec DecodeFunc[R]) (BatchResponseItem[R], error) {
	return oneOf(data,
		func(d json.RawMessage) (BatchResponseItem[R], error) {
			r, err := DecodeResponse(d, dec)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		func(d json.RawMessage) (BatchResponseItem[R], error) {
			e, err := DecodeErrorResponse(d, dec)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
	)
}

// DecodeBatchResponse decodes a JSON array whose every element is a response
// or an error response.
func DecodeBatchResponse[R any](data json.RawMessage, dec DecodeFunc[R]) (BatchResponse[R], error) {
	items, err := decodeList(data, func(d json.RawMessage) (BatchResponseItem[R], error) {
		return DecodeBatchResponseItem(d, dec)
	})
	if err != nil {
		return BatchResponse[R]{}, err
	}
	return BatchResponse[R]{items: items}, nil
}

func optionalRaw(v json.RawMessage) *json.RawMessage {
	if v == nil {
		return nil
	}
	return &v
}
