package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Message is any of the six message shapes with its payloads left in JSON
// form: Request, Notification, Response, ErrorResponse, BatchRequest or
// BatchResponse, each instantiated with json.RawMessage.
type Message interface {
	message(json.RawMessage)
}

func (Request[P]) message(P)       {}
func (Notification[P]) message(P)  {}
func (Response[R]) message(R)      {}
func (ErrorResponse[D]) message(D) {}
func (BatchRequest[P]) message(P)  {}
func (BatchResponse[R]) message(R) {}

// Kind names the shape of a Message.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequest
	KindNotification
	KindResponse
	KindErrorResponse
	KindBatchRequest
	KindBatchResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	case KindErrorResponse:
		return "error_response"
	case KindBatchRequest:
		return "batch_request"
	case KindBatchResponse:
		return "batch_response"
	default:
		return "unknown"
	}
}

// KindOf reports the shape of m.
func KindOf(m Message) Kind {
	switch m.(type) {
	case Request[json.RawMessage]:
		return KindRequest
	case Notification[json.RawMessage]:
		return KindNotification
	case Response[json.RawMessage]:
		return KindResponse
	case ErrorResponse[json.RawMessage]:
		return KindErrorResponse
	case BatchRequest[json.RawMessage]:
		return KindBatchRequest
	case BatchResponse[json.RawMessage]:
		return KindBatchResponse
	default:
		return KindUnknown
	}
}

// DecodeMessage classifies input whose shape is not known in advance. It
// tries, in this order, Request, Notification, Response, ErrorResponse,
// BatchRequest and BatchResponse, and returns the first that succeeds.
//
// The order matters: a Notification decode ignores id, so anything carrying
// an id must be taken as a Request first; likewise Response before
// ErrorResponse. When every alternative fails the error is a single
// *DecodeError holding all their failures, or wraps ErrParse when the input
// is not JSON.
func DecodeMessage(data json.RawMessage) (Message, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	return oneOf(data,
		func(d json.RawMessage) (Message, error) {
			r, err := DecodeRequest(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		func(d json.RawMessage) (Message, error) {
			n, err := DecodeNotification(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return n, nil
		},
		func(d json.RawMessage) (Message, error) {
			r, err := DecodeResponse(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		func(d json.RawMessage) (Message, error) {
			e, err := DecodeErrorResponse(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return e, nil
		},
		func(d json.RawMessage) (Message, error) {
			b, err := DecodeBatchRequest(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		func(d json.RawMessage) (Message, error) {
			b, err := DecodeBatchResponse(d, DecodeRaw)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	)
}

// EncodeMessage encodes any Message.
func EncodeMessage(m Message) (json.RawMessage, error) {
	switch msg := m.(type) {
	case Request[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	case Notification[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	case Response[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	case ErrorResponse[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	case BatchRequest[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	case BatchResponse[json.RawMessage]:
		return msg.ToJSON(EncodeRaw)
	default:
		return nil, fmt.Errorf("jsonrpc: unexpected message %T", m)
	}
}
