// Package jsonrpc provides the message model of JSON-RPC 2.0 and its codec.
//
// This package implements the message shapes of the JSON-RPC 2.0 specification
// (https://www.jsonrpc.org/specification): requests, notifications, responses,
// error responses and their batches. It converts them to and from JSON and
// never performs I/O; moving bytes between peers and dispatching methods is up
// to the caller.
//
// # Payloads
//
// Params, results and error data are generic. Encoding and decoding take an
// explicit codec for the payload type:
//
//	type AddParams struct {
//	    A int `json:"a"`
//	    B int `json:"b"`
//	}
//
//	req := jsonrpc.NewRequest[AddParams]("math.add", jsonrpc.IntID(1)).
//	    WithParams(AddParams{A: 2, B: 3})
//	data, err := req.ToJSON(jsonrpc.EncodeJSON[AddParams])
//
//	req, err = jsonrpc.DecodeRequest(data, jsonrpc.DecodeParams[AddParams])
//
// DecodeParams accepts both positional (array) and named (object) params.
// EncodeRaw and DecodeRaw keep a payload as json.RawMessage.
//
// # Classifying Input
//
// DecodeMessage takes input of unknown shape and tries, in order, Request,
// Notification, Response, ErrorResponse, BatchRequest and BatchResponse:
//
//	msg, err := jsonrpc.DecodeMessage(body)
//	if err != nil {
//	    reply := jsonrpc.ErrorResponseFrom(err, body)
//	    out, _ := reply.ToJSON(jsonrpc.EncodeRaw)
//	    // send out
//	}
//	switch m := msg.(type) {
//	case jsonrpc.Request[json.RawMessage]:
//	case jsonrpc.Notification[json.RawMessage]:
//	...
//	}
//
// # Errors
//
// Error values come only from the predefined errors, NewApplicationError and
// NewServerError, so the reserved band -32768..-32000 cannot be misused:
//   - ParseError (-32700)
//   - InvalidRequest (-32600)
//   - MethodNotFound (-32601)
//   - InvalidParams (-32602)
//   - InternalError (-32603)
//   - ServerError (-32000), and NewServerError for -32099..-32000
//
// Decoders fail with a *DecodeError listing the field paths that did not
// match, or with an error wrapping ErrParse when the input is not JSON.
// ClassifyError turns either into the Error to send back.
//
// # Batches
//
// BatchRequest and BatchResponse are built with NewBatchRequest and
// NewBatchResponse and grown with AddRequest, AddNotification, AddResponse and
// AddErrorResponse, each returning a new batch. Item order carries no meaning.
package jsonrpc
