package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

// Request is a call that expects a response. Params is optional; nil means
// absent.
type Request[P any] struct {
	JSONRPC Version
	Method  string
	ID      ID
	Params  *P
}

// NewRequest returns a request without params.
func NewRequest[P any](method string, id ID) Request[P] {
	return Request[P]{Method: method, ID: id}
}

// WithParams returns a copy of r carrying params.
func (r Request[P]) WithParams(params P) Request[P] {
	r.Params = &params
	return r
}

// SetParams returns r carrying params of a new payload type. Any params r
// held are replaced.
func SetParams[P, Q any](r Request[Q], params P) Request[P] {
	return Request[P]{Method: r.Method, ID: r.ID, Params: &params}
}

type wireRequest struct {
	JSONRPC Version         `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      ID              `json:"id"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// ToJSON encodes r, using enc for the params when present. Params that
// encode to null are omitted.
func (r Request[P]) ToJSON(enc EncodeFunc[P]) (json.RawMessage, error) {
	params, err := encodeOptional(r.Params, enc)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: encode request params: %w", err)
	}
	return json.Marshal(wireRequest{Method: r.Method, ID: r.ID, Params: params})
}

// DecodeRequest decodes a request. jsonrpc, method and id are required;
// params is decoded with dec only when present.
func DecodeRequest[P any](data json.RawMessage, dec DecodeFunc[P]) (Request[P], error) {
	o, err := decodeObject(data)
	if err != nil {
		return Request[P]{}, err
	}
	var (
		j  joined
		r  Request[P]
		de *DecodeError
	)
	j.add(o.version())
	r.Method, de = o.str("method")
	j.add(de)
	r.ID, de = o.id()
	j.add(de)
	r.Params, de = decodeOptional(o, "params", dec)
	j.add(de)
	if err := j.err(); err != nil {
		return Request[P]{}, err
	}
	return r, nil
}

// Notification is a call that expects no response.
type Notification[P any] struct {
	JSONRPC Version
	Method  string
	Params  *P
}

// NewNotification returns a notification without params.
func NewNotification[P any](method string) Notification[P] {
	return Notification[P]{Method: method}
}

// WithParams returns a copy of n carrying params.
func (n Notification[P]) WithParams(params P) Notification[P] {
	n.Params = &params
	return n
}

// SetNotificationParams returns n carrying params of a new payload type.
func SetNotificationParams[P, Q any](n Notification[Q], params P) Notification[P] {
	return Notification[P]{Method: n.Method, Params: &params}
}

type wireNotification struct {
	JSONRPC Version         `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// ToJSON encodes n, using enc for the params when present. Params that
// encode to null are omitted.
func (n Notification[P]) ToJSON(enc EncodeFunc[P]) (json.RawMessage, error) {
	params, err := encodeOptional(n.Params, enc)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: encode notification params: %w", err)
	}
	return json.Marshal(wireNotification{Method: n.Method, Params: params})
}

// DecodeNotification decodes a notification. jsonrpc and method are
// required; params is decoded with dec only when present.
//
// An id member is neither required nor rejected, so request shaped input is
// accepted with its id dropped. Use DecodeMessage to tell the two apart, or
// DecodeStrictNotification to refuse an id.
func DecodeNotification[P any](data json.RawMessage, dec DecodeFunc[P]) (Notification[P], error) {
	o, err := decodeObject(data)
	if err != nil {
		return Notification[P]{}, err
	}
	return notificationFrom(o, dec)
}

// DecodeStrictNotification is DecodeNotification but fails when an id member
// is present.
func DecodeStrictNotification[P any](data json.RawMessage, dec DecodeFunc[P]) (Notification[P], error) {
	o, err := decodeObject(data)
	if err != nil {
		return Notification[P]{}, err
	}
	if _, ok := o["id"]; ok {
		return Notification[P]{}, failure("unexpected field in notification", "id")
	}
	return notificationFrom(o, dec)
}

func notificationFrom[P any](o object, dec DecodeFunc[P]) (Notification[P], error) {
	var (
		j  joined
		n  Notification[P]
		de *DecodeError
	)
	j.add(o.version())
	n.Method, de = o.str("method")
	j.add(de)
	n.Params, de = decodeOptional(o, "params", dec)
	j.add(de)
	if err := j.err(); err != nil {
		return Notification[P]{}, err
	}
	return n, nil
}

// encodeOptional encodes an optional payload. A payload that encodes to
// JSON null is dropped, as decoding reads a null member as absent.
func encodeOptional[T any](v *T, enc EncodeFunc[T]) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := enc(*v)
	if err != nil || jsonutil.IsNull(raw) {
		return nil, err
	}
	return raw, nil
}

func decodeOptional[T any](o object, name string, dec DecodeFunc[T]) (*T, *DecodeError) {
	raw, ok := o.optional(name)
	if !ok {
		return nil, nil
	}
	v, err := dec(raw)
	if err != nil {
		return nil, under(name, err)
	}
	return &v, nil
}
