package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mnehpets/rpcmsg/internal/jsonutil"
)

// ErrParse is wrapped by every decode failure caused by input that is not
// valid JSON at all. Such failures are not DecodeErrors.
var ErrParse = errors.New("jsonrpc: parse error")

// FieldError is a single structural failure, annotated with the path of the
// field at which it occurred. Array elements use their decimal index.
type FieldError struct {
	Path   []string
	Reason string
}

func (e FieldError) Error() string {
	if len(e.Path) == 0 {
		return e.Reason
	}
	return "at " + strings.Join(e.Path, ".") + ": " + e.Reason
}

// DecodeError is a structural failure: the input was valid JSON but did not
// have the expected shape.
type DecodeError struct {
	Errors []FieldError
}

func (e *DecodeError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "jsonrpc: decode: invalid shape"
	}
	if len(e.Errors) == 1 {
		return "jsonrpc: decode: " + e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("jsonrpc: decode: %d failures: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func failure(reason string, path ...string) *DecodeError {
	return &DecodeError{Errors: []FieldError{{Path: path, Reason: reason}}}
}

// under re-roots err beneath the given path segment. Payload decoders may
// return a *DecodeError of their own; anything else becomes a single failure
// at seg.
func under(seg string, err error) *DecodeError {
	var de *DecodeError
	if !errors.As(err, &de) {
		return failure(err.Error(), seg)
	}
	out := &DecodeError{Errors: make([]FieldError, len(de.Errors))}
	for i, fe := range de.Errors {
		path := make([]string, 0, len(fe.Path)+1)
		path = append(path, seg)
		path = append(path, fe.Path...)
		out.Errors[i] = FieldError{Path: path, Reason: fe.Reason}
	}
	return out
}

func checkSyntax(data json.RawMessage) error {
	if len(jsonutil.TrimLeftWhitespace(data)) == 0 {
		return fmt.Errorf("%w: empty input", ErrParse)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: invalid JSON", ErrParse)
	}
	return nil
}

// object is a decoded JSON object whose member values are left raw.
type object map[string]json.RawMessage

func decodeObject(data json.RawMessage) (object, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	if jsonutil.FirstByte(data) != '{' {
		return nil, failure("expecting an object")
	}
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, failure(err.Error())
	}
	return o, nil
}

func decodeArray(data json.RawMessage) ([]json.RawMessage, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	if jsonutil.FirstByte(data) != '[' {
		return nil, failure("expecting an array")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, failure(err.Error())
	}
	return elems, nil
}

// required returns the raw value of a mandatory member.
func (o object) required(name string) (json.RawMessage, *DecodeError) {
	v, ok := o[name]
	if !ok {
		return nil, failure("missing field", name)
	}
	return v, nil
}

// optional returns the raw value of a member that may be absent. A JSON null
// is reported as absent.
func (o object) optional(name string) (json.RawMessage, bool) {
	v, ok := o[name]
	if !ok || jsonutil.IsNull(v) {
		return nil, false
	}
	return v, true
}

func (o object) str(name string) (string, *DecodeError) {
	raw, de := o.required(name)
	if de != nil {
		return "", de
	}
	var s string
	if jsonutil.FirstByte(raw) != '"' || json.Unmarshal(raw, &s) != nil {
		return "", failure("expecting a string", name)
	}
	return s, nil
}

func (o object) integer(name string) (int, *DecodeError) {
	raw, de := o.required(name)
	if de != nil {
		return 0, de
	}
	n, ok := parseInt(raw)
	if !ok {
		return 0, failure("expecting an integer", name)
	}
	return int(n), nil
}

func (o object) version() *DecodeError {
	raw, de := o.required("jsonrpc")
	if de != nil {
		return de
	}
	if _, err := DecodeVersion(raw); err != nil {
		return failure(err.Error(), "jsonrpc")
	}
	return nil
}

func (o object) id() (ID, *DecodeError) {
	raw, de := o.required("id")
	if de != nil {
		return ID{}, de
	}
	return DecodeID(raw), nil
}

// parseInt accepts JSON numbers with an integral value, including forms such
// as 1.0 or 1e3 that a JavaScript peer cannot tell apart from integers.
func parseInt(raw json.RawMessage) (int64, bool) {
	var num json.Number
	if c := jsonutil.FirstByte(raw); c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	if n, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil || f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// joined collects the failures of every field check of one shape so that a
// caller sees them all at once.
type joined struct {
	errs []FieldError
}

func (j *joined) add(de *DecodeError) {
	if de != nil {
		j.errs = append(j.errs, de.Errors...)
	}
}

func (j *joined) err() error {
	if len(j.errs) == 0 {
		return nil
	}
	return &DecodeError{Errors: j.errs}
}

// oneOf tries each alternative in order and keeps the first success. When all
// fail, the structural failures are concatenated into one DecodeError. A
// non-structural failure (ErrParse) from any alternative is returned as is.
func oneOf[T any](data json.RawMessage, alts ...func(json.RawMessage) (T, error)) (T, error) {
	var (
		zero T
		all  []FieldError
	)
	for _, alt := range alts {
		v, err := alt(data)
		if err == nil {
			return v, nil
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			return zero, err
		}
		all = append(all, de.Errors...)
	}
	return zero, &DecodeError{Errors: all}
}

// decodeList decodes a JSON array whose every element must satisfy dec.
func decodeList[T any](data json.RawMessage, dec func(json.RawMessage) (T, error)) ([]T, error) {
	elems, err := decodeArray(data)
	if err != nil {
		return nil, err
	}
	var j joined
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		v, err := dec(elem)
		if err != nil {
			j.add(under(strconv.Itoa(i), err))
			continue
		}
		out = append(out, v)
	}
	if err := j.err(); err != nil {
		return nil, err
	}
	return out, nil
}
