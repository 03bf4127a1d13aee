// Command jsonrpc-check classifies JSON-RPC 2.0 messages.
//
// Each input (a file argument, or stdin) is decoded as one message and a JSON
// line is printed: the kind of message and its normalized encoding, or the
// error response a server would send back for it.
//
//	jsonrpc-check call.json batch.json
//	echo '{"jsonrpc":"2.0","method":"ping"}' | jsonrpc-check
//	jsonrpc-check -request math.add -params '[1,2]'
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/mnehpets/rpcmsg/cborjson"
	"github.com/mnehpets/rpcmsg/jsonrpc"
)

// result is one output line.
type result struct {
	Source  string          `json:"source"`
	Kind    string          `json:"kind,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
	CBOR    string          `json:"cbor,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

type checker struct {
	cfg config
	out *json.Encoder
	log zerolog.Logger
}

func newChecker(cfg config, w io.Writer, log zerolog.Logger) *checker {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &checker{cfg: cfg, out: enc, log: log}
}

// normalize turns the raw input into JSON. JSON5 numbers are kept as
// written so that large integer ids survive.
func (c *checker) normalize(data []byte) (json.RawMessage, error) {
	if c.cfg.Input != "json5" {
		return data, nil
	}
	dec := json5.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: json5: %w", jsonrpc.ErrParse, err)
	}
	var rest any
	if err := dec.Decode(&rest); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json5: trailing data after value", jsonrpc.ErrParse)
	}
	v, err := jsonNumbers(v)
	if err != nil {
		return nil, fmt.Errorf("%w: json5: %w", jsonrpc.ErrParse, err)
	}
	return json.Marshal(v)
}

// jsonNumbers replaces json5 numbers with json.Number, which encoding/json
// writes verbatim after checking it is a valid JSON number.
func jsonNumbers(v any) (any, error) {
	switch x := v.(type) {
	case json5.Number:
		n := json.Number(x)
		if _, err := json.Marshal(n); err != nil {
			return nil, fmt.Errorf("number %s: %w", x, err)
		}
		return n, nil
	case map[string]any:
		for k, e := range x {
			ne, err := jsonNumbers(e)
			if err != nil {
				return nil, err
			}
			x[k] = ne
		}
	case []any:
		for i, e := range x {
			ne, err := jsonNumbers(e)
			if err != nil {
				return nil, err
			}
			x[i] = ne
		}
	}
	return v, nil
}

func (c *checker) emit(res result, msg json.RawMessage) error {
	if msg != nil {
		if c.cfg.Output == "cbor" {
			b, err := cborjson.FromJSON(msg)
			if err != nil {
				return err
			}
			diag, err := cborjson.Diagnose(b)
			if err != nil {
				return err
			}
			res.CBOR = diag
		} else {
			res.Message = msg
		}
	}
	return c.out.Encode(res)
}

// check decodes one input and reports what it is.
func (c *checker) check(source string, data []byte) error {
	log := c.log.With().Str("source", source).Logger()

	input, err := c.normalize(data)
	var msg jsonrpc.Message
	if err == nil {
		msg, err = jsonrpc.DecodeMessage(input)
	}
	if err != nil {
		if input == nil {
			input = data
		}
		reply, encErr := jsonrpc.ErrorResponseFrom(err, input).ToJSON(jsonrpc.EncodeRaw)
		if encErr != nil {
			return encErr
		}
		log.Warn().Err(err).Int("code", jsonrpc.ClassifyError(err).Code()).Msg("input is not a valid message")
		return c.emit(result{Source: source, Error: reply}, nil)
	}

	encoded, err := jsonrpc.EncodeMessage(msg)
	if err != nil {
		return err
	}
	kind := jsonrpc.KindOf(msg)
	log.Debug().Stringer("kind", kind).Msg("decoded message")
	return c.emit(result{Source: source, Kind: kind.String()}, encoded)
}

// buildRequest prints a request for method with a fresh UUID id.
func (c *checker) buildRequest(method, params string) error {
	req := jsonrpc.NewRequest[json.RawMessage](method, jsonrpc.StringID(uuid.NewString()))
	if params != "" {
		p, err := c.normalize([]byte(params))
		if err != nil {
			return err
		}
		if !json.Valid(p) {
			return fmt.Errorf("%w: params are not valid JSON", jsonrpc.ErrParse)
		}
		req = req.WithParams(p)
	}
	data, err := req.ToJSON(jsonrpc.EncodeRaw)
	if err != nil {
		return err
	}
	c.log.Debug().Stringer("id", req.ID).Str("method", method).Msg("built request")
	return c.emit(result{Source: "-request", Kind: jsonrpc.KindRequest.String()}, data)
}

func run(cfg config, stdin io.Reader, stdout io.Writer, log zerolog.Logger) error {
	c := newChecker(cfg, stdout, log)

	if cfg.Request != "" {
		return c.buildRequest(cfg.Request, cfg.Params)
	}

	if len(cfg.Files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return c.check("-", data)
	}

	for _, name := range cfg.Files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := c.check(name, data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "jsonrpc-check:", err)
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()

	if err := run(cfg, os.Stdin, os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("jsonrpc-check failed")
		os.Exit(1)
	}
}
