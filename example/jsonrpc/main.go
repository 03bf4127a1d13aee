package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/mnehpets/rpcmsg/jsonrpc"
)

type addArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

// answer replies to one call of the math methods.
func answer(m jsonrpc.BatchRequestItem[json.RawMessage]) (jsonrpc.BatchResponseItem[json.RawMessage], bool) {
	req, ok := m.(jsonrpc.Request[json.RawMessage])
	if !ok {
		return nil, false
	}
	var raw json.RawMessage
	if req.Params != nil {
		raw = *req.Params
	}
	args, err := jsonrpc.DecodeParams[addArgs](raw)
	if err != nil {
		return jsonrpc.NewErrorResponse[json.RawMessage](jsonrpc.InvalidParams, req.ID), true
	}

	var n int
	switch req.Method {
	case "math.add":
		n = args.A + args.B
	case "math.sub":
		n = args.A - args.B
	default:
		return jsonrpc.NewErrorResponse[json.RawMessage](jsonrpc.MethodNotFound, req.ID), true
	}
	result, err := jsonrpc.EncodeJSON(n)
	if err != nil {
		return jsonrpc.NewErrorResponse[json.RawMessage](jsonrpc.InternalError, req.ID), true
	}
	return jsonrpc.NewResponse(req.ID, result), true
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	calls := jsonrpc.NewBatchRequest[json.RawMessage]()
	calls, err := jsonrpc.AddRequest(calls,
		jsonrpc.NewRequest[[]int]("math.add", jsonrpc.IntID(1)).WithParams([]int{2, 3}),
		jsonrpc.EncodeJSON[[]int])
	if err != nil {
		log.Fatal().Err(err).Msg("add request")
	}
	calls, err = jsonrpc.AddRequest(calls,
		jsonrpc.NewRequest[addArgs]("math.sub", jsonrpc.StringID("sub")).WithParams(addArgs{A: 10, B: 4}),
		jsonrpc.EncodeJSON[addArgs])
	if err != nil {
		log.Fatal().Err(err).Msg("add request")
	}
	calls, err = jsonrpc.AddNotification(calls,
		jsonrpc.NewNotification[struct{}]("math.reset"),
		jsonrpc.EncodeJSON[struct{}])
	if err != nil {
		log.Fatal().Err(err).Msg("add notification")
	}
	calls, err = jsonrpc.AddRequest(calls,
		jsonrpc.NewRequest[[]string]("math.add", jsonrpc.IntID(3)).WithParams([]string{"x"}),
		jsonrpc.EncodeJSON[[]string])
	if err != nil {
		log.Fatal().Err(err).Msg("add request")
	}

	wire, err := calls.ToJSON(jsonrpc.EncodeRaw)
	if err != nil {
		log.Fatal().Err(err).Msg("encode batch")
	}
	log.Info().RawJSON("batch", wire).Msg("sending")

	// Server side: decode whatever arrived and answer every call.
	msg, err := jsonrpc.DecodeMessage(wire)
	if err != nil {
		reply, _ := jsonrpc.ErrorResponseFrom(err, wire).ToJSON(jsonrpc.EncodeRaw)
		log.Fatal().RawJSON("reply", reply).Msg("undecodable input")
	}
	batch, ok := msg.(jsonrpc.BatchRequest[json.RawMessage])
	if !ok {
		log.Fatal().Stringer("kind", jsonrpc.KindOf(msg)).Msg("expected a batch")
	}

	replies := jsonrpc.NewBatchResponse[json.RawMessage]()
	for _, item := range batch.Items() {
		r, ok := answer(item)
		if !ok {
			continue
		}
		switch r := r.(type) {
		case jsonrpc.Response[json.RawMessage]:
			replies, err = jsonrpc.AddResponse(replies, r, jsonrpc.EncodeRaw)
		case jsonrpc.ErrorResponse[json.RawMessage]:
			replies, err = jsonrpc.AddErrorResponse(replies, r, jsonrpc.EncodeRaw)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("add reply")
		}
	}

	out, err := replies.ToJSON(jsonrpc.EncodeRaw)
	if err != nil {
		log.Fatal().Err(err).Msg("encode replies")
	}
	log.Info().RawJSON("batch", out).Msg("replied")
}
