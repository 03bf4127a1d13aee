package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables read as defaults for the flags.
const (
	envInput    = "JSONRPC_CHECK_INPUT"
	envOutput   = "JSONRPC_CHECK_OUTPUT"
	envLogLevel = "JSONRPC_CHECK_LOG_LEVEL"
)

type config struct {
	Input    string // json or json5
	Output   string // json or cbor
	LogLevel zerolog.Level

	// Request, when set, builds a request for this method instead of
	// classifying input.
	Request string
	Params  string

	Files []string
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// loadConfig reads an optional .env file, then the environment, then flags.
func loadConfig(args []string, stderr io.Writer) (config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("jsonrpc-check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	var level string
	fs.StringVar(&cfg.Input, "input", envOr(envInput, "json"), "input format: json or json5 (unquoted keys, comments and trailing commas; strings must use double quotes)")
	fs.StringVar(&cfg.Output, "output", envOr(envOutput, "json"), "message output format: json or cbor (diagnostic notation)")
	fs.StringVar(&level, "log-level", envOr(envLogLevel, "info"), "log level")
	fs.StringVar(&cfg.Request, "request", "", "build a request for `method` with a fresh id")
	fs.StringVar(&cfg.Params, "params", "", "JSON params for -request")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: jsonrpc-check [flags] [file...]\n\n")
		fmt.Fprintf(fs.Output(), "Classifies JSON-RPC 2.0 messages read from files, or stdin when none are given.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg.Files = fs.Args()

	switch cfg.Input {
	case "json", "json5":
	default:
		return config{}, fmt.Errorf("unknown input format %q", cfg.Input)
	}
	switch cfg.Output {
	case "json", "cbor":
	default:
		return config{}, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return config{}, fmt.Errorf("log level: %w", err)
	}
	cfg.LogLevel = lvl
	if cfg.Params != "" && cfg.Request == "" {
		return config{}, fmt.Errorf("-params requires -request")
	}
	return cfg, nil
}
