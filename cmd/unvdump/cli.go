package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
)

// cliOptions mirrors cmd/mysqldef's option-struct-plus-go-flags pattern:
// a single struct carrying short/long flags, value names, and defaults.
type cliOptions struct {
	File         string `short:"f" long:"file" description:"Universe file to read, or - for stdin" value-name:"unv_file" default:"-"`
	Zip          bool   `long:"zip" description:"Treat the input as a zip sidecar and extract its .unv member plus UNW_Storage/ResourceHeader metadata"`
	Config       string `long:"config" description:"YAML file of decode/analyze options"`
	Report       bool   `long:"report" description:"Print the human-readable report"`
	ExportStats  bool   `long:"export-stats" description:"Print Universe.Statistics() as YAML"`
	LogLevel     string `long:"log-level" description:"Log level (debug, info, warn, error)" value-name:"level"`
	Help         bool   `long:"help" description:"Show this help"`
	Version      bool   `long:"version" description:"Show this version"`
}

var version string

// parseOptions parses args and handles -help/-version the way
// cmd/mysqldef/mysqldef.go's parseOptions does.
func parseOptions(args []string) *cliOptions {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options]"
	_, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	return &opts
}

// readFile loads filepath's raw bytes, or all of stdin when filepath is
// "-". Unlike a text-SQL reader, this never line-scans: a universe file
// is binary, so any newline-oriented reading would corrupt it.
func readFile(filepath string) ([]byte, error) {
	if filepath == "-" {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("stdin is not piped")
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, os.Stdin); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return os.ReadFile(filepath)
}
