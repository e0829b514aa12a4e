package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dpeckham/unvread/analyze"
	"github.com/dpeckham/unvread/config"
	"github.com/dpeckham/unvread/decode"
	"github.com/dpeckham/unvread/internal/logging"
	"github.com/dpeckham/unvread/report"
	"github.com/dpeckham/unvread/zipsrc"
)

func main() {
	opts := parseOptions(os.Args[1:])
	logging.Init(opts.LogLevel)

	raw, err := readFile(opts.File)
	if err != nil {
		slog.Error("reading input", "error", err)
		os.Exit(1)
	}

	unvBytes := raw
	if opts.Zip {
		slog.Info("extracting .unv member from zip sidecar", "file", opts.File)
		unvBytes, err = zipsrc.ExtractUniverseFile(raw)
		if err != nil {
			slog.Error("extracting universe file from zip", "error", err)
			os.Exit(1)
		}
	}

	decodeOpts, err := config.Load(opts.Config)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	u, err := decode.Decode(unvBytes, decodeOpts)
	if err != nil {
		slog.Error("decoding universe", "error", err)
		os.Exit(1)
	}

	if opts.Zip {
		if sidecar, err := zipsrc.ExtractSidecar(raw); err != nil {
			slog.Warn("extracting sidecar metadata", "error", err)
		} else {
			u.Sidecar = sidecar
		}
	}

	if err := analyze.Analyze(u, decodeOpts); err != nil {
		slog.Error("analyzing universe", "error", err)
		os.Exit(1)
	}

	if opts.Report {
		fmt.Print(report.Render(u))
	}

	if opts.ExportStats {
		out, err := yaml.Marshal(u.Statistics())
		if err != nil {
			slog.Error("marshaling statistics", "error", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	}

	if !opts.Report && !opts.ExportStats {
		fmt.Print(report.Render(u))
	}

	for _, d := range u.Diagnostics {
		slog.Debug("diagnostic", "kind", d.Kind, "severity", d.Severity, "message", d.Message)
	}
}
