// Command processor converts a document into a normalized record for
// language-model consumption and prints it to stdout.
//
// Usage:
//
//	processor run [flags] FILE
//
// The record is printed as JSON by default; -format selects the HTML
// report or the base64-wrapped binary encoding instead.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oeo/processor"
	"github.com/oeo/processor/output"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "processor:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 || args[0] != "run" {
		return fmt.Errorf("usage: processor run [flags] FILE")
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		format     = fs.String("format", "json", "output format: json, html, or binary")
		configPath = fs.String("config", "", "YAML configuration file")
		tempDir    = fs.String("temp-dir", "", "override the temporary directory")
		keepTemps  = fs.Bool("keep-temps", false, "retain intermediate files under the temp directory")
		timeout    = fs.Int("timeout", 0, "processing timeout in seconds (0 uses the configured default)")
		verbose    = fs.Bool("verbose", false, "enable detailed logging on stderr")
	)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", fs.NArg())
	}
	input := fs.Arg(0)

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg := processor.DefaultConfig()
	if *configPath != "" {
		loaded, err := processor.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *tempDir != "" {
		cfg.TempDir = *tempDir
	}
	if *timeout > 0 {
		cfg.TimeoutSeconds = *timeout
	}
	cfg.KeepTemps = *keepTemps

	doc, err := processor.NewDocument(input)
	if err != nil {
		return err
	}

	logger.Info("processing document", "path", input)
	pipe := processor.DefaultPipeline(cfg, processor.WithLogger(logger))
	if err := pipe.Run(context.Background(), doc); err != nil {
		return err
	}

	var out []byte
	switch *format {
	case "json":
		out, err = output.JSON(doc)
	case "html":
		out, err = output.HTML(doc)
	case "binary":
		var raw []byte
		raw, err = output.Binary(doc)
		if err == nil {
			out = []byte(base64.StdEncoding.EncodeToString(raw))
		}
	default:
		return fmt.Errorf("unknown format %q (want json, html, or binary)", *format)
	}
	if err != nil {
		return err
	}

	_, err = stdout.Write(out)
	return err
}
