package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/dsl"
	"github.com/reoring/pactdsl/i18n"
	"github.com/reoring/pactdsl/internal/shapefile"
	"github.com/reoring/pactdsl/internal/yamlnode"
)

// config holds defaults read from the environment. Flags override them.
type config struct {
	Format  string `env:"PACTDSL_FORMAT,default=json"`
	Lang    string `env:"PACTDSL_LANG,default=en"`
	Verbose bool   `env:"PACTDSL_VERBOSE,default=false"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "build":
		return buildCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "pactdsl CLI\n\nUsage:\n  pactdsl build -f shape.yaml [-format json|yaml] [-body] [-o out]\n\nEnvironment:\n  PACTDSL_FORMAT   default output format (json)\n  PACTDSL_LANG     issue message language (en, ja)\n  PACTDSL_VERBOSE  log builder events to stderr")
}

func loadConfig() (config, error) {
	var cfg config
	// an unset environment is not an error; a malformed value is
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	return cfg, nil
}

func buildCmd(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var file, out string
	var bodyOnly bool
	fs.StringVar(&file, "f", "", "shape file (YAML or JSON)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: json or yaml")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "issue message language")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	fs.BoolVar(&bodyOnly, "body", false, "emit only the example body")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log builder events")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if file == "" {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(cfg.Lang)

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	shape, err := shapefile.Load(file)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	doc, err := shapefile.Build(shape, dsl.WithLogger(log))
	if err != nil {
		if iss, ok := pactdsl.AsIssues(err); ok {
			for _, is := range iss {
				fmt.Fprintf(stderr, "%s: %s: %s\n", is.Path, is.Code, is.Message)
			}
			return 1
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	b, err := render(doc, cfg.Format, bodyOnly)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if out == "" {
		_, _ = stdout.Write(b)
		return 0
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintf(stderr, "writing output: %v\n", err)
		return 1
	}
	log.Debug("cli.output.written", "path", out, "bytes", len(b))
	return 0
}

func render(doc *pactdsl.Document, format string, bodyOnly bool) ([]byte, error) {
	var v any = doc
	if bodyOnly {
		v = doc.Body
	}
	switch format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		if bodyOnly {
			n, err := yamlnode.FromValue(doc.Body)
			if err != nil {
				return nil, err
			}
			v = n
		}
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
