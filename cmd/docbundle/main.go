package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

func main() {
	ctx := context.Background()

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := newParser(cli,
		kong.Name("docbundle"),
		kong.Description("Aggregate remote markdown documentation into a single file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logFile, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(stderr, logFile), nil)).
		With("run_id", uuid.NewString())

	cmd := &RunCmd{
		CLI:    cli,
		Fs:     afero.NewOsFs(),
		Logger: logger,
		Stdout: stdout,
		Stderr: stderr,
	}
	return cmd.Run(ctx)
}

// newParser builds the kong parser with the CLI's custom type mappers
// registered.
func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.NamedMapper("seconds", secondsMapper{}),
	}, opts...)...)
}

// secondsMapper decodes a duration value from either Go duration
// syntax ("10s", "1500ms") or a bare number meaning seconds ("10"),
// so environment overrides like TIMEOUT=10 work as expected.
type secondsMapper struct{}

func (secondsMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("duration", &value); err != nil {
		return err
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		target.SetInt(int64(time.Duration(secs * float64(time.Second))))
		return nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("expected a duration or a number of seconds but got %q", value)
	}
	target.SetInt(int64(d))
	return nil
}

// CLI defines the command-line interface structure for Kong. Every
// tunable is also bound to an environment variable.
type CLI struct {
	Workers  int           `short:"w" default:"5" env:"MAX_WORKERS" help:"Concurrent download limit"`
	Retries  int           `short:"r" default:"3" env:"MAX_RETRIES" help:"Attempts per link before it is recorded as failed"`
	Timeout  time.Duration `short:"t" default:"10s" env:"TIMEOUT" type:"seconds" help:"Fetch timeout per request, duration syntax or bare seconds"`
	Output   string        `short:"o" default:"p2p_aggregated_docs.md" env:"OUTPUT_FILE" help:"Aggregate output file"`
	Dir      string        `default:"markdown_files" env:"OUTPUT_DIR" help:"Directory for individual markdown files"`
	Failures string        `default:"failed_urls.txt" help:"Failure report file"`
	LogFile  string        `default:"docbundle.log" help:"Run log file"`
	Title    string        `default:"P2P.org Aggregated Documentation" help:"Aggregate document title"`
	Sitemap  bool          `help:"Treat the index URL as a sitemap.xml"`
	RPS      float64       `default:"0" help:"Per-domain request rate limit (0 disables)"`
	Plain    bool          `help:"Plain line-based progress output"`
	URL      string        `arg:"" optional:"" default:"https://docs.p2p.org/llms.txt" help:"Documentation index URL"`
}
