package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/jsonstudio/jsonstudio/internal/config"
	"github.com/jsonstudio/jsonstudio/internal/diff"
	"github.com/jsonstudio/jsonstudio/internal/errors"
	"github.com/jsonstudio/jsonstudio/internal/models"
	"github.com/jsonstudio/jsonstudio/internal/stats"
	"github.com/jsonstudio/jsonstudio/internal/transform"
	"github.com/jsonstudio/jsonstudio/internal/validator"
	"github.com/jsonstudio/jsonstudio/internal/worker"
)

// CLI defines the command-line interface
var CLI struct {
	Validate ValidateCmd `cmd:"" help:"Check a document and report the most likely syntax error."`
	Format   FormatCmd   `cmd:"" help:"Pretty-print a valid document."`
	Minify   MinifyCmd   `cmd:"" help:"Strip all insignificant whitespace from a valid document."`
	Sort     SortCmd     `cmd:"" help:"Sort every object's keys lexically and pretty-print."`
	Diff     DiffCmd     `cmd:"" help:"Compare two documents structurally."`
	Stats    StatsCmd    `cmd:"" help:"Report key count, nesting depth and size of a document."`
	Convert  ConvertCmd  `cmd:"" help:"Convert between JSON and YAML."`
	Keys     KeysCmd     `cmd:"" help:"Rewrite every object key into a given case style."`
	Serve    ServeCmd    `cmd:"" help:"Answer engine requests over stdin/stdout, one JSON object per line."`

	Config  string           `help:"Path to config file." type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jsonstudio"),
		kong.Description("A tool to validate, format, diff and inspect JSON documents"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonstudio version %s", Version)},
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = ctx.Run(&Context{Debug: CLI.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: explicit --config path,
// then a discovered config file, then defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

// ValidateCmd checks a document against the JSON grammar.
type ValidateCmd struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Lenient bool   `help:"Allow comments and trailing commas (JWCC) before validating." short:"l"`
	JSON    bool   `help:"Emit the validation result as JSON."`
}

func (c *ValidateCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}

	var result models.ValidationResult
	if c.Lenient || appCtx.Config.Lenient {
		result = validator.ValidateLenient(text)
	} else {
		result = validator.Validate(text)
	}

	if c.JSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode validation result", err)
		}
		fmt.Println(string(out))
	} else if result.Valid {
		fmt.Println("Input is valid JSON.")
	} else {
		fmt.Printf("Invalid JSON: %s\n", result.Error.Message)
		if result.Error.Line > 0 {
			if result.Error.Column > 0 {
				fmt.Printf("  at line %d, column %d\n", result.Error.Line, result.Error.Column)
			} else {
				fmt.Printf("  at line %d\n", result.Error.Line)
			}
		}
		if result.Error.Suggestion != "" {
			fmt.Printf("  suggestion: %s\n", result.Error.Suggestion)
		}
	}

	if !result.Valid {
		return errors.NewValidateError("document is not valid JSON", errors.ErrInvalidJSON)
	}
	return nil
}

// FormatCmd pretty-prints a document.
type FormatCmd struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent  int    `help:"Indentation width. Defaults to the configured width." default:"-1"`
	Lenient bool   `help:"Accept comments and trailing commas (JWCC) and strip them." short:"l"`
}

func (c *FormatCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	text = maybeStandardize(text, c.Lenient || appCtx.Config.Lenient)
	warnIfInvalid(text, "format")
	return writeOutput(c.Output, transform.Format(text, effectiveIndent(c.Indent, appCtx)))
}

// MinifyCmd strips whitespace from a document.
type MinifyCmd struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Lenient bool   `help:"Accept comments and trailing commas (JWCC) and strip them." short:"l"`
}

func (c *MinifyCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	text = maybeStandardize(text, c.Lenient || appCtx.Config.Lenient)
	warnIfInvalid(text, "minify")
	return writeOutput(c.Output, transform.Minify(text))
}

// SortCmd sorts object keys recursively.
type SortCmd struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent int    `help:"Indentation width. Defaults to the configured width." default:"-1"`
}

func (c *SortCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	warnIfInvalid(text, "sort")
	return writeOutput(c.Output, transform.SortKeys(text, effectiveIndent(c.Indent, appCtx)))
}

// DiffCmd compares two documents.
type DiffCmd struct {
	Left  string `arg:"" help:"Path to the left document." type:"path"`
	Right string `arg:"" help:"Path to the right document." type:"path"`
	JSON  bool   `help:"Emit the diff as JSON."`
}

func (c *DiffCmd) Run(appCtx *Context) error {
	var left, right string
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		left, err = readFile(c.Left)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = readFile(c.Right)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, side := range []struct {
		path, text string
	}{{c.Left, left}, {c.Right, right}} {
		if result := validator.Validate(side.text); !result.Valid {
			return errors.NewDiffError(fmt.Sprintf("'%s' is not valid JSON: %s", side.path, result.Error.Message), errors.ErrInvalidJSON)
		}
	}

	entries := diff.Compare(left, right)
	if c.JSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode diff", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("Documents are structurally identical.")
		return nil
	}
	for _, e := range entries {
		switch e.Type {
		case models.DiffAdded:
			fmt.Printf("+ %s: %s\n", e.Path, renderValue(e.Right))
		case models.DiffRemoved:
			fmt.Printf("- %s: %s\n", e.Path, renderValue(e.Left))
		case models.DiffChanged:
			fmt.Printf("~ %s: %s -> %s\n", e.Path, renderValue(e.Left), renderValue(e.Right))
		}
	}
	return nil
}

// StatsCmd reports summary numbers for a document.
type StatsCmd struct {
	Input string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	JSON  bool   `help:"Emit the stats as JSON."`
}

func (c *StatsCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	st := stats.Compute(text)
	if c.JSON {
		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode stats", err)
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Printf("Keys:  %d\nDepth: %d\nSize:  %s\n", st.Keys, st.Depth, st.Size)
	return nil
}

// ConvertCmd converts between JSON and YAML.
type ConvertCmd struct {
	Input  string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	To     string `help:"Target format." enum:"yaml,json" default:"yaml"`
	Indent int    `help:"Indentation width for JSON output. Defaults to the configured width." default:"-1"`
}

func (c *ConvertCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	var out string
	if c.To == "yaml" {
		out, err = transform.ToYAML(text)
	} else {
		out, err = transform.FromYAML(text, effectiveIndent(c.Indent, appCtx))
	}
	if err != nil {
		return err
	}
	return writeOutput(c.Output, out)
}

// KeysCmd rewrites object keys into a case style.
type KeysCmd struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Case   string `help:"Target case style." enum:"camel,pascal,snake,kebab" default:"camel"`
	Indent int    `help:"Indentation width. Defaults to the configured width." default:"-1"`
}

func (c *KeysCmd) Run(appCtx *Context) error {
	text, err := readInput(c.Input)
	if err != nil {
		return err
	}
	warnIfInvalid(text, "keys")
	out, err := transform.RenameKeys(text, c.Case, effectiveIndent(c.Indent, appCtx))
	if err != nil {
		return err
	}
	return writeOutput(c.Output, out)
}

// ServeCmd answers engine requests over stdin/stdout. Each line is one
// request object; each response is written as one line, correlated by id.
type ServeCmd struct {
	Pool int `help:"Number of worker goroutines. Defaults to the configured pool size." default:"-1"`
}

func (c *ServeCmd) Run(appCtx *Context) error {
	size := c.Pool
	if size <= 0 {
		size = appCtx.Config.Worker.Pool
	}
	pool := worker.NewPool(size)
	defer func() { _ = pool.Close() }()

	fmt.Fprintf(os.Stderr, "jsonstudio serve: %d workers, one JSON request per line\n", size)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var req models.Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			msg, _ := json.Marshal("malformed request: " + err.Error())
			if err := enc.Encode(models.Response{Type: "ERROR", Payload: msg, ID: req.ID}); err != nil {
				return errors.NewOutputError("failed to write response", err)
			}
			continue
		}
		resp, err := pool.Submit(context.Background(), req)
		if err != nil {
			// The pool path failed; the synchronous fallback is behaviorally
			// identical, so the caller never sees a transport failure.
			resp = worker.Execute(req)
		}
		if err := enc.Encode(resp); err != nil {
			return errors.NewOutputError("failed to write response", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewInputError("failed to read requests", err)
	}
	return nil
}

func effectiveIndent(flag int, appCtx *Context) int {
	if flag >= 0 {
		return flag
	}
	return appCtx.Config.Indent
}

func maybeStandardize(text string, lenient bool) string {
	if !lenient {
		return text
	}
	std, err := validator.Standardize(text)
	if err != nil {
		return text
	}
	return std
}

// warnIfInvalid tells the user when a transform is about to be a no-op.
func warnIfInvalid(text, op string) {
	if result := validator.Validate(text); !result.Valid {
		fmt.Fprintf(os.Stderr, "Warning: input is not valid JSON; %s leaves it unchanged. Run 'jsonstudio validate' for details.\n", op)
	}
}

func renderValue(v models.Value) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// readInput reads a document from a file, piped stdin, or an interactive
// paste terminated by Ctrl+D
func readInput(path string) (string, error) {
	if path != "" {
		return readFile(path)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		return readInteractiveInput()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(data), nil
}

func readFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
	}
	return string(data), nil
}

// writeOutput writes text to file or stdout
func writeOutput(path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
		return nil
	}
	_, err := fmt.Println(text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonstudio interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	return builder.String(), nil
}
