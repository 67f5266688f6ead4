package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sj "github.com/reoring/strictjson"
	"github.com/reoring/strictjson/codec"
	"github.com/reoring/strictjson/i18n"
	"github.com/reoring/strictjson/yamlconv"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type options struct {
	indent   string
	lang     string
	from     string
	strict   bool
	verbose  bool
	noColor  bool
	dates    bool
	maxDepth int
}

// reportedError marks an error whose details were already written to stderr.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

type app struct {
	opts   options
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "strictjson",
		Short:         "Strict JSON decoder and native-compatible encoder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			i18n.SetLanguage(a.opts.lang)
			if a.opts.noColor {
				color.NoColor = true
			}
			if a.opts.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				a.log = l
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.opts.lang, "lang", "en", "language for error messages (en, ja)")
	root.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.opts.noColor, "no-color", false, "disable colored error output")
	root.PersistentFlags().StringVar(&a.opts.from, "from", "json", "input format (json, yaml)")
	root.PersistentFlags().BoolVar(&a.opts.dates, "dates", false, "revive ISO-8601 strings into dates")
	root.PersistentFlags().IntVar(&a.opts.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")

	fmtCmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Parse strictly and re-encode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runFmt,
	}
	fmtCmd.Flags().StringVarP(&a.opts.indent, "indent", "i", "0", "indent width")
	fmtCmd.Flags().BoolVar(&a.opts.strict, "strict", false, "emit RFC 8259 conformant output instead of native-compatible output")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate input and report the first syntax error",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runCheck,
	}
	yamlCmd := &cobra.Command{
		Use:   "yaml [file]",
		Short: "Parse strictly and print the YAML projection",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runYAML,
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, "strictjson", Version)
		},
	}
	root.AddCommand(fmtCmd, checkCmd, yamlCmd, versionCmd)
	return root
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	v, err := a.load(args)
	if err != nil {
		return err
	}
	width := sj.IndentWidth(a.opts.indent)
	a.log.Debug("encode", zap.Int("indent", width), zap.Bool("strict", a.opts.strict))
	if a.opts.strict {
		var out []byte
		if width > 0 {
			out, err = sj.MarshalIndent(v, "", strings.Repeat(" ", width))
		} else {
			out, err = v.MarshalJSON()
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, string(out))
		return err
	}
	text, ok := sj.Stringify(v, width)
	if !ok {
		a.log.Debug("no output for top-level value", zap.Stringer("kind", v.Kind()))
		return nil
	}
	_, err = fmt.Fprintln(a.stdout, text)
	return err
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	v, err := a.load(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "ok: %s\n", v.Kind())
	return nil
}

func (a *app) runYAML(cmd *cobra.Command, args []string) error {
	v, err := a.load(args)
	if err != nil {
		return err
	}
	out, err := yamlconv.Marshal(v)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}

// load reads the input named by args (stdin when absent) and decodes it.
// Syntax errors are reported to stderr with context before being returned.
func (a *app) load(args []string) (sj.Value, error) {
	name := "<stdin>"
	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		data, err = os.ReadFile(name)
	} else {
		data, err = io.ReadAll(a.stdin)
	}
	if err != nil {
		return sj.Value{}, fmt.Errorf("read %s: %w", name, err)
	}
	a.log.Debug("input loaded", zap.String("source", name), zap.Int("bytes", len(data)), zap.String("format", a.opts.from))

	switch a.opts.from {
	case "yaml", "yml":
		docs, err := yamlconv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			var de *yamlconv.DuplicateKeyError
			if errors.As(err, &de) {
				a.log.Debug("duplicate yaml key", zap.String("key", de.Key), zap.Int("line", de.Line))
			}
			fmt.Fprintf(a.stderr, "%s: %v\n", name, err)
			return sj.Value{}, reportedError{err}
		}
		switch len(docs) {
		case 0:
			return sj.Null(), nil
		case 1:
			return docs[0], nil
		}
		return sj.Array(docs...), nil
	case "json", "":
	default:
		return sj.Value{}, fmt.Errorf("unsupported input format %q", a.opts.from)
	}

	opt := sj.ParseOpt{MaxDepth: a.opts.maxDepth}
	if a.opts.dates {
		opt.Reviver = codec.DateReviver()
	}
	v, err := sj.ParseBytes(data, opt)
	if err != nil {
		if se, ok := sj.AsSyntaxError(err); ok {
			a.report(name, se)
			return sj.Value{}, reportedError{err}
		}
		return sj.Value{}, err
	}
	return v, nil
}

func (a *app) report(name string, se *sj.SyntaxError) {
	a.log.Debug("syntax error", zap.String("code", se.Code), zap.Int("offset", se.Offset))
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(a.stderr, "%s:%d:%d: %s %s\n", name, se.Line(), se.Column(), red("error:"), i18n.T(se.Code, se.Params))
	snippet := se.Snippet(80)
	if i := strings.LastIndexByte(snippet, '\n'); i >= 0 {
		fmt.Fprintf(a.stderr, "  %s\n  %s\n", faint(snippet[:i]), red(snippet[i+1:]))
	}
}
