// Command jay reformats and validates JSON documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"kriskowal.com/go/jay"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:           "jay",
		Short:         "JSON formatter and validator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFmtCommand(), newCheckCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

// ============================================================================
// jay fmt
// ============================================================================

type fmtOptions struct {
	indent  int
	compact bool
	spatial bool
	ascii   bool
	write   bool
}

func newFmtCommand() *cobra.Command {
	opts := &fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Reformat JSON documents",
		Long: "Reformat JSON documents from files or standard input.\n" +
			"Input may be UTF-8, UTF-16, or UTF-32; output is always UTF-8.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.indent, "indent", 2, "spaces of indent per nesting level")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "emit the most compact layout")
	cmd.Flags().BoolVar(&opts.spatial, "spatial", false, "compact layout with spaces after ':' and ','")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "escape all non-ASCII characters")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite files in place instead of printing")
	return cmd
}

func (opts *fmtOptions) config() jay.Config {
	cfg := jay.DefaultConfig()
	cfg.ASCIIOnly = opts.ascii
	switch {
	case opts.compact:
		cfg.Spatial = opts.spatial
	case opts.spatial:
		cfg.Spatial = true
	default:
		cfg.Indent = opts.indent
	}
	return cfg
}

func runFmt(opts *fmtOptions, paths []string) error {
	cfg := opts.config()

	if len(paths) == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "reading standard input")
		}
		return formatTo(os.Stdout, cfg, input, "<stdin>")
	}

	for _, path := range paths {
		input, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		if !opts.write {
			if err := formatTo(os.Stdout, cfg, input, path); err != nil {
				return err
			}
			continue
		}
		output, err := format(cfg, input, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, output, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}
	return nil
}

func format(cfg jay.Config, input []byte, name string) ([]byte, error) {
	normalized, err := jay.NormalizeUTF8(input)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	value, err := jay.Decode(normalized)
	if err != nil {
		return nil, describe(name, err)
	}
	output, err := cfg.Encode(value)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return output, nil
}

func formatTo(w io.Writer, cfg jay.Config, input []byte, name string) error {
	output, err := format(cfg, input, name)
	if err != nil {
		return err
	}
	_, err = w.Write(output)
	return err
}

// ============================================================================
// jay check
// ============================================================================

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate JSON documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

func runCheck(paths []string) error {
	if len(paths) == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "reading standard input")
		}
		return check("<stdin>", input)
	}

	failed := false
	for _, path := range paths {
		input, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		if err := check(path, input); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		fmt.Printf("%s %s\n", green("ok"), path)
	}
	if failed {
		return errors.New("some documents are invalid")
	}
	return nil
}

func check(name string, input []byte) error {
	normalized, err := jay.NormalizeUTF8(input)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if _, err := jay.Decode(normalized); err != nil {
		return describe(name, err)
	}
	return nil
}

// describe renders a parse error as file:line:col with its message.
func describe(name string, err error) error {
	var parseErr *jay.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%s: %s", bold(fmt.Sprintf("%s:%d:%d", name, parseErr.Line, parseErr.Column)), parseErr.Kind)
	}
	return errors.Wrap(err, name)
}
