// Package cmd implements the cscheme command-line front-end (§6.1): a
// single command that runs a script file, reads a script from stdin, or
// drops into a line-editing debug REPL, depending on its arguments.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/cwbudde/cscheme/internal/config"
	cerrors "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/diag"
	"github.com/cwbudde/cscheme/internal/eval"
	"github.com/cwbudde/cscheme/internal/module"
)

var (
	flagDebug  bool
	flagDocs   bool
	flagJSON   bool
	flagConfig string
)

// NewRootCommand builds the cscheme cobra.Command.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cscheme [file] [args...]",
		Short: "A small Scheme interpreter",
		Long: "cscheme runs a Scheme script from a file or from standard input.\n" +
			"With no file argument (or \"-\"), the script is read from stdin.",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		RunE:                  runRoot,
		SilenceUsage:          true,
		SilenceErrors:         true,
	}
	root.Flags().BoolVar(&flagDebug, "debug", false, "run the given file under the line-editing debug REPL")
	root.Flags().BoolVar(&flagDocs, "docs", false, "print the list of built-in procedures and exit")
	root.Flags().BoolVar(&flagJSON, "json", false, "print errors as structured JSON instead of the BACKTRACE banner")
	root.Flags().StringVar(&flagConfig, "config", ".cscheme.yaml", "path to an optional configuration file")
	return root
}

func runRoot(c *cobra.Command, args []string) error {
	if flagDocs {
		printDocs(c.OutOrStdout())
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	loader := module.New()

	if flagDebug {
		if len(args) == 0 {
			return fmt.Errorf("--debug requires a FILE argument")
		}
		return runDebug(c, cfg, loader, args[0], args[1:])
	}

	var (
		source string
		file   string
		rest   []string
	)
	switch {
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return err
		}
		source, file = string(data), "<stdin>"
		if len(args) > 0 {
			rest = args[1:]
		}
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		source, file = string(data), args[0]
		rest = args[1:]
	}

	ip := eval.NewStandardInterpreter(c.OutOrStdout(), loader)
	ip.BindArgv(rest)
	result, runErr := ip.RunSource(source, file)
	if runErr != nil {
		reportError(c.ErrOrStderr(), runErr, cfg.MaxBacktraceDepth)
		os.Exit(1)
	}
	if result != nil {
		result.Release()
	}
	return nil
}

// reportError prints a runtime or syntax error to w. For a
// *cerrors.RuntimeError it prints the error, a "BACKTRACE" banner, and
// the call stack captured at the point the error was raised (§6.1),
// unless --json asked for a structured diagnostic instead. maxDepth
// truncates the printed (not the JSON) backtrace to its innermost
// frames; 0 means unlimited (config.Config's MaxBacktraceDepth).
func reportError(w io.Writer, err error, maxDepth int) {
	if flagJSON {
		if re, ok := err.(*cerrors.RuntimeError); ok {
			if doc, jerr := diag.RuntimeErrorJSON(re); jerr == nil {
				fmt.Fprintln(w, doc)
				return
			}
		}
		if ce, ok := err.(*cerrors.CompilerError); ok {
			if doc, jerr := diag.CompilerErrorJSON(ce); jerr == nil {
				fmt.Fprintln(w, doc)
				return
			}
		}
	}

	fmt.Fprintln(w, err.Error())
	if re, ok := err.(*cerrors.RuntimeError); ok && re.Backtrace.Depth() > 0 {
		fmt.Fprintln(w, "BACKTRACE")
		fmt.Fprintln(w, re.Backtrace.TruncateInnermost(maxDepth).String())
	}
}

// runDebug runs file under a line-editing REPL front-end: each line
// typed is evaluated against the same global environment and
// backtrace, the way a debugger shell built on top of this interface
// would (§1, debugger shell as an external collaborator).
func runDebug(c *cobra.Command, cfg *config.Config, loader eval.ModuleLoader, file string, rest []string) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	ip := eval.NewStandardInterpreter(c.OutOrStdout(), loader)
	ip.BindArgv(rest)
	if result, runErr := ip.RunSource(string(source), file); runErr != nil {
		reportError(c.ErrOrStderr(), runErr, cfg.MaxBacktraceDepth)
	} else if result != nil {
		result.Release()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		if line == "" {
			continue
		}
		result, runErr := ip.RunSource(line, "<debug>")
		if runErr != nil {
			reportError(c.ErrOrStderr(), runErr, cfg.MaxBacktraceDepth)
			continue
		}
		if result != nil {
			fmt.Fprintln(c.OutOrStdout(), result.String())
			result.Release()
		}
	}
}

// printDocs lists every builtin name bound into a fresh interpreter's
// global environment, the minimal stand-in for the out-of-scope docs
// printer (§1).
func printDocs(w io.Writer) {
	ip := eval.NewStandardInterpreter(io.Discard, module.New())
	for _, name := range ip.BuiltinNames() {
		fmt.Fprintln(w, name)
	}
}
