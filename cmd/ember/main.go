package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/ember/config"
	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
	"github.com/dhamidi/ember/workspace"
)

const version = "0.1.0"

// globals carries what the root command resolved before a subcommand runs.
type globals struct {
	configPath string
	verbosity  int
	logFile    string
	cfg        *config.Config
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "ember",
		Short:         "Parser and tooling for the ember scripting language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newTokensCmd(g))
	rootCmd.AddCommand(newFmtCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newREPLCmd(g))
	rootCmd.AddCommand(newGrammarCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newUICmd(g))

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func (g *globals) load(cmd *cobra.Command) error {
	var err error
	if g.configPath != "" {
		g.cfg, err = config.Load(g.configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			wd = "."
		}
		g.cfg, err = config.Discover(wd)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	verbosity := g.cfg.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity = g.verbosity
	}
	logFile := g.cfg.Log.File
	if g.logFile != "" {
		logFile = g.logFile
	}
	commonlog.Initialize(verbosity, logFile)

	log := commonlog.GetLogger("ember")
	if g.cfg.Path != "" {
		log.Infof("using config %s", g.cfg.Path)
	}
	return nil
}

// parserOptions merges the configured parse settings with command flags.
// A file named like settings.object.em selects object mode unless --object
// was given.
func (g *globals) parserOptions(cmd *cobra.Command, file string, object, chained bool) ([]parser.Option, error) {
	mode, err := parser.ParseMode(g.cfg.Parse.Mode)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("object") {
		mode = parser.ModeStatements
		if object {
			mode = parser.ModeObject
		}
	} else if workspace.HasObjectSuffix(file) {
		mode = parser.ModeObject
	}
	if !cmd.Flags().Changed("chained") {
		chained = g.cfg.Parse.ChainedAccess
	}

	opts := []parser.Option{parser.WithMode(mode)}
	if chained {
		opts = append(opts, parser.WithChainedAccess())
	}
	return opts, nil
}

// workspaceOptions configures a workspace from the [check] section and the
// parser options. An explicit --object applies to every file.
func (g *globals) workspaceOptions(cmd *cobra.Command, opts []parser.Option) []workspace.Option {
	wsOpts := []workspace.Option{
		workspace.WithExtensions(g.cfg.Check.Extensions...),
		workspace.WithExclude(g.cfg.Check.Exclude...),
		workspace.WithParserOptions(opts...),
	}
	if cmd.Flags().Changed("object") {
		wsOpts = append(wsOpts, workspace.WithFixedMode())
	}
	return wsOpts
}

// readInput reads the named file, or stdin when no file is given.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, args[0], nil
}

// sourceError attaches the source text to a lexical or syntax error so
// that it can be printed with a snippet.
type sourceError struct {
	src []byte
	err error
}

func (e *sourceError) Error() string { return e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }

func withSource(src []byte, err error) error {
	if err == nil {
		return nil
	}
	return &sourceError{src: src, err: err}
}

func printError(w io.Writer, err error) {
	styles := newErrorStyles(w)
	var se *sourceError
	if errors.As(err, &se) {
		var syntaxErr *parser.Error
		var lexErr *lexer.Error
		switch {
		case errors.As(se.err, &syntaxErr):
			fmt.Fprint(w, styles.snippet(format.Snippet(se.src, syntaxErr.Start, syntaxErr.Message)))
			return
		case errors.As(se.err, &lexErr):
			fmt.Fprint(w, styles.snippet(format.Snippet(se.src, lexErr.Pos, lexErr.Message)))
			return
		}
	}
	fmt.Fprint(w, styles.plain(err))
}
