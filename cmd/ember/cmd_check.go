package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/workspace"
)

func newCheckCmd(g *globals) *cobra.Command {
	var watch bool
	var objectMode bool
	var chained bool

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Parse every ember file below a path and report syntax errors",
		Long: `Parse every ember file below a path and report syntax errors.

The path defaults to the current directory. File extensions and excluded
names come from the [check] section of the configuration.

With --watch, check keeps polling for changes until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			opts, err := g.parserOptions(cmd, "", objectMode, chained)
			if err != nil {
				return err
			}
			ws := workspace.New(root, g.workspaceOptions(cmd, opts)...)

			if watch {
				return watchWorkspace(ws, g.cfg.Check.PollInterval.Duration)
			}

			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			if info.IsDir() {
				if err := ws.ScanAll(); err != nil {
					return fmt.Errorf("scan: %w", err)
				}
			} else if err := ws.ScanFile(root); err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			diags := ws.Diagnostics()
			for _, d := range diags {
				printDiagnostic(os.Stdout, d)
			}
			if len(diags) > 0 {
				return fmt.Errorf("%d of %d files have errors", len(diags), len(ws.Paths()))
			}
			fmt.Printf("%d files ok\n", len(ws.Paths()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep checking files as they change")
	cmd.Flags().BoolVar(&objectMode, "object", false, "parse every file as a single top-level object")
	cmd.Flags().BoolVar(&chained, "chained", false, "allow chained field access such as a.b.c")

	return cmd
}

// watchWorkspace reports every change until the process is interrupted.
func watchWorkspace(ws *workspace.Workspace, interval time.Duration) error {
	w := workspace.NewWatcher(ws, interval, func(c workspace.Change) {
		switch {
		case c.Removed:
			fmt.Printf("%s: removed\n", c.Path)
		case c.Doc != nil && c.Doc.Err != nil:
			printDiagnostic(os.Stdout, c.Doc.Diagnostic())
		default:
			fmt.Printf("%s: ok\n", c.Path)
		}
	})

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	w.Start()
	<-sigc
	w.Stop()
	return nil
}

func printDiagnostic(w io.Writer, d workspace.Diagnostic) {
	fmt.Fprintf(w, "%s:%d:%d: %s\n", d.Path, d.Start.Line, d.Start.Column, d.Message)
}
