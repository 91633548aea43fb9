package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/parser"
)

func newFmtCmd(g *globals) *cobra.Command {
	var fmtOverwrite bool
	var objectMode bool
	var chained bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print an ember file in canonical form",
		Long: `Pretty-print an ember file to stdout.

If no file is provided, reads source from stdin. Comments are not kept.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}
			src, filename, err := readInput(args)
			if err != nil {
				return err
			}

			opts, err := g.parserOptions(cmd, filename, objectMode, chained)
			if err != nil {
				return err
			}
			opts = append(opts, parser.WithFile(filename))
			node, err := parser.ParseSource(bytes.NewReader(src), opts...)
			if err != nil {
				return withSource(src, err)
			}

			output := []byte(format.Source(node))
			if fmtOverwrite {
				if bytes.Equal(output, src) {
					return nil
				}
				info, err := os.Stat(filename)
				if err != nil {
					return fmt.Errorf("stat file: %w", err)
				}
				return os.WriteFile(filename, output, info.Mode().Perm())
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&objectMode, "object", false, "parse the input as a single top-level object")
	cmd.Flags().BoolVar(&chained, "chained", false, "allow chained field access such as a.b.c")

	return cmd
}
