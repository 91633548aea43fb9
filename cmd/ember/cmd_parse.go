package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/parser"
)

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var includePositions bool
	var objectMode bool
	var chained bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an ember file and dump the syntax tree",
		Long: `Parse an ember file and dump the syntax tree.

If no file is provided, reads source from stdin. Files named *.object.em
are parsed as a single top-level object unless --object is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if !cmd.Flags().Changed("format") {
				outputFormat = g.cfg.Output.Format
			}
			if !cmd.Flags().Changed("positions") {
				includePositions = g.cfg.Output.Positions
			}

			enc, err := format.NewEncoder(outputFormat, os.Stdout, format.Options{Positions: includePositions})
			if err != nil {
				return err
			}
			if err := enc.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node spans in json and yaml output")
	cmd.Flags().BoolVar(&objectMode, "object", false, "parse the input as a single top-level object")
	cmd.Flags().BoolVar(&chained, "chained", false, "allow chained field access such as a.b.c")

	return cmd
}
