package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/lexer"
)

func newTokensCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of an ember file, one token per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := readInput(args)
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize(src, filename)
			if err != nil {
				return withSource(src, err)
			}
			if err := format.NewLineEncoder(os.Stdout).Encode(tokens); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
}
