package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ember/grammar"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/workspace"
)

func newGrammarCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "EBNF grammar tools",
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarAcceptCmd(g))

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in EBNF grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.Write(grammar.Text())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file.

Without a file the built-in grammar is checked. With an empty --start only
the syntax is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(os.Stderr, errors.Unwrap(err))
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(os.Stderr, err)
				return fmt.Errorf("verify %s: grammar has errors", startProduction)
			}
			fmt.Printf("%d productions ok\n", len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarAcceptCmd(gl *globals) *cobra.Command {
	var startProduction string
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "accept [file]",
		Short: "Check an ember file against the EBNF grammar instead of the parser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := readInput(args)
			if err != nil {
				return err
			}

			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("start") {
				startProduction = grammar.Program
				if gl.cfg.Parse.Mode == "object" || workspace.HasObjectSuffix(filename) {
					startProduction = grammar.ObjectFile
				}
			}

			tokens, err := lexer.Tokenize(src, filename)
			if err != nil {
				return withSource(src, err)
			}
			if err := grammar.Accepts(g, startProduction, tokens); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Program, "start production")
	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file to use instead of the built-in one")

	return cmd
}

func loadGrammar(args []string) (ebnf.Grammar, error) {
	if len(args) == 0 {
		return grammar.Load()
	}
	return grammar.LoadFile(args[0])
}

// printErrors prints each entry of an error list on its own line.
func printErrors(w io.Writer, err error) {
	if err == nil {
		return
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
