package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/format"
	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
)

const promptCont = "...... "

func newREPLCmd(g *globals) *cobra.Command {
	var outputFormat string
	var chained bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read ember source interactively and print its syntax tree",
		Long: `Read ember source interactively and print its syntax tree.

Input continues on the next line while it is incomplete. An empty line
ends the input early. Commands:

  :format NAME   switch the output format (tree, json, yaml, source)
  :mode NAME     switch the parse mode (statements, object)
  :quit          leave the repl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.parserOptions(cmd, "", false, chained)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = g.cfg.Output.Format
			}
			mode, _ := parser.ParseMode(g.cfg.Parse.Mode)

			r := &repl{
				opts:   opts,
				mode:   mode,
				format: outputFormat,
				out:    os.Stdout,
				errOut: os.Stderr,
			}
			return r.run(g.cfg.REPL.Prompt, g.cfg.REPL.History)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&chained, "chained", false, "allow chained field access such as a.b.c")

	return cmd
}

type repl struct {
	opts   []parser.Option
	mode   parser.Mode
	format string
	out    io.Writer
	errOut io.Writer
}

func (r *repl) run(prompt, historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := r.read(ln, prompt)
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if !r.eval(src) {
			return nil
		}
	}
}

// read collects lines until they parse or fail before the end of input.
func (r *repl) read(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 && strings.TrimSpace(line) == "" {
			return b.String(), true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := r.parse(src)
		if perr == nil || !incomplete(src, perr) {
			return src, true
		}
	}
}

func (r *repl) parse(src string) (ast.Node, error) {
	opts := append(append([]parser.Option{}, r.opts...), parser.WithMode(r.mode))
	return parser.ParseSource(strings.NewReader(src), opts...)
}

// eval handles one complete input. It returns false when the repl should
// stop.
func (r *repl) eval(src string) bool {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, ":") {
		return r.command(strings.Fields(src[1:]))
	}

	node, err := r.parse(src)
	if err != nil {
		printError(r.errOut, withSource([]byte(src), err))
		return true
	}

	enc, err := format.NewEncoder(r.format, r.out, format.Options{})
	if err != nil {
		fmt.Fprintf(r.errOut, "error: %s\n", err)
		return true
	}
	if err := enc.Encode(node); err != nil {
		fmt.Fprintf(r.errOut, "error: %s\n", err)
	}
	return true
}

func (r *repl) command(fields []string) bool {
	if len(fields) == 0 {
		fmt.Fprintln(r.errOut, "unknown command. Type :quit to exit.")
		return true
	}
	switch fields[0] {
	case "quit", "q":
		return false
	case "format":
		if len(fields) != 2 {
			fmt.Fprintf(r.errOut, "usage: :format %s\n", strings.Join(format.Names, "|"))
			return true
		}
		if _, err := format.NewEncoder(fields[1], io.Discard, format.Options{}); err != nil {
			fmt.Fprintf(r.errOut, "error: %s\n", err)
			return true
		}
		r.format = fields[1]
	case "mode":
		if len(fields) != 2 {
			fmt.Fprintln(r.errOut, "usage: :mode statements|object")
			return true
		}
		mode, err := parser.ParseMode(fields[1])
		if err != nil {
			fmt.Fprintf(r.errOut, "error: %s\n", err)
			return true
		}
		r.mode = mode
	default:
		fmt.Fprintln(r.errOut, "unknown command. Type :quit to exit.")
	}
	return true
}

// incomplete reports whether err was raised at the end of src, so that
// more input could still make it parse.
func incomplete(src string, err error) bool {
	end := len(strings.TrimRight(src, " \t\r\n"))

	var syntaxErr *parser.Error
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Start.Offset >= end
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return strings.HasPrefix(lexErr.Message, "unterminated")
	}
	return false
}
