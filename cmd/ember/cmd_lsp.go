package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/lsp"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.parserOptions(cmd, "", false, false)
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, g.workspaceOptions(cmd, opts)...)
			return server.RunStdio()
		},
	}
}
