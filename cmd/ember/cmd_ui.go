package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ember/ui"
	"github.com/dhamidi/ember/workspace"
)

func newUICmd(g *globals) *cobra.Command {
	var addr string
	var root string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.parserOptions(cmd, "", false, false)
			if err != nil {
				return err
			}

			var ws *workspace.Workspace
			if root != "" {
				ws = workspace.New(root, g.workspaceOptions(cmd, opts)...)
			}

			server, err := ui.NewServer(ws, opts...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().StringVar(&root, "root", ".", "workspace directory to browse (empty disables the file views)")

	return cmd
}
