package main

import (
	"fmt"

	"github.com/aretw0/turbo-editor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCommand(a *app) *cobra.Command {
	var selected string
	graphCmd := &cobra.Command{
		Use:   "graph <scene>",
		Short: "Export the scene tree as a Mermaid diagram",
		Long:  `Outputs a Mermaid diagram (graph TD) with one shape per node type.`,
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			sc, err := s.ed.Scene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var overlay *graph.GraphOverlay
			if selected != "" {
				n, err := s.ed.Node(cmd.Context(), args[0], selected)
				if err != nil {
					return err
				}
				overlay = &graph.GraphOverlay{Selected: n.ID}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(sc, overlay))
			return nil
		}),
	}
	graphCmd.Flags().StringVar(&selected, "select", "", "Highlight a node (ID or /path)")
	return graphCmd
}
