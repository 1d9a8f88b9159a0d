package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSceneCommands(a *app) []*cobra.Command {
	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty scene and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			sc, err := s.ed.CreateScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sc.ID)
			return nil
		}),
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List stored scenes",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ids, err := s.ed.Scenes(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				sc, err := s.ed.Scene(cmd.Context(), id)
				if err != nil {
					s.logger.Warn("Skipping unreadable scene", "scene_id", id, "err", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d node(s)\n", sc.ID, sc.Name, len(sc.Nodes))
			}
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show <scene>",
		Short: "Print a stored scene as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			sc, err := s.ed.Scene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sc)
		}),
	}

	rmCmd := &cobra.Command{
		Use:   "rm <scene>",
		Short: "Delete a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			return s.ed.DeleteScene(cmd.Context(), args[0])
		}),
	}

	return []*cobra.Command{newCmd, lsCmd, showCmd, rmCmd}
}
