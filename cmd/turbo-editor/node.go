package main

import (
	"fmt"
	"slices"
	"strings"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/spf13/cobra"
)

// Node arguments accept an ID or a /path from the root.
func newNodeCommands(a *app) []*cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add <scene> <parent> <name> <type>",
		Short: "Append a node and print its ID",
		Long:  "Types: Container, Sprite, Rectangle, Circle, Path, Text. Parent \"/\" is the root.",
		Args:  cobra.ExactArgs(4),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			t, err := domain.ParseNodeType(args[3])
			if err != nil {
				return err
			}
			name, err := editor.SanitizeInput(args[2])
			if err != nil {
				return err
			}
			id, _, err := s.ed.AddNode(cmd.Context(), args[0], args[1], name, t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove <scene> <node>",
		Short: "Remove a node and its subtree",
		Args:  cobra.ExactArgs(2),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			diff, err := s.ed.RemoveNode(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d node(s)\n", len(diff.Removed()))
			return nil
		}),
	}

	var index int
	moveCmd := &cobra.Command{
		Use:   "move <scene> <node> <parent>",
		Short: "Reparent or reorder a node",
		Args:  cobra.ExactArgs(3),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			_, err := s.ed.MoveNode(cmd.Context(), args[0], args[1], args[2], index)
			return err
		}),
	}
	moveCmd.Flags().IntVar(&index, "index", -1, "Position among the new siblings, -1 appends")

	renameCmd := &cobra.Command{
		Use:   "rename <scene> <node> <name>",
		Short: "Change a node's display name",
		Args:  cobra.ExactArgs(3),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			name, err := editor.SanitizeInput(args[2])
			if err != nil {
				return err
			}
			_, err = s.ed.RenameNode(cmd.Context(), args[0], args[1], name)
			return err
		}),
	}

	setCmd := &cobra.Command{
		Use:   "set <scene> <node> <key> <value>",
		Short: "Write a property",
		Long: `Values: true/false are Booleans, #RRGGBB, #RRGGBBAA and 0xAARRGGBB are Colors,
numbers are Numbers, anything else (optionally "quoted") is a String.`,
		Args: cobra.MinimumNArgs(4),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			raw, err := editor.SanitizeInput(strings.Join(args[3:], " "))
			if err != nil {
				return err
			}
			v, err := editor.ParseValue(raw)
			if err != nil {
				return err
			}
			_, err = s.ed.SetProperty(cmd.Context(), args[0], args[1], args[2], v)
			return err
		}),
	}

	getCmd := &cobra.Command{
		Use:   "get <scene> <node> [key]",
		Short: "Show a node or one of its properties",
		Args:  cobra.RangeArgs(2, 3),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			n, err := s.ed.Node(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 3 {
				v, ok := n.Property(args[2])
				if !ok {
					return fmt.Errorf("%s has no property %q", n.Name, args[2])
				}
				fmt.Fprintln(out, v)
				return nil
			}
			fmt.Fprintf(out, "%s %s (%s) children=%d\n", n.ID, n.Name, n.Type, len(n.Children))
			keys := make([]string, 0, len(n.Properties))
			for k := range n.Properties {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "  %s = %s\n", k, n.Properties[k])
			}
			return nil
		}),
	}

	return []*cobra.Command{addCmd, removeCmd, moveCmd, renameCmd, setCmd, getCmd}
}
