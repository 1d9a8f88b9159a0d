package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTemplateCommand(a *app) *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and apply the template library",
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List template IDs",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			ids, err := s.ed.Templates(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show <template>",
		Short: "Print a template definition",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			tpl, err := s.ed.Template(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(tpl)
		}),
	}

	var parent string
	applyCmd := &cobra.Command{
		Use:   "apply <scene> <template>",
		Short: "Instantiate a template and print the new subtree root ID",
		Args:  cobra.ExactArgs(2),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			id, diff, err := s.ed.ApplyTemplate(cmd.Context(), args[0], args[1], parent)
			if err != nil {
				return err
			}
			s.logger.Debug("Template applied", "template", args[1], "nodes", len(diff.Nodes))
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
	applyCmd.Flags().StringVar(&parent, "parent", "", "Parent node (ID or /path), defaults to the root")

	templateCmd.AddCommand(lsCmd, showCmd, applyCmd)
	return templateCmd
}
