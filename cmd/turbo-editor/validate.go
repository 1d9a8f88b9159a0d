package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errInvalidScene = errors.New("scene is invalid")

func newValidateCommand(a *app) *cobra.Command {
	var strict bool
	validateCmd := &cobra.Command{
		Use:   "validate <scene>",
		Short: "Check a scene's tree invariants and property schemas",
		Long: `Tree violations always fail. Property findings are advisory unless --strict is set,
since generation falls back to defaults for them.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			report, err := s.ed.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range report.Invariants {
				fmt.Fprintf(out, "invariant: %v\n", e)
			}
			for _, e := range report.Properties {
				fmt.Fprintf(out, "property: %v\n", e)
			}
			if len(report.Invariants) > 0 || (strict && len(report.Properties) > 0) {
				return errInvalidScene
			}
			if report.OK() {
				fmt.Fprintln(out, "Scene is valid! ✅")
			}
			return nil
		}),
	}
	validateCmd.Flags().BoolVar(&strict, "strict", false, "Fail on property findings too")
	return validateCmd
}
