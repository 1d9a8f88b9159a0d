package main

import (
	"github.com/aretw0/turbo-editor/internal/cli"
	"github.com/aretw0/turbo-editor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newShellCommand(a *app) *cobra.Command {
	var headless bool
	shellCmd := &cobra.Command{
		Use:   "shell <scene>",
		Short: "Edit a scene interactively",
		Long: `Starts a line editor on the scene. Type help for the command list.
Use --headless for scripted input without banner or prompts.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			sig := cli.NewSignalContext(cmd.Context())
			defer sig.Cancel()
			return cli.RunShell(sig, s.ed, s.logger, cli.ShellOptions{
				SceneID:  args[0],
				Headless: headless || !tui.IsTerminal(),
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
			})
		}),
	}
	shellCmd.Flags().BoolVar(&headless, "headless", false, "Plain line protocol for scripts and pipes")
	return shellCmd
}
