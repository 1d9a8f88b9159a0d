package main

import (
	"github.com/aretw0/turbo-editor/internal/cli"
	"github.com/aretw0/turbo-editor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newWatchCommand(a *app) *cobra.Command {
	var opts cli.WatchOptions
	watchCmd := &cobra.Command{
		Use:   "watch <scene>",
		Short: "Regenerate code whenever the scene or template library changes",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			tui.PrintBanner(cmd.ErrOrStderr(), versionString())
			sig := cli.NewSignalContext(cmd.Context())
			defer sig.Cancel()

			opts.SceneID = args[0]
			opts.Out = cmd.OutOrStdout()
			opts.Render = tui.NewCodeRenderer()
			return cli.RunWatch(sig, s.ed, s.logger, opts)
		}),
	}
	watchCmd.Flags().DurationVar(&opts.Interval, "interval", cli.DefaultPollInterval, "How often to reload the scene")
	return watchCmd
}
