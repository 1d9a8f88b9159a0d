package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turbo-editor/internal/cli"
	"github.com/aretw0/turbo-editor/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newGenCommand(a *app) *cobra.Command {
	var (
		outPath string
		pipe    string
		pretty  bool
	)
	genCmd := &cobra.Command{
		Use:   "gen <scene>",
		Short: "Generate the turbo::go! program for a scene",
		Long: `Generates DSL source text from the scene tree. --pipe sends the text through
a command registered in the tools file (for example a formatter) before output.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			code, err := s.ed.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if pipe != "" {
				pipes, err := cli.NewPipes(s.cfg)
				if err != nil {
					return err
				}
				if code, err = pipes.Pipe(cmd.Context(), pipe, code, map[string]string{"scene": args[0]}); err != nil {
					return err
				}
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(code), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				s.logger.Info("Code written", "scene_id", args[0], "path", outPath, "bytes", len(code))
				return nil
			}
			if pretty {
				render := tui.NewCodeRenderer()
				if rendered, err := render(code); err == nil {
					code = rendered
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), code)
			return err
		}),
	}
	genCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	genCmd.Flags().StringVar(&pipe, "pipe", "", "Tool from the tools file to pipe the output through")
	genCmd.Flags().BoolVar(&pretty, "pretty", false, "Syntax-highlight the output on a terminal")
	return genCmd
}
