package cli

import (
	"fmt"
	"io"
	"log/slog"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/presentation/tui"
)

// ShellOptions configures an interactive editing session.
type ShellOptions struct {
	SceneID  string
	Headless bool // no banner, prompt or ANSI rendering
	In       io.Reader
	Out      io.Writer
}

// RunShell runs the line editor over one scene until exit, EOF or a signal.
func RunShell(parent *SignalContext, ed *editor.Editor, logger *slog.Logger, opts ShellOptions) error {
	if !opts.Headless {
		tui.PrintBanner(opts.Out, editor.Version)
	}

	r := editor.NewRunner()
	r.Input = NewInterruptibleReader(opts.In, parent.Done())
	r.Output = opts.Out
	r.Headless = opts.Headless
	if !opts.Headless {
		r.Renderer = tui.NewCodeRenderer()
	}

	logger.Info("Shell started", "scene_id", opts.SceneID)
	err := r.Run(parent, ed, opts.SceneID)
	if err != nil && isInterrupted(err) && !opts.Headless {
		if parent.Signal() != nil {
			fmt.Fprintln(opts.Out)
		}
		printSystemMessage(opts.Out, "Interrupted while editing '%s'.", opts.SceneID)
	}
	logger.Info("Shell stopped", "scene_id", opts.SceneID, "signal", parent.Signal())
	return handleExecutionError(err)
}
