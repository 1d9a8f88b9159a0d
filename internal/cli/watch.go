package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	editor "github.com/aretw0/turbo-editor"
)

// DefaultPollInterval is how often RunWatch reloads the scene.
const DefaultPollInterval = 500 * time.Millisecond

// WatchOptions configures RunWatch.
type WatchOptions struct {
	SceneID  string
	Interval time.Duration
	Out      io.Writer
	// Render transforms the code before printing. Nil prints it as is.
	Render func(string) (string, error)
}

// RunWatch prints the generated code of a scene every time it changes,
// whether through another process writing the store or through the
// template library changing on disk. It returns when ctx is done.
func RunWatch(ctx context.Context, ed *editor.Editor, logger *slog.Logger, opts WatchOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	libCh, err := ed.Watch(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
		logger.Debug("Template library is not watchable, polling the scene only", "err", err)
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	last := ""
	emit := func(reason string) error {
		code, err := ed.Generate(ctx, opts.SceneID)
		if err != nil {
			return err
		}
		if code == last {
			return nil
		}
		last = code
		logger.Info("Scene changed, regenerating", "scene_id", opts.SceneID, "reason", reason)
		if opts.Render != nil {
			if rendered, rerr := opts.Render(code); rerr == nil {
				code = rendered
			}
		}
		printSystemMessage(opts.Out, "%s (%s)", opts.SceneID, reason)
		_, err = fmt.Fprint(opts.Out, code)
		return err
	}

	if err := emit("initial"); err != nil {
		return err
	}
	printSystemMessage(opts.Out, "Waiting for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := emit("store"); err != nil {
				return handleExecutionError(err)
			}
		case _, ok := <-libCh:
			if !ok {
				libCh = nil
				continue
			}
			// Templates changed; the scene itself may not have.
			if err := emit("library"); err != nil {
				return handleExecutionError(err)
			}
		}
	}
}
