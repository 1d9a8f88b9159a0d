package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	editor "github.com/aretw0/turbo-editor"
	"github.com/aretw0/turbo-editor/internal/cli"
	"github.com/aretw0/turbo-editor/internal/config"
	"github.com/spf13/cobra"
)

// app carries the global flags shared by every subcommand.
type app struct {
	opts cli.Options
	// extra options for the editor, used by tests to share one memory store
	extra []editor.Option
}

// session is an opened editor plus what it needs released.
type session struct {
	cfg    config.Config
	ed     *editor.Editor
	logger *slog.Logger
	close  cli.CloseFunc
}

func (a *app) open(extra ...editor.Option) (*session, error) {
	cfg, err := cli.ResolveConfig(a.opts)
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	ed, closeFn, err := cli.NewEditor(cfg, logger, append(a.extra, extra...)...)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, ed: ed, logger: logger, close: closeFn}, nil
}

// withSession opens the editor for the duration of fn.
func (a *app) withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open()
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.close(); cerr != nil {
				s.logger.Warn("Failed to close store", "err", cerr)
			}
		}()
		return fn(cmd, args, s)
	}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "turbo-editor",
		Short: "Turbo Editor edits scene graphs and generates turbo::go! programs",
		Long: `Turbo Editor keeps a tree of typed, named scene nodes with properties,
and turns it into declarative DSL source text for the turbo game framework.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.opts.Dir, "dir", ".", "Project directory containing "+config.FileName)
	pf.StringVar(&a.opts.ConfigPath, "config", "", "Explicit config file (overrides --dir lookup)")
	pf.StringVar(&a.opts.Backend, "backend", "", "Scene store backend: file, memory or redis")
	pf.StringVar(&a.opts.StoreDir, "store-dir", "", "Directory for the file backend")
	pf.StringVar(&a.opts.RedisAddr, "redis", "", "Redis address for the redis backend")
	pf.StringVar(&a.opts.Templates, "templates", "", "Template library directory")
	pf.StringVar(&a.opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&a.opts.Debug, "debug", false, "Enable debug logging and lifecycle traces")

	rootCmd.AddCommand(
		newSceneCommands(a)...,
	)
	rootCmd.AddCommand(
		newNodeCommands(a)...,
	)
	rootCmd.AddCommand(
		newGenCommand(a),
		newGraphCommand(a),
		newValidateCommand(a),
		newTemplateCommand(a),
		newShellCommand(a),
		newWatchCommand(a),
		newServeCommand(a),
		newMCPCommand(a),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, extra ...editor.Option) error {
	rootCmd := newRootCommand(&app{extra: extra})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}
