package main

import (
	"fmt"
	"strings"

	editor "github.com/aretw0/turbo-editor"
	"github.com/spf13/cobra"
)

func versionString() string {
	return strings.TrimSpace(editor.Version)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of turbo-editor",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "turbo-editor version %s\n", versionString())
		},
	}
}
