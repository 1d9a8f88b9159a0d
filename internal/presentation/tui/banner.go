package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the turbo-editor banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Warm gradient, top to bottom
	lines := []struct {
		text  string
		color string
	}{
		{" _____         _          ", "#fde047"},
		{"|_   _|  _ _ _| |__  ___  ", "#fbbf24"},
		{"  | || || | '_| '_ \\/ _ \\ ", "#fb923c"},
		{"  | | \\_,_|_| |_.__/\\___/ ", "#f87171"},
		{"  |_|  scene editor       ", "#f43f5e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
