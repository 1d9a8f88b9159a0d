package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// defaultWidth is the wrap width when stdout is not a terminal.
const defaultWidth = 100

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal width, or defaultWidth when unknown.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(Width()),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// NewCodeRenderer renders generated DSL source as a highlighted code block.
// The source is returned untouched when stdout is not a terminal.
func NewCodeRenderer() func(string) (string, error) {
	if !IsTerminal() {
		return func(code string) (string, error) { return code, nil }
	}
	render := NewRenderer()
	return func(code string) (string, error) {
		return render(CodeBlock(code))
	}
}

// CodeBlock wraps source in a fenced markdown block. The DSL is a Rust macro,
// so it is highlighted as Rust.
func CodeBlock(code string) string {
	return "```rust\n" + code + "```\n"
}
