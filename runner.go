package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/scene"
)

// Runner is a line-oriented editing loop over one scene.
// It reads commands from Input and writes results to Output, which makes it
// usable from a terminal, a pipe or a test.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms generated code before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

const runnerHelp = `commands:
  add <parent> <name> <type>     append a node (parent "/" is the root)
  rm <node>                      remove a node and its subtree
  mv <node> <parent> [index]     reparent or reorder
  rename <node> <name>           change a display name
  set <node> <key> <value>       write a property
  get <node> [key]               show a node or one property
  apply <template> [parent]      instantiate a template
  tree                           print the node tree
  gen                            print generated code
  exit                           leave
names and paths with spaces go in double quotes: add / "Hero Sprite" Sprite`

// Run executes commands against sceneID until EOF or "exit".
// Command errors are printed and do not stop the loop.
func (r *Runner) Run(ctx context.Context, ed *Editor, sceneID string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	sc, err := ed.Scene(ctx, sceneID)
	if err != nil {
		return err
	}

	lineReader := bufio.NewReader(r.Input)
	if !r.Headless {
		fmt.Fprintf(r.Output, "--- editing %s (%s), type help ---\n", sc.Name, sc.ID)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		line, serr := SanitizeInput(strings.TrimSpace(text))
		if serr != nil {
			fmt.Fprintf(r.Output, "error: %v\n", serr)
			line = ""
		}
		if line == "exit" || line == "quit" {
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		}
		if line != "" && !strings.HasPrefix(line, "#") {
			if err := r.exec(ctx, ed, sceneID, line); err != nil {
				fmt.Fprintf(r.Output, "error: %v\n", err)
			}
		}
		if eof {
			return nil
		}
	}
}

func (r *Runner) exec(ctx context.Context, ed *Editor, sceneID, line string) error {
	args := splitArgs(line)
	cmd, args := args[0], args[1:]
	for i := range args {
		// set keeps the quotes on its value so ParseValue can tell "12" from 12.
		if cmd != "set" || i < 2 {
			args[i] = unquote(args[i])
		}
	}
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: expected %d arguments, got %d", cmd, n, len(args))
		}
		return nil
	}

	switch cmd {
	case "help":
		fmt.Fprintln(r.Output, runnerHelp)
	case "add":
		if err := need(3); err != nil {
			return err
		}
		t, err := domain.ParseNodeType(args[2])
		if err != nil {
			return err
		}
		id, _, err := ed.AddNode(ctx, sceneID, args[0], args[1], t)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Output, id)
	case "rm":
		if err := need(1); err != nil {
			return err
		}
		diff, err := ed.RemoveNode(ctx, sceneID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Output, "removed %d node(s)\n", len(diff.Removed()))
	case "mv":
		if err := need(2); err != nil {
			return err
		}
		index := -1
		if len(args) > 2 {
			i, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("mv: bad index %q", args[2])
			}
			index = i
		}
		_, err := ed.MoveNode(ctx, sceneID, args[0], args[1], index)
		return err
	case "rename":
		if err := need(2); err != nil {
			return err
		}
		_, err := ed.RenameNode(ctx, sceneID, args[0], args[1])
		return err
	case "set":
		if err := need(3); err != nil {
			return err
		}
		v, err := ParseValue(strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		_, err = ed.SetProperty(ctx, sceneID, args[0], args[1], v)
		return err
	case "get":
		if err := need(1); err != nil {
			return err
		}
		n, err := ed.Node(ctx, sceneID, args[0])
		if err != nil {
			return err
		}
		if len(args) > 1 {
			v, ok := n.Property(args[1])
			if !ok {
				return fmt.Errorf("get: %s has no property %q", n.Name, args[1])
			}
			fmt.Fprintln(r.Output, v)
			return nil
		}
		fmt.Fprintf(r.Output, "%s %s (%s) children=%d\n", n.ID, n.Name, n.Type, len(n.Children))
		for _, k := range sortedKeys(n.Properties) {
			fmt.Fprintf(r.Output, "  %s = %s\n", k, n.Properties[k])
		}
	case "apply":
		if err := need(1); err != nil {
			return err
		}
		parent := ""
		if len(args) > 1 {
			parent = args[1]
		}
		id, _, err := ed.ApplyTemplate(ctx, sceneID, args[0], parent)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.Output, id)
	case "tree":
		sc, err := ed.Scene(ctx, sceneID)
		if err != nil {
			return err
		}
		scene.Walk(sc, func(n *domain.Node, depth int) bool {
			fmt.Fprintf(r.Output, "%s%s [%s] %s\n", strings.Repeat("  ", depth), n.Name, n.Type, n.ID)
			return true
		})
	case "gen":
		code, err := ed.Generate(ctx, sceneID)
		if err != nil {
			return err
		}
		if r.Renderer != nil {
			if rendered, err := r.Renderer(code); err == nil {
				code = rendered
			}
		}
		fmt.Fprint(r.Output, code)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// splitArgs splits on spaces, keeping double-quoted runs together with their quotes.
func splitArgs(line string) []string {
	var (
		args  []string
		cur   strings.Builder
		quote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quote = !quote
			cur.WriteRune(r)
		case r == ' ' && !quote:
			if cur.Len() > 0 {
				args = append(args, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		args = append(args, cur.String())
	}
	return args
}

// unquote drops the double quotes splitArgs kept, so "Hero Sprite" names Hero Sprite.
func unquote(arg string) string {
	return strings.ReplaceAll(arg, `"`, "")
}

func sortedKeys(m map[string]domain.PropertyValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
