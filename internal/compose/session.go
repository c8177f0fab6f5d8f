// Package compose runs a line-oriented editing session over a form.
//
// Plain lines are typed into the editor; consecutive lines become separate
// blocks. Lines starting with ':' are commands (":help" lists them).
package compose

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/quill/internal/toolbar"
	"github.com/aretw0/quill/pkg/editor"
	"github.com/aretw0/quill/pkg/form"
)

// ErrQuit ends a session without error.
var ErrQuit = errors.New("quit")

// Session drives one form from a line reader.
type Session struct {
	form    *form.Form
	in      io.Reader
	out     io.Writer
	toolbar *toolbar.Toolbar
	logger  *slog.Logger

	typed     bool // last input was text, the next text line opens a block
	submitted int
}

// Option configures a Session.
type Option func(*Session)

// WithToolbar replaces the default toolbar.
func WithToolbar(tb *toolbar.Toolbar) Option {
	return func(s *Session) {
		if tb != nil {
			s.toolbar = tb
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session reading commands from in and rendering to out.
func New(f *form.Form, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		form:    f,
		in:      in,
		out:     out,
		toolbar: toolbar.New(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submitted returns the number of notes stored during the session.
func (s *Session) Submitted() int { return s.submitted }

// Run processes input until EOF, ":quit" or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.render()

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Handle(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		s.render()
	}
	return scanner.Err()
}

// Handle applies one input line.
func (s *Session) Handle(ctx context.Context, line string) error {
	ed := s.form.Editor()
	if !strings.HasPrefix(line, ":") || strings.HasPrefix(line, "::") {
		text := strings.TrimPrefix(line, ":")
		if s.typed {
			ed.Enter()
		}
		ed.InsertText(text)
		s.typed = true
		return nil
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	s.typed = false
	s.logger.Debug("compose command", "command", name, "args", args)

	if cmd, ok := commands[name]; ok {
		return cmd.run(s, ctx, args)
	}
	return fmt.Errorf("unknown command %s (try :help)", name)
}

func (s *Session) render() {
	ed := s.form.Editor()
	fmt.Fprintln(s.out, s.toolbar.Render(ed))
	fmt.Fprintln(s.out, ed.HTML())
}

type command struct {
	help string
	run  func(s *Session, ctx context.Context, args []string) error
}

func editorCommand(help string, fn func(s *Session) bool) command {
	return command{help: help, run: func(s *Session, _ context.Context, _ []string) error {
		fn(s)
		return nil
	}}
}

var commands map[string]command

func init() {
	commands = map[string]command{
		":bold":      editorCommand("toggle bold", func(s *Session) bool { return s.form.Editor().ToggleBold() }),
		":italic":    editorCommand("toggle italic", func(s *Session) bool { return s.form.Editor().ToggleItalic() }),
		":underline": editorCommand("toggle underline", func(s *Session) bool { return s.form.Editor().ToggleUnderline() }),
		":strike":    editorCommand("toggle strike", func(s *Session) bool { return s.form.Editor().ToggleStrike() }),
		":code":      editorCommand("set inline code", func(s *Session) bool { return s.form.Editor().SetCode() }),
		":ul":        editorCommand("toggle bullet list", func(s *Session) bool { return s.form.Editor().ToggleBulletList() }),
		":ol":        editorCommand("toggle ordered list", func(s *Session) bool { return s.form.Editor().ToggleOrderedList() }),
		":quote":     editorCommand("toggle blockquote", func(s *Session) bool { return s.form.Editor().ToggleBlockquote() }),
		":undo":      editorCommand("undo", func(s *Session) bool { return s.form.Editor().Undo() }),
		":redo":      editorCommand("redo", func(s *Session) bool { return s.form.Editor().Redo() }),
		":enter":     editorCommand("split the block", func(s *Session) bool { return s.form.Editor().Enter() }),
		":all": editorCommand("select the whole document", func(s *Session) bool {
			s.form.Editor().SelectAll()
			return true
		}),
		":end": editorCommand("move the cursor to the end", func(s *Session) bool {
			ed := s.form.Editor()
			blocks := ed.Blocks()
			last := len(blocks) - 1
			ed.SetCursor(editor.Pos{Block: last, Offset: blocks[last].Len()})
			return true
		}),
		":h":    {help: "toggle heading (:h [1-6], default 2)", run: runHeading},
		":h2":   {help: "toggle heading level 2", run: runHeading},
		":back": {help: "delete backward (:back [n])", run: runBack},
		":text": {help: "print the plain text", run: func(s *Session, _ context.Context, _ []string) error {
			fmt.Fprintln(s.out, s.form.Editor().Text())
			return nil
		}},
		":submit": {help: "store the note and clear the editor", run: runSubmit},
		":quit":   {help: "leave the session", run: func(*Session, context.Context, []string) error { return ErrQuit }},
		":help":   {help: "list commands", run: runHelp},
	}
}

func runHeading(s *Session, _ context.Context, args []string) error {
	level := 2
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > 6 {
			return fmt.Errorf("invalid heading level %q", args[0])
		}
		level = n
	}
	s.form.Editor().ToggleHeading(level)
	return nil
}

func runBack(s *Session, _ context.Context, args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = v
	}
	for range n {
		if !s.form.Editor().DeleteBackward() {
			break
		}
	}
	return nil
}

func runSubmit(s *Session, ctx context.Context, _ []string) error {
	n, err := s.form.Submit(ctx)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	s.submitted++
	fmt.Fprintf(s.out, "saved %s\n", n.ID)
	return nil
}

func runHelp(s *Session, _ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-11s %s\n", name, commands[name].help)
	}
	fmt.Fprintln(s.out, "  ::text      type a line starting with ':'")
	return nil
}
