// Package session interprets phonebook commands against one in-memory book.
//
// A line is split with shell quoting rules and parsed by a fresh kong grammar,
// so the shell, script replay and tests all share the same command surface.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/config"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrUsage     = errors.New("session: usage")
	ErrNoBrowser = errors.New("session: browser not available")
	ErrQuit      = errors.New("session: quit")
)

// ScriptError reports the line of a replayed script that failed.
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("session: script line %d: %v", e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// BrowseFunc opens an interactive view over the session's book.
type BrowseFunc func(b *book.Book) error

// Session owns one book and the writer command output goes to.
type Session struct {
	book   *book.Book
	out    io.Writer
	log    *zap.Logger
	style  string
	prompt string
	echo   bool
	browse BrowseFunc
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStyle selects config.StylePlain or config.StyleTable for list output.
func WithStyle(style string) Option {
	return func(s *Session) { s.style = style }
}

// WithPrompt sets the prompt printed before each interactive line and before echoed lines.
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithEcho makes Replay print each command line before its output.
func WithEcho(echo bool) Option {
	return func(s *Session) { s.echo = echo }
}

// WithBrowser enables the browse command.
func WithBrowser(fn BrowseFunc) Option {
	return func(s *Session) { s.browse = fn }
}

// New creates a Session over b writing to out. A nil book starts empty.
func New(b *book.Book, out io.Writer, opts ...Option) *Session {
	if b == nil {
		b = book.New()
	}
	s := &Session{
		book:  b,
		out:   out,
		log:   zap.NewNop(),
		style: config.StylePlain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the book the session operates on.
func (s *Session) Book() *book.Book {
	return s.book
}

// Exec runs a single command line. Blank lines and # comments do nothing.
// quit and exit return ErrQuit.
func (s *Session) Exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(args) == 0 {
		return nil
	}

	kctx, err := s.parse(args)
	if err != nil {
		s.log.Warn("rejected command", zap.Strings("args", args), zap.Error(err))
		return err
	}

	s.log.Debug("exec", zap.String("command", kctx.Command()), zap.Strings("args", args))
	if err := kctx.Run(s, kctx.Model); err != nil {
		if !errors.Is(err, ErrQuit) {
			s.log.Warn("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		}
		return err
	}
	return nil
}

// Run reads commands from in until EOF or quit. Command failures are printed
// and the loop continues; only read errors end it with an error.
func (s *Session) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		if s.prompt != "" {
			_, _ = fmt.Fprint(s.out, s.prompt)
		}
		if !sc.Scan() {
			break
		}
		err := s.Exec(sc.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "error: %s\n", err)
		}
	}
	if s.prompt != "" {
		_, _ = fmt.Fprintln(s.out)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("session: reading input: %w", err)
	}
	return nil
}

// Replay runs a script line by line and stops at the first failing command,
// returning a *ScriptError. quit ends the script early without error.
func (s *Session) Replay(script io.Reader) error {
	sc := bufio.NewScanner(script)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if s.echo {
			_, _ = fmt.Fprintf(s.out, "%s%s\n", s.prompt, trimmed)
		}
		err := s.Exec(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return &ScriptError{Line: n, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("session: reading script: %w", err)
	}
	return nil
}

// parse builds a fresh grammar per line so no argument state leaks between commands.
func (s *Session) parse(args []string) (*kong.Context, error) {
	var g grammar
	k, err := kong.New(&g,
		kong.Name("phonebook"),
		kong.Writers(s.out, s.out),
		kong.NoDefaultHelp(),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return nil, fmt.Errorf("session: building grammar: %w", err)
	}
	kctx, err := k.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return kctx, nil
}
