package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/phonebook"
	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/dashboard"
	"github.com/smileynet/phonebook/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// localScripts overrides embedded scripts of the same name.
const localScripts = ".phonebook/scripts"

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" help:"Start an interactive contact book session."`
	Demo    DemoCmd          `cmd:"" help:"Replay the demo script against a fresh book."`
	Browse  BrowseCmd        `cmd:"" help:"Open the interactive contact browser."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}

// setup loads config and builds the logger every command needs.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// scripts returns the script filesystem, local directory first.
func scripts() fs.FS {
	return phonebook.OverlayFS(localScripts, phonebook.Scripts)
}

// --- Shell command ---

// ShellCmd reads commands from stdin until EOF or quit.
type ShellCmd struct {
	NoPrompt bool `help:"Never print the prompt, even on a terminal." default:"false"`
}

// Run builds real dependencies and starts the session on stdin.
func (c *ShellCmd) Run() error {
	cfg, logger, err := setup()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var browse session.BrowseFunc
	if isTerminal(os.Stdout) {
		browse = runDashboard
	}
	interactive := !c.NoPrompt && isTerminal(os.Stdin)
	return c.run(os.Stdin, os.Stdout, cfg, logger, interactive, browse)
}

// run executes the session with the given wiring, enabling testable I/O.
func (c *ShellCmd) run(in io.Reader, w io.Writer, cfg *config.Config, logger *zap.Logger, interactive bool, browse session.BrowseFunc) error {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithStyle(cfg.Output.Style),
	}
	if interactive {
		opts = append(opts, session.WithPrompt(cfg.Shell.Prompt))
	}
	if browse != nil {
		opts = append(opts, session.WithBrowser(browse))
	}

	s := session.New(nil, w, opts...)
	if err := s.Run(in); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	logger.Debug("shell finished", zap.Int("contacts", s.Book().Len()))
	return nil
}

// --- Demo command ---

// DemoCmd replays the walkthrough script, echoing each command.
type DemoCmd struct {
	Script string `help:"Script to replay; looked up in .phonebook/scripts, then the built-in set." default:"demo.txt"`
}

// Run builds real dependencies and replays the script to stdout.
func (c *DemoCmd) Run() error {
	cfg, logger, err := setup()
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return c.run(os.Stdout, scripts(), cfg, logger)
}

// run replays c.Script from fsys, enabling testable wiring.
func (c *DemoCmd) run(w io.Writer, fsys fs.FS, cfg *config.Config, logger *zap.Logger) error {
	f, err := fsys.Open(c.Script)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer func() { _ = f.Close() }()

	s := session.New(nil, w,
		session.WithLogger(logger),
		session.WithStyle(cfg.Output.Style),
		session.WithPrompt(cfg.Shell.Prompt),
		session.WithEcho(true),
	)
	if err := s.Replay(f); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}

// --- Browse command ---

// BrowseCmd opens the dashboard TUI.
type BrowseCmd struct {
	Demo bool `help:"Seed the book from the demo script." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the dashboard TUI.
func (c *BrowseCmd) Run() error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}

	_, logger, err := setup()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	b := book.New()
	if c.Demo {
		if err := seedBook(b, scripts(), phonebook.DemoScript, logger); err != nil {
			return fmt.Errorf("browse: %w", err)
		}
	}
	return c.run(true, newProgram(b))
}

// run executes the tea program, enabling testable wiring.
func (c *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// seedBook replays a script into b, discarding its output.
func seedBook(b *book.Book, fsys fs.FS, name string, logger *zap.Logger) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	s := session.New(b, io.Discard, session.WithLogger(logger))
	if err := s.Replay(f); err != nil {
		return err
	}
	logger.Debug("seeded book", zap.String("script", name), zap.Int("contacts", b.Len()))
	return nil
}

func newProgram(b *book.Book) *tea.Program {
	return tea.NewProgram(dashboard.NewModel(b), tea.WithAltScreen())
}

// runDashboard is the shell's browse hook.
func runDashboard(b *book.Book) error {
	_, err := newProgram(b).Run()
	return err
}

const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *session.ScriptError
	if errors.As(err, &se) {
		return exitCommand
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("In-memory contact book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
