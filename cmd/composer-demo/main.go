// Command composer-demo hosts a rich-text composer in the terminal and
// prints every submitted message above it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/sjson"

	"github.com/iw2rmb/richtext"
	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/composer"
	"github.com/iw2rmb/richtext/tui"
)

type options struct {
	configPath string
	watch      bool
	format     string
	height     int
	logPath    string
	toolbar    bool
}

type model struct {
	editor tui.Model
	format string
	height int
	outbox *[]string
}

func newModel(opts options, fileCfg composer.FileConfig) model {
	m := model{format: opts.format, height: opts.height, outbox: new([]string)}

	copt := composer.Options{
		KeepFocusOnSubmit: true,
		Development:       opts.logPath != "",
	}
	copt.Shortcuts = tui.TerminalShortcuts()
	copt.OnSubmit = func(b body.Body) composer.Pending {
		*m.outbox = append(*m.outbox, serialize(b, m.format, m.editor.Composer().SessionID()))
		return nil
	}

	m.editor = tui.New(tui.Config{
		Composer:    copt,
		Placeholder: "Write a message. alt+enter sends, ctrl+q quits.",
		Style:       tui.DefaultStyle(),
		KeyMap:      tui.DefaultKeyMap(),
		Clipboard:   &memClipboard{},
		Toolbar:     opts.toolbar,
	})
	m.editor.Composer().Reconfigure(fileCfg)
	return m
}

// serialize renders a submitted body. JSON output carries the session the
// message was composed in.
func serialize(b body.Body, format, session string) string {
	switch format {
	case "markdown":
		return b.Markdown()
	case "html":
		return b.HTML()
	case "text":
		return b.PlainText()
	default:
		data, err := body.Marshal(b)
		if err == nil {
			data, err = sjson.SetBytes(data, "session", session)
		}
		if err != nil {
			return "error: " + err.Error()
		}
		return string(data)
	}
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, min(msg.Height, m.height))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		if !m.editor.Focused() {
			m.editor = m.editor.Focus()
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	cmds := []tea.Cmd{cmd}
	for _, s := range *m.outbox {
		cmds = append(cmds, tea.Println(s))
	}
	*m.outbox = (*m.outbox)[:0]
	return m, tea.Batch(cmds...)
}

func (m model) View() string { return m.editor.View() }

// watchConfig reconfigures the composer on the Update goroutine whenever
// the config file changes.
func watchConfig(ctx context.Context, m model, path string) {
	err := composer.WatchConfig(ctx, path, func(cfg composer.FileConfig, err error) {
		if err != nil {
			slog.Warn("composer-demo: config reload failed", "path", path, "err", err)
			return
		}
		m.editor.Schedule(func() {
			m.editor.Composer().Reconfigure(cfg)
			slog.Info("composer-demo: config reloaded", "path", path)
		})
	})
	if err != nil {
		slog.Warn("composer-demo: config watch stopped", "path", path, "err", err)
	}
}

// memClipboard keeps copied text inside the process.
type memClipboard struct{ text string }

func (c *memClipboard) ReadText() (string, error) { return c.text, nil }
func (c *memClipboard) WriteText(s string) error  { c.text = s; return nil }

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("composer-demo %s\n", richtext.VersionTag())
		return 0
	}

	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(l)
		composer.SetLogger(l)
	}

	var fileCfg composer.FileConfig
	if opts.configPath != "" {
		cfg, err := composer.LoadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fileCfg = cfg
	}

	m := newModel(opts, fileCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.watch && opts.configPath != "" {
		go watchConfig(ctx, m, opts.configPath)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML composer config")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the config file when it changes")
	flag.StringVar(&opts.format, "format", "json", "Output format for submitted messages: json, markdown, html or text")
	flag.IntVar(&opts.height, "height", 6, "Rows used by the composer")
	flag.StringVar(&opts.logPath, "log", "", "Write debug logs to this file")
	flag.BoolVar(&opts.toolbar, "toolbar", true, "Show the mark toolbar over a selection")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	switch opts.format {
	case "json", "markdown", "html", "text":
	default:
		fmt.Fprintf(os.Stderr, "unknown -format %q, using json\n", opts.format)
		opts.format = "json"
	}
	return opts, showVersion
}
