package composer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig is the part of Options that can live in a config file.
type FileConfig struct {
	Shortcuts Shortcuts `toml:"shortcuts" yaml:"shortcuts"`

	BulletList        *bool `toml:"bullet_list" yaml:"bullet_list"`
	MarkdownShortcuts *bool `toml:"markdown_shortcuts" yaml:"markdown_shortcuts"`
	RichPaste         *bool `toml:"rich_paste" yaml:"rich_paste"`

	KeepFocusOnSubmit *bool `toml:"keep_focus_on_submit" yaml:"keep_focus_on_submit"`
	HistoryLimit      int   `toml:"history_limit" yaml:"history_limit"`
	Development       *bool `toml:"development" yaml:"development"`
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) config file.
func LoadConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FileConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format: "toml", "yaml" or "yml".
// Unknown keys are rejected and every shortcut must parse.
func ParseConfig(data []byte, format string) (FileConfig, error) {
	var cfg FileConfig
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return FileConfig{}, fmt.Errorf("parsing toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return FileConfig{}, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		return FileConfig{}, fmt.Errorf("%w %q", ErrConfigFormat, format)
	}
	if err := cfg.Shortcuts.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Apply copies the fields set in cfg onto opt.
func (cfg FileConfig) Apply(opt Options) Options {
	s := &opt.Shortcuts
	for _, f := range []struct{ dst, src *string }{
		{&s.Submit, &cfg.Shortcuts.Submit},
		{&s.HardBreak, &cfg.Shortcuts.HardBreak},
		{&s.SoftBreak, &cfg.Shortcuts.SoftBreak},
		{&s.Bold, &cfg.Shortcuts.Bold},
		{&s.Italic, &cfg.Shortcuts.Italic},
		{&s.Strikethrough, &cfg.Shortcuts.Strikethrough},
		{&s.Code, &cfg.Shortcuts.Code},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
	if cfg.BulletList != nil {
		opt.DisableBulletList = !*cfg.BulletList
	}
	if cfg.MarkdownShortcuts != nil {
		opt.DisableMarkdownShortcuts = !*cfg.MarkdownShortcuts
	}
	if cfg.RichPaste != nil {
		opt.DisableRichPaste = !*cfg.RichPaste
	}
	if cfg.KeepFocusOnSubmit != nil {
		opt.KeepFocusOnSubmit = *cfg.KeepFocusOnSubmit
	}
	if cfg.HistoryLimit != 0 {
		opt.HistoryLimit = cfg.HistoryLimit
	}
	if cfg.Development != nil {
		opt.Development = *cfg.Development
	}
	return opt
}

// Reconfigure applies cfg over the options the composer was created with,
// so keys removed from the file fall back to those options. Shortcuts and
// submit behaviour change in place. A changed module toggle or history
// limit rebuilds the editor: the document and selection survive, the undo
// history does not.
func (c *Composer) Reconfigure(cfg FileConfig) {
	c.Flush()
	opt := cfg.Apply(c.base)
	keys, errs := opt.Shortcuts.compile()
	for _, err := range errs {
		c.log.Warn("composer: shortcut ignored", "err", err)
	}
	rebuild := opt.DisableBulletList != c.opt.DisableBulletList ||
		opt.DisableMarkdownShortcuts != c.opt.DisableMarkdownShortcuts ||
		opt.DisableRichPaste != c.opt.DisableRichPaste ||
		opt.HistoryLimit != c.opt.HistoryLimit
	c.opt, c.keys = opt, keys

	if rebuild {
		sel, ok := c.ed.Selection()
		c.ed = c.newEditor(c.ed.Children())
		if ok {
			c.report("restore selection", c.ed.Select(sel))
		}
	}
	c.log.Debug("composer: reconfigured", "rebuild", rebuild, "session", c.session.String())
	c.derive()
}
