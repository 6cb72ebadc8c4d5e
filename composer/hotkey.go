package composer

import (
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"
)

// goos decides what "mod" means in a chord.
var goos = runtime.GOOS

// KeyEvent is a key press reported by the host. Key uses DOM-style names:
// "Enter", "Escape", "ArrowLeft", or the typed character.
type KeyEvent struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

// Hotkey is a parsed chord such as "mod+shift+s".
type Hotkey struct {
	Key   string
	Alt   bool
	Ctrl  bool
	Meta  bool
	Shift bool
}

// ParseHotkey parses a "+"-separated chord whose last part is the key.
// Modifiers are alt, ctrl, meta, shift and mod, which is meta on Apple
// platforms and ctrl elsewhere.
func ParseHotkey(s string) (Hotkey, error) {
	parts := strings.Split(s, "+")
	var h Hotkey
	h.Key = parts[len(parts)-1]
	if h.Key == "" {
		return Hotkey{}, fmt.Errorf("%w %q: missing key", ErrInvalidHotkey, s)
	}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "alt", "option":
			h.Alt = true
		case "ctrl", "control":
			h.Ctrl = true
		case "meta", "cmd", "command":
			h.Meta = true
		case "shift":
			h.Shift = true
		case "mod":
			if isApple(goos) {
				h.Meta = true
			} else {
				h.Ctrl = true
			}
		default:
			return Hotkey{}, fmt.Errorf("%w %q: unknown modifier %q", ErrInvalidHotkey, s, p)
		}
	}
	return h, nil
}

func isApple(os string) bool { return os == "darwin" || os == "ios" }

// Matches reports whether ev is exactly this chord. Single letters compare
// case-insensitively since shift changes the reported character.
func (h Hotkey) Matches(ev KeyEvent) bool {
	if h.Alt != ev.Alt || h.Ctrl != ev.Ctrl || h.Meta != ev.Meta || h.Shift != ev.Shift {
		return false
	}
	if utf8.RuneCountInString(h.Key) == 1 {
		return strings.EqualFold(h.Key, ev.Key)
	}
	return h.Key == ev.Key
}

func (h Hotkey) String() string {
	var parts []string
	if h.Ctrl {
		parts = append(parts, "ctrl")
	}
	if h.Alt {
		parts = append(parts, "alt")
	}
	if h.Meta {
		parts = append(parts, "meta")
	}
	if h.Shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, h.Key), "+")
}

// Shortcuts binds commands to chords. Empty fields take the defaults.
type Shortcuts struct {
	Submit        string `toml:"submit" yaml:"submit"`
	HardBreak     string `toml:"hard_break" yaml:"hard_break"`
	SoftBreak     string `toml:"soft_break" yaml:"soft_break"`
	Bold          string `toml:"bold" yaml:"bold"`
	Italic        string `toml:"italic" yaml:"italic"`
	Strikethrough string `toml:"strikethrough" yaml:"strikethrough"`
	Code          string `toml:"code" yaml:"code"`
}

func DefaultShortcuts() Shortcuts {
	return Shortcuts{
		Submit:        "mod+Enter",
		HardBreak:     "Enter",
		SoftBreak:     "shift+Enter",
		Bold:          "mod+b",
		Italic:        "mod+i",
		Strikethrough: "mod+shift+s",
		Code:          "mod+e",
	}
}

func (s Shortcuts) withDefaults() Shortcuts {
	d := DefaultShortcuts()
	for _, f := range []struct{ v, def *string }{
		{&s.Submit, &d.Submit},
		{&s.HardBreak, &d.HardBreak},
		{&s.SoftBreak, &d.SoftBreak},
		{&s.Bold, &d.Bold},
		{&s.Italic, &d.Italic},
		{&s.Strikethrough, &d.Strikethrough},
		{&s.Code, &d.Code},
	} {
		if *f.v == "" {
			*f.v = *f.def
		}
	}
	return s
}

// Validate parses every non-empty chord.
func (s Shortcuts) Validate() error {
	for _, chord := range []string{s.Submit, s.HardBreak, s.SoftBreak, s.Bold, s.Italic, s.Strikethrough, s.Code} {
		if chord == "" {
			continue
		}
		if _, err := ParseHotkey(chord); err != nil {
			return err
		}
	}
	return nil
}

type binding int

const (
	bindSubmit binding = iota
	bindHardBreak
	bindSoftBreak
	bindBold
	bindItalic
	bindStrikethrough
	bindCode
	bindCount
)

// keymap holds the parsed chords in dispatch order.
type keymap [bindCount]Hotkey

// compile parses s; an invalid chord falls back to its default and is
// returned in errs.
func (s Shortcuts) compile() (keymap, []error) {
	s = s.withDefaults()
	d := DefaultShortcuts()
	chords := [bindCount][2]string{
		{s.Submit, d.Submit},
		{s.HardBreak, d.HardBreak},
		{s.SoftBreak, d.SoftBreak},
		{s.Bold, d.Bold},
		{s.Italic, d.Italic},
		{s.Strikethrough, d.Strikethrough},
		{s.Code, d.Code},
	}
	var km keymap
	var errs []error
	for i, c := range chords {
		h, err := ParseHotkey(c[0])
		if err != nil {
			errs = append(errs, err)
			h, _ = ParseHotkey(c[1])
		}
		km[i] = h
	}
	return km, errs
}
