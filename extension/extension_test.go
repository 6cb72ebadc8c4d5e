package extension

import (
	"testing"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

var allModules = Options{BulletList: true, MarkdownShortcuts: true, RichPaste: true}

func newEditor(t *testing.T, opt Options, nodes ...document.Node) *editor.Editor {
	t.Helper()
	if len(nodes) == 0 {
		nodes = []document.Node{document.NewParagraph()}
	}
	e := editor.New(nodes, editor.Options{Plugins: Plugins(opt)})
	end, err := e.End(nil)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := e.Select(document.Collapsed(end)); err != nil {
		t.Fatalf("select: %v", err)
	}
	return e
}

func typeText(t *testing.T, e *editor.Editor, s string) {
	t.Helper()
	for _, r := range s {
		if err := e.InsertText(string(r)); err != nil {
			t.Fatalf("type %q: %v", r, err)
		}
	}
}

func tree(e *editor.Editor) string { return document.StringAll(e.Children()) }

func caret(t *testing.T, e *editor.Editor) document.Point {
	t.Helper()
	sel, ok := e.Selection()
	if !ok || !sel.IsCollapsed() {
		t.Fatalf("selection=%v ok=%v, want collapsed", sel, ok)
	}
	return sel.Anchor
}

func pt(off int, path ...int) document.Point {
	return document.Point{Path: document.Path(path), Offset: off}
}

func TestModules_CompositionOrder(t *testing.T) {
	tests := []struct {
		opt  Options
		want []string
	}{
		{opt: allModules, want: []string{"prime-marks", "bullet-list", "markdown-shortcuts", "rich-paste", "auto-link", "normalizer"}},
		{opt: Options{BulletList: true, MarkdownShortcuts: true}, want: []string{"prime-marks", "bullet-list", "markdown-shortcuts", "auto-link", "normalizer"}},
		{opt: Options{MarkdownShortcuts: true}, want: []string{"prime-marks", "markdown-shortcuts", "auto-link", "normalizer"}},
		{opt: Options{}, want: []string{"prime-marks", "auto-link", "normalizer"}},
	}
	for _, tt := range tests {
		ms := Modules(tt.opt)
		if len(ms) != len(tt.want) {
			t.Fatalf("modules=%d, want %d", len(ms), len(tt.want))
		}
		for i, m := range ms {
			if m.Name != tt.want[i] || m.Plugin == nil {
				t.Fatalf("module %d=%q, want %q", i, m.Name, tt.want[i])
			}
		}
		if got := len(Plugins(tt.opt)); got != len(tt.want) {
			t.Fatalf("plugins=%d, want %d", got, len(tt.want))
		}
	}
}

// A URL typed right after a markdown span: the markdown shortcut fires on
// its own keystroke, the space then reaches AutoLink first.
func TestModules_ShortcutThenLinkOnSpace(t *testing.T) {
	e := newEditor(t, allModules)
	typeText(t, e, "*see* x.io ")

	want := `paragraph["see"+bold " " link(x.io)["x.io"] " "]`
	if got := tree(e); got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestScenario_AutoLink(t *testing.T) {
	e := newEditor(t, allModules)
	typeText(t, e, "check https://example.com ")

	want := `paragraph["check " link(https://example.com)["https://example.com"] " "]`
	if got := tree(e); got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
	if got := caret(t, e); !got.Equal(pt(1, 0, 2)) {
		t.Fatalf("caret=%s, want [0 2]@1", got)
	}
}

func TestScenario_MarkdownShortcut(t *testing.T) {
	e := newEditor(t, allModules)
	typeText(t, e, "*hello* ")

	if got, want := tree(e), `paragraph["hello"+bold " "]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestScenario_BulletList(t *testing.T) {
	e := newEditor(t, allModules)
	typeText(t, e, "- ")
	if got, want := tree(e), `bullet-list[list-item[""]]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}

	if err := e.InsertBreak(); err != nil {
		t.Fatalf("break: %v", err)
	}
	if got, want := tree(e), `paragraph[""]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
	if err := e.InsertBreak(); err != nil {
		t.Fatalf("break: %v", err)
	}
	if got, want := tree(e), `paragraph[""] paragraph[""]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestScenario_PendingMarks(t *testing.T) {
	e := newEditor(t, allModules)
	if err := e.ToggleMark(document.Bold); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	typeText(t, e, "hi")

	if got, want := tree(e), `paragraph["hi"+bold]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
	if got := e.PendingMarks(); len(got) != 0 {
		t.Fatalf("pending=%v, want empty after typing", got)
	}
}

func TestScenario_EmptyLinkRemoved(t *testing.T) {
	e := newEditor(t, allModules, document.NewParagraph(document.NewText("ab")))
	if err := e.InsertNodes(document.Path{0, 1}, &document.Element{Type: document.Link, URL: "https://x.io"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got, want := tree(e), `paragraph["ab"]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestScenario_EmptyDetection(t *testing.T) {
	if !document.IsEmpty([]document.Node{document.NewParagraph(document.NewText(" \t "))}) {
		t.Fatalf("expected whitespace-only paragraph to be empty")
	}
	if document.IsEmpty([]document.Node{document.NewParagraph(document.NewText(" "), document.NewLink("https://x.io", "x"))}) {
		t.Fatalf("expected link text to make the document non-empty")
	}
}
