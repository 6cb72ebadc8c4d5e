package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/document"
)

func TestRender_Blocks(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []body.Block
		width   int
		focused bool
		want    string
	}{
		{
			name:   "paragraphs and bullets",
			blocks: []body.Block{body.Paragraph(body.Text("hello")), body.BulletList(body.Item(body.Text("a")), body.Item(body.Text("b")))},
			width:  40,
			want:   "hello\n• a\n• b",
		},
		{
			name:    "cursor at end",
			blocks:  []body.Block{body.Paragraph(body.Text("hello")), body.BulletList(body.Item(body.Text("a")), body.Item(body.Text("b")))},
			width:   40,
			focused: true,
			want:    "hello\n• a\n• b[ ]",
		},
		{
			name:   "soft break",
			blocks: []body.Block{body.Paragraph(body.Text("a\nb"))},
			width:  40,
			want:   "a\nb",
		},
		{
			name:   "soft break in item keeps indent",
			blocks: []body.Block{body.BulletList(body.Item(body.Text("a\nb")))},
			width:  40,
			want:   "• a\n  b",
		},
		{
			name:   "word wrap",
			blocks: []body.Block{body.Paragraph(body.Text("aaa bbb"))},
			width:  5,
			want:   "aaa \nbbb",
		},
		{
			name:    "cursor on last wrapped row",
			blocks:  []body.Block{body.Paragraph(body.Text("aaa bbb"))},
			width:   5,
			focused: true,
			want:    "aaa \nbbb[ ]",
		},
		{
			name:   "long word breaks anywhere",
			blocks: []body.Block{body.Paragraph(body.Text("abcdefg"))},
			width:  3,
			want:   "abc\ndef\ng",
		},
		{
			name:   "link and marks",
			blocks: []body.Block{body.Paragraph(body.Text("go ", document.Bold), body.Link("https://go.dev", "go.dev"))},
			width:  40,
			want:   "go go.dev",
		},
		{
			name:   "empty paragraph between",
			blocks: []body.Block{body.Paragraph(body.Text("a")), body.Paragraph(), body.Paragraph(body.Text("b"))},
			width:  40,
			want:   "a\n\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(Config{}, tt.blocks...).SetSize(tt.width, 10)
			if !tt.focused {
				m = m.Blur()
			}
			if got := m.renderContent(); got != tt.want {
				t.Fatalf("render:\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestRender_Placeholder(t *testing.T) {
	m := newModel(Config{Placeholder: "Say hi"})
	if got, want := m.renderContent(), "[S]ay hi"; got != want {
		t.Fatalf("focused placeholder: got %q, want %q", got, want)
	}
	m = m.Blur()
	if got, want := m.renderContent(), "Say hi"; got != want {
		t.Fatalf("blurred placeholder: got %q, want %q", got, want)
	}

	m = m.Focus()
	m = typeKeys(m, "x")
	if got, want := m.renderContent(), "x[ ]"; got != want {
		t.Fatalf("after typing: got %q, want %q", got, want)
	}
}

func TestRender_CursorInsideText(t *testing.T) {
	m := newModel(Config{}, body.Paragraph(body.Text("abc")))
	m = press(m, keyMsg("left"))
	if got, want := m.renderContent(), "ab[c]"; got != want {
		t.Fatalf("render: got %q, want %q", got, want)
	}
}

func TestRender_StylesMarksLinksAndSelection(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	st := Style{
		Text:      r.NewStyle(),
		Bold:      r.NewStyle().Bold(true),
		Italic:    r.NewStyle().Italic(true),
		Link:      r.NewStyle().Underline(true),
		Bullet:    r.NewStyle(),
		Selection: r.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    r.NewStyle().Reverse(true),
	}

	m := New(Config{
		Composer: composerWith(body.Paragraph(body.Text("a", document.Bold), body.Text("b"), body.Link("https://x.io", "x"))),
		Style:    st,
		KeyMap:   DefaultKeyMap(),
	}).SetSize(40, 3)
	m = m.Blur()

	got := m.renderContent()
	want := st.Bold.Inherit(st.Text).Render("a") + st.Text.Render("b") + st.Link.Inherit(st.Text).Render("x")
	if got != want {
		t.Fatalf("marks:\n got: %q\nwant: %q", got, want)
	}

	m = m.Focus()
	ed := m.Composer().Editor()
	if err := ed.Select(document.Range{
		Anchor: document.Point{Path: document.Path{0, 0}, Offset: 0},
		Focus:  document.Point{Path: document.Path{0, 1}, Offset: 1},
	}); err != nil {
		t.Fatalf("select: %v", err)
	}
	got = m.renderContent()
	want = st.Selection.Inherit(st.Bold.Inherit(st.Text)).Render("a") +
		st.Selection.Inherit(st.Text).Render("b") +
		st.Cursor.Inherit(st.Link.Inherit(st.Text)).Render("x")
	if got != want {
		t.Fatalf("selection:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_ToolbarOverActiveRange(t *testing.T) {
	m := newModel(Config{Toolbar: true}, body.Paragraph(body.Text("hello")))
	if strings.Contains(m.View(), " B  I  S  <> ") {
		t.Fatalf("toolbar shown without a selection range:\n%s", m.View())
	}

	m = press(m, keyMsg("ctrl+a"))
	if !m.Composer().State().SelectionRangeActive {
		t.Fatalf("selection range not active after select all")
	}
	lines := strings.Split(m.View(), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[1], " B  I  S  <> ") {
		t.Fatalf("toolbar not below the first row:\n%q", lines)
	}
	if !strings.HasPrefix(lines[0], "hello") {
		t.Fatalf("content row overwritten: %q", lines[0])
	}

	m = press(m, keyMsg("esc"))
	if strings.Contains(m.View(), " B  I  S  <> ") {
		t.Fatalf("toolbar shown after escape:\n%s", m.View())
	}
}

func TestLayout_Locate(t *testing.T) {
	nodes := []document.Node{
		document.NewParagraph(document.NewText("a\nbc")),
		document.NewBulletList(document.NewListItem(document.NewText("d"))),
	}
	lay := buildLayout(nodes, 0, 4)
	if got := len(lay.lines); got != 3 {
		t.Fatalf("lines: got %d, want 3", got)
	}

	tests := []struct {
		pt   document.Point
		line int
		col  int
	}{
		{pt: document.Point{Path: document.Path{0, 0}, Offset: 0}, line: 0, col: 0},
		{pt: document.Point{Path: document.Path{0, 0}, Offset: 1}, line: 0, col: 1},
		{pt: document.Point{Path: document.Path{0, 0}, Offset: 2}, line: 1, col: 0},
		{pt: document.Point{Path: document.Path{0, 0}, Offset: 4}, line: 1, col: 2},
		{pt: document.Point{Path: document.Path{1, 0, 0}, Offset: 1}, line: 2, col: 1},
	}
	for _, tt := range tests {
		li, col, ok := lay.locate(tt.pt)
		if !ok || li != tt.line || col != tt.col {
			t.Fatalf("locate(%v): got (%d,%d,%v), want (%d,%d,true)", tt.pt, li, col, ok, tt.line, tt.col)
		}
	}
}
