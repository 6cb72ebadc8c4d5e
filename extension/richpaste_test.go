package extension

import (
	"testing"

	"github.com/iw2rmb/richtext/document"
	"github.com/iw2rmb/richtext/editor"
)

func TestRichPaste(t *testing.T) {
	tests := []struct {
		name string
		opt  Options
		data editor.MIMEData
		want string
	}{
		{
			name: "marks links and blocks",
			opt:  allModules,
			data: editor.MIMEData{
				"text/html":  `<p>a <b>b</b></p><p>c <a href="https://x.io">x</a></p>`,
				"text/plain": "a b\nc x",
			},
			want: `paragraph["a " "b"+bold] paragraph["c " link(https://x.io)["x"] ""]`,
		},
		{
			name: "list items become lines",
			opt:  allModules,
			data: editor.MIMEData{"text/html": "<ul><li>a</li><li>b</li></ul>"},
			want: `paragraph["a"] paragraph["b"]`,
		},
		{
			name: "plain text only",
			opt:  allModules,
			data: editor.MIMEData{"text/plain": "x y"},
			want: `paragraph["x y"]`,
		},
		{
			name: "markup without text falls back",
			opt:  allModules,
			data: editor.MIMEData{"text/html": "<p><img src=\"a.png\"></p>", "text/plain": "img"},
			want: `paragraph["img"]`,
		},
		{
			name: "disabled uses plain text",
			opt:  Options{},
			data: editor.MIMEData{"text/html": "<b>x</b>", "text/plain": "x"},
			want: `paragraph["x"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.opt)
			if err := e.InsertData(tt.data); err != nil {
				t.Fatalf("paste: %v", err)
			}
			if got := tree(e); got != tt.want {
				t.Fatalf("tree=%s, want %s", got, tt.want)
			}
		})
	}
}

func TestRichPaste_CaretAfterContent(t *testing.T) {
	e := newEditor(t, allModules)
	if err := e.InsertData(editor.MIMEData{"text/html": `<p>a <b>b</b></p><p>c <a href="https://x.io">x</a></p>`}); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if got := caret(t, e); !got.Equal(pt(0, 1, 2)) {
		t.Fatalf("caret=%s, want [1 2]@0", got)
	}

	typeText(t, e, "!")
	if got, want := tree(e), `paragraph["a " "b"+bold] paragraph["c " link(https://x.io)["x"] "!"]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestRichPaste_ReplacesSelection(t *testing.T) {
	e := newEditor(t, allModules, document.NewParagraph(document.NewText("hello")))
	if err := e.SelectAll(); err != nil {
		t.Fatalf("select all: %v", err)
	}
	if err := e.InsertData(editor.MIMEData{"text/html": "<i>x</i>"}); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if got, want := tree(e), `paragraph["x"+italic]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
	if got := caret(t, e); !got.Equal(pt(1, 0, 0)) {
		t.Fatalf("caret=%s, want [0 0]@1", got)
	}
}

func TestRichPaste_InsideText(t *testing.T) {
	e := newEditor(t, allModules, document.NewParagraph(document.NewText("ad")))
	if err := e.Select(document.Collapsed(pt(1, 0, 0))); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := e.InsertData(editor.MIMEData{"text/html": "<span>bc</span>"}); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if got, want := tree(e), `paragraph["abcd"]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
	if got := caret(t, e); !got.Equal(pt(3, 0, 0)) {
		t.Fatalf("caret=%s, want [0 0]@3", got)
	}
}
