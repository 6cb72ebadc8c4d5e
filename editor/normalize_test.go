package editor

import (
	"errors"
	"testing"

	"github.com/iw2rmb/richtext/document"
)

func TestNormalizeAll_RepairsShape(t *testing.T) {
	tests := []struct {
		name  string
		nodes []document.Node
		want  string
	}{
		{
			name:  "childless element",
			nodes: []document.Node{document.NewElement(document.Paragraph)},
			want:  `paragraph[""]`,
		},
		{
			name:  "text at root",
			nodes: []document.Node{document.NewText("a"), document.NewText("b", document.Bold), document.NewParagraph(document.NewText("c"))},
			want:  `paragraph["a" "b"+bold] paragraph["c"]`,
		},
		{
			name:  "adjacent equal marks",
			nodes: []document.Node{document.NewParagraph(document.NewText("a", document.Italic), document.NewText("b", document.Italic), document.NewText("c"))},
			want:  `paragraph["ab"+italic "c"]`,
		},
		{
			name:  "empty texts between marks",
			nodes: []document.Node{document.NewParagraph(document.NewText("a", document.Bold), document.NewText(""), document.NewText("b", document.Code))},
			want:  `paragraph["a"+bold "b"+code]`,
		},
		{
			name:  "block inside paragraph",
			nodes: []document.Node{document.NewParagraph(document.NewText("a"), document.NewParagraph(document.NewText("b")))},
			want:  `paragraph["ab"]`,
		},
		{
			name:  "inline link padded with texts",
			nodes: []document.Node{document.NewParagraph(document.NewLink("https://x.io", "x"))},
			want:  `paragraph["" link(https://x.io)["x"] ""]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.nodes, Options{Plugins: []Plugin{inlineLinks}})
			if err := e.NormalizeAll(); err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if got := tree(e); got != tt.want {
				t.Fatalf("tree=%s, want %s", got, tt.want)
			}

			ops := e.OperationCount()
			if err := e.NormalizeAll(); err != nil {
				t.Fatalf("normalize again: %v", err)
			}
			if got := e.OperationCount(); got != ops {
				t.Fatalf("second pass applied %d ops, want 0", got-ops)
			}
		})
	}
}

func TestWithoutNormalizing_DefersToEnd(t *testing.T) {
	e := newAt(t, pt(0, 0, 0), Options{}, document.NewParagraph(document.NewText("a")))

	err := e.WithoutNormalizing(func() error {
		if e.IsNormalizing() {
			t.Fatalf("expected normalization suppressed")
		}
		if err := e.insertNode(document.Path{0, 1}, document.NewText("b")); err != nil {
			return err
		}
		if got, want := tree(e), `paragraph["a" "b"]`; got != want {
			t.Fatalf("tree=%s, want %s", got, want)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("without normalizing: %v", err)
	}
	if !e.IsNormalizing() {
		t.Fatalf("expected normalization restored")
	}
	if got, want := tree(e), `paragraph["ab"]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestWithoutNormalizing_RestoresOnPanic(t *testing.T) {
	e := New([]document.Node{document.NewParagraph()}, Options{})
	func() {
		defer func() { _ = recover() }()
		_ = e.WithoutNormalizing(func() error { panic("boom") })
	}()
	if !e.IsNormalizing() {
		t.Fatalf("expected normalization restored")
	}
}

func TestNormalize_GivesUpOnLoop(t *testing.T) {
	grow := func(e *Editor, next Handlers) Handlers {
		return Handlers{
			NormalizeNode: func(entry Entry) error {
				if document.Is(entry.Node, document.Paragraph) {
					return e.insertNode(entry.Path.Append(0), document.NewText("x", document.Bold))
				}
				return next.NormalizeNode(entry)
			},
		}
	}
	e := newAt(t, pt(0, 0, 0), Options{Plugins: []Plugin{grow}}, document.NewParagraph())

	err := e.InsertText("a")
	if !errors.Is(err, ErrNormalizeLimit) {
		t.Fatalf("err=%v, want ErrNormalizeLimit", err)
	}
	if !e.IsNormalizing() {
		t.Fatalf("expected normalization restored")
	}
}
