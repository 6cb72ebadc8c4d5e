package body

import (
	"errors"
	"testing"

	"github.com/iw2rmb/richtext/document"
)

func TestParse(t *testing.T) {
	data := `{"content":[
		{"type":"paragraph","children":[
			{"text":"hi "},
			{"text":"there","bold":true,"italic":true},
			{"type":"link","url":"https://x.io","text":"x"},
			{"type":"mention","id":"u1"}
		]},
		{"type":"heading","children":[{"text":"dropped"}]},
		{"type":"bullet-list","children":[
			{"type":"list-item","children":[{"text":"one","code":true}]},
			{"type":"quote","children":[{"text":"dropped"}]},
			{"type":"list-item","children":[{"text":"two","strikethrough":true}]}
		]}
	]}`

	b, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := `paragraph["hi " "there"+bold+italic link(https://x.io)["x"]] ` +
		`bullet-list[list-item["one"+code] list-item["two"+strikethrough]]`
	if got := document.StringAll(ToTree(b)); got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"content":`},
		{name: "not an object", data: `[1,2]`},
		{name: "content not array", data: `{"content":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidJSON) {
				t.Fatalf("err=%v, want %v", err, ErrInvalidJSON)
			}
		})
	}
}

func TestParse_MissingContent(t *testing.T) {
	b, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(b.Content) != 0 {
		t.Fatalf("content=%d, want 0", len(b.Content))
	}
}

func TestMarshal(t *testing.T) {
	nodes := []document.Node{
		document.NewParagraph(
			document.NewText("a"),
			document.NewText("b", document.Bold, document.Code),
			document.NewLink("https://x.io", "x"),
			document.NewText(""),
		),
		document.NewBulletList(document.NewListItem(document.NewText("i", document.Italic))),
	}
	got, err := Marshal(FromTree(nodes))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"content":[` +
		`{"type":"paragraph","children":[{"text":"a"},{"text":"b","bold":true,"code":true},{"type":"link","url":"https://x.io","text":"x"},{"text":""}]},` +
		`{"type":"bullet-list","children":[{"type":"list-item","children":[{"text":"i","italic":true}]}]}` +
		`]}`
	if string(got) != want {
		t.Fatalf("json=%s, want %s", got, want)
	}
}

func TestEmptyDocument(t *testing.T) {
	got, err := Marshal(FromTree(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"content":[]}` {
		t.Fatalf("json=%s, want {\"content\":[]}", got)
	}
	if got, err = Marshal(Body{}); err != nil || string(got) != `{"content":[]}` {
		t.Fatalf("zero body json=%s err=%v", got, err)
	}

	b, err := Parse([]byte(`{"content":[]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n := len(ToTree(b)); n != 0 {
		t.Fatalf("tree nodes=%d, want 0", n)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := [][]document.Node{
		{document.NewParagraph()},
		{
			document.NewParagraph(document.NewText("x", document.Strikethrough), document.NewLink("localhost:3000", "local"), document.NewText("")),
			document.NewBulletList(
				document.NewListItem(document.NewText("a")),
				document.NewListItem(document.NewText("b", document.Bold, document.Italic)),
			),
			document.NewParagraph(document.NewText("tail")),
		},
	}
	for _, doc := range docs {
		want := document.StringAll(doc)

		data, err := Marshal(FromTree(doc))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		b, err := Parse(data)
		if err != nil {
			t.Fatalf("parse %s: %v", data, err)
		}
		if got := document.StringAll(ToTree(b)); got != want {
			t.Fatalf("tree=%s, want %s", got, want)
		}

		again, err := Marshal(b)
		if err != nil {
			t.Fatalf("marshal again: %v", err)
		}
		if string(again) != string(data) {
			t.Fatalf("json=%s, want %s", again, data)
		}
	}
}

func TestBody_UnmarshalJSON(t *testing.T) {
	var b Body
	if err := b.UnmarshalJSON([]byte(`{"content":[{"type":"paragraph","children":[{"text":"ok"}]}]}`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := b.PlainText(); got != "ok" {
		t.Fatalf("text=%q, want %q", got, "ok")
	}
}

func TestBody_PlainText(t *testing.T) {
	b := Body{Content: []Block{
		Paragraph(Text("see "), Link("https://x.io", "x")),
		BulletList(Item(Text("a")), Item(Text("b", document.Bold))),
	}}
	if got, want := b.PlainText(), "see x\n- a\n- b"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.IsEmpty() {
		t.Fatalf("expected non-empty body")
	}
	if !(Body{Content: []Block{Paragraph(Text("  "))}}).IsEmpty() {
		t.Fatalf("expected whitespace body to be empty")
	}
}
