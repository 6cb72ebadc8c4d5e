package main

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/iw2rmb/richtext/body"
	"github.com/iw2rmb/richtext/document"
)

func TestSerialize(t *testing.T) {
	b := body.Body{Content: []body.Block{body.Paragraph(body.Text("hi "), body.Text("there", document.Bold))}}

	out := serialize(b, "json", "s-1")
	if got := gjson.Get(out, "session").String(); got != "s-1" {
		t.Fatalf("session=%q, want s-1 in %s", got, out)
	}
	if got := gjson.Get(out, "content.0.children.1.bold").Bool(); !got {
		t.Fatalf("bold=false in %s", out)
	}
	back, err := body.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := back.PlainText(), "hi there"; got != want {
		t.Fatalf("plain=%q, want %q", got, want)
	}

	if got := serialize(b, "markdown", "s-1"); !strings.Contains(got, "hi **there**") {
		t.Fatalf("markdown=%q", got)
	}
	if got, want := serialize(b, "text", "s-1"), "hi there"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
