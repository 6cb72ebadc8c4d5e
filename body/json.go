package body

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iw2rmb/richtext/document"
)

// ErrInvalidJSON is returned when a body cannot be parsed.
var ErrInvalidJSON = errors.New("body: invalid json")

// Parse decodes a body. Blocks and inlines of unknown kinds are skipped;
// a missing content array yields an empty body.
func Parse(data []byte) (Body, error) {
	if !gjson.ValidBytes(data) {
		return Body{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Body{}, fmt.Errorf("%w: want object, got %s", ErrInvalidJSON, root.Type)
	}
	content := root.Get("content")
	if content.Exists() && !content.IsArray() {
		return Body{}, fmt.Errorf("%w: content is %s", ErrInvalidJSON, content.Type)
	}

	b := Body{Content: []Block{}}
	for _, blk := range content.Array() {
		switch BlockType(blk.Get("type").String()) {
		case ParagraphBlock:
			b.Content = append(b.Content, Paragraph(parseInlines(blk.Get("children"))...))
		case BulletListBlock:
			items := []ListItem{}
			for _, it := range blk.Get("children").Array() {
				if it.Get("type").String() != "list-item" {
					continue
				}
				items = append(items, Item(parseInlines(it.Get("children"))...))
			}
			b.Content = append(b.Content, BulletList(items...))
		}
	}
	return b, nil
}

func parseInlines(r gjson.Result) []Inline {
	out := []Inline{}
	r.ForEach(func(_, in gjson.Result) bool {
		switch in.Get("type").String() {
		case "link":
			out = append(out, Link(in.Get("url").String(), in.Get("text").String()))
		case "":
			if !in.Get("text").Exists() {
				return true
			}
			out = append(out, Inline{
				Kind: TextInline,
				Text: in.Get("text").String(),
				Marks: document.Marks{
					Bold:          in.Get("bold").Bool(),
					Italic:        in.Get("italic").Bool(),
					Strikethrough: in.Get("strikethrough").Bool(),
					Code:          in.Get("code").Bool(),
				},
			})
		}
		return true
	})
	return out
}

// Marshal encodes b.
func Marshal(b Body) ([]byte, error) { return json.Marshal(b) }

func (b Body) MarshalJSON() ([]byte, error) {
	content := b.Content
	if content == nil {
		content = []Block{}
	}
	return json.Marshal(struct {
		Content []Block `json:"content"`
	}{content})
}

func (b *Body) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

type inlineList []Inline

func (l inlineList) MarshalJSON() ([]byte, error) {
	if l == nil {
		l = inlineList{}
	}
	return json.Marshal([]Inline(l))
}

func (blk Block) MarshalJSON() ([]byte, error) {
	switch blk.Type {
	case ParagraphBlock:
		return json.Marshal(struct {
			Type     BlockType  `json:"type"`
			Children inlineList `json:"children"`
		}{blk.Type, blk.Children})
	case BulletListBlock:
		items := blk.Items
		if items == nil {
			items = []ListItem{}
		}
		return json.Marshal(struct {
			Type     BlockType  `json:"type"`
			Children []ListItem `json:"children"`
		}{blk.Type, items})
	default:
		return nil, fmt.Errorf("body: marshal block: unknown type %q", blk.Type)
	}
}

func (it ListItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Children inlineList `json:"children"`
	}{"list-item", it.Children})
}

type textJSON struct {
	Text          string `json:"text"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Code          bool   `json:"code,omitempty"`
}

type linkJSON struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Text string `json:"text"`
}

func (in Inline) MarshalJSON() ([]byte, error) {
	switch in.Kind {
	case TextInline:
		return json.Marshal(textJSON{
			Text:          in.Text,
			Bold:          in.Marks.Bold,
			Italic:        in.Marks.Italic,
			Strikethrough: in.Marks.Strikethrough,
			Code:          in.Marks.Code,
		})
	case LinkInline:
		return json.Marshal(linkJSON{Type: "link", URL: in.URL, Text: in.Text})
	default:
		return nil, fmt.Errorf("body: marshal inline: unknown kind %d", in.Kind)
	}
}
