package body

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/richtext/document"
)

var htmlPolicy = newHTMLPolicy()

// newHTMLPolicy allows the tags ParseHTML understands; anything else is
// stripped with its attributes and only its text survives.
func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "div", "br", "pre", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"strong", "b", "em", "i", "s", "del", "strike", "code", "span",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	return p
}

var spaceRun = regexp.MustCompile(`\s+`)

// ParseHTML reads sanitized HTML into a body. Block tags become paragraphs,
// lists become bullet lists (nested lists are flattened), <br> becomes a
// soft break and inline tags become marks.
func ParseHTML(r io.Reader) (Body, error) {
	doc, err := html.Parse(htmlPolicy.SanitizeReader(r))
	if err != nil {
		return Body{}, fmt.Errorf("parsing html: %w", err)
	}
	p := &htmlParser{}
	p.walk(doc, document.Marks{})
	p.flush()
	p.closeList()
	return Body{Content: p.blocks}, nil
}

type htmlParser struct {
	blocks []Block
	line   []Inline
	list   []ListItem
	lists  int
	pre    int
}

func (p *htmlParser) walk(n *html.Node, marks document.Marks) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data, marks)
		return
	case html.DocumentNode:
		p.children(n, marks)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Br:
		p.appendText("\n", marks)
	case atom.B, atom.Strong:
		p.children(n, marks.With(document.Bold, true))
	case atom.I, atom.Em:
		p.children(n, marks.With(document.Italic, true))
	case atom.S, atom.Del, atom.Strike:
		p.children(n, marks.With(document.Strikethrough, true))
	case atom.Code:
		p.children(n, marks.With(document.Code, true))
	case atom.A:
		href := attr(n, "href")
		text := strings.TrimSpace(spaceRun.ReplaceAllString(textContent(n), " "))
		if href == "" || text == "" {
			p.children(n, marks)
			return
		}
		p.line = append(p.line, Link(href, text))
	case atom.Ul, atom.Ol:
		p.flush()
		p.lists++
		p.children(n, marks)
		p.flush()
		if p.lists--; p.lists == 0 {
			p.closeList()
		}
	case atom.Pre:
		p.flush()
		p.pre++
		p.children(n, marks.With(document.Code, true))
		p.pre--
		p.flush()
	case atom.P, atom.Div, atom.Li, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.flush()
		p.children(n, marks)
		p.flush()
	default:
		p.children(n, marks)
	}
}

func (p *htmlParser) children(n *html.Node, marks document.Marks) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, marks)
	}
}

func (p *htmlParser) text(s string, marks document.Marks) {
	if p.pre == 0 {
		s = spaceRun.ReplaceAllString(s, " ")
		if strings.HasPrefix(s, " ") && p.endsWithSpace() {
			s = s[1:]
		}
	}
	p.appendText(s, marks)
}

func (p *htmlParser) appendText(s string, marks document.Marks) {
	if s == "" {
		return
	}
	if n := len(p.line); n > 0 && p.line[n-1].Kind == TextInline && p.line[n-1].Marks == marks {
		p.line[n-1].Text += s
		return
	}
	p.line = append(p.line, Inline{Kind: TextInline, Text: s, Marks: marks})
}

func (p *htmlParser) endsWithSpace() bool {
	if len(p.line) == 0 {
		return true
	}
	last := p.line[len(p.line)-1]
	return last.Kind == TextInline && (strings.HasSuffix(last.Text, " ") || strings.HasSuffix(last.Text, "\n"))
}

// flush ends the current line as a paragraph, or as an item inside a list.
// Lines without visible text are dropped.
func (p *htmlParser) flush() {
	line := trimLine(p.line)
	p.line = nil
	if len(line) == 0 {
		return
	}
	if p.lists > 0 {
		p.list = append(p.list, Item(line...))
		return
	}
	p.blocks = append(p.blocks, Paragraph(line...))
}

func (p *htmlParser) closeList() {
	if len(p.list) > 0 {
		p.blocks = append(p.blocks, BulletList(p.list...))
	}
	p.list = nil
}

func trimLine(line []Inline) []Inline {
	if len(line) > 0 && line[0].Kind == TextInline {
		line[0].Text = strings.TrimLeftFunc(line[0].Text, unicode.IsSpace)
		if line[0].Text == "" {
			line = line[1:]
		}
	}
	if n := len(line); n > 0 && line[n-1].Kind == TextInline {
		line[n-1].Text = strings.TrimRightFunc(line[n-1].Text, unicode.IsSpace)
		if line[n-1].Text == "" {
			line = line[:n-1]
		}
	}
	return line
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// WriteHTML renders b as an HTML fragment.
func WriteHTML(w io.Writer, b Body) error {
	for _, blk := range b.Content {
		var n *html.Node
		switch blk.Type {
		case ParagraphBlock:
			n = element(atom.P, inlineNodes(blk.Children)...)
		case BulletListBlock:
			n = element(atom.Ul)
			for _, it := range blk.Items {
				n.AppendChild(element(atom.Li, inlineNodes(it.Children)...))
			}
		default:
			continue
		}
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("rendering %s: %w", blk.Type, err)
		}
	}
	return nil
}

// HTML returns b rendered by WriteHTML.
func (b Body) HTML() string {
	var sb strings.Builder
	_ = WriteHTML(&sb, b) // strings.Builder never fails
	return sb.String()
}

var markTags = []struct {
	mark document.Mark
	tag  atom.Atom
}{
	{document.Code, atom.Code},
	{document.Strikethrough, atom.S},
	{document.Italic, atom.Em},
	{document.Bold, atom.Strong},
}

func inlineNodes(ins []Inline) []*html.Node {
	var out []*html.Node
	for _, in := range ins {
		if in.Kind == LinkInline {
			a := element(atom.A, textNodes(in.Text)...)
			a.Attr = []html.Attribute{{Key: "href", Val: in.URL}}
			out = append(out, a)
			continue
		}
		nodes := textNodes(in.Text)
		for _, mt := range markTags {
			if in.Marks.Get(mt.mark) {
				nodes = []*html.Node{element(mt.tag, nodes...)}
			}
		}
		out = append(out, nodes...)
	}
	return out
}

// textNodes splits s on soft breaks into text and <br> nodes.
func textNodes(s string) []*html.Node {
	var out []*html.Node
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			out = append(out, element(atom.Br))
		}
		if part != "" {
			out = append(out, &html.Node{Type: html.TextNode, Data: part})
		}
	}
	return out
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}
