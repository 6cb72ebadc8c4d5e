package document

import "fmt"

// Mark names one character-level formatting attribute.
type Mark uint8

const (
	Bold Mark = iota
	Italic
	Strikethrough
	Code
)

// AllMarks lists every mark in canonical order.
var AllMarks = []Mark{Bold, Italic, Strikethrough, Code}

func (m Mark) String() string {
	switch m {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Strikethrough:
		return "strikethrough"
	case Code:
		return "code"
	default:
		return fmt.Sprintf("mark(%d)", uint8(m))
	}
}

// ParseMark maps a mark name back to its Mark.
func ParseMark(name string) (Mark, bool) {
	for _, m := range AllMarks {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// Marks is the set of formatting flags carried by a text leaf.
type Marks struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
}

func (ms Marks) Get(m Mark) bool {
	switch m {
	case Bold:
		return ms.Bold
	case Italic:
		return ms.Italic
	case Strikethrough:
		return ms.Strikethrough
	case Code:
		return ms.Code
	default:
		panic(fmt.Sprintf("document: unknown mark %d", uint8(m)))
	}
}

// With returns a copy of ms with m set to v.
func (ms Marks) With(m Mark, v bool) Marks {
	switch m {
	case Bold:
		ms.Bold = v
	case Italic:
		ms.Italic = v
	case Strikethrough:
		ms.Strikethrough = v
	case Code:
		ms.Code = v
	default:
		panic(fmt.Sprintf("document: unknown mark %d", uint8(m)))
	}
	return ms
}

func (ms Marks) Without(m Mark) Marks { return ms.With(m, false) }

func (ms Marks) Union(o Marks) Marks {
	return Marks{
		Bold:          ms.Bold || o.Bold,
		Italic:        ms.Italic || o.Italic,
		Strikethrough: ms.Strikethrough || o.Strikethrough,
		Code:          ms.Code || o.Code,
	}
}

// Contains reports whether every mark set in o is also set in ms.
func (ms Marks) Contains(o Marks) bool {
	return ms.Union(o) == ms
}

func (ms Marks) Any() bool { return ms != Marks{} }

// Active returns the set marks in canonical order.
func (ms Marks) Active() []Mark {
	var out []Mark
	for _, m := range AllMarks {
		if ms.Get(m) {
			out = append(out, m)
		}
	}
	return out
}
