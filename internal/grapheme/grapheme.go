// Package grapheme steps through text by user-perceived characters. Offsets
// are rune offsets, matching document points.
package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Boundaries returns the rune offsets of every grapheme cluster boundary in
// text. The result starts with 0 and ends with the rune length of text.
func Boundaries(text string) []int {
	out := []int{0}
	if text == "" {
		return out
	}
	g := uniseg.NewGraphemes(text)
	off := 0
	for g.Next() {
		off += len(g.Runes())
		out = append(out, off)
	}
	return out
}

// PrevBoundary returns the closest cluster boundary strictly before the rune
// offset off, or 0.
func PrevBoundary(text string, off int) int {
	prev := 0
	for _, b := range Boundaries(text) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// NextBoundary returns the closest cluster boundary strictly after the rune
// offset off, or the rune length of text.
func NextBoundary(text string, off int) int {
	bounds := Boundaries(text)
	for _, b := range bounds {
		if b > off {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// IsWord reports whether cluster starts with a letter, a digit or '_'.
// Combining marks ride along with their base.
func IsWord(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// PrevWord returns the start of the word before off, skipping the non-word
// clusters in between.
func PrevWord(text string, off int) int {
	cs, bounds := Split(text), Boundaries(text)
	i := 0
	for i < len(cs) && bounds[i+1] <= off {
		i++
	}
	for i > 0 && !IsWord(cs[i-1]) {
		i--
	}
	for i > 0 && IsWord(cs[i-1]) {
		i--
	}
	return bounds[i]
}

// NextWord returns the end of the word after off, skipping the non-word
// clusters in between.
func NextWord(text string, off int) int {
	cs, bounds := Split(text), Boundaries(text)
	i := 0
	for i < len(cs) && bounds[i] < off {
		i++
	}
	for i < len(cs) && !IsWord(cs[i]) {
		i++
	}
	for i < len(cs) && IsWord(cs[i]) {
		i++
	}
	return bounds[i]
}
