package tui

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	adv := tabWidth - visualCol%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}

// stringCellWidth sums grapheme widths starting at cell 0.
func stringCellWidth(text string, tabWidth int) int {
	w := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w += graphemeCellWidth(g.Str(), w, tabWidth)
	}
	return w
}
