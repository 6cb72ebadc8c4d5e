package grapheme

import "testing"

func TestSplit_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "e\u0301" + "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466" + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "e\u0301" {
		t.Fatalf("split[1]=%q, want %q", got[1], "e\u0301")
	}
	if got[2] != "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466" {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
}

func TestBoundaries_RuneOffsets(t *testing.T) {
	text := "a" + "e\u0301" + "b"
	got := Boundaries(text)
	want := []int{0, 1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("boundaries=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("boundaries=%v, want %v", got, want)
		}
	}
	if got := Boundaries(""); len(got) != 1 || got[0] != 0 {
		t.Fatalf("boundaries of empty=%v, want [0]", got)
	}
}

func TestPrevNextBoundary_StepOverClusters(t *testing.T) {
	text := "a" + "e\u0301" + "b"
	cases := []struct {
		off        int
		prev, next int
	}{
		{off: 0, prev: 0, next: 1},
		{off: 1, prev: 0, next: 3},
		{off: 3, prev: 1, next: 4},
		{off: 4, prev: 3, next: 4},
	}
	for _, tc := range cases {
		if got := PrevBoundary(text, tc.off); got != tc.prev {
			t.Fatalf("PrevBoundary(%d)=%d, want %d", tc.off, got, tc.prev)
		}
		if got := NextBoundary(text, tc.off); got != tc.next {
			t.Fatalf("NextBoundary(%d)=%d, want %d", tc.off, got, tc.next)
		}
	}
}

func TestIsWord(t *testing.T) {
	for _, c := range []string{"a", "_", "7", "e\u0301", "Ж"} {
		if !IsWord(c) {
			t.Fatalf("IsWord(%q)=false, want true", c)
		}
	}
	for _, c := range []string{" ", "\t", "!", "-", ""} {
		if IsWord(c) {
			t.Fatalf("IsWord(%q)=true, want false", c)
		}
	}
}

func TestPrevNextWord(t *testing.T) {
	text := "foo, e\u0301te bar"
	cases := []struct {
		off        int
		prev, next int
	}{
		{off: 0, prev: 0, next: 3},
		{off: 3, prev: 0, next: 9},
		{off: 5, prev: 0, next: 9},
		{off: 7, prev: 5, next: 9},
		{off: 9, prev: 5, next: 13},
		{off: 13, prev: 10, next: 13},
	}
	for _, tc := range cases {
		if got := PrevWord(text, tc.off); got != tc.prev {
			t.Fatalf("PrevWord(%d)=%d, want %d", tc.off, got, tc.prev)
		}
		if got := NextWord(text, tc.off); got != tc.next {
			t.Fatalf("NextWord(%d)=%d, want %d", tc.off, got, tc.next)
		}
	}
	if got := PrevWord("", 0); got != 0 {
		t.Fatalf("PrevWord on empty=%d, want 0", got)
	}
}
