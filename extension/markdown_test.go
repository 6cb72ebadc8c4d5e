package extension

import "testing"

func TestMarkdownShortcuts(t *testing.T) {
	tests := []struct {
		name  string
		opt   Options
		typed string
		want  string
	}{
		{name: "bold", opt: allModules, typed: "*hello* ", want: `paragraph["hello"+bold " "]`},
		{name: "italic", opt: allModules, typed: "_hi_", want: `paragraph["hi"+italic]`},
		{name: "strikethrough", opt: allModules, typed: "~no~", want: `paragraph["no"+strikethrough]`},
		{name: "code", opt: allModules, typed: "`x()`", want: `paragraph["x()"+code]`},
		{name: "after text", opt: allModules, typed: "say *hi*", want: `paragraph["say " "hi"+bold]`},
		{name: "typing continues unmarked", opt: allModules, typed: "_a b_c", want: `paragraph["a b"+italic "c"]`},
		{name: "space after opener", opt: allModules, typed: "* a*", want: `paragraph["* a*"]`},
		{name: "space before closer", opt: allModules, typed: "*a *", want: `paragraph["*a *"]`},
		{name: "single character", opt: allModules, typed: "*a*", want: `paragraph["*a*"]`},
		{name: "mixed delimiters", opt: allModules, typed: "*ab_", want: `paragraph["*ab_"]`},
		{name: "disabled", opt: Options{BulletList: true}, typed: "*hello*", want: `paragraph["*hello*"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(t, tt.opt)
			typeText(t, e, tt.typed)
			if got := tree(e); got != tt.want {
				t.Fatalf("tree=%s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarkdownShortcuts_InsideListItem(t *testing.T) {
	e := newEditor(t, allModules)
	typeText(t, e, "- ~done~ ok")

	if got, want := tree(e), `bullet-list[list-item["done"+strikethrough " ok"]]`; got != want {
		t.Fatalf("tree=%s, want %s", got, want)
	}
}
