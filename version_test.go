package richtext

import "testing"

func TestVersion(t *testing.T) {
	if v := Version(); !ValidVersion(v) {
		t.Fatalf("VERSION=%q is not a release version", v)
	}
	if got, want := VersionTag(), "v"+Version(); got != want {
		t.Fatalf("tag=%q, want %q", got, want)
	}
}

func TestValidVersion(t *testing.T) {
	for v, want := range map[string]bool{
		"0.1.0":         true,
		"1.2.3-alpha.1": true,
		"2.0.0+build.7": true,
		"v1.2.3":        false,
		"1.2":           false,
		"01.2.3":        false,
		"":              false,
	} {
		if got := ValidVersion(v); got != want {
			t.Fatalf("ValidVersion(%q)=%v, want %v", v, got, want)
		}
	}
}
