package toolchain

import (
	"testing"
)

func TestParseComponents(t *testing.T) {
	tcs := []struct {
		input  string
		major  int
		minor  int
		patch  int
		ident  string
		flavor string
	}{
		{"2.37", 2, 37, NoPatch, "", ""},
		{"v2.37", 2, 37, NoPatch, "", ""},
		{"2.37.1", 2, 37, 1, "", ""},
		{"2.39.0.250829112350_124859", 2, 39, 0, "250829112350_124859", ""},
		{"2.37.0.250627152033", 2, 37, 0, "250627152033", ""},
		{"2.37-auto", 2, 37, NoPatch, "", "auto"},
		{"2.39.0.250829112350_124859-graphite", 2, 39, 0, "250829112350_124859", "graphite"},
	}
	for _, tc := range tcs {
		v, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.input, err)
		}
		if v.Major != tc.major || v.Minor != tc.minor || v.Patch != tc.patch ||
			v.Ident != tc.ident || v.Flavor != tc.flavor {
			t.Errorf("Parse(%q) = %+v, want major=%d minor=%d patch=%d ident=%q flavor=%q",
				tc.input, v, tc.major, tc.minor, tc.patch, tc.ident, tc.flavor)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "default", "latest", "two.three", "v2"} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
			continue
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("Parse(%q) error = %T, want *ParseError", input, err)
		}
	}
}

func TestEqPatchWildcard(t *testing.T) {
	for _, tc := range []struct{ major, minor int }{{2, 37}, {2, 39}, {10, 0}} {
		a := Version{Major: tc.major, Minor: tc.minor, Patch: NoPatch}
		b := Version{Major: tc.major, Minor: tc.minor, Patch: 0}
		if !a.Eq(b) || !b.Eq(a) {
			t.Errorf("%d.%d should match %d.%d.0 (patch wildcard)", tc.major, tc.minor, tc.major, tc.minor)
		}
	}
}

func TestEq(t *testing.T) {
	tcs := []struct {
		a, b string
		want bool
	}{
		{"2.37", "2.37.0", true},
		{"2.37.1", "2.37.2", false},
		{"2.37", "2.38", false},
		{"2.37", "3.37", false},
		{"2.39.0.250829", "2.39.0.250829112350_124859", true},
		{"2.39.0.250829112350_124859", "2.39.0.250829", true},
		{"2.39.0.250830", "2.39.0.250829112350_124859", false},
		{"2.37-auto", "2.37", true},
		{"2.37-auto", "2.37-graphite", false},
		{"2.37-auto", "2.37.1-auto", true},
	}
	for _, tc := range tcs {
		a := MustParse(tc.a)
		b := MustParse(tc.b)
		if got := a.Eq(b); got != tc.want {
			t.Errorf("Eq(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestVersionStrings(t *testing.T) {
	v := MustParse("2.39.0.250829112350_124859-graphite")
	if got := v.APIVersion(); got != "2.39" {
		t.Errorf("APIVersion() = %q, want 2.39", got)
	}
	if got := v.FullVersion(); got != "2.39.0.250829112350_124859" {
		t.Errorf("FullVersion() = %q", got)
	}
	if got := v.FullVersionWithFlavor(); got != "2.39.0.250829112350_124859-graphite" {
		t.Errorf("FullVersionWithFlavor() = %q", got)
	}
}

func TestHubOption(t *testing.T) {
	v := MustParse("2.37")
	if got := v.HubOption(); got != HubFlag+" 2.37" {
		t.Errorf("HubOption() = %q", got)
	}

	tagged := MustParse("2.39")
	tagged.Tags = []string{LatestTag}
	if got := tagged.HubOption(); got != HubFlag+" latest" {
		t.Errorf("HubOption() with tag = %q", got)
	}
	if got := tagged.ExplicitHubOption(); got != HubFlag+" 2.39" {
		t.Errorf("ExplicitHubOption() = %q", got)
	}

	def := MustParse("2.39")
	def.Tags = []string{DefaultTag}
	if got := def.HubOption(); got != "" {
		t.Errorf("HubOption() for default = %q, want empty", got)
	}

	args, err := v.HubOptionArgs()
	if err != nil {
		t.Fatalf("HubOptionArgs() failed: %v", err)
	}
	if len(args) != 2 || args[0] != HubFlag || args[1] != "2.37" {
		t.Errorf("HubOptionArgs() = %v", args)
	}
}
