package demangle

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type fixture struct {
	Mangled     string   `yaml:"mangled"`
	ABI         string   `yaml:"abi"`
	Kind        string   `yaml:"kind"`
	NestedNames []string `yaml:"nested_names"`
	BaseName    string   `yaml:"base_name"`
	Variant     int      `yaml:"variant"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	data, err := os.ReadFile("testdata/symbols.yaml")
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("parsing fixtures: %v", err)
	}
	return fixtures
}

func TestClassifyFixtures(t *testing.T) {
	for _, fx := range loadFixtures(t) {
		fx := fx
		t.Run(fx.Mangled, func(t *testing.T) {
			var c Classifier
			switch fx.ABI {
			case "itanium":
				c = Itanium{}
			case "msvc":
				c = MSVC{}
			default:
				t.Fatalf("unknown abi %q", fx.ABI)
			}

			var out Features
			kind := c.Classify(fx.Mangled, &out)
			if kind.String() != fx.Kind {
				t.Fatalf("Classify(%q) kind = %v, want %v", fx.Mangled, kind, fx.Kind)
			}
			if fx.Kind != "Constructor" && fx.Kind != "Destructor" {
				return
			}
			if got := out.ScopeNames(); !stringsEqual(got, fx.NestedNames) {
				t.Errorf("ScopeNames = %v, want %v", got, fx.NestedNames)
			}
			if out.BaseName() != fx.BaseName {
				t.Errorf("BaseName = %q, want %q", out.BaseName(), fx.BaseName)
			}
			if fx.ABI == "itanium" && out.Variant != fx.Variant {
				t.Errorf("Variant = %d, want %d", out.Variant, fx.Variant)
			}
		})
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
