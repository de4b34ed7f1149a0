package pattern

import (
	"testing"

	"github.com/ninefold/debase/internal/fileprop"
)

func TestLexAcceptsAndRejects(t *testing.T) {
	cases := []struct {
		pat  string
		prop *fileprop.Cache
		ok   bool
	}{
		// Simple
		{"::foo", nil, true},
		{"::a::b::C", nil, true},
		{"x :: y :: z", nil, true},

		// Empty / malformed scope
		{"", nil, false},
		{"\t", nil, false},
		{"  :: ", nil, false},
		{"x::", nil, false},
		{"x:: ::z", nil, false},

		// Standalone
		{"@::xyz", nil, true},
		{"@::@::bar", nil, true},
		{"@", nil, false},
		{"::@::**", nil, true},
		{"**::xyz", nil, true},
		{"::**", nil, false},
		{"**::", nil, false},

		// Replacements
		{"{this.stem}", nil, true},   // no cache: deferred This token, lexes fine
		{"{file.stem}", nil, true},   // always deferred
		{"{.stem}", nil, false},      // unknown object
		{"{this.foo}", fileprop.New("x/Config.json"), false}, // unknown member

		// This replacements, immediate resolution
		{"x::I{this.stem}", fileprop.New("xyz/Config.json"), true},
		{"{this.stem}", fileprop.New("xyz/Config.json"), true},

		// Regex / compound
		{"i::/y+/", nil, true},
		{"[[:lower:]]+", nil, true},
		{"[0-z]", nil, false},
		{"[]", nil, false},
		{"[^]", nil, false},
		{"I**", nil, false}, // glob not legal inside a compound
		{"I[{file.stem}]", nil, false},
		{"?{file.stem}", nil, false},
		{"II?", nil, true},
		{"{this.stem}+", fileprop.New("xyz/Config.json"), true},
		{"i::/{file.stem}+/", nil, true},
		{"x::I{this.stem}", fileprop.New("xyz/Config.json"), true},
		{"{this.stem}\\w*", fileprop.New("xyz/Config.json"), true},
	}

	for _, c := range cases {
		_, err := Lex(c.pat, c.prop)
		if (err == nil) != c.ok {
			t.Errorf("Lex(%q, prop=%v): got err=%v, want ok=%v", c.pat, c.prop != nil, err, c.ok)
		}
	}
}

func TestLexGlobCoalescing(t *testing.T) {
	toks, err := Lex("x::**::**::y", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var globs int
	for _, tok := range toks {
		if tok.Kind == Glob {
			globs++
		}
	}
	if globs != 1 {
		t.Errorf("got %d Glob tokens, want exactly 1 (sequential globs should coalesce)", globs)
	}
}

func TestLexThisImmediateResolution(t *testing.T) {
	toks, err := Lex("x::I{this.stem}", fileprop.New("xyz/Config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[1].Kind != Simple || toks[1].Text != "IConfig" {
		t.Fatalf("got %+v, want [Simple(x) Simple(IConfig)]", toks)
	}
}

func TestLexLateBindBareSegment(t *testing.T) {
	toks, err := Lex("**::{file.stem}", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != Glob || toks[1].Kind != LateBind || toks[1].Member != "stem" {
		t.Fatalf("got %+v, want [Glob LateBind(stem)]", toks)
	}
}

func TestLexRegexFormatQuantifierWrapsWholeValue(t *testing.T) {
	toks, err := Lex("{this.stem}+", fileprop.New("xyz/Config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != Regex || toks[0].Text != "(Config)+" {
		t.Fatalf("got %+v, want a single Regex token with text \"(Config)+\"", toks)
	}
}
