package pattern

import "testing"

func compileText(t *testing.T, pat string) (Node, []Rebinder) {
	t.Helper()
	toks, err := Lex(pat, nil)
	if err != nil {
		t.Fatalf("Lex(%q): %v", pat, err)
	}
	node, rebinders, err := Compile(toks)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pat, err)
	}
	return node, rebinders
}

func TestCompileSimple(t *testing.T) {
	node, _ := compileText(t, "::a::b::C")
	if !node.Match([]string{"a", "b", "C"}) {
		t.Error("expected match")
	}
	if node.Match([]string{"a", "b"}) {
		t.Error("expected no match: wrong arity")
	}
	if node.Match([]string{"a", "b", "X"}) {
		t.Error("expected no match: wrong name")
	}
}

func TestCompileAnonymousMarkerInLiteralGroup(t *testing.T) {
	node, _ := compileText(t, "x::@::z")
	if !node.Match([]string{"x", "(anonymous namespace)", "z"}) {
		t.Error("expected match against the anonymous-namespace marker")
	}
	if node.Match([]string{"x", "y", "z"}) {
		t.Error("@ should only match the anonymous-namespace marker, not an arbitrary name")
	}
}

func TestCompileLeadingGlobRequiresNonemptyPrefix(t *testing.T) {
	node, _ := compileText(t, "**::stem")
	if !node.Match([]string{"cocos2d", "stem"}) {
		t.Error("expected match with a one-element prefix")
	}
	if node.Match([]string{"stem"}) {
		t.Error("a bare leading glob must not match when there is no prefix at all")
	}
}

func TestCompileButterflyGlobAllowsEmptyMiddle(t *testing.T) {
	node, _ := compileText(t, "x::**::y")
	if !node.Match([]string{"x", "y"}) {
		t.Error("expected match with an empty glob middle")
	}
	if !node.Match([]string{"x", "a", "b", "y"}) {
		t.Error("expected match with a nonempty glob middle")
	}
	if node.Match([]string{"x"}) {
		t.Error("expected no match: too few names")
	}
}

func TestCompileRegexGroup(t *testing.T) {
	node, _ := compileText(t, "i::/y+/")
	if !node.Match([]string{"i", "yyy"}) {
		t.Error("expected match against the regex")
	}
	if node.Match([]string{"i", "yyz"}) {
		t.Error("expected no match: does not satisfy y+")
	}
}

func TestCompileMultiGlobRejected(t *testing.T) {
	toks, err := Lex("x::**::y::**::z", nil)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if _, _, err := Compile(toks); err == nil {
		t.Error("expected ErrMultiGlobNotImplemented for a second **")
	}
}

func TestCompileThisWithoutCacheRejected(t *testing.T) {
	toks, err := Lex("{this.stem}", nil)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if _, _, err := Compile(toks); err == nil {
		t.Error("expected a compile error for a deferred This token")
	}
}

func TestCompileCollectsRebinders(t *testing.T) {
	_, rebinders := compileText(t, "x::{file.stem}::**::y::{file.ext}")
	if len(rebinders) != 2 {
		t.Fatalf("got %d rebinders, want 2", len(rebinders))
	}
}
