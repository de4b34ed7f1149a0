package pattern

import (
	"testing"

	"github.com/ninefold/debase/internal/fileprop"
)

func TestSimpleNodeArity(t *testing.T) {
	n := &SimpleNode{Parts: []string{"a", "b"}}
	if !n.Match([]string{"a", "b"}) {
		t.Error("expected exact match")
	}
	if n.Match([]string{"a", "b", "c"}) || n.Match([]string{"a"}) {
		t.Error("Simple must reject any arity other than len(parts)")
	}
}

func TestLeadingSimpleRequiresStrictlyMore(t *testing.T) {
	n := &LeadingSimpleNode{Parts: []string{"a"}}
	if n.Match([]string{"a"}) {
		t.Error("LeadingSimple must not match when names == parts")
	}
	if !n.Match([]string{"a", "x"}) {
		t.Error("expected match: one extra name after the prefix")
	}
}

func TestAnySequenceConcatenatesFixedChildren(t *testing.T) {
	n := &AnySequenceNode{Items: []Node{
		&SoloNode{Literal: "a"},
		&SimpleNode{Parts: []string{"b", "c"}},
	}}
	if !n.Match([]string{"a", "b", "c"}) {
		t.Error("expected match across a 1-count then 2-count child")
	}
	if n.Match([]string{"a", "b"}) {
		t.Error("expected no match: short by one name")
	}
	if n.Match([]string{"a", "b", "c", "d"}) {
		t.Error("expected no match: one name left unconsumed")
	}
}

func TestForwardingLiftsSingleCountNode(t *testing.T) {
	n := &ForwardingNode{Inner: &SoloNode{Literal: "x"}}
	if c, fixed := n.Count(); c != 1 || !fixed {
		t.Fatalf("Forwarding.Count() = (%d, %v), want (1, true)", c, fixed)
	}
	if !n.Match([]string{"x"}) || n.Match([]string{"x", "y"}) {
		t.Error("Forwarding must match exactly one name, delegated to Inner")
	}
}

func TestSoloNodeRebind(t *testing.T) {
	n := &SoloNode{Replacer: &Replacer{Template: "{0}", Holes: []string{"stem"}}}
	if err := n.Rebind(fileprop.New("bindings/CCLightning.cpp")); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if n.Literal != "CCLightning" {
		t.Errorf("got Literal=%q, want CCLightning", n.Literal)
	}
}

func TestRegexNodeRebindRecompiles(t *testing.T) {
	n := &RegexNode{Replacer: &Replacer{Template: "{0}+", Holes: []string{"stem"}, Paren: true}}
	if err := n.Rebind(fileprop.New("bindings/CCLightning.cpp")); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if !n.Match([]string{"CCLightning"}) {
		t.Error("expected the recompiled regex to match the resolved stem")
	}
	if n.Match([]string{"CCLightningX"}) {
		t.Error("(CCLightning)+ should not match a value with trailing characters past the repeated literal")
	}
}
