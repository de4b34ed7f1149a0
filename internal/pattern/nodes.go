package pattern

import (
	"github.com/ninefold/debase/internal/fileprop"
	"github.com/ninefold/debase/internal/rx"
)

// Rebinder is implemented by any leaf node holding a Replacer. The
// matcher collects every Rebinder produced across a compile and
// invokes Rebind, in insertion order, whenever set_filename installs
// a new file-property cache.
type Rebinder interface {
	Rebind(cache *fileprop.Cache) error
}

// Node is the runtime matcher interface every compiled pattern-node
// variant implements. Match compares the full qualified scope-name
// sequence (base name included as the last element) against the
// node's shape; Count reports the fixed arity a node consumes, with
// fixed=false for glob-bearing (variable-count) nodes.
type Node interface {
	Match(names []string) bool
	Count() (n int, fixed bool)
}

// requiredCount reads a node's fixed arity, for callers (globs) that
// only ever hold fixed-count children by construction.
func requiredCount(n Node) int {
	count, _ := n.Count()
	return count
}

// SimpleNode matches an exact scope-name sequence.
type SimpleNode struct {
	Parts []string
}

func (n *SimpleNode) Count() (int, bool) { return len(n.Parts), true }

func (n *SimpleNode) Match(names []string) bool {
	if len(names) != len(n.Parts) {
		return false
	}
	for i, p := range n.Parts {
		if names[i] != p {
			return false
		}
	}
	return true
}

// LeadingSimpleNode matches a literal prefix with at least one more
// name following it. It is never produced by the compiler's
// documented grouping/dispatch algorithm (see DESIGN.md) but is kept
// as a distinct variant because the node-tree's data model names it
// as one of the sum type's cases.
type LeadingSimpleNode struct {
	Parts []string
}

func (n *LeadingSimpleNode) Count() (int, bool) { return len(n.Parts), false }

func (n *LeadingSimpleNode) Match(names []string) bool {
	if len(names) <= len(n.Parts) {
		return false
	}
	for i, p := range n.Parts {
		if names[i] != p {
			return false
		}
	}
	return true
}

// SoloNode matches a single scope name by string equality. Replacer
// is non-nil when the literal depends on a file property and must be
// rewritten on setFilename.
type SoloNode struct {
	Literal  string
	Replacer *Replacer
}

func (n *SoloNode) Count() (int, bool) { return 1, true }

func (n *SoloNode) Match(names []string) bool {
	return len(names) == 1 && names[0] == n.Literal
}

// Rebind re-resolves Literal from the current file-property cache.
// A no-op when the leaf has no Replacer (a plain literal or anonymous
// scope marker).
func (n *SoloNode) Rebind(cache *fileprop.Cache) error {
	if n.Replacer == nil {
		return nil
	}
	v, err := n.Replacer.Resolve(cache)
	if err != nil {
		return err
	}
	n.Literal = v
	return nil
}

// RegexNode matches a single scope name against a compiled regular
// expression. Compiled is nil while the node is a placeholder awaiting
// its first late-bind substitution.
type RegexNode struct {
	Text     string
	Compiled *rx.Regexp
	Replacer *Replacer
}

func (n *RegexNode) Count() (int, bool) { return 1, true }

func (n *RegexNode) Match(names []string) bool {
	if len(names) != 1 || n.Compiled == nil {
		return false
	}
	return n.Compiled.MatchString(names[0])
}

// Rebind re-resolves Text from the current file-property cache and
// recompiles it. A no-op when the leaf has no Replacer.
func (n *RegexNode) Rebind(cache *fileprop.Cache) error {
	if n.Replacer == nil {
		return nil
	}
	text, err := n.Replacer.Resolve(cache)
	if err != nil {
		return err
	}
	re, err := rx.Compile(text)
	if err != nil {
		return err
	}
	n.Text = text
	n.Compiled = re
	return nil
}

// SingleSequenceNode matches one scope name per item, positionwise.
// Every item has a fixed count of exactly 1 (Solo, Regex, or a
// LateBind-wrapped Solo — never a Glob).
type SingleSequenceNode struct {
	Items []Node
}

func (n *SingleSequenceNode) Count() (int, bool) { return len(n.Items), true }

func (n *SingleSequenceNode) Match(names []string) bool {
	if len(names) != len(n.Items) {
		return false
	}
	for i, item := range n.Items {
		if !item.Match(names[i : i+1]) {
			return false
		}
	}
	return true
}

// AnySequenceNode concatenates mixed fixed-width children; each
// child consumes its own Count() names from the front and every name
// must be consumed exactly.
type AnySequenceNode struct {
	Items []Node
}

func (n *AnySequenceNode) Count() (int, bool) {
	total := 0
	for _, item := range n.Items {
		c, fixed := item.Count()
		if !fixed {
			return 0, false
		}
		total += c
	}
	return total, true
}

func (n *AnySequenceNode) Match(names []string) bool {
	idx := 0
	for _, item := range n.Items {
		c, fixed := item.Count()
		if !fixed || idx+c > len(names) {
			return false
		}
		if !item.Match(names[idx : idx+c]) {
			return false
		}
		idx += c
	}
	return idx == len(names)
}

// ForwardingNode lifts a fixed single-count node so it can sit
// wherever a multi-child context (AnySequence, the halves of a
// ButterflyGlob) expects one. Go's structural interfaces mean every
// node already satisfies the same Node interface regardless of arity,
// so this wrapper is a pass-through kept for parity with the sum
// type's documented variant list rather than because Go needs it.
type ForwardingNode struct {
	Inner Node
}

func (n *ForwardingNode) Count() (int, bool) { return 1, true }

func (n *ForwardingNode) Match(names []string) bool {
	return len(names) == 1 && n.Inner.Match(names)
}

// LeadingGlobNode matches a nonempty prefix followed by Trailing's
// fixed-width shape. The glob itself must consume at least one name:
// a bare "**::tail" pattern does not match a names list whose only
// element is tail's own match (e.g. "**::{file.stem}" does not match
// ["CCScheduler"] alone, only ["anything",...,"CCScheduler"]) — the
// glob requires a genuine prefix to "lead". This is stricter than
// ButterflyGlobNode's empty-middle allowance.
type LeadingGlobNode struct {
	Trailing Node
}

func (n *LeadingGlobNode) Count() (int, bool) { return requiredCount(n.Trailing), false }

func (n *LeadingGlobNode) Match(names []string) bool {
	c := requiredCount(n.Trailing)
	if len(names) <= c {
		return false
	}
	return n.Trailing.Match(names[len(names)-c:])
}

// ButterflyGlobNode matches Leading at the start, Trailing at the end,
// with anything (including nothing) in between.
type ButterflyGlobNode struct {
	Leading  Node
	Trailing Node
}

func (n *ButterflyGlobNode) Count() (int, bool) {
	return requiredCount(n.Leading) + requiredCount(n.Trailing), false
}

func (n *ButterflyGlobNode) Match(names []string) bool {
	lc, tc := requiredCount(n.Leading), requiredCount(n.Trailing)
	if len(names) < lc+tc {
		return false
	}
	return n.Leading.Match(names[:lc]) && n.Trailing.Match(names[len(names)-tc:])
}
