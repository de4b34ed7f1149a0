// Package matcher owns the compiled pattern sets, the current
// file-property cache, and the late-bind fan-out that keeps regex and
// literal leaves in sync with the file currently being processed.
package matcher

import (
	"fmt"

	"github.com/ninefold/debase/internal/demangle"
	"github.com/ninefold/debase/internal/fileprop"
	"github.com/ninefold/debase/internal/pattern"
)

// Matcher compiles symbol patterns, tracks the ctor/dtor sets they
// belong to, and decides whether a demangled symbol should be
// debased. It is single-threaded and synchronous: callers are
// expected to run set_filename, iterate a module's functions,
// demangle, and match strictly in that order, never concurrently.
type Matcher struct {
	permissive bool

	cache     map[string]pattern.Node
	rebinders []pattern.Rebinder

	ctor []pattern.Node
	dtor []pattern.Node

	prop *fileprop.Cache

	configPath string
}

// New constructs an empty Matcher. permissive makes SetFilename and
// LoadConfig downgrade rebind, file-entry and pattern-compile errors
// to warnings in the slices they return; CompilePattern and the
// Add*Pattern methods return their errors in either mode.
func New(permissive bool) *Matcher {
	return &Matcher{
		permissive: permissive,
		cache:      make(map[string]pattern.Node),
	}
}

// Permissive reports whether the matcher was constructed in
// permissive mode.
func (m *Matcher) Permissive() bool { return m.permissive }

// CompilePattern lexes and compiles text, memoizing on the raw
// pattern string so that repeated requests for the same text return
// the pointer-equal node (the same text added to both the ctor and
// dtor sets yields the same node in each).
func (m *Matcher) CompilePattern(text string) (pattern.Node, error) {
	if node, ok := m.cache[text]; ok {
		return node, nil
	}

	tokens, err := pattern.Lex(text, m.prop)
	if err != nil {
		return nil, err
	}
	node, rebinders, err := pattern.Compile(tokens)
	if err != nil {
		return nil, err
	}

	m.cache[text] = node
	m.rebinders = append(m.rebinders, rebinders...)
	return node, nil
}

// AddCtorPattern compiles text and adds it to the constructor set.
func (m *Matcher) AddCtorPattern(text string) error {
	node, err := m.CompilePattern(text)
	if err != nil {
		return err
	}
	m.ctor = append(m.ctor, node)
	return nil
}

// AddDtorPattern compiles text and adds it to the destructor set.
func (m *Matcher) AddDtorPattern(text string) error {
	node, err := m.CompilePattern(text)
	if err != nil {
		return err
	}
	m.dtor = append(m.dtor, node)
	return nil
}

// SetFilename installs path as the current filename, builds a fresh
// file-property cache, and fans the cache out to every registered
// Rebinder in insertion order. In strict mode the sweep stops at the
// first failing Rebinder and returns its error as the slice's only
// element; in permissive mode the failing leaf is skipped, its error
// is appended to the returned slice with "skipped leaf" context, and
// the sweep goes on.
func (m *Matcher) SetFilename(path string) []error {
	m.prop = fileprop.New(path)

	var warnings []error
	for _, r := range m.rebinders {
		if err := r.Rebind(m.prop); err != nil {
			if !m.permissive {
				warnings = append(warnings, fmt.Errorf("matcher: set_filename(%q): %w", path, err))
				return warnings
			}
			warnings = append(warnings, fmt.Errorf("matcher: set_filename(%q): skipped leaf: %w", path, err))
		}
	}
	return warnings
}

// Match reports whether features should be debased: false if the
// symbol is neither a constructor nor destructor, or is an Itanium
// deleting destructor (variant 0); otherwise it dispatches to the
// matching pattern set and returns true as soon as any node matches.
func (m *Matcher) Match(features *demangle.Features) bool {
	if !features.IsCtorDtor() || features.Variant == 0 {
		return false
	}
	names := features.ScopeNames()
	if len(names) == 0 {
		return false
	}

	set := m.ctor
	if features.IsDtor() {
		set = m.dtor
	}
	for _, node := range set {
		if node.Match(names) {
			return true
		}
	}
	return false
}
