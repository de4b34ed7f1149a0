package pattern

import (
	"github.com/ninefold/debase/internal/demangle"
	"github.com/ninefold/debase/internal/rx"
)

// tokenGroup is a contiguous run of tokens belonging to one scope
// segment, as produced by groupTokens.
type tokenGroup struct {
	tokens      []Token
	leadingGlob bool
}

func (g tokenGroup) allSimple() bool {
	for _, t := range g.tokens {
		if !t.isLiteral() {
			return false
		}
	}
	return true
}

// groupTokens runs step 1 of the pattern compiler: walk the token
// vector left to right, folding a leading Glob into the group that
// follows it and splitting off a replacement group as soon as a
// compound head token (Trailing > 0) is seen. It returns the groups
// and the number of distinct Glob occurrences.
func groupTokens(tokens []Token) ([]tokenGroup, int, error) {
	var groups []tokenGroup
	globCount := 0
	pendingGlob := false

	i := 0
	for i < len(tokens) {
		if tokens[i].Kind == Glob {
			pendingGlob = true
			globCount++
			i++
			continue
		}

		grp := tokenGroup{leadingGlob: pendingGlob}
		pendingGlob = false

		if tokens[i].isCompoundHead() {
			n := 1 + tokens[i].Trailing
			grp.tokens = tokens[i : i+n]
			i += n
		} else {
			start := i
			for i < len(tokens) && tokens[i].Kind != Glob && !tokens[i].isCompoundHead() {
				i++
			}
			grp.tokens = tokens[start:i]
		}

		if len(grp.tokens) == 0 {
			return nil, 0, wrapErr("", "", ErrBadScope)
		}
		groups = append(groups, grp)
	}

	if pendingGlob {
		return nil, 0, wrapErr("", "**", ErrBadScope)
	}
	if len(groups) == 0 {
		return nil, 0, wrapErr("", "", ErrBadScope)
	}
	return groups, globCount, nil
}

// compileCtx accumulates the Rebinder leaves created while compiling
// one pattern, in the order their Replacers were constructed — the
// order set_filename must later invoke them in.
type compileCtx struct {
	rebinders []Rebinder
}

func (c *compileCtx) register(r Rebinder) {
	c.rebinders = append(c.rebinders, r)
}

// Compile runs the pattern compiler (§4.6) over a lexed token vector,
// producing the root matcher node plus every Rebinder it created.
func Compile(tokens []Token) (Node, []Rebinder, error) {
	ctx := &compileCtx{}
	node, err := ctx.compileDispatch(tokens)
	if err != nil {
		return nil, nil, err
	}
	return node, ctx.rebinders, nil
}

func (c *compileCtx) compileDispatch(tokens []Token) (Node, error) {
	groups, globCount, err := groupTokens(tokens)
	if err != nil {
		return nil, err
	}

	switch {
	case globCount == 0:
		return c.compile0Glob(groups)

	case globCount == 1:
		gi := -1
		for i, g := range groups {
			if g.leadingGlob {
				gi = i
				break
			}
		}
		if gi == 0 {
			tail, err := c.compile0Glob(groups)
			if err != nil {
				return nil, err
			}
			return &LeadingGlobNode{Trailing: boxMulti(tail)}, nil
		}
		leading, err := c.compile0Glob(groups[:gi])
		if err != nil {
			return nil, err
		}
		trailing, err := c.compile0Glob(groups[gi:])
		if err != nil {
			return nil, err
		}
		return &ButterflyGlobNode{Leading: boxMulti(leading), Trailing: boxMulti(trailing)}, nil

	default:
		return nil, wrapErr("", "**", ErrMultiGlobNotImplemented)
	}
}

// compile0Glob builds the glob-free shape for a run of groups: a
// single group dispatches through make_dispatch directly, multiple
// groups concatenate in an AnySequence.
func (c *compileCtx) compile0Glob(groups []tokenGroup) (Node, error) {
	if len(groups) == 1 {
		return c.compileGroup(groups[0])
	}
	items := make([]Node, 0, len(groups))
	for _, g := range groups {
		n, err := c.compileGroup(g)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return &AnySequenceNode{Items: items}, nil
}

// compileGroup is make_dispatch: classify one group as all-simple,
// a single replacement head, or a mixed run.
func (c *compileCtx) compileGroup(g tokenGroup) (Node, error) {
	if g.tokens[0].isCompoundHead() {
		return c.compileReplacementGroup(g.tokens)
	}
	if len(g.tokens) == 1 {
		return c.compileSingleToken(g.tokens[0])
	}
	if g.allSimple() {
		parts := make([]string, len(g.tokens))
		for i, t := range g.tokens {
			parts[i] = literalText(t)
		}
		return &SimpleNode{Parts: parts}, nil
	}
	items := make([]Node, len(g.tokens))
	for i, t := range g.tokens {
		n, err := c.compileSingleToken(t)
		if err != nil {
			return nil, err
		}
		items[i] = n
	}
	return &SingleSequenceNode{Items: items}, nil
}

// compileSingleToken handles the single-count token kinds that join
// a greedy run: Simple, Anonymous, This, LateBind, and a bare Regex
// with no holes.
func (c *compileCtx) compileSingleToken(t Token) (Node, error) {
	switch t.Kind {
	case Simple, Anonymous:
		return &SoloNode{Literal: literalText(t)}, nil

	case This:
		// A This token only survives lexing when no file-property
		// cache was installed yet; "this"/"self" resolve once, at lex
		// time, and never defer — so there is nothing left to bind.
		return nil, wrapErr("", "{this."+t.Member+"}", ErrFileProperty)

	case LateBind:
		replacer := &Replacer{Template: "{0}", Holes: []string{t.Member}, Paren: false}
		node := &SoloNode{Literal: "", Replacer: replacer}
		c.register(node)
		return node, nil

	case Regex:
		re, err := rx.Compile(t.Text)
		if err != nil {
			return nil, wrapErr(t.Text, "", err)
		}
		return &RegexNode{Text: t.Text, Compiled: re}, nil

	default:
		return nil, wrapErr("", t.Kind.String(), ErrBadScope)
	}
}

// compileReplacementGroup handles a group headed by a SimpleFmt or
// RegexFmt compound token: build the Replacer from the head's
// template text and its trailers' members, then wire a Solo or Regex
// leaf to it as a late-bind placeholder.
func (c *compileCtx) compileReplacementGroup(tokens []Token) (Node, error) {
	head := tokens[0]
	trailers := tokens[1 : 1+head.Trailing]
	holes := make([]string, len(trailers))
	for i, tr := range trailers {
		holes[i] = tr.Member
	}

	switch head.Kind {
	case SimpleFmt:
		replacer := &Replacer{Template: head.Text, Holes: holes, Paren: false}
		node := &SoloNode{Literal: head.Text, Replacer: replacer}
		c.register(node)
		return node, nil

	case RegexFmt:
		replacer := &Replacer{Template: head.Text, Holes: holes, Paren: true}
		node := &RegexNode{Text: head.Text, Replacer: replacer}
		c.register(node)
		return node, nil

	default:
		return nil, wrapErr("", head.Kind.String(), ErrBadScope)
	}
}

// literalText returns the comparison text for a Simple or Anonymous
// token — its own text, or the anonymous-namespace marker.
func literalText(t Token) string {
	if t.Kind == Anonymous {
		return demangle.AnonymousNamespaceName
	}
	return t.Text
}

// boxMulti lifts a single-count leaf (Solo/Regex) into a Forwarding
// wrapper so it structurally presents the same multi-child interface
// as Simple/SingleSequence/AnySequence when used as a glob's leading
// or trailing half.
func boxMulti(n Node) Node {
	switch n.(type) {
	case *SoloNode, *RegexNode:
		return &ForwardingNode{Inner: n}
	default:
		return n
	}
}
