// Package pattern lexes and compiles symbol patterns into a tree of
// matcher nodes, and runs the late-bind sweep that re-resolves
// file-property substitutions on every setFilename call.
package pattern

// Kind tags a lexed pattern token.
type Kind int

const (
	Simple    Kind = iota // literal identifier
	Anonymous             // @
	Glob                  // **
	This                  // {this.member} / {self.member}
	LateBind              // {file.member} / {input.member}
	SimpleFmt             // literal text with {n} holes
	Regex                 // compiled-regex text, no holes
	RegexFmt              // compiled-regex text with {n} holes
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case Anonymous:
		return "Anonymous"
	case Glob:
		return "Glob"
	case This:
		return "This"
	case LateBind:
		return "LateBind"
	case SimpleFmt:
		return "SimpleFmt"
	case Regex:
		return "Regex"
	case RegexFmt:
		return "RegexFmt"
	default:
		return "Unknown"
	}
}

// Token is a single lexed unit of a pattern. A compound token
// (SimpleFmt/RegexFmt) is followed by exactly Trailing more tokens
// giving its hole arguments, in insertion order.
type Token struct {
	Kind     Kind
	Text     string // literal text (Simple) or emitted regex text (Regex/RegexFmt/SimpleFmt)
	Member   string // "", "stem", "dir", or "ext" — for This/LateBind tokens
	Trailing int    // number of following trailer tokens (0-7)
}

func (t Token) isLiteral() bool {
	return t.Kind == Simple || t.Kind == Anonymous
}

// isCompoundHead reports whether t starts a replacement group of its
// own (one head token plus Trailing trailers). A bare Regex token
// (no holes) has Trailing == 0 and joins the surrounding greedy run
// like any other single-count token instead.
func (t Token) isCompoundHead() bool {
	return t.Trailing > 0
}
