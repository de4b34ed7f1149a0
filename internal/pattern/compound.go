package pattern

import (
	"strconv"
	"strings"

	"github.com/ninefold/debase/internal/charset"
	"github.com/ninefold/debase/internal/fileprop"
)

// lastClass drives both quantifier legality and escape-context
// decisions, tracking the class of the most recently emitted atom
// instead of reconstructing it from the emitted buffer.
type lastClass int

const (
	lcNone lastClass = iota
	lcIdentifier
	lcWildcard
	lcCloseParen
	lcCloseBrace
	lcQuantifier // a quantifier was just emitted; only a lazy '?' may follow
	lcLazyMarked // that quantifier was marked lazy; nothing more may follow it directly
)

func quantifierMayFollow(c lastClass) bool {
	switch c {
	case lcIdentifier, lcWildcard, lcCloseParen, lcCloseBrace:
		return true
	default:
		return false
	}
}

// compoundLexer scans one compound pattern segment, emitting regex
// text plus an insertion-ordered list of late-bind hole tokens.
type compoundLexer struct {
	src  string
	prop *fileprop.Cache

	text strings.Builder
	last lastClass

	hasRegex        bool
	hasReplacements bool

	holeOrder []Token
	holeIndex map[string]int
}

func newCompoundLexer(src string, prop *fileprop.Cache) *compoundLexer {
	return &compoundLexer{src: src, prop: prop, holeIndex: map[string]int{}}
}

// lex runs the scan and returns the token(s) this segment compiles
// to: either a single Simple token, or a compound head token followed
// by its trailers.
func (cl *compoundLexer) lex() ([]Token, error) {
	i := 0
	for i < len(cl.src) {
		b := cl.src[i]
		switch charset.Identify(b) {
		case charset.OpenCurly:
			j := strings.IndexByte(cl.src[i+1:], '}')
			if j < 0 {
				return nil, wrapErr(cl.src, cl.src[i:], ErrBadScope)
			}
			end := i + 1 + j
			body := cl.src[i+1 : end]
			if strings.Contains(body, "{") {
				return nil, wrapErr(cl.src, body, ErrBadScope)
			}
			if err := cl.handleReplacement(body); err != nil {
				return nil, err
			}
			i = end + 1

		case charset.Wildcard:
			cl.text.WriteString("[A-Za-z0-9_$]")
			cl.hasRegex = true
			cl.last = lcWildcard
			i++

		case charset.ZeroOrOne:
			if err := cl.handleQuantifier('?'); err != nil {
				return nil, err
			}
			i++

		case charset.Kleene:
			if err := cl.handleQuantifier('*'); err != nil {
				return nil, err
			}
			i++

		case charset.KleenePlus:
			if err := cl.handleQuantifier('+'); err != nil {
				return nil, err
			}
			i++

		case charset.Escape:
			if i+1 >= len(cl.src) {
				return nil, wrapErr(cl.src, cl.src[i:], ErrInvalidEscape)
			}
			if err := cl.handleEscape(cl.src[i+1]); err != nil {
				return nil, err
			}
			i += 2

		case charset.OpenBrace:
			end, err := findCharClassEnd(cl.src, i)
			if err != nil {
				return nil, wrapErr(cl.src, cl.src[i:], err)
			}
			content := cl.src[i+1 : end]
			if err := validateCharClass(content); err != nil {
				return nil, wrapErr(cl.src, "["+content+"]", err)
			}
			cl.text.WriteByte('[')
			cl.text.WriteString(content)
			cl.text.WriteByte(']')
			cl.hasRegex = true
			cl.last = lcCloseBrace
			i = end + 1

		case charset.OpenParen:
			return nil, wrapErr(cl.src, "(", ErrUnsupportedFeature)

		case charset.Identifier:
			cl.text.WriteByte(b)
			cl.last = lcIdentifier
			i++

		default:
			return nil, wrapErr(cl.src, string(b), ErrBadScope)
		}
	}

	if !cl.hasRegex && !cl.hasReplacements {
		final := strings.ReplaceAll(cl.text.String(), "(", "")
		final = strings.ReplaceAll(final, ")", "")
		return []Token{{Kind: Simple, Text: final}}, nil
	}

	head := Token{Trailing: len(cl.holeOrder)}
	switch {
	case cl.hasReplacements && cl.hasRegex:
		head.Kind = RegexFmt
	case cl.hasReplacements:
		head.Kind = SimpleFmt
	default:
		head.Kind = Regex
	}
	head.Text = cl.text.String()

	toks := make([]Token, 0, 1+len(cl.holeOrder))
	toks = append(toks, head)
	toks = append(toks, cl.holeOrder...)
	return toks, nil
}

func (cl *compoundLexer) handleReplacement(body string) error {
	obj, member, err := parseReplacementBody(body)
	if err != nil {
		return wrapErr(cl.src, body, err)
	}

	if isThisObject(obj) {
		if cl.prop == nil {
			return wrapErr(cl.src, body, ErrFileProperty)
		}
		val, err := cl.prop.Property(member)
		if err != nil {
			return wrapErr(cl.src, body, ErrFileProperty)
		}
		if !charset.IsIdentifier(val) {
			return wrapErr(cl.src, val, ErrBadIdentifier)
		}
		cl.text.WriteByte('(')
		cl.text.WriteString(val)
		cl.text.WriteByte(')')
		cl.last = lcCloseParen
		return nil
	}

	key := obj + "." + member
	idx, ok := cl.holeIndex[key]
	if !ok {
		idx = len(cl.holeOrder)
		cl.holeOrder = append(cl.holeOrder, Token{Kind: LateBind, Member: member})
		cl.holeIndex[key] = idx
	}
	cl.text.WriteByte('{')
	cl.text.WriteString(strconv.Itoa(idx))
	cl.text.WriteByte('}')
	cl.last = lcIdentifier
	cl.hasReplacements = true
	return nil
}

func (cl *compoundLexer) handleQuantifier(q byte) error {
	switch {
	case cl.last == lcQuantifier && q == '?':
		cl.text.WriteByte('?')
		cl.hasRegex = true
		cl.last = lcLazyMarked
		return nil
	case cl.last == lcQuantifier:
		return wrapErr(cl.src, string(q), ErrQuantifierMisuse)
	case quantifierMayFollow(cl.last):
		cl.text.WriteByte(q)
		cl.hasRegex = true
		cl.last = lcQuantifier
		return nil
	default:
		return wrapErr(cl.src, string(q), ErrQuantifierMisuse)
	}
}

func (cl *compoundLexer) handleEscape(c byte) error {
	var class string
	switch c {
	case 'a':
		class = "[A-Za-z]"
	case 'd':
		class = "[0-9]"
	case 'w':
		class = "[A-Za-z0-9_]"
	case 'i':
		class = "[A-Za-z0-9_$]"
	default:
		return wrapErr(cl.src, "\\"+string(c), ErrInvalidEscape)
	}
	cl.text.WriteString(class)
	cl.hasRegex = true
	cl.last = lcCloseBrace
	return nil
}

// findCharClassEnd locates the ']' that closes the character class
// opened at src[open], skipping any ":]" that terminates a nested
// POSIX class like [:alnum:].
func findCharClassEnd(src string, open int) (int, error) {
	j := open + 1
	for {
		idx := strings.IndexByte(src[j:], ']')
		if idx < 0 {
			return 0, ErrInvalidCharClass
		}
		pos := j + idx
		if pos > 0 && src[pos-1] == ':' {
			j = pos + 1
			continue
		}
		return pos, nil
	}
}

func isThisObject(obj string) bool { return obj == "this" || obj == "self" }
func isLateBindObject(obj string) bool { return obj == "file" || obj == "input" }

// parseReplacementBody parses "obj[.member]", case-insensitively, and
// validates both halves against the fixed vocabulary.
func parseReplacementBody(body string) (object, member string, err error) {
	body = strings.TrimSpace(body)
	parts := strings.SplitN(body, ".", 2)
	object = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		member = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if !isThisObject(object) && !isLateBindObject(object) {
		return "", "", ErrUnknownReplacementObject
	}
	switch member {
	case "", "stem", "dir", "ext":
	default:
		return "", "", ErrUnknownReplacementMember
	}
	return object, member, nil
}
