package demangle

import (
	"strconv"
	"strings"
)

// itaniumOperatorCodes lists the two-letter <operator-name> codes a
// bare (unscoped) operator function's name can start with.
const itaniumOperatorCodes = " nw na dl da ps ng ad de co pl mi ml dv rm an or eo aS pL mI mL dV rM aN oR eO ls rs lS rS eq ne lt gt le ge ss nt aa oo pp mm cm pm pt cl ix qu cv li "

// Itanium classifies symbols mangled under the Itanium C++ ABI
// (the GCC/Clang scheme, "_Z..."). It implements just enough of the
// mangling grammar to walk a nested-name's component chain and spot a
// constructor/destructor marker — source-name lengths, the C1/C2/C3
// and D0/D1/D2 ctor/dtor codes, and the handful of special-name and
// bare-name prefixes the matcher needs to tell apart. It does not
// attempt full general demangling (template arguments, substitutions,
// function signatures): those components never influence ctor/dtor
// classification, so a symbol that uses them still classifies
// correctly even though Itanium.Classify never renders its full name.
type Itanium struct{}

func (Itanium) Classify(mangled string, out *Features) Kind {
	out.Clear()
	if mangled == "" || len(mangled) < 3 || mangled[:2] != "_Z" {
		return Invalid
	}
	s := mangled[2:]

	switch {
	case len(s) >= 1 && s[0] == 'T':
		// SpecialName: vtable (TV), typeinfo (TI/TS), virtual thunk, etc.
		out.Kind = Other
		return Other
	case len(s) >= 1 && s[0] == 'G':
		// SpecialName: guard variable, transaction clone, etc.
		out.Kind = Other
		return Other
	case len(s) == 0:
		return Invalid
	case s[0] != 'N':
		// A bare NameType (free function or namespace-scope data): an
		// unscoped source name (optionally internal-linkage "L"), a
		// std::/substitution ("S") or local ("Z") name, or an operator
		// name. Any other leading byte is a parse failure.
		bare := &itaniumParser{s: strings.TrimPrefix(s, "L")}
		isOperator := len(s) >= 2 && strings.Contains(itaniumOperatorCodes, " "+s[:2]+" ")
		if s[0] != 'S' && s[0] != 'Z' && !isOperator {
			if _, ok := bare.parseSourceName(); !ok {
				return Invalid
			}
		}
		out.Kind = Ignorable
		return Ignorable
	}

	p := &itaniumParser{s: s[1:]} // past the 'N'
	p.skipCVQualifiers()

	names, isDtor, isStructor, variant, ok := p.parseComponents()
	if !ok || len(names) == 0 {
		return Invalid
	}
	if !isStructor {
		// NestedName whose inner component isn't a ctor/dtor marker.
		out.Kind = Ignorable
		return Ignorable
	}

	for _, n := range names[:len(names)-1] {
		out.AddNested(n)
	}
	out.SetBase(names[len(names)-1])
	out.Variant = variant
	if isDtor {
		out.Kind = Destructor
	} else {
		out.Kind = Constructor
	}
	return out.Kind
}

type itaniumParser struct {
	s   string
	pos int
}

func (p *itaniumParser) skipCVQualifiers() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case 'r', 'V', 'K':
			p.pos++
		default:
			return
		}
	}
}

// parseComponents walks <prefix> <unqualified-name> E, collecting
// source-name identifiers in outer-to-inner order, up to (and
// including) a terminal ctor-dtor-name component. Template argument
// lists, if present, are skipped by depth-counted bracket matching
// rather than interpreted.
func (p *itaniumParser) parseComponents() (names []string, isDtor bool, isStructor bool, variant int, ok bool) {
	variant = -1
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == 'E':
			p.pos++
			return names, isDtor, isStructor, variant, true

		case c == 'C' && p.pos+1 < len(p.s) && isVariantDigit(p.s[p.pos+1]) && len(names) > 0:
			// A constructor's unqualified-name is the enclosing
			// class name repeated, e.g. cocos2d::CCLightning's ctor
			// mangles the class name once as the enclosing scope and
			// the ctor-dtor-name marker stands in for a second,
			// implicit repetition of it as the function name itself.
			variant = int(p.s[p.pos+1] - '0')
			isStructor = true
			isDtor = false
			names = append(names, names[len(names)-1])
			p.pos += 2
			p.skipTrailingTemplateArgs()

		case c == 'D' && p.pos+1 < len(p.s) && isVariantDigit(p.s[p.pos+1]) && len(names) > 0:
			variant = int(p.s[p.pos+1] - '0')
			isStructor = true
			isDtor = true
			names = append(names, names[len(names)-1])
			p.pos += 2
			p.skipTrailingTemplateArgs()

		case c >= '0' && c <= '9':
			name, okName := p.parseSourceName()
			if !okName {
				return nil, false, false, -1, false
			}
			names = append(names, name)
			p.skipTrailingTemplateArgs()

		default:
			// Operator names, unnamed-type names, and other
			// unqualified-name forms never carry a ctor/dtor marker
			// and don't affect whether this chain is a structor; bail
			// out as Ignorable-worthy rather than misparse them.
			return names, false, false, -1, true
		}
	}
	return nil, false, false, -1, false
}

func isVariantDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *itaniumParser) parseSourceName() (string, bool) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return "", false
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil || n < 0 || p.pos+n > len(p.s) {
		return "", false
	}
	name := p.s[p.pos : p.pos+n]
	p.pos += n
	if name == "_GLOBAL__N_1" {
		name = AnonymousNamespaceName
	}
	return name, true
}

// skipTrailingTemplateArgs skips a following <template-args>
// ( "I" ... "E" ), if present, using a depth counter since template
// arguments can themselves contain nested template-arg lists.
func (p *itaniumParser) skipTrailingTemplateArgs() {
	if p.pos >= len(p.s) || p.s[p.pos] != 'I' {
		return
	}
	depth := 0
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case 'I':
			depth++
		case 'E':
			depth--
			p.pos++
			if depth == 0 {
				return
			}
			continue
		}
		p.pos++
	}
}
