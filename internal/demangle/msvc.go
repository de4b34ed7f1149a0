package demangle

import "strings"

// MSVC classifies symbols mangled under the Microsoft C++ ABI. It is
// grounded in the qualified-name-component walk the original driver
// performs on a full demangle tree, but works directly off the
// mangled text's "?0"/"?1" structor codes and '@'-delimited, innermost
// -first name segments rather than building a general parse tree —
// the matcher only ever needs the scope chain and the structor flag,
// never the function's calling convention or parameter types.
type MSVC struct{}

func (MSVC) Classify(mangled string, out *Features) Kind {
	out.Clear()
	if len(mangled) < 2 || mangled[0] != '?' {
		return Invalid
	}
	s := mangled[1:]

	var isDtor bool
	switch {
	case strings.HasPrefix(s, "?0"):
		s = s[2:]
	case strings.HasPrefix(s, "?1"):
		isDtor = true
		s = s[2:]
	default:
		return classifyMSVCNonStructor(s, out)
	}

	segments, ok := parseAtSegments(s)
	if !ok || len(segments) == 0 {
		return Invalid
	}

	className := segments[0]
	outer := segments[1:]
	for i, j := 0, len(outer)-1; i < j; i, j = i+1, j-1 {
		outer[i], outer[j] = outer[j], outer[i]
	}

	for _, n := range outer {
		out.AddNested(n)
	}
	out.SetBase(className)
	out.Variant = -1 // the Itanium ABI-variant tag has no MSVC analog
	if isDtor {
		out.Kind = Destructor
	} else {
		out.Kind = Constructor
	}
	return out.Kind
}

// classifyMSVCNonStructor handles the non-"?0"/"?1" terminal forms: a
// plain named identifier (a free function, e.g. "?foo@@...") is
// Ignorable; any other operator/special code (overloaded operators,
// vtables, RTTI descriptors, ...) is Other.
func classifyMSVCNonStructor(s string, out *Features) Kind {
	if s == "" {
		return Invalid
	}
	c := s[0]
	isIdentStart := c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	if isIdentStart {
		out.Kind = Ignorable
		return Ignorable
	}
	out.Kind = Other
	return Other
}

// parseAtSegments splits s on '@' and stops at the first empty
// segment, which marks the "@@" terminator of an MSVC qualified name.
func parseAtSegments(s string) ([]string, bool) {
	parts := strings.Split(s, "@")
	var segments []string
	for _, p := range parts {
		if p == "" {
			return segments, len(segments) > 0
		}
		segments = append(segments, p)
	}
	return segments, false
}
