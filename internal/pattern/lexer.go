package pattern

import (
	"strings"

	"github.com/ninefold/debase/internal/charset"
	"github.com/ninefold/debase/internal/fileprop"
)

// Lex tokenizes a pattern string. prop may be nil; when present, a
// {this.*}/{self.*} segment is resolved immediately against it rather
// than deferred to a later setFilename sweep.
func Lex(pat string, prop *fileprop.Cache) ([]Token, error) {
	trimmed := strings.TrimSpace(pat)
	if trimmed == "" {
		return nil, wrapErr(pat, "", ErrEmptyPattern)
	}
	if strings.HasSuffix(trimmed, "::") {
		return nil, wrapErr(pat, trimmed, ErrBadScope)
	}
	if strings.HasSuffix(trimmed, "@") {
		return nil, wrapErr(pat, trimmed, ErrBadScope)
	}
	trimmed = strings.TrimPrefix(trimmed, "::")
	if trimmed == "" {
		return nil, wrapErr(pat, "", ErrEmptyPattern)
	}

	segments := strings.Split(trimmed, "::")
	var tokens []Token
	for _, raw := range segments {
		seg := strings.TrimSpace(raw)
		if seg == "" {
			return nil, wrapErr(pat, raw, ErrBadScope)
		}

		toks, err := classifySegment(pat, seg, prop)
		if err != nil {
			return nil, err
		}

		for _, t := range toks {
			if t.Kind == Glob && len(tokens) > 0 && tokens[len(tokens)-1].Kind == Glob {
				// sequential globs coalesce into one
				continue
			}
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 1 && (tokens[0].Kind == Glob || tokens[0].Kind == Anonymous) {
		return nil, wrapErr(pat, tokens[0].Kind.String(), ErrBadScope)
	}

	return tokens, nil
}

func classifySegment(pat, seg string, prop *fileprop.Cache) ([]Token, error) {
	if charset.IsIdentifier(seg) {
		if charset.IsDigit(seg[0]) {
			return nil, wrapErr(pat, seg, ErrBadIdentifier)
		}
		return []Token{{Kind: Simple, Text: seg}}, nil
	}

	switch seg {
	case "@":
		return []Token{{Kind: Anonymous}}, nil
	case "**":
		return []Token{{Kind: Glob}}, nil
	}

	if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && strings.Count(seg, "{") == 1 {
		body := seg[1 : len(seg)-1]
		return classifyReplacementSegment(pat, body, prop)
	}

	inner := seg
	if len(seg) >= 2 && strings.HasPrefix(seg, "/") && strings.HasSuffix(seg, "/") {
		inner = seg[1 : len(seg)-1]
	}
	toks, err := newCompoundLexer(inner, prop).lex()
	if err != nil {
		return nil, err
	}
	return toks, nil
}

func classifyReplacementSegment(pat, body string, prop *fileprop.Cache) ([]Token, error) {
	obj, member, err := parseReplacementBody(body)
	if err != nil {
		return nil, wrapErr(pat, body, err)
	}

	if isThisObject(obj) {
		if prop != nil {
			val, err := prop.Property(member)
			if err != nil {
				return nil, wrapErr(pat, body, ErrFileProperty)
			}
			if !charset.IsIdentifier(val) {
				return nil, wrapErr(pat, val, ErrBadIdentifier)
			}
			return []Token{{Kind: Simple, Text: val}}, nil
		}
		return []Token{{Kind: This, Member: member}}, nil
	}

	return []Token{{Kind: LateBind, Member: member}}, nil
}
