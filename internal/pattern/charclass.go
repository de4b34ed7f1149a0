package pattern

import (
	"strings"

	"github.com/ninefold/debase/internal/charset"
)

var posixClassNames = map[string]bool{
	"upper": true, "lower": true, "alpha": true,
	"digit": true, "alnum": true, "xdigit": true,
}

// validateCharClass validates the content between a character class's
// brackets (the brackets themselves excluded, any leading '^' still
// included) per the rules in §4.5: no empty, negated-empty, or
// leading/trailing-dash classes; ranges only within a same-case pool;
// POSIX blocks from a fixed vocabulary; every other byte must be
// identifier-safe.
func validateCharClass(content string) error {
	if content == "" {
		return ErrInvalidCharClass
	}
	body := content
	if strings.HasPrefix(body, "^") {
		body = body[1:]
	}
	if body == "" {
		return ErrInvalidCharClass
	}
	if strings.HasPrefix(body, "-") || strings.HasSuffix(body, "-") {
		return ErrInvalidCharClass
	}

	i := 0
	for i < len(body) {
		if body[i] == '[' {
			if i+1 < len(body) && body[i+1] == ':' {
				end := strings.Index(body[i+2:], ":]")
				if end < 0 {
					return ErrInvalidCharClass
				}
				name := body[i+2 : i+2+end]
				if !posixClassNames[name] {
					return ErrInvalidCharClass
				}
				i = i + 2 + end + 2
				continue
			}
			return ErrInvalidCharClass
		}

		if i+2 < len(body) && body[i+1] == '-' && body[i+2] != '[' {
			if !validCaseRange(body[i], body[i+2]) {
				return ErrInvalidCharClass
			}
			i += 3
			continue
		}

		if !charset.IsIdentifier(string(body[i])) {
			return ErrInvalidCharClass
		}
		i++
	}
	return nil
}

func validCaseRange(lo, hi byte) bool {
	pool := func(b byte) int {
		switch {
		case b >= 'A' && b <= 'Z':
			return 1
		case b >= 'a' && b <= 'z':
			return 2
		case b >= '0' && b <= '9':
			return 3
		default:
			return 0
		}
	}
	lp, hp := pool(lo), pool(hi)
	return lp != 0 && lp == hp && lo <= hi
}
