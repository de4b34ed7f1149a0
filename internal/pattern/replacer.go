package pattern

import (
	"strconv"
	"strings"

	"github.com/ninefold/debase/internal/fileprop"
)

// Replacer is a late-bind template: emitted text with "{0}".."{n-1}"
// holes, each standing for one file-property lookup (member, in
// insertion order). Resolve substitutes every hole with the current
// file's property value.
//
// Paren is set for a regex-bearing template: a late-bound value that
// sits next to a quantifier in the original pattern text (e.g.
// "{file.stem}+") must be parenthesized on substitution so the
// quantifier binds to the whole value rather than to the last
// character of the substituted text. A plain literal
// template (no regex metacharacters at all) substitutes the bare
// value instead, since SoloNode compares by exact string equality and
// has no grouping to preserve.
type Replacer struct {
	Template string
	Holes    []string
	Paren    bool
}

// Resolve expands the template against prop, in hole order.
func (r *Replacer) Resolve(prop *fileprop.Cache) (string, error) {
	out := r.Template
	for i, member := range r.Holes {
		val, err := prop.Property(member)
		if err != nil {
			return "", err
		}
		if r.Paren {
			val = "(" + val + ")"
		}
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", val)
	}
	return out, nil
}
