package rx

import "fmt"

// Regexp is a compiled program over the identifier-safe regex subset.
type Regexp struct {
	expr string
	prog *Prog
}

// CompileNode compiles an already-built AST. Compile calls it on the
// AST its Parser produces; the pattern package never builds an AST
// itself.
func CompileNode(expr string, node Node) *Regexp {
	prog := NewCompiler().Compile(node)
	return &Regexp{expr: expr, prog: prog}
}

// Compile parses expr with the restricted-syntax Parser and compiles
// the result. The pattern package's compound lexer already emits
// valid regex text (parenthesized immediate replacements and all), so
// the pattern compiler calls this directly rather than building an
// AST by hand.
func Compile(expr string) (*Regexp, error) {
	node, err := NewParser(expr).Parse()
	if err != nil {
		return nil, err
	}
	return CompileNode(expr, node), nil
}

func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("rx: Compile(%q): %v", expr, err))
	}
	return re
}

// String returns the source text used to compile the expression.
func (re *Regexp) String() string { return re.expr }

// MatchString reports whether s, in its entirety, matches re. There is
// no partial or leftmost search: scope segments must match front to
// back or not at all.
func (re *Regexp) MatchString(s string) bool {
	vm := NewVM(re.prog, NewStringInput(s))
	return vm.Run(0)
}
