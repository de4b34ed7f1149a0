// Package demangle extracts the scope chain, base name, and
// constructor/destructor classification the pattern matcher needs
// from Itanium and Microsoft mangled function symbols.
package demangle

// AnonymousNamespaceName is the scope-name text an anonymous C++
// namespace demangles to, the same literal the pattern compiler's
// "@" token compares against.
const AnonymousNamespaceName = "(anonymous namespace)"

// Kind classifies a demangled symbol for matching purposes.
type Kind int

const (
	Invalid Kind = iota
	Constructor
	Destructor
	Other
	Ignorable
)

func (k Kind) String() string {
	switch k {
	case Constructor:
		return "Constructor"
	case Destructor:
		return "Destructor"
	case Other:
		return "Other"
	case Ignorable:
		return "Ignorable"
	default:
		return "Invalid"
	}
}

// Features is the value type a Classifier fills in. NestedNames holds
// the qualified scope chain outer-to-inner with the base (class) name
// stored as its last element — mirroring the layout used by the
// matcher's scope-name comparisons, which always treat the base name
// as just another trailing name in the sequence.
type Features struct {
	NestedNames []string
	Kind        Kind
	Variant     int // Itanium ABI variant digit; -1 when not applicable
	HasBaseName bool
}

// SetBase installs name as the base (class) name, replacing whatever
// was previously recorded as the base if SetBase was already called.
func (f *Features) SetBase(name string) {
	if f.HasBaseName && len(f.NestedNames) > 0 {
		f.NestedNames = f.NestedNames[:len(f.NestedNames)-1]
	}
	f.NestedNames = append(f.NestedNames, name)
	f.HasBaseName = true
}

// AddNested appends an enclosing scope name. It is a no-op once
// SetBase has been called, matching the original's ordering
// invariant: nested names must all be added before the base name.
func (f *Features) AddNested(name string) {
	if !f.HasBaseName {
		f.NestedNames = append(f.NestedNames, name)
	}
}

// BaseName returns the class (base) name, the last element of
// NestedNames.
func (f *Features) BaseName() string {
	return f.NestedNames[len(f.NestedNames)-1]
}

// ScopeNames returns the full qualified name including the base, the
// shape the matcher's pattern nodes compare against.
func (f *Features) ScopeNames() []string {
	return f.NestedNames
}

func (f *Features) IsCtor() bool     { return f.Kind == Constructor }
func (f *Features) IsDtor() bool     { return f.Kind == Destructor }
func (f *Features) IsCtorDtor() bool { return f.IsCtor() || f.IsDtor() }
func (f *Features) IsOther() bool    { return f.Kind == Other }
func (f *Features) IsIgnorable() bool {
	return f.Kind == Ignorable
}
func (f *Features) IsInvalid() bool { return f.Kind == Invalid }

// Clear resets f to its zero-valued, Invalid state.
func (f *Features) Clear() {
	f.NestedNames = f.NestedNames[:0]
	f.Kind = Invalid
	f.Variant = -1
	f.HasBaseName = false
}

// Classifier is the shared contract both ABI back ends implement.
type Classifier interface {
	// Classify parses mangled and populates out. Empty input or a
	// parse failure clears out and returns Invalid; it never panics
	// or otherwise aborts the caller.
	Classify(mangled string, out *Features) Kind
}
