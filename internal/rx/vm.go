package rx

// VM executes a compiled program by full backtracking. It is only ever
// asked for a full-string match (see Regexp.MatchString), so there is
// no prefix search, no leftmost-longest bookkeeping, and no capture
// extraction beyond the whole-match bounds.
type VM struct {
	prog  *Prog
	input Input
}

func NewVM(prog *Prog, input Input) *VM {
	return &VM{prog: prog, input: input}
}

// Run attempts a match anchored at pos that consumes the input exactly
// to its end. It returns true iff such a match exists.
func (vm *VM) Run(pos int) bool {
	end := vm.input.Len()
	caps := make([]int, vm.prog.NumCap*2)
	for i := range caps {
		caps[i] = -1
	}
	endPos, ok := vm.match(vm.prog.Start, pos, caps)
	return ok && endPos == end
}

// match is the backtracking interpreter. It returns the position after
// a successful OpMatch along that branch.
func (vm *VM) match(pc int, pos int, caps []int) (int, bool) {
	const maxSteps = 1 << 20
	steps := 0

	for {
		steps++
		if steps > maxSteps || pc >= len(vm.prog.Insts) {
			return -1, false
		}

		inst := vm.prog.Insts[pc]

		switch inst.Op {
		case OpMatch:
			// Only a match that consumed the whole input counts, so a
			// branch that stops short backtracks into the alternatives.
			if pos != vm.input.Len() {
				return -1, false
			}
			return pos, true

		case OpChar:
			r, w := vm.input.Step(pos)
			if w == 0 || r != inst.Val {
				return -1, false
			}
			pos += w
			pc++

		case OpCharClass:
			r, w := vm.input.Step(pos)
			if w == 0 || !matchClass(r, inst.Ranges, inst.Negated) {
				return -1, false
			}
			pos += w
			pc++

		case OpJmp:
			pc = inst.Out

		case OpSplit:
			capsCopy := make([]int, len(caps))
			copy(capsCopy, caps)

			if endPos, ok := vm.match(inst.Out, pos, capsCopy); ok {
				copy(caps, capsCopy)
				return endPos, true
			}
			return vm.match(inst.Out1, pos, caps)

		case OpSave:
			caps[inst.Idx] = pos
			pc++
		}
	}
}

func matchClass(r rune, ranges []RuneRange, negated bool) bool {
	matched := false
	for _, rng := range ranges {
		if r >= rng.Lo && r <= rng.Hi {
			matched = true
			break
		}
	}
	if negated {
		return !matched
	}
	return matched
}
