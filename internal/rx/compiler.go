package rx

// Compiler compiles an AST into a VM program.
type Compiler struct {
	insts []Inst
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile wraps node's body in Save(0)/body/Save(1)/Match, mirroring
// the whole-match capture every Regexp carries even though this engine
// never exposes submatches.
func (c *Compiler) Compile(node Node) *Prog {
	c.insts = nil

	c.emit(Inst{Op: OpSave, Idx: 0})
	c.compileNode(node)
	c.emit(Inst{Op: OpSave, Idx: 1})
	c.emit(Inst{Op: OpMatch})

	return &Prog{Insts: c.insts, Start: 0, NumCap: 1}
}

func (c *Compiler) emit(i Inst) int {
	c.insts = append(c.insts, i)
	return len(c.insts) - 1
}

func (c *Compiler) compileNode(node Node) int {
	switch n := node.(type) {
	case *Literal:
		return c.emit(Inst{Op: OpChar, Val: n.Rune})

	case *CharClass:
		return c.emit(Inst{Op: OpCharClass, Ranges: n.Ranges, Negated: n.Negated})

	case *Group:
		return c.compileNode(n.Body)

	case *Concat:
		if len(n.Nodes) == 0 {
			return -1
		}
		start := c.compileNode(n.Nodes[0])
		for i := 1; i < len(n.Nodes); i++ {
			c.compileNode(n.Nodes[i])
		}
		return start

	case *Quantifier:
		return c.compileQuantifier(n)
	}
	return -1
}

func (c *Compiler) compileQuantifier(q *Quantifier) int {
	start := len(c.insts)

	switch {
	case q.Min == 0 && q.Max == -1: // *
		split := c.emit(Inst{Op: OpSplit})
		c.compileNode(q.Body)
		c.emit(Inst{Op: OpJmp, Out: split})
		end := len(c.insts)
		c.insts[split].Out = start + 1
		c.insts[split].Out1 = end
		return split

	case q.Min == 1 && q.Max == -1: // +
		bodyStart := c.compileNode(q.Body)
		split := c.emit(Inst{Op: OpSplit})
		end := len(c.insts)
		c.insts[split].Out = bodyStart
		c.insts[split].Out1 = end
		return bodyStart

	case q.Min == 0 && q.Max == 1: // ?
		split := c.emit(Inst{Op: OpSplit})
		c.compileNode(q.Body)
		end := len(c.insts)
		c.insts[split].Out = start + 1
		c.insts[split].Out1 = end
		return split
	}
	return -1
}
