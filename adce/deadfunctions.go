package adce

import (
	"github.com/gogpu/spirvtools/ir"
	"github.com/gogpu/spirvtools/pass"
)

// eliminateDeadFunctions removes every function not reachable from an
// entry point's static call tree. ADCE requires the Shader capability
// (checked by Run before this is ever called), so there is no exported
// linkage to treat as an implicit root.
func eliminateDeadFunctions(m *ir.Module) bool {
	reachable := pass.ReachableFromEntryPoints(m)
	var dead []*ir.Function
	m.ForEachFunction(func(fn *ir.Function) {
		if !reachable[fn.Id()] {
			dead = append(dead, fn)
		}
	})
	for _, fn := range dead {
		eliminateFunction(m, fn)
	}
	return len(dead) > 0
}

// eliminateFunction kills every instruction the function owns and
// removes it from the module.
func eliminateFunction(m *ir.Module, fn *ir.Function) {
	fn.ForEachInst(func(inst *ir.Instruction) { m.KillInst(inst) })
	m.RemoveFunction(fn)
}

// cfgCleanup removes blocks no longer reachable from the entry block
// after the kill phase has rewritten terminators — a structured
// construct's body can be left with no incoming edge once its header
// was replaced by a direct branch to the merge block. It returns true
// if it removed anything.
func cfgCleanup(fn *ir.Function, ctx *pass.Context) bool {
	g := ctx.Analyses(fn).CFG()
	var unreachable []*ir.BasicBlock
	fn.ForEachBlock(func(b *ir.BasicBlock) {
		if !g.Reachable(b) {
			unreachable = append(unreachable, b)
		}
	})
	if len(unreachable) == 0 {
		return false
	}
	du := fn.Module().DefUse()
	for _, b := range unreachable {
		for _, inst := range b.Instructions() {
			du.KillInst(inst)
		}
		fn.RemoveBlock(b)
	}
	ctx.Invalidate(fn)
	return true
}
