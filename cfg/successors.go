package cfg

import "github.com/gogpu/spirvtools/ir"

// Successors returns the basic blocks a block's terminator can
// transfer control to, in operand order, resolved against fn. Blocks
// ending in OpReturn/OpReturnValue/OpKill/OpUnreachable have none.
func Successors(fn *ir.Function, b *ir.BasicBlock) []*ir.BasicBlock {
	term := b.Terminator()
	var ids []ir.Id
	switch term.Opcode() {
	case ir.OpBranch:
		ids = []ir.Id{term.InOperandId(0)}
	case ir.OpBranchConditional:
		ids = []ir.Id{term.InOperandId(1), term.InOperandId(2)}
	case ir.OpSwitch:
		ids = append(ids, term.InOperandId(1)) // default
		for i := 2; i+1 < term.NumOperands(); i += 2 {
			ids = append(ids, term.InOperandId(i+1))
		}
	default:
		return nil
	}
	out := make([]*ir.BasicBlock, 0, len(ids))
	seen := make(map[ir.Id]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s := fn.BlockById(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}
