package pass

import "github.com/gogpu/spirvtools/ir"

// Callees returns the distinct function ids fn invokes via
// OpFunctionCall, in first-occurrence order.
func Callees(fn *ir.Function) []ir.Id {
	seen := make(map[ir.Id]bool)
	var out []ir.Id
	fn.ForEachBlock(func(b *ir.BasicBlock) {
		b.ForEachInst(func(inst *ir.Instruction) {
			if inst.Opcode() != ir.OpFunctionCall {
				return
			}
			callee := inst.InOperandId(0)
			if !seen[callee] {
				seen[callee] = true
				out = append(out, callee)
			}
		})
	})
	return out
}

// EntryPointPostOrder returns every function reachable from an entry
// point, in post order over the static call graph (callees before
// callers, each function visited once). Call Module.MarkEntryPoints
// first. This is the traversal ADCE uses to decide func_is_entry_point_
// and call_in_func_ for each function before seeding liveness.
func EntryPointPostOrder(m *ir.Module) []*ir.Function {
	visited := make(map[ir.Id]bool)
	var order []*ir.Function

	var visit func(fn *ir.Function)
	visit = func(fn *ir.Function) {
		if fn == nil || visited[fn.Id()] {
			return
		}
		visited[fn.Id()] = true
		for _, callee := range Callees(fn) {
			visit(m.FunctionById(callee))
		}
		order = append(order, fn)
	}

	m.ForEachFunction(func(fn *ir.Function) {
		if fn.IsEntryPoint() {
			visit(fn)
		}
	})
	return order
}

// ReachableFromEntryPoints returns the set of function ids reachable
// from some entry point, used by dead-function elimination (§4.F.5).
func ReachableFromEntryPoints(m *ir.Module) map[ir.Id]bool {
	reachable := make(map[ir.Id]bool)
	for _, fn := range EntryPointPostOrder(m) {
		reachable[fn.Id()] = true
	}
	return reachable
}
