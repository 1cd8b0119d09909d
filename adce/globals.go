package adce

import (
	"sort"

	"github.com/gogpu/spirvtools/ir"
)

// decorationPriority ranks annotation opcodes in the order
// ProcessGlobalValues must handle them: group decorates first (so
// their dead targets are pruned before anything asks whether the
// group itself is still used), then the simple per-id/per-member
// decorations, and decoration groups last (by then every possible
// user has been resolved, so an unused group is unambiguously dead).
func decorationPriority(op ir.OpCode) int {
	switch op {
	case ir.OpGroupDecorate:
		return 0
	case ir.OpGroupMemberDecorate:
		return 1
	case ir.OpDecorate:
		return 2
	case ir.OpMemberDecorate:
		return 3
	case ir.OpDecorateId:
		return 4
	case ir.OpDecorationGroup:
		return 5
	default:
		return 6
	}
}

// decorationLess orders annotation instructions for ProcessGlobalValues,
// falling back to declaration order (instruction sequence number) for
// a total order among same-opcode instructions.
func decorationLess(a, b *ir.Instruction) bool {
	pa, pb := decorationPriority(a.Opcode()), decorationPriority(b.Opcode())
	if pa != pb {
		return pa < pb
	}
	return a.Less(b)
}

// initializeModuleScopeLiveInstructions seeds every execution mode,
// every entry point, and any decoration marking the required
// BuiltIn WorkgroupSize — the module-scope facts that must survive
// regardless of whether anything in a function body still references
// them.
func (s *state) initializeModuleScopeLiveInstructions() {
	m := s.module
	for e := m.ExecutionModes.Front(); e != nil; e = e.Next() {
		s.addToWorklist(e.Value.(*ir.Instruction))
	}
	for e := m.EntryPoints.Front(); e != nil; e = e.Next() {
		s.addToWorklist(e.Value.(*ir.Instruction))
	}
	for e := m.Annotations.Front(); e != nil; e = e.Next() {
		anno := e.Value.(*ir.Instruction)
		if anno.Opcode() != ir.OpDecorate || anno.NumOperands() < 3 {
			continue
		}
		if ir.Decoration(anno.GetSingleWordInOperand(1)) == ir.DecorationBuiltIn &&
			ir.BuiltIn(anno.GetSingleWordInOperand(2)) == ir.BuiltInWorkgroupSize {
			s.addToWorklist(anno)
		}
	}
}

// processGlobalValues removes OpName instructions naming dead targets,
// prunes (or removes) annotations targeting dead ids in DecorationLess
// order, and queues dead types/constants/global variables for the
// final kill. It must run after every function has been processed, so
// that every use of a global id has already been discovered.
func (s *state) processGlobalValues() bool {
	m := s.module
	modified := false

	for e := m.DebugNames.Front(); e != nil; {
		next := e.Next()
		inst := e.Value.(*ir.Instruction)
		if inst.Opcode() == ir.OpName && s.isTargetDead(inst) {
			m.KillInst(inst)
			modified = true
		}
		e = next
	}

	var annotations []*ir.Instruction
	for e := m.Annotations.Front(); e != nil; e = e.Next() {
		annotations = append(annotations, e.Value.(*ir.Instruction))
	}
	sort.Slice(annotations, func(i, j int) bool { return decorationLess(annotations[i], annotations[j]) })

	for _, anno := range annotations {
		switch anno.Opcode() {
		case ir.OpDecorate, ir.OpMemberDecorate, ir.OpDecorateId:
			if s.isTargetDead(anno) {
				m.KillInst(anno)
				modified = true
			}
		case ir.OpGroupDecorate:
			dead := true
			for i := 1; i < anno.NumOperands(); {
				opInst := s.du.GetDef(anno.InOperandId(i))
				if opInst != nil && s.isDead(opInst) {
					anno.RemoveOperandAt(i)
					modified = true
				} else {
					i++
					dead = false
				}
			}
			if dead {
				m.KillInst(anno)
				modified = true
			}
		case ir.OpGroupMemberDecorate:
			dead := true
			for i := 1; i < anno.NumOperands(); {
				opInst := s.du.GetDef(anno.InOperandId(i))
				if opInst != nil && s.isDead(opInst) {
					anno.RemoveOperandAt(i + 1)
					anno.RemoveOperandAt(i)
					modified = true
				} else {
					i += 2
					dead = false
				}
			}
			if dead {
				m.KillInst(anno)
				modified = true
			}
		case ir.OpDecorationGroup:
			if s.du.NumUsers(anno.ResultId()) == 0 {
				m.KillInst(anno)
				modified = true
			}
		}
	}

	for e := m.TypesValues.Front(); e != nil; e = e.Next() {
		inst := e.Value.(*ir.Instruction)
		if s.isDead(inst) {
			s.toKill = append(s.toKill, inst)
			modified = true
		}
	}

	return modified
}
