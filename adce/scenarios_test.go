package adce

import (
	"testing"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
	"github.com/gogpu/spirvtools/pass"
)

// TestADCE_DeadFunctionElimination builds an entry point "main" that
// calls a live helper, alongside an unreachable helper with no caller
// anywhere in the module, matching §8 scenario 4. The live helper is
// defined ahead of main, since AddFunction always allocates its own id.
func TestADCE_DeadFunctionElimination(t *testing.T) {
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)

	liveHelper := b.AddFunction(void, 0, fnType) // called from main below
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	main := b.AddFunction(void, 0, fnType)
	b.AddLabel()
	b.AddFunctionCall(void, liveHelper)
	b.AddReturn()
	b.AddFunctionEnd()

	deadHelper := b.AddFunction(void, 0, fnType) // never called
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(0, main, "main")

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	if got := len(m.FunctionSlice()); got != 3 {
		t.Fatalf("fixture setup: expected 3 functions before the run, got %d", got)
	}
	if m.FunctionById(liveHelper) == nil {
		t.Fatalf("fixture setup: expected the live helper called by main to be defined")
	}

	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("ADCE run failed: %v", err)
	}
	if status != pass.SuccessChanged {
		t.Fatalf("expected SuccessChanged, got %v", status)
	}

	fns := m.FunctionSlice()
	if len(fns) != 2 {
		t.Fatalf("expected the unreachable helper removed, got %d functions left", len(fns))
	}
	for _, fn := range fns {
		if fn.Id() == deadHelper {
			t.Fatalf("dead helper should have been removed")
		}
	}
}

// TestADCE_ExtensionGate builds a module declaring an extension absent
// from the allow-list: ADCE must report SuccessNoChange and leave the
// module untouched, matching §8 scenario 5.
func TestADCE_ExtensionGate(t *testing.T) {
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.AddExtension("SPV_KHR_variable_pointers")
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	deadIntType := b.AddTypeInt(32, true) // dead, would be removed if ADCE ran
	b.AddConstant(deadIntType, 42)        // dead, would be removed if ADCE ran
	main := b.AddFunction(void, 0, fnType)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(0, main, "main")

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}

	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("ADCE run failed: %v", err)
	}
	if status != pass.SuccessNoChange {
		t.Fatalf("expected SuccessNoChange for an unrecognized extension, got %v", status)
	}
	if got := countTypesValues(m); got != 4 {
		t.Fatalf("module should be untouched when the extension is not allow-listed, got %d types/values", got)
	}
}

// TestADCE_GroupDecoratePrunesDeadTargets builds an OpDecorationGroup
// applied via OpGroupDecorate to three targets, two of which are never
// used elsewhere. After ADCE the group-decorate's operand list must
// shrink to the surviving target and the group itself must remain
// (still referenced by the shrunk instruction), matching §8 scenario
// 6 and the ordering rule in §4.F.4.
func TestADCE_GroupDecoratePrunesDeadTargets(t *testing.T) {
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	intType := b.AddTypeInt(32, true)
	ptrType := b.AddTypePointer(ir.StorageClassOutput, intType)
	outputVar := b.AddGlobalVariable(ptrType, ir.StorageClassOutput)
	liveTarget := b.AddConstant(intType, 1) // kept alive below: the only live target
	b.AddConstant(intType, 2)               // dead target
	b.AddConstant(intType, 3)               // dead target

	group := b.AddDecorationGroup()
	b.AddDecorate(group, 0) // RelaxedPrecision, value irrelevant to the test
	b.AddGroupDecorate(group, liveTarget, liveTarget+1, liveTarget+2)

	main := b.AddFunction(void, 0, fnType)
	b.AddLabel()
	b.AddStore(outputVar, liveTarget)
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(0, main, "main")

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}

	groupDecorate := func() *ir.Instruction {
		for e := m.Annotations.Front(); e != nil; e = e.Next() {
			inst := e.Value.(*ir.Instruction)
			if inst.Opcode() == ir.OpGroupDecorate {
				return inst
			}
		}
		return nil
	}
	if gd := groupDecorate(); gd == nil || gd.NumOperands() != 4 {
		t.Fatalf("fixture setup: expected OpGroupDecorate with 4 operands before the run")
	}

	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("ADCE run failed: %v", err)
	}
	if status != pass.SuccessChanged {
		t.Fatalf("expected SuccessChanged, got %v", status)
	}

	gd := groupDecorate()
	if gd == nil {
		t.Fatalf("expected OpGroupDecorate to survive (still targets the live constant)")
	}
	if gd.NumOperands() != 2 {
		t.Fatalf("expected OpGroupDecorate pruned to (group, live-target), got %d operands", gd.NumOperands())
	}
	if gd.InOperandId(1) != liveTarget {
		t.Fatalf("expected the surviving target to be %s, got %s", liveTarget, gd.InOperandId(1))
	}

	groupStillPresent := false
	for e := m.Annotations.Front(); e != nil; e = e.Next() {
		if e.Value.(*ir.Instruction).Opcode() == ir.OpDecorationGroup {
			groupStillPresent = true
		}
	}
	if !groupStillPresent {
		t.Fatalf("expected the decoration group to survive: the pruned OpGroupDecorate still uses it")
	}
}

// TestADCE_LoopExitPreserved builds a loop whose body is otherwise
// dead except for a store through a non-local variable (always a
// seed) and a conditional break; after ADCE the break branch and the
// loop merge instruction must remain live, matching §8 scenario 3.
func TestADCE_LoopExitPreserved(t *testing.T) {
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	intType := b.AddTypeInt(32, true)
	ptrType := b.AddTypePointer(ir.StorageClassOutput, intType)
	outputVar := b.AddGlobalVariable(ptrType, ir.StorageClassOutput) // non-local: stores to it are seeds
	deadOperand := b.AddConstant(intType, 7)                         // feeds the dead add only
	liveValue := b.AddConstant(intType, 42)                          // feeds the live store
	boolType := b.AddTypeBool()
	breakCond := b.AddConstantTrue(boolType)

	main := b.AddFunction(void, 0, fnType)
	header := b.AllocId()
	body := b.AllocId()
	continueBlk := b.AllocId()
	merge := b.AllocId()

	b.AddLabel() // entry
	b.AddBranch(header)
	b.PlaceLabel(header)
	b.AddLoopMerge(merge, continueBlk, 0)
	b.AddBranch(body)
	b.PlaceLabel(body)
	deadAdd := b.AddBinaryOp(ir.OpIAdd, intType, deadOperand, deadOperand) // dead: result never used
	b.AddStore(outputVar, liveValue)                                      // seed: store through Output-class variable
	b.AddBranchConditional(breakCond, merge, continueBlk)                 // break to merge, or continue
	b.PlaceLabel(continueBlk)
	b.AddBranch(header)
	b.PlaceLabel(merge)
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(0, main, "main")

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}

	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("ADCE run failed: %v", err)
	}
	if status != pass.SuccessChanged {
		t.Fatalf("expected SuccessChanged (the dead OpIAdd should be removed), got %v", status)
	}

	fn := m.FunctionSlice()[0]
	var ids []ir.Id
	fn.ForEachBlock(func(blk *ir.BasicBlock) {
		blk.ForEachInst(func(inst *ir.Instruction) {
			if inst.HasResult() {
				ids = append(ids, inst.ResultId())
			}
		})
	})
	hasId := func(id ir.Id) bool {
		for _, got := range ids {
			if got == id {
				return true
			}
		}
		return false
	}
	if hasId(deadAdd) {
		t.Fatalf("expected the dead OpIAdd removed, still present: %v", ids)
	}

	bodyBlk := fn.BlockById(body)
	if bodyBlk == nil {
		t.Fatalf("expected the loop body block to survive (the store and break live there)")
	}
	term := bodyBlk.Terminator()
	if term == nil || term.Opcode() != ir.OpBranchConditional {
		t.Fatalf("expected the loop body's break branch to remain an OpBranchConditional, got %v", term)
	}

	headerBlk := fn.BlockById(header)
	if headerBlk == nil {
		t.Fatalf("expected the loop header block to survive")
	}
	if merge := headerBlk.MergeInst(); merge == nil || merge.Opcode() != ir.OpLoopMerge {
		t.Fatalf("expected the loop header to retain its OpLoopMerge, got %v", merge)
	}
}
