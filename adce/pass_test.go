package adce

import (
	"testing"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
	"github.com/gogpu/spirvtools/pass"
)

// buildModule assembles a minimal valid module with one Vertex entry
// point "main" plus an unreferenced OpTypeInt/OpConstant pair, so a
// run of ADCE has exactly one module-scope dead pair to remove.
func buildModule(t *testing.T) *ir.Module {
	t.Helper()
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	deadIntType := b.AddTypeInt(32, true) // dead: never referenced
	b.AddConstant(deadIntType, 42)        // dead: never referenced
	main := b.AddFunction(void, 0, fnType)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(0, main, "main") // ExecutionModelVertex

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	return m
}

func countTypesValues(m *ir.Module) int {
	n := 0
	for e := m.TypesValues.Front(); e != nil; e = e.Next() {
		n++
	}
	return n
}

func TestADCE_RemovesDeadGlobalConstant(t *testing.T) {
	m := buildModule(t)
	if got := countTypesValues(m); got != 4 {
		t.Fatalf("fixture setup: expected 4 types/values before the run, got %d", got)
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

	if got := countTypesValues(m); got != 2 {
		t.Fatalf("expected the dead OpTypeInt/OpConstant pair removed, got %d types/values left", got)
	}
}

func TestADCE_NoChangeWhenEverythingIsLive(t *testing.T) {
	m := buildModule(t)
	// Kill the dead pair up front so nothing is left to remove, then
	// confirm a second run reports SuccessNoChange rather than
	// spuriously flagging a change.
	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	if _, err := mgr.Run(m); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	mgr2 := pass.NewManager()
	mgr2.AddPass(New(Options{}))
	status, err := mgr2.Run(m)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if status != pass.SuccessNoChange {
		t.Fatalf("expected SuccessNoChange on an already-clean module, got %v", status)
	}
}

func TestADCE_SkipsModuleWithoutShaderCapability(t *testing.T) {
	m := buildModule(t)
	m.Capabilities.Remove(m.Capabilities.Front())

	mgr := pass.NewManager()
	mgr.AddPass(New(Options{}))
	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if status != pass.SuccessNoChange {
		t.Fatalf("expected SuccessNoChange without the Shader capability, got %v", status)
	}
	if got := countTypesValues(m); got != 4 {
		t.Fatalf("module should be untouched, got %d types/values", got)
	}
}

// TestADCE_LocalStoreEliminationPositiveAndNegative builds one entry
// function with two Function-storage locals: one stored and never
// loaded (eliminated, along with its now-unreferenced initializer
// constant and the now-dead local variable declaration itself), one
// stored and loaded (kept, since OpLoad is always seeded live and its
// closure marks the store that feeds it).
func TestADCE_LocalStoreEliminationPositiveAndNegative(t *testing.T) {
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	intType := b.AddTypeInt(32, true)
	ptrType := b.AddTypePointer(ir.StorageClassFunction, intType)
	deadInit := b.AddConstant(intType, 42) // feeds the dead store only
	liveInit := b.AddConstant(intType, 7)  // feeds the live store

	main := b.AddFunction(void, 0, fnType)
	b.AddLabel()
	deadVar := b.AddLocalVariable(ptrType, ir.StorageClassFunction) // dead local
	liveVar := b.AddLocalVariable(ptrType, ir.StorageClassFunction) // live local
	b.AddStore(deadVar, deadInit)
	b.AddStore(liveVar, liveInit)
	liveLoad := b.AddLoad(intType, liveVar)
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
		t.Fatalf("expected SuccessChanged, got %v", status)
	}

	fn := m.FunctionSlice()[0]
	entry := fn.EntryBlock()
	var ids []ir.Id
	entry.ForEachInst(func(inst *ir.Instruction) {
		if inst.HasResult() {
			ids = append(ids, inst.ResultId())
		}
	})
	hasId := func(id ir.Id) bool {
		for _, got := range ids {
			if got == id {
				return true
			}
		}
		return false
	}
	if hasId(deadVar) {
		t.Fatalf("expected dead local removed, block still has it: %v", ids)
	}
	if !hasId(liveVar) || !hasId(liveLoad) {
		t.Fatalf("expected live local and its load to survive, got %v", ids)
	}
	if countTypesValues(m) != 5 { // void, fn type, int, ptr, liveInit (deadInit removed)
		t.Fatalf("expected the dead store's constant removed, got %d types/values", countTypesValues(m))
	}
}
