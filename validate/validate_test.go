package validate

import (
	"testing"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

func buildValidModule(t *testing.T) *ir.Module {
	t.Helper()
	words := []uint32{binary.MagicNumber, 0x00010300, 0, 10, 0}
	app := func(op ir.OpCode, body ...uint32) {
		words = append(words, (uint32(len(body)+1)<<16)|uint32(op))
		words = append(words, body...)
	}
	app(ir.OpCapability, 1)
	app(ir.OpMemoryModel, 0, 1)
	app(ir.OpTypeVoid, 1)
	app(ir.OpTypeFunction, 2, 1)
	app(ir.OpFunction, 1, 3, 0, 2)
	app(ir.OpLabel, 4)
	app(ir.OpReturn)
	app(ir.OpFunctionEnd)

	data := make([]byte, len(words)*4)
	for i, w := range words {
		data[4*i] = byte(w)
		data[4*i+1] = byte(w >> 8)
		data[4*i+2] = byte(w >> 16)
		data[4*i+3] = byte(w >> 24)
	}
	m, err := binary.Read(data, 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	return m
}

func TestValidate_CleanModule(t *testing.T) {
	m := buildValidModule(t)
	if diags := Validate(m, nil, Options{}); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestValidate_MissingShaderCapability(t *testing.T) {
	m := buildValidModule(t)
	m.Capabilities.Remove(m.Capabilities.Front())

	diags := Validate(m, nil, Options{})
	found := false
	for _, d := range diags {
		if d.Kind == diag.InvalidCapability {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InvalidCapability diagnostic, got %v", diags)
	}
}

func TestValidate_DanglingMergeBlock(t *testing.T) {
	m := buildValidModule(t)
	fn := m.FunctionSlice()[0]
	entry := fn.EntryBlock()
	// Insert a selection merge before the terminator, making the entry
	// block a selection header whose merge target does not exist in the
	// function.
	merge := ir.NewInstruction(ir.OpSelectionMerge, ir.NoResult, ir.NoResult, ir.IdOperand(999), ir.EnumOperand(0))
	entry.AddInstruction(merge, m.DefUse())

	diags := Validate(m, nil, Options{})
	found := false
	for _, d := range diags {
		if d.Kind == diag.InvalidLayout {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InvalidLayout diagnostic for the dangling merge block, got %v", diags)
	}
}

func TestValidate_SkipBlockLayoutSuppressesDanglingMerge(t *testing.T) {
	m := buildValidModule(t)
	fn := m.FunctionSlice()[0]
	entry := fn.EntryBlock()
	merge := ir.NewInstruction(ir.OpSelectionMerge, ir.NoResult, ir.NoResult, ir.IdOperand(999), ir.EnumOperand(0))
	entry.AddInstruction(merge, m.DefUse())

	diags := Validate(m, nil, Options{SkipBlockLayout: true})
	for _, d := range diags {
		if d.Kind == diag.InvalidLayout {
			t.Fatalf("expected no InvalidLayout diagnostic with SkipBlockLayout set, got %v", diags)
		}
	}
}

func TestValidate_PointerParameterRejectedUnlessRelaxed(t *testing.T) {
	words := []uint32{binary.MagicNumber, 0x00010300, 0, 20, 0}
	app := func(op ir.OpCode, body ...uint32) {
		words = append(words, (uint32(len(body)+1)<<16)|uint32(op))
		words = append(words, body...)
	}
	app(ir.OpCapability, 1)
	app(ir.OpMemoryModel, 0, 1)
	app(ir.OpTypeVoid, 1)
	app(ir.OpTypeInt, 5, 32, 1)
	app(ir.OpTypePointer, 6, uint32(ir.StorageClassFunction), 5)
	app(ir.OpTypeFunction, 2, 1, 6)
	app(ir.OpFunction, 1, 3, 0, 2)
	app(ir.OpFunctionParameter, 6, 7)
	app(ir.OpLabel, 4)
	app(ir.OpReturn)
	app(ir.OpFunctionEnd)

	data := make([]byte, len(words)*4)
	for i, w := range words {
		data[4*i] = byte(w)
		data[4*i+1] = byte(w >> 8)
		data[4*i+2] = byte(w >> 16)
		data[4*i+3] = byte(w >> 24)
	}
	m, err := binary.Read(data, 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}

	diags := Validate(m, nil, Options{})
	found := false
	for _, d := range diags {
		if d.Kind == diag.InvalidLayout {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InvalidLayout diagnostic for the pointer parameter, got %v", diags)
	}

	relaxed := Validate(m, nil, Options{RelaxLogicalPointer: true})
	for _, d := range relaxed {
		if d.Kind == diag.InvalidLayout {
			t.Fatalf("expected RelaxLogicalPointer to suppress the pointer-parameter diagnostic, got %v", relaxed)
		}
	}
}
