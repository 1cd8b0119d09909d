package binary

import (
	"container/list"

	"github.com/gogpu/spirvtools/ir"
)

// Write re-encodes m into the SPIR-V binary format. The id bound in
// the emitted header is recomputed from the highest id actually
// referenced in m, independent of whatever m.Header.IdBound currently
// holds — so Write(Read(b)) reproduces b's instructions even if a
// transform shrank the id space (§8); an OpLine that sat in a function
// body comes back in the debug section (see the package doc).
func Write(m *ir.Module) []byte {
	var words []uint32
	emit := func(inst *ir.Instruction) { words = append(words, encodeInstruction(inst)...) }

	bound := computeIdBound(m)
	words = append(words, MagicNumber, m.Header.Version, m.Header.Generator, uint32(bound), m.Header.Schema)

	emitSection(m.Capabilities, emit)
	emitSection(m.Extensions, emit)
	emitSection(m.ExtInstImports, emit)
	if m.MemoryModel != nil {
		emit(m.MemoryModel)
	}
	emitSection(m.EntryPoints, emit)
	emitSection(m.ExecutionModes, emit)
	emitSection(m.DebugStrings, emit)
	emitSection(m.DebugNames, emit)
	emitSection(m.Annotations, emit)
	emitSection(m.TypesValues, emit)
	m.ForEachFunction(func(fn *ir.Function) {
		emit(fn.DefInst())
		fn.ForEachParam(emit)
		fn.ForEachBlock(func(b *ir.BasicBlock) {
			for _, inst := range b.Instructions() {
				emit(inst)
			}
		})
		if fn.EndInst() != nil {
			emit(fn.EndInst())
		}
	})

	return wordsToBytes(words)
}

func emitSection(section *list.List, emit func(*ir.Instruction)) {
	for e := section.Front(); e != nil; e = e.Next() {
		emit(e.Value.(*ir.Instruction))
	}
}

func encodeInstruction(inst *ir.Instruction) []uint32 {
	var body []uint32
	if inst.TypeId() != ir.NoResult {
		body = append(body, uint32(inst.TypeId()))
	}
	if inst.HasResult() {
		body = append(body, uint32(inst.ResultId()))
	}
	for _, op := range inst.Operands() {
		if op.Kind == ir.OperandLiteralString {
			body = append(body, encodeString(op.Str)...)
		} else {
			body = append(body, op.Word)
		}
	}
	wordCount := uint32(1 + len(body))
	out := make([]uint32, 0, wordCount)
	out = append(out, (wordCount<<16)|uint32(inst.Opcode()))
	out = append(out, body...)
	return out
}

// computeIdBound finds the highest id referenced anywhere in m and
// returns one past it, matching the SPIR-V header's "all <id>s in this
// module are less than the bound" contract.
func computeIdBound(m *ir.Module) ir.Id {
	var max ir.Id
	note := func(id ir.Id) {
		if id > max {
			max = id
		}
	}
	visit := func(inst *ir.Instruction) {
		note(inst.TypeId())
		note(inst.ResultId())
		inst.ForEachInId(note)
	}
	emitSection(m.Capabilities, visit)
	emitSection(m.Extensions, visit)
	emitSection(m.ExtInstImports, visit)
	if m.MemoryModel != nil {
		visit(m.MemoryModel)
	}
	emitSection(m.EntryPoints, visit)
	emitSection(m.ExecutionModes, visit)
	emitSection(m.DebugStrings, visit)
	emitSection(m.DebugNames, visit)
	emitSection(m.Annotations, visit)
	emitSection(m.TypesValues, visit)
	m.ForEachFunction(func(fn *ir.Function) {
		visit(fn.DefInst())
		fn.ForEachParam(visit)
		fn.ForEachBlock(func(b *ir.BasicBlock) {
			for _, inst := range b.Instructions() {
				visit(inst)
			}
		})
		if fn.EndInst() != nil {
			visit(fn.EndInst())
		}
	})
	return max + 1
}
