package binary

import "github.com/gogpu/spirvtools/ir"

// instWords is one encoded instruction: its header word (word count and
// opcode packed per §6) followed by its body words.
type instWords []uint32

func encode(op ir.OpCode, body ...uint32) instWords {
	w := make(instWords, 0, len(body)+1)
	w = append(w, (uint32(len(body)+1)<<16)|uint32(op))
	w = append(w, body...)
	return w
}

// ModuleBuilder assembles a well-formed SPIR-V binary module
// instruction by instruction, id allocation included, so a test can
// describe a module in terms of what it declares rather than hand-
// packed words. Sections are kept separate and only concatenated, in
// SPIR-V's fixed layout order, by Build.
type ModuleBuilder struct {
	version   uint32
	generator uint32

	capabilities   []instWords
	extensions     []instWords
	extInstImports []instWords
	memoryModel    instWords
	entryPoints    []instWords
	executionModes []instWords
	debugStrings   []instWords
	debugNames     []instWords
	annotations    []instWords
	typesValues    []instWords
	functions      []instWords

	nextId uint32
}

// NewModuleBuilder returns a builder for a module with the given
// version word (e.g. 0x00010300 for SPIR-V 1.3). The header's generator
// word is 0.
func NewModuleBuilder(version uint32) *ModuleBuilder {
	return &ModuleBuilder{version: version, generator: 0, nextId: 1}
}

// AllocId reserves and returns the next unused id.
func (b *ModuleBuilder) AllocId() ir.Id {
	id := b.nextId
	b.nextId++
	return ir.Id(id)
}

// AddCapability appends OpCapability.
func (b *ModuleBuilder) AddCapability(c ir.Capability) {
	b.capabilities = append(b.capabilities, encode(ir.OpCapability, uint32(c)))
}

// AddExtension appends OpExtension.
func (b *ModuleBuilder) AddExtension(name string) {
	b.extensions = append(b.extensions, encode(ir.OpExtension, encodeString(name)...))
}

// SetMemoryModel sets OpMemoryModel (addressing, memory).
func (b *ModuleBuilder) SetMemoryModel(addressing, memory uint32) {
	b.memoryModel = encode(ir.OpMemoryModel, addressing, memory)
}

// AddEntryPoint appends OpEntryPoint for the given execution model,
// entry function id, name, and interface variable ids.
func (b *ModuleBuilder) AddEntryPoint(execModel uint32, fn ir.Id, name string, interfaces ...ir.Id) {
	body := append([]uint32{execModel, uint32(fn)}, encodeString(name)...)
	for _, iface := range interfaces {
		body = append(body, uint32(iface))
	}
	b.entryPoints = append(b.entryPoints, encode(ir.OpEntryPoint, body...))
}

// AddExecutionMode appends OpExecutionMode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint ir.Id, mode uint32, params ...uint32) {
	body := append([]uint32{uint32(entryPoint), mode}, params...)
	b.executionModes = append(b.executionModes, encode(ir.OpExecutionMode, body...))
}

// AddName appends OpName.
func (b *ModuleBuilder) AddName(target ir.Id, name string) {
	b.debugNames = append(b.debugNames, encode(ir.OpName, append([]uint32{uint32(target)}, encodeString(name)...)...))
}

// AddDecorate appends OpDecorate.
func (b *ModuleBuilder) AddDecorate(target ir.Id, decoration ir.Decoration, params ...uint32) {
	body := append([]uint32{uint32(target), uint32(decoration)}, params...)
	b.annotations = append(b.annotations, encode(ir.OpDecorate, body...))
}

// AddDecorationGroup appends OpDecorationGroup and returns its id.
func (b *ModuleBuilder) AddDecorationGroup() ir.Id {
	id := b.AllocId()
	b.annotations = append(b.annotations, encode(ir.OpDecorationGroup, uint32(id)))
	return id
}

// AddGroupDecorate appends OpGroupDecorate targeting group plus every
// id in targets.
func (b *ModuleBuilder) AddGroupDecorate(group ir.Id, targets ...ir.Id) {
	body := []uint32{uint32(group)}
	for _, t := range targets {
		body = append(body, uint32(t))
	}
	b.annotations = append(b.annotations, encode(ir.OpGroupDecorate, body...))
}

// AddTypeVoid appends OpTypeVoid and returns its id.
func (b *ModuleBuilder) AddTypeVoid() ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpTypeVoid, uint32(id)))
	return id
}

// AddTypeBool appends OpTypeBool and returns its id.
func (b *ModuleBuilder) AddTypeBool() ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpTypeBool, uint32(id)))
	return id
}

// AddTypeInt appends OpTypeInt and returns its id.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) ir.Id {
	id := b.AllocId()
	sign := uint32(0)
	if signed {
		sign = 1
	}
	b.typesValues = append(b.typesValues, encode(ir.OpTypeInt, uint32(id), width, sign))
	return id
}

// AddTypeFloat appends OpTypeFloat and returns its id.
func (b *ModuleBuilder) AddTypeFloat(width uint32) ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpTypeFloat, uint32(id), width))
	return id
}

// AddTypePointer appends OpTypePointer and returns its id.
func (b *ModuleBuilder) AddTypePointer(storageClass ir.StorageClass, base ir.Id) ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpTypePointer, uint32(id), uint32(storageClass), uint32(base)))
	return id
}

// AddTypeFunction appends OpTypeFunction and returns its id.
func (b *ModuleBuilder) AddTypeFunction(returnType ir.Id, paramTypes ...ir.Id) ir.Id {
	id := b.AllocId()
	body := []uint32{uint32(id), uint32(returnType)}
	for _, p := range paramTypes {
		body = append(body, uint32(p))
	}
	b.typesValues = append(b.typesValues, encode(ir.OpTypeFunction, body...))
	return id
}

// AddConstant appends OpConstant and returns its id.
func (b *ModuleBuilder) AddConstant(typeId ir.Id, literal uint32) ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpConstant, uint32(typeId), uint32(id), literal))
	return id
}

// AddConstantTrue appends OpConstantTrue and returns its id.
func (b *ModuleBuilder) AddConstantTrue(typeId ir.Id) ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpConstantTrue, uint32(typeId), uint32(id)))
	return id
}

// AddGlobalVariable appends a module-scope OpVariable (in the types
// and values section, per §6) and returns its id.
func (b *ModuleBuilder) AddGlobalVariable(pointerType ir.Id, storageClass ir.StorageClass) ir.Id {
	id := b.AllocId()
	b.typesValues = append(b.typesValues, encode(ir.OpVariable, uint32(pointerType), uint32(id), uint32(storageClass)))
	return id
}

// AddFunction appends OpFunction and returns its id. Every instruction
// added through the Add* methods below until the matching AddFunctionEnd
// belongs to this function.
func (b *ModuleBuilder) AddFunction(returnType ir.Id, control uint32, funcType ir.Id) ir.Id {
	id := b.AllocId()
	b.functions = append(b.functions, encode(ir.OpFunction, uint32(returnType), uint32(id), control, uint32(funcType)))
	return id
}

// AddFunctionEnd appends OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	b.functions = append(b.functions, encode(ir.OpFunctionEnd))
}

// AddLabel appends OpLabel, opening a new basic block, and returns its id.
func (b *ModuleBuilder) AddLabel() ir.Id {
	id := b.AllocId()
	b.functions = append(b.functions, encode(ir.OpLabel, uint32(id)))
	return id
}

// PlaceLabel appends OpLabel using an id reserved earlier by AllocId,
// for a block whose id a branch or structured-merge instruction needed
// to reference before the block itself was emitted.
func (b *ModuleBuilder) PlaceLabel(id ir.Id) {
	b.functions = append(b.functions, encode(ir.OpLabel, uint32(id)))
}

// AddLocalVariable appends OpVariable within the current block (a
// Function-storage local must be the first instructions of the entry
// block per the SPIR-V spec; callers are responsible for ordering).
func (b *ModuleBuilder) AddLocalVariable(pointerType ir.Id, storageClass ir.StorageClass) ir.Id {
	id := b.AllocId()
	b.functions = append(b.functions, encode(ir.OpVariable, uint32(pointerType), uint32(id), uint32(storageClass)))
	return id
}

// AddStore appends OpStore.
func (b *ModuleBuilder) AddStore(pointer, value ir.Id) {
	b.functions = append(b.functions, encode(ir.OpStore, uint32(pointer), uint32(value)))
}

// AddLoad appends OpLoad and returns its result id.
func (b *ModuleBuilder) AddLoad(resultType, pointer ir.Id) ir.Id {
	id := b.AllocId()
	b.functions = append(b.functions, encode(ir.OpLoad, uint32(resultType), uint32(id), uint32(pointer)))
	return id
}

// AddBinaryOp appends a two-operand arithmetic/logic instruction (e.g.
// OpIAdd) and returns its result id.
func (b *ModuleBuilder) AddBinaryOp(op ir.OpCode, resultType, lhs, rhs ir.Id) ir.Id {
	id := b.AllocId()
	b.functions = append(b.functions, encode(op, uint32(resultType), uint32(id), uint32(lhs), uint32(rhs)))
	return id
}

// AddFunctionCall appends OpFunctionCall and returns its result id.
func (b *ModuleBuilder) AddFunctionCall(resultType, fn ir.Id, args ...ir.Id) ir.Id {
	id := b.AllocId()
	body := []uint32{uint32(resultType), uint32(id), uint32(fn)}
	for _, a := range args {
		body = append(body, uint32(a))
	}
	b.functions = append(b.functions, encode(ir.OpFunctionCall, body...))
	return id
}

// AddSelectionMerge appends OpSelectionMerge.
func (b *ModuleBuilder) AddSelectionMerge(merge ir.Id, control uint32) {
	b.functions = append(b.functions, encode(ir.OpSelectionMerge, uint32(merge), control))
}

// AddLoopMerge appends OpLoopMerge.
func (b *ModuleBuilder) AddLoopMerge(merge, continueTarget ir.Id, control uint32) {
	b.functions = append(b.functions, encode(ir.OpLoopMerge, uint32(merge), uint32(continueTarget), control))
}

// AddBranch appends OpBranch.
func (b *ModuleBuilder) AddBranch(target ir.Id) {
	b.functions = append(b.functions, encode(ir.OpBranch, uint32(target)))
}

// AddBranchConditional appends OpBranchConditional.
func (b *ModuleBuilder) AddBranchConditional(condition, trueLabel, falseLabel ir.Id) {
	b.functions = append(b.functions, encode(ir.OpBranchConditional, uint32(condition), uint32(trueLabel), uint32(falseLabel)))
}

// AddReturn appends OpReturn.
func (b *ModuleBuilder) AddReturn() {
	b.functions = append(b.functions, encode(ir.OpReturn))
}

// Build assembles every section, in SPIR-V layout order, into a
// complete binary module and returns its bytes. The id bound is one
// past the highest id allocated.
func (b *ModuleBuilder) Build() []byte {
	var words []uint32
	words = append(words, MagicNumber, b.version, b.generator, b.nextId, 0)

	appendAll := func(sections ...instWords) {
		for _, s := range sections {
			words = append(words, s...)
		}
	}
	appendAll(b.capabilities...)
	appendAll(b.extensions...)
	appendAll(b.extInstImports...)
	if len(b.memoryModel) > 0 {
		words = append(words, b.memoryModel...)
	}
	appendAll(b.entryPoints...)
	appendAll(b.executionModes...)
	appendAll(b.debugStrings...)
	appendAll(b.debugNames...)
	appendAll(b.annotations...)
	appendAll(b.typesValues...)
	appendAll(b.functions...)

	return wordsToBytes(words)
}
