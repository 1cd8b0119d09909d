package ir

import "container/list"

// Header holds the five fixed words of a SPIR-V module header (magic
// is implicit — package binary checks it on read and writes it on
// encode).
type Header struct {
	Version   uint32 // (major<<16)|(minor<<8)
	Generator uint32
	IdBound   Id
	Schema    uint32
}

// Module is the in-memory container for a SPIR-V module: one ordered
// list per logical section, in the order the binary format requires,
// plus the Def/Use database that indexes every id in the module.
//
// Each section is a container/list.List so that, per §4.B, erasing an
// instruction given its position is O(1) — Module.KillInst relies on
// this.
type Module struct {
	Header Header

	Capabilities   *list.List // *Instruction (OpCapability)
	Extensions     *list.List // *Instruction (OpExtension)
	ExtInstImports *list.List // *Instruction (OpExtInstImport)
	MemoryModel    *Instruction
	EntryPoints    *list.List // *Instruction (OpEntryPoint)
	ExecutionModes *list.List // *Instruction (OpExecutionMode)
	DebugStrings   *list.List // *Instruction (OpString/OpSource*)
	DebugNames     *list.List // *Instruction (OpName/OpMemberName)
	Annotations    *list.List // *Instruction (OpDecorate and friends)
	TypesValues    *list.List // *Instruction (types, constants, global OpVariable)
	Functions      *list.List // *Function

	du *DefUse

	functionsById map[Id]*Function
}

// NewModule returns an empty module with all sections initialized and
// an empty Def/Use database.
func NewModule() *Module {
	return &Module{
		Capabilities:   list.New(),
		Extensions:     list.New(),
		ExtInstImports: list.New(),
		EntryPoints:    list.New(),
		ExecutionModes: list.New(),
		DebugStrings:   list.New(),
		DebugNames:     list.New(),
		Annotations:    list.New(),
		TypesValues:    list.New(),
		Functions:      list.New(),
		du:             NewDefUse(),
		functionsById:  make(map[Id]*Function),
	}
}

// DefUse returns the module's Def/Use database.
func (m *Module) DefUse() *DefUse { return m.du }

func appendTo(section *list.List, inst *Instruction, du *DefUse) {
	elem := section.PushBack(inst)
	inst.elem = elem
	inst.owner = section
	du.AnalyzeInstDefUse(inst)
}

func (m *Module) AppendCapability(inst *Instruction)   { appendTo(m.Capabilities, inst, m.du) }
func (m *Module) AppendExtension(inst *Instruction)     { appendTo(m.Extensions, inst, m.du) }
func (m *Module) AppendExtInstImport(inst *Instruction) { appendTo(m.ExtInstImports, inst, m.du) }
func (m *Module) AppendEntryPoint(inst *Instruction)    { appendTo(m.EntryPoints, inst, m.du) }
func (m *Module) AppendExecutionMode(inst *Instruction) { appendTo(m.ExecutionModes, inst, m.du) }
func (m *Module) AppendDebugString(inst *Instruction)   { appendTo(m.DebugStrings, inst, m.du) }
func (m *Module) AppendDebugName(inst *Instruction)     { appendTo(m.DebugNames, inst, m.du) }
func (m *Module) AppendAnnotation(inst *Instruction)    { appendTo(m.Annotations, inst, m.du) }
func (m *Module) AppendTypeValue(inst *Instruction)     { appendTo(m.TypesValues, inst, m.du) }

// SetMemoryModel records the module's single required OpMemoryModel
// instruction (it has no result id and so is not owned by a list).
func (m *Module) SetMemoryModel(inst *Instruction) { m.MemoryModel = inst }

// AddFunction begins a new function headed by defInst (an
// OpFunction), appends it to the module, and returns it.
func (m *Module) AddFunction(defInst *Instruction) *Function {
	f := newFunction(m, defInst)
	elem := m.Functions.PushBack(f)
	f.moduleElem = elem
	m.du.AnalyzeInstDefUse(defInst)
	m.functionsById[defInst.ResultId()] = f
	return f
}

// RemoveFunction splices f out of the module's function list in O(1).
// Its instructions are not killed; callers must kill them first (see
// eliminateFunction in package adce).
func (m *Module) RemoveFunction(f *Function) {
	if f.moduleElem != nil {
		m.Functions.Remove(f.moduleElem)
		f.moduleElem = nil
	}
	delete(m.functionsById, f.Id())
}

// FunctionById looks up a function by its OpFunction result id.
func (m *Module) FunctionById(id Id) *Function { return m.functionsById[id] }

// ForEachFunction visits every function in module order. fn may not
// remove the current function; collect and call RemoveFunction
// afterwards instead (see eliminateDeadFunctions in package adce).
func (m *Module) ForEachFunction(fn func(f *Function)) {
	for e := m.Functions.Front(); e != nil; e = e.Next() {
		fn(e.Value.(*Function))
	}
}

// FunctionSlice returns a slice snapshot of the module's functions in
// order.
func (m *Module) FunctionSlice() []*Function {
	out := make([]*Function, 0, m.Functions.Len())
	for e := m.Functions.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Function))
	}
	return out
}

// MarkEntryPoints scans the EntryPoints section and flags the
// corresponding functions as entry points. Call after all
// OpEntryPoint and OpFunction instructions have been loaded.
func (m *Module) MarkEntryPoints() {
	const entryPointFunctionIdInIdx = 1
	for e := m.EntryPoints.Front(); e != nil; e = e.Next() {
		ep := e.Value.(*Instruction)
		fid := ep.InOperandId(entryPointFunctionIdInIdx)
		if f := m.functionsById[fid]; f != nil {
			f.entryPoint = true
		}
	}
}

// KillInst removes inst from the Def/Use database and splices it out
// of whichever list currently owns it (a block's body, a function's
// parameter list, or a module section). It is the single entry point
// for destroying an instruction; direct operand edits that bypass it
// are forbidden (§5).
func (m *Module) KillInst(inst *Instruction) {
	m.du.KillInst(inst)
}

// HasCapability reports whether the module declares the given
// capability operand value.
func (m *Module) HasCapability(cap uint32) bool {
	for e := m.Capabilities.Front(); e != nil; e = e.Next() {
		if e.Value.(*Instruction).GetSingleWordInOperand(0) == cap {
			return true
		}
	}
	return false
}

// ForEachExtensionName calls f with each declared extension's name.
func (m *Module) ForEachExtensionName(f func(name string)) {
	for e := m.Extensions.Front(); e != nil; e = e.Next() {
		inst := e.Value.(*Instruction)
		if inst.NumOperands() > 0 {
			f(inst.Operand(0).Str)
		}
	}
}
