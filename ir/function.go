package ir

import "container/list"

// Function is an ordered list of basic blocks, with parameter
// declarations between its OpFunction and first block. The first
// block is the entry block.
type Function struct {
	module *Module

	defInst *Instruction // OpFunction
	params  *list.List   // *Instruction (OpFunctionParameter)
	endInst *Instruction // OpFunctionEnd
	blocks  *list.List   // *BasicBlock

	entryPoint bool // true iff this function's id appears in an OpEntryPoint
	moduleElem *list.Element // this function's element in module.functions
}

func newFunction(module *Module, defInst *Instruction) *Function {
	f := &Function{module: module, defInst: defInst, params: list.New(), blocks: list.New()}
	defInst.function = f
	return f
}

// Id returns the function's result id.
func (f *Function) Id() Id { return f.defInst.ResultId() }

// DefInst returns the OpFunction instruction.
func (f *Function) DefInst() *Instruction { return f.defInst }

// EndInst returns the OpFunctionEnd instruction, if set.
func (f *Function) EndInst() *Instruction { return f.endInst }

// SetEndInst records inst (an OpFunctionEnd) as terminating the
// function's declaration.
func (f *Function) SetEndInst(inst *Instruction) {
	inst.function = f
	f.endInst = inst
}

// Module returns the owning module.
func (f *Function) Module() *Module { return f.module }

// IsEntryPoint reports whether this function is named in some
// OpEntryPoint.
func (f *Function) IsEntryPoint() bool { return f.entryPoint }

// AddParameter registers inst as an OpFunctionParameter of f and
// records it with du.
func (f *Function) AddParameter(inst *Instruction, du *DefUse) {
	elem := f.params.PushBack(inst)
	inst.elem = elem
	inst.owner = f.params
	inst.function = f
	du.AnalyzeInstDefUse(inst)
}

// ForEachParam visits every parameter instruction in declaration
// order.
func (f *Function) ForEachParam(fn func(param *Instruction)) {
	for e := f.params.Front(); e != nil; e = e.Next() {
		fn(e.Value.(*Instruction))
	}
}

// NumParams returns the number of declared parameters.
func (f *Function) NumParams() int { return f.params.Len() }

// EntryBlock returns the function's first basic block, or nil if the
// function has no blocks (a declaration only).
func (f *Function) EntryBlock() *BasicBlock {
	if f.blocks.Len() == 0 {
		return nil
	}
	return f.blocks.Front().Value.(*BasicBlock)
}

// NumBlocks returns the number of basic blocks.
func (f *Function) NumBlocks() int { return f.blocks.Len() }

// AddBlock appends a new basic block headed by label, registers the
// label with du, and returns the block.
func (f *Function) AddBlock(label *Instruction, du *DefUse) *BasicBlock {
	b := newBasicBlock(label)
	b.function = f
	elem := f.blocks.PushBack(b)
	b.listElem = elem
	du.AnalyzeInstDefUse(label)
	return b
}

// ForEachBlock visits every block in layout order. fn may not remove
// the current block; collect the blocks and call RemoveBlock
// afterwards instead.
func (f *Function) ForEachBlock(fn func(b *BasicBlock)) {
	for e := f.blocks.Front(); e != nil; e = e.Next() {
		fn(e.Value.(*BasicBlock))
	}
}

// Blocks returns a slice snapshot of the function's blocks in layout
// order.
func (f *Function) Blocks() []*BasicBlock {
	out := make([]*BasicBlock, 0, f.blocks.Len())
	for e := f.blocks.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*BasicBlock))
	}
	return out
}

// BlockById finds the block whose label has the given id, or nil.
func (f *Function) BlockById(id Id) *BasicBlock {
	for e := f.blocks.Front(); e != nil; e = e.Next() {
		b := e.Value.(*BasicBlock)
		if b.id == id {
			return b
		}
	}
	return nil
}

// ForEachInst visits every instruction belonging to the function: the
// OpFunction header, every parameter, every instruction in every
// block, and OpFunctionEnd. fn may kill the current instruction.
func (f *Function) ForEachInst(fn func(inst *Instruction)) {
	fn(f.defInst)
	for e := f.params.Front(); e != nil; {
		next := e.Next()
		fn(e.Value.(*Instruction))
		e = next
	}
	for e := f.blocks.Front(); e != nil; e = e.Next() {
		e.Value.(*BasicBlock).ForEachInst(fn)
	}
	if f.endInst != nil {
		fn(f.endInst)
	}
}

// RemoveBlock splices b out of the function's block list in O(1). Its
// instructions are not killed; callers must kill them first.
func (f *Function) RemoveBlock(b *BasicBlock) {
	if b.listElem != nil {
		f.blocks.Remove(b.listElem)
		b.listElem = nil
	}
}
