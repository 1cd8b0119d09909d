package ir

import "container/list"

// BasicBlock is a label instruction plus a non-empty ordered sequence
// of instructions ending in exactly one terminator. A block may carry
// at most one merge instruction (OpSelectionMerge/OpLoopMerge)
// immediately preceding its terminator, making it a structured header.
type BasicBlock struct {
	id       Id
	instrs   *list.List // *Instruction; front is OpLabel, back is the terminator
	function *Function
	listElem *list.Element // this block's element in function.blocks
}

func newBasicBlock(label *Instruction) *BasicBlock {
	b := &BasicBlock{id: label.ResultId(), instrs: list.New()}
	b.pushBack(label)
	return b
}

func (b *BasicBlock) pushBack(inst *Instruction) {
	elem := b.instrs.PushBack(inst)
	inst.elem = elem
	inst.owner = b.instrs
	inst.block = b
}

// Id returns the block's label id.
func (b *BasicBlock) Id() Id { return b.id }

// Function returns the owning function.
func (b *BasicBlock) Function() *Function { return b.function }

// Label returns the OpLabel instruction heading the block.
func (b *BasicBlock) Label() *Instruction { return b.instrs.Front().Value.(*Instruction) }

// Terminator returns the instruction ending the block.
func (b *BasicBlock) Terminator() *Instruction { return b.instrs.Back().Value.(*Instruction) }

// MergeInst returns the block's structured merge instruction
// (OpSelectionMerge/OpLoopMerge), or nil if the block is not a
// structured header.
func (b *BasicBlock) MergeInst() *Instruction {
	e := b.instrs.Back().Prev()
	if e == nil {
		return nil
	}
	inst := e.Value.(*Instruction)
	if inst.IsMerge() {
		return inst
	}
	return nil
}

// IsStructuredHeader reports whether the block carries a merge
// instruction, and returns it along with the block's terminator
// (branch) and the merge's target block id.
func (b *BasicBlock) IsStructuredHeader() (merge, branch *Instruction, mergeBlockId Id, ok bool) {
	merge = b.MergeInst()
	if merge == nil {
		return nil, nil, 0, false
	}
	branch = b.Terminator()
	mergeBlockId = merge.InOperandId(0)
	return merge, branch, mergeBlockId, true
}

// Len returns the number of instructions in the block, including the
// label and terminator.
func (b *BasicBlock) Len() int { return b.instrs.Len() }

// ForEachInst visits every instruction in the block in order. f may
// kill the current instruction (via Module.KillInst); iteration
// snapshots the next element before calling f so that is safe.
func (b *BasicBlock) ForEachInst(f func(inst *Instruction)) {
	for e := b.instrs.Front(); e != nil; {
		next := e.Next()
		f(e.Value.(*Instruction))
		e = next
	}
}

// Instructions returns the block's instructions as a slice snapshot,
// in order, including the label and terminator.
func (b *BasicBlock) Instructions() []*Instruction {
	out := make([]*Instruction, 0, b.instrs.Len())
	for e := b.instrs.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Instruction))
	}
	return out
}

// PushInstruction appends inst as the block's next instruction in wire
// order and registers it with du. Used by the binary reader while a
// block is still being assembled, before its terminator is known
// (AddInstruction cannot be used yet since it inserts before the
// existing terminator).
func (b *BasicBlock) PushInstruction(inst *Instruction, du *DefUse) {
	b.pushBack(inst)
	du.AnalyzeInstDefUse(inst)
}

// AddInstruction appends inst to the block's body, immediately before
// the current terminator, and registers it with du. Used by
// transforms (e.g. ADCE's synthesized branch) that insert new
// instructions.
func (b *BasicBlock) AddInstruction(inst *Instruction, du *DefUse) {
	term := b.instrs.Back()
	elem := b.instrs.InsertBefore(inst, term)
	inst.elem = elem
	inst.owner = b.instrs
	inst.block = b
	du.AnalyzeInstDefUse(inst)
}

// ReplaceTerminator removes the current terminator and appends newTerm
// as the block's new, sole terminator, keeping du consistent.
func (b *BasicBlock) ReplaceTerminator(newTerm *Instruction, du *DefUse) {
	old := b.Terminator()
	du.KillInst(old)
	b.pushBack(newTerm)
	du.AnalyzeInstDefUse(newTerm)
}
