package ir

import (
	"container/list"
	"sync/atomic"

	"fortio.org/safecast"
)

var seqCounter uint64

func nextSeq() uint64 { return atomic.AddUint64(&seqCounter, 1) }

// Instruction is a single SPIR-V instruction: an opcode, an optional
// result type id, an optional result id, and an ordered list of
// in-operands (everything that follows the result-type/result-id
// slots in the wire encoding).
//
// An Instruction belongs to at most one owning container at a time —
// a BasicBlock's body, a Function's parameter list, or one of a
// Module's top-level sections — tracked by elem/owner so
// Module.KillInst can splice it out in O(1). These back-references are
// non-owning bookkeeping maintained entirely by the container helpers
// in this package (module.go, block.go, function.go); nothing else
// should set them directly.
type Instruction struct {
	seq        uint64
	opcode     OpCode
	resultType Id
	resultID   Id
	operands   []Operand

	elem  *list.Element
	owner *list.List

	block    *BasicBlock // non-nil when this instruction lives in a block
	function *Function   // non-nil for OpFunction/OpFunctionParameter/OpFunctionEnd
}

// NewInstruction constructs a detached instruction. Insert it into a
// block, function or module section (see BasicBlock.PushInstruction/
// AddInstruction, Function.AddParameter, Module section Append* helpers) to make it
// live and registered with the Def/Use database.
func NewInstruction(op OpCode, resultType, resultID Id, operands ...Operand) *Instruction {
	return &Instruction{
		seq:        nextSeq(),
		opcode:     op,
		resultType: resultType,
		resultID:   resultID,
		operands:   operands,
	}
}

// Seq returns the stable unique sequence number assigned at
// construction, used for total orderings (e.g. the annotation
// processing order in the ADCE pass's module-level cleanup).
func (i *Instruction) Seq() uint64 { return i.seq }

// Less provides a total order over instructions by sequence number.
func (i *Instruction) Less(other *Instruction) bool { return i.seq < other.seq }

func (i *Instruction) Opcode() OpCode { return i.opcode }
func (i *Instruction) TypeId() Id     { return i.resultType }
func (i *Instruction) ResultId() Id   { return i.resultID }
func (i *Instruction) HasResult() bool { return i.resultID != NoResult }

// Block returns the basic block this instruction belongs to, or nil if
// it is a module- or function-scope instruction.
func (i *Instruction) Block() *BasicBlock { return i.block }

// Function returns the function this instruction belongs to (its
// OpFunction/OpFunctionParameter/OpFunctionEnd, or any instruction
// inside one of its blocks), or nil at module scope.
func (i *Instruction) Function() *Function {
	if i.function != nil {
		return i.function
	}
	if i.block != nil {
		return i.block.function
	}
	return nil
}

// NumOperands returns the number of in-operands.
func (i *Instruction) NumOperands() int { return len(i.operands) }

// Operand returns the k-th in-operand.
func (i *Instruction) Operand(k int) Operand { return i.operands[k] }

// Operands returns the in-operand list. Callers must not mutate the
// returned slice in place; use AppendOperand/RemoveOperandAt instead.
// Neither of those updates the Def/Use database.
func (i *Instruction) Operands() []Operand { return i.operands }

// GetSingleWordInOperand returns the raw word of the k-th in-operand —
// convenient for enum/literal operands such as a merge instruction's
// selection-control word or a decoration's target id when the caller
// already knows the shape.
func (i *Instruction) GetSingleWordInOperand(k int) uint32 { return i.operands[k].Word }

// InOperandId returns the k-th in-operand's id, assuming it is an
// id-ref operand.
func (i *Instruction) InOperandId(k int) Id { return i.operands[k].Id() }

// ForEachInId calls f with every id-ref operand's id, in operand
// order. It does not include the result type id (see TypeId).
func (i *Instruction) ForEachInId(f func(id Id)) {
	for _, op := range i.operands {
		if op.Kind == OperandIdRef {
			f(Id(op.Word))
		}
	}
}

// replaceOperandWord overwrites the k-th operand's raw word; it does
// not touch the Def/Use database itself.
func (i *Instruction) replaceOperandWord(k int, v uint32) { i.operands[k].Word = v }

// AppendOperand appends a trailing operand. Callers that need the
// Def/Use database updated for a new id-ref operand should call
// DefUse.AnalyzeInstDefUse again.
func (i *Instruction) AppendOperand(op Operand) { i.operands = append(i.operands, op) }

// RemoveOperandAt removes the in-operand at index k, shifting later
// operands down. Used by the module-level cleanup pass to prune dead
// targets out of OpGroupDecorate/OpGroupMemberDecorate in place. It
// does not update the Def/Use database: the removed operand's id keeps
// this instruction among its users.
func (i *Instruction) RemoveOperandAt(k int) {
	i.operands = append(i.operands[:k], i.operands[k+1:]...)
}

// IsTerminator reports whether this instruction ends a basic block.
func (i *Instruction) IsTerminator() bool { return IsTerminator(i.opcode) }

// IsBranch reports whether this instruction is a branch terminator
// (OpBranch, OpBranchConditional, OpSwitch).
func (i *Instruction) IsBranch() bool { return IsBranch(i.opcode) }

// IsMerge reports whether this instruction is a structured merge
// instruction (OpSelectionMerge or OpLoopMerge).
func (i *Instruction) IsMerge() bool {
	return i.opcode == OpSelectionMerge || i.opcode == OpLoopMerge
}

// IsAnnotation, IsDebug, IsType and IsConstant mirror the package-level
// opcode classification functions for convenience.
func (i *Instruction) IsAnnotation() bool { return IsAnnotationOp(i.opcode) }
func (i *Instruction) IsDebug() bool      { return IsDebugOp(i.opcode) }
func (i *Instruction) IsType() bool       { return IsTypeOp(i.opcode) }
func (i *Instruction) IsConstant() bool   { return IsConstantOp(i.opcode) }
func (i *Instruction) IsCombinator() bool { return IsCombinator(i.opcode) }

// wordCount32 safely narrows a word/operand count to uint32 for
// encoding, surfacing overflow instead of silently wrapping.
func wordCount32(n int) (uint32, error) {
	return safecast.Conv[uint32](n)
}
