// Package ir provides the in-memory representation of a SPIR-V module:
// the instruction model, the ordered module container, and the
// bidirectional definition/use database that every analysis and
// transform in this module builds on.
//
// # Structure
//
// An [Instruction] carries an opcode, an optional result type id, an
// optional result id, and an ordered operand list. An instruction
// belongs to at most one owning list: a [BasicBlock]'s body, a
// [Function]'s parameter list, or one of the [Module]'s top-level
// sections (OpFunction, OpFunctionEnd and OpMemoryModel are held
// directly by their Function or Module instead). Ownership is tracked so [Module.KillInst] can splice an
// instruction out of wherever it lives in O(1).
//
// The [DefUse] database mirrors every id-ref operand (including result
// type ids) in the module: for each id it knows the single defining
// instruction and the sequence of instructions that use it. It is
// maintained incrementally as instructions are inserted and killed;
// nothing outside this package should edit operands without going
// through it — see [Module.KillInst] and [DefUse.ReplaceAllUsesWith].
package ir
