package binary

import "github.com/gogpu/spirvtools/ir"

// tailMode describes how an opcode's trailing, variable-length
// operands repeat once its fixed operands are consumed.
type tailMode int

const (
	tailNone   tailMode = iota // no further operands allowed
	tailRepeat                 // zero or more operands of a single kind
	tailPair                   // zero or more (kindA, kindB) pairs
)

// shape is the operand-kind signature of one opcode: whether it
// carries a result type and/or result id, the kinds of its fixed
// in-operands in order, and how any remaining words are interpreted.
//
// This table only covers the opcodes package ir's core reasons about
// (see ir/opcode.go's opTable) plus the debug/annotation/type/control-
// flow instructions needed to assemble a well-formed Module. An
// opcode outside this table is accepted (its words are kept as opaque
// literal operands so the module round-trips byte-for-byte) but its
// operands are never classified as id references, so it cannot
// contribute edges to the Def/Use graph — see doc.go.
type shape struct {
	hasType   bool
	hasResult bool
	fixed     []ir.OperandKind
	tail      tailMode
	tailKinds []ir.OperandKind
}

func t(hasType, hasResult bool, fixed ...ir.OperandKind) shape {
	return shape{hasType: hasType, hasResult: hasResult, fixed: fixed}
}

func (s shape) repeating(kind ir.OperandKind) shape {
	s.tail = tailRepeat
	s.tailKinds = []ir.OperandKind{kind}
	return s
}

func (s shape) pairing(a, b ir.OperandKind) shape {
	s.tail = tailPair
	s.tailKinds = []ir.OperandKind{a, b}
	return s
}

const (
	id  = ir.OperandIdRef
	lit = ir.OperandLiteralInt
	enu = ir.OperandEnum
	str = ir.OperandLiteralString
)

var shapes = map[ir.OpCode]shape{
	ir.OpNop:             t(false, false),
	ir.OpUndef:           t(true, true),
	ir.OpSourceContinued: t(false, false, str),
	ir.OpSource:          t(false, false, enu, lit).repeating(lit),
	ir.OpSourceExtension: t(false, false, str),
	ir.OpName:            t(false, false, id, str),
	ir.OpMemberName:      t(false, false, id, lit, str),
	ir.OpString:          t(false, true, str),
	ir.OpLine:            t(false, false, id, lit, lit),
	ir.OpExtension:       t(false, false, str),
	ir.OpExtInstImport:   t(false, true, str),
	ir.OpExtInst:         t(true, true, id, lit).repeating(id),
	ir.OpMemoryModel:     t(false, false, enu, enu),
	ir.OpEntryPoint:      t(false, false, enu, id, str).repeating(id),
	ir.OpExecutionMode:   t(false, false, id, enu).repeating(lit),
	ir.OpCapability:      t(false, false, enu),

	ir.OpTypeVoid:         t(false, true),
	ir.OpTypeBool:         t(false, true),
	ir.OpTypeInt:          t(false, true, lit, lit),
	ir.OpTypeFloat:        t(false, true, lit),
	ir.OpTypeVector:       t(false, true, id, lit),
	ir.OpTypeMatrix:       t(false, true, id, lit),
	ir.OpTypeImage:        t(false, true, id, enu, lit, lit, lit, lit, enu).repeating(enu),
	ir.OpTypeSampler:      t(false, true),
	ir.OpTypeSampledImage: t(false, true, id),
	ir.OpTypeArray:        t(false, true, id, id),
	ir.OpTypeRuntimeArray: t(false, true, id),
	ir.OpTypeStruct:       t(false, true).repeating(id),
	ir.OpTypeOpaque:       t(false, true, str),
	ir.OpTypePointer:      t(false, true, enu, id),
	ir.OpTypeFunction:     t(false, true, id).repeating(id),

	ir.OpConstantTrue:      t(true, true),
	ir.OpConstantFalse:     t(true, true),
	ir.OpConstant:          t(true, true).repeating(lit),
	ir.OpConstantComposite: t(true, true).repeating(id),
	ir.OpConstantSampler:   t(true, true, enu, lit, enu),
	ir.OpConstantNull:      t(true, true),
	ir.OpSpecConstantTrue:  t(true, true),
	ir.OpSpecConstantFalse: t(true, true),
	ir.OpSpecConstant:      t(true, true).repeating(lit),
	ir.OpSpecConstantComp:  t(true, true).repeating(id),
	ir.OpSpecConstantOp:    t(true, true, lit).repeating(id),

	ir.OpFunction:           t(true, true, enu, id),
	ir.OpFunctionParameter:  t(true, true),
	ir.OpFunctionEnd:        t(false, false),
	ir.OpFunctionCall:       t(true, true, id).repeating(id),
	ir.OpVariable:           t(true, true, enu).repeating(id),
	ir.OpImageTexelPointer:  t(true, true, id, id, id),
	ir.OpLoad:               t(true, true, id).repeating(lit),
	ir.OpStore:              t(false, false, id, id).repeating(lit),
	ir.OpCopyMemory:         t(false, false, id, id).repeating(lit),
	ir.OpCopyMemorySized:    t(false, false, id, id, id).repeating(lit),
	ir.OpAccessChain:        t(true, true, id).repeating(id),
	ir.OpInBoundsAccessChain: t(true, true, id).repeating(id),
	ir.OpPtrAccessChain:     t(true, true, id, id).repeating(id),
	ir.OpArrayLength:        t(true, true, id, lit),

	ir.OpDecorate:            t(false, false, id, enu).repeating(lit),
	ir.OpMemberDecorate:      t(false, false, id, lit, enu).repeating(lit),
	ir.OpDecorationGroup:     t(false, true),
	ir.OpGroupDecorate:       t(false, false, id).repeating(id),
	ir.OpGroupMemberDecorate: t(false, false, id).pairing(id, lit),
	ir.OpDecorateId:          t(false, false, id, enu).repeating(id),

	ir.OpVectorShuffle:      t(true, true, id, id).repeating(lit),
	ir.OpCompositeConstruct: t(true, true).repeating(id),
	ir.OpCompositeExtract:   t(true, true, id).repeating(lit),
	ir.OpCompositeInsert:    t(true, true, id, id).repeating(lit),
	ir.OpCopyObject:         t(true, true, id),
	ir.OpTranspose:          t(true, true, id),

	ir.OpConvertFToU:   t(true, true, id),
	ir.OpConvertFToS:   t(true, true, id),
	ir.OpConvertSToF:   t(true, true, id),
	ir.OpConvertUToF:   t(true, true, id),
	ir.OpUConvert:      t(true, true, id),
	ir.OpSConvert:      t(true, true, id),
	ir.OpFConvert:      t(true, true, id),
	ir.OpQuantizeToF16: t(true, true, id),
	ir.OpBitcast:       t(true, true, id),
	ir.OpSNegate:       t(true, true, id),
	ir.OpFNegate:       t(true, true, id),

	ir.OpIAdd: t(true, true, id, id), ir.OpFAdd: t(true, true, id, id),
	ir.OpISub: t(true, true, id, id), ir.OpFSub: t(true, true, id, id),
	ir.OpIMul: t(true, true, id, id), ir.OpFMul: t(true, true, id, id),
	ir.OpUDiv: t(true, true, id, id), ir.OpSDiv: t(true, true, id, id), ir.OpFDiv: t(true, true, id, id),
	ir.OpUMod: t(true, true, id, id), ir.OpSRem: t(true, true, id, id), ir.OpSMod: t(true, true, id, id),
	ir.OpFRem: t(true, true, id, id), ir.OpFMod: t(true, true, id, id),
	ir.OpVectorTimesScalar: t(true, true, id, id), ir.OpDot: t(true, true, id, id),
	ir.OpLogicalEqual: t(true, true, id, id), ir.OpLogicalNotEqual: t(true, true, id, id),
	ir.OpLogicalOr: t(true, true, id, id), ir.OpLogicalAnd: t(true, true, id, id),
	ir.OpLogicalNot: t(true, true, id),
	ir.OpSelect:     t(true, true, id, id, id),
	ir.OpIEqual:     t(true, true, id, id), ir.OpINotEqual: t(true, true, id, id),
	ir.OpUGreaterThan: t(true, true, id, id), ir.OpSGreaterThan: t(true, true, id, id),
	ir.OpUGreaterThanEqual: t(true, true, id, id), ir.OpSGreaterThanEqual: t(true, true, id, id),
	ir.OpULessThan: t(true, true, id, id), ir.OpSLessThan: t(true, true, id, id),
	ir.OpULessThanEqual: t(true, true, id, id), ir.OpSLessThanEqual: t(true, true, id, id),
	ir.OpFOrdEqual: t(true, true, id, id), ir.OpFUnordEqual: t(true, true, id, id),
	ir.OpFOrdNotEqual: t(true, true, id, id), ir.OpFUnordNotEqual: t(true, true, id, id),
	ir.OpFOrdLessThan: t(true, true, id, id), ir.OpFUnordLessThan: t(true, true, id, id),
	ir.OpShiftRightLogical: t(true, true, id, id), ir.OpShiftRightArithmetic: t(true, true, id, id),
	ir.OpShiftLeftLogical: t(true, true, id, id),
	ir.OpBitwiseOr:        t(true, true, id, id), ir.OpBitwiseXor: t(true, true, id, id),
	ir.OpBitwiseAnd: t(true, true, id, id), ir.OpNot: t(true, true, id),

	ir.OpPhi:             t(true, true).pairing(id, id),
	ir.OpLoopMerge:        t(false, false, id, id, enu).repeating(lit),
	ir.OpSelectionMerge:   t(false, false, id, enu),
	ir.OpLabel:            t(false, true),
	ir.OpBranch:           t(false, false, id),
	ir.OpBranchConditional: t(false, false, id, id, id).repeating(lit),
	ir.OpSwitch:           t(false, false, id, id).pairing(lit, id),
	ir.OpKill:             t(false, false),
	ir.OpReturn:           t(false, false),
	ir.OpReturnValue:      t(false, false, id),
	ir.OpUnreachable:      t(false, false),
}

func shapeFor(op ir.OpCode) (shape, bool) {
	s, ok := shapes[op]
	return s, ok
}
