package ir

// OpCode is a SPIR-V opcode, the low 16 bits of an instruction's first
// word. Values are taken from the SPIR-V specification; this table
// only lists the opcodes the core and the ADCE pass need to reason
// about (the binary reader/writer passes unrecognized opcodes through
// opaquely, see package binary).
type OpCode uint16

// Numeric opcode values, per the SPIR-V specification.
const (
	OpNop                OpCode = 0
	OpUndef              OpCode = 1
	OpSourceContinued    OpCode = 2
	OpSource             OpCode = 3
	OpSourceExtension    OpCode = 4
	OpName               OpCode = 5
	OpMemberName         OpCode = 6
	OpString             OpCode = 7
	OpLine               OpCode = 8
	OpExtension          OpCode = 10
	OpExtInstImport      OpCode = 11
	OpExtInst            OpCode = 12
	OpMemoryModel        OpCode = 14
	OpEntryPoint         OpCode = 15
	OpExecutionMode      OpCode = 16
	OpCapability         OpCode = 17
	OpTypeVoid           OpCode = 19
	OpTypeBool           OpCode = 20
	OpTypeInt            OpCode = 21
	OpTypeFloat          OpCode = 22
	OpTypeVector         OpCode = 23
	OpTypeMatrix         OpCode = 24
	OpTypeImage          OpCode = 25
	OpTypeSampler        OpCode = 26
	OpTypeSampledImage   OpCode = 27
	OpTypeArray          OpCode = 28
	OpTypeRuntimeArray   OpCode = 29
	OpTypeStruct         OpCode = 30
	OpTypeOpaque         OpCode = 31
	OpTypePointer        OpCode = 32
	OpTypeFunction       OpCode = 33
	OpConstantTrue       OpCode = 41
	OpConstantFalse      OpCode = 42
	OpConstant           OpCode = 43
	OpConstantComposite  OpCode = 44
	OpConstantSampler    OpCode = 45
	OpConstantNull       OpCode = 46
	OpSpecConstantTrue   OpCode = 48
	OpSpecConstantFalse  OpCode = 49
	OpSpecConstant       OpCode = 50
	OpSpecConstantComp   OpCode = 51
	OpSpecConstantOp     OpCode = 52
	OpFunction           OpCode = 54
	OpFunctionParameter  OpCode = 55
	OpFunctionEnd        OpCode = 56
	OpFunctionCall       OpCode = 57
	OpVariable           OpCode = 59
	OpImageTexelPointer  OpCode = 60
	OpLoad               OpCode = 61
	OpStore              OpCode = 62
	OpCopyMemory         OpCode = 63
	OpCopyMemorySized    OpCode = 64
	OpAccessChain        OpCode = 65
	OpInBoundsAccessChain OpCode = 66
	OpPtrAccessChain     OpCode = 67
	OpArrayLength        OpCode = 68
	OpDecorate           OpCode = 71
	OpMemberDecorate     OpCode = 72
	OpDecorationGroup    OpCode = 73
	OpGroupDecorate      OpCode = 74
	OpGroupMemberDecorate OpCode = 75
	OpVectorShuffle      OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract   OpCode = 81
	OpCompositeInsert    OpCode = 82
	OpCopyObject         OpCode = 83
	OpTranspose          OpCode = 84
	OpConvertFToU        OpCode = 109
	OpConvertFToS        OpCode = 110
	OpConvertSToF        OpCode = 111
	OpConvertUToF        OpCode = 112
	OpUConvert           OpCode = 113
	OpSConvert           OpCode = 114
	OpFConvert           OpCode = 115
	OpQuantizeToF16      OpCode = 116
	OpBitcast            OpCode = 124
	OpSNegate            OpCode = 126
	OpFNegate            OpCode = 127
	OpIAdd               OpCode = 128
	OpFAdd               OpCode = 129
	OpISub               OpCode = 130
	OpFSub               OpCode = 131
	OpIMul               OpCode = 132
	OpFMul               OpCode = 133
	OpUDiv               OpCode = 134
	OpSDiv               OpCode = 135
	OpFDiv               OpCode = 136
	OpUMod               OpCode = 137
	OpSRem               OpCode = 138
	OpSMod               OpCode = 139
	OpFRem               OpCode = 140
	OpFMod               OpCode = 141
	OpVectorTimesScalar  OpCode = 142
	OpDot                OpCode = 148
	OpLogicalEqual       OpCode = 164
	OpLogicalNotEqual    OpCode = 165
	OpLogicalOr          OpCode = 166
	OpLogicalAnd         OpCode = 167
	OpLogicalNot         OpCode = 168
	OpSelect             OpCode = 169
	OpIEqual             OpCode = 170
	OpINotEqual          OpCode = 171
	OpUGreaterThan       OpCode = 172
	OpSGreaterThan       OpCode = 173
	OpUGreaterThanEqual  OpCode = 174
	OpSGreaterThanEqual  OpCode = 175
	OpULessThan          OpCode = 176
	OpSLessThan          OpCode = 177
	OpULessThanEqual     OpCode = 178
	OpSLessThanEqual     OpCode = 179
	OpFOrdEqual          OpCode = 180
	OpFUnordEqual        OpCode = 181
	OpFOrdNotEqual       OpCode = 182
	OpFUnordNotEqual     OpCode = 183
	OpFOrdLessThan       OpCode = 184
	OpFUnordLessThan     OpCode = 185
	OpShiftRightLogical  OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical   OpCode = 196
	OpBitwiseOr          OpCode = 197
	OpBitwiseXor         OpCode = 198
	OpBitwiseAnd         OpCode = 199
	OpNot                OpCode = 200
	OpPhi                OpCode = 245
	OpLoopMerge          OpCode = 246
	OpSelectionMerge     OpCode = 247
	OpLabel              OpCode = 248
	OpBranch             OpCode = 249
	OpBranchConditional  OpCode = 250
	OpSwitch             OpCode = 251
	OpKill               OpCode = 252
	OpReturn             OpCode = 253
	OpReturnValue        OpCode = 254
	OpUnreachable        OpCode = 255
	OpDecorateId         OpCode = 332
)

// opInfo holds the static classification flags looked up per opcode.
// Built once as a static table: see §9 ("Dynamic dispatch over
// opcodes... avoid any virtual-method polymorphism per instruction").
type opInfo struct {
	terminator bool
	branch     bool // a terminator that transfers to a successor block (excludes Return/ReturnValue/Kill/Unreachable)
	annotation bool
	debug      bool
	typeOp     bool
	constantOp bool
	combinator bool // side-effect-free, result a pure function of operands
}

var opTable = map[OpCode]opInfo{
	OpReturn:      {terminator: true},
	OpReturnValue: {terminator: true},
	OpKill:        {terminator: true},
	OpUnreachable: {terminator: true},
	OpBranch:             {terminator: true, branch: true},
	OpBranchConditional:  {terminator: true, branch: true},
	OpSwitch:             {terminator: true, branch: true},

	OpName:       {debug: true},
	OpMemberName: {debug: true},
	OpString:     {debug: true},
	OpSource:     {debug: true},
	OpSourceContinued: {debug: true},
	OpSourceExtension: {debug: true},
	OpLine:       {debug: true},

	OpDecorate:            {annotation: true},
	OpMemberDecorate:      {annotation: true},
	OpDecorationGroup:     {annotation: true},
	OpGroupDecorate:       {annotation: true},
	OpGroupMemberDecorate: {annotation: true},
	OpDecorateId:          {annotation: true},

	OpTypeVoid: {typeOp: true}, OpTypeBool: {typeOp: true}, OpTypeInt: {typeOp: true},
	OpTypeFloat: {typeOp: true}, OpTypeVector: {typeOp: true}, OpTypeMatrix: {typeOp: true},
	OpTypeImage: {typeOp: true}, OpTypeSampler: {typeOp: true}, OpTypeSampledImage: {typeOp: true},
	OpTypeArray: {typeOp: true}, OpTypeRuntimeArray: {typeOp: true}, OpTypeStruct: {typeOp: true},
	OpTypeOpaque: {typeOp: true}, OpTypePointer: {typeOp: true}, OpTypeFunction: {typeOp: true},

	OpConstantTrue: {constantOp: true, combinator: true}, OpConstantFalse: {constantOp: true, combinator: true},
	OpConstant: {constantOp: true, combinator: true}, OpConstantComposite: {constantOp: true, combinator: true},
	OpConstantSampler: {constantOp: true, combinator: true}, OpConstantNull: {constantOp: true, combinator: true},
	OpSpecConstantTrue: {constantOp: true}, OpSpecConstantFalse: {constantOp: true},
	OpSpecConstant: {constantOp: true}, OpSpecConstantComp: {constantOp: true}, OpSpecConstantOp: {constantOp: true},

	// Combinators: pure, no side effects, result fully determined by operands.
	// OpVariable belongs here too: declaring storage has no side effect
	// by itself, only a Store/Load through the resulting pointer does,
	// so an unused variable must only become live via that closure, not
	// the blanket "default: seed every non-combinator" rule.
	OpUndef: {combinator: true}, OpVariable: {combinator: true},
	OpVectorShuffle: {combinator: true}, OpCompositeConstruct: {combinator: true},
	OpCompositeExtract: {combinator: true}, OpCompositeInsert: {combinator: true},
	OpCopyObject: {combinator: true}, OpTranspose: {combinator: true},
	OpConvertFToU: {combinator: true}, OpConvertFToS: {combinator: true}, OpConvertSToF: {combinator: true},
	OpConvertUToF: {combinator: true}, OpUConvert: {combinator: true}, OpSConvert: {combinator: true},
	OpFConvert: {combinator: true}, OpQuantizeToF16: {combinator: true}, OpBitcast: {combinator: true},
	OpSNegate: {combinator: true}, OpFNegate: {combinator: true},
	OpIAdd: {combinator: true}, OpFAdd: {combinator: true}, OpISub: {combinator: true}, OpFSub: {combinator: true},
	OpIMul: {combinator: true}, OpFMul: {combinator: true}, OpUDiv: {combinator: true}, OpSDiv: {combinator: true},
	OpFDiv: {combinator: true}, OpUMod: {combinator: true}, OpSRem: {combinator: true}, OpSMod: {combinator: true},
	OpFRem: {combinator: true}, OpFMod: {combinator: true}, OpVectorTimesScalar: {combinator: true}, OpDot: {combinator: true},
	OpLogicalEqual: {combinator: true}, OpLogicalNotEqual: {combinator: true}, OpLogicalOr: {combinator: true},
	OpLogicalAnd: {combinator: true}, OpLogicalNot: {combinator: true}, OpSelect: {combinator: true},
	OpIEqual: {combinator: true}, OpINotEqual: {combinator: true}, OpUGreaterThan: {combinator: true},
	OpSGreaterThan: {combinator: true}, OpUGreaterThanEqual: {combinator: true}, OpSGreaterThanEqual: {combinator: true},
	OpULessThan: {combinator: true}, OpSLessThan: {combinator: true}, OpULessThanEqual: {combinator: true},
	OpSLessThanEqual: {combinator: true}, OpFOrdEqual: {combinator: true}, OpFUnordEqual: {combinator: true},
	OpFOrdNotEqual: {combinator: true}, OpFUnordNotEqual: {combinator: true}, OpFOrdLessThan: {combinator: true},
	OpFUnordLessThan: {combinator: true},
	OpShiftRightLogical: {combinator: true}, OpShiftRightArithmetic: {combinator: true}, OpShiftLeftLogical: {combinator: true},
	OpBitwiseOr: {combinator: true}, OpBitwiseXor: {combinator: true}, OpBitwiseAnd: {combinator: true}, OpNot: {combinator: true},
	OpAccessChain: {combinator: true}, OpInBoundsAccessChain: {combinator: true}, OpPtrAccessChain: {combinator: true},
	OpArrayLength: {combinator: true},
	OpPhi: {combinator: true},
}

func lookup(op OpCode) opInfo { return opTable[op] }

// IsTerminator reports whether op ends a basic block.
func IsTerminator(op OpCode) bool { return lookup(op).terminator }

// IsBranch reports whether op is a terminator that transfers control to
// a successor block (OpBranch, OpBranchConditional, OpSwitch) as
// opposed to OpReturn/OpReturnValue/OpKill/OpUnreachable.
func IsBranch(op OpCode) bool { return lookup(op).branch }

// IsAnnotationOp reports whether op is one of the instructions in the
// annotations section (OpDecorate and friends).
func IsAnnotationOp(op OpCode) bool { return lookup(op).annotation }

// IsDebugOp reports whether op carries debug information (OpName,
// OpSource, ...).
func IsDebugOp(op OpCode) bool { return lookup(op).debug }

// IsTypeOp reports whether op declares a type.
func IsTypeOp(op OpCode) bool { return lookup(op).typeOp }

// IsConstantOp reports whether op declares a constant (including spec
// constants).
func IsConstantOp(op OpCode) bool { return lookup(op).constantOp }

// IsCombinator reports whether op is side-effect-free with a result
// fully determined by its operands — arithmetic, logic, composite,
// conversion, bitcast and constant-formation opcodes. OpFunctionCall
// is deliberately not a combinator: it may have arbitrary side
// effects through pointer arguments or globals.
func IsCombinator(op OpCode) bool { return lookup(op).combinator }
