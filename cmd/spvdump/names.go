package main

import (
	"strconv"

	"github.com/gogpu/spirvtools/ir"
)

// opNames gives a human-readable name to the opcodes a dump is likely
// to contain. An opcode missing from this table (new extended
// instructions, vendor ops) still dumps fine, just as "Op<n>".
var opNames = map[ir.OpCode]string{
	ir.OpNop: "OpNop", ir.OpUndef: "OpUndef", ir.OpSourceContinued: "OpSourceContinued",
	ir.OpSource: "OpSource", ir.OpSourceExtension: "OpSourceExtension",
	ir.OpName: "OpName", ir.OpMemberName: "OpMemberName", ir.OpString: "OpString",
	ir.OpLine: "OpLine", ir.OpExtension: "OpExtension", ir.OpExtInstImport: "OpExtInstImport",
	ir.OpExtInst: "OpExtInst", ir.OpMemoryModel: "OpMemoryModel", ir.OpEntryPoint: "OpEntryPoint",
	ir.OpExecutionMode: "OpExecutionMode", ir.OpCapability: "OpCapability",
	ir.OpTypeVoid: "OpTypeVoid", ir.OpTypeBool: "OpTypeBool", ir.OpTypeInt: "OpTypeInt",
	ir.OpTypeFloat: "OpTypeFloat", ir.OpTypeVector: "OpTypeVector", ir.OpTypeMatrix: "OpTypeMatrix",
	ir.OpTypeImage: "OpTypeImage", ir.OpTypeSampler: "OpTypeSampler",
	ir.OpTypeSampledImage: "OpTypeSampledImage", ir.OpTypeArray: "OpTypeArray",
	ir.OpTypeRuntimeArray: "OpTypeRuntimeArray", ir.OpTypeStruct: "OpTypeStruct",
	ir.OpTypeOpaque: "OpTypeOpaque", ir.OpTypePointer: "OpTypePointer",
	ir.OpTypeFunction: "OpTypeFunction",
	ir.OpConstantTrue: "OpConstantTrue", ir.OpConstantFalse: "OpConstantFalse",
	ir.OpConstant: "OpConstant", ir.OpConstantComposite: "OpConstantComposite",
	ir.OpConstantSampler: "OpConstantSampler", ir.OpConstantNull: "OpConstantNull",
	ir.OpFunction: "OpFunction", ir.OpFunctionParameter: "OpFunctionParameter",
	ir.OpFunctionEnd: "OpFunctionEnd", ir.OpFunctionCall: "OpFunctionCall",
	ir.OpVariable: "OpVariable", ir.OpLoad: "OpLoad", ir.OpStore: "OpStore",
	ir.OpAccessChain: "OpAccessChain", ir.OpInBoundsAccessChain: "OpInBoundsAccessChain",
	ir.OpDecorate: "OpDecorate", ir.OpMemberDecorate: "OpMemberDecorate",
	ir.OpVectorShuffle: "OpVectorShuffle", ir.OpCompositeConstruct: "OpCompositeConstruct",
	ir.OpCompositeExtract: "OpCompositeExtract", ir.OpCompositeInsert: "OpCompositeInsert",
	ir.OpCopyObject: "OpCopyObject",
	ir.OpIAdd: "OpIAdd", ir.OpFAdd: "OpFAdd", ir.OpISub: "OpISub", ir.OpFSub: "OpFSub",
	ir.OpIMul: "OpIMul", ir.OpFMul: "OpFMul", ir.OpUDiv: "OpUDiv", ir.OpSDiv: "OpSDiv",
	ir.OpFDiv: "OpFDiv",
	ir.OpLogicalOr: "OpLogicalOr", ir.OpLogicalAnd: "OpLogicalAnd", ir.OpLogicalNot: "OpLogicalNot",
	ir.OpSelect: "OpSelect", ir.OpIEqual: "OpIEqual", ir.OpINotEqual: "OpINotEqual",
	ir.OpULessThan: "OpULessThan", ir.OpSLessThan: "OpSLessThan",
	ir.OpPhi: "OpPhi", ir.OpLoopMerge: "OpLoopMerge", ir.OpSelectionMerge: "OpSelectionMerge",
	ir.OpLabel: "OpLabel", ir.OpBranch: "OpBranch", ir.OpBranchConditional: "OpBranchConditional",
	ir.OpSwitch: "OpSwitch", ir.OpKill: "OpKill", ir.OpReturn: "OpReturn",
	ir.OpReturnValue: "OpReturnValue", ir.OpUnreachable: "OpUnreachable",
}

func opName(op ir.OpCode) string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return "Op" + strconv.Itoa(int(op))
}
