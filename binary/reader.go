package binary

import (
	"fmt"

	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

const headerWords = 5

// Read decodes a SPIR-V binary module, reporting every problem it
// finds to consumer and returning the first fatal one as an error (a
// nil consumer discards diagnostics). Per §6 it rejects wrong magic
// (InvalidBinary), a version above maxVersion (WrongVersion, skipped
// when maxVersion is zero), structural violations (InvalidLayout) and
// id-rule violations (InvalidId).
func Read(data []byte, maxVersion uint32, consumer diag.Consumer) (*ir.Module, error) {
	if consumer == nil {
		consumer = diag.Nop
	}
	if len(data)%4 != 0 || len(data) < headerWords*4 {
		return nil, report(consumer, diag.InvalidBinary, 0, "truncated module: fewer than 5 header words")
	}
	words := wordsFromBytes(data)
	if words[0] != MagicNumber {
		return nil, report(consumer, diag.InvalidBinary, 0, fmt.Sprintf("bad magic number 0x%08x", words[0]))
	}
	version := words[1]
	if maxVersion != 0 && version > maxVersion {
		return nil, report(consumer, diag.WrongVersion, 1, fmt.Sprintf("module version 0x%06x exceeds target 0x%06x", version, maxVersion))
	}
	if words[4] != 0 {
		consumer.Report(diag.Diagnostic{Severity: diag.SevWarning, Kind: diag.InvalidLayout, Position: diag.AtWord(4), Message: "reserved header word is non-zero"})
	}

	m := ir.NewModule()
	m.Header = ir.Header{Version: version, Generator: words[2], IdBound: ir.Id(words[3]), Schema: words[4]}

	r := &reader{words: words, idx: headerWords, m: m, du: m.DefUse(), consumer: consumer, bound: ir.Id(words[3])}
	if err := r.run(); err != nil {
		return nil, err
	}
	m.MarkEntryPoints()
	return m, nil
}

func report(c diag.Consumer, kind diag.Kind, word int, msg string) error {
	d := diag.Diagnostic{Severity: diag.SevFatal, Kind: kind, Position: diag.AtWord(word), Message: msg}
	c.Report(d)
	return fmt.Errorf("%s", d.String())
}

type reader struct {
	words []uint32
	idx   int

	m        *ir.Module
	du       *ir.DefUse
	consumer diag.Consumer
	bound    ir.Id

	curFunction *ir.Function
	curBlock    *ir.BasicBlock
}

func (r *reader) fail(kind diag.Kind, msg string) error {
	return report(r.consumer, kind, r.idx, msg)
}

func (r *reader) warn(kind diag.Kind, msg string) {
	r.consumer.Report(diag.Diagnostic{Severity: diag.SevWarning, Kind: kind, Position: diag.AtWord(r.idx), Message: msg})
}

func (r *reader) checkId(id ir.Id) error {
	if id != ir.NoResult && id >= r.bound {
		return r.fail(diag.InvalidId, fmt.Sprintf("id %s exceeds declared bound %d", id, uint32(r.bound)))
	}
	return nil
}

func (r *reader) checkFreshResult(id ir.Id) error {
	if id == ir.NoResult {
		return nil
	}
	if r.du.GetDef(id) != nil {
		return r.fail(diag.InvalidId, fmt.Sprintf("id %s is defined more than once", id))
	}
	return nil
}

func (r *reader) run() error {
	for r.idx < len(r.words) {
		if err := r.step(); err != nil {
			return err
		}
	}
	if r.curFunction != nil {
		return r.fail(diag.InvalidLayout, "function never closed with OpFunctionEnd")
	}
	return nil
}

func (r *reader) step() error {
	header := r.words[r.idx]
	wordCount := int(header >> 16)
	op := ir.OpCode(header & 0xFFFF)
	if wordCount == 0 {
		return r.fail(diag.InvalidLayout, "instruction word count is zero")
	}
	if r.idx+wordCount > len(r.words) {
		return r.fail(diag.InvalidLayout, "instruction runs past the end of the module")
	}
	body := r.words[r.idx+1 : r.idx+wordCount]

	sh, known := shapeFor(op)
	bi := 0
	var typeId, resultId ir.Id
	if known && sh.hasType {
		if bi >= len(body) {
			return r.fail(diag.InvalidLayout, "instruction truncated before its result-type word")
		}
		typeId = ir.Id(body[bi])
		bi++
	}
	if known && sh.hasResult {
		if bi >= len(body) {
			return r.fail(diag.InvalidLayout, "instruction truncated before its result-id word")
		}
		resultId = ir.Id(body[bi])
		bi++
	}
	if err := r.checkId(typeId); err != nil {
		return err
	}
	if err := r.checkId(resultId); err != nil {
		return err
	}
	if err := r.checkFreshResult(resultId); err != nil {
		return err
	}

	var operands []ir.Operand
	var err error
	if known {
		operands, err = decodeFixedAndTail(sh, body[bi:])
	} else {
		operands = literalOperands(body[bi:])
	}
	if err != nil {
		return r.fail(diag.InvalidLayout, err.Error())
	}
	for _, o := range operands {
		if o.Kind == ir.OperandIdRef {
			if err := r.checkId(o.Id()); err != nil {
				return err
			}
		}
	}

	inst := ir.NewInstruction(op, typeId, resultId, operands...)
	if err := r.place(op, inst); err != nil {
		return err
	}
	r.idx += wordCount
	return nil
}

func (r *reader) place(op ir.OpCode, inst *ir.Instruction) error {
	switch op {
	case ir.OpCapability:
		r.m.AppendCapability(inst)
	case ir.OpExtension:
		r.m.AppendExtension(inst)
	case ir.OpExtInstImport:
		r.m.AppendExtInstImport(inst)
	case ir.OpMemoryModel:
		r.m.SetMemoryModel(inst)
	case ir.OpEntryPoint:
		r.m.AppendEntryPoint(inst)
	case ir.OpExecutionMode:
		r.m.AppendExecutionMode(inst)
	case ir.OpString, ir.OpSource, ir.OpSourceContinued, ir.OpSourceExtension, ir.OpLine:
		r.m.AppendDebugString(inst)
	case ir.OpName, ir.OpMemberName:
		r.m.AppendDebugName(inst)
	case ir.OpDecorate, ir.OpMemberDecorate, ir.OpDecorationGroup, ir.OpGroupDecorate, ir.OpGroupMemberDecorate, ir.OpDecorateId:
		r.m.AppendAnnotation(inst)
	case ir.OpFunction:
		if r.curFunction != nil {
			return r.fail(diag.InvalidLayout, "OpFunction nested inside another function")
		}
		r.curFunction = r.m.AddFunction(inst)
	case ir.OpFunctionParameter:
		if r.curFunction == nil || r.curBlock != nil {
			return r.fail(diag.InvalidLayout, "OpFunctionParameter outside a function's parameter list")
		}
		r.curFunction.AddParameter(inst, r.du)
	case ir.OpFunctionEnd:
		if r.curFunction == nil {
			return r.fail(diag.InvalidLayout, "OpFunctionEnd without a matching OpFunction")
		}
		r.curFunction.SetEndInst(inst)
		r.curFunction = nil
		r.curBlock = nil
	case ir.OpLabel:
		if r.curFunction == nil {
			return r.fail(diag.InvalidLayout, "OpLabel outside a function body")
		}
		r.curBlock = r.curFunction.AddBlock(inst, r.du)
	default:
		if r.curFunction == nil {
			r.m.AppendTypeValue(inst)
			return nil
		}
		if r.curBlock == nil {
			return r.fail(diag.InvalidLayout, "instruction outside any basic block")
		}
		r.curBlock.PushInstruction(inst, r.du)
		if inst.IsTerminator() {
			r.curBlock = nil
		}
	}
	return nil
}
