// Package validate is the minimal structural validator described in
// §4.F.4 of the expanded specification: not the rule-table validator
// SPIRV-Tools' source/val ships (explicitly out of scope), just the
// checks ADCE's own preconditions depend on, so a driver can refuse to
// run the pass on a module it cannot structurally trust.
package validate

import (
	"fmt"

	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

// Options toggles the validator's leniency (§6/§9). The zero value is
// the strictest setting: full block-layout checking, no relaxation of
// logical-addressing pointer rules. A driver loads these from
// config.ValidatorOptions and passes them through unchanged.
type Options struct {
	// RelaxLogicalPointer skips checkLogicalPointers, permitting
	// pointer-typed function parameters that strict Logical addressing
	// otherwise forbids.
	RelaxLogicalPointer bool
	// SkipBlockLayout skips checkFunctionStructure entirely, useful for
	// modules already known to be well-formed (e.g. ones this
	// toolchain itself just emitted).
	SkipBlockLayout bool
}

// Validate reports every structural problem it finds in m to
// consumer and returns them as a slice for callers that want them in
// hand rather than streamed. A nil consumer is equivalent to
// diag.Nop. An empty return means the module passed every check this
// package performs — it says nothing about full SPIR-V validity.
func Validate(m *ir.Module, consumer diag.Consumer, opts Options) []diag.Diagnostic {
	if consumer == nil {
		consumer = diag.Nop
	}
	c := diag.NewCollector()
	both := diag.ConsumerFunc(func(d diag.Diagnostic) {
		consumer.Report(d)
		c.Report(d)
	})

	checkCapabilities(m, both)
	checkIdBound(m, both)
	if !opts.SkipBlockLayout {
		checkFunctionStructure(m, both)
	}
	if !opts.RelaxLogicalPointer {
		checkLogicalPointers(m, both)
	}

	return c.All
}

// checkCapabilities mirrors ADCE's own early-out preconditions (§4.F.2):
// the module must declare Shader and must not declare Addresses. A
// validator failure here is reported at SevError (callers decide
// whether to treat it as fatal), distinct from the pass itself, which
// treats the same condition as "nothing to do" and returns
// SuccessNoChange rather than an error.
func checkCapabilities(m *ir.Module, consumer diag.Consumer) {
	if !m.HasCapability(uint32(ir.CapabilityShader)) {
		consumer.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Kind:     diag.InvalidCapability,
			Message:  "module does not declare the Shader capability",
		})
	}
	if m.HasCapability(uint32(ir.CapabilityAddresses)) {
		consumer.Report(diag.Diagnostic{
			Severity: diag.SevError,
			Kind:     diag.InvalidCapability,
			Message:  "module declares the Addresses capability (physical addressing is not supported)",
		})
	}
}

// checkIdBound re-derives the highest id referenced anywhere in m and
// flags a header bound that does not cover it. The binary reader
// already enforces this while parsing (see binary/reader.go); this
// check exists for modules built in memory (by a test, or a prior
// pass) that never passed through the reader.
func checkIdBound(m *ir.Module, consumer diag.Consumer) {
	seen := make(map[ir.Id]bool)
	check := func(id ir.Id) {
		if id == ir.NoResult {
			return
		}
		if id >= m.Header.IdBound {
			consumer.Report(diag.Diagnostic{
				Severity: diag.SevError,
				Kind:     diag.InvalidId,
				Position: diag.AtInst(uint32(id)),
				Message:  fmt.Sprintf("id %s exceeds the declared bound %d", id, uint32(m.Header.IdBound)),
			})
		}
	}
	visit := func(inst *ir.Instruction) {
		check(inst.TypeId())
		if inst.HasResult() {
			if seen[inst.ResultId()] {
				consumer.Report(diag.Diagnostic{
					Severity: diag.SevError,
					Kind:     diag.InvalidId,
					Position: diag.AtInst(uint32(inst.ResultId())),
					Message:  fmt.Sprintf("id %s is defined more than once", inst.ResultId()),
				})
			}
			seen[inst.ResultId()] = true
			check(inst.ResultId())
		}
		inst.ForEachInId(check)
	}

	walkModule(m, visit)
}

// checkFunctionStructure checks the baseline shape ADCE's CFG/
// structured-order analyses assume: a block's merge instruction, if
// any, names a merge block (and for OpLoopMerge a continue block) that
// actually exists in the function. A function with no blocks is
// accepted as a declaration.
func checkFunctionStructure(m *ir.Module, consumer diag.Consumer) {
	m.ForEachFunction(func(fn *ir.Function) {
		if fn.NumBlocks() == 0 {
			return // a declaration-only function (no body) is well-formed
		}
		fn.ForEachBlock(func(b *ir.BasicBlock) {
			merge, _, mergeId, ok := b.IsStructuredHeader()
			if !ok {
				return
			}
			if fn.BlockById(mergeId) == nil {
				consumer.Report(diag.Diagnostic{
					Severity: diag.SevError,
					Kind:     diag.InvalidLayout,
					Position: diag.AtInst(uint32(b.Id())),
					Message:  fmt.Sprintf("merge block %s named by opcode %d is not in this function", mergeId, merge.Opcode()),
				})
			}
			if merge.Opcode() == ir.OpLoopMerge {
				continueId := merge.InOperandId(1)
				if fn.BlockById(continueId) == nil {
					consumer.Report(diag.Diagnostic{
						Severity: diag.SevError,
						Kind:     diag.InvalidLayout,
						Position: diag.AtInst(uint32(b.Id())),
						Message:  fmt.Sprintf("continue block %s named by OpLoopMerge is not in this function", continueId),
					})
				}
			}
		})
	})
}

// checkLogicalPointers flags function parameters with pointer type,
// which strict Logical addressing forbids — some consumers relax this
// and accept pointer-typed parameters anyway, hence Options.RelaxLogicalPointer.
func checkLogicalPointers(m *ir.Module, consumer diag.Consumer) {
	du := m.DefUse()
	m.ForEachFunction(func(fn *ir.Function) {
		fn.ForEachParam(func(p *ir.Instruction) {
			typeDef := du.GetDef(p.TypeId())
			if typeDef != nil && typeDef.Opcode() == ir.OpTypePointer {
				consumer.Report(diag.Diagnostic{
					Severity: diag.SevError,
					Kind:     diag.InvalidLayout,
					Position: diag.AtInst(uint32(p.ResultId())),
					Message:  fmt.Sprintf("function parameter %s has pointer type, not permitted under strict logical addressing", p.ResultId()),
				})
			}
		})
	})
}

func walkModule(m *ir.Module, visit func(*ir.Instruction)) {
	for e := m.Capabilities.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.Extensions.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.ExtInstImports.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	if m.MemoryModel != nil {
		visit(m.MemoryModel)
	}
	for e := m.EntryPoints.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.ExecutionModes.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.DebugStrings.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.DebugNames.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.Annotations.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	for e := m.TypesValues.Front(); e != nil; e = e.Next() {
		visit(e.Value.(*ir.Instruction))
	}
	m.ForEachFunction(func(fn *ir.Function) {
		visit(fn.DefInst())
		fn.ForEachParam(visit)
		fn.ForEachBlock(func(b *ir.BasicBlock) {
			for _, inst := range b.Instructions() {
				visit(inst)
			}
		})
		if fn.EndInst() != nil {
			visit(fn.EndInst())
		}
	})
}
