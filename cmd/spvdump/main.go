// Command spvdump prints a human-readable, line-per-instruction dump
// of a SPIR-V module. It is not a textual assembler/disassembler: the
// output has no defined grammar and round-trips through nothing, it
// exists for eyeballing a module and for diffing before/after an
// ADCE run in tests.
//
// Usage:
//
//	spvdump shader.spv
package main

import (
	"bufio"
	"container/list"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: spvdump <file.spv>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spvdump: %v\n", err)
		os.Exit(1)
	}

	consumer := diag.ConsumerFunc(func(d diag.Diagnostic) {
		fmt.Fprintln(os.Stderr, d.String())
	})
	m, err := binary.Read(data, 0, consumer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spvdump: %v\n", err)
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "; version %d.%d, id bound %d\n",
		(m.Header.Version>>16)&0xff, (m.Header.Version>>8)&0xff, uint32(m.Header.IdBound))

	dumpList(w, m.Capabilities)
	dumpList(w, m.Extensions)
	dumpList(w, m.ExtInstImports)
	if m.MemoryModel != nil {
		dumpInst(w, m.MemoryModel)
	}
	dumpList(w, m.EntryPoints)
	dumpList(w, m.ExecutionModes)
	dumpList(w, m.DebugStrings)
	dumpList(w, m.DebugNames)
	dumpList(w, m.Annotations)
	dumpList(w, m.TypesValues)

	m.ForEachFunction(func(fn *ir.Function) {
		fmt.Fprintln(w)
		dumpInst(w, fn.DefInst())
		fn.ForEachParam(func(p *ir.Instruction) { dumpInst(w, p) })
		fn.ForEachBlock(func(b *ir.BasicBlock) {
			fmt.Fprintf(w, "%s:\n", b.Id())
			for _, inst := range b.Instructions() {
				dumpInst(w, inst)
			}
		})
		if fn.EndInst() != nil {
			dumpInst(w, fn.EndInst())
		}
	})
}

func dumpList(w *bufio.Writer, l *list.List) {
	for e := l.Front(); e != nil; e = e.Next() {
		dumpInst(w, e.Value.(*ir.Instruction))
	}
}

func dumpInst(w *bufio.Writer, inst *ir.Instruction) {
	var sb strings.Builder
	if inst.HasResult() {
		sb.WriteString(inst.ResultId().String())
		sb.WriteString(" = ")
	}
	sb.WriteString(opName(inst.Opcode()))
	if inst.TypeId() != ir.NoResult {
		sb.WriteByte(' ')
		sb.WriteString(inst.TypeId().String())
	}
	for _, op := range inst.Operands() {
		sb.WriteByte(' ')
		sb.WriteString(formatOperand(op))
	}
	fmt.Fprintln(w, sb.String())
}

func formatOperand(op ir.Operand) string {
	switch op.Kind {
	case ir.OperandIdRef:
		return ir.Id(op.Word).String()
	case ir.OperandLiteralString:
		return strconv.Quote(op.Str)
	default:
		return strconv.FormatUint(uint64(op.Word), 10)
	}
}
