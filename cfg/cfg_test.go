package cfg

import (
	"testing"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

// diamondIds names the blocks buildDiamond assembles, so tests can
// refer to them without hand-tracking id allocation order.
type diamondIds struct {
	entry, then, els, merge ir.Id
}

// buildDiamond assembles one function with an if/then/else diamond:
//
//	entry -branch-cond-> then -\
//	                   \-> els -+-> merge -> OpReturn
func buildDiamond(t *testing.T) (*ir.Function, diamondIds) {
	t.Helper()
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	void := b.AddTypeVoid()
	boolType := b.AddTypeBool()
	cond := b.AddConstantTrue(boolType)
	fnType := b.AddTypeFunction(void)
	b.AddFunction(void, 0, fnType)

	ids := diamondIds{then: b.AllocId(), els: b.AllocId(), merge: b.AllocId()}
	ids.entry = b.AddLabel()
	b.AddSelectionMerge(ids.merge, 0)
	b.AddBranchConditional(cond, ids.then, ids.els)
	b.PlaceLabel(ids.then)
	b.AddBranch(ids.merge)
	b.PlaceLabel(ids.els)
	b.AddBranch(ids.merge)
	b.PlaceLabel(ids.merge)
	b.AddReturn()
	b.AddFunctionEnd()

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	return m.FunctionSlice()[0], ids
}

func TestBuild_ReachablePostOrderAndSuccessors(t *testing.T) {
	fn, ids := buildDiamond(t)
	g := Build(fn)

	if len(g.RPO) != 4 {
		t.Fatalf("expected 4 reachable blocks in RPO, got %d", len(g.RPO))
	}
	if g.RPO[0].Id() != ids.entry {
		t.Fatalf("expected the entry block first in RPO, got %s", g.RPO[0].Id())
	}

	entry := fn.BlockById(ids.entry)
	succs := g.Succ(entry)
	if len(succs) != 2 || succs[0].Id() != ids.then || succs[1].Id() != ids.els {
		t.Fatalf("expected entry's successors to be [then, els], got %v", succs)
	}

	merge := fn.BlockById(ids.merge)
	preds := g.Pred(merge)
	if len(preds) != 2 {
		t.Fatalf("expected the merge block to have 2 predecessors, got %d", len(preds))
	}
}

func TestBuild_UnreachableBlockExcludedFromRPO(t *testing.T) {
	fn, _ := buildDiamond(t)
	// Graft an orphan block reachable from nothing onto the function.
	du := fn.Module().DefUse()
	orphanId := ir.Id(999)
	label := ir.NewInstruction(ir.OpLabel, ir.NoResult, orphanId)
	orphan := fn.AddBlock(label, du)
	ret := ir.NewInstruction(ir.OpReturn, ir.NoResult, ir.NoResult)
	orphan.PushInstruction(ret, du)

	g := Build(fn)
	if g.Reachable(orphan) {
		t.Fatalf("expected the orphan block to be unreachable")
	}
	if g.Index(orphan) != -1 {
		t.Fatalf("expected Index(orphan) == -1, got %d", g.Index(orphan))
	}
	for _, b := range g.RPO {
		if b.Id() == orphanId {
			t.Fatalf("expected the orphan block excluded from RPO")
		}
	}
}

func TestComputeDominators_DiamondShape(t *testing.T) {
	fn, ids := buildDiamond(t)
	g := Build(fn)
	d := ComputeDominators(g)

	entry := fn.BlockById(ids.entry)
	then := fn.BlockById(ids.then)
	els := fn.BlockById(ids.els)
	merge := fn.BlockById(ids.merge)

	if !d.Dominates(entry, merge) {
		t.Fatalf("expected the entry block to dominate the merge block")
	}
	if d.Dominates(then, merge) {
		t.Fatalf("expected the then-block NOT to dominate the merge block (the else path bypasses it)")
	}
	if d.ImmediateDominator(merge) != entry {
		t.Fatalf("expected the merge block's immediate dominator to be the entry block (neither branch singly dominates it)")
	}
	if d.ImmediateDominator(then) != entry {
		t.Fatalf("expected the then-block's immediate dominator to be the entry block")
	}
	if !d.Dominates(entry, els) {
		t.Fatalf("expected the entry block to dominate the else-block")
	}
}

func TestComputePostDominators_DiamondShape(t *testing.T) {
	fn, ids := buildDiamond(t)
	g := Build(fn)
	pd := ComputePostDominators(g)

	entry := fn.BlockById(ids.entry)
	then := fn.BlockById(ids.then)
	merge := fn.BlockById(ids.merge)

	if !pd.Dominates(merge, entry) {
		t.Fatalf("expected the merge block to post-dominate the entry block (every path from entry reaches it)")
	}
	if !pd.Dominates(merge, then) {
		t.Fatalf("expected the merge block to post-dominate the then-block")
	}
}

// loopIds names the blocks buildLoopWithDirectBreak assembles.
type loopIds struct {
	entry, header, body, continueBlk, merge ir.Id
}

// buildLoopWithDirectBreak assembles a loop whose body branches
// straight to the merge block (a break bypassing the continue block
// entirely) rather than through the continue target:
//
//	entry -> header (LoopMerge merge=merge continue=continueBlk)
//	      -> body -cond-branch-> merge | continueBlk
//	continueBlk -> header (back edge)
//	merge -> OpReturn
func buildLoopWithDirectBreak(t *testing.T) (*ir.Function, loopIds) {
	t.Helper()
	b := binary.NewModuleBuilder(0x00010300)
	b.AddCapability(ir.CapabilityShader)
	b.SetMemoryModel(0, 1)
	boolType := b.AddTypeBool()
	cond := b.AddConstantTrue(boolType)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	b.AddFunction(void, 0, fnType)

	ids := loopIds{
		header:      b.AllocId(),
		body:        b.AllocId(),
		continueBlk: b.AllocId(),
		merge:       b.AllocId(),
	}
	ids.entry = b.AddLabel()
	b.AddBranch(ids.header)
	b.PlaceLabel(ids.header)
	b.AddLoopMerge(ids.merge, ids.continueBlk, 0)
	b.AddBranch(ids.body)
	b.PlaceLabel(ids.body)
	b.AddBranchConditional(cond, ids.merge, ids.continueBlk) // break straight to the merge
	b.PlaceLabel(ids.continueBlk)
	b.AddBranch(ids.header)
	b.PlaceLabel(ids.merge)
	b.AddReturn()
	b.AddFunctionEnd()

	m, err := binary.Read(b.Build(), 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	return m.FunctionSlice()[0], ids
}

// TestComputeStructured_DirectBreakDoesNotClaimMergeBlock guards
// against a break branch that jumps from the loop body straight to
// the merge block (skipping the continue block) being mistaken for an
// ordinary successor edge: the merge block must map back to the
// loop's own enclosing scope, not to the loop header itself, even
// though the loop body reaches it before the header's own explicit
// walk to the merge block does.
func TestComputeStructured_DirectBreakDoesNotClaimMergeBlock(t *testing.T) {
	fn, ids := buildLoopWithDirectBreak(t)
	g := Build(fn)
	s := ComputeStructured(fn, g)

	if got := s.EnclosingHeader(ids.merge); got != 0 {
		t.Fatalf("expected the merge block to have no enclosing header, got %%%d", got)
	}
	if got := s.EnclosingHeader(ids.body); got != ids.header {
		t.Fatalf("expected the loop body enclosed by the header, got %%%d", got)
	}
	if !s.IsMergeBlock(ids.merge) {
		t.Fatalf("expected the merge block recognized as a merge block")
	}
	if idx, ok := s.OrderIndex(ids.merge); !ok {
		t.Fatalf("expected the merge block to appear in the structured order")
	} else if bodyIdx, _ := s.OrderIndex(ids.body); idx <= bodyIdx {
		t.Fatalf("expected the merge block to be ordered after the loop body, got merge=%d body=%d", idx, bodyIdx)
	}
}

func TestStructuredHeader_SelectionMergeRoundTrips(t *testing.T) {
	fn, ids := buildDiamond(t)
	entry := fn.BlockById(ids.entry)
	merge, branch, mergeId, ok := entry.IsStructuredHeader()
	if !ok {
		t.Fatalf("expected the entry block to be a structured (selection) header")
	}
	if merge.Opcode() != ir.OpSelectionMerge {
		t.Fatalf("expected the header's merge instruction to be OpSelectionMerge, got opcode %d", merge.Opcode())
	}
	if !branch.IsBranch() {
		t.Fatalf("expected the header's terminator to be a branch")
	}
	if mergeId != ids.merge {
		t.Fatalf("expected the merge target to be %s, got %s", ids.merge, mergeId)
	}
}
