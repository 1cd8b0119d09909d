package cfg

import "github.com/gogpu/spirvtools/ir"

// Graph is the control-flow graph of one function: reachable blocks in
// reverse postorder, plus predecessor/successor lists. Unreachable
// blocks are excluded from RPO (per §4.D) but remain queryable via
// Function.BlockById for cleanup passes.
type Graph struct {
	Function *ir.Function
	RPO      []*ir.BasicBlock // entry first, unreachable blocks excluded
	index    map[ir.Id]int    // block id -> position in RPO

	succ map[ir.Id][]*ir.BasicBlock
	pred map[ir.Id][]*ir.BasicBlock
}

// Build computes the CFG of fn from its current blocks.
func Build(fn *ir.Function) *Graph {
	g := &Graph{Function: fn, index: make(map[ir.Id]int), succ: make(map[ir.Id][]*ir.BasicBlock), pred: make(map[ir.Id][]*ir.BasicBlock)}
	entry := fn.EntryBlock()
	if entry == nil {
		return g
	}

	visited := make(map[ir.Id]bool)
	var postorder []*ir.BasicBlock
	var visit func(b *ir.BasicBlock)
	visit = func(b *ir.BasicBlock) {
		if visited[b.Id()] {
			return
		}
		visited[b.Id()] = true
		succs := Successors(fn, b)
		g.succ[b.Id()] = succs
		for _, s := range succs {
			g.pred[s.Id()] = append(g.pred[s.Id()], b)
			visit(s)
		}
		postorder = append(postorder, b)
	}
	visit(entry)

	g.RPO = make([]*ir.BasicBlock, len(postorder))
	for i, b := range postorder {
		g.RPO[len(postorder)-1-i] = b
	}
	for i, b := range g.RPO {
		g.index[b.Id()] = i
	}
	return g
}

// Index returns b's position in reverse postorder, or -1 if b is
// unreachable.
func (g *Graph) Index(b *ir.BasicBlock) int {
	if idx, ok := g.index[b.Id()]; ok {
		return idx
	}
	return -1
}

// Succ returns b's successors (already resolved at Build time).
func (g *Graph) Succ(b *ir.BasicBlock) []*ir.BasicBlock { return g.succ[b.Id()] }

// Pred returns b's predecessors.
func (g *Graph) Pred(b *ir.BasicBlock) []*ir.BasicBlock { return g.pred[b.Id()] }

// Reachable reports whether b was reached from the entry block.
func (g *Graph) Reachable(b *ir.BasicBlock) bool {
	_, ok := g.index[b.Id()]
	return ok
}
