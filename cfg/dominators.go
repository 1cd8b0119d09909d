package cfg

import "github.com/gogpu/spirvtools/ir"

// Dominators is a standard iterative dominator tree computed over a
// graph's reverse postorder (Cooper, Harvey & Kennedy's "A Simple, Fast
// Dominance Algorithm"). PostDominators reuses the same engine over the
// reverse CFG augmented with a virtual exit successor for every block
// with no successors.
type Dominators struct {
	order []*ir.BasicBlock
	index map[ir.Id]int
	idom  []int // idom[i] = RPO index of immediate dominator of order[i]; root's idom is itself
}

// computeDominators runs the fixed-point algorithm given, for each
// node (in RPO order), its predecessor list restricted to that same
// node set.
func computeDominators(order []*ir.BasicBlock, index map[ir.Id]int, preds func(ir.Id) []*ir.BasicBlock) *Dominators {
	n := len(order)
	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	if n == 0 {
		return &Dominators{order: order, index: index, idom: idom}
	}
	idom[0] = 0 // root dominates itself

	changed := true
	for changed {
		changed = false
		for i := 1; i < n; i++ {
			b := order[i]
			newIdom := -1
			for _, p := range preds(b.Id()) {
				pi, ok := index[p.Id()]
				if !ok || idom[pi] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = pi
					continue
				}
				newIdom = intersect(idom, newIdom, pi)
			}
			if newIdom != -1 && idom[i] != newIdom {
				idom[i] = newIdom
				changed = true
			}
		}
	}
	return &Dominators{order: order, index: index, idom: idom}
}

func intersect(idom []int, a, b int) int {
	for a != b {
		for a > b {
			a = idom[a]
		}
		for b > a {
			b = idom[b]
		}
	}
	return a
}

// ComputeDominators builds the dominator tree of g's reachable blocks.
func ComputeDominators(g *Graph) *Dominators {
	preds := func(id ir.Id) []*ir.BasicBlock {
		i, ok := g.index[id]
		if !ok {
			return nil
		}
		return g.Pred(g.RPO[i])
	}
	return computeDominators(g.RPO, g.index, preds)
}

// Dominates reports whether a dominates b (every path from entry to b
// passes through a). A block dominates itself.
func (d *Dominators) Dominates(a, b *ir.BasicBlock) bool {
	ai, aok := d.index[a.Id()]
	bi, bok := d.index[b.Id()]
	if !aok || !bok {
		return false
	}
	for bi != ai {
		if d.idom[bi] == bi { // reached root without matching
			return false
		}
		bi = d.idom[bi]
	}
	return true
}

// ImmediateDominator returns b's immediate dominator, or nil for the
// root or an unreachable block.
func (d *Dominators) ImmediateDominator(b *ir.BasicBlock) *ir.BasicBlock {
	bi, ok := d.index[b.Id()]
	if !ok || d.idom[bi] == bi {
		return nil
	}
	return d.order[d.idom[bi]]
}

// PostDominators computes post-dominance over the reverse CFG, with a
// virtual exit node as the root that every block with no successors
// (OpReturn/OpReturnValue/OpKill/OpUnreachable, or an otherwise
// unterminated dead end) flows into.
type PostDominators struct {
	*Dominators
}

// ComputePostDominators builds the post-dominator tree of g.
func ComputePostDominators(g *Graph) *PostDominators {
	// Build reverse postorder of the reverse graph by reversing g.RPO
	// and prepending a virtual exit as the root.
	n := len(g.RPO)
	order := make([]*ir.BasicBlock, 0, n+1)
	order = append(order, nil) // index 0 = virtual exit
	for i := n - 1; i >= 0; i-- {
		order = append(order, g.RPO[i])
	}
	index := make(map[ir.Id]int, len(order))
	for i, b := range order {
		if b != nil {
			index[b.Id()] = i
		}
	}

	revPred := func(id ir.Id) []*ir.BasicBlock {
		if id == 0 {
			return nil
		}
		b := blockById(order, id)
		succs := g.Succ(b)
		if len(succs) == 0 {
			return nil // predecessor of the node is the virtual exit, handled separately
		}
		return succs
	}

	// Virtual exit's "predecessors" in the reversed graph are every
	// block with no successors; everything else's reversed-predecessor
	// set is its forward successor set.
	d := computeDominatorsWithVirtualRoot(order, index, revPred, g)
	return &PostDominators{d}
}

func blockById(order []*ir.BasicBlock, id ir.Id) *ir.BasicBlock {
	for _, b := range order {
		if b != nil && b.Id() == id {
			return b
		}
	}
	return nil
}

// computeDominatorsWithVirtualRoot special-cases index 0 (the virtual
// exit) as the dominance root and feeds it as an implicit predecessor
// of every exit block.
func computeDominatorsWithVirtualRoot(order []*ir.BasicBlock, index map[ir.Id]int, preds func(ir.Id) []*ir.BasicBlock, g *Graph) *Dominators {
	n := len(order)
	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	if n == 0 {
		return &Dominators{order: order, index: index, idom: idom}
	}
	idom[0] = 0

	predsOf := func(i int) []int {
		b := order[i]
		if b == nil {
			return nil
		}
		if len(g.Succ(b)) == 0 {
			return []int{0}
		}
		var out []int
		for _, s := range preds(b.Id()) {
			if pi, ok := index[s.Id()]; ok {
				out = append(out, pi)
			}
		}
		return out
	}

	changed := true
	for changed {
		changed = false
		for i := 1; i < n; i++ {
			newIdom := -1
			for _, pi := range predsOf(i) {
				if idom[pi] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = pi
				} else {
					newIdom = intersect(idom, newIdom, pi)
				}
			}
			if newIdom != -1 && idom[i] != newIdom {
				idom[i] = newIdom
				changed = true
			}
		}
	}
	return &Dominators{order: order, index: index, idom: idom}
}
