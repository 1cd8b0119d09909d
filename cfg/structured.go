package cfg

import "github.com/gogpu/spirvtools/ir"

// Structured holds the structured-control-flow construct map used by
// the aggressive-dead-code-elimination pass: for each selection/loop
// header, its merge (and, for loops, continue) block, plus a structured
// visitation order in which every construct's body is fully visited
// before its merge block (so a worklist walk never crosses a live
// construct boundary before seeding it).
//
// This is a simplified stand-in for SPIRV-Tools'
// ComputeStructuredOrder/ComputeBlock2HeaderMaps: nesting is exact
// (every block in a construct's body precedes that construct's merge
// block, recursively), but sibling order within a construct is DFS
// preorder rather than the reference implementation's reverse
// postorder. ADCE's seeding and kill-phase logic depend only on the
// nesting guarantee, not on exact sibling order.
type Structured struct {
	Order []*ir.BasicBlock // structured visitation order, entry first

	headerMerge    map[ir.Id]ir.Id // selection/loop header -> merge block id
	headerContinue map[ir.Id]ir.Id // loop header -> continue target id
	block2header   map[ir.Id]ir.Id // block -> innermost enclosing header id (0 if none)
	mergeBlocks    map[ir.Id]bool
	continueBlocks map[ir.Id]bool
	orderIndex     map[ir.Id]int // block id -> position in Order
}

func isPending(pending []ir.Id, id ir.Id) bool {
	for _, p := range pending {
		if p == id {
			return true
		}
	}
	return false
}

// ComputeStructured builds the construct map for fn over g.
func ComputeStructured(fn *ir.Function, g *Graph) *Structured {
	s := &Structured{
		headerMerge:    make(map[ir.Id]ir.Id),
		headerContinue: make(map[ir.Id]ir.Id),
		block2header:   make(map[ir.Id]ir.Id),
		mergeBlocks:    make(map[ir.Id]bool),
		continueBlocks: make(map[ir.Id]bool),
		orderIndex:     make(map[ir.Id]int),
	}
	entry := fn.EntryBlock()
	if entry == nil {
		return s
	}

	visited := make(map[ir.Id]bool)
	// pending holds the merge-block ids of every construct currently
	// open on the DFS stack (innermost last). A block reached while one
	// of these ids is pending — e.g. a break branching straight from a
	// loop body to the loop's merge block, skipping the continue block
	// entirely — must not be visited as part of that inner recursion:
	// it belongs to whichever open construct it actually closes, and is
	// only visited once that construct's own header finishes its body
	// and explicitly walks to its merge block below.
	var visit func(b *ir.BasicBlock, enclosing ir.Id, pending []ir.Id)
	visit = func(b *ir.BasicBlock, enclosing ir.Id, pending []ir.Id) {
		if visited[b.Id()] {
			return
		}
		visited[b.Id()] = true
		s.Order = append(s.Order, b)

		merge, _, mergeId, ok := b.IsStructuredHeader()
		if !ok {
			s.block2header[b.Id()] = enclosing
			for _, succ := range Successors(fn, b) {
				if isPending(pending, succ.Id()) {
					continue
				}
				visit(succ, enclosing, pending)
			}
			return
		}

		isLoop := merge.Opcode() == ir.OpLoopMerge
		// A loop header's own instructions (the induction/condition
		// computation preceding OpLoopMerge) are considered part of the
		// loop construct itself, so it maps to itself. A selection
		// header's condition is evaluated in the enclosing construct, so
		// it maps to enclosing — matching the reference implementation's
		// push-before-map (loop) vs. map-before-push (selection) order.
		if isLoop {
			s.block2header[b.Id()] = b.Id()
		} else {
			s.block2header[b.Id()] = enclosing
		}

		s.headerMerge[b.Id()] = mergeId
		s.mergeBlocks[mergeId] = true
		if isLoop {
			continueId := merge.InOperandId(1)
			s.headerContinue[b.Id()] = continueId
			s.continueBlocks[continueId] = true
		}

		bodyPending := append(append([]ir.Id{}, pending...), mergeId)
		for _, succ := range Successors(fn, b) {
			if succ.Id() == mergeId || isPending(bodyPending, succ.Id()) {
				continue
			}
			visit(succ, b.Id(), bodyPending)
		}
		if mb := fn.BlockById(mergeId); mb != nil {
			visit(mb, enclosing, pending)
		}
	}
	visit(entry, 0, nil)
	for i, b := range s.Order {
		s.orderIndex[b.Id()] = i
	}
	return s
}

// OrderIndex returns b's position in Order, and whether b was visited
// (i.e. reachable).
func (s *Structured) OrderIndex(b ir.Id) (int, bool) {
	i, ok := s.orderIndex[b]
	return i, ok
}

// MergeBlockFor returns the merge block id of header, and whether
// header is a selection/loop header.
func (s *Structured) MergeBlockFor(header ir.Id) (ir.Id, bool) {
	id, ok := s.headerMerge[header]
	return id, ok
}

// ContinueBlockFor returns the continue target of a loop header, and
// whether header is a loop header.
func (s *Structured) ContinueBlockFor(header ir.Id) (ir.Id, bool) {
	id, ok := s.headerContinue[header]
	return id, ok
}

// EnclosingHeader returns the innermost selection/loop header whose
// construct body contains b, or 0 if b is not nested in any construct.
func (s *Structured) EnclosingHeader(b ir.Id) ir.Id {
	return s.block2header[b]
}

// IsMergeBlock reports whether b is the merge block of some construct.
func (s *Structured) IsMergeBlock(b ir.Id) bool { return s.mergeBlocks[b] }

// IsContinueBlock reports whether b is the continue target of some
// loop.
func (s *Structured) IsContinueBlock(b ir.Id) bool { return s.continueBlocks[b] }
