package pass

import (
	"github.com/gogpu/spirvtools/cfg"
	"github.com/gogpu/spirvtools/ir"
)

// Analyses lazily computes and caches the CFG-derived analyses of one
// function. Every accessor recomputes on first use after construction
// or after reset, then memoizes: a pass that only reads the CFG never
// pays for a dominator tree it never asked for.
type Analyses struct {
	fn *ir.Function

	graph          *cfg.Graph
	dominators     *cfg.Dominators
	postDominators *cfg.PostDominators
	structured     *cfg.Structured
}

func newAnalyses(fn *ir.Function) *Analyses {
	return &Analyses{fn: fn}
}

// CFG returns fn's control-flow graph, computing it on first call.
func (a *Analyses) CFG() *cfg.Graph {
	if a.graph == nil {
		a.graph = cfg.Build(a.fn)
	}
	return a.graph
}

// Dominators returns fn's dominator tree.
func (a *Analyses) Dominators() *cfg.Dominators {
	if a.dominators == nil {
		a.dominators = cfg.ComputeDominators(a.CFG())
	}
	return a.dominators
}

// PostDominators returns fn's post-dominator tree.
func (a *Analyses) PostDominators() *cfg.PostDominators {
	if a.postDominators == nil {
		a.postDominators = cfg.ComputePostDominators(a.CFG())
	}
	return a.postDominators
}

// Structured returns fn's structured-construct map.
func (a *Analyses) Structured() *cfg.Structured {
	if a.structured == nil {
		a.structured = cfg.ComputeStructured(a.fn, a.CFG())
	}
	return a.structured
}

// reset clears every cached analysis, forcing recomputation on next
// access. Called by Manager.invalidate (through Context.Invalidate)
// and by Manager.invalidateAll.
func (a *Analyses) reset() {
	a.graph = nil
	a.dominators = nil
	a.postDominators = nil
	a.structured = nil
}
