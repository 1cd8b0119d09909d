package pass

import "github.com/gogpu/spirvtools/ir"

// Manager runs an ordered pipeline of passes over a module, caching
// each function's CFG/dominator/structured analyses across passes.
// A pass that edits a function's blocks or terminators must call
// Context.Invalidate(fn) before relying on analyses again within the
// same Run, and before the next pass sees that function.
type Manager struct {
	passes   []Pass
	analyses map[ir.Id]*Analyses // keyed by function id
}

// NewManager returns an empty pipeline.
func NewManager() *Manager {
	return &Manager{analyses: make(map[ir.Id]*Analyses)}
}

// AddPass appends p to the pipeline.
func (m *Manager) AddPass(p Pass) {
	m.passes = append(m.passes, p)
}

func (m *Manager) analysesFor(fn *ir.Function) *Analyses {
	a, ok := m.analyses[fn.Id()]
	if !ok {
		a = newAnalyses(fn)
		m.analyses[fn.Id()] = a
	}
	return a
}

func (m *Manager) invalidate(fn *ir.Function) {
	if a, ok := m.analyses[fn.Id()]; ok {
		a.reset()
	}
}

// invalidateAll discards every function's cached analyses. Run's safety
// net for a pass that answers false from PreservesAnalyses.
func (m *Manager) invalidateAll() {
	for _, a := range m.analyses {
		a.reset()
	}
}

// Run executes every pass in order against module, stopping early (and
// returning Failure) if any pass fails. The returned Status is
// SuccessChanged if any pass reported a change, else SuccessNoChange,
// matching the per-pass Combine rule in §4.E.
//
// Per §4.E, a pass that reports SuccessChanged and does not declare
// PreservesAnalyses must not be trusted to have invalidated every
// function it touched: Run blanket-invalidates the whole analysis
// cache for it. A pass that declares PreservesAnalyses is trusted to
// have called Context.Invalidate itself for every function it edited,
// so sibling passes keep their cached CFG/dominator data for functions
// that pass left alone.
func (m *Manager) Run(module *ir.Module) (Status, error) {
	ctx := &Context{mgr: m}
	overall := SuccessNoChange
	for _, p := range m.passes {
		st, err := p.Run(module, ctx)
		if err != nil || st == Failure {
			return Failure, err
		}
		if st == SuccessChanged && !p.PreservesAnalyses() {
			m.invalidateAll()
		}
		overall = Combine(overall, st)
	}
	return overall, nil
}
