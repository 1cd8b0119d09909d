package pass

import "github.com/gogpu/spirvtools/ir"

// Pass is a single module-to-module transformation. Implementations
// must not retain the *ir.Module or any of its instructions past the
// Run call that supplies them (§5: a pass owns the module only for the
// duration of Run).
type Pass interface {
	// Name identifies the pass in diagnostics and -h output.
	Name() string

	// Run applies the transformation to m, using ctx for cached
	// per-function analyses. A pass whose preconditions do not hold
	// leaves m unmodified and returns SuccessNoChange (see adce.ADCE.Run
	// for the capability/extension checks); Failure (or a non-nil
	// error) stops the Manager's pipeline.
	Run(m *ir.Module, ctx *Context) (Status, error)

	// PreservesAnalyses declares, per §4.E, whether this pass can be
	// trusted to call Context.Invalidate itself for every function
	// whose blocks or terminators it edits. Answering true opts out of
	// Manager.Run's safety net (see Manager.Run): the manager will not
	// blanket-invalidate every function's cached CFG/dominator/
	// structured analyses after a SuccessChanged result, trusting the
	// pass's own Invalidate calls instead. A pass unsure of its own
	// invalidation discipline — in particular any new pass written
	// without auditing every edit path for a matching Invalidate call
	// — must answer false, the conservative default.
	PreservesAnalyses() bool
}

// Context threads a Manager's analysis cache into a running Pass so it
// can request a function's CFG/dominator tree without knowing whether
// a sibling pass already computed it this run.
type Context struct {
	mgr *Manager
}

// Analyses returns the (possibly cached) analyses for fn.
func (c *Context) Analyses(fn *ir.Function) *Analyses {
	return c.mgr.analysesFor(fn)
}

// Invalidate discards fn's cached analyses. Call after any edit that
// changes fn's block structure or terminators.
func (c *Context) Invalidate(fn *ir.Function) {
	c.mgr.invalidate(fn)
}
