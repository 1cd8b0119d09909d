package pass

import (
	"testing"

	"github.com/gogpu/spirvtools/binary"
	"github.com/gogpu/spirvtools/diag"
	"github.com/gogpu/spirvtools/ir"
)

// buildOneBlockFunction assembles a module with a single function of
// one block (entry, OpReturn), enough to exercise Analyses caching
// without needing a real control-flow shape.
func buildOneBlockFunction(t *testing.T) *ir.Module {
	t.Helper()
	words := []uint32{binary.MagicNumber, 0x00010300, 0, 10, 0}
	app := func(op ir.OpCode, body ...uint32) {
		words = append(words, (uint32(len(body)+1)<<16)|uint32(op))
		words = append(words, body...)
	}
	app(ir.OpCapability, 1)
	app(ir.OpMemoryModel, 0, 1)
	app(ir.OpEntryPoint, append([]uint32{0, 3}, encodeStr("main")...)...)
	app(ir.OpTypeVoid, 1)
	app(ir.OpTypeFunction, 2, 1)
	app(ir.OpFunction, 1, 3, 0, 2)
	app(ir.OpLabel, 4)
	app(ir.OpReturn)
	app(ir.OpFunctionEnd)

	data := make([]byte, len(words)*4)
	for i, w := range words {
		data[4*i] = byte(w)
		data[4*i+1] = byte(w >> 8)
		data[4*i+2] = byte(w >> 16)
		data[4*i+3] = byte(w >> 24)
	}
	m, err := binary.Read(data, 0, diag.Nop)
	if err != nil {
		t.Fatalf("failed to build fixture module: %v", err)
	}
	return m
}

// countingPass reports Status/PreservesAnalyses exactly as configured,
// and records every function whose Analyses it touched via Context.
type countingPass struct {
	status       Status
	preserves    bool
	invalidateFn bool // if true, calls ctx.Invalidate on the fetched function itself
	cfgCalls     *int
}

func (p *countingPass) Name() string { return "counting" }

func (p *countingPass) Run(m *ir.Module, ctx *Context) (Status, error) {
	m.ForEachFunction(func(fn *ir.Function) {
		ctx.Analyses(fn).CFG()
		*p.cfgCalls++
		if p.invalidateFn {
			ctx.Invalidate(fn)
		}
	})
	return p.status, nil
}

func (p *countingPass) PreservesAnalyses() bool { return p.preserves }

func TestManager_RunCombinesStatusAcrossPasses(t *testing.T) {
	m := buildOneBlockFunction(t)
	calls := 0
	mgr := NewManager()
	mgr.AddPass(&countingPass{status: SuccessNoChange, preserves: true, cfgCalls: &calls})
	mgr.AddPass(&countingPass{status: SuccessChanged, preserves: true, cfgCalls: &calls})

	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != SuccessChanged {
		t.Fatalf("expected Combine to surface SuccessChanged, got %v", status)
	}
}

func TestManager_RunStopsOnFailure(t *testing.T) {
	m := buildOneBlockFunction(t)
	calls := 0
	mgr := NewManager()
	mgr.AddPass(&countingPass{status: Failure, preserves: true, cfgCalls: &calls})
	mgr.AddPass(&countingPass{status: SuccessChanged, preserves: true, cfgCalls: &calls})

	status, err := mgr.Run(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Failure {
		t.Fatalf("expected Failure to short-circuit the pipeline, got %v", status)
	}
	if calls != 1 {
		t.Fatalf("expected the second pass never to run after a Failure, got %d CFG calls", calls)
	}
}

func TestManager_AutoInvalidatesWhenPassDoesNotPreserve(t *testing.T) {
	m := buildOneBlockFunction(t)
	var fn *ir.Function
	m.ForEachFunction(func(f *ir.Function) { fn = f })

	mgr := NewManager()
	// Prime the cache directly through the manager's own accessor, the
	// way a first pass would.
	ctx := &Context{mgr: mgr}
	first := ctx.Analyses(fn).CFG()

	calls := 0
	mgr.AddPass(&countingPass{status: SuccessChanged, preserves: false, cfgCalls: &calls})
	if _, err := mgr.Run(m); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	second := ctx.Analyses(fn).CFG()
	if first == second {
		t.Fatalf("expected a SuccessChanged result from a non-preserving pass to force recomputation of the cached CFG")
	}
}

func TestManager_PreservingPassKeepsCache(t *testing.T) {
	m := buildOneBlockFunction(t)
	var fn *ir.Function
	m.ForEachFunction(func(f *ir.Function) { fn = f })

	mgr := NewManager()
	ctx := &Context{mgr: mgr}
	first := ctx.Analyses(fn).CFG()

	calls := 0
	mgr.AddPass(&countingPass{status: SuccessChanged, preserves: true, cfgCalls: &calls})
	if _, err := mgr.Run(m); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	second := ctx.Analyses(fn).CFG()
	if first != second {
		t.Fatalf("expected a preserving pass's SuccessChanged result to leave the untouched function's cache alone")
	}
}

func TestAnalyses_CFGIsMemoized(t *testing.T) {
	m := buildOneBlockFunction(t)
	var fn *ir.Function
	m.ForEachFunction(func(f *ir.Function) { fn = f })

	mgr := NewManager()
	ctx := &Context{mgr: mgr}
	a := ctx.Analyses(fn)
	g1 := a.CFG()
	g2 := a.CFG()
	if g1 != g2 {
		t.Fatalf("expected CFG() to memoize, got two different graphs")
	}

	ctx.Invalidate(fn)
	g3 := ctx.Analyses(fn).CFG()
	if g3 == g1 {
		t.Fatalf("expected Invalidate to force recomputation of the CFG")
	}
}
