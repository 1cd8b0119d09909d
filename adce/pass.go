package adce

import (
	"github.com/gogpu/spirvtools/ir"
	"github.com/gogpu/spirvtools/pass"
)

// Options configures an ADCE pass instance (see config.ADCEOptions,
// which a driver loads from TOML and translates into this type).
type Options struct {
	// ExtensionsAllowList overrides the pass's built-in extension
	// allow-list (adce/extensions.go) when non-empty.
	ExtensionsAllowList []string
}

// ADCE is the aggressive-dead-code-elimination pass (§4.F). It assumes
// the Shader capability and relaxed logical addressing (no
// CapabilityAddresses); a module that declares either precondition
// differently is left untouched, reported as SuccessNoChange rather
// than an error, since that is not a defect in the module — just a
// shape ADCE does not yet reason about (see §9).
type ADCE struct {
	allowlist map[string]bool
}

// New returns an ADCE pass instance configured by opts. ADCE carries no
// per-run state beyond its configuration — everything mutable lives in
// the per-Run state value — so a single instance may run against any
// number of modules.
func New(opts Options) *ADCE {
	return &ADCE{allowlist: allowlistFrom(opts.ExtensionsAllowList)}
}

func (p *ADCE) Name() string { return "eliminate-dead-code-aggressive" }

// PreservesAnalyses reports true: every edit path in Run (per-function
// worklist closure, the global-value sweep, and cfgCleanup) calls
// Context.Invalidate for the functions it actually touches, so Manager
// need not blanket-invalidate the whole cache on our behalf.
func (p *ADCE) PreservesAnalyses() bool { return true }

func (p *ADCE) Run(m *ir.Module, ctx *pass.Context) (pass.Status, error) {
	if !m.HasCapability(uint32(ir.CapabilityShader)) {
		return pass.SuccessNoChange, nil
	}
	if m.HasCapability(uint32(ir.CapabilityAddresses)) {
		return pass.SuccessNoChange, nil
	}
	if !allExtensionsSupported(m, p.allowlist) {
		return pass.SuccessNoChange, nil
	}

	modified := eliminateDeadFunctions(m)

	s := newState(m)
	s.initializeModuleScopeLiveInstructions()

	for _, fn := range pass.EntryPointPostOrder(m) {
		if s.processFunction(fn, ctx) {
			modified = true
			ctx.Invalidate(fn)
		}
	}

	if s.processGlobalValues() {
		modified = true
	}

	for _, inst := range s.toKill {
		m.KillInst(inst)
	}

	var cleaned []*ir.Function
	m.ForEachFunction(func(fn *ir.Function) { cleaned = append(cleaned, fn) })
	for _, fn := range cleaned {
		if cfgCleanup(fn, ctx) {
			modified = true
		}
	}

	if modified {
		return pass.SuccessChanged, nil
	}
	return pass.SuccessNoChange, nil
}
