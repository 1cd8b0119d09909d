package diag

// Consumer is the callback every core operation reports diagnostics
// through (§6): "a *consumer* is a callback accepting (severity,
// position, message)". Report must not block or retain d past the
// call.
type Consumer interface {
	Report(d Diagnostic)
}

// ConsumerFunc adapts a plain function to Consumer.
type ConsumerFunc func(Diagnostic)

func (f ConsumerFunc) Report(d Diagnostic) { f(d) }

// Nop discards every diagnostic.
var Nop Consumer = ConsumerFunc(func(Diagnostic) {})

// Collector accumulates every reported diagnostic in order, and tracks
// the first fatal one — the value the parser/validator return as
// their error per §7 ("the parser and validator report via the
// diagnostic consumer and return the first fatal kind").
type Collector struct {
	All            []Diagnostic
	firstFatal     *Diagnostic
	firstFatalSeen bool
}

func NewCollector() *Collector { return &Collector{} }

func (c *Collector) Report(d Diagnostic) {
	c.All = append(c.All, d)
	if !c.firstFatalSeen && d.Severity == SevFatal {
		cp := d
		c.firstFatal = &cp
		c.firstFatalSeen = true
	}
}

// FirstFatal returns the first SevFatal diagnostic reported, or nil.
func (c *Collector) FirstFatal() *Diagnostic { return c.firstFatal }

// HasErrors reports whether any SevError or SevFatal diagnostic was
// reported.
func (c *Collector) HasErrors() bool {
	for _, d := range c.All {
		if d.Severity == SevError || d.Severity == SevFatal {
			return true
		}
	}
	return false
}
