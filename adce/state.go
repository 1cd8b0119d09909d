package adce

import "github.com/gogpu/spirvtools/ir"

// state is the liveness worklist and live-instruction set shared across
// every function processed by one ADCE run, plus the deferred kill
// list: instructions are only marked for death while live/dead status
// is still being discovered across the whole module, and are removed
// in one pass at the very end so that Def/Use queries made while
// processing one function (or the later global-value sweep) never see
// a half-killed module.
type state struct {
	module *ir.Module
	du     *ir.DefUse

	live  map[*ir.Instruction]bool
	queue []*ir.Instruction

	liveLocalVars map[ir.Id]bool
	toKill        []*ir.Instruction
}

func newState(m *ir.Module) *state {
	return &state{
		module:        m,
		du:            m.DefUse(),
		live:          make(map[*ir.Instruction]bool),
		liveLocalVars: make(map[ir.Id]bool),
	}
}

// addToWorklist marks inst live (if not already) and schedules it for
// the closure loop. inst may be nil (e.g. an operand whose id has no
// recorded definition, a forward reference never resolved) — a no-op.
func (s *state) addToWorklist(inst *ir.Instruction) {
	if inst == nil || s.live[inst] {
		return
	}
	s.live[inst] = true
	s.queue = append(s.queue, inst)
}

func (s *state) isLive(inst *ir.Instruction) bool { return inst != nil && s.live[inst] }

// isDead reports whether inst should be eliminated: never live, and —
// for a branch — only when its block is a structured header (a plain
// fall-through branch at the end of an ordinary block is never killed
// directly; removing its block is CFG cleanup's job, not ADCE's).
func (s *state) isDead(inst *ir.Instruction) bool {
	if s.isLive(inst) {
		return false
	}
	if inst.IsBranch() {
		blk := inst.Block()
		if blk == nil {
			return false
		}
		if _, _, _, ok := blk.IsStructuredHeader(); !ok {
			return false
		}
	}
	return true
}

// isTargetDead reports whether a decoration-style instruction's target
// (in-operand 0) is dead. A target that is itself a decoration group
// is dead only once no OpGroupDecorate/OpGroupMemberDecorate applies
// it anymore — those are processed first (DecorationLess orders them
// ahead of OpDecorate/OpMemberDecorate/OpDecorateId), so by the time a
// decoration of the group is checked, every group decorate left with
// only dead targets has already been removed.
func (s *state) isTargetDead(inst *ir.Instruction) bool {
	tId := inst.InOperandId(0)
	tInst := s.du.GetDef(tId)
	if tInst == nil {
		return true
	}
	if tInst.Opcode() == ir.OpDecorationGroup {
		dead := true
		s.du.ForEachUser(tId, func(user *ir.Instruction) {
			if user.Opcode() == ir.OpGroupDecorate || user.Opcode() == ir.OpGroupMemberDecorate {
				dead = false
			}
		})
		return dead
	}
	return s.isDead(tInst)
}
