package ir

// DefUse is the bidirectional definition/use database described in
// §4.C: for every id, its defining instruction and the multiset of
// instructions that use it (once per distinct operand position that
// references it, including as a result type id).
//
// Operating on an unknown id never fails: GetDef returns nil
// and Users returns an empty sequence, because SPIR-V forward
// references (phi operands, OpTypePointer forward declarations) transit
// through this state before their definition is analyzed.
type DefUse struct {
	defs map[Id]*Instruction
	uses map[Id][]*Instruction
}

// NewDefUse returns an empty Def/Use database.
func NewDefUse() *DefUse {
	return &DefUse{defs: make(map[Id]*Instruction), uses: make(map[Id][]*Instruction)}
}

// AnalyzeInstDefUse records inst's definition (if it has a result id)
// and inserts inst into the user set of every id it references,
// including its result type id. Called automatically by the Module/
// Function/BasicBlock insertion helpers; callers constructing
// instructions outside those helpers must call this explicitly before
// the instruction is queried.
func (du *DefUse) AnalyzeInstDefUse(inst *Instruction) {
	if inst.HasResult() {
		du.defs[inst.ResultId()] = inst
	}
	if inst.TypeId() != NoResult {
		du.uses[inst.TypeId()] = append(du.uses[inst.TypeId()], inst)
	}
	inst.ForEachInId(func(id Id) {
		du.uses[id] = append(du.uses[id], inst)
	})
}

// KillInst inverts AnalyzeInstDefUse — removing inst from every user
// set it appears in and its own definition entry if it had a result id
// — and splices inst out of whichever list currently owns it (U3).
func (du *DefUse) KillInst(inst *Instruction) {
	if inst.elem != nil && inst.owner != nil {
		inst.owner.Remove(inst.elem)
		inst.elem = nil
		inst.owner = nil
	}
	if inst.TypeId() != NoResult {
		du.removeUse(inst.TypeId(), inst)
	}
	inst.ForEachInId(func(id Id) { du.removeUse(id, inst) })
	if inst.HasResult() {
		delete(du.defs, inst.ResultId())
	}
}

func (du *DefUse) removeUse(id Id, inst *Instruction) {
	list := du.uses[id]
	if len(list) == 0 {
		return
	}
	out := list[:0]
	for _, u := range list {
		if u != inst {
			out = append(out, u)
		}
	}
	if len(out) == 0 {
		delete(du.uses, id)
	} else {
		du.uses[id] = out
	}
}

// GetDef returns the instruction defining id, or nil if id is unknown.
func (du *DefUse) GetDef(id Id) *Instruction { return du.defs[id] }

// Users returns a snapshot of the instructions using id, in the order
// they were recorded. Duplicates appear once per referencing operand
// position.
func (du *DefUse) Users(id Id) []*Instruction {
	src := du.uses[id]
	out := make([]*Instruction, len(src))
	copy(out, src)
	return out
}

// NumUsers returns the number of recorded uses of id.
func (du *DefUse) NumUsers(id Id) int { return len(du.uses[id]) }

// ForEachUser calls f once per recorded user of id. It snapshots the
// user set at entry, so f may kill the instruction it is currently
// called with (the database's removal of that user from the live set
// does not affect the in-flight iteration).
func (du *DefUse) ForEachUser(id Id, f func(user *Instruction)) {
	for _, u := range du.Users(id) {
		f(u)
	}
}

// ReplaceAllUsesWith rewrites every operand (and result-type-id)
// reference to a, across every user of a, to reference b instead,
// updating the user sets atomically. It returns the number of operand
// positions rewritten.
func (du *DefUse) ReplaceAllUsesWith(a, b Id) int {
	if a == b {
		return 0
	}
	snapshot := du.uses[a]
	seen := make(map[*Instruction]bool, len(snapshot))
	instrs := make([]*Instruction, 0, len(snapshot))
	for _, u := range snapshot {
		if !seen[u] {
			seen[u] = true
			instrs = append(instrs, u)
		}
	}

	total := 0
	for _, inst := range instrs {
		n := 0
		if inst.TypeId() == a {
			inst.resultType = b
			n++
		}
		for k := range inst.operands {
			if inst.operands[k].Kind == OperandIdRef && Id(inst.operands[k].Word) == a {
				inst.operands[k].Word = uint32(b)
				n++
			}
		}
		if n > 0 {
			total += n
			for i := 0; i < n; i++ {
				du.uses[b] = append(du.uses[b], inst)
			}
		}
	}
	delete(du.uses, a)
	return total
}
