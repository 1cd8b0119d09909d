package ir

import "testing"

func TestDefUse_GetDefAndUsers(t *testing.T) {
	du := NewDefUse()
	typ := NewInstruction(OpTypeInt, NoResult, 1, IntOperand(32), IntOperand(1))
	du.AnalyzeInstDefUse(typ)

	c1 := NewInstruction(OpConstant, 1, 2, IntOperand(7))
	du.AnalyzeInstDefUse(c1)
	c2 := NewInstruction(OpConstant, 1, 3, IntOperand(9))
	du.AnalyzeInstDefUse(c2)

	if du.GetDef(1) != typ {
		t.Fatalf("expected GetDef(1) to return the OpTypeInt instruction")
	}
	if got := du.NumUsers(1); got != 2 {
		t.Fatalf("expected 2 users of the type id (both constants), got %d", got)
	}
	users := du.Users(1)
	if len(users) != 2 || users[0] != c1 || users[1] != c2 {
		t.Fatalf("expected Users(1) == [c1, c2] in recorded order, got %v", users)
	}
}

func TestDefUse_UnknownIdIsEmptyNotError(t *testing.T) {
	du := NewDefUse()
	if du.GetDef(999) != nil {
		t.Fatalf("expected GetDef on an unknown id to return nil")
	}
	if got := du.NumUsers(999); got != 0 {
		t.Fatalf("expected NumUsers on an unknown id to be 0, got %d", got)
	}
	calls := 0
	du.ForEachUser(999, func(*Instruction) { calls++ })
	if calls != 0 {
		t.Fatalf("expected ForEachUser on an unknown id to call f zero times, got %d", calls)
	}
}

func TestDefUse_KillInstRemovesDefAndUses(t *testing.T) {
	du := NewDefUse()
	typ := NewInstruction(OpTypeInt, NoResult, 1, IntOperand(32), IntOperand(1))
	du.AnalyzeInstDefUse(typ)
	c1 := NewInstruction(OpConstant, 1, 2, IntOperand(7))
	du.AnalyzeInstDefUse(c1)

	du.KillInst(c1)

	if du.GetDef(2) != nil {
		t.Fatalf("expected killed instruction's own definition removed")
	}
	if got := du.NumUsers(1); got != 0 {
		t.Fatalf("expected killing c1 to remove it from %%1's user set, got %d users left", got)
	}
	// The type's own definition must survive — only its user was killed.
	if du.GetDef(1) != typ {
		t.Fatalf("expected %%1's own definition to survive killing one of its users")
	}
}

func TestDefUse_ReplaceAllUsesWith(t *testing.T) {
	du := NewDefUse()
	oldTy := NewInstruction(OpTypeInt, NoResult, 1, IntOperand(32), IntOperand(1))
	du.AnalyzeInstDefUse(oldTy)
	newTy := NewInstruction(OpTypeInt, NoResult, 5, IntOperand(32), IntOperand(0))
	du.AnalyzeInstDefUse(newTy)

	load := NewInstruction(OpLoad, 1, 2, IdOperand(10))
	du.AnalyzeInstDefUse(load)
	add := NewInstruction(OpIAdd, 1, 3, IdOperand(2), IdOperand(2))
	du.AnalyzeInstDefUse(add)

	n := du.ReplaceAllUsesWith(1, 5)
	if n != 2 { // load's result type and add's result type
		t.Fatalf("expected 2 operand positions rewritten (load's result type, add's result type), got %d", n)
	}
	if load.TypeId() != 5 {
		t.Fatalf("expected load's result type rewritten to %%5, got %s", load.TypeId())
	}
	if add.TypeId() != 5 {
		t.Fatalf("expected add's result type rewritten to %%5, got %s", add.TypeId())
	}
	if du.NumUsers(1) != 0 {
		t.Fatalf("expected no users left referencing the old id %%1")
	}
	if du.NumUsers(5) < 2 {
		t.Fatalf("expected the rewritten references to now count as users of %%5")
	}
}

func TestDefUse_SelfReplaceIsNoOp(t *testing.T) {
	du := NewDefUse()
	if n := du.ReplaceAllUsesWith(7, 7); n != 0 {
		t.Fatalf("expected replacing an id with itself to rewrite nothing, got %d", n)
	}
}
