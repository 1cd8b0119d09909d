package adce

import "github.com/gogpu/spirvtools/ir"

// IsVarOfStorage reports whether varId names an OpVariable declared in
// the given storage class.
func IsVarOfStorage(du *ir.DefUse, varId ir.Id, class ir.StorageClass) bool {
	if varId == ir.NoResult {
		return false
	}
	varInst := du.GetDef(varId)
	if varInst == nil || varInst.Opcode() != ir.OpVariable {
		return false
	}
	varTypeInst := du.GetDef(varInst.TypeId())
	if varTypeInst == nil || varTypeInst.Opcode() != ir.OpTypePointer {
		return false
	}
	return ir.StorageClass(varTypeInst.GetSingleWordInOperand(0)) == class
}

// IsLocalVar reports whether varId is a Function-storage variable, or
// a Private-storage variable in a function where private storage is
// being treated as local (see the privateLikeLocal computation in
// processFunction — §9's documented approximation: a Private variable
// is local-like only in a function that is an entry point and contains
// no OpFunctionCall. The rule is decided per function; another entry
// point that uses the same Private variable is not taken into account).
func IsLocalVar(du *ir.DefUse, varId ir.Id, privateLikeLocal bool) bool {
	return IsVarOfStorage(du, varId, ir.StorageClassFunction) ||
		(privateLikeLocal && IsVarOfStorage(du, varId, ir.StorageClassPrivate))
}

// basePointerVar follows a pointer-typed id back through access-chain
// and copy-object instructions to the instruction that ultimately
// produced it (an OpVariable, an OpFunctionParameter, or anything else
// a chain could originate from).
func basePointerVar(du *ir.DefUse, ptrId ir.Id) ir.Id {
	id := ptrId
	for {
		inst := du.GetDef(id)
		if inst == nil {
			return id
		}
		switch inst.Opcode() {
		case ir.OpAccessChain, ir.OpInBoundsAccessChain, ir.OpPtrAccessChain, ir.OpCopyObject:
			id = inst.InOperandId(0)
		default:
			return id
		}
	}
}

// pointerOperandVar returns the base variable of inst's first
// in-operand, assuming it is a pointer (true for OpLoad and OpStore,
// whose pointer is always in-operand 0).
func pointerOperandVar(du *ir.DefUse, inst *ir.Instruction) ir.Id {
	if inst.NumOperands() == 0 {
		return ir.NoResult
	}
	return basePointerVar(du, inst.InOperandId(0))
}

// isPointerType reports whether id's declared type is OpTypePointer.
func isPointerType(du *ir.DefUse, id ir.Id) bool {
	inst := du.GetDef(id)
	if inst == nil {
		return false
	}
	typeInst := du.GetDef(inst.TypeId())
	return typeInst != nil && typeInst.Opcode() == ir.OpTypePointer
}

// addStores marks every store that can reach through ptrId as live,
// chasing OpAccessChain/OpInBoundsAccessChain/OpCopyObject forward to
// every user of the id they produce. Loads are skipped. Any other user
// of a pointer (OpStore, but also e.g. OpImageTexelPointer-style side
// effects this core does not model precisely) is conservatively
// treated as a store.
func (s *state) addStores(ptrId ir.Id) {
	s.du.ForEachUser(ptrId, func(user *ir.Instruction) {
		switch user.Opcode() {
		case ir.OpAccessChain, ir.OpInBoundsAccessChain, ir.OpCopyObject:
			s.addStores(user.ResultId())
		case ir.OpLoad:
			// Reading through the pointer does not itself make any store
			// live; the load's own liveness is decided independently.
		default:
			s.addToWorklist(user)
		}
	})
}

// processLoad marks a local variable's stores live the first time any
// load of it is discovered live, and remembers varId so later loads of
// the same variable are free.
func (s *state) processLoad(privateLikeLocal bool, varId ir.Id) {
	if !IsLocalVar(s.du, varId, privateLikeLocal) {
		return
	}
	if s.liveLocalVars[varId] {
		return
	}
	s.addStores(varId)
	s.liveLocalVars[varId] = true
}
