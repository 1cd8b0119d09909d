package adce

import (
	"github.com/gogpu/spirvtools/cfg"
	"github.com/gogpu/spirvtools/ir"
	"github.com/gogpu/spirvtools/pass"
)

// processFunction seeds, closes and kills dead code within fn. It
// returns true if it changed the function.
func (s *state) processFunction(fn *ir.Function, ctx *pass.Context) bool {
	s.addToWorklist(fn.DefInst())
	fn.ForEachParam(func(p *ir.Instruction) { s.addToWorklist(p) })

	structured := ctx.Analyses(fn).Structured()
	order := structured.Order

	callInFunc := false
	funcIsEntryPoint := fn.IsEntryPoint()
	var privateStores []*ir.Instruction

	// Stacks tracking, for the block currently being scanned, whether a
	// branch found there should be seeded live outright (true outside
	// any construct) or only via the closure's construct-propagation
	// rule (false immediately inside a selection/loop construct).
	assumeBranchesLive := []bool{true}
	currentMergeBlockId := []ir.Id{0}

	for _, b := range order {
		if b.Id() == currentMergeBlockId[len(currentMergeBlockId)-1] {
			assumeBranchesLive = assumeBranchesLive[:len(assumeBranchesLive)-1]
			currentMergeBlockId = currentMergeBlockId[:len(currentMergeBlockId)-1]
		}
		b.ForEachInst(func(inst *ir.Instruction) {
			switch inst.Opcode() {
			case ir.OpStore:
				varId := pointerOperandVar(s.du, inst)
				if IsVarOfStorage(s.du, varId, ir.StorageClassPrivate) {
					privateStores = append(privateStores, inst)
				} else if !IsVarOfStorage(s.du, varId, ir.StorageClassFunction) {
					s.addToWorklist(inst)
				}
			case ir.OpLoopMerge:
				assumeBranchesLive = append(assumeBranchesLive, false)
				currentMergeBlockId = append(currentMergeBlockId, inst.InOperandId(0))
			case ir.OpSelectionMerge:
				assumeBranchesLive = append(assumeBranchesLive, false)
				currentMergeBlockId = append(currentMergeBlockId, inst.InOperandId(0))
			case ir.OpSwitch, ir.OpBranch, ir.OpBranchConditional:
				if assumeBranchesLive[len(assumeBranchesLive)-1] {
					s.addToWorklist(inst)
				}
			default:
				if !inst.IsCombinator() {
					s.addToWorklist(inst)
				}
				if inst.Opcode() == ir.OpFunctionCall {
					callInFunc = true
				}
			}
		})
	}

	// A Private variable behaves exactly like a Function-scope local
	// only when this function is an entry point with no calls: nothing
	// else in the module's static call tree can then observe it, so its
	// stores need liveness justified the same way a local's do.
	privateLikeLocal := funcIsEntryPoint && !callInFunc
	if !privateLikeLocal {
		for _, ps := range privateStores {
			s.addToWorklist(ps)
		}
	}

	s.closeWorklist(fn, structured, privateLikeLocal)

	return s.killDead(fn, order)
}

// closeWorklist drains the worklist, propagating liveness through
// operand defs, result types, enclosing structured constructs, and
// (for loads/calls/parameters) the local variables they touch.
func (s *state) closeWorklist(fn *ir.Function, structured *cfg.Structured, privateLikeLocal bool) {
	for len(s.queue) > 0 {
		liveInst := s.queue[0]
		s.queue = s.queue[1:]

		liveInst.ForEachInId(func(id ir.Id) {
			inInst := s.du.GetDef(id)
			if inInst == nil {
				return
			}
			// A branch's label operand (its target) is not itself live
			// code — marking it so would keep loop headers alive purely
			// because something branches to them.
			if inInst.Opcode() == ir.OpLabel && liveInst.IsBranch() {
				return
			}
			s.addToWorklist(inInst)
		})
		if liveInst.TypeId() != ir.NoResult {
			s.addToWorklist(s.du.GetDef(liveInst.TypeId()))
		}

		if blk := liveInst.Block(); blk != nil {
			if headerId := structured.EnclosingHeader(blk.Id()); headerId != 0 {
				if headerBlk := fn.BlockById(headerId); headerBlk != nil {
					branchInst := headerBlk.Terminator()
					s.addToWorklist(branchInst)
					mergeInst := headerBlk.MergeInst()
					s.addToWorklist(mergeInst)
					if mergeInst != nil && mergeInst.Opcode() == ir.OpLoopMerge {
						s.addBreaksAndContinues(fn, structured, mergeInst)
					}
				}
			}
		}

		switch liveInst.Opcode() {
		case ir.OpLoad:
			if varId := pointerOperandVar(s.du, liveInst); varId != ir.NoResult {
				s.processLoad(privateLikeLocal, varId)
			}
		case ir.OpFunctionCall:
			liveInst.ForEachInId(func(id ir.Id) {
				if !isPointerType(s.du, id) {
					return
				}
				s.processLoad(privateLikeLocal, basePointerVar(s.du, id))
			})
		case ir.OpFunctionParameter:
			s.processLoad(privateLikeLocal, liveInst.ResultId())
		}
	}
}

// addBreaksAndContinues marks live the break branches leaving a loop
// and the continue branches to its continue target, transliterating
// SPIRV-Tools' AddBreaksAndContinuesToWorklist: a branch/switch that
// targets the continue block only counts as a continue when it is not
// itself a selection header whose own merge is that continue block
// (in which case it is just a selection ending at the loop's continue
// point, not a loop continue).
func (s *state) addBreaksAndContinues(fn *ir.Function, structured *cfg.Structured, loopMerge *ir.Instruction) {
	header := loopMerge.Block()
	if header == nil {
		return
	}
	headerIndex, ok := structured.OrderIndex(header.Id())
	if !ok {
		return
	}
	mergeId := loopMerge.InOperandId(0)
	mergeIndex, ok := structured.OrderIndex(mergeId)
	if !ok {
		return
	}

	s.du.ForEachUser(mergeId, func(user *ir.Instruction) {
		if !user.IsBranch() {
			return
		}
		blk := user.Block()
		if blk == nil {
			return
		}
		idx, ok := structured.OrderIndex(blk.Id())
		if !ok {
			return
		}
		if headerIndex < idx && idx < mergeIndex {
			s.addToWorklist(user)
			if ownMerge := blk.MergeInst(); ownMerge != nil {
				s.addToWorklist(ownMerge)
			}
		}
	})

	contId := loopMerge.InOperandId(1)
	s.du.ForEachUser(contId, func(user *ir.Instruction) {
		switch user.Opcode() {
		case ir.OpBranchConditional, ir.OpSwitch:
			blk := user.Block()
			if blk == nil {
				return
			}
			if ownMerge := blk.MergeInst(); ownMerge != nil && ownMerge.Opcode() == ir.OpSelectionMerge {
				if ownMerge.InOperandId(0) == contId {
					return
				}
				s.addToWorklist(ownMerge)
			}
		case ir.OpBranch:
			blk := user.Block()
			if blk == nil {
				return
			}
			hdrId := structured.EnclosingHeader(blk.Id())
			if hdrId == 0 {
				return
			}
			hdrBlk := fn.BlockById(hdrId)
			if hdrBlk == nil {
				return
			}
			hdrMerge := hdrBlk.MergeInst()
			if hdrMerge == nil || hdrMerge.Opcode() == ir.OpLoopMerge {
				return
			}
			if hdrMerge.InOperandId(0) == contId {
				return
			}
		default:
			return
		}
		s.addToWorklist(user)
	})
}

// killDead walks order once more, queuing every dead instruction for
// removal (killed later, in one batch, by the caller) and synthesizing
// a replacement OpBranch to the merge block wherever a whole
// selection/loop construct was found dead, so the block it used to
// head remains validly terminated.
func (s *state) killDead(fn *ir.Function, order []*ir.BasicBlock) bool {
	modified := false
	for i := 0; i < len(order); {
		b := order[i]
		var mergeBlockId ir.Id
		b.ForEachInst(func(inst *ir.Instruction) {
			if !s.isDead(inst) {
				return
			}
			if inst.Opcode() == ir.OpLabel {
				return
			}
			if inst.Opcode() == ir.OpSelectionMerge || inst.Opcode() == ir.OpLoopMerge {
				mergeBlockId = inst.InOperandId(0)
			}
			s.toKill = append(s.toKill, inst)
			modified = true
		})
		if mergeBlockId != ir.NoResult {
			newBranch := ir.NewInstruction(ir.OpBranch, ir.NoResult, ir.NoResult, ir.IdOperand(mergeBlockId))
			b.AddInstruction(newBranch, s.du)
			i++
			for i < len(order) && order[i].Id() != mergeBlockId {
				i++
			}
		} else {
			i++
		}
	}
	return modified
}
