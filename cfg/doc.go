// Package cfg computes control-flow and structured-control-flow
// analyses over an ir.Function: basic block successors/predecessors,
// reverse postorder, dominator and post-dominator trees, and the
// structured-construct map that pairs each SelectionMerge/LoopMerge
// header with its merge (and, for loops, continue) block.
//
// A Graph is built fresh from a function's current blocks; nothing
// here is incremental. Package pass is responsible for deciding when a
// Graph is stale and needs rebuilding (see pass.Analyses).
package cfg
