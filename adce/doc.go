// Package adce implements aggressive dead code elimination: a
// liveness-based pass that keeps only the instructions a module's
// entry points can observe (through execution modes, stores to
// externally-visible storage, or a function's return/side effects)
// and removes everything else, including unreachable structured
// control flow and the functions no live call graph reaches.
package adce
