package ir

import "fmt"

// Id is a SPIR-V id: a non-zero 32-bit integer identifying an entity
// (type, constant, variable, function, label, ...) that is unique
// within a module.
type Id uint32

// NoResult is the zero id, meaning "this instruction has no result" —
// used for both result type and result id slots.
const NoResult Id = 0

// Valid reports whether id could plausibly be a defined SPIR-V id
// (non-zero). It does not check against a module's id bound.
func (id Id) Valid() bool { return id != NoResult }

func (id Id) String() string {
	if id == NoResult {
		return "<none>"
	}
	return fmt.Sprintf("%%%d", uint32(id))
}

// IdRangeError reports an id that falls outside a module's declared
// bound, or a result id that collides with an earlier definition.
type IdRangeError struct {
	Id    Id
	Bound Id
	Dup   bool
}

func (e *IdRangeError) Error() string {
	if e.Dup {
		return fmt.Sprintf("id %s is defined more than once", e.Id)
	}
	return fmt.Sprintf("id %s is out of range for declared bound %d", e.Id, uint32(e.Bound))
}
