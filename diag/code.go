package diag

// Kind is one of the error kinds named in §7. Every diagnostic the
// binary reader or validator reports at SevError or SevFatal carries
// one; informational and warning diagnostics may leave it empty.
type Kind string

const (
	InvalidBinary     Kind = "InvalidBinary"
	WrongVersion      Kind = "WrongVersion"
	InvalidLayout     Kind = "InvalidLayout"
	InvalidId         Kind = "InvalidId"
	InvalidCapability Kind = "InvalidCapability"
	InvalidData       Kind = "InvalidData"
	MissingExtension  Kind = "MissingExtension"
	InternalError     Kind = "InternalError"
)
