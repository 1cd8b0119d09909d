package ir

// StorageClass is a SPIR-V OpTypePointer/OpVariable storage class
// enumerant. Only the values package adce needs to classify variables
// are listed; others pass through opaquely as their raw word.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
)

// Decoration is a SPIR-V OpDecorate/OpMemberDecorate decoration kind.
type Decoration uint32

const (
	DecorationBuiltIn Decoration = 11
)

// BuiltIn is a SPIR-V BuiltIn decoration value.
type BuiltIn uint32

const (
	BuiltInWorkgroupSize BuiltIn = 25
)

// Capability is a SPIR-V OpCapability operand value.
type Capability uint32

const (
	CapabilityShader    Capability = 1
	CapabilityAddresses Capability = 4
)
