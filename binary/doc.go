// Package binary reads and writes the SPIR-V word-stream encoding
// described in §6: a 5-word header followed by a sequence of
// instructions, each led by a (wordCount<<16)|opcode word.
//
// Read decodes a byte stream straight into an *ir.Module, reporting
// structural problems through a diag.Consumer rather than failing the
// whole parse on the first one; Write re-encodes a Module back to
// bytes. For any valid module, Write(Read(b)) reproduces b exactly
// except for its id bound, which Write recomputes from the module's
// actual highest id, and for OpLine instructions inside function
// bodies, which Read files into the debug section with the other
// debug instructions (see §8's round-trip requirement, "semantically
// equal" rather than byte-identical, to allow for that).
//
// Only the opcodes shape.go classifies are parsed into id-aware
// operands; anything else round-trips as opaque literal words (see
// shape.go's doc comment). Real SPIR-V modules make heavy use of
// opcodes outside that set (image ops, atomics, barriers, ...); for
// those, instructions are preserved byte-for-byte but do not
// contribute edges to the Def/Use graph, so passes that depend on
// complete liveness information should not be run over modules
// containing them. Nothing in this module checks for such opcodes:
// ADCE runs over them like any other instruction.
package binary

import "encoding/binary"

// MagicNumber is the fixed first word of every SPIR-V binary module.
const MagicNumber uint32 = 0x07230203

var byteOrder = binary.LittleEndian
