package binary

import "github.com/gogpu/spirvtools/ir"

func wordsFromBytes(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = byteOrder.Uint32(data[4*i:])
	}
	return words
}

func wordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		byteOrder.PutUint32(out[4*i:], w)
	}
	return out
}

// decodeFixedAndTail consumes words according to sh's fixed operand
// kinds followed by its tail pattern (see shape.go), returning one
// Operand per word consumed (LiteralString operands consume a
// variable run of words but still produce a single Operand).
func decodeFixedAndTail(sh shape, words []uint32) ([]ir.Operand, error) {
	var out []ir.Operand
	idx := 0

	consume := func(kind ir.OperandKind) error {
		switch kind {
		case ir.OperandLiteralString:
			if idx >= len(words) {
				return errShortOperands
			}
			s, n, err := decodeString(words[idx:])
			if err != nil {
				return err
			}
			out = append(out, ir.StringOperand(s))
			idx += n
		case ir.OperandIdRef:
			if idx >= len(words) {
				return errShortOperands
			}
			out = append(out, ir.IdOperand(ir.Id(words[idx])))
			idx++
		case ir.OperandEnum:
			if idx >= len(words) {
				return errShortOperands
			}
			out = append(out, ir.EnumOperand(words[idx]))
			idx++
		default: // OperandLiteralInt
			if idx >= len(words) {
				return errShortOperands
			}
			out = append(out, ir.IntOperand(words[idx]))
			idx++
		}
		return nil
	}

	for _, k := range sh.fixed {
		if err := consume(k); err != nil {
			return nil, err
		}
	}

	switch sh.tail {
	case tailRepeat:
		for idx < len(words) {
			if err := consume(sh.tailKinds[0]); err != nil {
				return nil, err
			}
		}
	case tailPair:
		for idx < len(words) {
			if err := consume(sh.tailKinds[0]); err != nil {
				return nil, err
			}
			if idx < len(words) {
				if err := consume(sh.tailKinds[1]); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}

// literalOperands is used for opcodes absent from the shape table: it
// keeps every remaining word as an opaque literal so the instruction
// still round-trips, without guessing at id-ref positions it cannot
// know (see doc.go).
func literalOperands(words []uint32) []ir.Operand {
	out := make([]ir.Operand, len(words))
	for i, w := range words {
		out[i] = ir.IntOperand(w)
	}
	return out
}
