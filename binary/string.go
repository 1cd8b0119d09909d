package binary

import "bytes"

// decodeString reads a null-terminated, word-padded literal string
// starting at words[0], per the SPIR-V literal string encoding: UTF-8
// bytes packed 4-per-word little-endian, terminated by a zero byte,
// the final word zero-padded out to a word boundary. It returns the
// decoded string and the number of words consumed.
func decodeString(words []uint32) (string, int, error) {
	var buf bytes.Buffer
	for i, w := range words {
		b := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, c := range b {
			if c == 0 {
				return buf.String(), i + 1, nil
			}
			buf.WriteByte(c)
		}
	}
	return "", 0, errUnterminatedString
}

// encodeString is the inverse of decodeString: it packs s plus its
// null terminator into words, zero-padding the final word.
func encodeString(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[4*i]) | uint32(b[4*i+1])<<8 | uint32(b[4*i+2])<<16 | uint32(b[4*i+3])<<24
	}
	return words
}
