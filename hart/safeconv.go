package hart

// SignExtendByte widens a byte to a signed 32-bit value reinterpreted as a
// Word, the LB semantics.
func SignExtendByte(b uint8) uint32 {
	return uint32(int32(int8(b)))
}

// SignExtendHalfword widens a halfword to a signed 32-bit value
// reinterpreted as a Word, the LH semantics.
func SignExtendHalfword(h uint16) uint32 {
	return uint32(int32(int16(h)))
}

// AsSigned reinterprets a Word's bit pattern as a two's-complement signed
// value, with no range check: every Word is a valid int32 bit pattern.
func AsSigned(v uint32) int32 {
	return int32(v)
}

// AsUnsigned reinterprets a signed value's bit pattern as a Word.
func AsUnsigned(v int32) uint32 {
	return uint32(v)
}
