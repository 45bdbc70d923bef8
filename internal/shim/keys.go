package shim

// pressedBit marks a key event value as a press; without it the event is a
// release.
const pressedBit = 1 << 8

// DecodeKey splits a host key event value into its parts. Zero means no
// event is pending.
func DecodeKey(v int64) (hasEvent, pressed bool, key byte) {
	if v == 0 {
		return false, false, 0
	}
	return true, v>>8 != 0, byte(v & 0xFF)
}

// EncodeKey builds the host key event value for a press or release.
func EncodeKey(pressed bool, key byte) int64 {
	v := int64(key)
	if pressed {
		v |= pressedBit
	}
	return v
}
