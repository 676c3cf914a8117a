package domain

// Zero overwrites b with zeros so decrypted secrets do not linger in memory.
// A nil slice is a no-op.
func Zero(b []byte) {
	clear(b)
}
