package comm

// PrintableString renders payload with every byte outside the
// printable ASCII range (0x20-0x7e) replaced by '.'.
func PrintableString(payload []byte) string {
	out := make([]byte, len(payload))
	for i, b := range payload {
		if b >= 0x20 && b <= 0x7e {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
