package srctext

// NewlineOffsets returns the byte offset of every newline in content, in
// ascending order. It is the line index of last resort: byte-buffer
// documents carry no line table, so offset arithmetic builds this slice
// on demand.
func NewlineOffsets(content []byte) []int {
	var offsets []int
	for idx, char := range content {
		if char == '\n' {
			offsets = append(offsets, idx)
		}
	}
	return offsets
}
