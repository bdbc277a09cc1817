package token

// Extent is a slice of text addressed by its byte offsets into the source it
// was cut from. Value holds the text itself, which shares memory with the
// source string.
type Extent struct {
	Start int
	End   int
	Value string
}

// Len returns the number of bytes covered by the extent.
func (e Extent) Len() int {
	return e.End - e.Start
}

// String returns the text the extent covers.
func (e Extent) String() string {
	return e.Value
}

// In resolves the extent against the given source, returning the covered
// text. It returns false when the offsets do not fit the source.
func (e Extent) In(src string) (string, bool) {
	if e.Start < 0 || e.End < e.Start || e.End > len(src) {
		return "", false
	}
	return src[e.Start:e.End], true
}
