package runescan

// Scanner walks a byte sequence scalar by scalar. The cursor only moves
// forward, by the number of bytes each decode step consumed.
type Scanner struct {
	src    []byte
	pos    int
	mode   Mode
	reason Reason
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src []byte, mode Mode) *Scanner {
	return &Scanner{src: src, mode: mode}
}

// Next decodes the scalar at the cursor and advances. It returns false once
// the input is exhausted or cannot be decoded; Reason tells which.
func (sc *Scanner) Next() (Scalar, bool) {
	if sc.reason != Decoded {
		return 0, false
	}
	s, n, reason := DecodeReason(sc.src, sc.pos, sc.mode)
	sc.reason = reason
	if n == 0 {
		if reason != EndOfInput {
			tracer().Debugf("scanner stopped at byte %d: %s", sc.pos, reason)
		}
		return 0, false
	}
	sc.pos += n
	return s, true
}

// Pos is the current byte offset of the cursor.
func (sc *Scanner) Pos() int {
	return sc.pos
}

// Reason is the result of the last decode step. It is Decoded as long as
// the scanner has not stopped.
func (sc *Scanner) Reason() Reason {
	return sc.reason
}

// Scalars decodes src completely and returns the scalars in order, together
// with the reason decoding stopped.
func Scalars(src []byte, mode Mode) ([]Scalar, Reason) {
	var out []Scalar
	sc := NewScanner(src, mode)
	for s, ok := sc.Next(); ok; s, ok = sc.Next() {
		out = append(out, s)
	}
	return out, sc.Reason()
}
