package runescan

import (
	"fmt"
	"unicode/utf8"
)

// Scalar is a decoded code-point. The lenient decoder may produce values up
// to 0x1FFFFF.
type Scalar uint32

func (s Scalar) String() string {
	return fmt.Sprintf("U+%04X", uint32(s))
}

// Mode selects how strictly input is checked.
type Mode int

const (
	// Lenient decodes structurally and never rejects a lead byte.
	Lenient Mode = iota
	// Strict rejects invalid lead bytes, bad continuation bytes, overlong
	// forms, surrogates and values above U+10FFFF.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// Reason tells why a decode step did or did not produce a scalar.
type Reason int

const (
	Decoded    Reason = iota // a scalar has been decoded
	EndOfInput               // clean end: terminator at the cursor
	Truncated                // a sequence ran into the terminator
	Malformed                // strict mode rejected the input
)

var reasonNames = [...]string{
	Decoded:    "decoded",
	EndOfInput: "end of input",
	Truncated:  "truncated",
	Malformed:  "malformed",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// at returns the byte at i, or 0 past the end of src. The end of the slice
// thus works like a null terminator.
func at(src []byte, i int) byte {
	if i < 0 || i >= len(src) {
		return 0
	}
	return src[i]
}

// Decode decodes one scalar value starting at src[pos]. It returns the
// value and the number of bytes consumed. A consumed count of 0 signals
// either the end of the input or a truncated sequence; Decode does not tell
// these apart (see DecodeReason).
func Decode(src []byte, pos int) (Scalar, int) {
	s, n, _ := DecodeReason(src, pos, Lenient)
	return s, n
}

// DecodeReason decodes one scalar value starting at src[pos], like Decode,
// and additionally reports why decoding stopped.
func DecodeReason(src []byte, pos int, mode Mode) (Scalar, int, Reason) {
	c := uint32(at(src, pos))
	if c == 0 {
		return 0, 0, EndOfInput
	}
	if c&0x80 == 0 {
		return Scalar(c), 1, Decoded
	}
	if mode == Strict && (c < 0xc0 || c >= 0xf8) {
		return 0, 0, Malformed
	}
	var n int
	switch {
	case c >= 0xf0:
		n = 4
		c &= 0x07
	case c >= 0xe0:
		n = 3
		c &= 0x0f
	default: // includes stray continuation bytes 0x80…0xbf in lenient mode
		n = 2
		c &= 0x1f
	}
	for i := 1; i < n; i++ {
		if at(src, pos+i) == 0 {
			return 0, 0, Truncated
		}
	}
	for i := 1; i < n; i++ {
		b := at(src, pos+i)
		if mode == Strict && b&0xc0 != 0x80 {
			return 0, 0, Malformed
		}
		c = c<<6 | uint32(b&0x3f)
	}
	if mode == Strict && !wellFormed(c, n) {
		return 0, 0, Malformed
	}
	return Scalar(c), n, Decoded
}

// wellFormed checks a decoded value against the shortest-form rule and the
// Unicode scalar range.
func wellFormed(c uint32, n int) bool {
	if c > utf8.MaxRune || !utf8.ValidRune(rune(c)) {
		return false
	}
	return utf8.RuneLen(rune(c)) == n
}
