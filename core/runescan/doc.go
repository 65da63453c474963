/*
Package runescan decodes UTF-8 input one scalar value at a time.

The decoder is structural: it looks at the lead byte to find the length of
a sequence, then collects the payload bits of the continuation bytes. In
lenient mode it does not check for overlong encodings, surrogate halves or
values beyond U+10FFFF, and a stray continuation byte is decoded as if it
started a two-byte sequence. Strict mode rejects all of these.

Input is treated as null-terminated. A 0 byte, or the end of the slice,
ends decoding. A multi-byte sequence running into the terminator is
reported as truncated, never read past.

	sc := runescan.NewScanner([]byte("€uro"), runescan.Lenient)
	for r, ok := sc.Next(); ok; r, ok = sc.Next() {
		fmt.Printf("U+%04X\n", r)
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package runescan

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphpeek.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.fonts")
}
