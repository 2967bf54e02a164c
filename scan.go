// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

// candidateWindow is the number of bytes tested to detect a UTF-16LE run start.
const candidateWindow = 4

// findNextCandidate returns offset of the next plausible UTF-16LE printable run at or after from.
// A position p matches when buf[p] is printable ASCII, buf[p+1] and buf[p+3] are zero,
// and buf[p+2] is zero or printable ASCII. The zero case admits one-character strings
// whose second unit is the terminator. It reports false once fewer than four bytes remain.
func findNextCandidate(buf []byte, from int) (int, bool) {
	if from < 0 {
		from = 0
	}

	for p := from; p+candidateWindow <= len(buf); p++ {
		if !isPrintableASCII(buf[p]) || buf[p+1] != 0 || buf[p+3] != 0 {
			continue
		}

		if buf[p+2] == 0 || isPrintableASCII(buf[p+2]) {
			return p, true
		}
	}

	return -1, false
}

// acceptString reports whether decoded run is a directory string and not scanner noise:
// non-empty, every unit printable ASCII, at least one ASCII letter or digit.
func acceptString(u Units) bool {
	if len(u) == 0 {
		return false
	}

	hasAlnum := false
	for _, unit := range u {
		if unit > 0x7e || !isPrintableASCII(byte(unit)) {
			return false
		}

		if isASCIIAlnum(byte(unit)) {
			hasAlnum = true
		}
	}

	return hasAlnum
}

// isPrintableASCII reports whether b is in 0x20..0x7e.
func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// isASCIIAlnum reports whether b is an ASCII letter or digit.
func isASCIIAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
