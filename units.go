// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Units is a UTF-16 code unit sequence as stored in CFG files.
// Directory keeps names and paths in this form so rewrite never goes through a text codec.
type Units []uint16

// utf16LE converts between Go text and little-endian UTF-16 at the API boundary.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// UnitsFromString converts text to UTF-16 code units.
// Text with NUL characters is rejected: NUL is the string terminator in CFG files.
func UnitsFromString(s string) (Units, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q contains NUL", ErrInvalidText, s)
	}

	raw, err := utf16LE.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %q: %w", ErrInvalidText, s, err)
	}

	return unitsFromBytesLE([]byte(raw)), nil
}

// String decodes units to Go text. Unpaired surrogates become U+FFFD.
func (u Units) String() string {
	if len(u) == 0 {
		return ""
	}

	decoded, err := utf16LE.NewDecoder().Bytes(appendUnitsLE(make([]byte, 0, len(u)*2), u))
	if err != nil {
		return ""
	}

	return string(decoded)
}

// Equal reports whether u and other hold the same code units.
func (u Units) Equal(other Units) bool {
	if len(u) != len(other) {
		return false
	}

	for i := range u {
		if u[i] != other[i] {
			return false
		}
	}

	return true
}

// readTerminated decodes little-endian UTF-16 units from pos until a zero unit.
// Returned offset points just past the terminator. Without a terminator the string
// spans to the end of buf; an odd trailing byte is left unconsumed.
func readTerminated(buf []byte, pos int) (Units, int) {
	var out Units
	for pos+1 < len(buf) {
		unit := binary.LittleEndian.Uint16(buf[pos:])
		pos += 2
		if unit == 0 {
			return out, pos
		}

		out = append(out, unit)
	}

	return out, pos
}

// writeTerminated appends little-endian units and a single zero unit to dst.
func writeTerminated(dst []byte, u Units) []byte {
	dst = appendUnitsLE(dst, u)
	return append(dst, 0, 0)
}

// appendUnitsLE appends little-endian byte pairs for every unit.
func appendUnitsLE(dst []byte, u Units) []byte {
	for _, unit := range u {
		dst = binary.LittleEndian.AppendUint16(dst, unit)
	}

	return dst
}

// unitsFromBytesLE converts little-endian byte pairs to units; an odd trailing byte is ignored.
func unitsFromBytesLE(raw []byte) Units {
	out := make(Units, len(raw)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}

	return out
}

// terminatedSize returns encoded size of u including terminator.
func terminatedSize(u Units) int {
	return 2 * (len(u) + 1)
}
