// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

// pairingMode selects how classify groups strings into entries.
type pairingMode uint8

const (
	// pairingHeuristic pairs a name with the next string only when it looks like a path.
	pairingHeuristic pairingMode = iota + 1
	// pairingAlternate treats strings as strict name/path alternation.
	pairingAlternate
)

// looksLikePath reports whether u contains a path separator or an extension dot.
func looksLikePath(u Units) bool {
	for _, unit := range u {
		switch unit {
		case '\\', '/', '.':
			return true
		}
	}

	return false
}

// choosePairing is the first classification pass. Files written by a cooperating producer
// alternate name/path even when no path has a marker (short codenames), so an even count
// with no path-like string after the first one forces alternation.
func choosePairing(values []Units) pairingMode {
	pathLike := 0
	for i := 1; i < len(values); i++ {
		if looksLikePath(values[i]) {
			pathLike++
		}
	}

	if pathLike == 0 && len(values)%2 == 0 {
		return pairingAlternate
	}

	return pairingHeuristic
}

// classify is the second classification pass. It groups strings into entries using mode.
// Each entry owns the gap after its last string; the gap between name and path becomes
// entry separator. gaps must have the same length as values.
func classify(values []Units, gaps [][]byte, mode pairingMode) []Entry {
	entries := make([]Entry, 0, len(values)/2+1)
	for i := 0; i < len(values); {
		paired := i+1 < len(values)
		if paired && mode == pairingHeuristic {
			paired = looksLikePath(values[i+1])
		}

		if !paired {
			entries = append(entries, Entry{
				Name:     values[i],
				Gap:      gaps[i],
				pathless: true,
			})
			i++
			continue
		}

		entries = append(entries, Entry{
			Name:      values[i],
			Separator: gaps[i],
			Path:      values[i+1],
			Gap:       gaps[i+1],
		})
		i += 2
	}

	return entries
}

// classifyLayout groups extracted strings into entries.
func classifyLayout(layout *looseLayout) []Entry {
	values := make([]Units, len(layout.strings))
	for i := range layout.strings {
		values[i] = layout.strings[i].value
	}

	return classify(values, layout.gaps, choosePairing(values))
}
