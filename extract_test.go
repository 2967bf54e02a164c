// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rkcfg

package rkcfg

import (
	"bytes"
	"errors"
	"testing"
)

func TestExtractLoose_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty", buf: nil, want: ErrTruncated},
		{name: "bad magic", buf: []byte("RKFW\x00xxxxxxxxxxxxxxx"), want: ErrBadMagic},
		{name: "short header", buf: []byte("CFG\x00\x01\x02"), want: ErrTruncated},
		{name: "header only", buf: fixtureHeader(), want: ErrNoEntries},
		{name: "zeros only", buf: append(fixtureHeader(), make([]byte, 64)...), want: ErrNoEntries},
		{name: "noise only", buf: append(fixtureHeader(), utf16z("--")...), want: ErrNoEntries},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := extractLoose(tc.buf)
			if !errors.Is(err, tc.want) {
				t.Fatalf("extractLoose err=%v, want %v", err, tc.want)
			}
		})
	}
}

func TestExtractLoose_SpansAndGaps(t *testing.T) {
	t.Parallel()

	buf := buildLooseFixture(6,
		[]string{"boot", "boot.img"},
		[][]byte{fixtureGap, fixtureGap},
		make([]byte, looseTerminator),
	)

	layout, err := extractLoose(buf)
	if err != nil {
		t.Fatalf("extractLoose: %v", err)
	}

	if len(layout.strings) != 2 {
		t.Fatalf("len(strings)=%d, want 2", len(layout.strings))
	}

	first := layout.strings[0]
	if first.start != looseHeaderSize+6 || first.end != first.start+10 {
		t.Fatalf("strings[0] span=[%d,%d), want [%d,%d)", first.start, first.end, looseHeaderSize+6, looseHeaderSize+16)
	}

	if !bytes.Equal(layout.gaps[0], fixtureGap) {
		t.Fatalf("gaps[0]=% x, want % x", layout.gaps[0], fixtureGap)
	}

	if layout.gaps[1] != nil {
		t.Fatalf("last gap must move to suffix, got % x", layout.gaps[1])
	}

	if !bytes.Equal(layout.suffix, buf[layout.strings[1].end:]) {
		t.Fatalf("suffix=% x, want tail % x", layout.suffix, buf[layout.strings[1].end:])
	}

	if !bytes.Equal(layout.prefix, buf[:first.start]) {
		t.Fatalf("prefix=% x, want % x", layout.prefix, buf[:first.start])
	}
}

func TestExtractLoose_RejectedRunStaysInGap(t *testing.T) {
	t.Parallel()

	noise := append([]byte{0xfe}, utf16z("-+")...)
	buf := buildLooseFixture(0,
		[]string{"boot", "rk"},
		[][]byte{noise},
		nil,
	)

	layout, err := extractLoose(buf)
	if err != nil {
		t.Fatalf("extractLoose: %v", err)
	}

	if len(layout.strings) != 2 {
		t.Fatalf("len(strings)=%d, want 2", len(layout.strings))
	}

	if !bytes.Equal(layout.gaps[0], noise) {
		t.Fatalf("gaps[0]=% x, want rejected run % x", layout.gaps[0], noise)
	}
}

func TestExtractLoose_UnterminatedTail(t *testing.T) {
	t.Parallel()

	buf := append(fixtureHeader(), utf16z("boot")...)
	buf = append(buf, 'm', 0, 'i', 0, 's', 0, 'c', 0)

	layout, err := extractLoose(buf)
	if err != nil {
		t.Fatalf("extractLoose: %v", err)
	}

	if len(layout.strings) != 2 {
		t.Fatalf("len(strings)=%d, want 2", len(layout.strings))
	}

	last := layout.strings[1]
	if last.value.String() != "misc" || last.end != len(buf) {
		t.Fatalf("tail string=%q end=%d, want misc end=%d", last.value.String(), last.end, len(buf))
	}

	if len(layout.suffix) != 0 {
		t.Fatalf("suffix=% x, want empty", layout.suffix)
	}
}

func TestLooseDirectoryStart_AlignsDown(t *testing.T) {
	t.Parallel()

	buf := append(fixtureHeader(), 0, 0, 0, 'x', 0)
	if got := looseDirectoryStart(buf); got != looseHeaderSize+2 {
		t.Fatalf("looseDirectoryStart=%d, want %d", got, looseHeaderSize+2)
	}
}
