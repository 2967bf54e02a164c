package rkcfg

import (
	"fmt"
	"testing"
)

const (
	benchDefaultEntries = 32
	benchLargeEntries   = 4096
)

var (
	// benchListSink prevents compiler elimination in list benchmark loops.
	benchListSink int
)

func BenchmarkParseLoose(b *testing.B) {
	buf := createBenchLooseCFG(benchDefaultEntries)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d, err := Parse(buf)
		if err != nil {
			b.Fatal(err)
		}
		benchListSink += d.Len()
	}
}

func BenchmarkParseLooseLarge(b *testing.B) {
	buf := createBenchLooseCFG(benchLargeEntries)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d, err := Parse(buf)
		if err != nil {
			b.Fatal(err)
		}

		if d.Len() == 0 {
			b.Fatal("empty entries")
		}
	}
}

func BenchmarkRebuildLoose(b *testing.B) {
	d, err := Parse(createBenchLooseCFG(benchDefaultEntries))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := d.MarshalBinary()
		if err != nil {
			b.Fatal(err)
		}
		benchListSink += len(out)
	}
}

func BenchmarkParseFixed(b *testing.B) {
	records := make([]fixedRecord, 0, maxFixedEntries)
	for i := 0; i < maxFixedEntries; i++ {
		records = append(records, fixedRecord{
			name: fmt.Sprintf("part%03d", i),
			path: fmt.Sprintf(`Image\part%03d.img`, i),
		})
	}
	buf := buildFixedFixture(records, nil)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d, err := Parse(buf)
		if err != nil {
			b.Fatal(err)
		}
		benchListSink += len(d.Entries())
	}
}

// createBenchLooseCFG builds loose CFG with entries name/path pairs separated by opaque gaps.
func createBenchLooseCFG(entries int) []byte {
	values := make([]string, 0, entries*2)
	gaps := make([][]byte, 0, entries*2)
	for i := 0; i < entries; i++ {
		values = append(values, fmt.Sprintf("part%04d", i), fmt.Sprintf(`Image\part%04d.img`, i))
		gaps = append(gaps, nil, fixtureGap)
	}

	return buildLooseFixture(16, values, gaps, make([]byte, looseTerminator))
}
