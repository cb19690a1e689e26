// Command generate-golden writes the reference sequence used by the
// sequence package tests. Values are computed with math/big so the int64
// boundary is found independently of the code under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
)

// golden is the document stored in testdata/sequence.golden.json.
type golden struct {
	WidthBits     int     `json:"width_bits"`
	MaxIndex      int     `json:"max_index"`
	OverflowIndex int     `json:"overflow_index"`
	Values        []int64 `json:"values"`
}

// fibBig returns the classical F(n) with F(0)=0 and F(1)=1.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// buildGolden collects values[i] = F(i+1) for every i whose value fits in
// an int64. The first index that does not fit is the overflow index.
func buildGolden() golden {
	limit := big.NewInt(math.MaxInt64)
	g := golden{WidthBits: 64}
	for i := 0; ; i++ {
		v := fibBig(uint64(i) + 1)
		if v.Cmp(limit) > 0 {
			g.OverflowIndex = i
			g.MaxIndex = i - 1
			return g
		}
		g.Values = append(g.Values, v.Int64())
	}
}

func writeGolden(w io.Writer, g golden) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func main() {
	out := flag.String("out", "internal/sequence/testdata/sequence.golden.json", "destination file")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	g := buildGolden()
	if err := writeGolden(f, g); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d values (max index %d) to %s\n", len(g.Values), g.MaxIndex, *out)
}
