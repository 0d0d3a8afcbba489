package stats

import (
	"math"
	"sort"
)

// StemLeafRow is one line of a stem-and-leaf display: a tens stem and the
// ascending units digits that belong to it.
type StemLeafRow struct {
	Stem   int   `json:"stem"`
	Leaves []int `json:"leaves"`
}

// StemAndLeaf bins sample into tens stems. Values are truncated toward zero
// first; stem and leaf then follow floored division, so -3 becomes stem -1
// with leaf 7.
func StemAndLeaf(sample []float64) ([]StemLeafRow, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	type pair struct{ stem, leaf int }
	pairs := make([]pair, len(sample))
	for i, v := range sample {
		n := int(math.Trunc(v))
		stem := n / 10
		leaf := n % 10
		if leaf < 0 {
			stem--
			leaf += 10
		}
		pairs[i] = pair{stem, leaf}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].stem != pairs[j].stem {
			return pairs[i].stem < pairs[j].stem
		}
		return pairs[i].leaf < pairs[j].leaf
	})

	var rows []StemLeafRow
	for _, p := range pairs {
		if len(rows) == 0 || rows[len(rows)-1].Stem != p.stem {
			rows = append(rows, StemLeafRow{Stem: p.stem})
		}
		last := &rows[len(rows)-1]
		last.Leaves = append(last.Leaves, p.leaf)
	}
	return rows, nil
}
