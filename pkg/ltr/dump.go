package ltr

import (
	"bufio"
	"fmt"
	"io"
)

// Cell is one column of a dump row: the stored cumulative value and the
// probability it adds over the previous non-zero value.
type Cell struct {
	CDF float32
	P   float32
}

// DumpRow describes one symbol of one context.
type DumpRow struct {
	Sequence string // The context followed by the symbol
	Start    Cell
	Middle   Cell
	End      Cell
}

// Dump lists every table entry of the model: the singles first, then the
// doubles and the triples, each in alphabet order. The marginal of an entry
// is measured against the last non-zero entry of the same column within the
// same context.
func Dump(m *Model) []DumpRow {
	n := m.alphabet.Size()
	rows := make([]DumpRow, 0, n*(1+n+n*n))
	sym := m.alphabet.SymbolAt

	rows = appendGroup(rows, &m.singles, func(k int) string {
		return string(sym(k))
	})
	for i := 0; i < n; i++ {
		rows = appendGroup(rows, m.Double(i), func(k int) string {
			return string([]rune{sym(i), sym(k)})
		})
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rows = appendGroup(rows, m.Triple(i, j), func(k int) string {
				return string([]rune{sym(i), sym(j), sym(k)})
			})
		}
	}
	return rows
}

func appendGroup(rows []DumpRow, c *PositionalCDF, label func(int) string) []DumpRow {
	var s, mid, e float32
	for k := range c.Start {
		row := DumpRow{
			Sequence: label(k),
			Start:    Cell{CDF: c.Start[k], P: marginal(c.Start[k], s)},
			Middle:   Cell{CDF: c.Middle[k], P: marginal(c.Middle[k], mid)},
			End:      Cell{CDF: c.End[k], P: marginal(c.End[k], e)},
		}
		rows = append(rows, row)
		if c.Start[k] > 0 {
			s = c.Start[k]
		}
		if c.Middle[k] > 0 {
			mid = c.Middle[k]
		}
		if c.End[k] > 0 {
			e = c.End[k]
		}
	}
	return rows
}

// WriteDump prints the model tables in a human readable layout, one line per
// row of Dump.
func WriteDump(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "Num letters: %d\n", m.alphabet.Size())
	_, _ = fmt.Fprint(bw, "Sequence | CDF(start)  P(start) | CDF(middle)  P(middle) | CDF(end)  P(end)\n")
	for _, r := range Dump(m) {
		_, _ = fmt.Fprintf(bw, "%-9s|% .5f    % .5f  |% .5f     % .5f   |% .5f  % .5f\n", r.Sequence,
			float64(r.Start.CDF), float64(r.Start.P),
			float64(r.Middle.CDF), float64(r.Middle.P),
			float64(r.End.CDF), float64(r.End.P))
	}
	return bw.Flush()
}
