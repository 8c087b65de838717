package ltr

// Position selects which part of a name a distribution describes.
type Position int

const (
	Start Position = iota
	Middle
	End
)

// Positions lists the positions in the order they are stored on disk.
var Positions = [...]Position{Start, Middle, End}

func (p Position) String() string {
	switch p {
	case Start:
		return "start"
	case Middle:
		return "middle"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// PositionalCDF holds the start, middle and end distributions for one
// context. Each slice has one entry per alphabet symbol and is read as a
// cumulative distribution: a zero entry carries no mass, so the mass of a
// non-zero entry is its value minus the previous non-zero entry.
type PositionalCDF struct {
	Start  []float32
	Middle []float32
	End    []float32
}

func newPositionalCDF(n int) PositionalCDF {
	// One backing array keeps the three columns adjacent like the file layout.
	buf := make([]float32, 3*n)
	return PositionalCDF{
		Start:  buf[0:n:n],
		Middle: buf[n : 2*n : 2*n],
		End:    buf[2*n : 3*n : 3*n],
	}
}

// Column returns the distribution for position p.
func (c *PositionalCDF) Column(p Position) []float32 {
	switch p {
	case Start:
		return c.Start
	case Middle:
		return c.Middle
	case End:
		return c.End
	default:
		panic("ltr: invalid position")
	}
}

// HasMass reports whether any entry of the column for p is non-zero.
func (c *PositionalCDF) HasMass(p Position) bool {
	for _, v := range c.Column(p) {
		if v > 0 {
			return true
		}
	}
	return false
}

func (c *PositionalCDF) equal(o *PositionalCDF) bool {
	for _, p := range Positions {
		a, b := c.Column(p), o.Column(p)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// pick returns the first index whose cumulative value exceeds u.
func pick(cdf []float32, u float32) (int, bool) {
	for i, v := range cdf {
		if u < v {
			return i, true
		}
	}
	return 0, false
}

// accumulate turns raw counts into cumulative probabilities in place. Only
// positive entries are divided by total and advance the running sum, so zero
// entries stay zero and total is never divided into nothing.
func accumulate(cdf []float32, total float32, running *float32) {
	for i, v := range cdf {
		if v > 0 {
			v /= total
			v += *running
			cdf[i] = v
			*running = v
		}
	}
}

// marginal recovers the probability of an entry from its cumulative value
// and the last non-zero cumulative value before it.
func marginal(cur, prev float32) float32 {
	if cur == 0 {
		return 0
	}
	return cur - prev
}
