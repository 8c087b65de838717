package ltr

// Model is a trained set of CDF tables. Its dimensions are derived from its
// alphabet when it is created and never change. A Model is populated in full
// by training or decoding and is treated as read-only afterwards, so it can
// be shared by concurrent samplers as long as each has its own Source.
type Model struct {
	alphabet *Alphabet
	singles  PositionalCDF
	doubles  []PositionalCDF // [i]
	triples  []PositionalCDF // [i*n+j]
}

// NewModel returns an all-zero model sized for the given alphabet.
func NewModel(alphabet *Alphabet) *Model {
	n := alphabet.Size()
	m := &Model{
		alphabet: alphabet,
		singles:  newPositionalCDF(n),
		doubles:  make([]PositionalCDF, n),
		triples:  make([]PositionalCDF, n*n),
	}
	for i := range m.doubles {
		m.doubles[i] = newPositionalCDF(n)
	}
	for i := range m.triples {
		m.triples[i] = newPositionalCDF(n)
	}
	return m
}

// Alphabet returns the alphabet the model was built for.
func (m *Model) Alphabet() *Alphabet {
	return m.alphabet
}

// Singles returns the unconditioned distributions.
func (m *Model) Singles() *PositionalCDF {
	return &m.singles
}

// Double returns the distributions for a symbol following symbol i.
func (m *Model) Double(i int) *PositionalCDF {
	return &m.doubles[i]
}

// Triple returns the distributions for a symbol following symbols i then j.
func (m *Model) Triple(i, j int) *PositionalCDF {
	return &m.triples[i*m.alphabet.Size()+j]
}

// CanGenerate reports whether the singles start distribution carries any
// mass. A model trained on nothing can never produce a first symbol.
func (m *Model) CanGenerate() bool {
	return m.singles.HasMass(Start)
}

// Equal reports whether two models share an alphabet and identical tables.
func (m *Model) Equal(o *Model) bool {
	if !m.alphabet.Equal(o.alphabet) {
		return false
	}
	a, b := m.tables(), o.tables()
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

// tables returns every context's CDF in storage order: singles, doubles,
// then triples.
func (m *Model) tables() []*PositionalCDF {
	out := make([]*PositionalCDF, 0, 1+len(m.doubles)+len(m.triples))
	out = append(out, &m.singles)
	for i := range m.doubles {
		out = append(out, &m.doubles[i])
	}
	for i := range m.triples {
		out = append(out, &m.triples[i])
	}
	return out
}

// tiers groups the tables the way running sums are scoped during training.
func (m *Model) tiers() [][]*PositionalCDF {
	all := m.tables()
	n := len(m.doubles)
	return [][]*PositionalCDF{all[:1], all[1 : 1+n], all[1+n:]}
}
