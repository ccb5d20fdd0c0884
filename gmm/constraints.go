package gmm

import "fmt"

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Constraints declares the input ranges over which a model is considered
// valid. A nil field means the model ignores that input. Constraints are
// descriptive only: Calc never rejects out-of-range values, permitting
// intentional extrapolation for comparative analysis. Upstream consumers use
// them for validation and UI hints.
type Constraints struct {
	Mw    *Range
	RJB   *Range
	RRup  *Range
	RX    *Range
	Dip   *Range
	Width *Range
	ZTop  *Range
	ZHyp  *Range
	Rake  *Range
	Vs30  *Range
	VsInf bool // whether the model distinguishes measured from inferred vs30
	Z1p0  *Range
	Z2p5  *Range
}

// ConstraintsBuilder assembles Constraints; unset fields stay nil.
type ConstraintsBuilder struct {
	c Constraints
}

func NewConstraints() *ConstraintsBuilder {
	return &ConstraintsBuilder{}
}

func rng(min, max float64) *Range { return &Range{Min: min, Max: max} }

func (b *ConstraintsBuilder) Mag(min, max float64) *ConstraintsBuilder {
	b.c.Mw = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) RJB(min, max float64) *ConstraintsBuilder {
	b.c.RJB = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) RRup(min, max float64) *ConstraintsBuilder {
	b.c.RRup = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) RX(min, max float64) *ConstraintsBuilder {
	b.c.RX = rng(min, max)
	return b
}

// Distances sets all three distance metrics to [0, r].
func (b *ConstraintsBuilder) Distances(r float64) *ConstraintsBuilder {
	return b.RJB(0, r).RRup(0, r).RX(0, r)
}

func (b *ConstraintsBuilder) Dip(min, max float64) *ConstraintsBuilder {
	b.c.Dip = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) Width(min, max float64) *ConstraintsBuilder {
	b.c.Width = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) ZTop(min, max float64) *ConstraintsBuilder {
	b.c.ZTop = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) ZHyp(min, max float64) *ConstraintsBuilder {
	b.c.ZHyp = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) Rake(min, max float64) *ConstraintsBuilder {
	b.c.Rake = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) Vs30(min, max float64) *ConstraintsBuilder {
	b.c.Vs30 = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) VsInf() *ConstraintsBuilder {
	b.c.VsInf = true
	return b
}

func (b *ConstraintsBuilder) Z1p0(min, max float64) *ConstraintsBuilder {
	b.c.Z1p0 = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) Z2p5(min, max float64) *ConstraintsBuilder {
	b.c.Z2p5 = rng(min, max)
	return b
}

func (b *ConstraintsBuilder) Build() Constraints {
	return b.c
}
