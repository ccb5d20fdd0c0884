package gmm

import (
	"fmt"
	"math"
)

// Input is the immutable earthquake-rupture and site property container
// consumed by GroundMotionModels. Not all models use all properties.
// Distances are km, depths km positive-down, angles degrees, vs30 m/s.
type Input struct {
	Mw float64 // moment magnitude

	RJB  float64 // Joyner-Boore distance (to surface projection of rupture)
	RRup float64 // rupture distance (to rupture plane)
	RX   float64 // distance X (to extended strike of rupture)

	Dip   float64 // rupture dip
	Width float64 // down-dip rupture width
	ZTop  float64 // depth to top of rupture
	ZHyp  float64 // hypocentral depth
	Rake  float64 // rupture rake

	Vs30  float64 // average shear-wave velocity in top 30 m
	VsInf bool    // whether vs30 is inferred rather than measured
	Z1p0  float64 // depth to Vs = 1.0 km/s (km, NaN if unknown)
	Z2p5  float64 // depth to Vs = 2.5 km/s (km, NaN if unknown)
}

// DefaultInput returns the reference rupture/site scenario used throughout
// model verification: Mw 6.5 vertical strike-slip at ~10 km on BC rock.
func DefaultInput() Input {
	return Input{
		Mw:    6.5,
		RJB:   10.0,
		RRup:  10.3,
		RX:    10.0,
		Dip:   90.0,
		Width: 14.0,
		ZTop:  0.5,
		ZHyp:  7.5,
		Rake:  0.0,
		Vs30:  760.0,
		VsInf: true,
		Z1p0:  math.NaN(),
		Z2p5:  math.NaN(),
	}
}

// Input builder field flags.
const (
	fieldMw = 1 << iota
	fieldRJB
	fieldRRup
	fieldRX
	fieldDip
	fieldWidth
	fieldZTop
	fieldZHyp
	fieldRake
	fieldVs30
	fieldVsInf
	fieldZ1p0
	fieldZ2p5

	allFields = 1<<13 - 1
)

var fieldLabels = map[uint16]string{
	fieldMw: "Mw", fieldRJB: "rJB", fieldRRup: "rRup", fieldRX: "rX",
	fieldDip: "dip", fieldWidth: "width", fieldZTop: "zTop",
	fieldZHyp: "zHyp", fieldRake: "rake", fieldVs30: "vs30",
	fieldVsInf: "vsInf", fieldZ1p0: "z1p0", fieldZ2p5: "z2p5",
}

// InputBuilder assembles Inputs field by field. Every field must be set
// exactly once before Build; setting a field twice between builds panics as
// a programming defect. A builder may be reused by a single goroutine: after
// Build, previously set fields persist and any subset may be set once more
// before the next Build. This supports hazard pipelines that sweep one or
// two parameters while holding the rest fixed.
type InputBuilder struct {
	in    Input
	set   uint16 // fields set since construction
	fresh uint16 // fields set since last Build
}

// NewInputBuilder returns an empty builder.
func NewInputBuilder() *InputBuilder {
	return &InputBuilder{}
}

// WithDefaults flags every field as set, preloading DefaultInput values.
func (b *InputBuilder) WithDefaults() *InputBuilder {
	b.in = DefaultInput()
	b.set = allFields
	b.fresh = allFields
	return b
}

func (b *InputBuilder) flag(f uint16) {
	if b.fresh&f != 0 {
		panic(fmt.Sprintf("gmm: input field %s set twice before Build", fieldLabels[f]))
	}
	b.set |= f
	b.fresh |= f
}

func (b *InputBuilder) Mag(mw float64) *InputBuilder {
	b.flag(fieldMw)
	b.in.Mw = mw
	return b
}

func (b *InputBuilder) RJB(r float64) *InputBuilder {
	b.flag(fieldRJB)
	b.in.RJB = r
	return b
}

func (b *InputBuilder) RRup(r float64) *InputBuilder {
	b.flag(fieldRRup)
	b.in.RRup = r
	return b
}

func (b *InputBuilder) RX(r float64) *InputBuilder {
	b.flag(fieldRX)
	b.in.RX = r
	return b
}

// Distances sets all three distance metrics at once.
func (b *InputBuilder) Distances(rJB, rRup, rX float64) *InputBuilder {
	return b.RJB(rJB).RRup(rRup).RX(rX)
}

func (b *InputBuilder) Dip(dip float64) *InputBuilder {
	b.flag(fieldDip)
	b.in.Dip = dip
	return b
}

func (b *InputBuilder) Width(w float64) *InputBuilder {
	b.flag(fieldWidth)
	b.in.Width = w
	return b
}

func (b *InputBuilder) ZTop(z float64) *InputBuilder {
	b.flag(fieldZTop)
	b.in.ZTop = z
	return b
}

func (b *InputBuilder) ZHyp(z float64) *InputBuilder {
	b.flag(fieldZHyp)
	b.in.ZHyp = z
	return b
}

func (b *InputBuilder) Rake(rake float64) *InputBuilder {
	b.flag(fieldRake)
	b.in.Rake = rake
	return b
}

func (b *InputBuilder) Vs30(v float64, inferred bool) *InputBuilder {
	b.flag(fieldVs30)
	b.flag(fieldVsInf)
	b.in.Vs30 = v
	b.in.VsInf = inferred
	return b
}

func (b *InputBuilder) Z1p0(z float64) *InputBuilder {
	b.flag(fieldZ1p0)
	b.in.Z1p0 = z
	return b
}

func (b *InputBuilder) Z2p5(z float64) *InputBuilder {
	b.flag(fieldZ2p5)
	b.in.Z2p5 = z
	return b
}

// Build returns the assembled Input, or an error naming the missing fields.
// On success the per-build set-once guard resets; fields keep their values.
func (b *InputBuilder) Build() (Input, error) {
	if b.set != allFields {
		var missing []string
		for f := uint16(1); f <= fieldZ2p5; f <<= 1 {
			if b.set&f == 0 {
				missing = append(missing, fieldLabels[f])
			}
		}
		return Input{}, fmt.Errorf("input fields not set: %v", missing)
	}
	b.fresh = 0
	return b.in, nil
}
