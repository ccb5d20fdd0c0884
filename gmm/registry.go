package gmm

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// GroundMotionModel is the contract every concrete model satisfies: a pure,
// deterministic function of an Input producing the predicted lognormal
// ground motion distribution. Calc never returns an error and never rejects
// inputs outside the model's Constraints.
type GroundMotionModel interface {
	Calc(in Input) ScalarGroundMotion
}

// Gmm identifies a registered ground motion model implementation. The set is
// closed; identifiers carry no behavior of their own and resolve to factories
// through the model definition table.
type Gmm int

const (
	Campbell03 Gmm = iota
	Campbell03J
	Campbell03AB
	Frankel96
	Frankel96J
	Frankel96AB
	Silva02
	Silva02J
	Silva02AB
	Toro97Mw
	Toro97Mb
	AB06Prime
	A08Prime
	Pezeshk11
	NgaEastUsgs
	NgaEastUsgsTotal
	NgaEastUsgsBasin
	NgaEastSeedBa04
	NgaEastSeedBab95
	NgaEastSeedFrankel
	NgaEastSeedSP15

	numGmms int = iota
)

// modelDef binds an identifier to its display name, input constraints,
// supported-Imt source and factory closure.
type modelDef struct {
	name        string
	constraints Constraints
	imts        func(cat *Catalog) []Imt
	factory     func(cat *Catalog, imt Imt) (GroundMotionModel, error)
}

var ceusConstraints = NewConstraints().
	Mag(4.0, 8.0).
	RJB(0.0, 1000.0).
	RRup(0.0, 1000.0).
	Vs30(760.0, 2000.0).
	Build()

var ngaEastConstraints = NewConstraints().
	Mag(4.0, 8.2).
	RRup(0.0, 1500.0).
	Vs30(200.0, 3000.0).
	Build()

func coeffImts(cc func(cat *Catalog) *CoefficientContainer) func(cat *Catalog) []Imt {
	return func(cat *Catalog) []Imt { return cc(cat).Imts() }
}

func tableImts(tables func(cat *Catalog) map[Imt]GroundMotionTable) func(cat *Catalog) []Imt {
	return func(cat *Catalog) []Imt { return imtsOf(tables(cat)) }
}

func converting(
	base func(cat *Catalog, imt Imt) (GroundMotionModel, error),
	convert MagConverter) func(cat *Catalog, imt Imt) (GroundMotionModel, error) {

	return func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
		m, err := base(cat, imt)
		if err != nil {
			return nil, err
		}
		return convertingMb(m, convert), nil
	}
}

func campbellFactory(cat *Catalog, imt Imt) (GroundMotionModel, error) {
	return newCampbell2003(cat, imt)
}

func frankelFactory(cat *Catalog, imt Imt) (GroundMotionModel, error) {
	return newFrankel1996(cat, imt)
}

func silvaFactory(cat *Catalog, imt Imt) (GroundMotionModel, error) {
	return newSilva2002(cat, imt)
}

func ngaEastFactory(branching, basin bool) func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
	return func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
		return newNgaEastUsgs(cat, imt, branching, basin)
	}
}

func seedFactory(id string) func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
	return func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
		return newNgaEastSeed(cat, id, imt)
	}
}

// modelDefs is the closed identifier -> definition table. NGA-East supported
// Imts derive from the sigma coefficient resource, which is a strict subset
// of table coverage.
var modelDefs = [numGmms]modelDef{
	Campbell03: {
		name:        "Campbell (2003)",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.campbell03 }),
		factory:     campbellFactory,
	},
	Campbell03J: {
		name:        "Campbell (2003): Johnston",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.campbell03 }),
		factory:     converting(campbellFactory, MbToMwJohnston),
	},
	Campbell03AB: {
		name:        "Campbell (2003): Atkinson & Boore",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.campbell03 }),
		factory:     converting(campbellFactory, MbToMwAtkinsonBoore),
	},
	Frankel96: {
		name:        "Frankel et al. (1996)",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.frankel96 }),
		factory:     frankelFactory,
	},
	Frankel96J: {
		name:        "Frankel et al. (1996): Johnston",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.frankel96 }),
		factory:     converting(frankelFactory, MbToMwJohnston),
	},
	Frankel96AB: {
		name:        "Frankel et al. (1996): Atkinson & Boore",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.frankel96 }),
		factory:     converting(frankelFactory, MbToMwAtkinsonBoore),
	},
	Silva02: {
		name:        "Silva et al. (2002)",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.silva02 }),
		factory:     silvaFactory,
	},
	Silva02J: {
		name:        "Silva et al. (2002): Johnston",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.silva02 }),
		factory:     converting(silvaFactory, MbToMwJohnston),
	},
	Silva02AB: {
		name:        "Silva et al. (2002): Atkinson & Boore",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.silva02 }),
		factory:     converting(silvaFactory, MbToMwAtkinsonBoore),
	},
	Toro97Mw: {
		name:        "Toro et al. (1997): Mw",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.toro97Mw }),
		factory: func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
			return newToro1997(cat, imt, true)
		},
	},
	Toro97Mb: {
		name:        "Toro et al. (1997): mb",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.toro97Mb }),
		factory: func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
			return newToro1997(cat, imt, false)
		},
	},
	AB06Prime: {
		name:        "Atkinson & Boore (2006): Prime",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ab06p }),
		factory: func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
			return newAtkinsonBoore2006p(cat, imt)
		},
	},
	A08Prime: {
		name:        "Atkinson (2008): Prime",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ab08p }),
		factory: func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
			return newAtkinson2008p(cat, imt)
		},
	},
	Pezeshk11: {
		name:        "Pezeshk et al. (2011)",
		constraints: ceusConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.pezeshk11c }),
		factory: func(cat *Catalog, imt Imt) (GroundMotionModel, error) {
			return newPezeshk2011(cat, imt)
		},
	},
	NgaEastUsgs: {
		name:        "NGA-East USGS (branching sigma)",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     ngaEastFactory(true, false),
	},
	NgaEastUsgsTotal: {
		name:        "NGA-East USGS (total sigma)",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     ngaEastFactory(false, false),
	},
	NgaEastUsgsBasin: {
		name:        "NGA-East USGS (deep basin)",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     ngaEastFactory(true, true),
	},
	NgaEastSeedBa04: {
		name:        "NGA-East Seed: B_a04",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     seedFactory("B_a04"),
	},
	NgaEastSeedBab95: {
		name:        "NGA-East Seed: B_ab95",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     seedFactory("B_ab95"),
	},
	NgaEastSeedFrankel: {
		name:        "NGA-East Seed: Frankel",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     seedFactory("Frankel"),
	},
	NgaEastSeedSP15: {
		name:        "NGA-East Seed: SP15",
		constraints: ngaEastConstraints,
		imts:        coeffImts(func(cat *Catalog) *CoefficientContainer { return cat.ngaSigmaTotal }),
		factory:     seedFactory("SP15"),
	},
}

// gmmKeys are the stable short identifiers used in configuration and on the
// command line.
var gmmKeys = [numGmms]string{
	Campbell03:         "campbell03",
	Campbell03J:        "campbell03-j",
	Campbell03AB:       "campbell03-ab",
	Frankel96:          "frankel96",
	Frankel96J:         "frankel96-j",
	Frankel96AB:        "frankel96-ab",
	Silva02:            "silva02",
	Silva02J:           "silva02-j",
	Silva02AB:          "silva02-ab",
	Toro97Mw:           "toro97-mw",
	Toro97Mb:           "toro97-mb",
	AB06Prime:          "ab06p",
	A08Prime:           "a08p",
	Pezeshk11:          "pezeshk11",
	NgaEastUsgs:        "nga-east",
	NgaEastUsgsTotal:   "nga-east-total",
	NgaEastUsgsBasin:   "nga-east-basin",
	NgaEastSeedBa04:    "nga-east-seed-a04",
	NgaEastSeedBab95:   "nga-east-seed-ab95",
	NgaEastSeedFrankel: "nga-east-seed-frankel",
	NgaEastSeedSP15:    "nga-east-seed-sp15",
}

// Key returns the stable short identifier of id.
func (id Gmm) Key() string {
	if !id.valid() {
		return fmt.Sprintf("gmm-%d", int(id))
	}
	return gmmKeys[id]
}

// Gmms returns every registered identifier in declaration order.
func Gmms() []Gmm {
	ids := make([]Gmm, numGmms)
	for i := range ids {
		ids[i] = Gmm(i)
	}
	return ids
}

func (id Gmm) valid() bool { return id >= 0 && int(id) < numGmms }

func (id Gmm) String() string {
	if !id.valid() {
		return fmt.Sprintf("Gmm(%d)", int(id))
	}
	return modelDefs[id].name
}

// ParseGmm resolves a short key or display name to its identifier.
func ParseGmm(s string) (Gmm, error) {
	for i := 0; i < numGmms; i++ {
		if gmmKeys[i] == s || modelDefs[i].name == s {
			return Gmm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown model %q", s)
}

// Registry constructs and caches model instances against one Catalog.
// Instances are memoized per (identifier, Imt) forever; concurrent requests
// for the same key construct at most once.
type Registry struct {
	catalog *Catalog
	cache   sync.Map // cacheKey -> GroundMotionModel
	group   singleflight.Group
}

type cacheKey struct {
	id  Gmm
	imt Imt
}

// NewRegistry wraps a loaded Catalog.
func NewRegistry(catalog *Catalog) *Registry {
	return &Registry{catalog: catalog}
}

// Instance returns the cached model for (id, imt), constructing it on first
// request. Requesting an Imt outside the model's coverage fails with a
// wrapped ErrUnsupportedPeriod; any other factory failure is a wrapped
// ErrConstruction.
func (r *Registry) Instance(id Gmm, imt Imt) (GroundMotionModel, error) {
	if !id.valid() {
		return nil, fmt.Errorf("%w: invalid identifier %d", ErrConstruction, int(id))
	}
	key := cacheKey{id: id, imt: imt}
	if m, ok := r.cache.Load(key); ok {
		return m.(GroundMotionModel), nil
	}

	v, err, _ := r.group.Do(fmt.Sprintf("%d/%d", id, imt), func() (interface{}, error) {
		if m, ok := r.cache.Load(key); ok {
			return m, nil
		}
		m, err := modelDefs[id].factory(r.catalog, imt)
		if err != nil {
			if errors.Is(err, ErrUnsupportedPeriod) {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			return nil, fmt.Errorf("%s: %w: %v", id, ErrConstruction, err)
		}
		r.cache.Store(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(GroundMotionModel), nil
}

// Instances resolves one instance per identifier at a shared Imt.
func (r *Registry) Instances(ids []Gmm, imt Imt) (map[Gmm]GroundMotionModel, error) {
	out := make(map[Gmm]GroundMotionModel, len(ids))
	for _, id := range ids {
		m, err := r.Instance(id, imt)
		if err != nil {
			return nil, err
		}
		out[id] = m
	}
	return out, nil
}

// InstancesForImts resolves one instance per Imt for a single identifier.
func (r *Registry) InstancesForImts(id Gmm, imts []Imt) (map[Imt]GroundMotionModel, error) {
	out := make(map[Imt]GroundMotionModel, len(imts))
	for _, imt := range imts {
		m, err := r.Instance(id, imt)
		if err != nil {
			return nil, err
		}
		out[imt] = m
	}
	return out, nil
}

// SupportedImts returns the Imts every supplied model supports, sorted in
// ordinal order. With one identifier this is simply its coverage.
func (r *Registry) SupportedImts(ids ...Gmm) []Imt {
	sets := make([][]Imt, 0, len(ids))
	for _, id := range ids {
		if !id.valid() {
			return nil
		}
		sets = append(sets, modelDefs[id].imts(r.catalog))
	}
	return IntersectImts(sets...)
}

// Constraints returns the declared valid input ranges of a model.
func (r *Registry) Constraints(id Gmm) Constraints {
	if !id.valid() {
		return Constraints{}
	}
	return modelDefs[id].constraints
}

// Group is a presentational collection of identifiers; it has no
// computational effect.
type Group int

const (
	GroupCeus2008 Group = iota
	GroupCeus2014
	GroupNgaEast

	numGroups int = iota
)

var groupDefs = [numGroups]struct {
	name string
	gmms []Gmm
}{
	GroupCeus2008: {
		name: "2008 Stable Crust (CEUS)",
		gmms: []Gmm{
			Campbell03, Campbell03J, Campbell03AB,
			Frankel96, Frankel96J, Frankel96AB,
			Silva02, Silva02J, Silva02AB,
			Toro97Mw, Toro97Mb,
		},
	},
	GroupCeus2014: {
		name: "2014 Stable Crust (CEUS)",
		gmms: []Gmm{
			AB06Prime, A08Prime, Campbell03, Frankel96,
			Pezeshk11, Silva02, Toro97Mw,
		},
	},
	GroupNgaEast: {
		name: "NGA-East",
		gmms: []Gmm{
			NgaEastUsgs, NgaEastUsgsTotal, NgaEastUsgsBasin,
			NgaEastSeedBa04, NgaEastSeedBab95,
			NgaEastSeedFrankel, NgaEastSeedSP15,
		},
	},
}

func (g Group) String() string {
	if g < 0 || int(g) >= numGroups {
		return fmt.Sprintf("Group(%d)", int(g))
	}
	return groupDefs[g].name
}

// Gmms returns the group members in declaration order.
func (g Group) Gmms() []Gmm {
	if g < 0 || int(g) >= numGroups {
		return nil
	}
	return append([]Gmm(nil), groupDefs[g].gmms...)
}
