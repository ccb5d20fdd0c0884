package gmm

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
)

//go:embed data
var embeddedData embed.FS

// NGA-East component model count and seed model identifiers carried by the
// shipped dataset.
const ngaEastModelCount = 13

var ngaEastSeedIDs = []string{"B_a04", "B_ab95", "Frankel", "SP15"}

// Catalog is the read-only store of every coefficient container and
// ground-motion table the model registry draws on. It is built eagerly,
// before any model is requested, and never mutated afterwards, so any number
// of goroutines may read it without synchronization. Construction fails
// outright on the first malformed resource; a partially initialized Catalog
// is never exposed.
type Catalog struct {
	campbell03 *CoefficientContainer
	toro97Mw   *CoefficientContainer
	toro97Mb   *CoefficientContainer
	silva02    *CoefficientContainer
	frankel96  *CoefficientContainer
	ab06p      *CoefficientContainer
	ab08p      *CoefficientContainer
	pezeshk11c *CoefficientContainer

	ngaSigmaLo    *CoefficientContainer
	ngaSigmaMid   *CoefficientContainer
	ngaSigmaHi    *CoefficientContainer
	ngaSigmaTotal *CoefficientContainer
	siteAmp       *CoefficientContainer
	basin         *CoefficientContainer

	frankelSoftRock map[Imt]GroundMotionTable
	frankelHardRock map[Imt]GroundMotionTable
	atkinson06      map[Imt]GroundMotionTable
	atkinson08      map[Imt]GroundMotionTable
	pezeshk11       map[Imt]GroundMotionTable

	ngaEast        map[Imt][]GroundMotionTable // component models, shared axes
	ngaEastWeights map[Imt][]float64
	ngaSeeds       map[string]map[Imt]GroundMotionTable
}

// DefaultCatalog builds a Catalog from the embedded data directory.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	return NewCatalog(sub)
}

// NewCatalog builds a Catalog from an injected read-only data source laid
// out like the embedded gmm/data directory.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	if err := c.load(fsys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	logrus.Infof("catalog loaded: %d coefficient sets, %d table families, %d NGA-East components, %d seeds",
		14, 6, ngaEastModelCount, len(c.ngaSeeds))
	return c, nil
}

func (c *Catalog) load(fsys fs.FS) error {
	var err error

	coeffs := []struct {
		dst      **CoefficientContainer
		resource string
	}{
		{&c.campbell03, "coeffs/Campbell03.csv"},
		{&c.toro97Mw, "coeffs/Toro97Mw.csv"},
		{&c.toro97Mb, "coeffs/Toro97Mb.csv"},
		{&c.silva02, "coeffs/Silva02.csv"},
		{&c.frankel96, "coeffs/Frankel96.csv"},
		{&c.ab06p, "coeffs/AB06P.csv"},
		{&c.ab08p, "coeffs/AB08P.csv"},
		{&c.pezeshk11c, "coeffs/P11.csv"},
		{&c.ngaSigmaLo, "coeffs/nga-east-sigma-lo.csv"},
		{&c.ngaSigmaMid, "coeffs/nga-east-sigma-mid.csv"},
		{&c.ngaSigmaHi, "coeffs/nga-east-sigma-hi.csv"},
		{&c.ngaSigmaTotal, "coeffs/nga-east-sigma-total.csv"},
		{&c.siteAmp, "coeffs/site-amp.csv"},
		{&c.basin, "coeffs/basin.csv"},
	}
	for _, spec := range coeffs {
		if *spec.dst, err = loadCoefficients(fsys, spec.resource); err != nil {
			return err
		}
		logrus.Debugf("loaded %s: %d periods", spec.resource, len((*spec.dst).Imts()))
	}

	if c.frankelSoftRock, err = loadFrankelTables(fsys, "tables", frankelSoftRockFiles); err != nil {
		return err
	}
	if c.frankelHardRock, err = loadFrankelTables(fsys, "tables", frankelHardRockFiles); err != nil {
		return err
	}
	if c.atkinson06, err = loadAtkinsonTables(fsys, "tables/AB06revA_Rcd.dat", atkinsonRKeys, atkinsonMKeys); err != nil {
		return err
	}
	if c.atkinson08, err = loadAtkinsonTables(fsys, "tables/A08revA_Rjb.dat", atkinsonRKeys, atkinsonMKeys); err != nil {
		return err
	}
	if c.pezeshk11, err = loadAtkinsonTables(fsys, "tables/P11A_Rcd.dat", pezeshkRKeys, pezeshkMKeys); err != nil {
		return err
	}

	if err = c.loadNgaEast(fsys); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) loadNgaEast(fsys fs.FS) error {
	// Component model tables: one block-style file per model, all sharing
	// axis keys so a Position computed on one is valid for all.
	perModel := make([]map[Imt]GroundMotionTable, ngaEastModelCount)
	for i := 0; i < ngaEastModelCount; i++ {
		file := fmt.Sprintf("tables/nga-east-%d.tbl", i+1)
		tables, err := loadBlockTables(fsys, file)
		if err != nil {
			return err
		}
		perModel[i] = tables
	}

	c.ngaEast = make(map[Imt][]GroundMotionTable)
	for imt := range perModel[0] {
		group := make([]GroundMotionTable, ngaEastModelCount)
		for i, tables := range perModel {
			t, ok := tables[imt]
			if !ok {
				return fmt.Errorf("nga-east model %d missing %s block", i+1, imt)
			}
			group[i] = t
		}
		c.ngaEast[imt] = group
	}

	// Period-dependent component weights.
	weights, err := loadCoefficients(fsys, "coeffs/nga-east-weights.csv")
	if err != nil {
		return err
	}
	c.ngaEastWeights = make(map[Imt][]float64)
	for _, imt := range weights.Imts() {
		w := make([]float64, ngaEastModelCount)
		for i := range w {
			v, err := weights.Get(imt, fmt.Sprintf("m%d", i+1))
			if err != nil {
				return err
			}
			w[i] = v
		}
		c.ngaEastWeights[imt] = normalize(w)
	}

	c.ngaSeeds = make(map[string]map[Imt]GroundMotionTable, len(ngaEastSeedIDs))
	for _, id := range ngaEastSeedIDs {
		tables, err := loadBlockTables(fsys, fmt.Sprintf("tables/nga-east-seed-%s.tbl", id))
		if err != nil {
			return err
		}
		c.ngaSeeds[id] = tables
	}
	return nil
}

// imtsOf returns the Imt coverage of a table family.
func imtsOf(tables map[Imt]GroundMotionTable) []Imt {
	imts := make([]Imt, 0, len(tables))
	for imt := range tables {
		imts = append(imts, imt)
	}
	return sortedImts(imts)
}
