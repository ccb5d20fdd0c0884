package gmm

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
)

// CoefficientContainer holds the per-Imt named coefficients of one model,
// loaded once from a comma-delimited resource and read-only thereafter. The
// first column of each row is the Imt identifier (PGA and PGV act as
// sentinels for the non-spectral measures); remaining columns are named by
// the header row. Every period-specific instance of a model shares the same
// container.
type CoefficientContainer struct {
	resource string
	names    []string
	values   map[Imt]map[string]float64
}

// loadCoefficients reads a coefficient CSV resource. Any malformed or
// missing value fails the load; there is no partial container.
func loadCoefficients(fsys fs.FS, resource string) (*CoefficientContainer, error) {
	f, err := fsys.Open(resource)
	if err != nil {
		return nil, fmt.Errorf("open coefficients %s: %w", resource, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read coefficients %s: %w", resource, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("coefficients %s: empty or missing header", resource)
	}

	names := records[0][1:]
	values := make(map[Imt]map[string]float64, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(names)+1 {
			return nil, fmt.Errorf("coefficients %s row %d: expected %d columns, got %d",
				resource, i+2, len(names)+1, len(record))
		}
		imt, err := ParseImt(record[0])
		if err != nil {
			return nil, fmt.Errorf("coefficients %s row %d: %w", resource, i+2, err)
		}
		if _, ok := values[imt]; ok {
			return nil, fmt.Errorf("coefficients %s row %d: duplicate Imt %s",
				resource, i+2, imt)
		}
		row := make(map[string]float64, len(names))
		for j, name := range names {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("coefficients %s row %d: invalid %s: %w",
					resource, i+2, name, err)
			}
			row[name] = v
		}
		values[imt] = row
	}

	return &CoefficientContainer{
		resource: resource,
		names:    names,
		values:   values,
	}, nil
}

// Get returns the named coefficient for imt. A missing period or coefficient
// is a construction-time defect in the requesting model.
func (cc *CoefficientContainer) Get(imt Imt, name string) (float64, error) {
	row, ok := cc.values[imt]
	if !ok {
		return 0, fmt.Errorf("%s: %w: %s", cc.resource, ErrUnsupportedPeriod, imt)
	}
	v, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("%s: missing coefficient %q for %s", cc.resource, name, imt)
	}
	return v, nil
}

// Row returns all coefficients for imt.
func (cc *CoefficientContainer) Row(imt Imt) (map[string]float64, error) {
	row, ok := cc.values[imt]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", cc.resource, ErrUnsupportedPeriod, imt)
	}
	return row, nil
}

// Imts returns the intensity measure types the container has rows for,
// sorted in ordinal order. This set defines the supported periods of any
// model built on the container.
func (cc *CoefficientContainer) Imts() []Imt {
	imts := make([]Imt, 0, len(cc.values))
	for imt := range cc.values {
		imts = append(imts, imt)
	}
	sort.Slice(imts, func(i, j int) bool { return imts[i] < imts[j] })
	return imts
}
