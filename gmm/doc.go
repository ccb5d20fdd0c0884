// Package gmm implements ground motion models (GMMs) for probabilistic
// seismic hazard analysis: given an earthquake rupture and site, each model
// predicts the lognormal distribution of a shaking intensity measure.
//
// # Reading Guide
//
// Start with these three files to understand the evaluation pipeline:
//   - input.go: the rupture/site Input container and its set-once builder
//   - registry.go: the GroundMotionModel contract, identifiers, and the
//     memoizing instance Registry
//   - scalar.go: single-valued and branch-preserving results
//
// # Architecture
//
// Models are pure functions constructed lazily against an immutable Catalog:
//   - catalog.go, coeffs.go, tables_load.go: embedded coefficient and table
//     resources, loaded eagerly and validated completely before use
//   - table.go: bilinear (distance, magnitude) grid interpolation
//   - campbell_2003.go, toro_1997.go, silva_2002.go, frankel_1996.go,
//     atkinson_2006p.go, pezeshk_2011.go: the CEUS model family
//   - nga_east.go, site_amp.go: the NGA-East logic tree, sigma models and
//     nonlinear site amplification
//
// # Combinators
//
// Models compose without knowing each other's internals:
//   - ceus_mb.go: magnitude-converting wrappers for mb source catalogs
//   - ensemble.go: weighted averaging in log or linear space, and
//     branch-preserving multi-model trees
//   - interpolated.go, extrapolated.go: period coverage bridging
//   - spectra.go: response spectra over shared period sets
//
// Calc never rejects out-of-range inputs; Constraints describe the ranges a
// model was developed for and are the caller's to enforce.
package gmm
