package gmm

// ResponseSpectrum holds a model's predicted means and sigmas across a set
// of spectral periods for one rupture/site input.
type ResponseSpectrum struct {
	Imts   []Imt
	Means  []float64
	Sigmas []float64
}

// CalcResponseSpectrum evaluates id at every spectral period it supports.
func CalcResponseSpectrum(r *Registry, id Gmm, in Input) (*ResponseSpectrum, error) {
	return calcSpectrum(r, id, SAImts(r.SupportedImts(id)), in)
}

// CalcResponseSpectra evaluates several models over the spectral periods
// they all support, so the resulting spectra share an axis.
func CalcResponseSpectra(r *Registry, ids []Gmm, in Input) (map[Gmm]*ResponseSpectrum, error) {
	imts := SAImts(r.SupportedImts(ids...))
	out := make(map[Gmm]*ResponseSpectrum, len(ids))
	for _, id := range ids {
		rs, err := calcSpectrum(r, id, imts, in)
		if err != nil {
			return nil, err
		}
		out[id] = rs
	}
	return out, nil
}

func calcSpectrum(r *Registry, id Gmm, imts []Imt, in Input) (*ResponseSpectrum, error) {
	rs := &ResponseSpectrum{
		Imts:   imts,
		Means:  make([]float64, len(imts)),
		Sigmas: make([]float64, len(imts)),
	}
	for i, imt := range imts {
		m, err := r.Instance(id, imt)
		if err != nil {
			return nil, err
		}
		sgm := m.Calc(in)
		rs.Means[i] = sgm.Mean()
		rs.Sigmas[i] = sgm.Sigma()
	}
	return rs, nil
}
