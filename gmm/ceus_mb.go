package gmm

// magConvertingModel adapts a model developed for Mw to an mb source catalog
// by converting the input magnitude before delegating. The 2008 central and
// eastern US model runs Campbell, Frankel and Silva in Johnston and
// Atkinson-Boore converting flavors alongside the plain Mw forms.
type magConvertingModel struct {
	model   GroundMotionModel
	convert MagConverter
}

func convertingMb(model GroundMotionModel, convert MagConverter) GroundMotionModel {
	return &magConvertingModel{model: model, convert: convert}
}

func (m *magConvertingModel) Calc(in Input) ScalarGroundMotion {
	in.Mw = m.convert(in.Mw)
	return m.model.Calc(in)
}
