package schema

// SimilarityMeter is a half-circle gauge filled up to Score percent.
type SimilarityMeter struct {
	Base   `yaml:",inline"`
	Score  float64 `json:"score" yaml:"score"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
}

func (*SimilarityMeter) Kind() Kind { return KindSimilarityMeter }

func (e *SimilarityMeter) validate(v validator) {
	v.between("score", e.Score, 0, 100)
	v.nonNegative("radius", e.Radius)
}

// ProgressBar fills Current out of Total.
type ProgressBar struct {
	Base        `yaml:",inline"`
	Current     float64 `json:"current" yaml:"current"`
	Total       float64 `json:"total" yaml:"total"`
	Label       string  `json:"label,omitempty" yaml:"label,omitempty"`
	ShowPercent bool    `json:"show_percent,omitempty" yaml:"show_percent,omitempty"`
}

func (*ProgressBar) Kind() Kind { return KindProgressBar }

// Fraction returns Current/Total clamped to [0,1].
func (e *ProgressBar) Fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	f := e.Current / e.Total
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

func (e *ProgressBar) validate(v validator) {
	v.nonNegative("current", e.Current)
	if e.Total <= 0 {
		v.at("total").fail("must be positive, got %v", e.Total)
	}
}

// WeightComparison shows bars before and after training side by side.
type WeightComparison struct {
	Base          `yaml:",inline"`
	BeforeWeights []float64 `json:"before_weights,omitempty" yaml:"before_weights,omitempty"`
	AfterWeights  []float64 `json:"after_weights,omitempty" yaml:"after_weights,omitempty"`
	Labels        []string  `json:"labels,omitempty" yaml:"labels,omitempty"`
	BeforeLabel   string    `json:"before_label,omitempty" yaml:"before_label,omitempty"`
	AfterLabel    string    `json:"after_label,omitempty" yaml:"after_label,omitempty"`
}

func (*WeightComparison) Kind() Kind { return KindWeightComparison }

func (e *WeightComparison) validate(v validator) {
	v.nonEmpty("before_weights", len(e.BeforeWeights))
	if len(e.AfterWeights) > len(e.BeforeWeights) {
		v.at("after_weights").fail("%d weights for %d bars", len(e.AfterWeights), len(e.BeforeWeights))
	}
	for i, w := range e.BeforeWeights {
		v.at("before_weights").index(i).between("", w, 0, 1)
	}
	for i, w := range e.AfterWeights {
		v.at("after_weights").index(i).between("", w, 0, 1)
	}
}

// ParameterSlider shows a value on a labelled track.
type ParameterSlider struct {
	Base         `yaml:",inline"`
	Label        string  `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	MinValue     float64 `json:"min_value" yaml:"min_value"`
	MaxValue     float64 `json:"max_value" yaml:"max_value"`
	CurrentValue float64 `json:"current_value" yaml:"current_value"`
}

func (*ParameterSlider) Kind() Kind { return KindParameterSlider }

// Fraction returns the relative position of CurrentValue on the track.
func (e *ParameterSlider) Fraction() float64 {
	if e.MaxValue == e.MinValue {
		return 0.5
	}
	f := (e.CurrentValue - e.MinValue) / (e.MaxValue - e.MinValue)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (e *ParameterSlider) validate(v validator) {
	if e.MaxValue < e.MinValue {
		v.at("max_value").fail("must not be below min_value %v", e.MinValue)
	}
}
