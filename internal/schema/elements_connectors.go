package schema

// Arrow grows from Start towards End while it is revealed. For connectors
// Width is the stroke width.
type Arrow struct {
	Base     `yaml:",inline"`
	Start    Position `json:"start" yaml:"start"`
	End      Position `json:"end" yaml:"end"`
	Style    string   `json:"style,omitempty" yaml:"style,omitempty"`
	Head     string   `json:"head,omitempty" yaml:"head,omitempty"`
	HeadSize float64  `json:"head_size,omitempty" yaml:"head_size,omitempty"`
}

func (*Arrow) Kind() Kind { return KindArrow }

func (e *Arrow) validate(v validator) {
	if e.Start == e.End {
		v.at("end").fail("must differ from start")
	}
	v.oneOf("style", e.Style, "simple", "fancy", "dashed")
	v.oneOf("head", e.Head, "arrow", "circle", "diamond", "none")
	v.nonNegative("head_size", e.HeadSize)
}

// ArcArrow is an arrow bent into a circular arc.
type ArcArrow struct {
	Base      `yaml:",inline"`
	Start     Position `json:"start" yaml:"start"`
	End       Position `json:"end" yaml:"end"`
	ArcHeight float64  `json:"arc_height,omitempty" yaml:"arc_height,omitempty"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty"`
	Head      string   `json:"head,omitempty" yaml:"head,omitempty"`
}

func (*ArcArrow) Kind() Kind { return KindArcArrow }

func (e *ArcArrow) validate(v validator) {
	if e.Start == e.End {
		v.at("end").fail("must differ from start")
	}
	v.nonNegative("arc_height", e.ArcHeight)
	v.oneOf("direction", e.Direction, "up", "down")
	v.oneOf("head", e.Head, "arrow", "circle", "diamond", "none")
}

// ParticleFlow streams dots from Start to End.
type ParticleFlow struct {
	Base         `yaml:",inline"`
	Start        Position `json:"start" yaml:"start"`
	End          Position `json:"end" yaml:"end"`
	NumParticles int      `json:"num_particles,omitempty" yaml:"num_particles,omitempty"`
	Spread       *float64 `json:"spread,omitempty" yaml:"spread,omitempty"`
	ParticleSize float64  `json:"particle_size,omitempty" yaml:"particle_size,omitempty"`
}

func (*ParticleFlow) Kind() Kind { return KindParticleFlow }

// Count returns the number of particles, 20 when unset.
func (e *ParticleFlow) Count() int {
	if e.NumParticles <= 0 {
		return 20
	}
	return e.NumParticles
}

func (e *ParticleFlow) validate(v validator) {
	if e.Start == e.End {
		v.at("end").fail("must differ from start")
	}
	v.between("num_particles", float64(e.NumParticles), 0, 500)
	v.nonNegative("spread", FloatOr(e.Spread, 0))
	v.nonNegative("particle_size", e.ParticleSize)
}
