package schema

// Camera holds the view of a 3D element. Angles are in degrees and the
// rotation speed is in degrees per step.
type Camera struct {
	Elev          *float64  `json:"camera_elev,omitempty" yaml:"camera_elev,omitempty"`
	Azim          *float64  `json:"camera_azim,omitempty" yaml:"camera_azim,omitempty"`
	Rotate        bool      `json:"rotate_camera,omitempty" yaml:"rotate_camera,omitempty"`
	RotationSpeed float64   `json:"camera_rotation_speed,omitempty" yaml:"camera_rotation_speed,omitempty"`
	XLim          []float64 `json:"xlim,omitempty" yaml:"xlim,omitempty"`
	YLim          []float64 `json:"ylim,omitempty" yaml:"ylim,omitempty"`
	ZLim          []float64 `json:"zlim,omitempty" yaml:"zlim,omitempty"`
}

// View returns elevation and azimuth at step progress p.
func (c *Camera) View(p float64) (elev, azim float64) {
	elev = FloatOr(c.Elev, 20)
	azim = FloatOr(c.Azim, 45)
	if c.Rotate {
		azim += Or(c.RotationSpeed, 90) * p
	}
	return elev, azim
}

// Limits returns the data range of each axis, [-5,5] when unset.
func (c *Camera) Limits() (x, y, z [2]float64) {
	lim := func(l []float64) [2]float64 {
		if len(l) != 2 {
			return [2]float64{-5, 5}
		}
		return [2]float64{l[0], l[1]}
	}
	return lim(c.XLim), lim(c.YLim), lim(c.ZLim)
}

func (c *Camera) validate(v validator) {
	names := []string{"xlim", "ylim", "zlim"}
	for i, l := range [][]float64{c.XLim, c.YLim, c.ZLim} {
		name := names[i]
		if l == nil {
			continue
		}
		if len(l) != 2 {
			v.at(name).fail("expected [min, max], got %d values", len(l))
		} else if l[0] >= l[1] {
			v.at(name).fail("min %v must be below max %v", l[0], l[1])
		}
	}
	v.nonNegative("camera_rotation_speed", c.RotationSpeed)
}

// Scatter3D projects data points through a camera.
type Scatter3D struct {
	Base        `yaml:",inline"`
	Camera      `yaml:",inline"`
	Points      []Point3D `json:"points,omitempty" yaml:"points,omitempty"`
	ShowVectors bool      `json:"show_vectors,omitempty" yaml:"show_vectors,omitempty"`
	PointSize   float64   `json:"point_size,omitempty" yaml:"point_size,omitempty"`
}

func (*Scatter3D) Kind() Kind { return KindScatter3D }

func (e *Scatter3D) validate(v validator) {
	v.nonEmpty("points", len(e.Points))
	for i, p := range e.Points {
		v.at("points").index(i).color("color", p.Color)
	}
	e.Camera.validate(v)
	v.nonNegative("point_size", e.PointSize)
}

// Vector3D draws arrows from the origin through a camera.
type Vector3D struct {
	Base    `yaml:",inline"`
	Camera  `yaml:",inline"`
	Vectors []Point3D `json:"vectors,omitempty" yaml:"vectors,omitempty"`
}

func (*Vector3D) Kind() Kind { return KindVector3D }

func (e *Vector3D) validate(v validator) {
	v.nonEmpty("vectors", len(e.Vectors))
	for i, p := range e.Vectors {
		v.at("vectors").index(i).color("color", p.Color)
	}
	e.Camera.validate(v)
}
