package schema

// Card is a titled item used by flows, grids and stacks.
type Card struct {
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Event is one point on a timeline.
type Event struct {
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Item limits of the list-like variants. Each item gets its own row, so
// longer lists would run out of the element box.
const (
	MaxBulletItems    = 6
	MaxChecklistItems = 5
)

// BulletList reveals its items top to bottom.
type BulletList struct {
	Base     `yaml:",inline"`
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`
	Bullet   string   `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Spacing  float64  `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	FontSize float64  `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
}

func (*BulletList) Kind() Kind { return KindBulletList }

func (e *BulletList) validate(v validator) {
	v.nonEmpty("items", len(e.Items))
	v.atMost("items", len(e.Items), MaxBulletItems)
	v.nonNegative("spacing", e.Spacing)
	v.nonNegative("fontsize", e.FontSize)
}

// Checklist is a bullet list with check boxes.
type Checklist struct {
	Base       `yaml:",inline"`
	Items      []string `json:"items,omitempty" yaml:"items,omitempty"`
	Unchecked  []int    `json:"unchecked,omitempty" yaml:"unchecked,omitempty"`
	Spacing    float64  `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	FontSize   float64  `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	CheckColor string   `json:"check_color,omitempty" yaml:"check_color,omitempty"`
}

func (*Checklist) Kind() Kind { return KindChecklist }

// Checked reports whether item i is ticked.
func (e *Checklist) Checked(i int) bool {
	for _, u := range e.Unchecked {
		if u == i {
			return false
		}
	}
	return true
}

func (e *Checklist) validate(v validator) {
	v.nonEmpty("items", len(e.Items))
	v.atMost("items", len(e.Items), MaxChecklistItems)
	for i, u := range e.Unchecked {
		if u < 0 || u >= len(e.Items) {
			v.at("unchecked").index(i).fail("item %d does not exist", u)
		}
	}
	v.nonNegative("spacing", e.Spacing)
	v.color("check_color", e.CheckColor)
}

// Timeline spreads events along a horizontal line.
type Timeline struct {
	Base      `yaml:",inline"`
	Events    []Event `json:"events,omitempty" yaml:"events,omitempty"`
	LineColor string  `json:"line_color,omitempty" yaml:"line_color,omitempty"`
}

func (*Timeline) Kind() Kind { return KindTimeline }

func (e *Timeline) validate(v validator) {
	v.nonEmpty("events", len(e.Events))
	for i, ev := range e.Events {
		v.at("events").index(i).color("color", ev.Color)
	}
	v.color("line_color", e.LineColor)
}

// Flow is a row of boxes joined by arrows.
type Flow struct {
	Base  `yaml:",inline"`
	Steps []Card `json:"steps,omitempty" yaml:"steps,omitempty"`
}

func (*Flow) Kind() Kind { return KindFlow }

func (e *Flow) validate(v validator) {
	v.nonEmpty("steps", len(e.Steps))
	validateCards(v.at("steps"), e.Steps)
}

// Grid lays cards out in rows and columns.
type Grid struct {
	Base       `yaml:",inline"`
	Columns    int     `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows       int     `json:"rows,omitempty" yaml:"rows,omitempty"`
	CellWidth  float64 `json:"cell_width,omitempty" yaml:"cell_width,omitempty"`
	CellHeight float64 `json:"cell_height,omitempty" yaml:"cell_height,omitempty"`
	Items      []Card  `json:"items,omitempty" yaml:"items,omitempty"`
}

func (*Grid) Kind() Kind { return KindGrid }

// Dims returns the column and row count, two by two when unset.
func (e *Grid) Dims() (cols, rows int) {
	cols, rows = e.Columns, e.Rows
	if cols <= 0 {
		cols = 2
	}
	if rows <= 0 {
		rows = 2
	}
	return cols, rows
}

func (e *Grid) validate(v validator) {
	v.nonNegative("columns", float64(e.Columns))
	v.nonNegative("rows", float64(e.Rows))
	v.nonNegative("cell_width", e.CellWidth)
	v.nonNegative("cell_height", e.CellHeight)
	cols, rows := e.Dims()
	if len(e.Items) > cols*rows {
		v.at("items").fail("%d items do not fit a %dx%d grid", len(e.Items), cols, rows)
	}
	validateCards(v.at("items"), e.Items)
}

// StackedBoxes draws layers that narrow towards the top.
type StackedBoxes struct {
	Base          `yaml:",inline"`
	Items         []Card   `json:"items,omitempty" yaml:"items,omitempty"`
	BaseWidth     float64  `json:"base_width,omitempty" yaml:"base_width,omitempty"`
	BoxHeight     float64  `json:"box_height,omitempty" yaml:"box_height,omitempty"`
	WidthDecrease *float64 `json:"width_decrease,omitempty" yaml:"width_decrease,omitempty"`
	Spacing       float64  `json:"spacing,omitempty" yaml:"spacing,omitempty"`
}

func (*StackedBoxes) Kind() Kind { return KindStackedBoxes }

func (e *StackedBoxes) validate(v validator) {
	v.nonEmpty("items", len(e.Items))
	v.nonNegative("base_width", e.BaseWidth)
	v.nonNegative("box_height", e.BoxHeight)
	v.nonNegative("width_decrease", FloatOr(e.WidthDecrease, 0))
	v.nonNegative("spacing", e.Spacing)
	validateCards(v.at("items"), e.Items)
}

func validateCards(v validator, cards []Card) {
	for i, c := range cards {
		v.index(i).color("color", c.Color)
	}
}
