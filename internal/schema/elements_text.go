package schema

// Text is a static label.
type Text struct {
	Base       `yaml:",inline"`
	Content    string  `json:"content" yaml:"content"`
	FontSize   float64 `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	Style      string  `json:"style,omitempty" yaml:"style,omitempty"`
	FontWeight string  `json:"fontweight,omitempty" yaml:"fontweight,omitempty"`
	Align      string  `json:"ha,omitempty" yaml:"ha,omitempty"`
	VAlign     string  `json:"va,omitempty" yaml:"va,omitempty"`
	Family     string  `json:"family,omitempty" yaml:"family,omitempty"`
}

func (*Text) Kind() Kind { return KindText }

func (e *Text) validate(v validator) {
	v.required("content", e.Content)
	v.nonNegative("fontsize", e.FontSize)
	v.oneOf("style", e.Style, "normal", "title", "subtitle", "body", "caption", "footer", "heading")
	v.oneOf("fontweight", e.FontWeight, "normal", "bold")
	v.oneOf("ha", e.Align, "left", "center", "right")
	v.oneOf("va", e.VAlign, "top", "center", "bottom")
	v.oneOf("family", e.Family, "sans", "monospace")
}

// TypewriterText reveals its content one character or word at a time.
type TypewriterText struct {
	Base       `yaml:",inline"`
	Content    string  `json:"content" yaml:"content"`
	FontSize   float64 `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	ShowCursor *bool   `json:"show_cursor,omitempty" yaml:"show_cursor,omitempty"`
	CursorChar string  `json:"cursor_char,omitempty" yaml:"cursor_char,omitempty"`
	Reveal     string  `json:"reveal,omitempty" yaml:"reveal,omitempty"`
}

func (*TypewriterText) Kind() Kind { return KindTypewriterText }

func (e *TypewriterText) validate(v validator) {
	v.required("content", e.Content)
	v.nonNegative("fontsize", e.FontSize)
	v.oneOf("reveal", e.Reveal, "char", "word")
}

// Counter counts up to Value while it is revealed.
type Counter struct {
	Base     `yaml:",inline"`
	Value    float64 `json:"value" yaml:"value"`
	From     float64 `json:"from,omitempty" yaml:"from,omitempty"`
	Prefix   string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix   string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Decimals int     `json:"decimals,omitempty" yaml:"decimals,omitempty"`
	FontSize float64 `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	Glow     bool    `json:"glow,omitempty" yaml:"glow,omitempty"`
	Label    string  `json:"label,omitempty" yaml:"label,omitempty"`
}

func (*Counter) Kind() Kind { return KindCounter }

func (e *Counter) validate(v validator) {
	v.between("decimals", float64(e.Decimals), 0, 6)
	v.nonNegative("fontsize", e.FontSize)
}

// CodeBlock shows source code in a monospace panel.
type CodeBlock struct {
	Base        `yaml:",inline"`
	Code        string  `json:"code" yaml:"code"`
	Language    string  `json:"language,omitempty" yaml:"language,omitempty"`
	FontSize    float64 `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	LineNumbers bool    `json:"line_numbers,omitempty" yaml:"line_numbers,omitempty"`
}

func (*CodeBlock) Kind() Kind { return KindCodeBlock }

func (e *CodeBlock) validate(v validator) {
	v.required("code", e.Code)
	v.nonNegative("fontsize", e.FontSize)
}

// CodeExecution shows code and, once the code is visible, its output.
type CodeExecution struct {
	Base     `yaml:",inline"`
	Code     string `json:"code" yaml:"code"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

func (*CodeExecution) Kind() Kind { return KindCodeExecution }

func (e *CodeExecution) validate(v validator) {
	v.required("code", e.Code)
}
