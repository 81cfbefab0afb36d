package schema

// Box is a rounded panel with an optional title and body.
type Box struct {
	Base        `yaml:",inline"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	FillColor   string `json:"fill_color,omitempty" yaml:"fill_color,omitempty"`
	BorderColor string `json:"border_color,omitempty" yaml:"border_color,omitempty"`
}

func (*Box) Kind() Kind { return KindBox }

func (e *Box) validate(v validator) {
	v.color("fill_color", e.FillColor)
	v.color("border_color", e.BorderColor)
}

// Comparison puts two panels side by side.
type Comparison struct {
	Base         `yaml:",inline"`
	LeftTitle    string `json:"left_title,omitempty" yaml:"left_title,omitempty"`
	LeftContent  string `json:"left_content,omitempty" yaml:"left_content,omitempty"`
	LeftColor    string `json:"left_color,omitempty" yaml:"left_color,omitempty"`
	RightTitle   string `json:"right_title,omitempty" yaml:"right_title,omitempty"`
	RightContent string `json:"right_content,omitempty" yaml:"right_content,omitempty"`
	RightColor   string `json:"right_color,omitempty" yaml:"right_color,omitempty"`
}

func (*Comparison) Kind() Kind { return KindComparison }

func (e *Comparison) validate(v validator) {
	v.color("left_color", e.LeftColor)
	v.color("right_color", e.RightColor)
}

// Message is one chat bubble.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

// IsUser reports whether the message is drawn on the user side.
func (m Message) IsUser() bool {
	return m.Role == "user" || m.Role == "Input"
}

// MaxMessages bounds a conversation to the bubbles that fit its box.
const MaxMessages = 5

// Conversation is a chat transcript revealed message by message.
type Conversation struct {
	Base           `yaml:",inline"`
	Messages       []Message `json:"messages,omitempty" yaml:"messages,omitempty"`
	UserColor      string    `json:"user_color,omitempty" yaml:"user_color,omitempty"`
	AssistantColor string    `json:"assistant_color,omitempty" yaml:"assistant_color,omitempty"`
}

func (*Conversation) Kind() Kind { return KindConversation }

func (e *Conversation) validate(v validator) {
	v.nonEmpty("messages", len(e.Messages))
	v.atMost("messages", len(e.Messages), MaxMessages)
	for i, m := range e.Messages {
		v.at("messages").index(i).required("role", m.Role)
	}
	v.color("user_color", e.UserColor)
	v.color("assistant_color", e.AssistantColor)
}

// Image draws a bitmap asset. Src is a file path relative to the schema, a
// PDF page as "file.pdf#page" or a generated QR code as "qr:<text>".
type Image struct {
	Base    `yaml:",inline"`
	Src     string `json:"src" yaml:"src"`
	Border  bool   `json:"border,omitempty" yaml:"border,omitempty"`
	Shadow  bool   `json:"shadow,omitempty" yaml:"shadow,omitempty"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

func (*Image) Kind() Kind { return KindImage }

func (e *Image) validate(v validator) {
	v.required("src", e.Src)
}
