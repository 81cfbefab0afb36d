package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NeuralNetwork draws layers of nodes and their dense connections.
type NeuralNetwork struct {
	Base            `yaml:",inline"`
	Layers          []int    `json:"layers,omitempty" yaml:"layers,omitempty"`
	LayerLabels     []string `json:"layer_labels,omitempty" yaml:"layer_labels,omitempty"`
	ShowConnections *bool    `json:"show_connections,omitempty" yaml:"show_connections,omitempty"`
	NodeColor       string   `json:"node_color,omitempty" yaml:"node_color,omitempty"`
	ConnectionColor string   `json:"connection_color,omitempty" yaml:"connection_color,omitempty"`
	NodeRadius      float64  `json:"node_radius,omitempty" yaml:"node_radius,omitempty"`
}

func (*NeuralNetwork) Kind() Kind { return KindNeuralNetwork }

func (e *NeuralNetwork) validate(v validator) {
	v.nonEmpty("layers", len(e.Layers))
	for i, n := range e.Layers {
		if n < 1 || n > 64 {
			v.at("layers").index(i).fail("node count must be within [1,64], got %d", n)
		}
	}
	if len(e.LayerLabels) > len(e.Layers) {
		v.at("layer_labels").fail("%d labels for %d layers", len(e.LayerLabels), len(e.Layers))
	}
	v.color("node_color", e.NodeColor)
	v.color("connection_color", e.ConnectionColor)
	v.nonNegative("node_radius", e.NodeRadius)
}

// AttentionHeatmap shows a token by token weight matrix. Weights has one row
// per TokensY entry and one column per TokensX entry; when it is absent a
// deterministic self-attention pattern is drawn.
type AttentionHeatmap struct {
	Base       `yaml:",inline"`
	TokensX    []string    `json:"tokens_x,omitempty" yaml:"tokens_x,omitempty"`
	TokensY    []string    `json:"tokens_y,omitempty" yaml:"tokens_y,omitempty"`
	Weights    [][]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	ShowValues bool        `json:"show_values,omitempty" yaml:"show_values,omitempty"`
}

func (*AttentionHeatmap) Kind() Kind { return KindAttentionHeatmap }

// Rows returns the row tokens, which default to the column tokens.
func (e *AttentionHeatmap) Rows() []string {
	if len(e.TokensY) == 0 {
		return e.TokensX
	}
	return e.TokensY
}

func (e *AttentionHeatmap) validate(v validator) {
	v.nonEmpty("tokens_x", len(e.TokensX))
	if len(e.Weights) == 0 {
		return
	}
	rows, cols := len(e.Rows()), len(e.TokensX)
	if len(e.Weights) != rows {
		v.at("weights").fail("expected %d rows, got %d", rows, len(e.Weights))
		return
	}
	for i, row := range e.Weights {
		rv := v.at("weights").index(i)
		if len(row) != cols {
			rv.fail("expected %d columns, got %d", cols, len(row))
			continue
		}
		for j, w := range row {
			if w < 0 || w > 1 {
				rv.index(j).fail("weight must be within [0,1], got %v", w)
			}
		}
	}
}

// Column limits of the token flow and model comparison layouts.
const (
	MaxTokens = 5
	MaxModels = 4
)

// TokenFlow shows input text split into tokens and optional embeddings.
type TokenFlow struct {
	Base           `yaml:",inline"`
	InputText      string   `json:"input_text,omitempty" yaml:"input_text,omitempty"`
	Tokens         []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	TokenIDs       []int    `json:"token_ids,omitempty" yaml:"token_ids,omitempty"`
	ShowEmbeddings *bool    `json:"show_embeddings,omitempty" yaml:"show_embeddings,omitempty"`
}

func (*TokenFlow) Kind() Kind { return KindTokenFlow }

// TokenList returns Tokens, or the words of InputText when none are given.
func (e *TokenFlow) TokenList() []string {
	if len(e.Tokens) > 0 {
		return e.Tokens
	}
	return strings.Fields(e.InputText)
}

func (e *TokenFlow) validate(v validator) {
	if e.InputText == "" && len(e.Tokens) == 0 {
		v.at("input_text").fail("input_text or tokens is required")
	}
	if len(e.Tokens) > 0 {
		v.atMost("tokens", len(e.Tokens), MaxTokens)
	} else {
		v.atMost("input_text", len(e.TokenList()), MaxTokens)
	}
	if len(e.TokenIDs) > 0 && len(e.TokenIDs) != len(e.TokenList()) {
		v.at("token_ids").fail("expected %d ids, got %d", len(e.TokenList()), len(e.TokenIDs))
	}
}

// Model is one column of a model comparison. Every key other than name and
// color is a row value, looked up by lowercased row label.
type Model struct {
	Name   string            `yaml:"name"`
	Color  string            `yaml:"color,omitempty"`
	Values map[string]string `yaml:",inline"`
}

// Value returns the entry for a row label.
func (m Model) Value(row string) string {
	if v, ok := m.Values[strings.ToLower(row)]; ok {
		return v
	}
	return m.Values[row]
}

func (m Model) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m.Values)+2)
	for k, v := range m.Values {
		out[k] = v
	}
	out["name"] = m.Name
	if m.Color != "" {
		out["color"] = m.Color
	}
	return json.Marshal(out)
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Model{}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, err := scalarString(raw[k])
		if err != nil {
			return fmt.Errorf("model field %q: %w", k, err)
		}
		switch k {
		case "name":
			m.Name = s
		case "color":
			m.Color = s
		default:
			if m.Values == nil {
				m.Values = make(map[string]string)
			}
			m.Values[k] = s
		}
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case float64, bool:
		return fmt.Sprint(x), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("expected a scalar, got %T", v)
}

// ModelComparison is a table with one column per model.
type ModelComparison struct {
	Base   `yaml:",inline"`
	Models []Model  `json:"models,omitempty" yaml:"models,omitempty"`
	Rows   []string `json:"comparison_rows,omitempty" yaml:"comparison_rows,omitempty"`
}

func (*ModelComparison) Kind() Kind { return KindModelComparison }

func (e *ModelComparison) validate(v validator) {
	v.nonEmpty("models", len(e.Models))
	v.atMost("models", len(e.Models), MaxModels)
	for i, m := range e.Models {
		mv := v.at("models").index(i)
		mv.required("name", m.Name)
		mv.color("color", m.Color)
	}
}
