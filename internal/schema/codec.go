package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Elements are encoded as objects carrying a "type" tag next to the variant
// fields.

func (es Elements) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, el := range es {
		if i > 0 {
			buf.WriteByte(',')
		}
		body, err := json.Marshal(el)
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		tag, _ := json.Marshal(string(el.Kind()))
		buf.WriteString(`{"type":`)
		buf.Write(tag)
		if len(body) > 2 {
			buf.WriteByte(',')
			buf.Write(body[1 : len(body)-1])
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (es *Elements) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*es = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Elements, 0, len(raws))
	for i, raw := range raws {
		at := fmt.Sprintf("elements[%d]", i)
		var probe struct {
			Type Kind `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return prefixed(at, err)
		}
		el, err := newTagged(probe.Type)
		if err != nil {
			return prefixed(at, err)
		}
		if err := json.Unmarshal(raw, el); err != nil {
			return prefixed(at, err)
		}
		out = append(out, el)
	}
	*es = out
	return nil
}

func (es Elements) MarshalYAML() (interface{}, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i, el := range es {
		var body yaml.Node
		if err := body.Encode(el); err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		tag := []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(el.Kind())},
		}
		body.Content = append(tag, body.Content...)
		seq.Content = append(seq.Content, &body)
	}
	return seq, nil
}

func (es *Elements) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: elements must be a list", value.Line)
	}
	out := make(Elements, 0, len(value.Content))
	for i, item := range value.Content {
		at := fmt.Sprintf("elements[%d]", i)
		var probe struct {
			Type Kind `yaml:"type"`
		}
		if err := item.Decode(&probe); err != nil {
			return prefixed(at, err)
		}
		el, err := newTagged(probe.Type)
		if err != nil {
			return prefixed(at, err)
		}
		if err := item.Decode(el); err != nil {
			return prefixed(at, err)
		}
		out = append(out, el)
	}
	*es = out
	return nil
}

func (ss *Steps) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*ss = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Steps, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return prefixed(fmt.Sprintf("steps[%d]", i), err)
		}
	}
	*ss = out
	return nil
}

func (ss *Steps) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: steps must be a list", value.Line)
	}
	out := make(Steps, len(value.Content))
	for i, item := range value.Content {
		if err := item.Decode(&out[i]); err != nil {
			return prefixed(fmt.Sprintf("steps[%d]", i), err)
		}
	}
	*ss = out
	return nil
}

func newTagged(kind Kind) (Element, error) {
	if kind == "" {
		return nil, &ValidationError{Path: "type", Msg: "is required"}
	}
	el, err := New(kind)
	if err != nil {
		return nil, &ValidationError{Path: "type", Msg: err.Error()}
	}
	return el, nil
}

// prefixed moves err under the field path at.
func prefixed(at string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		path := at
		if ve.Path != "" {
			path += "." + ve.Path
		}
		return &ValidationError{Path: path, Msg: ve.Msg}
	}
	return fmt.Errorf("%s: %w", at, err)
}
