package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/slideanim/internal/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(x, y float64) *Position { return &Position{X: x, Y: y} }

// fullPresentation holds one element of every kind.
func fullPresentation() *Presentation {
	return &Presentation{
		Name:     "everything",
		Title:    "Every element",
		Author:   "tests",
		Language: "en",
		Version:  "1.0",
		Landing: Landing{
			Title:        "Everything",
			Subtitle:     "All 28 kinds",
			PrimaryColor: "accent",
		},
		ColorOverrides: map[string]string{"brand": "#112233"},
		Steps: []Step{
			{
				Name:  "text",
				Title: "Text",
				Elements: []Element{
					&Text{Base: Base{ID: "t1", Position: at(50, 80), Phase: anim.Immediate}, Content: "Hello", Style: "title"},
					&TypewriterText{Base: Base{Position: at(50, 70), Speed: 2}, Content: "typing", ShowCursor: Bool(false)},
					&Counter{Base: Base{Position: at(20, 50), Effect: anim.Pulse, EffectFrequency: 2}, Value: 1000, Prefix: "$", Decimals: 1},
					&CodeBlock{Base: Base{Position: at(50, 40)}, Code: "print('hi')", Language: "python"},
					&CodeExecution{Base: Base{Position: at(50, 20), Delay: 1}, Code: "2+2", Output: "4"},
				},
				AnimationFrames: 90,
				Transition:      "fade",
				Notes:           "speaker notes",
			},
			{
				Name: "containers",
				Elements: []Element{
					&Box{Base: Base{Position: at(30, 50), Color: "brand"}, Title: "Box", Content: "body"},
					&Comparison{Base: Base{Position: at(50, 50)}, LeftTitle: "Before", RightTitle: "After"},
					&Conversation{Base: Base{Position: at(50, 50), Stagger: Bool(false)}, Messages: []Message{
						{Role: "user", Content: "Hi"},
						{Role: "assistant", Content: "Hello", Name: "Bot"},
					}},
					&Image{Base: Base{Position: at(80, 50)}, Src: "qr:https://example.com", Border: true},
				},
			},
			{
				Name: "lists",
				Elements: []Element{
					&BulletList{Base: Base{Position: at(50, 50)}, Items: []string{"a", "b"}, Spacing: 4},
					&Checklist{Base: Base{Position: at(50, 50)}, Items: []string{"x", "y"}, Unchecked: []int{1}},
					&Timeline{Base: Base{Position: at(50, 50)}, Events: []Event{{Date: "2023", Title: "Start"}}},
					&Flow{Base: Base{Position: at(50, 50), Entry: anim.FromLeft, EntryDistance: 20}, Steps: []Card{{Title: "In"}, {Title: "Out", Color: "success"}}},
					&Grid{Base: Base{Position: at(50, 50)}, Columns: 3, Rows: 1, Items: []Card{{Title: "1"}, {Title: "2"}}},
					&StackedBoxes{Base: Base{Position: at(50, 50)}, Items: []Card{{Title: "L1"}}, WidthDecrease: Float(0)},
				},
			},
			{
				Name: "connectors",
				Elements: []Element{
					&Arrow{Base: Base{Width: 3}, Start: Position{X: 10, Y: 10}, End: Position{X: 90, Y: 10}, Head: "diamond"},
					&ArcArrow{Start: Position{X: 10, Y: 20}, End: Position{X: 90, Y: 20}, ArcHeight: 10, Direction: "down"},
					&ParticleFlow{Start: Position{X: 10, Y: 30}, End: Position{X: 90, Y: 30}, NumParticles: 12, Spread: Float(0)},
				},
			},
			{
				Name: "ai",
				Elements: []Element{
					&NeuralNetwork{Base: Base{Position: at(50, 50)}, Layers: []int{3, 4, 2}, LayerLabels: []string{"in", "hidden", "out"}, ShowConnections: Bool(true)},
					&AttentionHeatmap{Base: Base{Position: at(50, 50)}, TokensX: []string{"a", "b"}, Weights: [][]float64{{0.9, 0.1}, {0.2, 0.8}}, Title: "Attn"},
					&TokenFlow{Base: Base{Position: at(50, 50)}, InputText: "hello world", TokenIDs: []int{1, 2}},
					&ModelComparison{Base: Base{Position: at(50, 50)}, Models: []Model{
						{Name: "A", Color: "warning", Values: map[string]string{"params": "175B"}},
						{Name: "B", Values: map[string]string{"params": "1.7T", "context": "128K"}},
					}, Rows: []string{"Params", "Context"}},
				},
			},
			{
				Name: "metrics",
				Elements: []Element{
					&SimilarityMeter{Base: Base{Position: at(50, 50)}, Score: 75, Label: "sim"},
					&ProgressBar{Base: Base{Position: at(50, 50), Easing: anim.BounceOut}, Current: 7, Total: 10},
					&WeightComparison{Base: Base{Position: at(50, 50)}, BeforeWeights: []float64{0.3, 0.5}, AfterWeights: []float64{0.7, 0.8}, Labels: []string{"w1", "w2"}},
					&ParameterSlider{Base: Base{Position: at(50, 50)}, Label: "Temperature", MinValue: 0, MaxValue: 2, CurrentValue: 0.7},
				},
			},
			{
				Name: "space",
				Elements: []Element{
					&Scatter3D{Base: Base{Position: at(30, 50)}, Camera: Camera{Elev: Float(0), Rotate: true, XLim: []float64{-1, 1}}, Points: []Point3D{{X: 1, Y: 2, Z: 3, Color: "accent"}}},
					&Vector3D{Base: Base{Position: at(70, 50)}, Vectors: []Point3D{{X: 4, Y: 2, Z: 3, Label: "v1"}}},
				},
			},
		},
	}
}

func TestEveryKindIsConstructible(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 28)

	seen := map[Kind]bool{}
	for _, k := range kinds {
		el, err := New(k)
		require.NoError(t, err, k)
		assert.Equal(t, k, el.Kind())
		seen[k] = true
	}
	assert.Len(t, seen, 28)

	for _, step := range fullPresentation().Steps {
		for _, el := range step.Elements {
			delete(seen, el.Kind())
		}
	}
	assert.Empty(t, seen, "fullPresentation should cover every kind")

	_, err := New("hologram")
	assert.Error(t, err)
}

func TestFullPresentationIsValid(t *testing.T) {
	require.NoError(t, Validate(fullPresentation()))
	require.NoError(t, Validate(Example("")))
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			want := fullPresentation()
			data, err := Encode(want, format)
			require.NoError(t, err)

			got, err := Decode(data, format)
			require.NoError(t, err, string(data))
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"deck.json", "deck.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			want := Example("deck")
			require.NoError(t, Save(path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodedTypeTag(t *testing.T) {
	p := &Presentation{Name: "p", Steps: []Step{{Name: "s", Elements: []Element{&Text{Content: "x"}}}}}
	data, err := Encode(p, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type": "text"`)

	data, err = Encode(p, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- type: text")
}

func TestUnknownTypeIsValidationError(t *testing.T) {
	doc := `{"name":"p","steps":[{"name":"s","elements":[
		{"type":"text","content":"ok"},
		{"type":"hologram"}
	]}]}`
	_, err := Decode([]byte(doc), FormatJSON)
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "steps[0].elements[1].type", verrs[0].Path)

	var ioErr *IOError
	assert.False(t, errors.As(err, &ioErr))
}

func TestUnknownTypeYAML(t *testing.T) {
	doc := "name: p\nsteps:\n  - name: s\n    elements:\n      - content: no type\n"
	_, err := Decode([]byte(doc), FormatYAML)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
	assert.Equal(t, "steps[0].elements[0].type", verrs[0].Path)
	assert.Equal(t, "is required", verrs[0].Msg)
}

func TestMalformedIsIOError(t *testing.T) {
	_, err := Decode([]byte(`{"name": "p", "steps": [`), FormatJSON)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %T", err)

	var verrs ValidationErrors
	assert.False(t, errors.As(err, &verrs))
}

func TestMissingFileIsIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadReportsValidationErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	doc := `{"name":"p","steps":[{"name":"s","elements":[
		{"type":"attention_heatmap","tokens_x":["a","b"],"weights":[[0.5,0.5]]}
	]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := Load(path)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
	assert.Equal(t, "steps[0].elements[0].weights", verrs[0].Path)
}

func TestValidationPaths(t *testing.T) {
	p := &Presentation{
		Name: "p",
		Steps: []Step{{
			Name:       "s",
			Transition: "spin",
			Elements: []Element{
				&Text{Base: Base{Phase: "later", Easing: "wobble"}},
				&Flow{},
				&AttentionHeatmap{TokensX: []string{"a", "b"}, Weights: [][]float64{{0.1, 0.2}, {0.3}}},
				&ParameterSlider{MinValue: 2, MaxValue: 1},
				&Box{Base: Base{Color: "chartreuse-ish"}},
			},
		}},
	}
	err := Validate(p)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	var paths []string
	for _, e := range verrs {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"steps[0].transition",
		"steps[0].elements[0].animation_phase",
		"steps[0].elements[0].easing",
		"steps[0].elements[0].content",
		"steps[0].elements[1].steps",
		"steps[0].elements[2].weights[1]",
		"steps[0].elements[3].max_value",
		"steps[0].elements[4].color",
	}, paths)
}

func TestValidateEmptyPresentation(t *testing.T) {
	err := Validate(&Presentation{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "steps: must not be empty")
}

func TestModelFreeFormKeys(t *testing.T) {
	doc := `{"name":"p","steps":[{"name":"s","elements":[
		{"type":"model_comparison","models":[{"name":"GPT-3","params":"175B","layers":96,"color":"warning"}],
		 "comparison_rows":["Params","Layers"]}
	]}]}`
	p, err := Decode([]byte(doc), FormatJSON)
	require.NoError(t, err)

	mc := p.Steps[0].Elements[0].(*ModelComparison)
	m := mc.Models[0]
	assert.Equal(t, "GPT-3", m.Name)
	assert.Equal(t, "warning", m.Color)
	assert.Equal(t, "175B", m.Value("Params"))
	assert.Equal(t, "96", m.Value("Layers"))
}

func TestDefaults(t *testing.T) {
	var b Base
	assert.Equal(t, anim.Early, b.AnimationPhase())
	assert.Equal(t, 1.0, b.AnimationDuration())
	assert.Equal(t, 1.0, b.AnimationSpeed())
	assert.Equal(t, anim.DefaultEntryDistance, b.EntryOffsetDistance())
	assert.Equal(t, Position{X: 50, Y: 50}, b.Anchor())
	assert.True(t, b.Staggered(KindFlow))
	assert.False(t, b.Staggered(KindText))

	w, h := b.Size(KindFlow)
	assert.Equal(t, 50.0, w)
	assert.Equal(t, 12.0, h)

	assert.Equal(t, DefaultFrames, (&Step{}).Frames())
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.json", "b.yaml", "c.yml"}
	for i, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, Save(path, Example(strings.TrimSuffix(f, filepath.Ext(f)))))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	latest, err := FindLatest(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "c.yml"), latest)

	_, err = FindLatest(t.TempDir())
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, "good.json"), Example("good")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Error(t, entries[0].Err)
	assert.Equal(t, "good", entries[1].Name)
	assert.Equal(t, 3, entries[1].Steps)
}

func TestListLimits(t *testing.T) {
	words := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "w"
		}
		return out
	}
	models := make([]Model, MaxModels+1)
	for i := range models {
		models[i] = Model{Name: "m"}
	}
	msgs := make([]Message, MaxMessages+1)
	for i := range msgs {
		msgs[i] = Message{Role: "user", Content: "hi"}
	}

	tests := []struct {
		name string
		el   Element
		path string
	}{
		{"bullet_list", &BulletList{Items: words(MaxBulletItems + 2)}, "items"},
		{"checklist", &Checklist{Items: words(MaxChecklistItems + 1)}, "items"},
		{"conversation", &Conversation{Messages: msgs}, "messages"},
		{"token_flow tokens", &TokenFlow{Tokens: words(MaxTokens + 1)}, "tokens"},
		{"token_flow input_text", &TokenFlow{InputText: strings.Join(words(MaxTokens+1), " ")}, "input_text"},
		{"model_comparison", &ModelComparison{Models: models}, "models"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Presentation{Name: "p", Steps: []Step{{Name: "s", Elements: []Element{tt.el}}}})
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, "steps[0].elements[0]."+tt.path, verrs[0].Path)
			assert.Contains(t, verrs[0].Error(), "at most")
		})
	}

	ok := &BulletList{Items: words(MaxBulletItems)}
	assert.NoError(t, Validate(&Presentation{Name: "p", Steps: []Step{{Name: "s", Elements: []Element{ok}}}}))
}

func TestHeatmapEmptyWeightsMeanNone(t *testing.T) {
	doc := `{"name":"p","steps":[{"name":"s","elements":[
		{"type":"attention_heatmap","tokens_x":["a","b"],"weights":[]}
	]}]}`
	p, err := Decode([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.NoError(t, Validate(p))
}
