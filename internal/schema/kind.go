package schema

import "fmt"

// Kind is the type tag of an element.
type Kind string

const (
	KindText             Kind = "text"
	KindTypewriterText   Kind = "typewriter_text"
	KindCounter          Kind = "counter"
	KindCodeBlock        Kind = "code_block"
	KindCodeExecution    Kind = "code_execution"
	KindBox              Kind = "box"
	KindComparison       Kind = "comparison"
	KindConversation     Kind = "conversation"
	KindImage            Kind = "image"
	KindBulletList       Kind = "bullet_list"
	KindChecklist        Kind = "checklist"
	KindTimeline         Kind = "timeline"
	KindFlow             Kind = "flow"
	KindGrid             Kind = "grid"
	KindStackedBoxes     Kind = "stacked_boxes"
	KindArrow            Kind = "arrow"
	KindArcArrow         Kind = "arc_arrow"
	KindParticleFlow     Kind = "particle_flow"
	KindNeuralNetwork    Kind = "neural_network"
	KindAttentionHeatmap Kind = "attention_heatmap"
	KindTokenFlow        Kind = "token_flow"
	KindModelComparison  Kind = "model_comparison"
	KindSimilarityMeter  Kind = "similarity_meter"
	KindProgressBar      Kind = "progress_bar"
	KindWeightComparison Kind = "weight_comparison"
	KindParameterSlider  Kind = "parameter_slider"
	KindScatter3D        Kind = "scatter_3d"
	KindVector3D         Kind = "vector_3d"
)

type variant struct {
	new          func() Element
	width        float64
	height       float64
	staggerFirst bool
}

var registry = map[Kind]variant{
	KindText:             {func() Element { return &Text{} }, 15, 5, false},
	KindTypewriterText:   {func() Element { return &TypewriterText{} }, 20, 5, false},
	KindCounter:          {func() Element { return &Counter{} }, 15, 8, false},
	KindCodeBlock:        {func() Element { return &CodeBlock{} }, 30, 15, false},
	KindCodeExecution:    {func() Element { return &CodeExecution{} }, 30, 20, false},
	KindBox:              {func() Element { return &Box{} }, 20, 12, false},
	KindComparison:       {func() Element { return &Comparison{} }, 40, 20, false},
	KindConversation:     {func() Element { return &Conversation{} }, 35, 25, true},
	KindImage:            {func() Element { return &Image{} }, 25, 20, false},
	KindBulletList:       {func() Element { return &BulletList{} }, 25, 18, true},
	KindChecklist:        {func() Element { return &Checklist{} }, 25, 15, true},
	KindTimeline:         {func() Element { return &Timeline{} }, 50, 15, true},
	KindFlow:             {func() Element { return &Flow{} }, 50, 12, true},
	KindGrid:             {func() Element { return &Grid{} }, 35, 25, true},
	KindStackedBoxes:     {func() Element { return &StackedBoxes{} }, 30, 25, true},
	KindArrow:            {func() Element { return &Arrow{} }, 2, 0, false},
	KindArcArrow:         {func() Element { return &ArcArrow{} }, 2, 0, false},
	KindParticleFlow:     {func() Element { return &ParticleFlow{} }, 60, 8, false},
	KindNeuralNetwork:    {func() Element { return &NeuralNetwork{} }, 40, 30, true},
	KindAttentionHeatmap: {func() Element { return &AttentionHeatmap{} }, 30, 30, true},
	KindTokenFlow:        {func() Element { return &TokenFlow{} }, 45, 20, true},
	KindModelComparison:  {func() Element { return &ModelComparison{} }, 45, 30, true},
	KindSimilarityMeter:  {func() Element { return &SimilarityMeter{} }, 18, 12, false},
	KindProgressBar:      {func() Element { return &ProgressBar{} }, 30, 6, false},
	KindWeightComparison: {func() Element { return &WeightComparison{} }, 35, 18, true},
	KindParameterSlider:  {func() Element { return &ParameterSlider{} }, 30, 10, false},
	KindScatter3D:        {func() Element { return &Scatter3D{} }, 30, 25, true},
	KindVector3D:         {func() Element { return &Vector3D{} }, 30, 25, true},
}

// Kinds lists every element kind in palette order.
func Kinds() []Kind {
	return []Kind{
		KindText, KindTypewriterText, KindCounter, KindCodeBlock, KindCodeExecution,
		KindBox, KindComparison, KindConversation,
		KindBulletList, KindChecklist, KindTimeline,
		KindFlow, KindGrid, KindStackedBoxes,
		KindArrow, KindArcArrow, KindParticleFlow,
		KindNeuralNetwork, KindAttentionHeatmap, KindTokenFlow, KindModelComparison,
		KindSimilarityMeter, KindProgressBar, KindWeightComparison, KindParameterSlider,
		KindImage,
		KindScatter3D, KindVector3D,
	}
}

func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

// New returns an empty element of kind k.
func New(k Kind) (Element, error) {
	v, ok := registry[k]
	if !ok {
		return nil, fmt.Errorf("unknown element type %q", k)
	}
	return v.new(), nil
}

// DefaultSize returns the width and height a kind uses when none is given.
func DefaultSize(k Kind) (w, h float64) {
	v := registry[k]
	return v.width, v.height
}

// StaggerDefault reports whether list-like kinds reveal items one by one
// unless told otherwise.
func StaggerDefault(k Kind) bool {
	return registry[k].staggerFirst
}
