package schema

import "github.com/ivlev/slideanim/internal/anim"

// Example returns a small presentation that exercises the common element
// families. It is the starting point written by `slideanim new`.
func Example(name string) *Presentation {
	if name == "" {
		name = "example_presentation"
	}
	return &Presentation{
		Name:        name,
		Title:       "Example Presentation",
		Description: "A short presentation that shows the schema structure",
		Author:      "Designer",
		Language:    "en",
		Version:     "1.0",
		Landing: Landing{
			Title:          "Example Presentation",
			Subtitle:       "An Introduction",
			Tagline:        "From concept to delivery",
			WelcomeMessage: "Welcome! Let's learn together.",
			Footer:         "Press SPACE to begin",
			PrimaryColor:   "primary",
		},
		Steps: []Step{
			{
				Name:  "introduction",
				Title: "What Will We Learn?",
				Elements: []Element{
					&BulletList{
						Base:  Base{Position: &Position{X: 50, Y: 55}, Phase: anim.Early, Stagger: Bool(true)},
						Items: []string{"Topic 1", "Topic 2", "Topic 3"},
					},
				},
				AnimationFrames: 60,
			},
			{
				Name:       "pipeline",
				Title:      "How It Works",
				Transition: "fade",
				Elements: []Element{
					&Flow{
						Base: Base{Position: &Position{X: 50, Y: 60}, Width: 70, Phase: anim.Immediate},
						Steps: []Card{
							{Title: "Input", Subtitle: "text"},
							{Title: "Tokens"},
							{Title: "Model"},
							{Title: "Output"},
						},
					},
					&ProgressBar{
						Base:    Base{Position: &Position{X: 50, Y: 30}, Phase: anim.Late, Easing: anim.EaseOutCubic},
						Current: 7,
						Total:   10,
						Label:   "Progress",
					},
				},
				AnimationFrames: 90,
			},
			{
				Name:       "attention",
				Title:      "Attention",
				Transition: "slide_left",
				Elements: []Element{
					&AttentionHeatmap{
						Base:       Base{Position: &Position{X: 35, Y: 45}, Phase: anim.Early},
						TokensX:    []string{"The", "cat", "sat"},
						ShowValues: true,
					},
					&Counter{
						Base:   Base{Position: &Position{X: 75, Y: 50}, Phase: anim.Middle, Effect: anim.Pulse},
						Value:  175,
						Suffix: "B",
						Label:  "parameters",
					},
				},
				AnimationFrames: 90,
			},
		},
	}
}
