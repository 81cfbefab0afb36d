// Package analyzer finds content regions on rendered pages.
package analyzer

import (
	"fmt"
	"image"
)

// Block is a detected region of interest in image pixel coordinates.
type Block struct {
	Rect image.Rectangle
	// Confidence is the share of edge pixels inside Rect.
	Confidence float64
}

// Detector is the interface for image analysis strategies.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// NewDetector creates a detector based on the specified variant.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
