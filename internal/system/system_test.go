package system

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		name string
		list string
		want string
	}{
		{"videotoolbox", " V....D h264_videotoolbox VideoToolbox H.264 Encoder", "h264_videotoolbox"},
		{"nvenc", " V....D h264_nvenc NVIDIA NVENC H.264 encoder", "h264_nvenc"},
		{"software", " V....D libx264 libx264 H.264", "libx264"},
		{"empty", "", "libx264"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickEncoder(tt.list))
		})
	}
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	img := p.Get(4, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	p.Put(img)

	other := p.Get(8, 8)
	assert.Equal(t, image.Rect(0, 0, 8, 8), other.Bounds())

	// Offset buffers are not pooled.
	p.Put(image.NewRGBA(image.Rect(1, 1, 5, 3)))
	assert.Equal(t, image.Rect(0, 0, 4, 2), p.Get(4, 2).Bounds())
}

func TestDefaultWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)
}
