package video

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		quality []string
	}{
		{"libx264", Params{Encoder: "libx264", Quality: 23}, []string{"-crf", "23", "-preset", "medium"}},
		{"nvenc", Params{Encoder: "h264_nvenc", Quality: 28}, []string{"-cq", "28"}},
		{"videotoolbox", Params{Encoder: "h264_videotoolbox", Quality: 75}, []string{"-b:v", "7500k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Width, tt.params.Height, tt.params.FPS = 1280, 720, 30
			args := buildFFmpegArgs("out.mp4", tt.params)
			joined := strings.Join(args, " ")

			assert.Equal(t, "out.mp4", args[len(args)-1])
			assert.Contains(t, joined, "-f rawvideo -pixel_format rgba -video_size 1280x720 -framerate 30 -i -")
			assert.Contains(t, joined, "-pix_fmt yuv420p -c:v "+tt.params.Encoder)
			assert.Contains(t, joined, strings.Join(tt.quality, " "))
			assert.NotContains(t, joined, "-map")
		})
	}
}

func TestBuildFFmpegArgsWithAudio(t *testing.T) {
	args := buildFFmpegArgs("out.mp4", Params{Width: 2, Height: 2, FPS: 1, Encoder: "libx264", AudioPath: "voice.mp3"})
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-i voice.mp3 -map 0:v -map 1:a -c:a aac -shortest")
}

func TestDefaultQuality(t *testing.T) {
	assert.Equal(t, 75, DefaultQuality("h264_videotoolbox"))
	assert.Equal(t, 28, DefaultQuality("h264_nvenc"))
	assert.Equal(t, 23, DefaultQuality("libx264"))
	assert.Equal(t, 23, DefaultQuality(""))
}

func TestWriteRawRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	src.Set(2, 2, color.NRGBA{R: 255, A: 255})
	src.Set(3, 2, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, src))
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, buf.Bytes())
}

func TestPNGSequence(t *testing.T) {
	dir := t.TempDir()
	seq, err := NewPNGSequence(dir + "/frames")
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	require.NoError(t, seq.WriteFrame(img))
	require.NoError(t, seq.WriteFrame(img))
	require.NoError(t, seq.Close())
	assert.Equal(t, 2, seq.Frames())

	for i := 0; i < 2; i++ {
		_, err := os.Stat(seq.FramePath(i))
		assert.NoError(t, err)
	}
	assert.True(t, strings.HasSuffix(seq.FramePath(1), "frame_00001.png"))
}
