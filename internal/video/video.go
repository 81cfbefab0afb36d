package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Encoder принимает кадры строго по порядку.
type Encoder interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Params описывает выходной поток ffmpeg.
type Params struct {
	Width, Height int
	FPS           int
	Encoder       string
	Quality       int
	AudioPath     string
}

// FFmpegEncoder передает raw RGBA кадры в ffmpeg через stdin.
type FFmpegEncoder struct {
	params Params
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	log    bytes.Buffer
	frames int
}

func NewFFmpegEncoder(ctx context.Context, videoPath string, params Params) (*FFmpegEncoder, error) {
	if params.Encoder == "" {
		params.Encoder = "libx264"
	}
	if params.Quality == 0 {
		params.Quality = DefaultQuality(params.Encoder)
	}
	e := &FFmpegEncoder{params: params}
	e.cmd = exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(videoPath, params)...)
	e.cmd.Stdout = &e.log
	e.cmd.Stderr = &e.log

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return e, nil
}

func buildFFmpegArgs(videoPath string, params Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	if params.AudioPath != "" {
		args = append(args, "-i", params.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}
	args = append(args,
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", params.Encoder,
	)

	// Качество в зависимости от энкодера
	switch params.Encoder {
	case "h264_videotoolbox":
		// VideoToolbox не везде поддерживает -q:v. Используем битрейт: 75 -> 7.5 Мбит/с
		args = append(args, "-b:v", fmt.Sprintf("%dk", params.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	return append(args, videoPath)
}

// DefaultQuality подбирает качество под энкодер, когда оно не задано.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

func (e *FFmpegEncoder) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != e.params.Width || b.Dy() != e.params.Height {
		return fmt.Errorf("кадр %d: размер %dx%d, ожидается %dx%d", e.frames, b.Dx(), b.Dy(), e.params.Width, e.params.Height)
	}
	if err := writeRawRGBA(e.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	e.frames++
	return nil
}

// Frames возвращает число записанных кадров.
func (e *FFmpegEncoder) Frames() int {
	return e.frames
}

func (e *FFmpegEncoder) Close() error {
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, e.log.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// Буфер с нестандартным шагом (stride) или смещением копируем
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// PNGSequence пишет кадры в папку как frame_00000.png, frame_00001.png, ...
type PNGSequence struct {
	dir    string
	frames int
	enc    png.Encoder
}

func NewPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSequence{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

// FramePath возвращает путь кадра i.
func (s *PNGSequence) FramePath(i int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%05d.png", i))
}

func (s *PNGSequence) WriteFrame(img image.Image) error {
	f, err := os.Create(s.FramePath(s.frames))
	if err != nil {
		return err
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("кадр %d: %w", s.frames, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.frames++
	return nil
}

func (s *PNGSequence) Frames() int {
	return s.frames
}

func (s *PNGSequence) Close() error {
	return nil
}
