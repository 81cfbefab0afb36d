package analyzer

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// ContrastDetector finds blocks by Sobel edge detection followed by
// dilation and connected components.
type ContrastDetector struct {
	MinBlockArea  int     // pixels²
	EdgeThreshold float64 // gradient magnitude
	Radius        int     // dilation radius joining nearby edges
	MaxCoverage   float64 // blocks covering more of the page are frames, not content
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,
		EdgeThreshold: 30,
		Radius:        4,
		MaxCoverage:   0.9,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("analyzer: empty image")
	}
	w, h := b.Dx(), b.Dy()

	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)

	edges := sobel(gray, d.EdgeThreshold)
	mask := dilate(edges, w, h, d.Radius)
	rects := mergeOverlapping(components(mask, w, h))

	total := float64(w * h)
	var blocks []Block
	for _, r := range rects {
		area := r.Dx() * r.Dy()
		if area < d.MinBlockArea || float64(area) > d.MaxCoverage*total {
			continue
		}
		blocks = append(blocks, Block{
			Rect:       r.Add(b.Min),
			Confidence: density(edges, w, r),
		})
	}
	return blocks, nil
}

// sobel marks pixels whose gradient magnitude exceeds threshold. The
// one-pixel border is never marked.
func sobel(g *image.Gray, threshold float64) []bool {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := make([]bool, w*h)
	at := func(x, y int) int { return int(g.Pix[y*g.Stride+x]) }
	limit := threshold * threshold
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			if float64(gx*gx+gy*gy) > limit {
				out[y*w+x] = true
			}
		}
	}
	return out
}

// dilate grows the mask by a square of radius r, one axis at a time.
func dilate(mask []bool, w, h, r int) []bool {
	if r <= 0 {
		return mask
	}
	tmp := make([]bool, len(mask))
	for y := 0; y < h; y++ {
		spread(mask[y*w:(y+1)*w], tmp[y*w:(y+1)*w], r)
	}
	out := make([]bool, len(mask))
	col := make([]bool, h)
	res := make([]bool, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp[y*w+x]
		}
		spread(col, res, r)
		for y := 0; y < h; y++ {
			out[y*w+x] = res[y]
		}
	}
	return out
}

// spread sets dst[i] when any src within r of i is set.
func spread(src, dst []bool, r int) {
	last := -r - 1
	for i := range src {
		if src[i] {
			last = i
		}
		dst[i] = i-last <= r
	}
	last = len(src) + r + 1
	for i := len(src) - 1; i >= 0; i-- {
		if src[i] {
			last = i
		}
		if last-i <= r {
			dst[i] = true
		}
	}
}

// components returns the bounding box of every 4-connected set region.
func components(mask []bool, w, h int) []image.Rectangle {
	visited := make([]bool, len(mask))
	var rects []image.Rectangle
	var stack []int
	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}
		r := image.Rect(start%w, start/w, start%w+1, start/w+1)
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			r = r.Union(image.Rect(x, y, x+1, y+1))

			for _, n := range [4]int{i - 1, i + 1, i - w, i + w} {
				switch {
				case n < 0 || n >= len(mask):
					continue
				case (n == i-1 && x == 0) || (n == i+1 && x == w-1):
					continue
				case !mask[n] || visited[n]:
					continue
				}
				visited[n] = true
				stack = append(stack, n)
			}
		}
		rects = append(rects, r)
	}
	return rects
}

// mergeOverlapping unions rectangles until none overlap.
func mergeOverlapping(rects []image.Rectangle) []image.Rectangle {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(rects) && !merged; i++ {
			for j := i + 1; j < len(rects); j++ {
				if rects[i].Overlaps(rects[j]) {
					rects[i] = rects[i].Union(rects[j])
					rects = append(rects[:j], rects[j+1:]...)
					merged = true
					break
				}
			}
		}
	}
	return rects
}

func density(edges []bool, w int, r image.Rectangle) float64 {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if edges[y*w+x] {
				n++
			}
		}
	}
	return float64(n) / float64(r.Dx()*r.Dy())
}
