package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slideanim/internal/schema"
)

// RefKind tells how an image reference is resolved.
type RefKind int

const (
	RefFile RefKind = iota
	RefPDF
	RefQR
)

// Ref is a parsed image element source: a raster file, a PDF page written
// as "file.pdf#page" (1-based, page 1 when omitted) or "qr:<text>".
type Ref struct {
	Kind RefKind
	Path string
	Page int
	Text string
}

// ParseRef parses an image element src.
func ParseRef(src string) (Ref, error) {
	if src == "" {
		return Ref{}, fmt.Errorf("empty image source")
	}
	if text, ok := strings.CutPrefix(src, "qr:"); ok {
		if text == "" {
			return Ref{}, fmt.Errorf("empty qr text in %q", src)
		}
		return Ref{Kind: RefQR, Text: text}, nil
	}
	path, frag, hasFrag := strings.Cut(src, "#")
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		page := 1
		if hasFrag {
			n, err := strconv.Atoi(frag)
			if err != nil || n < 1 {
				return Ref{}, fmt.Errorf("invalid pdf page %q in %q", frag, src)
			}
			page = n
		}
		return Ref{Kind: RefPDF, Path: path, Page: page}, nil
	}
	if hasFrag {
		return Ref{}, fmt.Errorf("page fragment is only supported for pdf files: %q", src)
	}
	if !IsImageFile(path) {
		return Ref{}, fmt.Errorf("unsupported image format: %q", src)
	}
	return Ref{Kind: RefFile, Path: path}, nil
}

// Open returns the source behind ref. Relative paths resolve against dir.
func Open(ref Ref, dir string) (Source, error) {
	path := ref.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	switch ref.Kind {
	case RefQR:
		return NewQRSource(ref.Text)
	case RefPDF:
		return NewFitzPDFSource(path)
	default:
		return NewImageSource(path)
	}
}

// Store loads and caches the images referenced by image elements. It is
// safe for concurrent use.
type Store struct {
	dir string
	dpi int

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewStore resolves relative paths against dir and renders PDF pages at dpi.
func NewStore(dir string, dpi int) *Store {
	if dpi <= 0 {
		dpi = 150
	}
	return &Store{dir: dir, dpi: dpi, images: make(map[string]image.Image)}
}

// Image returns a loaded image.
func (s *Store) Image(src string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[src]
	return img, ok
}

// Len returns the number of cached images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Load resolves src and caches the result.
func (s *Store) Load(src string) (image.Image, error) {
	if img, ok := s.Image(src); ok {
		return img, nil
	}
	ref, err := ParseRef(src)
	if err != nil {
		return nil, err
	}
	doc, err := Open(ref, s.dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer doc.Close()

	index := 0
	if ref.Kind == RefPDF {
		index = ref.Page - 1
	}
	if index >= doc.PageCount() {
		return nil, fmt.Errorf("%s: page %d out of range [1,%d]", src, index+1, doc.PageCount())
	}
	img, err := doc.RenderPage(index, s.dpi)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", src, err)
	}

	s.mu.Lock()
	s.images[src] = img
	s.mu.Unlock()
	return img, nil
}

// Sources lists the distinct image sources used by p in order of first use.
func Sources(p *schema.Presentation) []string {
	var out []string
	seen := make(map[string]bool)
	for _, step := range p.Steps {
		for _, el := range step.Elements {
			img, ok := el.(*schema.Image)
			if !ok || seen[img.Src] {
				continue
			}
			seen[img.Src] = true
			out = append(out, img.Src)
		}
	}
	return out
}

// Preload loads every image of p with up to workers concurrent loads.
func (s *Store) Preload(p *schema.Presentation, workers int) error {
	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, src := range Sources(p) {
		src := src
		g.Go(func() error {
			_, err := s.Load(src)
			return err
		})
	}
	return g.Wait()
}

// PageRefs lists an image element src for every page of the PDF, image or
// image directory at path, relative to dir.
func PageRefs(path, dir string) ([]string, error) {
	rel := func(p string) string {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if absDir, err := filepath.Abs(dir); err == nil {
			if r, err := filepath.Rel(absDir, p); err == nil {
				p = r
			}
		}
		return filepath.ToSlash(p)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		doc, err := NewFitzPDFSource(path)
		if err != nil {
			return nil, err
		}
		defer doc.Close()
		refs := make([]string, doc.PageCount())
		for i := range refs {
			refs[i] = fmt.Sprintf("%s#%d", rel(path), i+1)
		}
		return refs, nil
	}

	images, err := NewImageSource(path)
	if err != nil {
		return nil, err
	}
	refs := make([]string, len(images.paths))
	for i, p := range images.paths {
		refs[i] = rel(p)
	}
	return refs, nil
}
