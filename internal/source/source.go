package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/skip2/go-qrcode"
)

// Source is a paged visual asset.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= f.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1,%d]", index+1, f.doc.NumPage())
	}
	return f.doc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// QRSource renders text as a single QR code page.
type QRSource struct {
	code *qrcode.QRCode
	size int
}

// QRSize is the side of a rendered QR code in pixels.
const QRSize = 256

func NewQRSource(text string) (*QRSource, error) {
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return &QRSource{code: code, size: QRSize}, nil
}

func (q *QRSource) PageCount() int {
	return 1
}

func (q *QRSource) GetPageDimensions(int) (float64, float64, error) {
	return float64(q.size), float64(q.size), nil
}

func (q *QRSource) RenderPage(index int, _ int) (image.Image, error) {
	if index != 0 {
		return nil, fmt.Errorf("qr code has a single page, got %d", index+1)
	}
	return q.code.Image(q.size), nil
}

func (q *QRSource) Close() error {
	return nil
}
