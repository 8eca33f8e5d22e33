package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Canvas is a page-oriented drawing surface. Coordinates are in points with
// the origin at the bottom-left corner of the current page.
type Canvas interface {
	PageSize() (width, height float64)
	SetFont(bold bool, size float64)
	// SetColor takes a #RRGGBB colour
	SetColor(hex string)
	DrawString(x, y float64, text string)
	DrawCentredString(x, y float64, text string)
	NewPage()
	// Bytes finishes the document. Drawing errors are reported here.
	Bytes() ([]byte, error)
}

const fontFamily = "Helvetica"

// PDFCanvas draws on a US Letter PDF document
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	width     float64
	height    float64
}

func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", 12)
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	return &PDFCanvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		width:     width,
		height:    height,
	}
}

func (c *PDFCanvas) PageSize() (float64, float64) {
	return c.width, c.height
}

func (c *PDFCanvas) SetFont(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *PDFCanvas) SetColor(hex string) {
	r, g, b, err := parseHexColor(hex)
	if err != nil {
		c.pdf.SetError(err)
		return
	}
	c.pdf.SetTextColor(r, g, b)
}

func (c *PDFCanvas) DrawString(x, y float64, text string) {
	c.pdf.Text(x, c.height-y, c.translate(text))
}

func (c *PDFCanvas) DrawCentredString(x, y float64, text string) {
	encoded := c.translate(text)
	c.pdf.Text(x-c.pdf.GetStringWidth(encoded)/2, c.height-y, encoded)
}

func (c *PDFCanvas) NewPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

func (c *PDFCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseHexColor(hex string) (r, g, b int, err error) {
	value := strings.TrimPrefix(hex, "#")
	if len(value) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid colour %q", hex)
	}
	rgb, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid colour %q", hex)
	}
	return int(rgb >> 16 & 0xff), int(rgb >> 8 & 0xff), int(rgb & 0xff), nil
}
