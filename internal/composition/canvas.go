package composition

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/phpdave11/gofpdf"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 20.0
	lineHeight   = 5.0
	fontFamily   = "Helvetica"
)

// canvas wraps a gofpdf document with the page geometry and the UTF-8 to cp1252
// translator used by the core fonts.
type canvas struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	left  float64
	width float64
	pageH float64
}

func newCanvas(compress bool) *canvas {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCompression(compress)
	w, h := pdf.GetPageSize()
	return &canvas{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		left:  marginLeft,
		width: w - marginLeft - marginRight,
		pageH: h,
	}
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

// ensureSpace starts a new page when h millimetres do not fit above the bottom margin.
func (c *canvas) ensureSpace(h float64) bool {
	if c.pdf.GetY()+h > c.pageH-marginBottom {
		c.pdf.AddPage()
		return true
	}
	return false
}

// fit truncates s with an ellipsis so that it fits a cell of width w.
func (c *canvas) fit(s string, w float64) string {
	s = c.tr(s)
	limit := w - 2
	if c.pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && c.pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func (c *canvas) cell(w, h float64, s string, ln int, align string) {
	c.pdf.CellFormat(w, h, c.fit(s, w), "", ln, align, false, 0, "")
}

func (c *canvas) paragraph(s string, h float64) {
	c.pdf.MultiCell(0, h, c.tr(s), "", "L", false)
}

func (c *canvas) heading(s string) {
	c.ensureSpace(14)
	c.font("B", 11)
	c.pdf.CellFormat(0, 7, c.tr(s), "", 1, "L", false, 0, "")
}

func (c *canvas) rule() {
	y := c.pdf.GetY()
	c.pdf.SetDrawColor(200, 200, 200)
	c.pdf.Line(c.left, y, c.left+c.width, y)
	c.pdf.Ln(3)
}

// registerImage registers an image and reports failure instead of poisoning the document.
func (c *canvas) registerImage(name, imageType string, data []byte) *gofpdf.ImageInfoType {
	info := c.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if c.pdf.Err() || info == nil {
		c.pdf.ClearError()
		return nil
	}
	return info
}

func (c *canvas) placeImage(name, imageType string, x, y, w, h float64) {
	c.pdf.ImageOptions(name, x, y, w, h, false, gofpdf.ImageOptions{ImageType: imageType}, 0, "")
}

// sniffImageType maps decodable image bytes to the gofpdf image type.
func sniffImageType(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	switch format {
	case "png":
		return "PNG", true
	case "jpeg":
		return "JPG", true
	case "gif":
		return "GIF", true
	}
	return "", false
}

// decodeDataURL accepts "data:image/...;base64,<payload>" or bare base64.
func decodeDataURL(s string) ([]byte, bool) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		meta, rest, ok := strings.Cut(s, ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, false
		}
		payload = rest
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, false
	}
	return data, true
}

// fitBox scales (w, h) to fit inside (maxW, maxH) keeping the aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := min(maxW/w, maxH/h)
	return w * scale, h * scale
}
