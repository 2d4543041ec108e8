package tail

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextMetrics measures label text in screen pixels.
type TextMetrics interface {
	TextWidth(s string) float64
	TextHeight() float64
}

// FontMetrics measures text with a font face.
type FontMetrics struct {
	Face font.Face
}

// DefaultMetrics measures with the 7x13 fixed bitmap font.
func DefaultMetrics() FontMetrics {
	return FontMetrics{Face: basicfont.Face7x13}
}

func (m FontMetrics) TextWidth(s string) float64 {
	return float64(font.MeasureString(m.Face, s)) / 64
}

func (m FontMetrics) TextHeight() float64 {
	return float64(m.Face.Metrics().Height) / 64
}

var printer = message.NewPrinter(language.English)

// FormatLength formats a tail length with thousands separators.
func FormatLength(n int) string {
	return printer.Sprintf("%d", n)
}
