package pdf

import (
	"bytes"
	"fmt"
)

// ContentStream builds PDF page content streams with a fluent API.
type ContentStream struct {
	buf bytes.Buffer
}

// NewContentStream creates a new content stream builder.
func NewContentStream() *ContentStream {
	return &ContentStream{}
}

// Bytes returns the content stream data.
func (cs *ContentStream) Bytes() []byte {
	return cs.buf.Bytes()
}

// String returns the content stream as a string.
func (cs *ContentStream) String() string {
	return cs.buf.String()
}

// --- Graphics State Operations ---

// SaveState saves the current graphics state (q operator)
func (cs *ContentStream) SaveState() *ContentStream {
	cs.buf.WriteString("q\n")
	return cs
}

// RestoreState restores the previous graphics state (Q operator)
func (cs *ContentStream) RestoreState() *ContentStream {
	cs.buf.WriteString("Q\n")
	return cs
}

// SetMatrix sets the current transformation matrix (cm operator)
func (cs *ContentStream) SetMatrix(a, b, c, d, e, f float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f %.4f %.4f %.4f %.4f cm\n", a, b, c, d, e, f))
	return cs
}

// --- Color Operations ---

// SetFillColorRGB sets the fill color (rg operator)
func (cs *ContentStream) SetFillColorRGB(r, g, b float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f %.4f rg\n", r, g, b))
	return cs
}

// SetStrokeColorRGB sets the stroke color (RG operator)
func (cs *ContentStream) SetStrokeColorRGB(r, g, b float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f %.4f RG\n", r, g, b))
	return cs
}

// SetFillColorGray sets the fill color to grayscale (g operator)
func (cs *ContentStream) SetFillColorGray(gray float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f g\n", gray))
	return cs
}

// SetStrokeColorGray sets the stroke color to grayscale (G operator)
func (cs *ContentStream) SetStrokeColorGray(gray float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f G\n", gray))
	return cs
}

// --- Path Operations ---

// MoveTo starts a new subpath (m operator)
func (cs *ContentStream) MoveTo(x, y float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f m\n", x, y))
	return cs
}

// LineTo appends a line segment (l operator)
func (cs *ContentStream) LineTo(x, y float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f l\n", x, y))
	return cs
}

// CurveTo appends a cubic Bézier segment (c operator)
func (cs *ContentStream) CurveTo(x1, y1, x2, y2, x3, y3 float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f %.4f %.4f %.4f %.4f c\n", x1, y1, x2, y2, x3, y3))
	return cs
}

// Rectangle appends a rectangle (re operator)
func (cs *ContentStream) Rectangle(x, y, width, height float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f %.4f %.4f re\n", x, y, width, height))
	return cs
}

// circleKappa is the Bézier control-point factor approximating a
// quarter circle.
const circleKappa = 0.5523

// Circle appends a circle centered at (cx, cy) from four Bézier arcs.
func (cs *ContentStream) Circle(cx, cy, r float64) *ContentStream {
	k := circleKappa * r
	cs.MoveTo(cx+r, cy)
	cs.CurveTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	cs.CurveTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	cs.CurveTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	cs.CurveTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	return cs
}

// Stroke strokes the current path (S operator)
func (cs *ContentStream) Stroke() *ContentStream {
	cs.buf.WriteString("S\n")
	return cs
}

// Fill fills the current path (f operator)
func (cs *ContentStream) Fill() *ContentStream {
	cs.buf.WriteString("f\n")
	return cs
}

// FillStroke fills and strokes the current path (B operator)
func (cs *ContentStream) FillStroke() *ContentStream {
	cs.buf.WriteString("B\n")
	return cs
}

// ClosePath closes the current subpath (h operator)
func (cs *ContentStream) ClosePath() *ContentStream {
	cs.buf.WriteString("h\n")
	return cs
}

// SetLineWidth sets the line width (w operator)
func (cs *ContentStream) SetLineWidth(width float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f w\n", width))
	return cs
}

// --- Text Operations ---

// BeginText starts a text object (BT operator)
func (cs *ContentStream) BeginText() *ContentStream {
	cs.buf.WriteString("BT\n")
	return cs
}

// EndText ends a text object (ET operator)
func (cs *ContentStream) EndText() *ContentStream {
	cs.buf.WriteString("ET\n")
	return cs
}

// SetFont sets the font and size (Tf operator).
// fontName should be a resource name like "/F1".
func (cs *ContentStream) SetFont(fontName string, size float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%s %.4f Tf\n", fontName, size))
	return cs
}

// SetTextPosition sets the text position (Td operator)
func (cs *ContentStream) SetTextPosition(x, y float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f %.4f Td\n", x, y))
	return cs
}

// SetTextLeading sets the text leading (TL operator)
func (cs *ContentStream) SetTextLeading(leading float64) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%.4f TL\n", leading))
	return cs
}

// NextLine moves to the next line (T* operator)
func (cs *ContentStream) NextLine() *ContentStream {
	cs.buf.WriteString("T*\n")
	return cs
}

// ShowText displays a string (Tj operator). Text is re-encoded to
// WinAnsi so accented sheet strings render through the standard fonts.
func (cs *ContentStream) ShowText(text string) *ContentStream {
	cs.buf.WriteString("(")
	cs.buf.Write(encodePDFString(text))
	cs.buf.WriteString(") Tj\n")
	return cs
}

// --- Image Operations ---

// DrawImage draws an image XObject (Do operator). The image unit
// square maps through the current matrix.
func (cs *ContentStream) DrawImage(imageName string) *ContentStream {
	cs.buf.WriteString(fmt.Sprintf("%s Do\n", imageName))
	return cs
}

// DrawImageAt draws an image at a specific position and size.
func (cs *ContentStream) DrawImageAt(imageName string, x, y, width, height float64) *ContentStream {
	cs.SaveState()
	cs.SetMatrix(width, 0, 0, height, x, y)
	cs.DrawImage(imageName)
	cs.RestoreState()
	return cs
}

// --- Raw Operations ---

// Raw writes raw content stream data.
func (cs *ContentStream) Raw(data string) *ContentStream {
	cs.buf.WriteString(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		cs.buf.WriteByte('\n')
	}
	return cs
}

// encodePDFString converts text to a WinAnsi-encoded, escaped PDF
// string body. WinAnsi matches Latin-1 over the accented range the
// Spanish sheet strings use; anything outside it degrades to '?'.
func encodePDFString(s string) []byte {
	var result bytes.Buffer
	for _, c := range s {
		switch c {
		case '(':
			result.WriteString("\\(")
		case ')':
			result.WriteString("\\)")
		case '\\':
			result.WriteString("\\\\")
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		default:
			if c < 0x80 {
				result.WriteByte(byte(c))
			} else if c <= 0xFF {
				result.WriteString(fmt.Sprintf("\\%03o", c))
			} else {
				result.WriteByte('?')
			}
		}
	}
	return result.Bytes()
}
