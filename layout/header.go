package layout

import (
	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/pdf"
)

// Header geometry, in points. Logo and QR print at 0.6in, the grade
// box at 0.8in, matching the scannable sheet design.
const (
	logoSize     = 0.6 * 72
	gradeBoxSize = 0.8 * 72

	infoFontSize  = 10
	infoRowHeight = 13
	lineHeight    = 11

	headerGap = 4
)

// measureHeader returns the total header height so question placement
// can start below it. The header is deterministic for a given config.
func (e *Engine) measureHeader() float64 {
	instr := pdf.WrapText(e.strings.Instructions(), pdf.Helvetica, infoFontSize, contentWidth)
	return gradeBoxSize + headerGap +
		3*infoRowHeight + headerGap +
		float64(len(instr))*lineHeight + 6
}

// drawHeader renders the logo/QR/grade-box band, institution lines,
// the info table, and the instructions onto the page.
func (e *Engine) drawHeader(page *pdf.Page, logo, qr *pdf.ImageInfo) {
	cs := page.Content()
	regular := page.AddFont(pdf.Helvetica)
	bold := page.AddFont(pdf.HelveticaBold)

	top := pageHeight - margin

	// Top band: logo left, QR beside it on the key, grade box right.
	logoRes := page.AddImage(logo)
	cs.DrawImageAt(logoRes, margin, top-logoSize, logoSize, logoSize)

	if qr != nil {
		qrRes := page.AddImage(qr)
		cs.DrawImageAt(qrRes, margin+logoSize+0.2*cmPt, top-logoSize, logoSize, logoSize)
	}

	gradeX := pageWidth - margin - gradeBoxSize
	cs.SetLineWidth(1).
		SetStrokeColorGray(0).
		Rectangle(gradeX, top-gradeBoxSize, gradeBoxSize, gradeBoxSize).
		Stroke()
	e.drawCentered(cs, regular, pdf.Helvetica, 8,
		gradeX+gradeBoxSize/2, top-gradeBoxSize+4, e.strings.GradeLabel)

	// Institution lines, centered between logo and grade box.
	e.drawCentered(cs, bold, pdf.HelveticaBold, infoFontSize,
		pageWidth/2, top-18, e.cfg.Institution)
	e.drawCentered(cs, regular, pdf.Helvetica, infoFontSize,
		pageWidth/2, top-32, e.cfg.Course)

	// Info table: three columns of exam metadata.
	y := top - gradeBoxSize - headerGap - infoFontSize
	colWidth := contentWidth / 3
	for row, cells := range e.infoRows() {
		for col, text := range cells {
			if text == "" {
				continue
			}
			e.drawText(cs, regular, infoFontSize, margin+float64(col)*colWidth, y-float64(row)*infoRowHeight, text)
		}
	}

	// Instructions, wrapped to the full content width.
	y -= 2*infoRowHeight + headerGap + lineHeight
	for i, line := range pdf.WrapText(e.strings.Instructions(), pdf.Helvetica, infoFontSize, contentWidth) {
		e.drawText(cs, regular, infoFontSize, margin, y-float64(i)*lineHeight, line)
	}
}

// infoRows assembles the 3x3 info table cells from the configuration,
// falling back to fill-in blanks for fields left unset.
func (e *Engine) infoRows() [3][3]string {
	s := e.strings

	student := s.StudentBlank
	if e.cfg.Student != "" {
		student = config.LabelWithColon(s.StudentLabel) + " " + e.cfg.Student
	}
	section := s.SectionBlank
	if e.cfg.Section != "" {
		section = config.LabelWithColon(s.CourseLabel) + " " + e.cfg.Section
	}

	return [3][3]string{
		{
			config.LabelWithColon(s.SubjectLabel) + " " + e.cfg.Subject,
			config.LabelWithColon(s.ProfessorLabel) + " " + e.cfg.Professor,
			s.DateBlank,
		},
		{student, "", s.ListNumBlank},
		{section, e.cfg.ExamPeriod, s.PointsText(e.cfg.TotalPoints)},
	}
}

func (e *Engine) drawText(cs *pdf.ContentStream, fontRes string, size, x, y float64, text string) {
	cs.BeginText().
		SetFont(fontRes, size).
		SetTextPosition(x, y).
		ShowText(text).
		EndText()
}

func (e *Engine) drawCentered(cs *pdf.ContentStream, fontRes string, font pdf.Font, size, cx, y float64, text string) {
	x := cx - pdf.TextWidth(text, font, size)/2
	e.drawText(cs, fontRes, size, x, y, text)
}
