package layout

import (
	"strconv"

	"github.com/jaguilar992/exam-generator/pdf"
	"github.com/jaguilar992/exam-generator/types"
)

// Bubble grid geometry. The column pitch is fixed from the maximum
// option count; translated labels never move a bubble.
const (
	gridCols     = 5
	bubblePitch  = 0.5 * cmPt
	bubbleSize   = 0.45 * cmPt
	numberWidth  = 0.6 * cmPt
	gridRowH     = 0.6 * cmPt
	letterRowH   = 10.0
	markerSize   = 0.2 * cmPt // 2mm scan-position marker
	gridTitleH   = 16.0
	gridGapAfter = 8.0
)

const cellWidth = contentWidth / gridCols

func (e *Engine) gridRows() int {
	rows := (len(e.results) + gridCols - 1) / gridCols
	// The sheet always prints the full 5x5 block so scanners see a
	// stable frame.
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (e *Engine) measureGrid() float64 {
	return gridTitleH + letterRowH + float64(e.gridRows())*gridRowH + gridGapAfter
}

// maxGridQuestions returns how many questions the single-page grid can
// hold below this engine's header before it would cross the bottom
// margin.
func (e *Engine) maxGridQuestions() int {
	avail := pageHeight - 2*margin - e.headerHeight - gridTitleH - letterRowH - gridGapAfter
	rows := int(avail / gridRowH)
	if rows < 0 {
		rows = 0
	}
	return rows * gridCols
}

// drawBubbleGrid renders the answer-sheet grid with its top edge at
// topY: title, letter guides, one numbered bubble row per question,
// and a scan marker in every cell corner. On the answer key, correct
// bubbles are filled.
func (e *Engine) drawBubbleGrid(cs *pdf.ContentStream, topY float64) {
	bold := pdf.HelveticaBold.Resource()

	title := e.strings.AnswerSheetTitle
	if e.artifact == AnswerKey {
		title = e.strings.AnswerKeyBanner
	}
	e.drawCentered(cs, bold, pdf.HelveticaBold, 11, pageWidth/2, topY-11, title)

	rows := e.gridRows()
	gridTop := topY - gridTitleH - letterRowH
	gridBottom := gridTop - float64(rows)*gridRowH

	// Letter guides above the first row of cells.
	for col := 0; col < gridCols; col++ {
		x0 := margin + float64(col)*cellWidth
		for i := 0; i < types.MaxOptions; i++ {
			cx := x0 + numberWidth + (float64(i)+0.5)*bubblePitch
			letter := string(types.OptionLetter(i))
			e.drawCentered(cs, bold, pdf.HelveticaBold, 8, cx, gridTop+2, letter)
		}
	}

	// Grid frame and inner lines.
	cs.SetLineWidth(0.5).SetStrokeColorGray(0.5)
	cs.Rectangle(margin, gridBottom, contentWidth, float64(rows)*gridRowH)
	for col := 1; col < gridCols; col++ {
		x := margin + float64(col)*cellWidth
		cs.MoveTo(x, gridBottom).LineTo(x, gridTop)
	}
	for row := 1; row < rows; row++ {
		y := gridTop - float64(row)*gridRowH
		cs.MoveTo(margin, y).LineTo(margin+contentWidth, y)
	}
	cs.Stroke()

	// Cells: question bubbles where a question exists, scan markers
	// everywhere.
	for row := 0; row < rows; row++ {
		for col := 0; col < gridCols; col++ {
			x0 := margin + float64(col)*cellWidth
			cellTop := gridTop - float64(row)*gridRowH
			cy := cellTop - gridRowH/2

			questionNum := row*gridCols + col + 1
			if questionNum <= len(e.results) {
				e.drawBubbleRow(cs, bold, x0, cy, questionNum)
			}

			// 2mm black square in the bottom-right corner for scan
			// alignment.
			cs.SetFillColorGray(0).
				Rectangle(x0+cellWidth-markerSize, cellTop-gridRowH, markerSize, markerSize).
				Fill()
		}
	}
}

// drawBubbleRow renders one question's number and its four bubbles.
func (e *Engine) drawBubbleRow(cs *pdf.ContentStream, boldRes string, x0, cy float64, questionNum int) {
	label := strconv.Itoa(questionNum) + "."
	e.drawText(cs, boldRes, 9, x0+2, cy-3, label)

	result := e.results[questionNum-1]
	correctSlot := -1
	if e.artifact == AnswerKey {
		correctSlot = result.CorrectSlot()
	}

	radius := bubbleSize/2 - 2
	for i := 0; i < types.MaxOptions; i++ {
		cx := x0 + numberWidth + (float64(i)+0.5)*bubblePitch
		cs.SetLineWidth(1).SetStrokeColorGray(0)
		if i == correctSlot {
			cs.SetFillColorGray(0).Circle(cx, cy, radius).FillStroke()
		} else {
			cs.Circle(cx, cy, radius).Stroke()
		}
	}
}
