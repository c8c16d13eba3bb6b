package layout

import (
	"strconv"

	"github.com/jaguilar992/exam-generator/pdf"
)

// Question column geometry.
const (
	columnGap    = 0.7 * cmPt
	optionIndent = 0.3 * cmPt
	blockPad     = 0.15 * cmPt
	blockPadTop  = 3.0
	blockGap     = 0.3 * cmPt
	questionSize = 10.0
)

const columnWidth = (contentWidth - columnGap) / 2

// placedBlock is one question measured and pinned to a page, column,
// and vertical position. A block never splits across a boundary.
type placedBlock struct {
	page int
	col  int
	y    float64 // top edge

	num           int
	questionLines []string
	optionLines   [][]string // wrapped lines per presented option
	correctSlot   int        // ticked on the answer key, -1 otherwise
}

func (b placedBlock) lineCount() int {
	n := len(b.questionLines)
	for _, opt := range b.optionLines {
		n += len(opt)
	}
	return n
}

func (b placedBlock) height() float64 {
	return blockPadTop + float64(b.lineCount())*lineHeight + blockPad
}

// buildBlock wraps one question into column-width lines. The number
// prefix hangs to the left of the question text; options wrap within
// their indent so long options reserve their full height.
func (e *Engine) buildBlock(num int) placedBlock {
	b := placedBlock{num: num, correctSlot: -1}
	result := e.results[num-1]
	if e.artifact == AnswerKey {
		b.correctSlot = result.CorrectSlot()
	}

	numWidth := pdf.TextWidth(strconv.Itoa(num)+". ", pdf.HelveticaBold, questionSize)
	textWidth := columnWidth - 2*blockPad - numWidth
	b.questionLines = pdf.WrapText(e.questions[num-1].Text, pdf.Helvetica, questionSize, textWidth)

	optWidth := columnWidth - 2*blockPad - optionIndent
	b.optionLines = make([][]string, len(result.Presented))
	for i, opt := range result.Presented {
		prefixed := string(rune('A'+i)) + ") " + opt
		font := pdf.Helvetica
		if i == b.correctSlot {
			font = pdf.HelveticaBold
		}
		b.optionLines[i] = pdf.WrapText(prefixed, font, questionSize, optWidth)
	}
	return b
}

func (e *Engine) firstQuestionTop() float64 {
	return pageHeight - margin - e.headerHeight - e.gridHeight
}

func (e *Engine) pageTop(page int) float64 {
	if page == 0 {
		return e.firstQuestionTop()
	}
	return pageHeight - margin
}

// placeQuestions assigns every block whole to a column and page in
// reading-flow order: fill the left column, then the right, then the
// next page.
func (e *Engine) placeQuestions() []placedBlock {
	blocks := make([]placedBlock, 0, len(e.results))

	page, col := 0, 0
	y := e.pageTop(0)

	for num := 1; num <= len(e.results); num++ {
		b := e.buildBlock(num)
		h := b.height()

		// A block that would cross the bottom moves whole to the next
		// column or page. Page one's shortened columns never hold a
		// block that doesn't fit; on full-height pages an oversized
		// block stops at a fresh column.
		for y-h < margin && (y < e.pageTop(page) || page == 0) {
			col++
			if col >= 2 {
				col = 0
				page++
			}
			y = e.pageTop(page)
		}

		b.page, b.col, b.y = page, col, y
		blocks = append(blocks, b)
		y -= h + blockGap
	}
	return blocks
}

// drawQuestionBlocks renders the blocks assigned to pageNum.
func (e *Engine) drawQuestionBlocks(page *pdf.Page, pageNum int) {
	cs := page.Content()
	regular := page.AddFont(pdf.Helvetica)
	bold := page.AddFont(pdf.HelveticaBold)
	var dingbats string
	if e.artifact == AnswerKey {
		dingbats = page.AddFont(pdf.ZapfDingbats)
	}

	for _, b := range e.blocks {
		if b.page != pageNum {
			continue
		}

		x := margin + float64(b.col)*(columnWidth+columnGap)

		// Separator above the block, like the printed originals.
		cs.SetLineWidth(0.5).SetStrokeColorGray(0.5).
			MoveTo(x, b.y).LineTo(x+columnWidth, b.y).Stroke()

		y := b.y - blockPadTop - questionSize

		// Hanging bold number, then the wrapped question text.
		numText := strconv.Itoa(b.num) + ". "
		e.drawText(cs, bold, questionSize, x+blockPad, y, numText)
		numWidth := pdf.TextWidth(numText, pdf.HelveticaBold, questionSize)
		for _, line := range b.questionLines {
			e.drawText(cs, regular, questionSize, x+blockPad+numWidth, y, line)
			y -= lineHeight
		}

		for i, lines := range b.optionLines {
			fontRes, font := regular, pdf.Helvetica
			if i == b.correctSlot {
				fontRes, font = bold, pdf.HelveticaBold
			}
			for j, line := range lines {
				lx := x + blockPad + optionIndent
				e.drawText(cs, fontRes, questionSize, lx, y, line)
				if i == b.correctSlot && j == len(lines)-1 {
					// Tick after the option's last line.
					tickX := lx + pdf.TextWidth(line, font, questionSize) + 4
					e.drawText(cs, dingbats, questionSize, tickX, y, pdf.Checkmark)
				}
				y -= lineHeight
			}
		}
	}
}
