// Package layout composes the printable exam artifacts: the student
// exam with its bubble answer sheet, and the password-protected answer
// key. One engine lays out one artifact; the two artifacts for an exam
// share nothing but the immutable shuffle results they are given.
package layout

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/pdf"
	"github.com/jaguilar992/exam-generator/types"
)

// Artifact selects which document an engine produces.
type Artifact int

const (
	StudentExam Artifact = iota
	AnswerKey
)

func (a Artifact) String() string {
	if a == AnswerKey {
		return "answer key"
	}
	return "student exam"
}

// State tracks generation progress. Transitions run strictly forward;
// an engine is single-use.
type State int

const (
	NotStarted State = iota
	QuestionsLaidOut
	AnswerSheetLaidOut
	Finalized
)

func (s State) String() string {
	switch s {
	case QuestionsLaidOut:
		return "QUESTIONS_LAID_OUT"
	case AnswerSheetLaidOut:
		return "ANSWER_SHEET_LAID_OUT"
	case Finalized:
		return "FINALIZED"
	default:
		return "NOT_STARTED"
	}
}

// Page geometry in points. Letter paper with the narrow margin the
// sheets are designed around.
const (
	cmPt       = 28.3465
	pageWidth  = 612.0
	pageHeight = 792.0
	margin     = 0.7 * cmPt
)

const contentWidth = pageWidth - 2*margin

// Engine lays out one artifact. Construct with NewEngine, then either
// drive the states explicitly (LayOutQuestions, LayOutAnswerSheet,
// Finalize) or call Generate to run them all.
type Engine struct {
	artifact  Artifact
	cfg       config.Config
	strings   config.Strings
	questions []types.QuestionRecord
	results   []types.ShuffleResult
	qrPNG     []byte
	verbose   bool

	state  State
	blocks []placedBlock // filled by LayOutQuestions
	sheet  *pdf.ContentStream
	// deterministic section heights, computed up front so question
	// placement knows where page one starts
	headerHeight float64
	gridHeight   float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithQR attaches the rendered QR symbol; required for the answer key.
func WithQR(png []byte) Option {
	return func(e *Engine) { e.qrPNG = png }
}

// WithVerbose enables progress logging.
func WithVerbose(v bool) Option {
	return func(e *Engine) { e.verbose = v }
}

// NewEngine creates an engine for one artifact. Questions and their
// shuffle results are read, never mutated; both artifacts of an exam
// must be given the same finalized results so they stay
// answer-consistent.
func NewEngine(artifact Artifact, cfg config.Config, questions []types.QuestionRecord, results []types.ShuffleResult, opts ...Option) (*Engine, error) {
	if len(results) == 0 {
		return nil, types.NewError(types.ErrCodeFileGeneration, "no questions to lay out")
	}
	if len(questions) != len(results) {
		return nil, types.NewErrorf(types.ErrCodeFileGeneration,
			"%d questions but %d shuffle results", len(questions), len(results))
	}

	e := &Engine{
		artifact:  artifact,
		cfg:       cfg,
		strings:   cfg.Strings(),
		questions: questions,
		results:   results,
	}
	for _, opt := range opts {
		opt(e)
	}

	if artifact == AnswerKey {
		if cfg.Password == "" {
			return nil, types.NewError(types.ErrCodeConfiguration,
				"answer key requires a password").WithContext("field", "password")
		}
		if len(e.qrPNG) == 0 {
			return nil, types.NewError(types.ErrCodeConfiguration,
				"answer key requires a rendered QR symbol")
		}
	}

	e.headerHeight = e.measureHeader()
	e.gridHeight = e.measureGrid()
	if e.firstQuestionTop() < margin {
		return nil, types.NewErrorf(types.ErrCodeFileGeneration,
			"%d questions exceed the single-page answer sheet; at most %d fit below the header",
			len(results), e.maxGridQuestions())
	}
	return e, nil
}

// State returns the engine's current generation state.
func (e *Engine) State() State {
	return e.state
}

func (e *Engine) advance(from, to State) error {
	if e.state != from {
		return types.NewErrorf(types.ErrCodeFileGeneration,
			"cannot move to %s from %s", to, e.state)
	}
	e.state = to
	return nil
}

// LayOutQuestions measures every question block and assigns it whole
// to a column and page. Page one starts below the header and the
// bubble grid; later pages use the full height.
func (e *Engine) LayOutQuestions() error {
	if err := e.advance(NotStarted, QuestionsLaidOut); err != nil {
		return err
	}
	e.blocks = e.placeQuestions()
	if e.verbose {
		log.Printf("laid out %d question blocks for the %s", len(e.blocks), e.artifact)
	}
	return nil
}

// LayOutAnswerSheet composes the page-one header and bubble grid.
func (e *Engine) LayOutAnswerSheet() error {
	if err := e.advance(QuestionsLaidOut, AnswerSheetLaidOut); err != nil {
		return err
	}
	cs := pdf.NewContentStream()
	e.drawBubbleGrid(cs, pageHeight-margin-e.headerHeight)
	e.sheet = cs
	if e.verbose {
		log.Printf("laid out answer sheet grid for %d questions", len(e.results))
	}
	return nil
}

// Finalize assembles the document and writes it to path. The write is
// atomic: content lands in a temporary file in the target directory
// and is renamed into place only on success.
func (e *Engine) Finalize(path string) error {
	if e.state != AnswerSheetLaidOut {
		return types.NewErrorf(types.ErrCodeFileGeneration,
			"cannot move to %s from %s", Finalized, e.state)
	}

	// The state only advances once the file is in place, so a failed
	// write can be retried.
	data, err := e.assemble()
	if err != nil {
		return err
	}

	if err := writeAtomic(path, data); err != nil {
		return types.WrapErrorf(types.ErrCodeFileGeneration, err,
			"cannot write %s", path)
	}
	e.state = Finalized
	if e.verbose {
		log.Printf("wrote %s (%d bytes) to %s", e.artifact, len(data), path)
	}
	return nil
}

// Generate runs the full state machine and writes the artifact.
func (e *Engine) Generate(path string) error {
	if err := e.LayOutQuestions(); err != nil {
		return err
	}
	if err := e.LayOutAnswerSheet(); err != nil {
		return err
	}
	return e.Finalize(path)
}

// assemble builds the final PDF bytes from the laid-out sections.
func (e *Engine) assemble() ([]byte, error) {
	doc := pdf.NewDocument()
	doc.SetTitle(e.cfg.Subject + " (" + e.artifact.String() + ")")

	logo, err := e.loadLogo(doc.Writer())
	if err != nil {
		return nil, err
	}
	var qrInfo *pdf.ImageInfo
	if e.artifact == AnswerKey {
		qrInfo, err = doc.Writer().AddImage(e.qrPNG, "QR")
		if err != nil {
			return nil, types.WrapError(types.ErrCodeFileGeneration,
				"cannot embed QR image", err)
		}
	}

	pageCount := 1
	for _, b := range e.blocks {
		if b.page+1 > pageCount {
			pageCount = b.page + 1
		}
	}

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		page := doc.NewPage(pdf.PageSizeLetter)
		if pageNum == 0 {
			e.drawHeader(page, logo, qrInfo)
			page.Content().Raw(e.sheet.String())
		}
		e.drawQuestionBlocks(page, pageNum)
		doc.ClosePage(page)
	}

	if e.artifact == AnswerKey {
		if err := doc.Protect(e.cfg.Password, e.cfg.Password, pdf.PermAll); err != nil {
			return nil, types.WrapError(types.ErrCodeFileGeneration,
				"cannot protect answer key", err)
		}
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, types.WrapError(types.ErrCodeFileGeneration,
			"cannot assemble document", err)
	}
	return data, nil
}

// loadLogo embeds the configured logo as a grayscale XObject. A
// missing or undecodable logo fails generation; configuration
// validated its presence already.
func (e *Engine) loadLogo(w *pdf.Writer) (*pdf.ImageInfo, error) {
	data, err := os.ReadFile(e.cfg.LogoPath)
	if err != nil {
		return nil, types.WrapErrorf(types.ErrCodeFileGeneration, err,
			"cannot read logo %s", e.cfg.LogoPath)
	}
	info, err := w.AddGrayImage(data, "Logo")
	if err != nil {
		return nil, types.WrapErrorf(types.ErrCodeFileGeneration, err,
			"cannot embed logo %s", e.cfg.LogoPath)
	}
	return info, nil
}

// writeAtomic writes data through a temp file in the target directory
// and renames it into place. Nothing is left behind on failure.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".examgen-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
