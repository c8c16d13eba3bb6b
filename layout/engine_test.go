package layout

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/qr"
	"github.com/jaguilar992/exam-generator/types"
)

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	img.Set(0, 0, color.Gray{Y: 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.NewBuilder().
		Institution("Instituto San Marcos").
		Course("III de Bachillerato").
		Subject("Informática").
		Professor("J. Aguilar").
		Password("clave-segura").
		Logo(writeLogo(t)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func testQuestions(n int) ([]types.QuestionRecord, []types.ShuffleResult) {
	questions := make([]types.QuestionRecord, n)
	results := make([]types.ShuffleResult, n)
	for i := 0; i < n; i++ {
		opts := []string{"first option", "second option", "third option", "fourth option"}
		questions[i] = types.QuestionRecord{
			Index:   i,
			Text:    fmt.Sprintf("What is the answer to question %d?", i+1),
			Options: opts,
		}
		results[i] = types.ShuffleResult{Presented: opts, CorrectLetter: 'A'}
	}
	return questions, results
}

func testQR(t *testing.T) []byte {
	t.Helper()
	data, err := qr.Render("Q5_P100_AAAAA")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEngine_GenerateStudentExam(t *testing.T) {
	cfg := testConfig(t)
	questions, results := testQuestions(10)

	eng, err := NewEngine(StudentExam, cfg, questions, results)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "exam.pdf")
	if err := eng.Generate(path); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if eng.State() != Finalized {
		t.Errorf("state = %v, want FINALIZED", eng.State())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("artifact should be a PDF")
	}
	if bytes.Contains(data, []byte("/Encrypt")) {
		t.Error("student exam must not be encrypted")
	}
}

func TestEngine_GenerateAnswerKey(t *testing.T) {
	cfg := testConfig(t)
	questions, results := testQuestions(5)

	eng, err := NewEngine(AnswerKey, cfg, questions, results, WithQR(testQR(t)))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "key.pdf")
	if err := eng.Generate(path); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !bytes.Contains(data, []byte("/Encrypt")) {
		t.Error("answer key must be password protected")
	}
	if !bytes.Contains(data, []byte("/CFM /AESV3")) {
		t.Error("answer key should use the AES-256 handler")
	}
}

func TestEngine_AnswerKeyRequiresPassword(t *testing.T) {
	cfg := testConfig(t)
	cfg.Password = ""
	questions, results := testQuestions(3)

	_, err := NewEngine(AnswerKey, cfg, questions, results, WithQR([]byte("png")))
	if err == nil {
		t.Fatal("NewEngine should fail without a password")
	}
	if !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("error = %v, want CONFIGURATION", err)
	}
}

func TestEngine_AnswerKeyRequiresQR(t *testing.T) {
	questions, results := testQuestions(3)
	if _, err := NewEngine(AnswerKey, testConfig(t), questions, results); err == nil {
		t.Fatal("NewEngine should fail without a QR symbol")
	}
}

func TestEngine_StateMachine(t *testing.T) {
	questions, results := testQuestions(3)
	eng, err := NewEngine(StudentExam, testConfig(t), questions, results)
	if err != nil {
		t.Fatal(err)
	}

	if err := eng.LayOutAnswerSheet(); err == nil {
		t.Error("answer sheet before questions should fail")
	}
	if err := eng.Finalize(filepath.Join(t.TempDir(), "x.pdf")); err == nil {
		t.Error("finalize before layout should fail")
	}

	if err := eng.LayOutQuestions(); err != nil {
		t.Fatal(err)
	}
	if eng.State() != QuestionsLaidOut {
		t.Errorf("state = %v, want QUESTIONS_LAID_OUT", eng.State())
	}
	if err := eng.LayOutQuestions(); err == nil {
		t.Error("repeating a transition should fail")
	}
	if err := eng.LayOutAnswerSheet(); err != nil {
		t.Fatal(err)
	}
	if err := eng.Finalize(filepath.Join(t.TempDir(), "x.pdf")); err != nil {
		t.Fatal(err)
	}
	if eng.State() != Finalized {
		t.Errorf("state = %v, want FINALIZED", eng.State())
	}
}

func TestEngine_FailureLeavesNoFile(t *testing.T) {
	cfg := testConfig(t)
	questions, results := testQuestions(3)
	eng, err := NewEngine(StudentExam, cfg, questions, results)
	if err != nil {
		t.Fatal(err)
	}

	// Break the logo after validation so assembly fails mid-way.
	if err := os.Remove(cfg.LogoPath); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "exam.pdf")
	if err := eng.Generate(path); err == nil {
		t.Fatal("Generate should fail with a missing logo")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed generation must not leave a file at the target path")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed generation left %d stray files", len(entries))
	}
}

func TestEngine_MismatchedInputs(t *testing.T) {
	questions, results := testQuestions(3)
	if _, err := NewEngine(StudentExam, testConfig(t), questions[:2], results); err == nil {
		t.Error("mismatched question/result lengths should fail")
	}
	if _, err := NewEngine(StudentExam, testConfig(t), nil, nil); err == nil {
		t.Error("empty inputs should fail")
	}
}

func TestEngine_ManyQuestionsPaginate(t *testing.T) {
	questions, results := testQuestions(60)
	eng, err := NewEngine(StudentExam, testConfig(t), questions, results)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "exam.pdf")
	if err := eng.Generate(path); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// 60 blocks cannot fit the first page's two columns.
	if bytes.Contains(data, []byte("/Count 1>>")) {
		t.Error("60 questions should span multiple pages")
	}

	maxPage := 0
	for _, b := range eng.blocks {
		if b.page > maxPage {
			maxPage = b.page
		}
	}
	if maxPage == 0 {
		t.Error("expected blocks placed beyond page one")
	}
}

func assertBlocksInBounds(t *testing.T, eng *Engine) {
	t.Helper()
	for _, b := range eng.blocks {
		if b.y > eng.pageTop(b.page)+0.01 {
			t.Errorf("block %d starts above its page top", b.num)
		}
		if bottom := b.y - b.height(); bottom < margin-0.01 {
			t.Errorf("block %d crosses the bottom margin (bottom=%.1f)", b.num, bottom)
		}
		if b.col != 0 && b.col != 1 {
			t.Errorf("block %d in invalid column %d", b.num, b.col)
		}
	}
}

func TestPlaceQuestions_NoColumnOverflow(t *testing.T) {
	questions, results := testQuestions(40)
	eng, err := NewEngine(StudentExam, testConfig(t), questions, results)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.LayOutQuestions(); err != nil {
		t.Fatal(err)
	}
	assertBlocksInBounds(t, eng)
}

func TestPlaceQuestions_TightFirstPage(t *testing.T) {
	// A bank this size leaves page one with less room below the grid
	// than a single question block needs, so blocks must spill to a
	// full-height page instead of printing below the margin.
	questions, results := testQuestions(155)
	eng, err := NewEngine(StudentExam, testConfig(t), questions, results)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.LayOutQuestions(); err != nil {
		t.Fatal(err)
	}
	assertBlocksInBounds(t, eng)
}

func TestEngine_GridMustFitOnePage(t *testing.T) {
	questions, results := testQuestions(200)
	_, err := NewEngine(StudentExam, testConfig(t), questions, results)
	if err == nil {
		t.Fatal("200 questions cannot fit the single-page answer sheet")
	}
	if !errors.Is(err, types.ErrFileGeneration) {
		t.Errorf("error = %v, want FILE_GENERATION", err)
	}
	if !strings.Contains(err.Error(), "at most") {
		t.Errorf("error should name the question limit, got %q", err)
	}
}
