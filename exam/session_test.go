package exam

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaguilar992/exam-generator/answerkey"
	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/qr"
	"github.com/jaguilar992/exam-generator/question"
	"github.com/jaguilar992/exam-generator/types"
)

const fiveQuestions = `- What is 2+2?
4
3
5
6

- Which planet is closest to the sun?
Mercury
Venus
Earth

- What is the capital of Honduras?
Tegucigalpa
San Pedro Sula
Comayagua
La Ceiba

- How many bits in a byte?
8
4
16

- Which language has goroutines?
Go
Python
`

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.Gray{Y: 200})
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

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Password = ""
	if _, err := NewSession(cfg, Options{}); !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("error = %v, want CONFIGURATION", err)
	}
}

func TestSession_MaxQuestionsTruncates(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{MaxQuestions: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadQuestions(fiveQuestions); err != nil {
		t.Fatal(err)
	}

	if got := s.QuestionCount(); got != 1 {
		t.Errorf("QuestionCount = %d, want 1", got)
	}

	key, err := s.AnswerKey()
	if err != nil {
		t.Fatal(err)
	}
	if key.NumQuestions != 1 {
		t.Errorf("NumQuestions = %d, want 1", key.NumQuestions)
	}

	// Truncation is a print-time cap; the loaded bank stays whole.
	if got := len(s.Preview()); got != 5 {
		t.Errorf("Preview after finalize returned %d questions, want 5", got)
	}
}

func TestSession_UnshuffledCode(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{MaxQuestions: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadQuestions(fiveQuestions); err != nil {
		t.Fatal(err)
	}

	key, err := s.AnswerKey()
	if err != nil {
		t.Fatal(err)
	}
	// Unshuffled, the correct answer stays in slot A for every question.
	if got := answerkey.Encode(key); got != "Q2_P100_AA" {
		t.Errorf("Encode = %q, want Q2_P100_AA", got)
	}
}

func TestSession_DeterministicSeed(t *testing.T) {
	keys := make([]types.AnswerKey, 2)
	for i := range keys {
		s, err := NewSession(testConfig(t), Options{Shuffle: true, Seed: 99})
		if err != nil {
			t.Fatal(err)
		}
		if err := s.LoadQuestions(fiveQuestions); err != nil {
			t.Fatal(err)
		}
		keys[i], err = s.AnswerKey()
		if err != nil {
			t.Fatal(err)
		}
	}
	if keys[0] != keys[1] {
		t.Errorf("same seed should give same key: %v vs %v", keys[0], keys[1])
	}
}

func TestSession_GenerateBoth(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{Shuffle: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadQuestions(fiveQuestions); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	examPath := filepath.Join(dir, "exam.pdf")
	keyPath := filepath.Join(dir, "key.pdf")
	if err := s.GenerateBoth(examPath, keyPath); err != nil {
		t.Fatalf("GenerateBoth() error = %v", err)
	}

	examData, err := os.ReadFile(examPath)
	if err != nil {
		t.Fatal(err)
	}
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(examData, []byte("%PDF-")) || !bytes.HasPrefix(keyData, []byte("%PDF-")) {
		t.Error("both artifacts should be PDFs")
	}
	if bytes.Contains(examData, []byte("/Encrypt")) {
		t.Error("student exam must not be encrypted")
	}
	if !bytes.Contains(keyData, []byte("/Encrypt")) {
		t.Error("answer key must be encrypted")
	}
}

func TestSession_QRRoundTrip(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadQuestions(fiveQuestions); err != nil {
		t.Fatal(err)
	}

	key, err := s.AnswerKey()
	if err != nil {
		t.Fatal(err)
	}

	// The embedded QR decodes back to the encrypted code, which the
	// configured password recovers.
	payload, err := qr.ReadBytes(s.qrPNG)
	if err != nil {
		t.Fatalf("QR unreadable: %v", err)
	}
	if payload != s.ciphertext {
		t.Error("QR payload should match the ciphertext exactly")
	}

	decoded, err := answerkey.DecryptQRData(payload, "clave-segura")
	if err != nil {
		t.Fatalf("DecryptQRData() error = %v", err)
	}
	if decoded.NumQuestions != key.NumQuestions || decoded.Letters != key.Letters {
		t.Errorf("decoded key %+v does not match %+v", decoded, key)
	}
}

func TestSession_ProgrammaticQuestions(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}

	inputs := []question.Input{
		{Question: "Pick one", Options: []string{"right", "wrong"}, CorrectAnswer: 0},
	}
	if err := s.SetQuestions(inputs); err != nil {
		t.Fatalf("SetQuestions() error = %v", err)
	}
	if got := s.QuestionCount(); got != 1 {
		t.Errorf("QuestionCount = %d, want 1", got)
	}

	bad := []question.Input{{Question: "", Options: []string{"a", "b"}}}
	if err := s.SetQuestions(bad); !errors.Is(err, types.ErrInvalidQuestionFormat) {
		t.Errorf("error = %v, want INVALID_QUESTION_FORMAT", err)
	}
}

func TestSession_NoQuestions(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AnswerKey(); !errors.Is(err, types.ErrInvalidQuestionFormat) {
		t.Errorf("error = %v, want INVALID_QUESTION_FORMAT", err)
	}
}

func TestSession_Preview(t *testing.T) {
	s, err := NewSession(testConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LoadQuestions(fiveQuestions); err != nil {
		t.Fatal(err)
	}

	preview := s.Preview()
	if len(preview) != 5 {
		t.Fatalf("Preview returned %d questions, want 5", len(preview))
	}
	if preview[0].Text != "What is 2+2?" {
		t.Errorf("first question = %q", preview[0].Text)
	}

	// Mutating the preview must not touch the session's bank.
	preview[0].Text = "tampered"
	if s.Preview()[0].Text != "What is 2+2?" {
		t.Error("Preview should return a copy")
	}
}
