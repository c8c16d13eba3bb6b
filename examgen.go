// Package examgen generates paired PDF artifacts for multiple-choice
// exams: a student exam with a scannable bubble answer sheet, and a
// password-protected answer key whose graded answers travel in an
// encrypted QR code.
//
// # Quick Start
//
// Generate both artifacts from a .ptf question file:
//
//	import "github.com/jaguilar992/exam-generator/config"
//	import "github.com/jaguilar992/exam-generator/exam"
//
//	cfg, _ := config.Load("exam.yaml")
//	session, _ := exam.NewSession(cfg, exam.Options{Shuffle: true})
//	_ = session.LoadQuestionsFile("questions.ptf")
//	_ = session.GenerateBoth("exam.pdf", "answer_key.pdf")
//
// Recover an answer key from a scanned QR payload:
//
//	import "github.com/jaguilar992/exam-generator/answerkey"
//
//	decoded, _ := answerkey.DecryptQRData(ciphertext, password)
//
// # Packages
//
//   - question: .ptf parsing, validation, option shuffling
//   - answerkey: answer codec, password cipher, decode helpers
//   - qr: QR symbol rendering and reading
//   - config: exam configuration, YAML loading, localized strings
//   - pdf: low-level PDF emission with AES-256 protection
//   - layout: page composition for the printable artifacts
//   - exam: the generation session tying it all together
package examgen

import (
	"github.com/jaguilar992/exam-generator/types"
)

// Re-export the shared data model for convenience.
// Users can import just "github.com/jaguilar992/exam-generator" for
// basic usage.

// QuestionRecord is a single parsed multiple-choice question.
type QuestionRecord = types.QuestionRecord

// ShuffleResult is the presentation order of one question's options.
type ShuffleResult = types.ShuffleResult

// AnswerKey is the semantic payload embedded in the answer-key QR code.
type AnswerKey = types.AnswerKey

// DecodedKey is the structured result of parsing a decrypted QR payload.
type DecodedKey = types.DecodedKey

// Error is the structured error carrying an error code and context.
type Error = types.ExamError
