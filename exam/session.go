// Package exam orchestrates a full generation run: questions in,
// paired PDF artifacts out.
package exam

import (
	crand "crypto/rand"
	"encoding/binary"
	"log"
	"math/rand"

	"github.com/jaguilar992/exam-generator/answerkey"
	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/layout"
	"github.com/jaguilar992/exam-generator/qr"
	"github.com/jaguilar992/exam-generator/question"
	"github.com/jaguilar992/exam-generator/types"
)

// Options control a generation session.
type Options struct {
	// Shuffle randomizes option order per question.
	Shuffle bool
	// MaxQuestions truncates the bank before shuffling; <= 0 keeps
	// every question.
	MaxQuestions int
	// Seed fixes the shuffle randomness for reproducible exams; 0
	// draws a fresh cryptographic seed per session.
	Seed int64
	// Verbose enables progress logging.
	Verbose bool
}

// Session runs the generation pipeline for one exam. Load questions,
// then generate; the shuffle outcome and answer key freeze on the
// first generation call so both artifacts stay answer-consistent.
// Sessions are single-goroutine; run concurrent generations in
// separate sessions.
type Session struct {
	cfg  config.Config
	opts Options

	questions []types.QuestionRecord

	// frozen pipeline outputs, set by finalize
	finalized  bool
	printed    []types.QuestionRecord // bank after MaxQuestions truncation
	results    []types.ShuffleResult
	key        types.AnswerKey
	ciphertext string
	qrPNG      []byte
}

// NewSession validates the configuration and creates a session.
// Invalid configuration fails here, before any layout work starts.
func NewSession(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, opts: opts}, nil
}

// LoadQuestionsFile parses a .ptf question file into the session.
func (s *Session) LoadQuestionsFile(path string) error {
	questions, err := question.ParseFile(path)
	if err != nil {
		return err
	}
	return s.setBank(questions)
}

// LoadQuestions parses .ptf content into the session.
func (s *Session) LoadQuestions(content string) error {
	questions, err := question.Parse(content)
	if err != nil {
		return err
	}
	return s.setBank(questions)
}

// SetQuestions loads pre-built question records, validated the same
// way parsed content is.
func (s *Session) SetQuestions(inputs []question.Input) error {
	questions, err := question.FromInputs(inputs)
	if err != nil {
		return err
	}
	return s.setBank(questions)
}

func (s *Session) setBank(questions []types.QuestionRecord) error {
	if s.finalized {
		return types.NewError(types.ErrCodeConfiguration,
			"session already generated; start a new session to change questions")
	}
	s.questions = questions
	if s.opts.Verbose {
		log.Printf("loaded %d questions", len(questions))
	}
	return nil
}

// QuestionCount returns the number of questions that will be printed,
// after any MaxQuestions truncation.
func (s *Session) QuestionCount() int {
	n := len(s.questions)
	if s.opts.MaxQuestions > 0 && s.opts.MaxQuestions < n {
		n = s.opts.MaxQuestions
	}
	return n
}

// Preview returns a copy of the loaded question bank in source order.
func (s *Session) Preview() []types.QuestionRecord {
	out := make([]types.QuestionRecord, len(s.questions))
	copy(out, s.questions)
	return out
}

// AnswerKey returns the finalized answer key. It freezes the shuffle
// on first use.
func (s *Session) AnswerKey() (types.AnswerKey, error) {
	if err := s.finalize(); err != nil {
		return types.AnswerKey{}, err
	}
	return s.key, nil
}

// finalize runs the truncate → shuffle → encode → encrypt → QR
// pipeline exactly once.
func (s *Session) finalize() error {
	if s.finalized {
		return nil
	}
	if len(s.questions) == 0 {
		return types.NewError(types.ErrCodeInvalidQuestionFormat,
			"no questions loaded")
	}

	bank := question.Truncate(s.questions, s.opts.MaxQuestions)
	s.printed = bank

	seed := s.opts.Seed
	if seed == 0 {
		var raw [8]byte
		if _, err := crand.Read(raw[:]); err != nil {
			return types.WrapError(types.ErrCodeFileGeneration,
				"cannot seed shuffle", err)
		}
		seed = int64(binary.LittleEndian.Uint64(raw[:]))
	}
	rng := rand.New(rand.NewSource(seed))

	s.results = question.ShuffleAll(bank, s.opts.Shuffle, rng)
	s.key = answerkey.FromResults(s.results, s.cfg.TotalPoints)

	code := answerkey.Encode(s.key)
	ciphertext, err := answerkey.Encrypt(code, s.cfg.Password)
	if err != nil {
		return err
	}
	s.ciphertext = ciphertext

	png, err := qr.Render(ciphertext)
	if err != nil {
		return err
	}
	s.qrPNG = png

	s.finalized = true
	if s.opts.Verbose {
		log.Printf("finalized exam: %d questions, code %s", s.key.NumQuestions, code)
	}
	return nil
}

// GenerateStudentExam writes the student exam PDF to path.
func (s *Session) GenerateStudentExam(path string) error {
	if err := s.finalize(); err != nil {
		return err
	}
	eng, err := layout.NewEngine(layout.StudentExam, s.cfg, s.printed, s.results,
		layout.WithVerbose(s.opts.Verbose))
	if err != nil {
		return err
	}
	return eng.Generate(path)
}

// GenerateAnswerKey writes the password-protected answer key PDF,
// with the encrypted answer code embedded as a QR symbol.
func (s *Session) GenerateAnswerKey(path string) error {
	if err := s.finalize(); err != nil {
		return err
	}
	eng, err := layout.NewEngine(layout.AnswerKey, s.cfg, s.printed, s.results,
		layout.WithQR(s.qrPNG),
		layout.WithVerbose(s.opts.Verbose))
	if err != nil {
		return err
	}
	return eng.Generate(path)
}

// GenerateBoth writes both artifacts from one finalized shuffle, so
// exam and key always agree.
func (s *Session) GenerateBoth(examPath, keyPath string) error {
	if err := s.GenerateStudentExam(examPath); err != nil {
		return err
	}
	return s.GenerateAnswerKey(keyPath)
}
