// Package types provides the shared data model and error taxonomy for
// exam generation.
package types

// Option count limits for a multiple-choice question.
const (
	MinOptions = 2
	MaxOptions = 4
)

// QuestionRecord is a single parsed multiple-choice question.
//
// CorrectIndex always refers to the option position at parse time; the
// source format guarantees the first listed option is the correct one, so
// records produced by the parser carry CorrectIndex == 0. Shuffling never
// mutates a QuestionRecord.
type QuestionRecord struct {
	Index        int      // 0-based, stable ordinal position
	Text         string   // question text, UTF-8
	Options      []string // 2-4 options in source order
	CorrectIndex int      // index of the correct option within Options
}

// ShuffleResult is the presentation order of one question's options.
//
// Presented is a permutation of the source options; CorrectLetter names
// the presented slot ('A'..'D') holding the string that was at
// CorrectIndex in the source record.
type ShuffleResult struct {
	Presented     []string
	CorrectLetter byte
}

// CorrectSlot returns the 0-based presented position of the correct option.
func (r ShuffleResult) CorrectSlot() int {
	return int(r.CorrectLetter - 'A')
}

// AnswerKey is the semantic payload embedded in the answer-key QR code.
// It must round-trip exactly through encode, encrypt, decrypt, decode.
type AnswerKey struct {
	NumQuestions int
	TotalPoints  int
	Letters      string // one letter 'A'..'D' per question
}

// DecodedKey is the structured result of parsing a decrypted QR payload.
// Answers holds the same information as Letters as 0-based option indices.
type DecodedKey struct {
	NumQuestions int
	TotalPoints  int
	Letters      string
	Answers      []int
}

// OptionLetter converts a 0-based option index to its letter ('A'..'D').
func OptionLetter(index int) byte {
	return byte('A' + index)
}

// OptionIndex converts an option letter to its 0-based index.
func OptionIndex(letter byte) int {
	return int(letter - 'A')
}
