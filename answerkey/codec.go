// Package answerkey serializes graded answer keys to the compact code
// embedded in the answer-key QR symbol, and encrypts that code with the
// configured password.
//
// The code grammar is "Q<questions>_P<points>_<letters>", e.g.
// Q25_P100_DDDBBCDDDDDAABCCAADCBAADD. Externally issued decryption
// utilities depend on this exact grammar; it must stay stable.
package answerkey

import (
	"strconv"
	"strings"

	"github.com/jaguilar992/exam-generator/types"
)

// Encode serializes an answer key to its compact code.
func Encode(key types.AnswerKey) string {
	var b strings.Builder
	b.Grow(len(key.Letters) + 16)
	b.WriteByte('Q')
	b.WriteString(strconv.Itoa(key.NumQuestions))
	b.WriteString("_P")
	b.WriteString(strconv.Itoa(key.TotalPoints))
	b.WriteByte('_')
	b.WriteString(key.Letters)
	return b.String()
}

// Decode parses a compact code back to an answer key. Decode only ever
// runs on decrypted text, so failures surface as encryption errors.
func Decode(code string) (types.AnswerKey, error) {
	parts := strings.Split(code, "_")
	if len(parts) != 3 {
		return types.AnswerKey{}, types.NewErrorf(types.ErrCodeEncryption,
			"invalid answer code: expected 3 segments, got %d", len(parts))
	}

	numQuestions, err := decodeSegment(parts[0], 'Q')
	if err != nil {
		return types.AnswerKey{}, err
	}
	totalPoints, err := decodeSegment(parts[1], 'P')
	if err != nil {
		return types.AnswerKey{}, err
	}

	letters := parts[2]
	if len(letters) != numQuestions {
		return types.AnswerKey{}, types.NewErrorf(types.ErrCodeEncryption,
			"invalid answer code: expected %d answers, got %d", numQuestions, len(letters))
	}
	for i := 0; i < len(letters); i++ {
		if letters[i] < 'A' || letters[i] > 'A'+types.MaxOptions-1 {
			return types.AnswerKey{}, types.NewErrorf(types.ErrCodeEncryption,
				"invalid answer letter %q at position %d", string(letters[i]), i+1)
		}
	}

	return types.AnswerKey{
		NumQuestions: numQuestions,
		TotalPoints:  totalPoints,
		Letters:      letters,
	}, nil
}

func decodeSegment(segment string, prefix byte) (int, error) {
	if len(segment) < 2 || segment[0] != prefix {
		return 0, types.NewErrorf(types.ErrCodeEncryption,
			"invalid answer code segment %q: expected %q prefix", segment, string(prefix))
	}
	n, err := strconv.Atoi(segment[1:])
	if err != nil || n < 0 {
		return 0, types.NewErrorf(types.ErrCodeEncryption,
			"invalid answer code segment %q: not a non-negative integer", segment)
	}
	return n, nil
}

// FromResults builds the answer key for a finalized shuffle.
func FromResults(results []types.ShuffleResult, totalPoints int) types.AnswerKey {
	letters := make([]byte, len(results))
	for i, r := range results {
		letters[i] = r.CorrectLetter
	}
	return types.AnswerKey{
		NumQuestions: len(results),
		TotalPoints:  totalPoints,
		Letters:      string(letters),
	}
}
