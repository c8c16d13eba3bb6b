package question

import (
	"github.com/jaguilar992/exam-generator/types"
)

// Rand is the source of randomness for option shuffling. *math/rand.Rand
// satisfies it; tests inject deterministic permutation sources.
type Rand interface {
	// Perm returns a pseudo-random permutation of [0, n).
	Perm(n int) []int
}

// Shuffle computes the presentation order for one question. It is a pure
// transform: the source record is never mutated, so a question bank can
// be reshuffled across generation runs.
//
// When disabled, the identity permutation is used and the correct letter
// is derived directly from the record's CorrectIndex.
func Shuffle(q types.QuestionRecord, enabled bool, rng Rand) types.ShuffleResult {
	n := len(q.Options)
	presented := make([]string, n)

	if !enabled || n < 2 {
		copy(presented, q.Options)
		return types.ShuffleResult{
			Presented:     presented,
			CorrectLetter: types.OptionLetter(q.CorrectIndex),
		}
	}

	perm := rng.Perm(n)
	correct := 0
	for slot, src := range perm {
		presented[slot] = q.Options[src]
		if src == q.CorrectIndex {
			correct = slot
		}
	}
	return types.ShuffleResult{
		Presented:     presented,
		CorrectLetter: types.OptionLetter(correct),
	}
}

// ShuffleAll computes presentation orders for a question sequence using a
// single randomness source, in question order.
func ShuffleAll(questions []types.QuestionRecord, enabled bool, rng Rand) []types.ShuffleResult {
	results := make([]types.ShuffleResult, len(questions))
	for i, q := range questions {
		results[i] = Shuffle(q, enabled, rng)
	}
	return results
}

// Truncate limits a question sequence to the first max questions. A max
// of 0 or less means no limit. Truncation happens before shuffling and
// before answer-key serialization so numbering stays consistent.
func Truncate(questions []types.QuestionRecord, max int) []types.QuestionRecord {
	if max <= 0 || len(questions) <= max {
		return questions
	}
	return questions[:max]
}
