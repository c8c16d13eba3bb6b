package question

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/jaguilar992/exam-generator/types"
)

// fixedPerm always returns the same permutation, so tests can assert an
// exact expected presentation order.
type fixedPerm struct {
	perm []int
}

func (f fixedPerm) Perm(n int) []int {
	return f.perm[:n]
}

func TestShuffle_Disabled(t *testing.T) {
	q := types.QuestionRecord{
		Text:         "q",
		Options:      []string{"correct", "b", "c", "d"},
		CorrectIndex: 0,
	}
	res := Shuffle(q, false, nil)

	if !reflect.DeepEqual(res.Presented, q.Options) {
		t.Errorf("Presented = %v, want source order", res.Presented)
	}
	if res.CorrectLetter != 'A' {
		t.Errorf("CorrectLetter = %c, want A", res.CorrectLetter)
	}
}

func TestShuffle_InjectedPermutation(t *testing.T) {
	q := types.QuestionRecord{
		Text:         "q",
		Options:      []string{"correct", "b", "c", "d"},
		CorrectIndex: 0,
	}
	// Slot i takes source option perm[i]: the correct option (source 0)
	// lands in slot 2, letter C.
	res := Shuffle(q, true, fixedPerm{perm: []int{3, 1, 0, 2}})

	want := []string{"d", "b", "correct", "c"}
	if !reflect.DeepEqual(res.Presented, want) {
		t.Errorf("Presented = %v, want %v", res.Presented, want)
	}
	if res.CorrectLetter != 'C' {
		t.Errorf("CorrectLetter = %c, want C", res.CorrectLetter)
	}
	if res.Presented[res.CorrectSlot()] != "correct" {
		t.Error("CorrectLetter does not point at the correct option")
	}
}

func TestShuffle_DoesNotMutateSource(t *testing.T) {
	q := types.QuestionRecord{
		Text:         "q",
		Options:      []string{"correct", "b", "c"},
		CorrectIndex: 0,
	}
	before := append([]string(nil), q.Options...)
	Shuffle(q, true, rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(q.Options, before) {
		t.Error("Shuffle mutated the source record")
	}
}

func TestShuffle_DeterministicForSeed(t *testing.T) {
	questions := []types.QuestionRecord{
		{Index: 0, Text: "q0", Options: []string{"a0", "b0", "c0", "d0"}},
		{Index: 1, Text: "q1", Options: []string{"a1", "b1", "c1", "d1"}},
		{Index: 2, Text: "q2", Options: []string{"a2", "b2"}},
	}

	first := ShuffleAll(questions, true, rand.New(rand.NewSource(42)))
	second := ShuffleAll(questions, true, rand.New(rand.NewSource(42)))

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed should yield identical shuffle results")
	}
}

func TestShuffle_PreservesOptionMultiset(t *testing.T) {
	q := types.QuestionRecord{
		Text:         "q",
		Options:      []string{"x", "y", "z", "x"},
		CorrectIndex: 0,
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		res := Shuffle(q, true, rng)

		got := append([]string(nil), res.Presented...)
		want := append([]string(nil), q.Options...)
		sort.Strings(got)
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("iteration %d: multiset changed: %v", i, res.Presented)
		}
	}
}

func TestShuffle_CorrectLetterTracksOriginal(t *testing.T) {
	q := types.QuestionRecord{
		Text:         "q",
		Options:      []string{"the answer", "wrong 1", "wrong 2", "wrong 3"},
		CorrectIndex: 0,
	}
	rng := rand.New(rand.NewSource(1234))
	for i := 0; i < 100; i++ {
		res := Shuffle(q, true, rng)
		if res.Presented[res.CorrectSlot()] != "the answer" {
			t.Fatalf("iteration %d: correct letter %c points at %q",
				i, res.CorrectLetter, res.Presented[res.CorrectSlot()])
		}
	}
}

func TestTruncate(t *testing.T) {
	questions := make([]types.QuestionRecord, 5)
	for i := range questions {
		questions[i] = types.QuestionRecord{Index: i}
	}

	tests := []struct {
		name string
		max  int
		want int
	}{
		{"no cap", 0, 5},
		{"negative cap", -1, 5},
		{"cap above size", 10, 5},
		{"cap of one", 1, 1},
		{"cap of three", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(questions, tt.max)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].Index != 0 {
				t.Error("truncation must keep the first questions")
			}
		})
	}
}
