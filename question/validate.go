package question

import (
	"strings"

	"github.com/jaguilar992/exam-generator/types"
)

// Input is a pre-built question supplied programmatically instead of
// through the text format.
type Input struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
}

// FromInputs validates programmatic questions and converts them to
// records. Validation matches the structural rules of the text format.
func FromInputs(inputs []Input) ([]types.QuestionRecord, error) {
	if len(inputs) == 0 {
		return nil, types.NewError(types.ErrCodeInvalidQuestionFormat,
			"question list cannot be empty")
	}

	records := make([]types.QuestionRecord, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Question) == "" {
			return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
				"question %d has no text", i+1).WithContext("question", i+1)
		}
		if len(in.Options) < types.MinOptions || len(in.Options) > types.MaxOptions {
			return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
				"question %d must have %d to %d options, found %d",
				i+1, types.MinOptions, types.MaxOptions, len(in.Options)).
				WithContext("question", i+1)
		}
		for j, opt := range in.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
					"question %d option %d is empty", i+1, j+1).
					WithContext("question", i+1)
			}
		}
		if in.CorrectAnswer < 0 || in.CorrectAnswer >= len(in.Options) {
			return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
				"question %d has invalid correct_answer index %d", i+1, in.CorrectAnswer).
				WithContext("question", i+1)
		}

		options := make([]string, len(in.Options))
		for j, opt := range in.Options {
			options[j] = strings.TrimSpace(opt)
		}
		records = append(records, types.QuestionRecord{
			Index:        i,
			Text:         strings.TrimSpace(in.Question),
			Options:      options,
			CorrectIndex: in.CorrectAnswer,
		})
	}
	return records, nil
}
