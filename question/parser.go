// Package question parses multiple-choice question sources and computes
// option presentation orders.
//
// The source format is plain UTF-8 text: a question block begins with a
// line whose first two characters are "- ", followed by 2 to 4 option
// lines. The first listed option is always the correct one. A blank line
// (or end of input) terminates a block.
package question

import (
	"bufio"
	"os"
	"strings"

	"github.com/jaguilar992/exam-generator/types"
)

const blockMarker = "- "

// ParseFile reads and parses a question file.
func ParseFile(path string) ([]types.QuestionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapErrorf(types.ErrCodeInvalidQuestionFormat, err,
			"cannot read question file %s", path)
	}
	return Parse(string(data))
}

// Parse parses question blocks from source text.
func Parse(content string) ([]types.QuestionRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, types.NewError(types.ErrCodeInvalidQuestionFormat,
			"question content is empty")
	}

	var records []types.QuestionRecord
	var block *blockState

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(raw, blockMarker):
			// A new marker also terminates the previous block.
			if block != nil {
				rec, err := block.finish(len(records))
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
			}
			text := strings.TrimSpace(raw[len(blockMarker):])
			if text == "" {
				return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
					"question %d (line %d) has no text", len(records)+1, line).
					WithContext("line", line)
			}
			block = &blockState{text: text, startLine: line}

		case trimmed == "":
			if block != nil {
				rec, err := block.finish(len(records))
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
				block = nil
			}

		default:
			if block == nil {
				if len(records) == 0 {
					// Preamble before the first marker is ignored.
					continue
				}
				return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
					"line %d: option text outside a question block", line).
					WithContext("line", line)
			}
			if len(block.options) == types.MaxOptions {
				return nil, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
					"question %d has more than %d options", len(records)+1, types.MaxOptions).
					WithContext("question", len(records)+1)
			}
			block.options = append(block.options, trimmed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, types.WrapError(types.ErrCodeInvalidQuestionFormat,
			"failed to scan question content", err)
	}

	if block != nil {
		rec, err := block.finish(len(records))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, types.NewError(types.ErrCodeInvalidQuestionFormat,
			"no question blocks found in content")
	}
	return records, nil
}

type blockState struct {
	text      string
	options   []string
	startLine int
}

// finish validates a terminated block and converts it to a record. The
// correct option is the first listed one, by format contract.
func (b *blockState) finish(index int) (types.QuestionRecord, error) {
	if len(b.options) < types.MinOptions {
		return types.QuestionRecord{}, types.NewErrorf(types.ErrCodeInvalidQuestionFormat,
			"question %d (line %d) must have at least %d options, found %d",
			index+1, b.startLine, types.MinOptions, len(b.options)).
			WithContext("question", index+1)
	}
	return types.QuestionRecord{
		Index:        index,
		Text:         b.text,
		Options:      b.options,
		CorrectIndex: 0,
	}, nil
}
