package answerkey

import (
	"github.com/jaguilar992/exam-generator/types"
)

// ParsePayload parses decrypted QR payload text into a structured key,
// including per-question answers as 0-based option indices.
func ParsePayload(plaintext string) (types.DecodedKey, error) {
	key, err := Decode(plaintext)
	if err != nil {
		return types.DecodedKey{}, err
	}

	answers := make([]int, len(key.Letters))
	for i := 0; i < len(key.Letters); i++ {
		answers[i] = types.OptionIndex(key.Letters[i])
	}
	return types.DecodedKey{
		NumQuestions: key.NumQuestions,
		TotalPoints:  key.TotalPoints,
		Letters:      key.Letters,
		Answers:      answers,
	}, nil
}

// DecryptQRData decrypts a scanned QR payload and parses it in one step.
// This is the function grading utilities call with the ciphertext read
// from an answer-key sheet.
func DecryptQRData(ciphertext, password string) (types.DecodedKey, error) {
	plaintext, err := Decrypt(ciphertext, password)
	if err != nil {
		return types.DecodedKey{}, err
	}
	return ParsePayload(plaintext)
}
