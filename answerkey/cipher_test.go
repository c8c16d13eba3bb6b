package answerkey

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/jaguilar992/exam-generator/types"
)

func TestCipher_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		password  string
	}{
		{"short code", "Q2_P100_AA", "secret"},
		{"typical code", "Q25_P100_DDDBBCDDDDDAABCCAADCBAADD", "profesor2024"},
		{"unicode password", "Q3_P60_ABC", "contraseña"},
		{"long password", "Q1_P10_A", strings.Repeat("k", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := Encrypt(tt.plaintext, tt.password)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			if ciphertext == tt.plaintext {
				t.Error("ciphertext equals plaintext")
			}

			decrypted, err := Decrypt(ciphertext, tt.password)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if decrypted != tt.plaintext {
				t.Errorf("Decrypt = %q, want %q", decrypted, tt.plaintext)
			}
		})
	}
}

func TestCipher_CiphertextIsPrintable(t *testing.T) {
	ciphertext, err := Encrypt("Q10_P100_ABCDABCDAB", "pw")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range ciphertext {
		if c < '-' || c > 'z' {
			t.Fatalf("ciphertext contains non-printable rune %q", c)
		}
	}
}

func TestCipher_Deterministic(t *testing.T) {
	a, _ := Encrypt("Q2_P100_AA", "pw")
	b, _ := Encrypt("Q2_P100_AA", "pw")
	if a != b {
		t.Error("same password and plaintext must produce the same ciphertext")
	}
}

func TestCipher_WrongPassword(t *testing.T) {
	plaintext := "Q25_P100_DDDBBCDDDDDAABCCAADCBAADD"
	ciphertext, err := Encrypt(plaintext, "right password")
	if err != nil {
		t.Fatal(err)
	}

	decrypted, err := Decrypt(ciphertext, "wrong password")
	if err == nil && decrypted == plaintext {
		t.Fatal("wrong password recovered the plaintext")
	}
	if err == nil {
		// Decrypt itself tolerates wrong passwords; the codec must not.
		if _, err := Decode(decrypted); err == nil {
			t.Error("codec accepted text decrypted with the wrong password")
		}
	}
}

func TestCipher_WrongPasswordNeverRecovers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(200)
		letters := make([]byte, n)
		for i := range letters {
			letters[i] = types.OptionLetter(rng.Intn(types.MaxOptions))
		}
		plaintext := Encode(types.AnswerKey{NumQuestions: n, TotalPoints: 100, Letters: string(letters)})

		ciphertext, err := Encrypt(plaintext, "password-one")
		if err != nil {
			t.Fatal(err)
		}
		decrypted, err := Decrypt(ciphertext, "password-two")
		if err == nil && decrypted == plaintext {
			t.Fatalf("trial %d: wrong password recovered the plaintext", trial)
		}
	}
}

func TestCipher_Errors(t *testing.T) {
	tests := []struct {
		name string
		call func() error
	}{
		{"encrypt empty plaintext", func() error { _, err := Encrypt("", "pw"); return err }},
		{"encrypt empty password", func() error { _, err := Encrypt("Q1_P10_A", ""); return err }},
		{"decrypt empty ciphertext", func() error { _, err := Decrypt("", "pw"); return err }},
		{"decrypt empty password", func() error { _, err := Decrypt("abcd", ""); return err }},
		{"decrypt bad armor", func() error { _, err := Decrypt("not base64 !!!", "pw"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, types.ErrEncryption) {
				t.Errorf("error = %v, want ENCRYPTION", err)
			}
		})
	}
}

func TestDecryptQRData(t *testing.T) {
	ciphertext, err := Encrypt("Q4_P100_BDAC", "grading")
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecryptQRData(ciphertext, "grading")
	if err != nil {
		t.Fatalf("DecryptQRData failed: %v", err)
	}
	if decoded.NumQuestions != 4 || decoded.TotalPoints != 100 || decoded.Letters != "BDAC" {
		t.Errorf("decoded = %+v", decoded)
	}
	wantAnswers := []int{1, 3, 0, 2}
	for i, a := range wantAnswers {
		if decoded.Answers[i] != a {
			t.Errorf("Answers[%d] = %d, want %d", i, decoded.Answers[i], a)
		}
	}

	if _, err := DecryptQRData(ciphertext, "not grading"); err == nil {
		t.Error("DecryptQRData should fail with the wrong password")
	}
}

func TestParsePayload_Invalid(t *testing.T) {
	if _, err := ParsePayload("garbage"); !errors.Is(err, types.ErrEncryption) {
		t.Errorf("error = %v, want ENCRYPTION", err)
	}
}
