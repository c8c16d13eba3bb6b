package answerkey

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jaguilar992/exam-generator/types"
)

// Key derivation parameters. The salt is a fixed domain-separation
// constant: every cipher parameter must be reproducible from the password
// alone, because the ciphertext is the only thing the QR symbol carries.
const (
	kdfSalt       = "examgen/answerkey/v1"
	kdfIterations = 4096
	keyBytes      = 32
)

// textArmor makes the ciphertext printable and QR-safe.
var textArmor = base64.RawURLEncoding

func deriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(kdfSalt), kdfIterations, keyBytes, sha256.New)
}

// keystream returns an AES-CTR stream for the password-derived key. The
// zero IV is deliberate: the construction must be deterministic, and each
// password/payload pair is encrypted once.
func keystream(password string) (cipher.Stream, error) {
	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return nil, types.WrapError(types.ErrCodeEncryption, "cipher setup failed", err)
	}
	iv := make([]byte, aes.BlockSize)
	return cipher.NewCTR(block, iv), nil
}

// Encrypt encrypts plaintext with a password-derived keystream and armors
// the result as printable text.
func Encrypt(plaintext, password string) (string, error) {
	if plaintext == "" {
		return "", types.NewError(types.ErrCodeEncryption, "cannot encrypt empty text")
	}
	if password == "" {
		return "", types.NewError(types.ErrCodeEncryption, "password cannot be empty")
	}

	stream, err := keystream(password)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(plaintext))
	stream.XORKeyStream(out, []byte(plaintext))
	return textArmor.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Decrypting with a wrong password does not
// fail here; it yields bytes the answer codec rejects.
func Decrypt(ciphertext, password string) (string, error) {
	if ciphertext == "" {
		return "", types.NewError(types.ErrCodeEncryption, "cannot decrypt empty text")
	}
	if password == "" {
		return "", types.NewError(types.ErrCodeEncryption, "password cannot be empty")
	}

	raw, err := textArmor.DecodeString(ciphertext)
	if err != nil {
		return "", types.WrapError(types.ErrCodeEncryption, "malformed ciphertext", err)
	}
	stream, err := keystream(password)
	if err != nil {
		return "", err
	}
	out := make([]byte, len(raw))
	stream.XORKeyStream(out, raw)
	return string(out), nil
}
