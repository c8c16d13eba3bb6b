package pdf

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// PermAll grants every permission bit; the password gate alone
// protects the answer key.
const PermAll int32 = -4

// Encryption holds the AES-256 (V5/R6) standard security handler state.
// Based on ISO 32000-2 section 7.6.4.
type Encryption struct {
	V               int
	R               int
	KeyLength       int
	P               int32
	O               []byte
	U               []byte
	OE              []byte
	UE              []byte
	Perms           []byte
	EncryptMetadata bool

	fileKey []byte // the random 32-byte file encryption key
}

// Protect enables AES-256 encryption for the document with the given
// user and owner passwords, and installs the encryption dictionary.
func (w *Writer) Protect(userPassword, ownerPassword string, permissions int32) error {
	enc, err := setupAES256Encryption([]byte(userPassword), []byte(ownerPassword), permissions, true)
	if err != nil {
		return err
	}

	encryptObjNum := w.AddObject(enc.dictionary())
	w.encryptRef = fmt.Sprintf("%d 0 R", encryptObjNum)
	w.encryption = enc
	return nil
}

// Encrypted reports whether the writer will emit an encrypted file.
func (w *Writer) Encrypted() bool {
	return w.encryption != nil
}

// setupAES256Encryption computes the U/O/UE/OE/Perms values for the
// AES-256 handler. Both password records wrap the same random file key.
func setupAES256Encryption(userPassword, ownerPassword []byte, permissions int32, encryptMetadata bool) (*Encryption, error) {
	userPassword = truncatePassword(userPassword)
	ownerPassword = truncatePassword(ownerPassword)

	fileKey := make([]byte, 32)
	if _, err := rand.Read(fileKey); err != nil {
		return nil, fmt.Errorf("failed to generate file encryption key: %v", err)
	}

	salts := make([]byte, 32)
	if _, err := rand.Read(salts); err != nil {
		return nil, fmt.Errorf("failed to generate salts: %v", err)
	}
	userValidationSalt := salts[0:8]
	userKeySalt := salts[8:16]
	ownerValidationSalt := salts[16:24]
	ownerKeySalt := salts[24:32]

	uValue := computeUValue(userPassword, userValidationSalt, userKeySalt)
	ueValue, err := wrapFileKey(fileKey, hash2B(userPassword, userKeySalt, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to compute UE value: %v", err)
	}

	oValue := computeOValue(ownerPassword, ownerValidationSalt, ownerKeySalt, uValue)
	oeValue, err := wrapFileKey(fileKey, hash2B(ownerPassword, ownerKeySalt, uValue))
	if err != nil {
		return nil, fmt.Errorf("failed to compute OE value: %v", err)
	}

	permsValue, err := computePermsValue(fileKey, permissions, encryptMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to compute Perms value: %v", err)
	}

	return &Encryption{
		V:               5,
		R:               6,
		KeyLength:       32, // 256 bits
		P:               permissions,
		O:               oValue,
		U:               uValue,
		OE:              oeValue,
		UE:              ueValue,
		Perms:           permsValue,
		EncryptMetadata: encryptMetadata,
		fileKey:         fileKey,
	}, nil
}

// truncatePassword limits a UTF-8 password to 127 bytes as the
// standard handler requires.
func truncatePassword(password []byte) []byte {
	if len(password) > 127 {
		return password[:127]
	}
	return password
}

// computeUValue computes the 48-byte U value for user password
// validation: hash(32) + validation salt(8) + key salt(8).
// Based on ISO 32000-2 section 7.6.4.4.8.
func computeUValue(password, validationSalt, keySalt []byte) []byte {
	hashed := hash2B(password, validationSalt, nil)

	result := make([]byte, 48)
	copy(result[:32], hashed)
	copy(result[32:40], validationSalt)
	copy(result[40:48], keySalt)
	return result
}

// computeOValue computes the 48-byte O value for owner password
// validation. The owner hash additionally covers the full U value.
// Based on ISO 32000-2 section 7.6.4.4.9.
func computeOValue(password, validationSalt, keySalt, uValue []byte) []byte {
	hashed := hash2B(password, validationSalt, uValue)

	result := make([]byte, 48)
	copy(result[:32], hashed)
	copy(result[32:40], validationSalt)
	copy(result[40:48], keySalt)
	return result
}

// hash2B is the R6 password hash (ISO 32000-2 algorithm 2.B): an
// iterated SHA-256/384/512 schedule keyed by AES-128-CBC rounds.
// udata is the 48-byte U value for owner operations, nil otherwise.
func hash2B(password, salt, udata []byte) []byte {
	h := sha256.New()
	h.Write(password)
	h.Write(salt)
	h.Write(udata)
	key := h.Sum(nil)

	for round := 0; ; round++ {
		chunk := make([]byte, 0, len(password)+len(key)+len(udata))
		chunk = append(chunk, password...)
		chunk = append(chunk, key...)
		chunk = append(chunk, udata...)
		k1 := bytes.Repeat(chunk, 64)

		block, _ := aes.NewCipher(key[:16])
		encrypted := make([]byte, len(k1))
		cipher.NewCBCEncrypter(block, key[16:32]).CryptBlocks(encrypted, k1)

		var sum int
		for _, b := range encrypted[:16] {
			sum += int(b)
		}
		switch sum % 3 {
		case 0:
			digest := sha256.Sum256(encrypted)
			key = digest[:]
		case 1:
			digest := sha512.Sum384(encrypted)
			key = digest[:]
		case 2:
			digest := sha512.Sum512(encrypted)
			key = digest[:]
		}

		if round >= 63 && int(encrypted[len(encrypted)-1]) <= round-31 {
			break
		}
	}

	return key[:32]
}

// wrapFileKey encrypts the file key with a password-derived key using
// AES-256-CBC with a zero IV and no padding, as /UE and /OE require.
func wrapFileKey(fileKey, wrappingKey []byte) ([]byte, error) {
	block, err := aes.NewCipher(wrappingKey)
	if err != nil {
		return nil, err
	}
	wrapped := make([]byte, len(fileKey))
	iv := make([]byte, 16)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(wrapped, fileKey)
	return wrapped, nil
}

// computePermsValue encrypts the permissions block with the file key
// (AES-256-ECB) for the /Perms entry.
func computePermsValue(fileKey []byte, permissions int32, encryptMetadata bool) ([]byte, error) {
	perms := make([]byte, 16)
	p := uint32(permissions)
	perms[0] = byte(p)
	perms[1] = byte(p >> 8)
	perms[2] = byte(p >> 16)
	perms[3] = byte(p >> 24)
	perms[4] = 0xFF
	perms[5] = 0xFF
	perms[6] = 0xFF
	perms[7] = 0xFF
	if encryptMetadata {
		perms[8] = 'T'
	} else {
		perms[8] = 'F'
	}
	perms[9] = 'a'
	perms[10] = 'd'
	perms[11] = 'b'
	if _, err := rand.Read(perms[12:16]); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(fileKey)
	if err != nil {
		return nil, err
	}
	encrypted := make([]byte, 16)
	block.Encrypt(encrypted, perms)
	return encrypted, nil
}

// encryptStream encrypts stream data with the file key: AES-256-CBC,
// random IV prepended, PKCS#7 padding (the AESV3 crypt filter). V5
// uses the file key directly, with no per-object derivation.
func (e *Encryption) encryptStream(data []byte) ([]byte, error) {
	iv := make([]byte, 16)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	padLen := 16 - (len(data) % 16)
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	block, err := aes.NewCipher(e.fileKey)
	if err != nil {
		return nil, err
	}
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)

	result := make([]byte, 16+len(encrypted))
	copy(result[:16], iv)
	copy(result[16:], encrypted)
	return result, nil
}

// dictionary renders the encryption dictionary object content.
func (e *Encryption) dictionary() []byte {
	var buf bytes.Buffer
	buf.WriteString("<<\n")
	buf.WriteString("/Filter /Standard\n")
	buf.WriteString(fmt.Sprintf("/V %d\n", e.V))
	buf.WriteString(fmt.Sprintf("/R %d\n", e.R))
	buf.WriteString(fmt.Sprintf("/Length %d\n", e.KeyLength*8)) // in bits
	buf.WriteString(fmt.Sprintf("/P %d\n", e.P))

	writeHex := func(name string, value []byte) {
		buf.WriteString("/" + name + " <")
		for _, b := range value {
			buf.WriteString(fmt.Sprintf("%02X", b))
		}
		buf.WriteString(">\n")
	}
	writeHex("U", e.U)
	writeHex("O", e.O)
	writeHex("UE", e.UE)
	writeHex("OE", e.OE)
	writeHex("Perms", e.Perms)

	buf.WriteString("/CF <</StdCF <</AuthEvent /DocOpen /CFM /AESV3 /Length 32>>>>\n")
	buf.WriteString("/StmF /StdCF\n")
	// The writer leaves literal strings (Info entries) in the clear;
	// only streams carry sheet payload.
	buf.WriteString("/StrF /Identity\n")

	if !e.EncryptMetadata {
		buf.WriteString("/EncryptMetadata false\n")
	}

	buf.WriteString(">>")
	return buf.Bytes()
}
