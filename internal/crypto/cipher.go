// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// documentCipher is the private implementation of [Cipher].
type documentCipher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. low-power field tablets).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewDocumentCipher constructs a [Cipher] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewDocumentCipher() Cipher {
	return &documentCipher{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// DeriveKey implements [Cipher]. It derives a 256-bit data key from the
// passphrase and salt using Argon2id with the parameters stored in the
// receiver.
func (c *documentCipher) DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		c.argonTime,
		c.argonMemory,
		c.argonThreads,
		c.argonKeyLen,
	)
}

// GenerateSalt implements [Cipher]. It reads 16 random bytes from the OS
// CSPRNG.
func (c *documentCipher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// EncryptDocument implements [Cipher]. The payload is JSON-serialized and
// sealed with AES-256-GCM. A random 12-byte nonce is prepended to the
// ciphertext so that decryption can locate it: blob = nonce ‖ ciphertext.
func (c *documentCipher) EncryptDocument(fields map[string]any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal document fields: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// DecryptDocument implements [Cipher]. It splits the nonce off the blob,
// opens the ciphertext and unmarshals the recovered JSON payload. Returns an
// error if authentication fails (wrong key or tampered blob).
func (c *documentCipher) DecryptDocument(blob []byte, key []byte) (map[string]any, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt document: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal document fields: %w", err)
	}

	return fields, nil
}
