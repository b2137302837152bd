package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher is the call contract the sync engine consumes for at-rest document
// encryption. It knows nothing about storage, the network or sessions; its
// only job is turning payload fields into opaque blobs and back.
//
// Decrypt failures are classified by the orchestrator as per-document errors
// and never abort a sync batch.
type Cipher interface {
	// DeriveKey derives a 256-bit data key from the device passphrase and a
	// per-device salt using Argon2id. The key exists only in agent memory.
	DeriveKey(passphrase string, salt []byte) []byte

	// GenerateSalt returns a random 16-byte salt for DeriveKey. The salt is
	// not a secret and is stored alongside the local database.
	GenerateSalt() ([]byte, error)

	// EncryptDocument serializes fields to JSON and seals them with
	// AES-256-GCM under key. The returned blob is nonce ‖ ciphertext.
	EncryptDocument(fields map[string]any, key []byte) ([]byte, error)

	// DecryptDocument opens a blob produced by EncryptDocument and returns
	// the recovered payload fields. Fails if the key is wrong or the blob
	// was tampered with.
	DecryptDocument(blob []byte, key []byte) (map[string]any, error)
}
