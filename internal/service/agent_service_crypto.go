package service

import (
	"fmt"

	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/models"
)

// sealDocument converts a wire document into its at-rest form. With a key the
// payload fields are sealed into a ciphertext blob; without one the document
// is stored plaintext, which only happens before the device passphrase has
// been entered.
func sealDocument(cipher crypto.Cipher, key []byte, doc models.Document, dirty bool) (models.StoredDocument, error) {
	stored := models.StoredDocument{
		ID:        doc.ID,
		Kind:      doc.Kind,
		SessionID: doc.SessionID,
		Revision:  doc.Revision,
		UpdatedAt: doc.UpdatedAt,
		Dirty:     dirty,
	}

	if len(key) == 0 {
		stored.Fields = doc.Fields
		return stored, nil
	}

	blob, err := cipher.EncryptDocument(doc.Fields, key)
	if err != nil {
		return models.StoredDocument{}, fmt.Errorf("encrypt document %s: %w", doc.ID, err)
	}
	stored.Encrypted = true
	stored.Ciphertext = blob

	return stored, nil
}

// openDocument recovers the wire form of a stored document, decrypting the
// payload when it rests encrypted.
func openDocument(cipher crypto.Cipher, key []byte, stored models.StoredDocument) (models.Document, error) {
	if !stored.Encrypted {
		return stored.Plaintext(), nil
	}

	if len(key) == 0 {
		return models.Document{}, fmt.Errorf("document %s: %w", stored.ID, ErrEncryptionKeyNotSet)
	}

	fields, err := cipher.DecryptDocument(stored.Ciphertext, key)
	if err != nil {
		return models.Document{}, fmt.Errorf("decrypt document %s: %w", stored.ID, err)
	}

	doc := stored.Plaintext()
	doc.Fields = fields

	return doc, nil
}
