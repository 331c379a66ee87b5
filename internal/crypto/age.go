package crypto

import (
	"bytes"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// Encrypt encrypts plaintext using age with a passphrase-based recipient.
func Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext using age with a passphrase-based identity.
func Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

// EncryptArmored encrypts plaintext and wraps the ciphertext in age's
// PEM-style armor so it stays printable. Protected shares use this form
// so they can still travel through paper, QR codes, and copy-paste.
func EncryptArmored(plaintext []byte, passphrase string) (string, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	aw := armor.NewWriter(buf)
	w, err := age.Encrypt(aw, recipient)
	if err != nil {
		return "", err
	}

	if _, err := w.Write(plaintext); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := aw.Close(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// DecryptArmored reverses EncryptArmored.
func DecryptArmored(armored, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, err
	}

	ar := armor.NewReader(bytes.NewReader([]byte(armored)))
	r, err := age.Decrypt(ar, identity)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}

// EncryptSecure encrypts SecureBytes using age with a passphrase-based recipient.
func EncryptSecure(sb *SecureBytes, passphrase string) ([]byte, error) {
	data := sb.Bytes()
	if data == nil {
		return nil, nil
	}
	return Encrypt(data, passphrase)
}

// DecryptSecure decrypts ciphertext into SecureBytes.
func DecryptSecure(ciphertext []byte, passphrase string) (*SecureBytes, error) {
	plaintext, err := Decrypt(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}

	sb, err := SecureBytesFromSlice(plaintext)
	if err != nil {
		return nil, err
	}

	// Zero the temporary plaintext
	for i := range plaintext {
		plaintext[i] = 0
	}

	return sb, nil
}
