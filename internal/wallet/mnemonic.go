// Package wallet implements the key-derivation core: mnemonic encoding,
// seed stretching, hierarchical key derivation, and wallet creation.
package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// DefaultEntropyBits is the entropy size for freshly generated mnemonics (12 words).
const DefaultEntropyBits = 128

// validEntropyLen reports whether n is a valid BIP-39 entropy byte length.
func validEntropyLen(n int) bool {
	switch n {
	case 16, 20, 24, 28, 32:
		return true
	}
	return false
}

// MnemonicFromEntropy encodes raw entropy as a BIP-39 mnemonic.
// Entropy must be 16, 20, 24, 28, or 32 bytes (12 to 24 words).
func MnemonicFromEntropy(entropy []byte) (string, error) {
	if !validEntropyLen(len(entropy)) {
		return "", fmt.Errorf("%w: got %d", ErrInvalidEntropyLength, len(entropy))
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// EntropyFromMnemonic recovers the raw entropy a mnemonic encodes,
// verifying the embedded checksum.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return entropy, nil
}

// GenerateMnemonic creates a new random BIP-39 mnemonic with the given
// entropy size in bits (128, 160, 192, 224, or 256). Entropy is drawn
// from crypto/rand.
func GenerateMnemonic(bits int) (string, error) {
	if !validEntropyLen(bits / 8) {
		return "", fmt.Errorf("%w: got %d bits", ErrInvalidEntropyLength, bits)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum). It is a
// predicate: malformed input returns false, never an error.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
