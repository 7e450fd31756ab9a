package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMnemonicFromEntropy_RoundTrip(t *testing.T) {
	// All five valid entropy sizes must round-trip exactly.
	for _, size := range []int{16, 20, 24, 28, 32} {
		entropy := make([]byte, size)
		for i := range entropy {
			entropy[i] = byte(i*7 + size)
		}

		mnemonic, err := MnemonicFromEntropy(entropy)
		if err != nil {
			t.Fatalf("MnemonicFromEntropy(%d bytes) error: %v", size, err)
		}
		if !ValidateMnemonic(mnemonic) {
			t.Errorf("mnemonic for %d-byte entropy should validate", size)
		}

		got, err := EntropyFromMnemonic(mnemonic)
		if err != nil {
			t.Fatalf("EntropyFromMnemonic() error: %v", err)
		}
		if !bytes.Equal(got, entropy) {
			t.Errorf("round-trip entropy = %x, want %x", got, entropy)
		}
	}
}

func TestMnemonicFromEntropy_WordCount(t *testing.T) {
	tests := []struct {
		bytes int
		words int
	}{
		{16, 12},
		{20, 15},
		{24, 18},
		{28, 21},
		{32, 24},
	}

	for _, tt := range tests {
		mnemonic, err := MnemonicFromEntropy(make([]byte, tt.bytes))
		if err != nil {
			t.Fatalf("MnemonicFromEntropy(%d bytes) error: %v", tt.bytes, err)
		}
		if got := len(strings.Fields(mnemonic)); got != tt.words {
			t.Errorf("%d-byte entropy: word count = %d, want %d", tt.bytes, got, tt.words)
		}
	}
}

func TestMnemonicFromEntropy_InvalidLength(t *testing.T) {
	for _, size := range []int{0, 1, 15, 17, 31, 33, 64} {
		_, err := MnemonicFromEntropy(make([]byte, size))
		if !errors.Is(err, ErrInvalidEntropyLength) {
			t.Errorf("MnemonicFromEntropy(%d bytes) error = %v, want ErrInvalidEntropyLength", size, err)
		}
	}
}

func TestMnemonicFromEntropy_BitFlipChangesMnemonic(t *testing.T) {
	entropy := make([]byte, 16)
	base, err := MnemonicFromEntropy(entropy)
	if err != nil {
		t.Fatalf("MnemonicFromEntropy() error: %v", err)
	}

	// Any single-bit flip must produce a different, still self-consistent mnemonic.
	for _, flip := range []struct{ byteIdx, bit int }{{0, 0}, {0, 7}, {7, 3}, {15, 0}} {
		flipped := make([]byte, len(entropy))
		copy(flipped, entropy)
		flipped[flip.byteIdx] ^= 1 << flip.bit

		mnemonic, err := MnemonicFromEntropy(flipped)
		if err != nil {
			t.Fatalf("MnemonicFromEntropy() error: %v", err)
		}
		if mnemonic == base {
			t.Errorf("bit flip at byte %d bit %d did not change mnemonic", flip.byteIdx, flip.bit)
		}
		got, err := EntropyFromMnemonic(mnemonic)
		if err != nil {
			t.Fatalf("EntropyFromMnemonic() error: %v", err)
		}
		if !bytes.Equal(got, flipped) {
			t.Errorf("flipped entropy round-trip = %x, want %x", got, flipped)
		}
	}
}

func TestGenerateMnemonic(t *testing.T) {
	mnemonic, err := GenerateMnemonic(DefaultEntropyBits)
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}

	if got := len(strings.Fields(mnemonic)); got != 12 {
		t.Errorf("word count = %d, want 12", got)
	}
	if !ValidateMnemonic(mnemonic) {
		t.Error("generated mnemonic should validate")
	}
}

func TestGenerateMnemonic_Unique(t *testing.T) {
	m1, err := GenerateMnemonic(DefaultEntropyBits)
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}
	m2, err := GenerateMnemonic(DefaultEntropyBits)
	if err != nil {
		t.Fatalf("GenerateMnemonic() error: %v", err)
	}

	if m1 == m2 {
		t.Error("two generated mnemonics should not be identical")
	}
}

func TestGenerateMnemonic_InvalidBits(t *testing.T) {
	for _, bits := range []int{0, 64, 100, 129, 512} {
		if _, err := GenerateMnemonic(bits); !errors.Is(err, ErrInvalidEntropyLength) {
			t.Errorf("GenerateMnemonic(%d) error = %v, want ErrInvalidEntropyLength", bits, err)
		}
	}
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{
			name:     "valid 12-word BIP-39",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
			valid:    true,
		},
		{
			name:     "valid 24-word BIP-39",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
			valid:    true,
		},
		{
			name:     "empty string",
			mnemonic: "",
			valid:    false,
		},
		{
			name:     "unknown word",
			mnemonic: "not a valid mnemonic phrase at all words here more words twelve",
			valid:    false,
		},
		{
			name:     "wrong checksum",
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			valid:    false,
		},
		{
			name:     "single word",
			mnemonic: "abandon",
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateMnemonic(tt.mnemonic); got != tt.valid {
				t.Errorf("ValidateMnemonic() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestEntropyFromMnemonic_Invalid(t *testing.T) {
	_, err := EntropyFromMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon")
	if !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("error = %v, want ErrInvalidMnemonic", err)
	}
}
