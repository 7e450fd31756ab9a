// Package keys provides secp256k1 key material and the signing operations
// built on it: raw digest signing, EIP-191 personal-message signing, and
// EIP-155 transaction signing.
package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// PrivateKeySize is the length of a private key scalar in bytes.
const PrivateKeySize = 32

// ErrInvalidKey is returned for a scalar that is zero, not less than the
// curve order, or not 32 bytes of valid hex.
var ErrInvalidKey = errors.New("invalid private key")

// Key wraps a secp256k1 private key. A Key is immutable after construction
// and safe for concurrent signing calls.
type Key struct {
	priv *ecdsa.PrivateKey
}

// FromBytes creates a Key from a 32-byte private scalar.
func FromBytes(b []byte) (*Key, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, PrivateKeySize, len(b))
	}

	// Reject zero and out-of-order scalars explicitly before constructing
	// the ECDSA key.
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: scalar not less than curve order", ErrInvalidKey)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidKey)
	}
	s.Zero()

	priv, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Key{priv: priv}, nil
}

// FromHex creates a Key from a hex-encoded scalar, with or without a
// "0x" prefix.
func FromHex(s string) (*Key, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed hex: %v", ErrInvalidKey, err)
	}
	return FromBytes(b)
}

// Generate creates a new random Key from crypto/rand.
func Generate() (*Key, error) {
	priv, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Key{priv: priv}, nil
}

// Address returns the 20-byte account address: keccak-256 of the
// uncompressed public key, last 20 bytes, EIP-55 checksummed by String().
func (k *Key) Address() common.Address {
	return ethcrypto.PubkeyToAddress(k.priv.PublicKey)
}

// PrivateKeyBytes returns the 32-byte private scalar. Explicit export only;
// the scalar is never logged or serialized elsewhere.
func (k *Key) PrivateKeyBytes() []byte {
	return ethcrypto.FromECDSA(k.priv)
}

// PublicKeyBytes returns the uncompressed 65-byte public key (0x04 prefix).
func (k *Key) PublicKeyBytes() []byte {
	return ethcrypto.FromECDSAPub(&k.priv.PublicKey)
}

// Zero wipes the private scalar. The Key must not be used afterwards.
func (k *Key) Zero() {
	b := k.priv.D.Bits()
	for i := range b {
		b[i] = 0
	}
}
