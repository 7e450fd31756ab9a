package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation path constants for the ethereum account chain.
// Full path: m/44'/60'/0'/0/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeEther is the registered ethereum coin type (hardened).
	CoinTypeEther = bip32.FirstHardenedChild + 60
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed via a single
// HMAC-SHA512 over the BIP-32 domain-separation key ("Bitcoin seed").
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// PrivateKeyBytes returns the raw 32-byte private key scalar.
func (k *HDKey) PrivateKeyBytes() []byte {
	raw := k.key.Key
	// Some BIP-32 implementations keep a leading 0x00 pad on private keys.
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// MasterKeyScalar returns the master key's private scalar, used directly as
// the wallet private key (path "m", no child-derivation walk).
//
// This deviates from the m/44'/60'/0'/0/0 path most ethereum wallets expect:
// importing the same mnemonic elsewhere yields a different address. The
// shortcut is kept for compatibility with wallets already derived this way;
// standards-path derivation is available via AccountKeyScalar.
func MasterKeyScalar(seed []byte) ([]byte, error) {
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	return master.PrivateKeyBytes(), nil
}

// AccountKeyScalar derives the private scalar at m/44'/60'/0'/0/index,
// the path interoperable with standard ethereum wallet software.
func AccountKeyScalar(seed []byte, index uint32) ([]byte, error) {
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	key, err := master.DerivePath(
		PurposeBIP44,
		CoinTypeEther,
		bip32.FirstHardenedChild,
		0,
		index,
	)
	if err != nil {
		return nil, err
	}
	return key.PrivateKeyBytes(), nil
}
