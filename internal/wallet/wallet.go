package wallet

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/arclight-labs/arcwallet/pkg/keys"
)

// Wallet is a fully-formed externally-owned account: key material plus the
// mnemonic it was derived from, if any. A Wallet is immutable after creation
// and safe for concurrent signing.
type Wallet struct {
	mnemonic string // empty when imported from a raw private key
	key      *keys.Key
}

// Address returns the account address.
func (w *Wallet) Address() common.Address {
	return w.key.Address()
}

// Mnemonic returns the mnemonic this wallet was derived from, or "" for
// wallets imported from a raw private key. Callers display it for backup;
// it is never logged.
func (w *Wallet) Mnemonic() string {
	return w.mnemonic
}

// Key returns the underlying key material.
func (w *Wallet) Key() *keys.Key {
	return w.key
}

// SignPersonalMessage signs a message under EIP-191 framing, the canonical
// wallet "personal sign" used for authentication challenges.
func (w *Wallet) SignPersonalMessage(message []byte) (keys.Signature, error) {
	return w.key.SignPersonalMessage(message)
}
