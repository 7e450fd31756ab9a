package wallet

import "crypto/sha256"

// MnemonicFromIdentity deterministically maps an opaque identity token to a
// 12-word mnemonic: SHA-256 over the token's UTF-8 bytes, first 16 bytes of
// the digest as entropy. The same token always reproduces the same mnemonic
// and therefore the same wallet — that is the recovery mechanism.
//
// Security property: the token is the wallet. Anyone who learns the identity
// token can reconstruct the private key. Callers must treat tokens with the
// same care as key material.
func MnemonicFromIdentity(token string) (string, error) {
	digest := sha256.Sum256([]byte(token))
	return MnemonicFromEntropy(digest[:16])
}
