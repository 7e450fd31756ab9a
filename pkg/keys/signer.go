package keys

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureSize is the length of an encoded signature: r(32) | s(32) | v(1).
const SignatureSize = 65

// personalPrefix is the EIP-191 framing for personal-message signing.
const personalPrefix = "\x19Ethereum Signed Message:\n"

// Signature is an ECDSA signature with a recovery id.
type Signature struct {
	R [32]byte
	S [32]byte
	V byte
}

// Bytes returns the 65-byte r || s || v encoding.
func (sig Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out[:32], sig.R[:])
	copy(out[32:64], sig.S[:])
	out[64] = sig.V
	return out
}

// ParseSignature decodes a 65-byte r || s || v signature.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	var sig Signature
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:64])
	sig.V = b[64]
	return sig, nil
}

// recid returns the 0/1 recovery id, normalizing the 27/28 wallet convention.
func (sig Signature) recid() byte {
	if sig.V >= 27 {
		return sig.V - 27
	}
	return sig.V
}

// SignDigest signs a pre-hashed 32-byte digest. The nonce is deterministic
// (RFC 6979), so identical (key, digest) pairs produce identical signatures.
// The recovery id is 0 or 1.
func (k *Key) SignDigest(digest []byte) (Signature, error) {
	if len(digest) != 32 {
		return Signature{}, fmt.Errorf("digest must be 32 bytes, got %d", len(digest))
	}
	raw, err := ethcrypto.Sign(digest, k.priv)
	if err != nil {
		return Signature{}, fmt.Errorf("sign digest: %w", err)
	}
	return ParseSignature(raw)
}

// PersonalMessageHash returns the keccak-256 hash of a message under the
// EIP-191 "\x19Ethereum Signed Message:\n" + length framing. The framing
// prevents a signed message from doubling as a valid transaction.
func PersonalMessageHash(message []byte) []byte {
	prefix := fmt.Sprintf("%s%d", personalPrefix, len(message))
	return ethcrypto.Keccak256([]byte(prefix), message)
}

// SignPersonalMessage signs a message under EIP-191 framing. The recovery id
// follows the 27/28 wallet convention.
func (k *Key) SignPersonalMessage(message []byte) (Signature, error) {
	sig, err := k.SignDigest(PersonalMessageHash(message))
	if err != nil {
		return Signature{}, err
	}
	sig.V += 27
	return sig, nil
}

// RecoverDigest recovers the signer's address from a digest and signature.
// Accepts both 0/1 and 27/28 recovery ids.
func RecoverDigest(digest []byte, sig Signature) (common.Address, error) {
	raw := sig.Bytes()
	raw[64] = sig.recid()
	pub, err := ethcrypto.SigToPub(digest, raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover public key: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// RecoverPersonal recovers the signer's address from an EIP-191 personal
// message and its signature.
func RecoverPersonal(message []byte, sig Signature) (common.Address, error) {
	return RecoverDigest(PersonalMessageHash(message), sig)
}
