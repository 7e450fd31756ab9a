package keys

import (
	"bytes"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func TestSignDigest(t *testing.T) {
	k := testKey(t)
	digest := ethcrypto.Keccak256([]byte("test message"))

	sig, err := k.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest() error: %v", err)
	}

	if sig.V != 0 && sig.V != 1 {
		t.Errorf("recovery id = %d, want 0 or 1", sig.V)
	}

	addr, err := RecoverDigest(digest, sig)
	if err != nil {
		t.Fatalf("RecoverDigest() error: %v", err)
	}
	if addr != k.Address() {
		t.Errorf("recovered address = %s, want %s", addr.Hex(), k.Address().Hex())
	}
}

func TestSignDigest_Deterministic(t *testing.T) {
	// RFC 6979 nonces: identical (key, digest) pairs yield identical signatures.
	k := testKey(t)
	digest := ethcrypto.Keccak256([]byte("determinism check"))

	sig1, err := k.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest() error: %v", err)
	}
	sig2, err := k.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest() error: %v", err)
	}

	if !bytes.Equal(sig1.Bytes(), sig2.Bytes()) {
		t.Error("repeated signing of the same digest should be bit-identical")
	}
}

func TestSignDigest_WrongLength(t *testing.T) {
	k := testKey(t)

	for _, n := range []int{0, 31, 33, 64} {
		if _, err := k.SignDigest(make([]byte, n)); err == nil {
			t.Errorf("SignDigest(%d bytes) should fail", n)
		}
	}
}

func TestSignPersonalMessage(t *testing.T) {
	k := testKey(t)
	message := []byte("hello arcwallet")

	sig, err := k.SignPersonalMessage(message)
	if err != nil {
		t.Fatalf("SignPersonalMessage() error: %v", err)
	}

	if sig.V != 27 && sig.V != 28 {
		t.Errorf("recovery id = %d, want 27 or 28", sig.V)
	}

	addr, err := RecoverPersonal(message, sig)
	if err != nil {
		t.Fatalf("RecoverPersonal() error: %v", err)
	}
	if addr != k.Address() {
		t.Errorf("recovered address = %s, want %s", addr.Hex(), k.Address().Hex())
	}
}

func TestSignPersonalMessage_FramingDiffersFromRawHash(t *testing.T) {
	// The EIP-191 prefix must change the digest: a personal-sign signature
	// over a message is not a signature over keccak(message).
	k := testKey(t)
	message := []byte("framed")

	personal, err := k.SignPersonalMessage(message)
	if err != nil {
		t.Fatalf("SignPersonalMessage() error: %v", err)
	}
	raw, err := k.SignDigest(ethcrypto.Keccak256(message))
	if err != nil {
		t.Fatalf("SignDigest() error: %v", err)
	}

	if personal.R == raw.R && personal.S == raw.S {
		t.Error("personal-sign should not equal raw keccak signing")
	}
}

func TestPersonalMessageHash_LengthInPrefix(t *testing.T) {
	// Different-length messages with a shared prefix must hash differently
	// even when one is a prefix of the other.
	h1 := PersonalMessageHash([]byte("ab"))
	h2 := PersonalMessageHash([]byte("abc"))
	if bytes.Equal(h1, h2) {
		t.Error("hashes of different messages should differ")
	}
	if len(h1) != 32 {
		t.Errorf("hash length = %d, want 32", len(h1))
	}
}

func TestSignatureBytes_RoundTrip(t *testing.T) {
	k := testKey(t)
	sig, err := k.SignPersonalMessage([]byte("round trip"))
	if err != nil {
		t.Fatalf("SignPersonalMessage() error: %v", err)
	}

	encoded := sig.Bytes()
	if len(encoded) != SignatureSize {
		t.Fatalf("encoded length = %d, want %d", len(encoded), SignatureSize)
	}

	decoded, err := ParseSignature(encoded)
	if err != nil {
		t.Fatalf("ParseSignature() error: %v", err)
	}
	if decoded != sig {
		t.Error("decode(encode(sig)) should equal sig")
	}
}

func TestParseSignature_WrongLength(t *testing.T) {
	for _, n := range []int{0, 64, 66} {
		if _, err := ParseSignature(make([]byte, n)); err == nil {
			t.Errorf("ParseSignature(%d bytes) should fail", n)
		}
	}
}

func TestRecoverDigest_AcceptsBothVConventions(t *testing.T) {
	k := testKey(t)
	digest := ethcrypto.Keccak256([]byte("v convention"))

	sig, err := k.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest() error: %v", err)
	}

	// Raw 0/1 recovery id.
	addr, err := RecoverDigest(digest, sig)
	if err != nil {
		t.Fatalf("RecoverDigest(0/1) error: %v", err)
	}
	if addr != k.Address() {
		t.Errorf("recovered address = %s, want %s", addr.Hex(), k.Address().Hex())
	}

	// 27/28 wallet convention.
	sig.V += 27
	addr, err = RecoverDigest(digest, sig)
	if err != nil {
		t.Fatalf("RecoverDigest(27/28) error: %v", err)
	}
	if addr != k.Address() {
		t.Errorf("recovered address = %s, want %s", addr.Hex(), k.Address().Hex())
	}
}
