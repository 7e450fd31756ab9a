package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntropyLength is returned when entropy is not 16, 20, 24, 28, or 32 bytes.
	ErrInvalidEntropyLength = errors.New("entropy must be 16, 20, 24, 28, or 32 bytes")

	// ErrInvalidMnemonic is returned when a mnemonic fails word-list or checksum validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// Source identifies which input a wallet was created from.
type Source string

const (
	SourceMnemonic   Source = "mnemonic"
	SourcePrivateKey Source = "private_key"
	SourceIdentity   Source = "identity"
)

// CreateError wraps any failure during wallet creation, tagged with the
// creation path that failed. The cause is preserved for errors.Is/As.
type CreateError struct {
	Source Source
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create wallet from %s: %v", e.Source, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
