package keys

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrMissingField is returned when a required transaction field is absent.
	ErrMissingField = errors.New("missing transaction field")

	// ErrNegativeValue is returned when value or gas price is negative.
	ErrNegativeValue = errors.New("negative transaction value")
)

// TxRequest holds the fields of a value transfer waiting to be signed.
// All fields except Data are required. A request is read-only once signed.
type TxRequest struct {
	To       common.Address
	Value    *big.Int // wei
	GasLimit uint64
	GasPrice *big.Int // wei
	Nonce    uint64
	Data     []byte
}

// validate checks the request before any encoding or signing happens.
func (req *TxRequest) validate() error {
	if req.To == (common.Address{}) {
		return fmt.Errorf("%w: to", ErrMissingField)
	}
	if req.Value == nil {
		return fmt.Errorf("%w: value", ErrMissingField)
	}
	if req.Value.Sign() < 0 {
		return fmt.Errorf("%w: value", ErrNegativeValue)
	}
	if req.GasPrice == nil {
		return fmt.Errorf("%w: gas price", ErrMissingField)
	}
	if req.GasPrice.Sign() < 0 {
		return fmt.Errorf("%w: gas price", ErrNegativeValue)
	}
	if req.GasLimit == 0 {
		return fmt.Errorf("%w: gas limit", ErrMissingField)
	}
	return nil
}

// SignTransaction signs a value transfer with EIP-155 replay protection and
// returns the RLP-encoded signed transaction, ready to broadcast. Signing is
// local and deterministic; no network interaction happens here.
func (k *Key) SignTransaction(req TxRequest, chainID *big.Int) ([]byte, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("%w: chain id", ErrMissingField)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx := types.NewTransaction(req.Nonce, req.To, req.Value, req.GasLimit, req.GasPrice, req.Data)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), k.priv)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return raw, nil
}
