// Package ledger is the external ledger-node collaborator: a narrow
// JSON-RPC surface the wallet core calls for gas pricing, balances, and
// transaction broadcast. The node is untrusted infrastructure; every call
// takes a context and the caller owns timeouts and retries.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrNodeUnavailable is returned when the node cannot be reached.
var ErrNodeUnavailable = errors.New("ledger node unavailable")

// RejectedError is returned when the node refuses a submitted transaction.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transaction rejected by node: %s", e.Reason)
}

// Node is the collaborator contract consumed by the wallet manager.
// Implementations must be safe for concurrent use.
type Node interface {
	// GasPrice returns the suggested gas price in wei.
	GasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas estimates the gas units for a plain value transfer.
	EstimateGas(ctx context.Context, from, to common.Address, value *big.Int) (uint64, error)

	// Balance returns the current balance of an address in wei.
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)

	// PendingNonce returns the next account nonce including pending txs.
	PendingNonce(ctx context.Context, addr common.Address) (uint64, error)

	// SubmitTransaction broadcasts a signed, RLP-encoded transaction and
	// returns its hash. May fail with ErrNodeUnavailable or *RejectedError.
	SubmitTransaction(ctx context.Context, raw []byte) (string, error)
}

// Client implements Node over an ethereum JSON-RPC endpoint.
type Client struct {
	eth *ethclient.Client
}

// Dial connects to the node at the given endpoint URL.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrNodeUnavailable, endpoint, err)
	}
	return &Client{eth: eth}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GasPrice returns the suggested gas price in wei.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: gas price: %v", ErrNodeUnavailable, err)
	}
	return price, nil
}

// EstimateGas estimates the gas units for a plain value transfer.
func (c *Client) EstimateGas(ctx context.Context, from, to common.Address, value *big.Int) (uint64, error) {
	gas, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: estimate gas: %v", ErrNodeUnavailable, err)
	}
	return gas, nil
}

// Balance returns the current balance of an address in wei.
func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	bal, err := c.eth.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: balance: %v", ErrNodeUnavailable, err)
	}
	return bal, nil
}

// PendingNonce returns the next account nonce including pending txs.
func (c *Client) PendingNonce(ctx context.Context, addr common.Address) (uint64, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("%w: pending nonce: %v", ErrNodeUnavailable, err)
	}
	return nonce, nil
}

// SubmitTransaction broadcasts a signed, RLP-encoded transaction.
// A decode failure or node refusal surfaces as *RejectedError; transport
// errors cannot be told apart from refusals at this layer, so any error
// from the send itself is treated as a rejection with the node's reason.
func (c *Client) SubmitTransaction(ctx context.Context, raw []byte) (string, error) {
	var tx types.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return "", &RejectedError{Reason: fmt.Sprintf("malformed transaction: %v", err)}
	}
	if err := c.eth.SendTransaction(ctx, &tx); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrNodeUnavailable, err)
		}
		return "", &RejectedError{Reason: err.Error()}
	}
	return tx.Hash().Hex(), nil
}
