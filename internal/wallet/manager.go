package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/arclight-labs/arcwallet/internal/ledger"
	"github.com/arclight-labs/arcwallet/internal/log"
	"github.com/arclight-labs/arcwallet/pkg/keys"
)

// weiPerEther converts ether amounts to wei minor units.
var weiPerEther = decimal.New(1, 18)

// Options configures a Manager.
type Options struct {
	// ChainID is the EIP-155 replay-protection chain identifier.
	ChainID int64

	// StandardDerivation derives keys at m/44'/60'/0'/0/0 instead of using
	// the master key scalar directly. Off by default: existing wallets were
	// derived with the master-key shortcut and would change address.
	StandardDerivation bool
}

// Manager composes the derivation pipeline into the three wallet-creation
// paths and exposes balance/send via the ledger-node collaborator.
type Manager struct {
	node ledger.Node
	opts Options
}

// NewManager creates a Manager backed by the given ledger node.
func NewManager(node ledger.Node, opts Options) *Manager {
	return &Manager{node: node, opts: opts}
}

// ChainID returns the configured chain identifier.
func (m *Manager) ChainID() *big.Int {
	return big.NewInt(m.opts.ChainID)
}

// scalarFromSeed resolves seed bytes to the wallet's private scalar
// according to the configured derivation mode.
func (m *Manager) scalarFromSeed(seed []byte) ([]byte, error) {
	if m.opts.StandardDerivation {
		return AccountKeyScalar(seed, 0)
	}
	return MasterKeyScalar(seed)
}

// walletFromMnemonic runs the shared validate → seed → derive → wrap chain.
func (m *Manager) walletFromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	scalar, err := m.scalarFromSeed(seed)
	if err != nil {
		return nil, err
	}
	key, err := keys.FromBytes(scalar)
	if err != nil {
		return nil, err
	}
	return &Wallet{mnemonic: mnemonic, key: key}, nil
}

// CreateFromMnemonic creates a wallet from a BIP-39 mnemonic. An empty or
// whitespace-only mnemonic generates a fresh random one instead of failing;
// the caller reads it back via Wallet.Mnemonic for backup.
func (m *Manager) CreateFromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		fresh, err := GenerateMnemonic(DefaultEntropyBits)
		if err != nil {
			return nil, &CreateError{Source: SourceMnemonic, Err: err}
		}
		mnemonic = fresh
	}

	w, err := m.walletFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, &CreateError{Source: SourceMnemonic, Err: err}
	}
	log.Wallet.Debug().Str("address", w.Address().Hex()).Msg("wallet created from mnemonic")
	return w, nil
}

// CreateFromPrivateKey creates a wallet directly from a hex-encoded private
// key, skipping derivation. A missing "0x" prefix is tolerated.
func (m *Manager) CreateFromPrivateKey(hexKey string) (*Wallet, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, &CreateError{
			Source: SourcePrivateKey,
			Err:    fmt.Errorf("%w: empty", keys.ErrInvalidKey),
		}
	}
	if !strings.HasPrefix(hexKey, "0x") && !strings.HasPrefix(hexKey, "0X") {
		hexKey = "0x" + hexKey
	}

	key, err := keys.FromHex(hexKey)
	if err != nil {
		return nil, &CreateError{Source: SourcePrivateKey, Err: err}
	}
	w := &Wallet{key: key}
	log.Wallet.Debug().Str("address", w.Address().Hex()).Msg("wallet created from private key")
	return w, nil
}

// CreateFromIdentity creates a wallet deterministically from an external
// identity token: the token is hashed to mnemonic entropy, then the mnemonic
// path runs as usual. The same token always yields the same wallet; see
// MnemonicFromIdentity for the security trade-off.
func (m *Manager) CreateFromIdentity(token string) (*Wallet, error) {
	if token == "" {
		return nil, &CreateError{
			Source: SourceIdentity,
			Err:    fmt.Errorf("empty identity token"),
		}
	}

	mnemonic, err := MnemonicFromIdentity(token)
	if err != nil {
		return nil, &CreateError{Source: SourceIdentity, Err: err}
	}
	w, err := m.walletFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, &CreateError{Source: SourceIdentity, Err: err}
	}
	log.Wallet.Debug().Str("address", w.Address().Hex()).Msg("wallet created from identity")
	return w, nil
}

// Balance queries the wallet's balance in wei from the ledger node.
func (m *Manager) Balance(ctx context.Context, w *Wallet) (*big.Int, error) {
	return m.node.Balance(ctx, w.Address())
}

// Send transfers amount (in ether) from the wallet to the recipient: it
// converts the amount to wei, queries gas price, gas limit, and pending
// nonce from the ledger node, signs the transaction locally, and submits it.
// Returns the transaction hash.
//
// Send is not idempotent — calling it twice transfers twice. Duplicate
// suppression by nonce is the node's concern.
func (m *Manager) Send(ctx context.Context, w *Wallet, to common.Address, amount decimal.Decimal) (string, error) {
	wei := amount.Mul(weiPerEther)
	if wei.IsNegative() {
		return "", fmt.Errorf("%w: amount %s", keys.ErrNegativeValue, amount)
	}
	value := wei.BigInt()

	gasPrice, err := m.node.GasPrice(ctx)
	if err != nil {
		return "", err
	}
	gasLimit, err := m.node.EstimateGas(ctx, w.Address(), to, value)
	if err != nil {
		return "", err
	}
	nonce, err := m.node.PendingNonce(ctx, w.Address())
	if err != nil {
		return "", err
	}

	raw, err := w.key.SignTransaction(keys.TxRequest{
		To:       to,
		Value:    value,
		GasLimit: gasLimit,
		GasPrice: gasPrice,
		Nonce:    nonce,
	}, m.ChainID())
	if err != nil {
		return "", err
	}

	txHash, err := m.node.SubmitTransaction(ctx, raw)
	if err != nil {
		return "", err
	}

	log.Wallet.Info().
		Str("from", w.Address().Hex()).
		Str("to", to.Hex()).
		Str("value_wei", value.String()).
		Uint64("nonce", nonce).
		Str("tx_hash", txHash).
		Msg("transaction submitted")
	return txHash, nil
}
