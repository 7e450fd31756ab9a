// arcwallet-cli is a command-line client for creating wallets, signing
// messages, and sending value through a remote ledger node.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/arclight-labs/arcwallet/config"
	"github.com/arclight-labs/arcwallet/internal/identity"
	"github.com/arclight-labs/arcwallet/internal/ledger"
	"github.com/arclight-labs/arcwallet/internal/log"
	"github.com/arclight-labs/arcwallet/internal/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	cfg := config.Default()
	configPath := ""

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--config" && len(args) > 1:
			configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--config="):
			configPath = args[0][len("--config="):]
			args = args[1:]
		case args[0] == "--rpc" && len(args) > 1:
			cfg.Node.Endpoint = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			cfg.Node.Endpoint = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--chain-id" && len(args) > 1:
			fmt.Sscanf(args[1], "%d", &cfg.Node.ChainID)
			args = args[2:]
		case args[0] == "--standard-path":
			cfg.Wallet.StandardDerivation = true
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	if err := config.Validate(cfg); err != nil {
		fatal(err)
	}
	log.Init(cfg.Log.Level, cfg.Log.JSON)

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "new":
		cmdNew(cfg)
	case "import":
		cmdImport(cfg, cmdArgs)
	case "identity":
		cmdIdentity(cfg, cmdArgs)
	case "sign":
		cmdSign(cfg, cmdArgs)
	case "balance":
		cmdBalance(cfg, cmdArgs)
	case "send":
		cmdSend(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: arcwallet-cli [global flags] <command> [flags]

Global flags:
  --config <path>     JSON config file
  --rpc <url>         Ledger node endpoint (default: http://127.0.0.1:8545)
  --chain-id <id>     EIP-155 chain id (default: 1)
  --standard-path     Derive at m/44'/60'/0'/0/0 instead of the master key

Commands:
  new                             Generate a wallet, print mnemonic and address
  import --from mnemonic|key      Import a wallet (secret read from stdin, no echo)
  identity --token <t>            Derive the wallet for an identity token
  sign --message <text>           Personal-sign a message (key read from stdin)
  balance --address <addr>        Show an address balance in wei
  send --to <addr> --amount <eth> Send ether (secret read from stdin)
`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// readSecret prompts for a line of sensitive input without echoing it.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// newManager builds a manager connected to the configured node.
func newManager(cfg *config.Config) (*wallet.Manager, *ledger.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Node.RequestTimeout())
	defer cancel()

	client, err := ledger.Dial(ctx, cfg.Node.Endpoint)
	if err != nil {
		return nil, nil, err
	}
	mgr := wallet.NewManager(client, wallet.Options{
		ChainID:            cfg.Node.ChainID,
		StandardDerivation: cfg.Wallet.StandardDerivation,
	})
	return mgr, client, nil
}

// offlineManager builds a manager for operations that never touch the node.
func offlineManager(cfg *config.Config) *wallet.Manager {
	return wallet.NewManager(nil, wallet.Options{
		ChainID:            cfg.Node.ChainID,
		StandardDerivation: cfg.Wallet.StandardDerivation,
	})
}

func cmdNew(cfg *config.Config) {
	mgr := offlineManager(cfg)
	w, err := mgr.CreateFromMnemonic("", "")
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Address:  %s\n", w.Address().Hex())
	fmt.Printf("Mnemonic: %s\n", w.Mnemonic())
	fmt.Fprintln(os.Stderr, "Write the mnemonic down. It is the only backup of this wallet.")
}

func cmdImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	from := fs.String("from", "mnemonic", "source: mnemonic or key")
	passphrase := fs.String("passphrase", "", "optional BIP-39 passphrase")
	fs.Parse(args)

	mgr := offlineManager(cfg)

	var w *wallet.Wallet
	switch *from {
	case "mnemonic":
		mnemonic, err := readSecret("Mnemonic: ")
		if err != nil {
			fatal(err)
		}
		w, err = mgr.CreateFromMnemonic(mnemonic, *passphrase)
		if err != nil {
			fatal(err)
		}
	case "key":
		hexKey, err := readSecret("Private key (hex): ")
		if err != nil {
			fatal(err)
		}
		w, err = mgr.CreateFromPrivateKey(hexKey)
		if err != nil {
			fatal(err)
		}
	default:
		fatal(fmt.Errorf("--from must be mnemonic or key, got %q", *from))
	}

	fmt.Printf("Address: %s\n", w.Address().Hex())
}

func cmdIdentity(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("identity", flag.ExitOnError)
	token := fs.String("token", "", "identity token (or ARCWALLET_IDENTITY_TOKEN)")
	fs.Parse(args)

	if *token == "" {
		*token = os.Getenv("ARCWALLET_IDENTITY_TOKEN")
	}

	provider := identity.Static{Token: *token}
	got, err := provider.Authenticate(context.Background())
	if err != nil {
		fatal(err)
	}
	if got == "" {
		fmt.Fprintln(os.Stderr, "Authentication cancelled.")
		return
	}

	w, err := offlineManager(cfg).CreateFromIdentity(got)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Address: %s\n", w.Address().Hex())
}

func cmdSign(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	message := fs.String("message", "", "message to sign")
	fs.Parse(args)

	if *message == "" {
		fatal(fmt.Errorf("--message is required"))
	}

	hexKey, err := readSecret("Private key (hex): ")
	if err != nil {
		fatal(err)
	}
	w, err := offlineManager(cfg).CreateFromPrivateKey(hexKey)
	if err != nil {
		fatal(err)
	}

	sig, err := w.SignPersonalMessage([]byte(*message))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Address:   %s\n", w.Address().Hex())
	fmt.Printf("Signature: 0x%s\n", hex.EncodeToString(sig.Bytes()))
}

func cmdBalance(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	addrStr := fs.String("address", "", "account address")
	fs.Parse(args)

	if !common.IsHexAddress(*addrStr) {
		fatal(fmt.Errorf("--address %q is not a valid address", *addrStr))
	}

	_, client, err := newManager(cfg)
	if err != nil {
		fatal(err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Node.RequestTimeout())
	defer cancel()

	bal, err := client.Balance(ctx, common.HexToAddress(*addrStr))
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Balance: %s wei\n", bal)
}

func cmdSend(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "recipient address")
	amount := fs.String("amount", "", "amount in ether")
	from := fs.String("from", "mnemonic", "source: mnemonic or key")
	passphrase := fs.String("passphrase", "", "optional BIP-39 passphrase")
	fs.Parse(args)

	if !common.IsHexAddress(*to) {
		fatal(fmt.Errorf("--to %q is not a valid address", *to))
	}
	amt, err := decimal.NewFromString(*amount)
	if err != nil {
		fatal(fmt.Errorf("--amount %q is not a valid number", *amount))
	}

	mgr, client, err := newManager(cfg)
	if err != nil {
		fatal(err)
	}
	defer client.Close()

	var w *wallet.Wallet
	switch *from {
	case "mnemonic":
		mnemonic, err := readSecret("Mnemonic: ")
		if err != nil {
			fatal(err)
		}
		w, err = mgr.CreateFromMnemonic(mnemonic, *passphrase)
		if err != nil {
			fatal(err)
		}
	case "key":
		hexKey, err := readSecret("Private key (hex): ")
		if err != nil {
			fatal(err)
		}
		w, err = mgr.CreateFromPrivateKey(hexKey)
		if err != nil {
			fatal(err)
		}
	default:
		fatal(fmt.Errorf("--from must be mnemonic or key, got %q", *from))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Node.RequestTimeout())
	defer cancel()

	txHash, err := mgr.Send(ctx, w, common.HexToAddress(*to), amt)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Submitted: %s\n", txHash)
}
