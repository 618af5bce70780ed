// Command walletgen creates the encrypted key file the server signs with.
//
//	WALLET_PASSPHRASE=... walletgen -out wallet.json
//
// The passphrase is read from WALLET_PASSPHRASE (or .env). An existing file is
// never overwritten.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/infrastructure/config"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/wallet"
	"github.com/vouchervault/voucher-vault/pkg/logger"
)

const probeMessage = "voucher-vault key check"

func main() {
	out := flag.String("out", "", "key file to create (defaults to WALLET_KEY_FILE)")
	flag.Parse()

	log := logger.Init(logger.Options{Pretty: true, Service: "walletgen"})

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	path := *out
	if path == "" {
		path = cfg.Wallet.KeyFile
	}

	ks, err := generate(context.Background(), path, cfg.Wallet.Passphrase, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to create wallet")
	}
	fmt.Fprintln(os.Stdout, ks.Address().Hex())
}

// generate writes a fresh key to path and reopens it to prove the file can be
// decrypted and signs for the printed address.
func generate(ctx context.Context, path, passphrase string, log zerolog.Logger) (*wallet.KeyStore, error) {
	ks, err := wallet.GenerateKeyStore()
	if err != nil {
		return nil, err
	}
	if err := wallet.WriteKeyFile(path, ks.PrivateKey(), passphrase); err != nil {
		return nil, err
	}

	reopened, err := wallet.NewFileWallet(path, passphrase, log).Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("reopen key file: %w", err)
	}
	sig, err := reopened.SignMessage(ctx, []byte(probeMessage))
	if err != nil {
		return nil, fmt.Errorf("sign probe: %w", err)
	}
	addr, err := wallet.RecoverAddress([]byte(probeMessage), sig)
	if err != nil {
		return nil, fmt.Errorf("recover probe signer: %w", err)
	}
	if addr != ks.Address() {
		return nil, fmt.Errorf("key file signs for %s, expected %s", addr.Hex(), ks.Address().Hex())
	}

	log.Info().Str("path", path).Str("address", addr.Hex()).Msg("wallet created")
	return ks, nil
}
