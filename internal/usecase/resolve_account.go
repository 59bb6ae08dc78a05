package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// AccountParams selects a signing identity. Index takes precedence over ID.
type AccountParams struct {
	Index *int
	ID    string
}

// ResolveAccount picks the account that signs transactions on the active network
type ResolveAccount struct {
	config    *config.RuntimeConfig
	dev       DevAccounts
	keystore  KeystoreRepository
	passwords PasswordProvider
	log       *slog.Logger
}

// NewResolveAccount creates a new ResolveAccount use case
func NewResolveAccount(
	cfg *config.RuntimeConfig,
	dev DevAccounts,
	keystore KeystoreRepository,
	passwords PasswordProvider,
	log *slog.Logger,
) *ResolveAccount {
	return &ResolveAccount{
		config:    cfg,
		dev:       dev,
		keystore:  keystore,
		passwords: passwords,
		log:       log.With("component", "ResolveAccount"),
	}
}

// Run resolves exactly one account
func (uc *ResolveAccount) Run(ctx context.Context, params AccountParams) (*domain.Account, error) {
	if params.Index != nil {
		return uc.dev.Account(*params.Index)
	}

	if params.ID != "" {
		return uc.fromKeystore(ctx, params.ID)
	}

	network := uc.config.Network.Name
	if domain.UsesDevAccounts(network) {
		uc.log.Debug("using dev account 0", "network", network)
		return uc.dev.Account(0)
	}

	return uc.fromConfig()
}

// Default resolves the account used when no selection is given
func (uc *ResolveAccount) Default(ctx context.Context) (*domain.Account, error) {
	return uc.Run(ctx, AccountParams{})
}

func (uc *ResolveAccount) fromKeystore(ctx context.Context, id string) (*domain.Account, error) {
	// Fail on an unknown id before asking for a password
	if _, err := uc.keystore.Get(ctx, id); err != nil {
		return nil, err
	}

	password, err := uc.passwords.Password(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get password for %s: %w", id, err)
	}

	account, err := uc.keystore.Load(ctx, id, password)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("loaded keystore account", "id", id, "address", account.Address.Hex())
	return account, nil
}

func (uc *ResolveAccount) fromConfig() (*domain.Account, error) {
	raw := strings.TrimSpace(uc.config.Project.Wallets.FromKey)
	if raw == "" {
		return nil, fmt.Errorf("%w: network %s needs wallets.from_key", domain.ErrMissingPrivateKey, uc.config.Network.Name)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallets.from_key: %w", err)
	}

	return &domain.Account{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
		Source:  domain.AccountSourceConfig,
		Index:   -1,
	}, nil
}
