package usecase

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// AccountsListResult contains the keystore entries and, on networks that use
// them, the dev accounts
type AccountsListResult struct {
	Keystore []domain.KeystoreEntry
	Dev      []*domain.Account
	Network  string
}

// NewAccountParams contains parameters for importing a key
type NewAccountParams struct {
	ID string
	// PrivateKey is hex encoded; a fresh key is generated when empty
	PrivateKey string
}

// ManageAccounts lists, imports and deletes keystore credentials
type ManageAccounts struct {
	config    *config.RuntimeConfig
	dev       DevAccounts
	keystore  KeystoreRepository
	passwords PasswordProvider
	log       *slog.Logger
}

// NewManageAccounts creates a new ManageAccounts use case
func NewManageAccounts(
	cfg *config.RuntimeConfig,
	dev DevAccounts,
	keystore KeystoreRepository,
	passwords PasswordProvider,
	log *slog.Logger,
) *ManageAccounts {
	return &ManageAccounts{
		config:    cfg,
		dev:       dev,
		keystore:  keystore,
		passwords: passwords,
		log:       log.With("component", "ManageAccounts"),
	}
}

// List returns the stored credentials
func (uc *ManageAccounts) List(ctx context.Context) (*AccountsListResult, error) {
	entries, err := uc.keystore.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &AccountsListResult{
		Keystore: entries,
		Network:  uc.config.Network.Name,
	}

	if domain.UsesDevAccounts(uc.config.Network.Name) {
		if result.Dev, err = uc.dev.Accounts(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// New encrypts a private key under id
func (uc *ManageAccounts) New(ctx context.Context, params NewAccountParams) (*domain.KeystoreEntry, error) {
	if err := domain.ValidateAccountID(params.ID); err != nil {
		return nil, err
	}

	if _, err := uc.keystore.Get(ctx, params.ID); err == nil {
		return nil, fmt.Errorf("account %s already exists", params.ID)
	} else if !errors.Is(err, domain.ErrCredentialNotFound) {
		return nil, err
	}

	var key *ecdsa.PrivateKey
	var err error
	if raw := strings.TrimPrefix(strings.TrimSpace(params.PrivateKey), "0x"); raw != "" {
		if key, err = crypto.HexToECDSA(raw); err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
	} else if key, err = crypto.GenerateKey(); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	password, err := uc.passwords.Password(ctx, params.ID, true)
	if err != nil {
		return nil, err
	}

	entry, err := uc.keystore.Save(ctx, params.ID, key, password)
	if err != nil {
		return nil, err
	}
	uc.log.Info("account saved", "id", entry.ID, "address", entry.Address.Hex())
	return entry, nil
}

// Delete removes the given credentials, stopping at the first failure
func (uc *ManageAccounts) Delete(ctx context.Context, ids []string) ([]string, error) {
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := uc.keystore.Delete(ctx, id); err != nil {
			return deleted, fmt.Errorf("failed to delete %s: %w", id, err)
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}
