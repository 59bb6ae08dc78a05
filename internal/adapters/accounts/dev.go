package accounts

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	gethaccounts "github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/tyler-smith/go-bip39"
)

// DevAccounts derives the pre-funded accounts of local chains from the dev
// mnemonic. Keys are derived once, on first use.
type DevAccounts struct {
	mnemonic string
	path     string
	count    int

	once     sync.Once
	accounts []*domain.Account
	err      error
}

// NewDevAccounts creates the dev account set from the project configuration
func NewDevAccounts(cfg *config.RuntimeConfig) *DevAccounts {
	return NewDevAccountsFromMnemonic(cfg.Project.Dev.Mnemonic, cfg.Project.Dev.DerivationPath, cfg.Project.Dev.Accounts)
}

// NewDevAccountsFromMnemonic creates a dev account set deriving count keys
// below basePath
func NewDevAccountsFromMnemonic(mnemonic, basePath string, count int) *DevAccounts {
	return &DevAccounts{mnemonic: mnemonic, path: basePath, count: count}
}

// Count returns the number of dev accounts
func (d *DevAccounts) Count() int {
	return d.count
}

// Account returns the account at index
func (d *DevAccounts) Account(index int) (*domain.Account, error) {
	if index < 0 || index >= d.count {
		return nil, fmt.Errorf("%w: index %d, %d dev accounts available", domain.ErrIndexOutOfRange, index, d.count)
	}
	accounts, err := d.Accounts()
	if err != nil {
		return nil, err
	}
	return accounts[index], nil
}

// Accounts returns every dev account in derivation order
func (d *DevAccounts) Accounts() ([]*domain.Account, error) {
	d.once.Do(func() {
		d.accounts, d.err = derive(d.mnemonic, d.path, d.count)
	})
	return d.accounts, d.err
}

func derive(mnemonic, basePath string, count int) ([]*domain.Account, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid dev mnemonic: %w", err)
	}

	base, err := gethaccounts.ParseDerivationPath(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path %q: %w", basePath, err)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	parent := master
	for _, component := range base {
		parent, err = parent.Derive(component)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", basePath, err)
		}
	}

	accounts := make([]*domain.Account, 0, count)
	for i := 0; i < count; i++ {
		child, err := parent.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("failed to derive account %d: %w", i, err)
		}
		ecKey, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("failed to get key of account %d: %w", i, err)
		}
		key, err := crypto.ToECDSA(ecKey.Serialize())
		if err != nil {
			return nil, fmt.Errorf("failed to convert key of account %d: %w", i, err)
		}
		accounts = append(accounts, &domain.Account{
			Address: crypto.PubkeyToAddress(key.PublicKey),
			Key:     key,
			Source:  domain.AccountSourceDev,
			Index:   i,
		})
	}
	return accounts, nil
}
