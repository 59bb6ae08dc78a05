package accounts

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/trebuchet-org/scriptkit/internal/domain"
)

// KeystoreDirEnv overrides the keystore location
const KeystoreDirEnv = "SCRIPTKIT_KEYSTORE_DIR"

// Keystore stores one Web3 Secret Storage file per id
type Keystore struct {
	dir     string
	scryptN int
	scryptP int
	log     *slog.Logger
}

// NewKeystore creates a keystore rooted at dir using standard scrypt parameters
func NewKeystore(dir string, log *slog.Logger) *Keystore {
	return &Keystore{
		dir:     dir,
		scryptN: keystore.StandardScryptN,
		scryptP: keystore.StandardScryptP,
		log:     log.With("component", "Keystore"),
	}
}

// NewLightKeystore uses the light scrypt parameters, for tests
func NewLightKeystore(dir string, log *slog.Logger) *Keystore {
	ks := NewKeystore(dir, log)
	ks.scryptN = keystore.LightScryptN
	ks.scryptP = keystore.LightScryptP
	return ks
}

// ProvideKeystore creates the user keystore for Wire dependency injection
func ProvideKeystore(log *slog.Logger) (*Keystore, error) {
	dir, err := DefaultKeystoreDir()
	if err != nil {
		return nil, err
	}
	return NewKeystore(dir, log), nil
}

// DefaultKeystoreDir returns $SCRIPTKIT_KEYSTORE_DIR or ~/.scriptkit/accounts
func DefaultKeystoreDir() (string, error) {
	if dir := os.Getenv(KeystoreDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".scriptkit", "accounts"), nil
}

// Dir returns the keystore directory
func (k *Keystore) Dir() string {
	return k.dir
}

// path maps id to its file inside the keystore directory
func (k *Keystore) path(id string) (string, error) {
	if err := domain.ValidateAccountID(id); err != nil {
		return "", err
	}
	return filepath.Join(k.dir, id+".json"), nil
}

// List returns every stored credential sorted by id
func (k *Keystore) List(ctx context.Context) ([]domain.KeystoreEntry, error) {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.KeystoreEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	result := make([]domain.KeystoreEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		ke, err := k.Get(ctx, id)
		if err != nil {
			k.log.Warn("skipping unreadable keystore file", "file", entry.Name(), "error", err)
			continue
		}
		result = append(result, *ke)
	}

	slices.SortFunc(result, func(a, b domain.KeystoreEntry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// Get returns the entry for id without decrypting it
func (k *Keystore) Get(_ context.Context, id string) (*domain.KeystoreEntry, error) {
	path, err := k.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, id)
		}
		return nil, fmt.Errorf("failed to read credential %s: %w", id, err)
	}

	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("invalid keystore file %s: %w", path, err)
	}
	if !common.IsHexAddress(header.Address) {
		return nil, fmt.Errorf("invalid keystore file %s: bad address %q", path, header.Address)
	}

	return &domain.KeystoreEntry{
		ID:      id,
		Address: common.HexToAddress(header.Address),
		Path:    path,
	}, nil
}

// Load decrypts the credential for id
func (k *Keystore) Load(_ context.Context, id string, password string) (*domain.Account, error) {
	path, err := k.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, id)
		}
		return nil, fmt.Errorf("failed to read credential %s: %w", id, err)
	}

	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, fmt.Errorf("failed to decrypt credential %s: wrong password", id)
		}
		return nil, fmt.Errorf("failed to decrypt credential %s: %w", id, err)
	}

	return &domain.Account{
		Address: key.Address,
		Key:     key.PrivateKey,
		Source:  domain.AccountSourceKeystore,
		Index:   -1,
		ID:      id,
	}, nil
}

// Save encrypts key under id. Existing ids are overwritten.
func (k *Keystore) Save(_ context.Context, id string, key *ecdsa.PrivateKey, password string) (*domain.KeystoreEntry, error) {
	path, err := k.path(id)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(k.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	data, err := keystore.EncryptKey(&keystore.Key{
		Id:         uuid.New(),
		Address:    address,
		PrivateKey: key,
	}, password, k.scryptN, k.scryptP)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credential %s: %w", id, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write credential %s: %w", id, err)
	}
	k.log.Debug("saved credential", "id", id, "address", address.Hex())

	return &domain.KeystoreEntry{ID: id, Address: address, Path: path}, nil
}

// Delete removes the credential for id
func (k *Keystore) Delete(_ context.Context, id string) error {
	path, err := k.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, id)
		}
		return fmt.Errorf("failed to delete credential %s: %w", id, err)
	}
	return nil
}
