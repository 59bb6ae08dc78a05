package domain

import (
	"crypto/ecdsa"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// AccountSource records where a signing identity came from
type AccountSource string

const (
	AccountSourceDev      AccountSource = "dev"
	AccountSourceKeystore AccountSource = "keystore"
	AccountSourceConfig   AccountSource = "config"
)

// Account is a signing identity
type Account struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
	Source  AccountSource
	// Index is the dev account position, -1 otherwise
	Index int
	// ID is the keystore id for keystore accounts
	ID string
}

func (a *Account) String() string {
	switch a.Source {
	case AccountSourceDev:
		return fmt.Sprintf("%s (dev #%d)", a.Address.Hex(), a.Index)
	case AccountSourceKeystore:
		return fmt.Sprintf("%s (%s)", a.Address.Hex(), a.ID)
	default:
		return a.Address.Hex()
	}
}

// KeystoreEntry describes a stored credential without decrypting it
type KeystoreEntry struct {
	ID      string         `json:"id"`
	Address common.Address `json:"address"`
	Path    string         `json:"path"`
}

var accountIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateAccountID checks that id can name a keystore file
func ValidateAccountID(id string) error {
	if !accountIDPattern.MatchString(id) {
		return fmt.Errorf("%w %q: use letters, digits, '.', '_' or '-'", ErrInvalidAccountID, id)
	}
	return nil
}
