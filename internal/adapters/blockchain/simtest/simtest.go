// Package simtest runs the blockchain adapter against an in-process chain.
package simtest

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/trebuchet-org/scriptkit/internal/adapters/blockchain"
	"github.com/trebuchet-org/scriptkit/internal/domain"
)

// Well-known keys of the default test mnemonic, accounts 0 and 1
const (
	Key0 = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	Key1 = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

// StorageBytecode is hand-assembled creation code for a contract with the
// store(uint256) and retrieve() interface of SimpleStorage. Any other selector
// reverts.
const StorageBytecode = "0x603180600b6000396000f3" +
	"60003560e01c80636057361d14601d57632e64cec1146025576000" +
	"80fd5b600435600055005b60005460005260206000f3"

// StorageABI is the matching ABI
const StorageABI = `[{"inputs":[],"name":"retrieve","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"_favoriteNumber","type":"uint256"}],"name":"store","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// autoCommit mines a block after every submitted transaction
type autoCommit struct {
	simulated.Client
	sim *simulated.Backend
}

func (a autoCommit) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := a.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	a.sim.Commit()
	return nil
}

// Chain is a simulated chain with funded accounts
type Chain struct {
	Sim      *simulated.Backend
	Client   *blockchain.Client
	Accounts []*domain.Account
}

// Account builds a dev account from a hex key
func Account(t testing.TB, hexKey string, index int) *domain.Account {
	t.Helper()
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		t.Fatalf("invalid key: %v", err)
	}
	return &domain.Account{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
		Source:  domain.AccountSourceDev,
		Index:   index,
	}
}

// New starts a simulated chain funding the accounts of Key0 and Key1 with
// 10000 ether each
func New(t testing.TB) *Chain {
	t.Helper()

	accounts := []*domain.Account{Account(t, Key0, 0), Account(t, Key1, 1)}
	return NewWithAccounts(t, accounts...)
}

// NewWithAccounts starts a simulated chain funding the given accounts
func NewWithAccounts(t testing.TB, accounts ...*domain.Account) *Chain {
	t.Helper()

	balance := new(big.Int).Mul(big.NewInt(10000), big.NewInt(1e18))
	alloc := types.GenesisAlloc{}
	for _, acc := range accounts {
		alloc[acc.Address] = types.Account{Balance: balance}
	}

	sim := simulated.NewBackend(alloc)
	t.Cleanup(func() { _ = sim.Close() })

	backend := autoCommit{Client: sim.Client(), sim: sim}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Chain{
		Sim:      sim,
		Client:   blockchain.NewClientWithBackend(backend, 10*time.Second, log),
		Accounts: accounts,
	}
}

// Key returns the private key of account i
func (c *Chain) Key(i int) *ecdsa.PrivateKey {
	return c.Accounts[i].Key
}
