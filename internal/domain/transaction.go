package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NonceStrategy decides how consecutive transactions of one flow get their nonce
type NonceStrategy string

const (
	// NonceRequery reads the pending nonce from the node before every transaction
	NonceRequery NonceStrategy = "requery"
	// NonceSequential increments the first queried nonce locally
	NonceSequential NonceStrategy = "sequential"
)

// Valid reports whether s is a known strategy
func (s NonceStrategy) Valid() bool {
	return s == NonceRequery || s == NonceSequential
}

// TxRequest is an unsigned transaction before gas and fee fields are filled in
type TxRequest struct {
	From  *Account
	To    *common.Address // nil for contract creation
	Data  []byte
	Value *big.Int
	// Nonce overrides the pending nonce when set
	Nonce *uint64
}

// TxResult summarises a confirmed transaction
type TxResult struct {
	Hash            common.Hash
	Nonce           uint64
	GasPrice        *big.Int
	GasUsed         uint64
	BlockNumber     uint64
	ContractAddress common.Address
	Logs            []*types.Log
}
