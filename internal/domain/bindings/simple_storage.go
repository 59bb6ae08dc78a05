package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
)

// SimpleStorageMetaData contains all meta data concerning the SimpleStorage contract.
var SimpleStorageMetaData = bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"string","name":"_name","type":"string"},{"internalType":"uint256","name":"_favoriteNumber","type":"uint256"}],"name":"addPerson","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[{"internalType":"string","name":"","type":"string"}],"name":"nameToFavoriteNumber","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"","type":"uint256"}],"name":"people","outputs":[{"internalType":"uint256","name":"favoriteNumber","type":"uint256"},{"internalType":"string","name":"name","type":"string"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"retrieve","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"_favoriteNumber","type":"uint256"}],"name":"store","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
	ID:  "SimpleStorage",
}

// SimpleStorage is a Go binding around the SimpleStorage contract.
type SimpleStorage struct {
	abi abi.ABI
}

// NewSimpleStorage creates a new instance of SimpleStorage.
func NewSimpleStorage() *SimpleStorage {
	parsed, err := SimpleStorageMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &SimpleStorage{abi: *parsed}
}

// ABI returns the parsed contract ABI.
func (c *SimpleStorage) ABI() *abi.ABI {
	return &c.abi
}

// PackStore packs the parameters for store. Solidity: function store(uint256 _favoriteNumber)
func (c *SimpleStorage) PackStore(favoriteNumber *big.Int) []byte {
	enc, err := c.abi.Pack("store", favoriteNumber)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackRetrieve packs the parameters for retrieve. Solidity: function retrieve() view returns(uint256)
func (c *SimpleStorage) PackRetrieve() []byte {
	enc, err := c.abi.Pack("retrieve")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackRetrieve unpacks the value returned by retrieve.
func (c *SimpleStorage) UnpackRetrieve(data []byte) (*big.Int, error) {
	out, err := c.abi.Unpack("retrieve", data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}
