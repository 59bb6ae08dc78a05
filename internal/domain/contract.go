package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract type names produced by compiling contracts/.
const (
	LotteryContract          = "Lottery"
	SimpleStorageContract    = "SimpleStorage"
	MockV3AggregatorContract = "MockV3Aggregator"
)

// ContractToMock maps symbolic contract names to the mock type deployed on local networks
var ContractToMock = map[string]string{
	"eth_usd_price_feed": MockV3AggregatorContract,
}

// Default constructor parameters for mocks
const (
	DefaultMockDecimals uint8 = 8
	DefaultInitialValue int64 = 200000000000
)

// DefaultMockInitialValue returns the initial answer of the price feed mock
func DefaultMockInitialValue() *big.Int {
	return big.NewInt(DefaultInitialValue)
}

// Artifact is the compiled form of a single contract
type Artifact struct {
	Name             string          `json:"contractName"`
	SourcePath       string          `json:"sourcePath"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode,omitempty"`
	SourceMap        string          `json:"sourceMap,omitempty"`
	Metadata         string          `json:"metadata,omitempty"`
	Compiler         string          `json:"compiler,omitempty"`

	parsed *abi.ABI
}

// ParsedABI returns the artifact ABI, parsing it on first use
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	if a.parsed != nil {
		return a.parsed, nil
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.Name, err)
	}
	a.parsed = &parsed
	return a.parsed, nil
}

// BytecodeBytes decodes the creation bytecode
func (a *Artifact) BytecodeBytes() ([]byte, error) {
	if a.Bytecode == "" || a.Bytecode == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", a.Name)
	}
	code := common.FromHex(a.Bytecode)
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %s has invalid bytecode", a.Name)
	}
	return code, nil
}

// ContractHandle is a live or mocked contract instance
type ContractHandle struct {
	Name    string
	Type    string
	Address common.Address
	ABI     *abi.ABI
	// Mock is set for handles created by the local deploy-if-absent path
	Mock bool
}

func (h *ContractHandle) String() string {
	return fmt.Sprintf("%s at %s", h.Type, h.Address.Hex())
}
