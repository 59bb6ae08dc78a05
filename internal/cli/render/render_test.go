package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  *big.Int
		want string
	}{
		{big.NewInt(25e15), "0.025 ETH"},
		{new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)), "3 ETH"},
		{big.NewInt(0), "0 ETH"},
		{nil, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEther(tt.wei))
		})
	}
}

func TestFormatScaled(t *testing.T) {
	assert.Equal(t, "2000", FormatScaled(big.NewInt(200000000000), 8))
	assert.Equal(t, "1.23456789", FormatScaled(big.NewInt(123456789), 8))
	assert.Equal(t, "1850.5", FormatScaled(big.NewInt(185050000000), 8))
	assert.Equal(t, "42", FormatScaled(big.NewInt(42), 0))
	assert.Equal(t, "-", FormatScaled(nil, 8))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "❌ Index 10 out of range", FormatError("failed to resolve account: index 10 out of range"))
	assert.Equal(t, "⚠️  no winner", FormatWarning("lottery: no winner"))
	assert.Equal(t, "✅ done", FormatSuccess("done"))
	assert.Equal(t, "Calculating Winner", Title("calculating winner"))
	assert.Equal(t, "Mainnet Fork", Title("mainnet-fork"))
}

func TestDeploymentsRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.DeploymentListResult{
		Network: "development",
		ChainID: 31337,
		Deployments: []*domain.Deployment{
			{ID: "1", Contract: "MockV3Aggregator", Address: common.HexToAddress("0x01"), Mock: true, CreatedAt: time.Now()},
			{ID: "2", Contract: "Lottery", Address: common.HexToAddress("0x02"), BlockNumber: 7, CreatedAt: time.Now()},
		},
		Summary: usecase.DeploymentSummary{Total: 2, Mocks: 1, ByContract: map[string]int{"Lottery": 1, "MockV3Aggregator": 1}},
	}

	require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(result))
	out := buf.String()
	assert.Contains(t, out, "development (chain 31337)")
	assert.Contains(t, out, "MockV3Aggregator (mock)")
	assert.Contains(t, out, common.HexToAddress("0x02").Hex())
	assert.Contains(t, out, "Total: 2 deployment(s), 1 mock(s)")

	buf.Reset()
	require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(&usecase.DeploymentListResult{Network: "rinkeby", ChainID: 4}))
	assert.Contains(t, buf.String(), "No deployments found")
}

func TestNetworksRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.ListNetworksResult{Networks: []usecase.NetworkStatus{
		{Name: "development", Kind: domain.EnvironmentLocal, ChainID: 31337, RPCURL: "http://127.0.0.1:8545", Active: true},
		{Name: "rinkeby", Kind: domain.EnvironmentLive, Error: errors.New("resolve: connection refused")},
	}}

	require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(result))
	out := buf.String()
	assert.Contains(t, out, "31337")
	assert.Contains(t, out, "Local")
	assert.Contains(t, out, "Live")
	assert.Contains(t, out, "connection refused")
	assert.NotContains(t, out, "resolve:")
}

func TestLotteryRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	status := &usecase.LotteryStatus{
		Lottery:     &domain.Deployment{Address: common.HexToAddress("0xabc")},
		State:       domain.LotteryCalculatingWinner,
		Players:     3,
		EntranceFee: big.NewInt(25e15),
		Balance:     big.NewInt(75e15),
		Owner:       common.HexToAddress("0x01"),
	}

	require.NoError(t, NewLotteryRenderer(&buf).RenderStatus(status))
	out := buf.String()
	assert.Contains(t, out, "Calculating Winner")
	assert.Contains(t, out, "0.075 ETH")
	assert.NotContains(t, out, "Recent winner")
}

func TestStorageRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.DeployStorageResult{
		OutputPath:   "build/compiled_code.json",
		Account:      &domain.Account{Address: common.HexToAddress("0x01"), Source: domain.AccountSourceDev},
		Deployment:   &domain.Deployment{Address: common.HexToAddress("0x02")},
		DeployTx:     &domain.TxResult{Nonce: 0},
		InitialValue: big.NewInt(0),
		StoreTx:      &domain.TxResult{Nonce: 1},
		StoredValue:  big.NewInt(15),
		Nonce:        domain.NonceRequery,
	}

	require.NoError(t, NewStorageRenderer(&buf).Render(result))
	out := buf.String()
	assert.Contains(t, out, "Initial value: 0")
	assert.Contains(t, out, "Updated value: 15")
	assert.Contains(t, out, "nonce strategy requery")
}
