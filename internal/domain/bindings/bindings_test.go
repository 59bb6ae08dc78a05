package bindings

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleStorageSelectors(t *testing.T) {
	ss := NewSimpleStorage()

	assert.Equal(t, "6057361d", common.Bytes2Hex(ss.PackStore(big.NewInt(15))[:4]))
	assert.Equal(t, "2e64cec1", common.Bytes2Hex(ss.PackRetrieve()))

	value, err := ss.UnpackRetrieve(math.U256Bytes(big.NewInt(15)))
	require.NoError(t, err)
	assert.Equal(t, int64(15), value.Int64())
}

func TestMockV3Aggregator(t *testing.T) {
	mock := NewMockV3Aggregator()

	args := mock.PackConstructor(8, big.NewInt(200000000000))
	require.Len(t, args, 64)
	assert.Equal(t, byte(8), args[31])

	assert.Equal(t, "feaf968c", common.Bytes2Hex(mock.PackLatestRoundData()))
	assert.Equal(t, "313ce567", common.Bytes2Hex(mock.PackDecimals()))

	var data []byte
	for _, v := range []int64{1, 200000000000, 1700000000, 1700000000, 1} {
		data = append(data, math.U256Bytes(big.NewInt(v))...)
	}
	round, err := mock.UnpackLatestRoundData(data)
	require.NoError(t, err)
	assert.Equal(t, int64(200000000000), round.Answer.Int64())
	assert.Equal(t, int64(1), round.RoundId.Int64())

	decimals, err := mock.UnpackDecimals(math.U256Bytes(big.NewInt(8)))
	require.NoError(t, err)
	assert.Equal(t, uint8(8), decimals)
}

func TestLottery(t *testing.T) {
	lottery := NewLottery()
	feed := common.HexToAddress("0x8A753747A1Fa494EC906cE90E9f37563A8AF630e")

	args := lottery.PackConstructor(feed)
	require.Len(t, args, 32)
	assert.Equal(t, feed.Bytes(), args[12:])

	assert.Len(t, lottery.PackEnter(), 4)

	state, err := lottery.UnpackLotteryState(math.U256Bytes(big.NewInt(1)))
	require.NoError(t, err)
	assert.Equal(t, uint8(1), state)

	winner := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	event := lottery.ABI().Events[LotteryWinnerPickedEventName]
	payload, err := event.Inputs.Pack(winner, big.NewInt(42))
	require.NoError(t, err)

	picked, err := lottery.UnpackWinnerPickedEvent(&types.Log{Topics: []common.Hash{event.ID}, Data: payload})
	require.NoError(t, err)
	assert.Equal(t, winner, picked.Winner)
	assert.Equal(t, int64(42), picked.Prize.Int64())

	_, err = lottery.UnpackWinnerPickedEvent(&types.Log{Topics: []common.Hash{{}}})
	assert.Error(t, err)
}
