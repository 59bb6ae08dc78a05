package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// LotteryMetaData contains all meta data concerning the Lottery contract.
var LotteryMetaData = bind.MetaData{
	ABI: `[{"inputs":[{"internalType":"address","name":"_priceFeedAddress","type":"address"}],"stateMutability":"nonpayable","type":"constructor"},{"anonymous":false,"inputs":[{"indexed":false,"internalType":"address","name":"winner","type":"address"},{"indexed":false,"internalType":"uint256","name":"prize","type":"uint256"}],"name":"WinnerPicked","type":"event"},{"inputs":[],"name":"endLottery","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[],"name":"enter","outputs":[],"stateMutability":"payable","type":"function"},{"inputs":[],"name":"getEntranceFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"lottery_state","outputs":[{"internalType":"enum Lottery.LOTTERY_STATE","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"numberOfPlayers","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[{"internalType":"uint256","name":"","type":"uint256"}],"name":"players","outputs":[{"internalType":"address payable","name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"recentWinner","outputs":[{"internalType":"address payable","name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[],"name":"startLottery","outputs":[],"stateMutability":"nonpayable","type":"function"},{"inputs":[],"name":"usdEntryFee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
	ID:  "Lottery",
}

// Lottery is a Go binding around the Lottery contract.
type Lottery struct {
	abi abi.ABI
}

// NewLottery creates a new instance of Lottery.
func NewLottery() *Lottery {
	parsed, err := LotteryMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Lottery{abi: *parsed}
}

// ABI returns the parsed contract ABI.
func (c *Lottery) ABI() *abi.ABI {
	return &c.abi
}

// PackConstructor packs the constructor arguments, to be appended to the creation bytecode.
//
// Solidity: constructor(address _priceFeedAddress)
func (c *Lottery) PackConstructor(priceFeedAddress common.Address) []byte {
	enc, err := c.abi.Pack("", priceFeedAddress)
	if err != nil {
		panic(err)
	}
	return enc
}

func (c *Lottery) packNoArgs(method string) []byte {
	enc, err := c.abi.Pack(method)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackEnter packs a call to enter. Solidity: function enter() payable
func (c *Lottery) PackEnter() []byte { return c.packNoArgs("enter") }

// PackStartLottery packs a call to startLottery.
func (c *Lottery) PackStartLottery() []byte { return c.packNoArgs("startLottery") }

// PackEndLottery packs a call to endLottery.
func (c *Lottery) PackEndLottery() []byte { return c.packNoArgs("endLottery") }

// PackGetEntranceFee packs a call to getEntranceFee.
func (c *Lottery) PackGetEntranceFee() []byte { return c.packNoArgs("getEntranceFee") }

// PackLotteryState packs a call to the lottery_state getter.
func (c *Lottery) PackLotteryState() []byte { return c.packNoArgs("lottery_state") }

// PackNumberOfPlayers packs a call to numberOfPlayers.
func (c *Lottery) PackNumberOfPlayers() []byte { return c.packNoArgs("numberOfPlayers") }

// PackOwner packs a call to the owner getter.
func (c *Lottery) PackOwner() []byte { return c.packNoArgs("owner") }

// PackRecentWinner packs a call to the recentWinner getter.
func (c *Lottery) PackRecentWinner() []byte { return c.packNoArgs("recentWinner") }

// UnpackGetEntranceFee unpacks the value returned by getEntranceFee.
func (c *Lottery) UnpackGetEntranceFee(data []byte) (*big.Int, error) {
	return c.unpackBig("getEntranceFee", data)
}

// UnpackNumberOfPlayers unpacks the value returned by numberOfPlayers.
func (c *Lottery) UnpackNumberOfPlayers(data []byte) (*big.Int, error) {
	return c.unpackBig("numberOfPlayers", data)
}

// UnpackLotteryState unpacks the value returned by lottery_state.
func (c *Lottery) UnpackLotteryState(data []byte) (uint8, error) {
	out, err := c.abi.Unpack("lottery_state", data)
	if err != nil {
		return *new(uint8), err
	}
	out0 := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	return out0, nil
}

// UnpackOwner unpacks the value returned by owner.
func (c *Lottery) UnpackOwner(data []byte) (common.Address, error) {
	return c.unpackAddress("owner", data)
}

// UnpackRecentWinner unpacks the value returned by recentWinner.
func (c *Lottery) UnpackRecentWinner(data []byte) (common.Address, error) {
	return c.unpackAddress("recentWinner", data)
}

func (c *Lottery) unpackBig(method string, data []byte) (*big.Int, error) {
	out, err := c.abi.Unpack(method, data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}

func (c *Lottery) unpackAddress(method string, data []byte) (common.Address, error) {
	out, err := c.abi.Unpack(method, data)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, nil
}

// LotteryWinnerPicked represents a WinnerPicked event raised by the Lottery contract.
type LotteryWinnerPicked struct {
	Winner common.Address
	Prize  *big.Int
	Raw    *types.Log
}

const LotteryWinnerPickedEventName = "WinnerPicked"

// UnpackWinnerPickedEvent unpacks a WinnerPicked log.
//
// Solidity: event WinnerPicked(address winner, uint256 prize)
func (c *Lottery) UnpackWinnerPickedEvent(log *types.Log) (*LotteryWinnerPicked, error) {
	event := LotteryWinnerPickedEventName
	if len(log.Topics) == 0 || log.Topics[0] != c.abi.Events[event].ID {
		return nil, errors.New("event signature mismatch")
	}
	out := new(LotteryWinnerPicked)
	if len(log.Data) > 0 {
		if err := c.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return nil, err
		}
	}
	out.Raw = log
	return out, nil
}
