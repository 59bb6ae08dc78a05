package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment is a recorded contract deployment
type Deployment struct {
	ID          string         `json:"id"`
	Contract    string         `json:"contract"`
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	Deployer    common.Address `json:"deployer"`
	Network     string         `json:"network"`
	ChainID     uint64         `json:"chainId"`
	Mock        bool           `json:"mock,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// LotteryState mirrors the LOTTERY_STATE enum of Lottery.sol
type LotteryState uint8

const (
	LotteryOpen LotteryState = iota
	LotteryClosed
	LotteryCalculatingWinner
)

func (s LotteryState) String() string {
	switch s {
	case LotteryOpen:
		return "open"
	case LotteryClosed:
		return "closed"
	case LotteryCalculatingWinner:
		return "calculating winner"
	default:
		return "unknown"
	}
}
