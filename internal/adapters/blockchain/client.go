package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

// Backend is the part of an Ethereum JSON-RPC client the adapter uses.
// *ethclient.Client and the simulated backend client both satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client implements usecase.ChainClient with legacy, locally signed transactions.
// The RPC connection is opened on first use.
type Client struct {
	rpcURL          string
	expectedChainID uint64
	receiptTimeout  time.Duration
	log             *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a client for the active network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		rpcURL:          cfg.Network.RPCURL,
		expectedChainID: cfg.Network.ChainID,
		receiptTimeout:  cfg.Project.ReceiptTimeout.Duration,
		log:             log.With("component", "ChainClient", "network", cfg.Network.Name),
	}
}

// NewClientWithBackend creates a client over an existing backend
func NewClientWithBackend(backend Backend, receiptTimeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		backend:        backend,
		receiptTimeout: receiptTimeout,
		log:            log.With("component", "ChainClient"),
	}
}

func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}

	c.log.Debug("connecting", "rpc", c.rpcURL)
	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", domain.ErrNetworkUnavailable, c.rpcURL, err)
	}
	c.backend = client
	return c.backend, nil
}

// ChainID returns the chain id reported by the node, verified against the
// configured one
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.chainIDBig(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *Client) chainIDBig(ctx context.Context) (*big.Int, error) {
	b, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	cached := c.chainID
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	id, err := b.ChainID(ctx)
	if err != nil {
		return nil, classify(err, "failed to get chain ID")
	}
	if c.expectedChainID != 0 && id.Uint64() != c.expectedChainID {
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.expectedChainID, id.Uint64())
	}

	c.mu.Lock()
	c.chainID = id
	c.mu.Unlock()
	return id, nil
}

// PendingNonce returns the next nonce of account, counting pending transactions
func (c *Client) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	b, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	nonce, err := b.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, classify(err, "failed to get nonce")
	}
	return nonce, nil
}

// BalanceAt returns the latest balance of account
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	b, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := b.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, classify(err, "failed to get balance")
	}
	return balance, nil
}

// CodeAt returns the deployed code at contract
func (c *Client) CodeAt(ctx context.Context, contract common.Address) ([]byte, error) {
	b, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	code, err := b.CodeAt(ctx, contract, nil)
	if err != nil {
		return nil, classify(err, "failed to check code")
	}
	return code, nil
}

// Call executes a read-only call against the latest block
func (c *Client) Call(ctx context.Context, from common.Address, to common.Address, data []byte) ([]byte, error) {
	b, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	out, err := b.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: data}, nil)
	if err != nil {
		return nil, classify(err, "call failed")
	}
	return out, nil
}

// Send builds a legacy transaction (chain id, gas price, nonce, estimated gas),
// signs it with the sender key, submits it and blocks until the receipt
func (c *Client) Send(ctx context.Context, req *domain.TxRequest) (*domain.TxResult, error) {
	if req.From == nil || req.From.Key == nil {
		return nil, fmt.Errorf("%w: no signing key for transaction", domain.ErrMissingPrivateKey)
	}

	b, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := c.chainIDBig(ctx)
	if err != nil {
		return nil, err
	}

	from := req.From.Address
	var nonce uint64
	if req.Nonce != nil {
		nonce = *req.Nonce
	} else if nonce, err = b.PendingNonceAt(ctx, from); err != nil {
		return nil, classify(err, "failed to get nonce")
	}

	gasPrice, err := b.SuggestGasPrice(ctx)
	if err != nil {
		return nil, classify(err, "failed to get gas price")
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	gas, err := b.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       req.To,
		GasPrice: gasPrice,
		Value:    value,
		Data:     req.Data,
	})
	if err != nil {
		return nil, classify(err, "gas estimation failed")
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       req.To,
		Value:    value,
		Data:     req.Data,
	})

	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), req.From.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	c.log.Debug("sending transaction",
		"hash", signed.Hash().Hex(),
		"from", from.Hex(),
		"nonce", nonce,
		"gas", gas,
		"gas_price", gasPrice.String(),
	)

	if err := b.SendTransaction(ctx, signed); err != nil {
		return nil, classify(err, "failed to send transaction")
	}

	receipt, err := c.waitMined(ctx, b, signed)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s failed in block %d", domain.ErrTransactionReverted, signed.Hash().Hex(), receipt.BlockNumber.Uint64())
	}

	c.log.Debug("transaction confirmed", "hash", signed.Hash().Hex(), "block", receipt.BlockNumber.Uint64())

	return &domain.TxResult{
		Hash:            signed.Hash(),
		Nonce:           nonce,
		GasPrice:        gasPrice,
		GasUsed:         receipt.GasUsed,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		ContractAddress: receipt.ContractAddress,
		Logs:            receipt.Logs,
	}, nil
}

func (c *Client) waitMined(ctx context.Context, b Backend, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx := ctx
	if c.receiptTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.receiptTimeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(waitCtx, b, tx.Hash())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: transaction %s not mined within %s", domain.ErrTimeout, tx.Hash().Hex(), c.receiptTimeout)
		}
		return nil, classify(err, "failed waiting for receipt")
	}
	return receipt, nil
}
