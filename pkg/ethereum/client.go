package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/config"
)

const livenessTimeout = 5 * time.Second

// backend is the subset of ethclient.Client the ledger client relies on.
type backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call goethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	Close()
}

// Client is the ledger client. It talks JSON-RPC to a single node and classifies
// node failures into submission, revert and finality errors.
type Client struct {
	config  *config.EthereumConfig
	backend backend
	chainID *big.Int
	logger  *zap.Logger
}

// NewClient dials the configured RPC endpoint and resolves the chain id
func NewClient(ctx context.Context, cfg *config.EthereumConfig, logger *zap.Logger) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	c, err := newClient(ctx, cfg, rpc, logger)
	if err != nil {
		rpc.Close()
		return nil, err
	}

	logger.Info("Connected to Ethereum",
		zap.String("chain_id", c.chainID.String()),
		zap.String("rpc_url", cfg.RPCURL),
		zap.Uint64("confirmation_blocks", cfg.ConfirmationBlocks))

	return c, nil
}

func newClient(ctx context.Context, cfg *config.EthereumConfig, b backend, logger *zap.Logger) (*Client, error) {
	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		id, err := b.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
		chainID = id
	}

	return &Client{
		config:  cfg,
		backend: b,
		chainID: chainID,
		logger:  logger,
	}, nil
}

// Close closes the RPC connection
func (c *Client) Close() {
	if c.backend != nil {
		c.backend.Close()
	}
}

// ChainID returns the chain id used for EIP-155 signing
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// IsLive reports whether the node answers a chain id query
func (c *Client) IsLive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, livenessTimeout)
	defer cancel()

	if _, err := c.backend.ChainID(ctx); err != nil {
		c.logger.Warn("Ledger liveness check failed", zap.Error(err))
		return false
	}
	return true
}

// NonceFor returns the next nonce for address including pending transactions.
// Callers must fetch it immediately before building each transaction.
func (c *Client) NonceFor(ctx context.Context, address common.Address) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, apperrors.SubmissionError(err, "failed to get nonce")
	}
	return nonce, nil
}

// BalanceOf returns the native balance of address in base units at the latest block
func (c *Client) BalanceOf(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := c.backend.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Submit broadcasts a signed transaction and returns its hash
func (c *Client) Submit(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, apperrors.SubmissionError(err, "ledger rejected transaction")
	}

	c.logger.Debug("Transaction submitted",
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()),
		zap.Uint64("gas", tx.Gas()))

	return tx.Hash(), nil
}

// AwaitFinality blocks until the transaction is included and buried under the
// configured number of confirmation blocks. Cancelling ctx only abandons the wait;
// the transaction stays pending on the ledger.
func (c *Client) AwaitFinality(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.config.PollingInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			final, ferr := c.isFinal(ctx, receipt)
			if ferr != nil && ctx.Err() == nil {
				c.logger.Warn("Failed to get latest block", zap.Error(ferr))
			}
			if final {
				if receipt.Status == types.ReceiptStatusFailed {
					return receipt, apperrors.RevertedError(nil,
						fmt.Sprintf("transaction %s reverted", txHash.Hex()))
				}
				return receipt, nil
			}
		case errors.Is(err, goethereum.NotFound):
		default:
			if ctx.Err() == nil {
				c.logger.Warn("Failed to get transaction receipt",
					zap.String("tx_hash", txHash.Hex()),
					zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.FinalityTimeoutError(ctx.Err(),
				fmt.Sprintf("transaction %s not finalized", txHash.Hex()))
		case <-ticker.C:
		}
	}
}

func (c *Client) isFinal(ctx context.Context, receipt *types.Receipt) (bool, error) {
	if c.config.ConfirmationBlocks <= 1 || receipt.BlockNumber == nil {
		return true, nil
	}
	latest, err := c.backend.BlockNumber(ctx)
	if err != nil {
		return false, err
	}
	return latest+1 >= receipt.BlockNumber.Uint64()+c.config.ConfirmationBlocks, nil
}

// Call executes a read-only contract call at the latest block
func (c *Client) Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	out, err := c.backend.CallContract(ctx, goethereum.CallMsg{
		From: from,
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}
	return out, nil
}
