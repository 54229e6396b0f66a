package agreement

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/compiler"
)

var testChainID = big.NewInt(31337)

// MockLedger is an in-memory ledger. It tracks pending nonces per sender and
// rejects transactions that reuse or skip a nonce.
type MockLedger struct {
	mu           sync.Mutex
	signer       types.Signer
	nonces       map[common.Address]uint64
	sent         map[common.Hash]*types.Transaction
	order        []*types.Transaction
	interactions int

	Live              bool
	BalanceOfFunc     func(ctx context.Context, address common.Address) (*big.Int, error)
	CallFunc          func(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
	SubmitFunc        func(ctx context.Context, tx *types.Transaction) error
	AwaitFinalityFunc func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

func NewMockLedger() *MockLedger {
	return &MockLedger{
		signer: types.LatestSignerForChainID(testChainID),
		nonces: make(map[common.Address]uint64),
		sent:   make(map[common.Hash]*types.Transaction),
		Live:   true,
	}
}

func (m *MockLedger) IsLive(ctx context.Context) bool {
	return m.Live
}

func (m *MockLedger) NonceFor(ctx context.Context, address common.Address) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions++
	return m.nonces[address], nil
}

func (m *MockLedger) BalanceOf(ctx context.Context, address common.Address) (*big.Int, error) {
	m.mu.Lock()
	m.interactions++
	m.mu.Unlock()
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, address)
	}
	return new(big.Int), nil
}

func (m *MockLedger) Submit(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions++

	if m.SubmitFunc != nil {
		if err := m.SubmitFunc(ctx, tx); err != nil {
			return common.Hash{}, apperrors.SubmissionError(err, "ledger rejected transaction")
		}
	}

	from, err := types.Sender(m.signer, tx)
	if err != nil {
		return common.Hash{}, apperrors.SubmissionError(err, "invalid signature")
	}
	if want := m.nonces[from]; tx.Nonce() != want {
		return common.Hash{}, apperrors.SubmissionError(
			fmt.Errorf("nonce %d, expected %d", tx.Nonce(), want), "ledger rejected transaction")
	}

	m.nonces[from] = tx.Nonce() + 1
	m.sent[tx.Hash()] = tx
	m.order = append(m.order, tx)
	return tx.Hash(), nil
}

func (m *MockLedger) AwaitFinality(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	m.mu.Lock()
	tx, ok := m.sent[txHash]
	m.mu.Unlock()
	if !ok {
		return nil, errors.New("unknown transaction")
	}

	if m.AwaitFinalityFunc != nil {
		return m.AwaitFinalityFunc(ctx, tx)
	}
	return successReceipt(tx), nil
}

func (m *MockLedger) Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	m.mu.Lock()
	m.interactions++
	m.mu.Unlock()
	if m.CallFunc != nil {
		return m.CallFunc(ctx, from, to, data)
	}
	return nil, errors.New("call not expected")
}

// Interactions counts every ledger call except liveness checks
func (m *MockLedger) Interactions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interactions
}

// Sent returns submitted transactions in submission order
func (m *MockLedger) Sent() []*types.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.Transaction(nil), m.order...)
}

// SentBy returns the transactions submitted by from
func (m *MockLedger) SentBy(from common.Address) []*types.Transaction {
	var out []*types.Transaction
	for _, tx := range m.Sent() {
		if m.Sender(tx) == from {
			out = append(out, tx)
		}
	}
	return out
}

func (m *MockLedger) Sender(tx *types.Transaction) common.Address {
	from, _ := types.Sender(m.signer, tx)
	return from
}

func successReceipt(tx *types.Transaction) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(1),
		GasUsed:     21000,
	}
}

// MockCompiler returns a fixed artifact
type MockCompiler struct {
	mu       sync.Mutex
	Artifact *compiler.Artifact
	Err      error
	Calls    int
}

func (m *MockCompiler) Compile(ctx context.Context, sourcePath string) (*compiler.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Artifact, m.Err
}
