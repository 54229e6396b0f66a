package agreement

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// MarshalText renders the role as "A" or "B"
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DeployRequest deploys a derivative funded by Party A
type DeployRequest struct {
	SourcePath string
	PartyA     string
	PartyB     string
	// Deposit in ether; empty means no deposit
	Deposit string
}

// RegisterRequest registers a derivative with the master agreement
type RegisterRequest struct {
	Derivative string
	PartyA     string
	PartyB     string
}

// ReportRequest reports a credit event. Payload carries the single field the
// event kind requires: reason, details or obligation id.
type ReportRequest struct {
	Reporter   string
	Kind       string
	Derivative string
	Payload    string
}

// ClearRequest clears a derivative's balance between the parties
type ClearRequest struct {
	Derivative string
	AmountA    string
	AmountB    string
}

// PartiesResult is returned by ConfigureParties
type PartiesResult struct {
	PartyA common.Address `json:"party_a"`
	PartyB common.Address `json:"party_b"`
}

// MasterResult is returned by ConfigureMaster
type MasterResult struct {
	Master common.Address `json:"master_address"`
}

// TxResult describes a finalized transaction
type TxResult struct {
	Operation     string      `json:"operation"`
	Party         Role        `json:"party"`
	TxHash        common.Hash `json:"tx_hash"`
	BlockNumber   uint64      `json:"block_number"`
	GasUsed       uint64      `json:"gas_used"`
	CorrelationID string      `json:"correlation_id"`
}

// DeployResult is returned by DeployDerivative
type DeployResult struct {
	TxResult
	Contract string         `json:"contract"`
	Address  common.Address `json:"address"`
	Deposit  *big.Int       `json:"deposit_wei"`
}

// ProposalResult is returned by ProposeTermination. ProposalID is nil when the
// receipt carried no TerminationProposed event.
type ProposalResult struct {
	TxResult
	Derivative common.Address `json:"derivative"`
	ProposalID *big.Int       `json:"proposal_id"`
}

// ProposalKnown reports whether the ledger-assigned id was recovered
func (r *ProposalResult) ProposalKnown() bool {
	return r.ProposalID != nil
}

// BalanceResult is returned by QueryBalance
type BalanceResult struct {
	Derivative common.Address  `json:"derivative"`
	Wei        *big.Int        `json:"balance_wei"`
	Ether      decimal.Decimal `json:"balance_ether"`
}

// DerivativeContract is the master agreement's view of a derivative. It is
// always read from the ledger.
type DerivativeContract struct {
	Address    common.Address `json:"address"`
	PartyA     common.Address `json:"party_a"`
	PartyB     common.Address `json:"party_b"`
	Terminated bool           `json:"terminated"`
}

// Overview is the session state together with ledger liveness
type Overview struct {
	PartyA       *common.Address  `json:"party_a"`
	PartyB       *common.Address  `json:"party_b"`
	Master       *common.Address  `json:"master_address"`
	Derivatives  []common.Address `json:"deployed_derivatives"`
	LastDeployed *common.Address  `json:"last_deployed_derivative"`
	LedgerLive   bool             `json:"ledger_live"`
}
