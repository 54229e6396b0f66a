// Package agreement implements the Master Agreement transaction orchestrator.
//
// Every business operation is a named transition: a precondition check over the
// session and the caller's fields, resolution of the acting party, a transaction
// plan (target, calldata, value, gas), execution and decoding of the outcome.
// Submission is serialized per signing party; the finality wait is not.
package agreement

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/agreement-middleware/internal/metrics"
	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/compiler"
	"github.com/chainsafe/agreement-middleware/pkg/config"
	"github.com/chainsafe/agreement-middleware/pkg/contracts"
	"github.com/chainsafe/agreement-middleware/pkg/ethereum"
	"github.com/chainsafe/agreement-middleware/pkg/keys"
)

// Operation names used in logs, metrics and results
const (
	OpDeployDerivative   = "deploy_derivative"
	OpRegisterDerivative = "register_derivative"
	OpReportEvent        = "report_event"
	OpProposeTermination = "propose_termination"
	OpVoteTermination    = "vote_termination"
	OpClearBalance       = "clear_balance"
	OpQueryBalance       = "query_balance"
	OpQueryTermination   = "query_termination"
)

// Ledger is the ledger client used by the orchestrator
type Ledger interface {
	IsLive(ctx context.Context) bool
	NonceFor(ctx context.Context, address common.Address) (uint64, error)
	BalanceOf(ctx context.Context, address common.Address) (*big.Int, error)
	Submit(ctx context.Context, tx *types.Transaction) (common.Hash, error)
	AwaitFinality(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
}

// Signer signs transaction descriptors with a party key
type Signer interface {
	Sign(tx *types.Transaction, key *keys.Key) (*types.Transaction, error)
}

// Compiler turns derivative source into a deployable artifact
type Compiler interface {
	Compile(ctx context.Context, sourcePath string) (*compiler.Artifact, error)
}

// Options are the fixed fee budgets and the finality wait limit
type Options struct {
	GasPrice        *big.Int
	DeployGasLimit  uint64
	CallGasLimit    uint64
	FinalityTimeout time.Duration
}

// OptionsFromConfig reads the fee budgets from the ethereum config section
func OptionsFromConfig(cfg *config.EthereumConfig) (Options, error) {
	price, ok := new(big.Int).SetString(cfg.GasPriceWei, 10)
	if !ok || price.Sign() < 0 {
		return Options{}, apperrors.ConfigurationError(nil, "invalid gas price "+cfg.GasPriceWei)
	}
	return Options{
		GasPrice:        price,
		DeployGasLimit:  cfg.DeployGasLimit,
		CallGasLimit:    cfg.CallGasLimit,
		FinalityTimeout: cfg.FinalityTimeout,
	}, nil
}

// Orchestrator turns agreement intents into signed, finalized ledger transactions
type Orchestrator struct {
	session  *Session
	ledger   Ledger
	signer   Signer
	registry *contracts.Registry
	compiler Compiler
	opts     Options
	logger   *zap.Logger

	// submission locks keyed by signing address, so one key configured
	// for both parties shares a single lock
	locksMu sync.Mutex
	locks   map[common.Address]*sync.Mutex
}

// NewOrchestrator creates an orchestrator over session
func NewOrchestrator(
	session *Session,
	ledger Ledger,
	signer Signer,
	registry *contracts.Registry,
	compiler Compiler,
	opts Options,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		session:  session,
		ledger:   ledger,
		signer:   signer,
		registry: registry,
		compiler: compiler,
		opts:     opts,
		logger:   logger,
		locks:    make(map[common.Address]*sync.Mutex),
	}
}

// Session returns the session the orchestrator reads its preconditions from
func (o *Orchestrator) Session() *Session {
	return o.session
}

// txPlan is an unsigned transaction minus the nonce
type txPlan struct {
	operation string
	to        *common.Address
	data      []byte
	value     *big.Int
	gas       uint64
}

// ConfigureParties derives both party addresses and replaces them in the session
func (o *Orchestrator) ConfigureParties(_ context.Context, pkA, pkB string) (*PartiesResult, error) {
	if strings.TrimSpace(pkA) == "" || strings.TrimSpace(pkB) == "" {
		return nil, apperrors.ValidationError(nil, "private keys for Party A and Party B are required")
	}

	keyA, err := keys.ParsePrivateKey(pkA)
	if err != nil {
		return nil, apperrors.ValidationError(err, "invalid private key for Party A")
	}
	keyB, err := keys.ParsePrivateKey(pkB)
	if err != nil {
		return nil, apperrors.ValidationError(err, "invalid private key for Party B")
	}

	if err := o.session.ConfigureParties(keyA, keyB); err != nil {
		return nil, err
	}

	o.logger.Info("Parties configured",
		zap.String("party_a", keyA.Address().Hex()),
		zap.String("party_b", keyB.Address().Hex()))

	return &PartiesResult{PartyA: keyA.Address(), PartyB: keyB.Address()}, nil
}

// ConfigureMaster sets the master agreement address. The contract itself is not
// checked; a wrong address surfaces on first use.
func (o *Orchestrator) ConfigureMaster(_ context.Context, addr string) (*MasterResult, error) {
	master, err := ParseAddress("master_address", addr)
	if err != nil {
		return nil, err
	}
	if err := o.session.ConfigureMaster(master); err != nil {
		return nil, err
	}

	o.logger.Info("Master agreement configured", zap.String("master_address", master.Hex()))
	return &MasterResult{Master: master}, nil
}

// DeployDerivative compiles the derivative source and deploys it from Party A,
// funding it with the deposit. The new address is recorded only once the
// receipt is final. If recording fails the result still carries the address.
func (o *Orchestrator) DeployDerivative(ctx context.Context, req DeployRequest) (*DeployResult, error) {
	party, err := o.requireParty(RoleA)
	if err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	sourcePath := strings.TrimSpace(req.SourcePath)
	if sourcePath == "" {
		return nil, apperrors.ValidationError(nil, "derivative_path is required")
	}
	partyA, err := ParseAddress("deploy_party_a", req.PartyA)
	if err != nil {
		return nil, err
	}
	partyB, err := ParseAddress("deploy_party_b", req.PartyB)
	if err != nil {
		return nil, err
	}

	amount := strings.TrimSpace(req.Deposit)
	if amount == "" {
		amount = "0"
	}
	deposit, err := ethereum.ToBaseUnits(amount, ethereum.Ether)
	if err != nil {
		return nil, apperrors.ValidationError(err, "invalid deposit amount")
	}

	if o.compiler == nil {
		return nil, apperrors.ConfigurationError(nil, "no derivative compiler configured")
	}
	artifact, err := o.compiler.Compile(ctx, sourcePath)
	if err != nil {
		return nil, ensureKind(err, apperrors.ConfigurationError, "failed to compile derivative contract")
	}

	args, err := artifact.ABI.Pack("", master, partyA, partyB)
	if err != nil {
		return nil, apperrors.ConfigurationError(err,
			"derivative constructor does not accept (masterAgreement, partyA, partyB)")
	}
	data := make([]byte, 0, len(artifact.Bin)+len(args))
	data = append(data, artifact.Bin...)
	data = append(data, args...)

	res, receipt, err := o.execute(ctx, party, txPlan{
		operation: OpDeployDerivative,
		data:      data,
		value:     deposit,
		gas:       o.opts.DeployGasLimit,
	})
	if err != nil {
		return nil, err
	}

	if receipt.ContractAddress == (common.Address{}) {
		return nil, apperrors.DecodeError(nil, "deployment receipt "+res.TxHash.Hex()+" has no contract address")
	}

	result := &DeployResult{
		TxResult: *res,
		Contract: artifact.Name,
		Address:  receipt.ContractAddress,
		Deposit:  deposit,
	}

	if err := o.session.RecordDeployment(receipt.ContractAddress); err != nil {
		o.logger.Error("Derivative deployed but not recorded",
			zap.String("address", receipt.ContractAddress.Hex()),
			zap.String("tx_hash", res.TxHash.Hex()),
			zap.Error(err))
		return result, err
	}
	metrics.DeployedDerivatives.Set(float64(len(o.session.Snapshot().Derivatives)))

	return result, nil
}

// RegisterDerivative registers a derivative and its parties with the master agreement
func (o *Orchestrator) RegisterDerivative(ctx context.Context, req RegisterRequest) (*TxResult, error) {
	party, err := o.requireParty(RoleA)
	if err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	derivative, err := ParseAddress("derivative_contract", req.Derivative)
	if err != nil {
		return nil, err
	}
	partyA, err := ParseAddress("party_a_input", req.PartyA)
	if err != nil {
		return nil, err
	}
	partyB, err := ParseAddress("party_b_input", req.PartyB)
	if err != nil {
		return nil, err
	}

	data, err := o.registry.Pack(contracts.MethodRegisterDerivative, derivative, partyA, partyB)
	if err != nil {
		return nil, err
	}

	res, _, err := o.execute(ctx, party, o.callPlan(OpRegisterDerivative, master, data))
	return res, err
}

// ReportEvent reports a credit event, signed by whichever party owns the reporter address
func (o *Orchestrator) ReportEvent(ctx context.Context, req ReportRequest) (*TxResult, error) {
	if _, err := o.requireParty(RoleA); err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	reporter, err := ParseAddress("reporter", req.Reporter)
	if err != nil {
		return nil, err
	}
	party, ok := o.session.PartyByAddress(reporter)
	if !ok {
		return nil, apperrors.SigningError(nil, "no key configured for reporter "+reporter.Hex())
	}

	derivative, err := ParseAddress("report_derivative", req.Derivative)
	if err != nil {
		return nil, err
	}
	report, err := ParseEventReport(req.Kind, req.Payload)
	if err != nil {
		return nil, err
	}

	method, args, err := reportCall(report, derivative)
	if err != nil {
		return nil, err
	}
	data, err := o.registry.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	res, _, err := o.execute(ctx, party, o.callPlan(OpReportEvent+"_"+report.Kind(), master, data))
	return res, err
}

// ProposeTermination proposes terminating a derivative on behalf of role. The
// proposal id is taken from the TerminationProposed log; when the receipt has
// none the call still succeeds with an unknown id.
func (o *Orchestrator) ProposeTermination(ctx context.Context, role Role, derivativeAddr string) (*ProposalResult, error) {
	party, err := o.requireParty(role)
	if err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	derivative, err := ParseAddress("derivative", derivativeAddr)
	if err != nil {
		return nil, err
	}

	data, err := o.registry.Pack(contracts.MethodProposeTermination, derivative)
	if err != nil {
		return nil, err
	}

	res, receipt, err := o.execute(ctx, party, o.callPlan(OpProposeTermination, master, data))
	if err != nil {
		return nil, err
	}

	result := &ProposalResult{TxResult: *res, Derivative: derivative}
	result.ProposalID = o.proposalID(receipt, master, res.CorrelationID)
	return result, nil
}

func (o *Orchestrator) proposalID(receipt *types.Receipt, master common.Address, correlationID string) *big.Int {
	logs := make([]*types.Log, 0, len(receipt.Logs))
	for _, lg := range receipt.Logs {
		if lg != nil && lg.Address == master {
			logs = append(logs, lg)
		}
	}

	events, err := ethereum.DecodeLogs(logs, o.registry.ABI(), contracts.EventTerminationProposed)
	if err != nil {
		o.logger.Warn("Failed to decode TerminationProposed log",
			zap.String("correlation_id", correlationID),
			zap.Error(err))
		return nil
	}
	if len(events) == 0 {
		o.logger.Warn("Termination proposed but no TerminationProposed log found",
			zap.String("correlation_id", correlationID))
		return nil
	}

	id, ok := events[0]["proposalId"].(*big.Int)
	if !ok {
		o.logger.Warn("TerminationProposed log has no proposalId",
			zap.String("correlation_id", correlationID))
		return nil
	}
	return id
}

// VoteTermination votes for a termination proposal on behalf of role
func (o *Orchestrator) VoteTermination(ctx context.Context, role Role, proposalID string) (*TxResult, error) {
	party, err := o.requireParty(role)
	if err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	id, err := parseUint("proposal_id", proposalID)
	if err != nil {
		return nil, err
	}

	data, err := o.registry.Pack(contracts.MethodVoteForTermination, id)
	if err != nil {
		return nil, err
	}

	res, _, err := o.execute(ctx, party, o.callPlan(OpVoteTermination, master, data))
	return res, err
}

// ClearBalance settles a derivative's balance between the parties, signed by Party A
func (o *Orchestrator) ClearBalance(ctx context.Context, req ClearRequest) (*TxResult, error) {
	party, err := o.requireParty(RoleA)
	if err != nil {
		return nil, err
	}
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}

	derivative, err := ParseAddress("clear_derivative", req.Derivative)
	if err != nil {
		return nil, err
	}
	amountA, err := parseUint("amount_a", req.AmountA)
	if err != nil {
		return nil, err
	}
	amountB, err := parseUint("amount_b", req.AmountB)
	if err != nil {
		return nil, err
	}

	data, err := o.registry.Pack(contracts.MethodClearBalance, derivative, amountA, amountB)
	if err != nil {
		return nil, err
	}

	res, _, err := o.execute(ctx, party, o.callPlan(OpClearBalance, master, data))
	return res, err
}

// QueryBalance reads a derivative's native balance
func (o *Orchestrator) QueryBalance(ctx context.Context, derivativeAddr string) (*BalanceResult, error) {
	derivative, err := ParseAddress("derivative", derivativeAddr)
	if err != nil {
		return nil, err
	}

	wei, err := o.ledger.BalanceOf(ctx, derivative)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(OpQueryBalance, metrics.StatusFailed).Inc()
		return nil, ensureKind(err, apperrors.SubmissionError, "balance query failed")
	}
	metrics.QueriesTotal.WithLabelValues(OpQueryBalance, metrics.StatusSuccess).Inc()

	return &BalanceResult{
		Derivative: derivative,
		Wei:        wei,
		Ether:      ethereum.FromBaseUnits(wei, ethereum.Ether),
	}, nil
}

// QueryTermination reads the master agreement's record of a derivative. The
// terminated flag is the third field of the returned tuple.
func (o *Orchestrator) QueryTermination(ctx context.Context, derivativeAddr string) (*DerivativeContract, error) {
	master, err := o.requireMaster()
	if err != nil {
		return nil, err
	}
	derivative, err := ParseAddress("derivative", derivativeAddr)
	if err != nil {
		return nil, err
	}

	data, err := o.registry.Pack(contracts.MethodDerivativeContracts, derivative)
	if err != nil {
		return nil, err
	}

	info, err := o.queryDerivative(ctx, master, data)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(OpQueryTermination, metrics.StatusFailed).Inc()
		return nil, err
	}
	metrics.QueriesTotal.WithLabelValues(OpQueryTermination, metrics.StatusSuccess).Inc()

	info.Address = derivative
	return info, nil
}

func (o *Orchestrator) queryDerivative(ctx context.Context, master common.Address, data []byte) (*DerivativeContract, error) {
	// the query is unauthenticated; any configured party serves as caller
	var caller common.Address
	if p, ok := o.session.Party(RoleA); ok {
		caller = p.Address
	} else if p, ok := o.session.Party(RoleB); ok {
		caller = p.Address
	}

	out, err := o.ledger.Call(ctx, caller, master, data)
	if err != nil {
		return nil, ensureKind(err, apperrors.SubmissionError, "derivativeContracts call failed")
	}

	values, err := o.registry.Unpack(contracts.MethodDerivativeContracts, out)
	if err != nil {
		return nil, err
	}
	if len(values) < 3 {
		return nil, apperrors.DecodeError(nil, "derivativeContracts returned too few fields")
	}

	terminated, ok := values[2].(bool)
	if !ok {
		return nil, apperrors.DecodeError(nil, "derivativeContracts field 3 is not a bool")
	}
	partyA, ok := values[0].(common.Address)
	if !ok {
		return nil, apperrors.DecodeError(nil, "derivativeContracts field 1 is not an address")
	}
	partyB, ok := values[1].(common.Address)
	if !ok {
		return nil, apperrors.DecodeError(nil, "derivativeContracts field 2 is not an address")
	}
	return &DerivativeContract{PartyA: partyA, PartyB: partyB, Terminated: terminated}, nil
}

// Overview returns the session state and whether the ledger answers
func (o *Orchestrator) Overview(ctx context.Context) (*Overview, error) {
	snap := o.session.Snapshot()
	return &Overview{
		PartyA:       snap.PartyA,
		PartyB:       snap.PartyB,
		Master:       snap.Master,
		Derivatives:  snap.Derivatives,
		LastDeployed: snap.LastDeployed,
		LedgerLive:   o.ledger.IsLive(ctx),
	}, nil
}

func (o *Orchestrator) requireParty(role Role) (Party, error) {
	p, ok := o.session.Party(role)
	if !ok {
		return Party{}, apperrors.ConfigurationError(nil, "Party "+role.String()+" is not configured")
	}
	return p, nil
}

func (o *Orchestrator) requireMaster() (common.Address, error) {
	addr, ok := o.session.Master()
	if !ok {
		return common.Address{}, apperrors.ConfigurationError(nil, "master agreement address is not configured")
	}
	return addr, nil
}

func (o *Orchestrator) callPlan(operation string, master common.Address, data []byte) txPlan {
	return txPlan{
		operation: operation,
		to:        &master,
		data:      data,
		gas:       o.opts.CallGasLimit,
	}
}

// execute submits plan as party and waits for finality. The party lock covers
// submission only.
func (o *Orchestrator) execute(ctx context.Context, party Party, plan txPlan) (*TxResult, *types.Receipt, error) {
	correlationID := uuid.NewString()
	logger := o.logger.With(
		zap.String("correlation_id", correlationID),
		zap.String("operation", plan.operation),
		zap.String("party", party.Role.String()))

	txHash, nonce, err := o.submit(ctx, party, plan)
	if err != nil {
		metrics.TransactionsTotal.WithLabelValues(plan.operation, apperrors.KindOf(err).String()).Inc()
		logger.Warn("Transaction not submitted", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Transaction submitted",
		zap.String("tx_hash", txHash.Hex()),
		zap.Uint64("nonce", nonce))

	waitCtx := ctx
	if o.opts.FinalityTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, o.opts.FinalityTimeout)
		defer cancel()
	}

	start := time.Now()
	receipt, err := o.ledger.AwaitFinality(waitCtx, txHash)
	metrics.FinalityWait.WithLabelValues(plan.operation).Observe(time.Since(start).Seconds())
	if err != nil {
		err = ensureKind(err, apperrors.FinalityTimeoutError, "transaction "+txHash.Hex()+" not finalized")
		metrics.TransactionsTotal.WithLabelValues(plan.operation, apperrors.KindOf(err).String()).Inc()
		logger.Warn("Transaction failed", zap.String("tx_hash", txHash.Hex()), zap.Error(err))
		return nil, receipt, err
	}

	metrics.TransactionsTotal.WithLabelValues(plan.operation, metrics.StatusSuccess).Inc()
	metrics.GasUsed.WithLabelValues(plan.operation).Observe(float64(receipt.GasUsed))

	result := &TxResult{
		Operation:     plan.operation,
		Party:         party.Role,
		TxHash:        txHash,
		GasUsed:       receipt.GasUsed,
		CorrelationID: correlationID,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	logger.Info("Transaction finalized",
		zap.String("tx_hash", txHash.Hex()),
		zap.Uint64("block_number", result.BlockNumber),
		zap.Uint64("gas_used", receipt.GasUsed),
		zap.Duration("finality_wait", time.Since(start)))

	return result, receipt, nil
}

// submit runs nonce, build, sign and submit under the party's lock
func (o *Orchestrator) submit(ctx context.Context, party Party, plan txPlan) (common.Hash, uint64, error) {
	lock := o.lockFor(party.Address)
	lock.Lock()
	defer lock.Unlock()

	nonce, err := o.ledger.NonceFor(ctx, party.Address)
	if err != nil {
		return common.Hash{}, 0, ensureKind(err, apperrors.SubmissionError, "failed to get nonce")
	}

	value := plan.value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: o.opts.GasPrice,
		Gas:      plan.gas,
		To:       plan.to,
		Value:    value,
		Data:     plan.data,
	})

	signed, err := o.signer.Sign(tx, party.key)
	if err != nil {
		return common.Hash{}, 0, ensureKind(err, apperrors.SigningError, "failed to sign transaction")
	}

	txHash, err := o.ledger.Submit(ctx, signed)
	if err != nil {
		return common.Hash{}, 0, ensureKind(err, apperrors.SubmissionError, "ledger rejected transaction")
	}
	return txHash, nonce, nil
}

func (o *Orchestrator) lockFor(addr common.Address) *sync.Mutex {
	o.locksMu.Lock()
	defer o.locksMu.Unlock()

	lock, ok := o.locks[addr]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[addr] = lock
	}
	return lock
}

// ensureKind tags untagged errors with wrap
func ensureKind(err error, wrap func(error, string) error, message string) error {
	if apperrors.KindOf(err) == apperrors.KindGeneral {
		return wrap(err, message)
	}
	return err
}
