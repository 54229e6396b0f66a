package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/agreement-middleware/pkg/agreement"
	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

const serviceName = "AgreementService"

const logTextMaxLen = 64

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the agreement Service.
// It logs method entry/exit, duration, errors and sanitized request/response data.
// Private keys are never logged.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) started(method string, fields ...zap.Field) time.Time {
	ls.logger.Info(method+" started",
		append([]zap.Field{zap.String("service", serviceName), zap.String("method", method)}, fields...)...)
	return time.Now()
}

func (ls *logService) finished(method string, start time.Time, err error, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		ls.logger.Error(method+" failed",
			append(base, zap.String("kind", apperrors.KindOf(err).String()), zap.Error(err))...)
		return
	}
	ls.logger.Info(method+" completed", append(base, fields...)...)
}

func txFields(res *agreement.TxResult) []zap.Field {
	if res == nil {
		return nil
	}
	return []zap.Field{
		zap.String("tx_hash", res.TxHash.Hex()),
		zap.String("party", res.Party.String()),
		zap.Uint64("block_number", res.BlockNumber),
		zap.Uint64("gas_used", res.GasUsed),
		zap.String("correlation_id", res.CorrelationID),
	}
}

// Overview wraps the service method with logging
func (ls *logService) Overview(ctx context.Context) (resp *agreement.Overview, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			ls.finished("Overview", start, err)
		}
	}()
	return ls.svc.Overview(ctx)
}

// ConfigureParties wraps the service method with logging
func (ls *logService) ConfigureParties(ctx context.Context, pkA, pkB string) (resp *agreement.PartiesResult, err error) {
	start := ls.started("ConfigureParties",
		zap.Bool("party_a_key_set", pkA != ""),
		zap.Bool("party_b_key_set", pkB != ""))
	defer func() {
		if resp == nil {
			ls.finished("ConfigureParties", start, err)
			return
		}
		ls.finished("ConfigureParties", start, err,
			zap.String("party_a", resp.PartyA.Hex()),
			zap.String("party_b", resp.PartyB.Hex()))
	}()
	return ls.svc.ConfigureParties(ctx, pkA, pkB)
}

// ConfigureMaster wraps the service method with logging
func (ls *logService) ConfigureMaster(ctx context.Context, addr string) (resp *agreement.MasterResult, err error) {
	start := ls.started("ConfigureMaster", zap.String("master_address", addr))
	defer func() { ls.finished("ConfigureMaster", start, err) }()
	return ls.svc.ConfigureMaster(ctx, addr)
}

// DeployDerivative wraps the service method with logging
func (ls *logService) DeployDerivative(ctx context.Context, req agreement.DeployRequest) (resp *agreement.DeployResult, err error) {
	start := ls.started("DeployDerivative",
		zap.String("source", req.SourcePath),
		zap.String("party_a", req.PartyA),
		zap.String("party_b", req.PartyB),
		zap.String("deposit", req.Deposit))
	defer func() {
		if resp == nil {
			ls.finished("DeployDerivative", start, err)
			return
		}
		if err != nil {
			ls.logger.Warn("DeployDerivative deployed contract despite failure",
				zap.String("service", serviceName),
				zap.String("address", resp.Address.Hex()))
		}
		ls.finished("DeployDerivative", start, err,
			append(txFields(&resp.TxResult), zap.String("address", resp.Address.Hex()))...)
	}()
	return ls.svc.DeployDerivative(ctx, req)
}

// RegisterDerivative wraps the service method with logging
func (ls *logService) RegisterDerivative(ctx context.Context, req agreement.RegisterRequest) (resp *agreement.TxResult, err error) {
	start := ls.started("RegisterDerivative",
		zap.String("derivative", req.Derivative),
		zap.String("party_a", req.PartyA),
		zap.String("party_b", req.PartyB))
	defer func() { ls.finished("RegisterDerivative", start, err, txFields(resp)...) }()
	return ls.svc.RegisterDerivative(ctx, req)
}

// ReportEvent wraps the service method with logging
func (ls *logService) ReportEvent(ctx context.Context, req agreement.ReportRequest) (resp *agreement.TxResult, err error) {
	start := ls.started("ReportEvent",
		zap.String("reporter", req.Reporter),
		zap.String("event_type", req.Kind),
		zap.String("derivative", req.Derivative),
		zap.String("payload", truncateString(req.Payload, logTextMaxLen)))
	defer func() { ls.finished("ReportEvent", start, err, txFields(resp)...) }()
	return ls.svc.ReportEvent(ctx, req)
}

// ProposeTermination wraps the service method with logging
func (ls *logService) ProposeTermination(ctx context.Context, role agreement.Role, derivative string) (resp *agreement.ProposalResult, err error) {
	start := ls.started("ProposeTermination",
		zap.String("party", role.String()),
		zap.String("derivative", derivative))
	defer func() {
		if resp == nil {
			ls.finished("ProposeTermination", start, err)
			return
		}
		proposal := "unknown"
		if resp.ProposalKnown() {
			proposal = resp.ProposalID.String()
		}
		ls.finished("ProposeTermination", start, err,
			append(txFields(&resp.TxResult), zap.String("proposal_id", proposal))...)
	}()
	return ls.svc.ProposeTermination(ctx, role, derivative)
}

// VoteTermination wraps the service method with logging
func (ls *logService) VoteTermination(ctx context.Context, role agreement.Role, proposalID string) (resp *agreement.TxResult, err error) {
	start := ls.started("VoteTermination",
		zap.String("party", role.String()),
		zap.String("proposal_id", proposalID))
	defer func() { ls.finished("VoteTermination", start, err, txFields(resp)...) }()
	return ls.svc.VoteTermination(ctx, role, proposalID)
}

// ClearBalance wraps the service method with logging
func (ls *logService) ClearBalance(ctx context.Context, req agreement.ClearRequest) (resp *agreement.TxResult, err error) {
	start := ls.started("ClearBalance",
		zap.String("derivative", req.Derivative),
		zap.String("amount_a", req.AmountA),
		zap.String("amount_b", req.AmountB))
	defer func() { ls.finished("ClearBalance", start, err, txFields(resp)...) }()
	return ls.svc.ClearBalance(ctx, req)
}

// QueryBalance wraps the service method with logging
func (ls *logService) QueryBalance(ctx context.Context, derivative string) (resp *agreement.BalanceResult, err error) {
	start := ls.started("QueryBalance", zap.String("derivative", derivative))
	defer func() {
		if resp == nil {
			ls.finished("QueryBalance", start, err)
			return
		}
		ls.finished("QueryBalance", start, err, zap.String("balance_ether", resp.Ether.String()))
	}()
	return ls.svc.QueryBalance(ctx, derivative)
}

// QueryTermination wraps the service method with logging
func (ls *logService) QueryTermination(ctx context.Context, derivative string) (resp *agreement.DerivativeContract, err error) {
	start := ls.started("QueryTermination", zap.String("derivative", derivative))
	defer func() {
		if resp == nil {
			ls.finished("QueryTermination", start, err)
			return
		}
		ls.finished("QueryTermination", start, err, zap.Bool("terminated", resp.Terminated))
	}()
	return ls.svc.QueryTermination(ctx, derivative)
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
