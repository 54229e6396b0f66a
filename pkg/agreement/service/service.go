// Package service exposes the agreement orchestrator to the presentation layer.
package service

import (
	"context"

	"github.com/chainsafe/agreement-middleware/pkg/agreement"
)

// Service defines the agreement operations offered to the HTTP layer
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Overview(ctx context.Context) (*agreement.Overview, error)
	ConfigureParties(ctx context.Context, pkA, pkB string) (*agreement.PartiesResult, error)
	ConfigureMaster(ctx context.Context, addr string) (*agreement.MasterResult, error)
	DeployDerivative(ctx context.Context, req agreement.DeployRequest) (*agreement.DeployResult, error)
	RegisterDerivative(ctx context.Context, req agreement.RegisterRequest) (*agreement.TxResult, error)
	ReportEvent(ctx context.Context, req agreement.ReportRequest) (*agreement.TxResult, error)
	ProposeTermination(ctx context.Context, role agreement.Role, derivative string) (*agreement.ProposalResult, error)
	VoteTermination(ctx context.Context, role agreement.Role, proposalID string) (*agreement.TxResult, error)
	ClearBalance(ctx context.Context, req agreement.ClearRequest) (*agreement.TxResult, error)
	QueryBalance(ctx context.Context, derivative string) (*agreement.BalanceResult, error)
	QueryTermination(ctx context.Context, derivative string) (*agreement.DerivativeContract, error)
}

var _ Service = (*agreement.Orchestrator)(nil)

// NewService returns the orchestrator as a Service
func NewService(orch *agreement.Orchestrator) Service {
	return orch
}
