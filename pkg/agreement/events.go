package agreement

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/contracts"
)

// Event kinds accepted by ReportEvent
const (
	KindDefault       = "default"
	KindBankruptcy    = "bankruptcy"
	KindPaymentFailed = "payment_failed"
)

// EventReport is a credit event raised against a derivative. The set of
// variants is closed: DefaultEvent, BankruptcyEvent and PaymentFailedEvent.
type EventReport interface {
	Kind() string
	eventReport()
}

// DefaultEvent reports a counterparty default
type DefaultEvent struct {
	Reason string
}

// BankruptcyEvent reports a counterparty bankruptcy
type BankruptcyEvent struct {
	Details string
}

// PaymentFailedEvent reports a missed payment on an obligation
type PaymentFailedEvent struct {
	ObligationID *big.Int
}

func (DefaultEvent) Kind() string       { return KindDefault }
func (BankruptcyEvent) Kind() string    { return KindBankruptcy }
func (PaymentFailedEvent) Kind() string { return KindPaymentFailed }

func (DefaultEvent) eventReport()       {}
func (BankruptcyEvent) eventReport()    {}
func (PaymentFailedEvent) eventReport() {}

// ParseEventReport builds the variant for kind from its single payload field
func ParseEventReport(kind, payload string) (EventReport, error) {
	payload = strings.TrimSpace(payload)

	switch strings.TrimSpace(kind) {
	case KindDefault:
		if payload == "" {
			return nil, apperrors.ValidationError(nil, "reason is required for a default event")
		}
		return DefaultEvent{Reason: payload}, nil
	case KindBankruptcy:
		if payload == "" {
			return nil, apperrors.ValidationError(nil, "details are required for a bankruptcy event")
		}
		return BankruptcyEvent{Details: payload}, nil
	case KindPaymentFailed:
		id, err := parseUint("obligation_id", payload)
		if err != nil {
			return nil, err
		}
		return PaymentFailedEvent{ObligationID: id}, nil
	default:
		return nil, apperrors.ValidationError(nil, fmt.Sprintf("unknown event type %q", kind))
	}
}

// reportCall maps a report to the master agreement method and its arguments
func reportCall(report EventReport, derivative common.Address) (string, []interface{}, error) {
	switch r := report.(type) {
	case DefaultEvent:
		return contracts.MethodReportDefault, []interface{}{derivative, r.Reason}, nil
	case BankruptcyEvent:
		return contracts.MethodReportBankruptcy, []interface{}{derivative, r.Details}, nil
	case PaymentFailedEvent:
		return contracts.MethodReportPaymentFailed, []interface{}{derivative, r.ObligationID}, nil
	default:
		return "", nil, apperrors.ValidationError(nil, fmt.Sprintf("unsupported event report %T", report))
	}
}
