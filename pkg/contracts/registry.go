// Package contracts holds the Master Agreement interface description.
//
// The registry is loaded once at startup and is immutable afterwards. A missing
// method or event means the orchestrator and the deployed contract disagree, which
// is treated as a fatal configuration problem.
package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// Master Agreement methods
const (
	MethodRegisterDerivative  = "registerDerivativeContract"
	MethodReportDefault       = "reportDefault"
	MethodReportBankruptcy    = "reportBankruptcy"
	MethodReportPaymentFailed = "reportPaymentFailed"
	MethodProposeTermination  = "proposeTermination"
	MethodVoteForTermination  = "voteForTermination"
	MethodClearBalance        = "clearDerivativeBalance"
	MethodDerivativeContracts = "derivativeContracts"
)

// Master Agreement events
const (
	EventTerminationProposed = "TerminationProposed"
)

// RequiredMethods lists every method the orchestrator calls
var RequiredMethods = []string{
	MethodRegisterDerivative,
	MethodReportDefault,
	MethodReportBankruptcy,
	MethodReportPaymentFailed,
	MethodProposeTermination,
	MethodVoteForTermination,
	MethodClearBalance,
	MethodDerivativeContracts,
}

// RequiredEvents lists every event the orchestrator decodes
var RequiredEvents = []string{
	EventTerminationProposed,
}

// Registry resolves method and event names of a single contract type
type Registry struct {
	name string
	abi  abi.ABI
}

type artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
}

// LoadRegistry reads an interface description from path
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ConfigurationError(err, "failed to read contract interface "+path)
	}
	return NewRegistry(data)
}

// NewRegistry parses either a bare ABI array or a build artifact with an "abi" field
func NewRegistry(data []byte) (*Registry, error) {
	raw := bytes.TrimSpace(data)
	name := ""

	if len(raw) > 0 && raw[0] == '{' {
		var a artifact
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, apperrors.ConfigurationError(err, "invalid contract artifact")
		}
		if len(a.ABI) == 0 {
			return nil, apperrors.ConfigurationError(nil, "contract artifact has no abi field")
		}
		raw = a.ABI
		name = a.ContractName
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.ConfigurationError(err, "invalid contract interface")
	}
	return &Registry{name: name, abi: parsed}, nil
}

// Name returns the contract name from the artifact, if any
func (r *Registry) Name() string {
	return r.name
}

// ABI returns the parsed interface
func (r *Registry) ABI() *abi.ABI {
	return &r.abi
}

// SelectorFor returns the 4-byte function selector of method name
func (r *Registry) SelectorFor(name string) ([4]byte, error) {
	var selector [4]byte
	method, ok := r.abi.Methods[name]
	if !ok {
		return selector, apperrors.UnknownSelectorError(nil, fmt.Sprintf("method %q not in contract interface", name))
	}
	copy(selector[:], method.ID)
	return selector, nil
}

// EventSelectorFor returns the topic hash of event name
func (r *Registry) EventSelectorFor(name string) (common.Hash, error) {
	event, ok := r.abi.Events[name]
	if !ok {
		return common.Hash{}, apperrors.UnknownSelectorError(nil, fmt.Sprintf("event %q not in contract interface", name))
	}
	return event.ID, nil
}

// Pack encodes a call to method name with args
func (r *Registry) Pack(name string, args ...interface{}) ([]byte, error) {
	if _, err := r.SelectorFor(name); err != nil {
		return nil, err
	}
	data, err := r.abi.Pack(name, args...)
	if err != nil {
		return nil, apperrors.ValidationError(err, fmt.Sprintf("failed to encode %s arguments", name))
	}
	return data, nil
}

// Unpack decodes the return values of method name
func (r *Registry) Unpack(name string, data []byte) ([]interface{}, error) {
	if _, err := r.SelectorFor(name); err != nil {
		return nil, err
	}
	values, err := r.abi.Unpack(name, data)
	if err != nil {
		return nil, apperrors.DecodeError(err, fmt.Sprintf("failed to decode %s output", name))
	}
	return values, nil
}

// Validate checks that every listed method and event exists
func (r *Registry) Validate(methods, events []string) error {
	for _, m := range methods {
		if _, err := r.SelectorFor(m); err != nil {
			return err
		}
	}
	for _, e := range events {
		if _, err := r.EventSelectorFor(e); err != nil {
			return err
		}
	}
	return nil
}
