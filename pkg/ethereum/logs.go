package ethereum

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// DecodeLogs returns the arguments of every log in logs emitted as eventName,
// keyed by argument name. Logs of other events are skipped.
func DecodeLogs(logs []*types.Log, contractABI *abi.ABI, eventName string) ([]map[string]interface{}, error) {
	event, ok := contractABI.Events[eventName]
	if !ok {
		return nil, apperrors.UnknownSelectorError(nil, fmt.Sprintf("event %q not in contract interface", eventName))
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}

	var decoded []map[string]interface{}
	for _, lg := range logs {
		if lg == nil || len(lg.Topics) == 0 || lg.Topics[0] != event.ID {
			continue
		}
		if len(lg.Topics)-1 != len(indexed) {
			return nil, apperrors.DecodeError(nil,
				fmt.Sprintf("%s log has %d topics, want %d", eventName, len(lg.Topics)-1, len(indexed)))
		}

		fields := make(map[string]interface{}, len(event.Inputs))
		if err := contractABI.UnpackIntoMap(fields, eventName, lg.Data); err != nil {
			return nil, apperrors.DecodeError(err, fmt.Sprintf("failed to unpack %s log data", eventName))
		}
		if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
			return nil, apperrors.DecodeError(err, fmt.Sprintf("failed to parse %s log topics", eventName))
		}
		decoded = append(decoded, fields)
	}
	return decoded, nil
}
