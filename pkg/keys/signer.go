package keys

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// ErrNoKey is returned when signing is attempted without key material
var ErrNoKey = errors.New("no signing key")

// Key is a party's secp256k1 signing key. It never renders its secret.
type Key struct {
	private *ecdsa.PrivateKey
	address common.Address
}

// ParsePrivateKey decodes a hex private key, with or without 0x prefix
func ParsePrivateKey(hexKey string) (*Key, error) {
	hexKey = strings.TrimSpace(hexKey)
	if len(hexKey) >= 2 && hexKey[0] == '0' && (hexKey[1] == 'x' || hexKey[1] == 'X') {
		hexKey = hexKey[2:]
	}
	if hexKey == "" {
		return nil, ErrNoKey
	}

	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewKey(privateKey), nil
}

// NewKey wraps an existing ECDSA private key
func NewKey(privateKey *ecdsa.PrivateKey) *Key {
	return &Key{
		private: privateKey,
		address: crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

// Address returns the ledger address controlled by the key
func (k *Key) Address() common.Address {
	return k.address
}

// String implements fmt.Stringer without exposing the secret
func (k *Key) String() string {
	if k == nil {
		return "<no key>"
	}
	return "key(" + k.address.Hex() + ")"
}

// GoString keeps %#v from dumping the private scalar
func (k *Key) GoString() string {
	return k.String()
}

// Signer produces EIP-155 signed transactions for one chain
type Signer struct {
	signer types.Signer
}

// NewSigner creates a signer for chainID
func NewSigner(chainID *big.Int) *Signer {
	return &Signer{signer: types.LatestSignerForChainID(chainID)}
}

// Sign signs tx with key. Signatures are deterministic for the same tx and key.
func (s *Signer) Sign(tx *types.Transaction, key *Key) (*types.Transaction, error) {
	if key == nil || key.private == nil {
		return nil, apperrors.SigningError(ErrNoKey, "no signing key configured")
	}

	signed, err := types.SignTx(tx, s.signer, key.private)
	if err != nil {
		return nil, apperrors.SigningError(err, "failed to sign transaction")
	}
	return signed, nil
}

// Sender recovers the address that signed tx
func (s *Signer) Sender(tx *types.Transaction) (common.Address, error) {
	return types.Sender(s.signer, tx)
}
